package mrgame

// PeripheralState holds the latched signals that the processors of the
// board exchange through their read and write hooks.
type PeripheralState struct {
	Ack1  bool // audio cpu 1 acknowledge, readable by the main cpu
	Ack2  bool // audio cpu 2 acknowledge, readable by the main cpu
	AckV  bool // video acknowledge
	Flip  bool
	Intst bool // video interrupt enable

	RowData     uint8 // selected input row, 0-7
	SoundData   uint8 // command byte for the audio cpus
	GfxBank     uint8 // tile bank, bits 0-2
	VideoData   uint8 // command byte for the video cpu
	VideoStatus uint8 // status byte returned by the video cpu
	IRQCounter  uint8
}

// Reset sets the power-on values.
func (s *PeripheralState) Reset() {
	*s = PeripheralState{
		SoundData:  0xff,
		IRQCounter: 0xff,
	}
}
