// Package i8251 emulates the register interface of the Intel 8251 USART.
// Transmission completes immediately; there is no bit level timing.
package i8251

// status register bits
const (
	StatusTxReady = 0x01
	StatusRxReady = 0x02
	StatusTxEmpty = 0x04
	StatusDSR     = 0x80
)

// command register bits
const (
	commandTxEnable      = 0x01
	commandRxEnable      = 0x04
	commandInternalReset = 0x40
)

// TxFunc receives transmitted bytes.
type TxFunc func(data uint8)

// USART is one 8251 device.
type USART struct {
	tx TxFunc

	expectMode bool
	mode       uint8
	command    uint8
	rxData     uint8
	rxReady    bool
	sent       int
}

// New returns a USART waiting for its mode instruction.
func New(tx TxFunc) *USART {
	u := &USART{tx: tx}
	u.Reset()
	return u
}

// Reset returns the device to mode instruction state.
func (u *USART) Reset() {
	u.expectMode = true
	u.mode = 0
	u.command = 0
	u.rxReady = false
}

// Mode returns the last mode instruction.
func (u *USART) Mode() uint8 {
	return u.mode
}

// Command returns the last command instruction.
func (u *USART) Command() uint8 {
	return u.command
}

// Sent returns the number of transmitted bytes.
func (u *USART) Sent() int {
	return u.sent
}

// Receive makes a byte available to the processor.
func (u *USART) Receive(data uint8) {
	if u.command&commandRxEnable == 0 {
		return
	}
	u.rxData = data
	u.rxReady = true
}

// Status returns the status register.
func (u *USART) Status() uint8 {
	status := uint8(StatusTxReady | StatusTxEmpty | StatusDSR)
	if u.rxReady {
		status |= StatusRxReady
	}
	return status
}

// Read is the bus read handler: offset bit 0 selects status over data.
func (u *USART) Read(offset uint32) uint8 {
	if offset&1 != 0 {
		return u.Status()
	}
	u.rxReady = false
	return u.rxData
}

// Write is the bus write handler: offset bit 0 selects control over data.
func (u *USART) Write(offset uint32, data uint8) {
	if offset&1 == 0 {
		if u.command&commandTxEnable != 0 {
			u.sent++
			if u.tx != nil {
				u.tx(data)
			}
		}
		return
	}

	if u.expectMode {
		u.mode = data
		u.expectMode = false
		return
	}
	if data&commandInternalReset != 0 {
		u.Reset()
		return
	}
	u.command = data
}
