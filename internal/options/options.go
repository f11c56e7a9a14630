// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Game   string `flag:"g" usage:"name of the game to run"`
	Config string `flag:"c" usage:"settings file (TOML) with dip switches and inputs"`
	Script string `flag:"script" usage:"Lua script to run after reset"`
	Wav    string `flag:"wav" usage:"write the audio output to a WAV file"`
	NVRAM  string `flag:"nvram" usage:"directory to load NVRAM contents from and save them to"`
	Batch  string `flag:"batch" usage:"run all games matching pattern (e.g. motrshow*)"`
}

// Flags contains behavior options.
type Flags struct {
	Duration    float64 `flag:"t" usage:"emulated seconds to run" default:"1"`
	All         bool    `flag:"all" usage:"run every game as a smoke test"`
	List        bool    `flag:"list" usage:"list all supported games"`
	LogUnmapped bool    `flag:"unmapped" usage:"log accesses to unmapped addresses (requires -debug)"`
	Debug       bool    `flag:"debug" usage:"enable debug logging"`
	Quiet       bool    `flag:"q" usage:"quiet mode"`
}

// OutputFlags contains output formatting options.
type OutputFlags struct {
	Dump bool `flag:"dump" usage:"print the full machine state after the run"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	OutputFlags
}

// Multiple returns whether the options select more than one game.
func (p Program) Multiple() bool {
	return p.All || p.Batch != ""
}
