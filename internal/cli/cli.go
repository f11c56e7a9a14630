// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/retrodrivers/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && !selectsWithoutName(opts)) {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := validateOptions(opts); err != nil {
		return opts, err
	}

	if len(args) > 0 {
		opts.Game = args[0]
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrodrivers [options] <game>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

func selectsWithoutName(opts options.Program) bool {
	return opts.Game != "" || opts.Script != "" || opts.Config != "" || opts.List || opts.Multiple()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && strings.HasPrefix(arg, "-") {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after game name, please pass the game name as last argument", arg),
			}
		}
	}
	return nil
}

// validateOptions checks option values and combinations
func validateOptions(opts options.Program) error {
	if opts.Duration < 0 {
		return fmt.Errorf("invalid duration %g, must not be negative", opts.Duration)
	}
	if opts.All && opts.Batch != "" {
		return fmt.Errorf("options -all and -batch are mutually exclusive")
	}
	if opts.Multiple() && opts.Script != "" {
		return fmt.Errorf("option -script can only be used for a single game")
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Game, "g", "", "name of the game to run")
	flags.StringVar(&opts.Config, "c", "", "settings file (TOML) with dip switches and inputs")
	flags.StringVar(&opts.Script, "script", "", "Lua script to run after reset")
	flags.StringVar(&opts.Wav, "wav", "", "write the audio output to a WAV file")
	flags.StringVar(&opts.NVRAM, "nvram", "", "directory to load NVRAM contents from and save them to")
	flags.StringVar(&opts.Batch, "batch", "", "run all games matching pattern, for example motrshow*")
	flags.Float64Var(&opts.Duration, "t", 1, "emulated seconds to run")
	flags.BoolVar(&opts.All, "all", false, "run every game as a smoke test")
	flags.BoolVar(&opts.List, "list", false, "list all supported games")
	flags.BoolVar(&opts.LogUnmapped, "unmapped", false, "log accesses to unmapped addresses (requires -debug)")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Dump, "dump", false, "print the full machine state after the run")
}
