package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/retrodrivers/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "game only",
			args: []string{"prog", "dakar"},
			want: options.Program{
				Parameters: options.Parameters{Game: "dakar"},
				Flags:      options.Flags{Duration: 1},
			},
		},
		{
			name: "duration and outputs",
			args: []string{"prog", "-t", "2.5", "-wav", "out.wav", "-nvram", "nv", "-dump", "wcup90"},
			want: options.Program{
				Parameters:  options.Parameters{Game: "wcup90", Wav: "out.wav", NVRAM: "nv"},
				Flags:       options.Flags{Duration: 2.5},
				OutputFlags: options.OutputFlags{Dump: true},
			},
		},
		{
			name: "list without game",
			args: []string{"prog", "-list"},
			want: options.Program{Flags: options.Flags{Duration: 1, List: true}},
		},
		{
			name: "batch without game",
			args: []string{"prog", "-batch", "motrshow*", "-q"},
			want: options.Program{
				Parameters: options.Parameters{Batch: "motrshow*"},
				Flags:      options.Flags{Duration: 1, Quiet: true},
			},
		},
		{
			name: "game flag",
			args: []string{"prog", "-g", "s220", "-script", "check.lua"},
			want: options.Program{
				Parameters: options.Parameters{Game: "s220", Script: "check.lua"},
				Flags:      options.Flags{Duration: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			got, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlagsUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no game", args: []string{"prog"}},
		{name: "flag after game", args: []string{"prog", "dakar", "-dump"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			_, err := ParseFlags()
			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))
		})
	}
}

func TestValidateArgs(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectError bool
	}{
		{name: "no arguments", args: nil},
		{name: "game only", args: []string{"dakar"}},
		{name: "empty argument after game", args: []string{"dakar", ""}},
		{name: "empty game argument", args: []string{""}},
		{name: "flag after game", args: []string{"dakar", "-q"}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateArgs(tt.args)
			if tt.expectError {
				var usageErr *UsageError
				assert.True(t, errors.As(err, &usageErr))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateOptions(t *testing.T) {
	tests := []struct {
		name        string
		opts        options.Program
		expectError bool
	}{
		{
			name: "single game",
			opts: options.Program{Parameters: options.Parameters{Game: "dakar"}},
		},
		{
			name:        "negative duration",
			opts:        options.Program{Flags: options.Flags{Duration: -1}},
			expectError: true,
		},
		{
			name: "all and batch",
			opts: options.Program{
				Parameters: options.Parameters{Batch: "*"},
				Flags:      options.Flags{All: true},
			},
			expectError: true,
		},
		{
			name: "script for all games",
			opts: options.Program{
				Parameters: options.Parameters{Script: "check.lua"},
				Flags:      options.Flags{All: true},
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateOptions(tt.opts)
			if tt.expectError {
				assert.True(t, err != nil)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
