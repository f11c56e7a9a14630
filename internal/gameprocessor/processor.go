// Package gameprocessor handles game selection and console output
package gameprocessor

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/retroenv/retrodrivers/internal/machine"
	"github.com/retroenv/retrodrivers/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// GetGamesToProcess returns the games selected by the options. A single
// game is resolved by the pipeline and is not part of the result.
func GetGamesToProcess(opts *options.Program, registry *machine.Registry) ([]*machine.GameInfo, error) {
	if opts.All {
		return registry.Games(), nil
	}
	if opts.Batch == "" {
		return nil, nil
	}

	var games []*machine.GameInfo
	for _, game := range registry.Games() {
		matched, err := path.Match(strings.ToLower(opts.Batch), game.Name)
		if err != nil {
			return nil, fmt.Errorf("matching batch pattern: %w", err)
		}
		if matched {
			games = append(games, game)
		}
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("batch pattern '%s' matches no game", opts.Batch)
	}
	return games, nil
}

// GenerateOutputFilename returns the WAV file of a game. When several games
// are run the game name is appended to the file name given on the command
// line, out.wav becomes out_dakar.wav.
func GenerateOutputFilename(output, game string, multiple bool) string {
	if output == "" || !multiple {
		return output
	}
	ext := filepath.Ext(output)
	if ext == "" {
		ext = ".wav"
	}
	return strings.TrimSuffix(output, filepath.Ext(output)) + "_" + game + ext
}

// PrintGameList writes a table of the registered games. Descriptions are
// cut to fit into width columns, 0 disables cutting.
func PrintGameList(w io.Writer, registry *machine.Registry, width int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "NAME\tPARENT\tYEAR\tMANUFACTURER\tSTATUS\tDESCRIPTION"); err != nil {
		return fmt.Errorf("writing game list: %w", err)
	}

	for _, game := range registry.Games() {
		parent := game.Parent
		if parent == "" {
			parent = "-"
		}
		line := fmt.Sprintf("%s\t%s\t%d\t%s\t%s\t", game.Name, parent, game.Year, game.Manufacturer, game.Flags)
		description := game.Description
		if width > 0 {
			// the fixed columns take roughly their raw length plus padding
			room := width - len(line) - 10
			if room > 3 && len(description) > room {
				description = description[:room-3] + "..."
			}
		}
		if _, err := fmt.Fprintln(tw, line+description); err != nil {
			return fmt.Errorf("writing game list: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing game list: %w", err)
	}
	return nil
}

// TerminalWidth returns the width of the terminal attached to stdout, or 0
// if stdout is not a terminal.
func TerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}
	logger.Info("retrodrivers", log.String("version", buildinfo.Version(version, commit, date)))
}
