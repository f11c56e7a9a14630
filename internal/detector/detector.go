// Package detector handles game name detection.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/retrodrivers/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Detector determines the game to run from the options.
type Detector struct {
	logger *log.Logger
}

// New creates a new game detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect returns the game name. An explicitly given name is used as is,
// otherwise the name is derived from the script or settings file name,
// for example dakar.lua selects dakar.
func (d *Detector) Detect(opts options.Program) string {
	if opts.Game != "" {
		return strings.ToLower(opts.Game)
	}

	for _, file := range []string{opts.Script, opts.Config} {
		if file == "" {
			continue
		}
		name := nameFromFile(file)
		d.logger.Debug("Derived game name from file",
			log.String("game", name),
			log.String("file", file))
		return name
	}
	return ""
}

// nameFromFile returns the file base name without extension.
func nameFromFile(filename string) string {
	base := filepath.Base(filename)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}
