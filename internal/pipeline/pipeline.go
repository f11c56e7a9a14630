// Package pipeline orchestrates the machine run workflow stages.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/retroenv/retrodrivers/internal/attotime"
	"github.com/retroenv/retrodrivers/internal/bus"
	"github.com/retroenv/retrodrivers/internal/config"
	"github.com/retroenv/retrodrivers/internal/detector"
	"github.com/retroenv/retrodrivers/internal/gameprocessor"
	"github.com/retroenv/retrodrivers/internal/loader"
	"github.com/retroenv/retrodrivers/internal/machine"
	"github.com/retroenv/retrodrivers/internal/options"
	"github.com/retroenv/retrodrivers/internal/script"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sync/errgroup"
)

// ErrNoGame is returned when no game name was given or could be derived.
var ErrNoGame = errors.New("no game selected")

// Result summarizes one machine run.
type Result struct {
	Game     string
	Snapshot machine.Snapshot
	Samples  int
	Err      error
}

// Pipeline orchestrates the complete run workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
	registry *machine.Registry
}

// New creates a new run pipeline for the games of the registry.
func New(logger *log.Logger, registry *machine.Registry) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
		registry: registry,
	}
}

// Execute runs the game selected by the options.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, writer io.Writer) (*Result, error) {
	name := p.detector.Detect(opts)
	if name == "" {
		return nil, ErrNoGame
	}

	game, err := p.registry.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("looking up game: %w", err)
	}
	return p.ExecuteGame(ctx, game, opts, writer)
}

// ExecuteGame runs a single game.
func (p *Pipeline) ExecuteGame(ctx context.Context, game *machine.GameInfo, opts options.Program, writer io.Writer) (*Result, error) {
	settings, err := p.loader.LoadSettings(opts)
	if err != nil {
		return nil, err
	}

	m, err := machine.New(p.logger, game)
	if err != nil {
		return nil, fmt.Errorf("creating machine: %w", err)
	}

	if err := p.prepare(m, opts, settings); err != nil {
		return nil, err
	}

	p.printInfo(opts, game)

	if err := p.run(ctx, m, opts, settings); err != nil {
		return nil, err
	}

	result := &Result{
		Game:     game.Name,
		Snapshot: m.Snapshot(),
	}
	if rec := m.Recorder(); rec != nil {
		result.Samples = rec.Frames()
	}

	if err := p.finish(m, opts); err != nil {
		return nil, err
	}

	p.printSummary(opts, result)
	if opts.Dump {
		m.Dump(writer)
	}
	return result, nil
}

// ExecuteBatch runs several games concurrently. The log and dump output of
// every game is buffered and written in the order of the games. A failing
// game does not stop the others, all errors are returned joined.
func (p *Pipeline) ExecuteBatch(ctx context.Context, games []*machine.GameInfo, opts options.Program,
	writer io.Writer) ([]*Result, error) {

	results := make([]*Result, len(games))
	buffers := make([]bytes.Buffer, len(games))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, game := range games {
		g.Go(func() error {
			gameOpts := opts
			gameOpts.Game = game.Name
			gameOpts.Wav = gameprocessor.GenerateOutputFilename(opts.Wav, game.Name, true)

			gp := p.withLogger(&buffers[i])
			result, err := gp.ExecuteGame(ctx, game, gameOpts, &buffers[i])
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				result = &Result{Game: game.Name, Err: err}
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var errs []error
	for i, result := range results {
		if _, err := writer.Write(buffers[i].Bytes()); err != nil {
			return nil, fmt.Errorf("writing output: %w", err)
		}
		if result.Err != nil {
			p.logger.Error("Running game failed", log.String("game", result.Game), log.Err(result.Err))
			errs = append(errs, fmt.Errorf("%s: %w", result.Game, result.Err))
		}
	}
	return results, errors.Join(errs...)
}

// withLogger returns a pipeline that logs to w at the level of p.
func (p *Pipeline) withLogger(w io.Writer) *Pipeline {
	cfg := log.DefaultConfig()
	cfg.Level = p.logger.Level()
	cfg.Output = w
	logger := log.NewWithConfig(cfg)

	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   p.loader,
		registry: p.registry,
	}
}

// prepare starts and resets the machine and applies the settings.
func (p *Pipeline) prepare(m *machine.Machine, opts options.Program, settings *config.Settings) error {
	if err := m.Start(); err != nil {
		return fmt.Errorf("starting machine: %w", err)
	}
	m.Reset()

	if err := settings.Apply(m.Ports()); err != nil {
		return fmt.Errorf("applying settings: %w", err)
	}

	if opts.LogUnmapped || settings.LogUnmapped {
		for _, c := range m.CPUs() {
			for _, spaceType := range []bus.SpaceType{bus.Program, bus.IO} {
				if space, err := c.Space(spaceType); err == nil {
					space.LogUnmapped(true)
				}
			}
		}
	}

	if opts.NVRAM != "" {
		if err := p.loader.LoadNVRAM(opts.NVRAM, m); err != nil {
			return err
		}
	}
	return nil
}

// run advances the machine, either driven by a script or for a fixed time.
// Settings override the default duration.
func (p *Pipeline) run(ctx context.Context, m *machine.Machine, opts options.Program, settings *config.Settings) error {
	if opts.Script != "" {
		engine := script.New(ctx, p.logger, m)
		defer engine.Close()
		return engine.RunFile(opts.Script)
	}

	seconds := opts.Duration
	if settings.Duration > 0 {
		seconds = settings.Duration
	}
	if err := m.Run(ctx, attotime.FromSeconds(seconds)); err != nil {
		return fmt.Errorf("running machine: %w", err)
	}
	return nil
}

// finish writes the audio capture and the NVRAM contents.
func (p *Pipeline) finish(m *machine.Machine, opts options.Program) error {
	if opts.Wav != "" {
		if err := p.writeWAV(m, opts.Wav); err != nil {
			return err
		}
	}

	if opts.NVRAM != "" {
		if err := p.loader.SaveNVRAM(opts.NVRAM, m); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) writeWAV(m *machine.Machine, filename string) error {
	rec := m.Recorder()
	if rec == nil {
		p.logger.Warn("Game has no audio output, skipping WAV file",
			log.String("game", m.Game().Name))
		return nil
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating WAV file %s: %w", filename, err)
	}

	err = rec.WriteWAV(file)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("writing WAV file %s: %w", filename, err)
	}
	return nil
}

// printInfo prints information about the game being run.
func (p *Pipeline) printInfo(opts options.Program, game *machine.GameInfo) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Running game",
		log.String("game", game.Name),
		log.String("description", game.Description),
		log.String("status", game.Flags.String()),
	)
	if game.Flags&machine.IsSkeleton != 0 {
		p.logger.Warn("Driver is a skeleton, the machine does not execute code")
	}
}

func (p *Pipeline) printSummary(opts options.Program, result *Result) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Run finished",
		log.String("game", result.Game),
		log.String("time", result.Snapshot.Time),
		log.Uint64("events", result.Snapshot.Events),
		log.Int("samples", result.Samples),
	)
}
