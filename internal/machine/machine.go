// Package machine implements the host framework that drivers configure:
// it owns processors, memory regions, input ports, devices and the
// scheduler of one emulated system.
package machine

import (
	"context"
	"errors"
	"fmt"

	"github.com/retroenv/retrodrivers/internal/attotime"
	"github.com/retroenv/retrodrivers/internal/bus"
	"github.com/retroenv/retrodrivers/internal/cpu"
	"github.com/retroenv/retrodrivers/internal/dac"
	"github.com/retroenv/retrodrivers/internal/ioport"
	"github.com/retroenv/retrodrivers/internal/nvram"
	"github.com/retroenv/retrodrivers/internal/scheduler"
	"github.com/retroenv/retrodrivers/internal/screen"
	"github.com/retroenv/retrogolib/log"
)

// ErrUnknownDevice is returned when a device tag is not configured.
var ErrUnknownDevice = errors.New("unknown device")

var _ bus.Resources = &Machine{}

type periodicInterrupt struct {
	cpu  *cpu.Processor
	line cpu.Line
	hz   float64
}

// Machine is one configured instance of a game.
type Machine struct {
	game   *GameInfo
	logger *log.Logger
	sched  *scheduler.Scheduler

	cpus    []*cpu.Processor
	regions map[string][]byte
	shares  map[string][]byte
	ports   *ioport.Set
	nvrams  []*nvram.NVRAM
	screens []*screen.Screen

	recorder   *dac.Recorder
	interrupts []periodicInterrupt
	startHooks []func() error
	resetHooks []func()

	state   any
	started bool
}

// New allocates the ROM regions of the game and runs its configuration.
func New(logger *log.Logger, game *GameInfo) (*Machine, error) {
	m := &Machine{
		game:    game,
		logger:  logger,
		sched:   scheduler.New(),
		regions: make(map[string][]byte),
		shares:  make(map[string][]byte),
		ports:   ioport.NewSet(),
	}

	for _, region := range game.Regions {
		if _, ok := m.regions[region.Name]; ok {
			return nil, fmt.Errorf("region '%s' defined twice", region.Name)
		}
		m.regions[region.Name] = make([]byte, region.Size)
	}

	if err := game.Config(m); err != nil {
		return nil, fmt.Errorf("configuring %s: %w", game.Name, err)
	}
	return m, nil
}

// Game returns the metadata of the running game.
func (m *Machine) Game() *GameInfo {
	return m.game
}

// Logger returns the machine logger.
func (m *Machine) Logger() *log.Logger {
	return m.logger
}

// Scheduler returns the machine scheduler.
func (m *Machine) Scheduler() *scheduler.Scheduler {
	return m.sched
}

// Time returns the current emulated time.
func (m *Machine) Time() attotime.Time {
	return m.sched.Now()
}

// Ports returns the input ports.
func (m *Machine) Ports() *ioport.Set {
	return m.ports
}

// Region returns the ROM region with the given name.
func (m *Machine) Region(name string) []byte {
	return m.regions[name]
}

// Share returns the shared memory block with the given tag, allocating it
// on first use.
func (m *Machine) Share(tag string, size int) ([]byte, error) {
	mem, ok := m.shares[tag]
	if !ok {
		mem = make([]byte, size)
		m.shares[tag] = mem
		return mem, nil
	}
	if len(mem) != size {
		return nil, fmt.Errorf("share '%s' has size %d, requested %d", tag, len(mem), size)
	}
	return mem, nil
}

// AddCPU adds a processor.
func (m *Machine) AddCPU(tag, model string, clock float64) *cpu.Processor {
	p := cpu.New(m.logger, tag, model, clock)
	m.cpus = append(m.cpus, p)
	return p
}

// CPU returns the processor with the given tag.
func (m *Machine) CPU(tag string) (*cpu.Processor, error) {
	for _, p := range m.cpus {
		if p.Tag() == tag {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: cpu '%s'", ErrUnknownDevice, tag)
}

// CPUs returns all processors in configuration order.
func (m *Machine) CPUs() []*cpu.Processor {
	return m.cpus
}

// AddMap builds an address map against the machine memory and attaches it
// to a processor.
func (m *Machine) AddMap(p *cpu.Processor, spaceType bus.SpaceType, addressMap *bus.Map) error {
	space, err := addressMap.Build(m, m.logger)
	if err != nil {
		return fmt.Errorf("building %s %s map: %w", p.Tag(), spaceType, err)
	}
	p.SetSpace(spaceType, space)
	return nil
}

// AddPorts adds input ports.
func (m *Machine) AddPorts(ports ...*ioport.Port) {
	m.ports.Add(ports...)
}

// AddNVRAM adds a battery backed memory device. It is attached to the share
// with the same tag when the machine starts.
func (m *Machine) AddNVRAM(n *nvram.NVRAM) {
	m.nvrams = append(m.nvrams, n)
}

// NVRAMs returns all battery backed memory devices.
func (m *Machine) NVRAMs() []*nvram.NVRAM {
	return m.nvrams
}

// AddScreen adds a screen whose vblank timers are armed on start.
func (m *Machine) AddScreen(s *screen.Screen) {
	m.screens = append(m.screens, s)
}

// Screens returns all screens.
func (m *Machine) Screens() []*screen.Screen {
	return m.screens
}

// SetRecorder sets the audio recorder that is sampled at its sample rate.
func (m *Machine) SetRecorder(r *dac.Recorder) {
	m.recorder = r
}

// Recorder returns the audio recorder, nil if the machine has no sound.
func (m *Machine) Recorder() *dac.Recorder {
	return m.recorder
}

// PeriodicInterrupt holds an input line of a processor at a fixed rate.
// The line is released when the processor acknowledges it.
func (m *Machine) PeriodicInterrupt(p *cpu.Processor, line cpu.Line, hz float64) {
	m.interrupts = append(m.interrupts, periodicInterrupt{cpu: p, line: line, hz: hz})
}

// OnStart registers a function that is called once when the machine starts.
func (m *Machine) OnStart(fn func() error) {
	m.startHooks = append(m.startHooks, fn)
}

// OnReset registers a function that is called on every machine reset.
func (m *Machine) OnReset(fn func()) {
	m.resetHooks = append(m.resetHooks, fn)
}

// SetState sets the driver state that is included in state dumps.
func (m *Machine) SetState(state any) {
	m.state = state
}

// State returns the driver state.
func (m *Machine) State() any {
	return m.state
}

// Start attaches memory to devices and arms all timers. Calling it more
// than once has no effect.
func (m *Machine) Start() error {
	if m.started {
		return nil
	}

	for _, n := range m.nvrams {
		mem, ok := m.shares[n.Tag()]
		if !ok {
			return fmt.Errorf("nvram '%s' has no memory share", n.Tag())
		}
		n.Attach(mem)
	}

	for _, s := range m.screens {
		s.Start(m.sched)
	}

	for _, irq := range m.interrupts {
		name := fmt.Sprintf("%s %s periodic", irq.cpu.Tag(), irq.line)
		m.sched.Periodic(name, attotime.FromHz(irq.hz), func(int) {
			irq.cpu.SetInputLine(irq.line, cpu.HoldLine)
		})
	}

	if m.recorder != nil {
		m.sched.Periodic("audio capture", attotime.FromHz(float64(m.recorder.SampleRate())), func(int) {
			m.recorder.Sample()
		})
	}

	for _, fn := range m.startHooks {
		if err := fn(); err != nil {
			return fmt.Errorf("starting %s: %w", m.game.Name, err)
		}
	}

	m.started = true
	m.logger.Debug("Machine started",
		log.String("game", m.game.Name),
		log.Int("cpus", len(m.cpus)))
	return nil
}

// Reset clears all processor input lines and runs the reset hooks.
func (m *Machine) Reset() {
	for _, p := range m.cpus {
		p.Reset()
	}
	for _, fn := range m.resetHooks {
		fn()
	}
	m.logger.Debug("Machine reset", log.String("game", m.game.Name))
}

// Run advances emulated time. The machine is started if necessary.
func (m *Machine) Run(ctx context.Context, duration attotime.Time) error {
	if err := m.Start(); err != nil {
		return err
	}
	if err := m.sched.RunFor(ctx, duration); err != nil {
		return fmt.Errorf("running %s: %w", m.game.Name, err)
	}
	return nil
}
