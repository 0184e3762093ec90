// Package emulator implements the host loop that drives a CHIP-8 CPU in real
// time: it paces instruction execution, decrements the timers, forwards key
// events and renders the display.
package emulator

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/terminal"
	"github.com/retroenv/retrogolib/log"
)

const (
	// frameInterval is the interval in which the host loop wakes up.
	frameInterval = time.Second / 60

	// maxAdvance limits the emulated time of a single frame, so that the
	// emulation does not race to catch up after the process was suspended.
	maxAdvance = 100 * time.Millisecond
)

// ErrQuit is returned by Run when the user asked to stop the emulator.
var ErrQuit = errors.New("quit requested")

// Machine is the emulated system driven by the host loop.
type Machine interface {
	Step() error
	TickTimers()
	SetKey(key uint8) error
	ClearKey(key uint8) error
	Display() display.Frame
	SoundTimer() byte
	PC() uint16
	Cycles() uint64
}

var _ Machine = (*cpu.CPU)(nil)

// Renderer draws display frames.
type Renderer interface {
	Render(frame display.Frame) error
}

// Emulator drives a machine in real time. All machine access happens from
// the goroutine that calls Run.
type Emulator struct {
	logger   *log.Logger
	machine  Machine
	renderer Renderer
	opts     options.Emulator

	instructionPeriod time.Duration
	timerPeriod       time.Duration

	// emulated time that has not been consumed by instructions or timer ticks
	instructionBacklog time.Duration
	timerBacklog       time.Duration

	elapsed  time.Duration           // total emulated time
	releases map[uint8]time.Duration // pressed keys and their release time
	sound    bool                    // sound timer active after the last advance
}

// New returns a new emulator host for the machine.
func New(logger *log.Logger, machine Machine, renderer Renderer, opts options.Emulator) (*Emulator, error) {
	if opts.InstructionRate <= 0 {
		return nil, fmt.Errorf("invalid instruction rate %d", opts.InstructionRate)
	}
	if opts.TimerRate <= 0 {
		return nil, fmt.Errorf("invalid timer rate %d", opts.TimerRate)
	}

	return &Emulator{
		logger:            logger,
		machine:           machine,
		renderer:          renderer,
		opts:              opts,
		instructionPeriod: time.Second / time.Duration(opts.InstructionRate),
		timerPeriod:       time.Second / time.Duration(opts.TimerRate),
		releases:          map[uint8]time.Duration{},
	}, nil
}

// Run drives the machine until the context is cancelled, a quit event is
// received or the machine returns an error. Key events are read from the
// events channel, which can be nil if no input is available.
func (e *Emulator) Run(ctx context.Context, events <-chan terminal.Event) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	if err := e.render(); err != nil {
		return err
	}

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			e.logger.Debug("Emulation stopped", log.String("cycles", strconv.FormatUint(e.machine.Cycles(), 10)))
			return fmt.Errorf("emulation stopped: %w", ctx.Err())

		case event := <-events:
			if event.Quit {
				return ErrQuit
			}
			if err := e.PressKey(event.Key); err != nil {
				return err
			}

		case now := <-ticker.C:
			if err := e.Advance(min(now.Sub(last), maxAdvance)); err != nil {
				return err
			}
			last = now
		}
	}
}

// PressKey marks the key as pressed until the key hold duration passed.
// Terminals only report key presses, so releases are emulated.
func (e *Emulator) PressKey(key uint8) error {
	if err := e.machine.SetKey(key); err != nil {
		return fmt.Errorf("pressing key: %w", err)
	}
	e.releases[key] = e.elapsed + e.opts.KeyHold
	return nil
}

// Advance runs the machine for the given amount of emulated time: all due
// instructions and timer ticks are executed in order, expired key presses
// are released and the display is rendered.
func (e *Emulator) Advance(elapsed time.Duration) error {
	e.instructionBacklog += elapsed
	e.timerBacklog += elapsed

	for e.instructionBacklog >= e.instructionPeriod || e.timerBacklog >= e.timerPeriod {
		if e.timerDueFirst() {
			e.timerBacklog -= e.timerPeriod
			e.machine.TickTimers()
			continue
		}

		e.instructionBacklog -= e.instructionPeriod
		if err := e.step(); err != nil {
			return err
		}
	}

	e.elapsed += elapsed
	if err := e.releaseKeys(); err != nil {
		return err
	}
	e.updateSound()
	return e.render()
}

// timerDueFirst returns whether a timer tick is due and was due before the
// next instruction.
func (e *Emulator) timerDueFirst() bool {
	if e.timerBacklog < e.timerPeriod {
		return false
	}
	timerOverdue := e.timerBacklog - e.timerPeriod
	instructionOverdue := e.instructionBacklog - e.instructionPeriod
	return timerOverdue >= instructionOverdue
}

func (e *Emulator) step() error {
	pc := e.machine.PC()
	if err := e.machine.Step(); err != nil {
		e.logger.Debug("Executing instruction failed",
			log.Hex("address", pc),
			log.String("cycles", strconv.FormatUint(e.machine.Cycles(), 10)),
			log.Err(err))
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func (e *Emulator) releaseKeys() error {
	for key, release := range e.releases {
		if e.elapsed < release {
			continue
		}
		if err := e.machine.ClearKey(key); err != nil {
			return fmt.Errorf("releasing key: %w", err)
		}
		delete(e.releases, key)
	}
	return nil
}

// updateSound logs changes of the sound state, the host has no audio output.
func (e *Emulator) updateSound() {
	sound := e.machine.SoundTimer() > 0
	if sound == e.sound {
		return
	}
	e.sound = sound
	if sound {
		e.logger.Debug("Sound started", log.Uint8("timer", e.machine.SoundTimer()))
	} else {
		e.logger.Debug("Sound stopped")
	}
}

func (e *Emulator) render() error {
	if e.renderer == nil {
		return nil
	}
	if err := e.renderer.Render(e.machine.Display()); err != nil {
		return fmt.Errorf("rendering display: %w", err)
	}
	return nil
}
