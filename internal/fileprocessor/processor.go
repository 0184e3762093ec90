// Package fileprocessor handles ROM loading and running operations
package fileprocessor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/terminal"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// Console is the terminal that the emulator runs in.
type Console interface {
	CheckSize() error
	RawMode() error
	Restore() error
}

// Host contains the input and output streams of the emulator.
type Host struct {
	Console Console   // optional terminal mode control
	Input   io.Reader // keyboard input
	Output  io.Writer // display output
}

// ProcessFile handles the complete ROM running workflow. It returns nil if
// the user quit the emulator.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program,
	emulatorOptions options.Emulator, host Host) error {

	detector.New(logger).CheckSupported(opts.Input)

	program, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	chip, rng := config.CreateCPU(logger, opts)
	if err := chip.LoadProgram(program, memory.ProgramStart); err != nil {
		return err
	}

	if !opts.Quiet {
		logger.Info("Running Chip-8 ROM",
			log.String("file", opts.Input),
			log.Int("size", len(program)),
			log.String("seed", strconv.FormatUint(rng.Seed(), 10)),
			log.Int("hz", emulatorOptions.InstructionRate),
		)
	}

	if host.Console != nil {
		if err := host.Console.CheckSize(); err != nil {
			return fmt.Errorf("checking terminal: %w", err)
		}
		if err := host.Console.RawMode(); err != nil {
			return fmt.Errorf("setting up terminal: %w", err)
		}
		defer func() {
			if err := host.Console.Restore(); err != nil {
				logger.Error("Restoring terminal failed", log.Err(err))
			}
		}()
	}

	renderer := terminal.NewRenderer(host.Output)
	defer func() { _ = renderer.Close() }()

	emu, err := emulator.New(logger, chip, renderer, emulatorOptions)
	if err != nil {
		return fmt.Errorf("creating emulator: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan terminal.Event, 16)
	inputDone := make(chan error, 1)
	input := terminal.NewInput(host.Input, terminal.DefaultKeyMap)
	go func() {
		inputDone <- input.Run(ctx, events)
	}()

	err = emu.Run(ctx, events)
	cancel()
	if inputErr := <-inputDone; inputErr != nil {
		logger.Error("Reading input failed", log.Err(inputErr))
	}

	if errors.Is(err, emulator.ErrQuit) {
		return nil
	}
	return err
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("retrochip8", log.String("version", buildinfo.Version(version, commit, date)))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
