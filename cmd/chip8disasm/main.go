// Package main implements a CHIP-8 ROM disassembler
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/cli"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type optionFlags struct {
	Input string `arg:"positional" usage:"ROM file to disassemble" required:"true"`

	Output string `flag:"o" usage:"name of the output .asm file, printed on console if no name given"`
	Debug  bool   `flag:"debug" usage:"enable debugging options for extended logging"`
	Quiet  bool   `flag:"q" usage:"perform operations quietly"`

	NoHexComments bool `flag:"nohexcomments" usage:"do not output opcode bytes as hex values in comments"`
	NoOffsets     bool `flag:"nooffsets" usage:"do not output offsets in comments"`
}

func main() {
	ctx := app.Context()
	opts, disasmOptions := readArguments()

	if !opts.Quiet {
		printBanner()
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	if err := disasmFile(ctx, logger, opts, disasmOptions); err != nil {
		logger.Error("Disassembling failed", log.Err(err))
		os.Exit(1)
	}
}

func readArguments() (optionFlags, options.Disassembler) {
	var opts optionFlags
	flags := cli.NewFlagSet("chip8disasm")
	flags.AddSection("Options", &opts)
	flags.AddPositional(&opts)

	args, err := flags.Parse(os.Args[1:])
	if err != nil || len(args) > 0 {
		printBanner()
		if err != nil && !errors.Is(err, cli.ErrHelpRequested) {
			fmt.Printf("%s\n\n", err)
		}
		flags.ShowUsage()
		os.Exit(1)
	}

	disasmOptions := options.NewDisassembler()
	disasmOptions.HexComments = !opts.NoHexComments
	disasmOptions.OffsetComments = !opts.NoOffsets

	return opts, disasmOptions
}

func printBanner() {
	fmt.Println("[---------------------------------------]")
	fmt.Println("[ chip8disasm - CHIP-8 ROM disassembler ]")
	fmt.Printf("[---------------------------------------]\n\n")
	fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
}

func disasmFile(ctx context.Context, logger *log.Logger, opts optionFlags, disasmOptions options.Disassembler) error {
	detector.New(logger).CheckSupported(opts.Input)

	program, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	dis, err := disasm.New(logger, program, disasmOptions)
	if err != nil {
		return fmt.Errorf("initializing disassembler: %w", err)
	}

	var outputFile io.WriteCloser
	if opts.Output == "" {
		outputFile = os.Stdout
	} else {
		outputFile, err = os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("creating file '%s': %w", opts.Output, err)
		}
	}
	if err = dis.Process(ctx, outputFile); err != nil {
		_ = outputFile.Close()
		return fmt.Errorf("processing file: %w", err)
	}
	if err = outputFile.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}
	return nil
}
