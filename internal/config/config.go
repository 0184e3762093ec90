// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/opcode"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/random"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateCPU creates a CPU configured by the program options. In debug mode
// every executed instruction is logged.
func CreateCPU(logger *log.Logger, opts options.Program) (*cpu.CPU, *random.Random) {
	rng := random.New(opts.Seed)

	cpuOptions := []cpu.Option{
		cpu.WithRandom(rng),
		cpu.WithIndexIncrement(!opts.NoIndexIncrement),
	}
	if opts.Debug {
		cpuOptions = append(cpuOptions, cpu.WithTracer(traceLogger(logger)))
	}

	return cpu.New(cpuOptions...), rng
}

func traceLogger(logger *log.Logger) cpu.Tracer {
	return func(address uint16, ins opcode.Instruction) {
		logger.Debug("Executing instruction",
			log.Hex("address", address),
			log.Hex("opcode", ins.Word),
			log.String("instruction", ins.String()),
		)
	}
}
