// Package cli handles command line interface logic
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/cli"
)

// ParseFlags parses command line flags and returns program and emulator options
func ParseFlags() (options.Program, options.Emulator, error) {
	return parseArgs(os.Args)
}

func parseArgs(osArgs []string) (options.Program, options.Emulator, error) {
	var opts options.Program
	flags := cli.NewFlagSet("retrochip8")
	flags.AddSection("Parameters", &opts.Parameters)
	flags.AddSection("Options", &opts.Flags)
	flags.AddPositional(&opts.Positional)

	args, err := flags.Parse(osArgs[1:])
	if err != nil {
		// the flag set prints the usage itself on parse errors
		if errors.Is(err, cli.ErrHelpRequested) {
			return opts, options.Emulator{}, &UsageError{}
		}
		return opts, options.Emulator{}, &UsageError{msg: err.Error()}
	}
	if opts.Version {
		return opts, options.Emulator{}, nil
	}

	if opts.Input == "" && opts.File == "" {
		return opts, options.Emulator{}, &UsageError{flags: flags}
	}

	if err := validateArgs(opts, args); err != nil {
		return opts, options.Emulator{}, err
	}

	if err := validateOptions(opts); err != nil {
		return opts, options.Emulator{}, err
	}

	if opts.Input == "" {
		opts.Input = opts.File
	}

	return opts, options.NewEmulator(opts), nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *cli.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage information if it was not printed already
// while parsing the flags.
func (e *UsageError) ShowUsage() {
	if e.flags != nil {
		e.flags.ShowUsage()
	}
}

// validateArgs checks if arguments are in correct order
func validateArgs(opts options.Program, args []string) error {
	for _, arg := range args {
		if arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	if len(args) > 0 || (opts.Input != "" && opts.File != "") {
		return &UsageError{msg: "only a single ROM file can be run"}
	}
	return nil
}

// validateOptions checks that the rates and durations are usable
func validateOptions(opts options.Program) error {
	if opts.InstructionRate <= 0 {
		return fmt.Errorf("invalid instruction rate %d: must be positive", opts.InstructionRate)
	}
	if opts.TimerRate <= 0 {
		return fmt.Errorf("invalid timer rate %d: must be positive", opts.TimerRate)
	}
	if opts.KeyHold <= 0 {
		return fmt.Errorf("invalid key hold duration %dms: must be positive", opts.KeyHold)
	}
	return nil
}
