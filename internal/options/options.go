// Package options contains the program options.
package options

import "time"

// Positional contains positional arguments.
type Positional struct {
	File string `arg:"positional" usage:"ROM file to run"`
}

// Parameters contains file path options.
type Parameters struct {
	Input string `flag:"i" usage:"input ROM file"`
}

// Flags contains behavior options.
type Flags struct {
	InstructionRate  int    `flag:"hz" usage:"instructions executed per second" default:"700"`
	TimerRate        int    `flag:"timerhz" usage:"delay and sound timer decrements per second" default:"60"`
	Seed             uint64 `flag:"seed" usage:"seed of the RND instruction, 0 uses a time based seed"`
	NoIndexIncrement bool   `flag:"noindexinc" usage:"do not advance I after LD [I], Vx and LD Vx, [I]"`
	KeyHold          int    `flag:"hold" usage:"milliseconds a key stays pressed after a terminal key event" default:"100"`
	Debug            bool   `flag:"debug" usage:"enable debug logging with an instruction trace"`
	Quiet            bool   `flag:"q" usage:"quiet mode"`
	Version          bool   `flag:"version" usage:"print the version and exit"`
}

// Program options of the emulator.
type Program struct {
	Positional
	Parameters
	Flags
}

// Emulator defines options to control the emulator host loop.
type Emulator struct {
	InstructionRate int           // instructions per second
	TimerRate       int           // timer decrements per second
	KeyHold         time.Duration // time until a key press from the terminal is released
}

// NewEmulator returns emulator options based on the program options.
func NewEmulator(opts Program) Emulator {
	return Emulator{
		InstructionRate: opts.InstructionRate,
		TimerRate:       opts.TimerRate,
		KeyHold:         time.Duration(opts.KeyHold) * time.Millisecond,
	}
}

// Disassembler defines options to control the disassembler.
type Disassembler struct {
	HexComments    bool // output the instruction bytes as hex values in comments
	OffsetComments bool // output the address of every line in comments
}

// NewDisassembler returns a new options instance with default options.
func NewDisassembler() Disassembler {
	return Disassembler{
		HexComments:    true,
		OffsetComments: true,
	}
}
