// Package cpu implements the CHIP-8 virtual CPU: the register file, the
// instruction executor and the cycle driver that fetches, decodes and
// executes one instruction per Step call.
//
// The CPU exclusively owns its memory, display and registers. It is not safe
// for concurrent use, hosts are expected to drive it from a single goroutine
// and to deliver key and timer events from that same goroutine.
package cpu

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/opcode"
	"github.com/retroenv/retrochip8/internal/random"
)

// State is the state of the cycle driver.
type State uint8

// Cycle driver states.
const (
	Fetching     State = iota // next Step fetches the instruction at PC
	Executing                 // an instruction is being executed
	WaitingOnKey              // LD Vx, K is waiting for a key press
)

func (s State) String() string {
	switch s {
	case Fetching:
		return "fetching"
	case Executing:
		return "executing"
	case WaitingOnKey:
		return "waiting on key"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// RandomSource provides the bytes consumed by the RND instruction.
type RandomSource interface {
	RandomByte() byte
}

// Tracer gets called for every instruction before it is executed.
type Tracer func(address uint16, ins opcode.Instruction)

// CPU is a CHIP-8 virtual machine.
type CPU struct {
	regs    Registers
	memory  *memory.Memory
	display *display.Display

	random         RandomSource
	indexIncrement bool
	tracer         Tracer

	state        State
	waitRegister uint8 // target register of a pending LD Vx, K
	cycles       uint64
}

// Option configures a CPU.
type Option func(*CPU)

// WithRandom sets the byte source of the RND instruction.
func WithRandom(source RandomSource) Option {
	return func(c *CPU) {
		c.random = source
	}
}

// WithIndexIncrement controls whether LD [I], Vx and LD Vx, [I] advance the
// index register by X+1. It is enabled by default.
func WithIndexIncrement(enabled bool) Option {
	return func(c *CPU) {
		c.indexIncrement = enabled
	}
}

// WithTracer sets a function that is called before every executed instruction.
func WithTracer(tracer Tracer) Option {
	return func(c *CPU) {
		c.tracer = tracer
	}
}

// New returns a reset CPU.
func New(options ...Option) *CPU {
	c := &CPU{
		memory:         memory.New(),
		display:        display.New(),
		indexIncrement: true,
	}
	for _, option := range options {
		option(c)
	}
	if c.random == nil {
		c.random = random.New(0)
	}
	c.Reset()
	return c
}

// Reset restores the power on state: registers, memory and display are
// cleared, the font is loaded and the program counter points to the program
// start.
func (c *CPU) Reset() {
	c.regs.reset()
	c.memory.Reset()
	c.display.Clear()
	c.state = Fetching
	c.waitRegister = 0
	c.cycles = 0
}

// LoadProgram copies a program image into memory starting at the given address.
func (c *CPU) LoadProgram(data []byte, start uint16) error {
	if err := c.memory.Load(data, start); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	return nil
}

// Step runs a single cycle. If the CPU is waiting for a key press, the cycle
// only checks the keypad. Otherwise the instruction at PC gets fetched,
// decoded and executed.
//
// If an error is returned, the machine state is unchanged from before the
// call.
func (c *CPU) Step() error {
	if c.state == WaitingOnKey {
		c.resumeWaitForKey()
		return nil
	}

	address := c.regs.PC
	word, err := c.memory.ReadWord(address)
	if err != nil {
		return fmt.Errorf("fetching instruction at address $%03X: %w", address, err)
	}

	ins := opcode.Decode(word)
	if !ins.Known() {
		return &UnknownInstructionError{Word: word, Address: address}
	}

	if c.tracer != nil {
		c.tracer(address, ins)
	}

	c.state = Executing
	if err := c.execute(ins); err != nil {
		c.state = Fetching
		return fmt.Errorf("executing '%s' at address $%03X: %w", ins, address, err)
	}

	c.regs.PC = (c.regs.PC + opcode.Size) & memory.AddressMask
	if c.state == WaitingOnKey {
		// the instruction completes once a key is pressed
		return nil
	}
	c.state = Fetching
	c.cycles++
	return nil
}

// resumeWaitForKey finishes a pending LD Vx, K once any key is pressed.
func (c *CPU) resumeWaitForKey() {
	key, ok := c.regs.pressedKey()
	if !ok {
		return
	}

	c.regs.V[c.waitRegister] = key
	c.regs.PC = (c.regs.PC + opcode.Size) & memory.AddressMask
	c.state = Fetching
	c.cycles++
}

// State returns the current cycle driver state.
func (c *CPU) State() State {
	return c.state
}

// Cycles returns the number of completed instructions since the last reset.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// Registers returns a copy of the register file.
func (c *CPU) Registers() Registers {
	return c.regs
}

// PC returns the program counter.
func (c *CPU) PC() uint16 {
	return c.regs.PC
}

// Index returns the index register.
func (c *CPU) Index() uint16 {
	return c.regs.I
}

// V returns the value of the general purpose register with the given index.
// Only the low nibble of the index is used.
func (c *CPU) V(register uint8) byte {
	return c.regs.V[register&0x0F]
}

// ReadMemory returns the byte stored at the given address.
func (c *CPU) ReadMemory(address uint16) (byte, error) {
	b, err := c.memory.Read(address)
	if err != nil {
		return 0, fmt.Errorf("reading memory: %w", err)
	}
	return b, nil
}

// Display returns a snapshot of the display.
func (c *CPU) Display() display.Frame {
	return c.display.Frame()
}

// DelayTimer returns the delay timer value.
func (c *CPU) DelayTimer() byte {
	return c.regs.DT
}

// SoundTimer returns the sound timer value.
func (c *CPU) SoundTimer() byte {
	return c.regs.ST
}

// DecrementDelayTimer decrements the delay timer if it is not zero.
func (c *CPU) DecrementDelayTimer() {
	if c.regs.DT > 0 {
		c.regs.DT--
	}
}

// DecrementSoundTimer decrements the sound timer if it is not zero.
func (c *CPU) DecrementSoundTimer() {
	if c.regs.ST > 0 {
		c.regs.ST--
	}
}

// TickTimers decrements both timers, hosts call it at 60Hz.
func (c *CPU) TickTimers() {
	c.DecrementDelayTimer()
	c.DecrementSoundTimer()
}

// SetKey marks the key as pressed.
func (c *CPU) SetKey(key uint8) error {
	if key >= KeyCount {
		return fmt.Errorf("%w: %d", ErrInvalidKey, key)
	}
	c.regs.Keys[key] = true
	return nil
}

// ClearKey marks the key as released.
func (c *CPU) ClearKey(key uint8) error {
	if key >= KeyCount {
		return fmt.Errorf("%w: %d", ErrInvalidKey, key)
	}
	c.regs.Keys[key] = false
	return nil
}

// IsKeyPressed returns whether the key is pressed. Keys outside of the
// keypad are never pressed.
func (c *CPU) IsKeyPressed(key uint8) bool {
	return key < KeyCount && c.regs.Keys[key]
}

// AnyKeyPressed returns whether any key of the keypad is pressed.
func (c *CPU) AnyKeyPressed() bool {
	_, ok := c.regs.pressedKey()
	return ok
}

// PressedKey returns the lowest pressed key, the boolean is false if no key
// is pressed.
func (c *CPU) PressedKey() (uint8, bool) {
	return c.regs.pressedKey()
}
