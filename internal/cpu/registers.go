package cpu

import (
	"github.com/retroenv/retrochip8/internal/memory"
)

const (
	// RegisterCount is the number of general purpose registers.
	RegisterCount = 16

	// FlagRegister is the register written by carry, borrow, shift and collision results.
	FlagRegister = 0xF

	// StackDepth is the number of return addresses the stack can hold.
	StackDepth = 16

	// KeyCount is the number of keys of the hex keypad.
	KeyCount = 16
)

// Registers contains the register file of the CHIP-8 machine.
type Registers struct {
	V     [RegisterCount]byte // general purpose registers V0-VF
	I     uint16              // index register
	PC    uint16              // program counter
	SP    uint8               // stack pointer, number of used stack entries
	Stack [StackDepth]uint16  // return addresses

	DT byte // delay timer
	ST byte // sound timer

	Keys [KeyCount]bool // currently pressed keys
}

// reset sets all registers to their power on state.
func (r *Registers) reset() {
	*r = Registers{
		PC: memory.ProgramStart,
	}
}

// push stores a return address on the stack.
func (r *Registers) push(address uint16) error {
	if int(r.SP) >= StackDepth {
		return ErrStackOverflow
	}
	r.Stack[r.SP] = address
	r.SP++
	return nil
}

// pop removes the most recent return address from the stack.
func (r *Registers) pop() (uint16, error) {
	if r.SP == 0 {
		return 0, ErrStackUnderflow
	}
	r.SP--
	return r.Stack[r.SP], nil
}

// setFlag writes a boolean result into the flag register.
func (r *Registers) setFlag(set bool) {
	if set {
		r.V[FlagRegister] = 1
	} else {
		r.V[FlagRegister] = 0
	}
}

// pressedKey returns the lowest pressed key.
func (r *Registers) pressedKey() (uint8, bool) {
	for key, pressed := range r.Keys {
		if pressed {
			return uint8(key), true
		}
	}
	return 0, false
}
