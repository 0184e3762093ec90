package cpu

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownInstruction is wrapped by UnknownInstructionError.
	ErrUnknownInstruction = errors.New("unknown instruction")

	// ErrStackOverflow is returned for a CALL with a full stack.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow is returned for a RET with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrInvalidKey is returned for key indexes outside of the hex keypad.
	ErrInvalidKey = errors.New("invalid key")
)

// UnknownInstructionError reports an instruction word that does not match any
// CHIP-8 instruction.
type UnknownInstructionError struct {
	Word    uint16
	Address uint16
}

func (e *UnknownInstructionError) Error() string {
	return fmt.Sprintf("unknown instruction $%04X at address $%03X", e.Word, e.Address)
}

func (e *UnknownInstructionError) Unwrap() error {
	return ErrUnknownInstruction
}
