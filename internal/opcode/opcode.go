// Package opcode decodes CHIP-8 instruction words into typed instructions.
//
// All instructions are 2 bytes, stored big-endian. A word is split into four
// nibbles: the first nibble selects the instruction group, the second and
// third nibble select the registers X and Y and the last nibble holds N.
// NN is the low byte and NNN the low 12 bits of the word.
package opcode

import "github.com/retroenv/retrogolib/arch/cpu/chip8"

// Size is the size of CHIP-8 instructions in bytes.
const Size = 2

// Kind identifies one of the CHIP-8 instructions.
type Kind uint8

// All instructions of the CHIP-8 instruction set.
const (
	Unknown Kind = iota // word that matches no instruction

	Sys     // 0NNN  SYS addr
	Cls     // 00E0  CLS
	Ret     // 00EE  RET
	Jp      // 1NNN  JP addr
	Call    // 2NNN  CALL addr
	SeByte  // 3XNN  SE Vx, byte
	SneByte // 4XNN  SNE Vx, byte
	SeReg   // 5XY0  SE Vx, Vy
	LdByte  // 6XNN  LD Vx, byte
	AddByte // 7XNN  ADD Vx, byte
	LdReg   // 8XY0  LD Vx, Vy
	Or      // 8XY1  OR Vx, Vy
	And     // 8XY2  AND Vx, Vy
	Xor     // 8XY3  XOR Vx, Vy
	AddReg  // 8XY4  ADD Vx, Vy
	Sub     // 8XY5  SUB Vx, Vy
	Shr     // 8XY6  SHR Vx {, Vy}
	Subn    // 8XY7  SUBN Vx, Vy
	Shl     // 8XYE  SHL Vx {, Vy}
	SneReg  // 9XY0  SNE Vx, Vy
	LdI     // ANNN  LD I, addr
	JpV0    // BNNN  JP V0, addr
	Rnd     // CXNN  RND Vx, byte
	Drw     // DXYN  DRW Vx, Vy, nibble
	Skp     // EX9E  SKP Vx
	Sknp    // EXA1  SKNP Vx
	LdVxDT  // FX07  LD Vx, DT
	LdVxK   // FX0A  LD Vx, K
	LdDTVx  // FX15  LD DT, Vx
	LdSTVx  // FX18  LD ST, Vx
	AddI    // FX1E  ADD I, Vx
	LdF     // FX29  LD F, Vx
	LdB     // FX33  LD B, Vx
	LdIVx   // FX55  LD [I], Vx
	LdVxI   // FX65  LD Vx, [I]

	kindCount
)

// Count is the number of defined instructions, excluding Unknown.
const Count = int(kindCount) - 1

var kindNames = [kindCount]string{
	Unknown: "unknown",
	Sys:     "sys",
	Cls:     "cls",
	Ret:     "ret",
	Jp:      "jp",
	Call:    "call",
	SeByte:  "se",
	SneByte: "sne",
	SeReg:   "se",
	LdByte:  "ld",
	AddByte: "add",
	LdReg:   "ld",
	Or:      "or",
	And:     "and",
	Xor:     "xor",
	AddReg:  "add",
	Sub:     "sub",
	Shr:     "shr",
	Subn:    "subn",
	Shl:     "shl",
	SneReg:  "sne",
	LdI:     "ld",
	JpV0:    "jp",
	Rnd:     "rnd",
	Drw:     "drw",
	Skp:     "skp",
	Sknp:    "sknp",
	LdVxDT:  "ld",
	LdVxK:   "ld",
	LdDTVx:  "ld",
	LdSTVx:  "ld",
	AddI:    "add",
	LdF:     "ld",
	LdB:     "ld",
	LdIVx:   "ld",
	LdVxI:   "ld",
}

// String returns the lower case mnemonic of the instruction kind.
func (k Kind) String() string {
	if k >= kindCount {
		return kindNames[Unknown]
	}
	return kindNames[k]
}

// Instruction is a decoded instruction word. Only the operands that the
// instruction kind uses are meaningful.
type Instruction struct {
	Kind Kind
	Word uint16 // raw instruction word

	X   uint8  // register index in bits 8-11
	Y   uint8  // register index in bits 4-7
	N   uint8  // nibble in bits 0-3
	NN  uint8  // byte in bits 0-7
	NNN uint16 // address in bits 0-11

	cpu *chip8.Instruction // matching instruction definition, nil for SYS and unknown words
}

// Known returns whether the word decoded to a defined instruction.
func (i Instruction) Known() bool {
	return i.Kind != Unknown
}

// Mnemonic returns the instruction name as defined by the CHIP-8 instruction
// set description.
func (i Instruction) Mnemonic() string {
	if i.cpu != nil {
		return i.cpu.Name
	}
	return i.Kind.String()
}

// IsJump returns true for jumps to a fixed address.
func (i Instruction) IsJump() bool {
	return i.Kind == Jp
}

// IsIndirectJump returns true for jumps whose target depends on a register.
func (i Instruction) IsIndirectJump() bool {
	return i.Kind == JpV0
}

// IsCall returns true if the instruction is a subroutine call.
func (i Instruction) IsCall() bool {
	return i.cpu == chip8.CallInst
}

// IsReturn returns true if the instruction returns from a subroutine.
func (i Instruction) IsReturn() bool {
	return i.cpu == chip8.RetInst
}

// IsSkip returns true if the instruction conditionally skips the following instruction.
func (i Instruction) IsSkip() bool {
	if i.cpu == nil {
		return false
	}
	return chip8.SkipInstructions.Contains(i.cpu.Name)
}

// IsDataReference returns true if the instruction loads a memory address into I.
func (i Instruction) IsDataReference() bool {
	return i.Kind == LdI
}
