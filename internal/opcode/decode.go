package opcode

import "github.com/retroenv/retrogolib/arch/cpu/chip8"

// kinds maps the opcode patterns of the CHIP-8 opcode table to the
// instruction kinds. Patterns that are shared by several instruction kinds
// of the same mnemonic, like all LD variants, are told apart by their value.
var kinds = map[chip8.OpcodeInfo]Kind{
	chip8.Opcode00E0: Cls,
	chip8.Opcode00EE: Ret,
	chip8.Opcode1000: Jp,
	chip8.Opcode2000: Call,
	chip8.Opcode3000: SeByte,
	chip8.Opcode4000: SneByte,
	chip8.Opcode5000: SeReg,
	chip8.Opcode6000: LdByte,
	chip8.Opcode7000: AddByte,
	chip8.Opcode8000: LdReg,
	chip8.Opcode8001: Or,
	chip8.Opcode8002: And,
	chip8.Opcode8003: Xor,
	chip8.Opcode8004: AddReg,
	chip8.Opcode8005: Sub,
	chip8.Opcode8006: Shr,
	chip8.Opcode8007: Subn,
	chip8.Opcode800E: Shl,
	chip8.Opcode9000: SneReg,
	chip8.OpcodeA000: LdI,
	chip8.OpcodeB000: JpV0,
	chip8.OpcodeC000: Rnd,
	chip8.OpcodeD000: Drw,
	chip8.OpcodeE09E: Skp,
	chip8.OpcodeE0A1: Sknp,
	chip8.OpcodeF007: LdVxDT,
	chip8.OpcodeF00A: LdVxK,
	chip8.OpcodeF015: LdDTVx,
	chip8.OpcodeF018: LdSTVx,
	chip8.OpcodeF01E: AddI,
	chip8.OpcodeF029: LdF,
	chip8.OpcodeF033: LdB,
	chip8.OpcodeF055: LdIVx,
	chip8.OpcodeF065: LdVxI,
}

// Decode converts an instruction word into an instruction. Words that do not
// match any CHIP-8 instruction are returned with the Unknown kind.
func Decode(word uint16) Instruction {
	ins := Instruction{
		Word: word,
		X:    uint8((word & 0x0F00) >> 8),
		Y:    uint8((word & 0x00F0) >> 4),
		N:    uint8(word & 0x000F),
		NN:   uint8(word & 0x00FF),
		NNN:  word & 0x0FFF,
	}

	op, ok := lookup(word)
	switch {
	case ok:
		ins.Kind = kinds[op.Info]
		ins.cpu = op.Instruction
	case word&0xF000 == 0:
		// 0NNN calls a machine code routine and is missing in the opcode table
		ins.Kind = Sys
	}
	return ins
}

// lookup returns the opcode table entry that matches the word.
func lookup(word uint16) (chip8.Opcode, bool) {
	firstNibble := (word & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&word == op.Info.Value {
			return op, true
		}
	}
	return chip8.Opcode{}, false
}
