package opcode

import "fmt"

// String returns the instruction in assembly notation, for example "ld V0, $05".
// Unknown words are rendered as a data word.
func (i Instruction) String() string {
	if i.Kind == Unknown {
		return fmt.Sprintf(".word $%04X", i.Word)
	}

	name := i.Mnemonic()
	if params := i.params(); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// params formats the operands of the instruction.
func (i Instruction) params() string {
	switch i.Kind {
	case Cls, Ret:
		return "" // No parameters
	case Sys, Jp, Call:
		return fmt.Sprintf("$%03X", i.NNN)
	case JpV0:
		return fmt.Sprintf("V0, $%03X", i.NNN)
	case LdI:
		return fmt.Sprintf("I, $%03X", i.NNN)
	case SeByte, SneByte, LdByte, AddByte, Rnd:
		return fmt.Sprintf("V%X, $%02X", i.X, i.NN)
	case SeReg, SneReg, LdReg, Or, And, Xor, AddReg, Sub, Subn:
		return fmt.Sprintf("V%X, V%X", i.X, i.Y)
	case Shr, Shl, Skp, Sknp:
		return fmt.Sprintf("V%X", i.X)
	case Drw:
		return fmt.Sprintf("V%X, V%X, $%X", i.X, i.Y, i.N)
	default:
		return i.miscParams()
	}
}

// miscParams formats the operands of the FXNN instruction group.
func (i Instruction) miscParams() string {
	switch i.Kind {
	case LdVxDT:
		return fmt.Sprintf("V%X, DT", i.X)
	case LdVxK:
		return fmt.Sprintf("V%X, K", i.X)
	case LdDTVx:
		return fmt.Sprintf("DT, V%X", i.X)
	case LdSTVx:
		return fmt.Sprintf("ST, V%X", i.X)
	case AddI:
		return fmt.Sprintf("I, V%X", i.X)
	case LdF:
		return fmt.Sprintf("F, V%X", i.X)
	case LdB:
		return fmt.Sprintf("B, V%X", i.X)
	case LdIVx:
		return fmt.Sprintf("[I], V%X", i.X)
	case LdVxI:
		return fmt.Sprintf("V%X, [I]", i.X)
	}
	return ""
}
