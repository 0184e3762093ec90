package cpu

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/opcode"
)

// execute applies a decoded instruction to the machine state. All checks that
// can fail run before any state is modified.
func (c *CPU) execute(ins opcode.Instruction) error {
	switch ins.Kind {
	case opcode.Sys:
		// native machine code routines are not supported
	case opcode.Cls:
		c.display.Clear()
	case opcode.Ret:
		return c.ret()
	case opcode.Jp:
		c.jump(ins.NNN)
	case opcode.Call:
		return c.call(ins.NNN)
	case opcode.SeByte:
		c.skipIf(c.regs.V[ins.X] == ins.NN)
	case opcode.SneByte:
		c.skipIf(c.regs.V[ins.X] != ins.NN)
	case opcode.SeReg:
		c.skipIf(c.regs.V[ins.X] == c.regs.V[ins.Y])
	case opcode.SneReg:
		c.skipIf(c.regs.V[ins.X] != c.regs.V[ins.Y])
	case opcode.LdByte:
		c.regs.V[ins.X] = ins.NN
	case opcode.AddByte:
		c.regs.V[ins.X] += ins.NN
	case opcode.LdReg, opcode.Or, opcode.And, opcode.Xor, opcode.AddReg,
		opcode.Sub, opcode.Shr, opcode.Subn, opcode.Shl:
		c.executeALU(ins)
	case opcode.LdI:
		c.regs.I = ins.NNN
	case opcode.JpV0:
		c.jump(ins.NNN + uint16(c.regs.V[0]))
	case opcode.Rnd:
		c.regs.V[ins.X] = c.random.RandomByte() & ins.NN
	case opcode.Drw:
		return c.draw(ins)
	case opcode.Skp:
		c.skipIf(c.IsKeyPressed(c.regs.V[ins.X]))
	case opcode.Sknp:
		c.skipIf(!c.IsKeyPressed(c.regs.V[ins.X]))
	default:
		return c.executeMisc(ins)
	}
	return nil
}

// executeMisc executes the timer, keypad and memory instructions of group FXNN.
func (c *CPU) executeMisc(ins opcode.Instruction) error {
	switch ins.Kind {
	case opcode.LdVxDT:
		c.regs.V[ins.X] = c.regs.DT
	case opcode.LdVxK:
		c.waitForKey(ins.X)
	case opcode.LdDTVx:
		c.regs.DT = c.regs.V[ins.X]
	case opcode.LdSTVx:
		c.regs.ST = c.regs.V[ins.X]
	case opcode.AddI:
		c.regs.I = (c.regs.I + uint16(c.regs.V[ins.X])) & memory.AddressMask
	case opcode.LdF:
		c.regs.I = memory.GlyphAddress(c.regs.V[ins.X])
	case opcode.LdB:
		return c.storeBCD(ins.X)
	case opcode.LdIVx:
		return c.storeRegisters(ins.X)
	case opcode.LdVxI:
		return c.loadRegisters(ins.X)
	default:
		return fmt.Errorf("%w: $%04X", ErrUnknownInstruction, ins.Word)
	}
	return nil
}

// jump continues execution at the given address. The target is stored minus
// the instruction size as the driver advances PC after every instruction.
func (c *CPU) jump(address uint16) {
	c.regs.PC = (address - opcode.Size) & memory.AddressMask
}

// skipIf skips the following instruction if the condition is true.
func (c *CPU) skipIf(condition bool) {
	if condition {
		c.regs.PC = (c.regs.PC + opcode.Size) & memory.AddressMask
	}
}

// call pushes the address of the following instruction and jumps to the subroutine.
func (c *CPU) call(address uint16) error {
	next := (c.regs.PC + opcode.Size) & memory.AddressMask
	if err := c.regs.push(next); err != nil {
		return err
	}
	c.jump(address)
	return nil
}

// ret returns from a subroutine.
func (c *CPU) ret() error {
	address, err := c.regs.pop()
	if err != nil {
		return err
	}
	c.jump(address)
	return nil
}

// draw blits a sprite of N rows read from memory at I to the position VX, VY.
func (c *CPU) draw(ins opcode.Instruction) error {
	sprite, err := c.memory.ReadRange(c.regs.I, int(ins.N))
	if err != nil {
		return fmt.Errorf("reading sprite: %w", err)
	}

	collision := c.display.Draw(c.regs.V[ins.X], c.regs.V[ins.Y], sprite)
	c.regs.setFlag(collision)
	return nil
}

// waitForKey stores the pressed key in VX. If no key is pressed, the program
// counter stays on the current instruction and the driver waits for a key.
func (c *CPU) waitForKey(register uint8) {
	if key, ok := c.regs.pressedKey(); ok {
		c.regs.V[register] = key
		return
	}

	c.waitRegister = register
	c.state = WaitingOnKey
	c.jump(c.regs.PC)
}

// storeBCD stores the decimal digits of VX at I, I+1 and I+2.
func (c *CPU) storeBCD(register uint8) error {
	value := c.regs.V[register]
	digits := []byte{value / 100, value / 10 % 10, value % 10}
	if err := c.memory.WriteRange(c.regs.I, digits); err != nil {
		return fmt.Errorf("storing BCD: %w", err)
	}
	return nil
}

// storeRegisters stores V0 to VX in memory starting at I.
func (c *CPU) storeRegisters(last uint8) error {
	count := int(last) + 1
	if err := c.memory.WriteRange(c.regs.I, c.regs.V[:count]); err != nil {
		return fmt.Errorf("storing registers: %w", err)
	}
	c.advanceIndex(count)
	return nil
}

// loadRegisters loads V0 to VX from memory starting at I.
func (c *CPU) loadRegisters(last uint8) error {
	count := int(last) + 1
	data, err := c.memory.ReadRange(c.regs.I, count)
	if err != nil {
		return fmt.Errorf("loading registers: %w", err)
	}
	copy(c.regs.V[:count], data)
	c.advanceIndex(count)
	return nil
}

func (c *CPU) advanceIndex(count int) {
	if c.indexIncrement {
		c.regs.I = (c.regs.I + uint16(count)) & memory.AddressMask
	}
}
