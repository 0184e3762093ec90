package cpu

import (
	"github.com/retroenv/retrochip8/internal/opcode"
)

// executeALU executes the register to register instructions of group 8XYN.
// The flag register is written after the result, so VF ends up holding the
// flag if it is also the destination.
func (c *CPU) executeALU(ins opcode.Instruction) {
	vx := c.regs.V[ins.X]
	vy := c.regs.V[ins.Y]

	switch ins.Kind {
	case opcode.LdReg:
		c.regs.V[ins.X] = vy

	case opcode.Or:
		c.regs.V[ins.X] = vx | vy

	case opcode.And:
		c.regs.V[ins.X] = vx & vy

	case opcode.Xor:
		c.regs.V[ins.X] = vx ^ vy

	case opcode.AddReg:
		sum := uint16(vx) + uint16(vy)
		c.regs.V[ins.X] = byte(sum)
		c.regs.setFlag(sum > 0xFF)

	case opcode.Sub:
		c.regs.V[ins.X] = vx - vy
		c.regs.setFlag(vx >= vy) // not borrow

	case opcode.Subn:
		c.regs.V[ins.X] = vy - vx
		c.regs.setFlag(vy >= vx) // not borrow

	// shifts operate on VX, VY is ignored
	case opcode.Shr:
		c.regs.V[ins.X] = vx >> 1
		c.regs.setFlag(vx&0x01 != 0)

	case opcode.Shl:
		c.regs.V[ins.X] = vx << 1
		c.regs.setFlag(vx&0x80 != 0)
	}
}
