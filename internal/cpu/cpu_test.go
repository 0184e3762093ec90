package cpu

import (
	"errors"
	"testing"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/opcode"
	"github.com/retroenv/retrochip8/internal/random"
	"github.com/retroenv/retrogolib/assert"
)

// newTestCPU returns a CPU with the given instruction words loaded at the
// program start.
func newTestCPU(t *testing.T, words ...uint16) *CPU {
	t.Helper()

	c := New(WithRandom(random.NewSequence(0xFF)))
	data := make([]byte, 0, len(words)*opcode.Size)
	for _, w := range words {
		data = append(data, byte(w>>8), byte(w))
	}
	assert.NoError(t, c.LoadProgram(data, memory.ProgramStart))
	return c
}

// step runs the given number of cycles and fails the test on any error.
func step(t *testing.T, c *CPU, cycles int) {
	t.Helper()
	for range cycles {
		assert.NoError(t, c.Step())
	}
}

func TestNew_ResetState(t *testing.T) {
	c := New()

	regs := c.Registers()
	assert.Equal(t, uint16(memory.ProgramStart), regs.PC)
	assert.Equal(t, uint16(0), regs.I)
	assert.Equal(t, uint8(0), regs.SP)
	assert.Equal(t, [RegisterCount]byte{}, regs.V)
	assert.Equal(t, Fetching, c.State())
	assert.Equal(t, display.Frame{}, c.Display())

	b, err := c.ReadMemory(memory.FontStart)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xF0), b)
}

func TestCPU_EndToEndAdd(t *testing.T) {
	c := newTestCPU(t,
		0x6005, // ld V0, $05
		0x6103, // ld V1, $03
		0x8014, // add V0, V1
	)
	step(t, c, 3)

	assert.Equal(t, byte(8), c.V(0))
	assert.Equal(t, byte(3), c.V(1))
	assert.Equal(t, byte(0), c.V(FlagRegister))
	assert.Equal(t, uint16(0x206), c.PC())
	assert.Equal(t, uint64(3), c.Cycles())
}

func TestCPU_EndToEndClearScreen(t *testing.T) {
	c := newTestCPU(t, 0x00E0)
	for y := 0; y < display.Height; y++ {
		for x := 0; x < display.Width; x += display.SpriteWidth {
			c.display.Draw(byte(x), byte(y), []byte{0xFF})
		}
	}
	frame := c.Display()
	for _, p := range frame {
		assert.True(t, p)
	}

	step(t, c, 1)
	assert.Equal(t, display.Frame{}, c.Display())
	assert.Equal(t, uint16(0x202), c.PC())
}

func TestCPU_UnknownInstruction(t *testing.T) {
	c := newTestCPU(t, 0x6001, 0xFFFF)
	step(t, c, 1)
	before := c.Registers()

	err := c.Step()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownInstruction))

	var unknownErr *UnknownInstructionError
	assert.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, uint16(0xFFFF), unknownErr.Word)
	assert.Equal(t, uint16(0x202), unknownErr.Address)
	assert.ErrorContains(t, err, "$FFFF")

	assert.Equal(t, before, c.Registers())
	assert.Equal(t, Fetching, c.State())
}

func TestCPU_FetchOutOfRange(t *testing.T) {
	c := newTestCPU(t, 0x1FFF) // jp $FFF
	step(t, c, 1)
	assert.Equal(t, uint16(0xFFF), c.PC())

	err := c.Step()
	assert.True(t, errors.Is(err, memory.ErrOutOfRange))
	assert.Equal(t, uint16(0xFFF), c.PC())
}

func TestCPU_Tracer(t *testing.T) {
	var addresses []uint16
	var kinds []opcode.Kind

	c := New(WithTracer(func(address uint16, ins opcode.Instruction) {
		addresses = append(addresses, address)
		kinds = append(kinds, ins.Kind)
	}))
	assert.NoError(t, c.LoadProgram([]byte{0x60, 0x01, 0x12, 0x00}, memory.ProgramStart))
	step(t, c, 3)

	assert.Len(t, addresses, 3)
	assert.Equal(t, uint16(0x200), addresses[0])
	assert.Equal(t, uint16(0x202), addresses[1])
	assert.Equal(t, uint16(0x200), addresses[2])
	assert.Equal(t, opcode.LdByte, kinds[0])
	assert.Equal(t, opcode.Jp, kinds[1])
}

func TestCPU_LoadProgramTooLarge(t *testing.T) {
	c := New()
	err := c.LoadProgram(make([]byte, memory.Size), memory.ProgramStart)
	assert.True(t, errors.Is(err, memory.ErrProgramTooLarge))
}

func TestCPU_Reset(t *testing.T) {
	c := newTestCPU(t, 0x6A42, 0xA300, 0xF015, 0xD001, 0x2400)
	step(t, c, 5)

	c.Reset()
	regs := c.Registers()
	assert.Equal(t, uint16(memory.ProgramStart), regs.PC)
	assert.Equal(t, byte(0), regs.V[0xA])
	assert.Equal(t, uint16(0), regs.I)
	assert.Equal(t, uint8(0), regs.SP)
	assert.Equal(t, byte(0), regs.DT)
	assert.Equal(t, uint64(0), c.Cycles())
	assert.Equal(t, display.Frame{}, c.Display())

	b, err := c.ReadMemory(memory.ProgramStart)
	assert.NoError(t, err)
	assert.Equal(t, byte(0), b)
}

func TestCPU_Timers(t *testing.T) {
	c := newTestCPU(t,
		0x6002, // ld V0, $02
		0xF015, // ld DT, V0
		0xF018, // ld ST, V0
		0xF107, // ld V1, DT
	)
	step(t, c, 3)
	assert.Equal(t, byte(2), c.DelayTimer())
	assert.Equal(t, byte(2), c.SoundTimer())

	c.DecrementDelayTimer()
	assert.Equal(t, byte(1), c.DelayTimer())
	assert.Equal(t, byte(2), c.SoundTimer())

	c.DecrementSoundTimer()
	assert.Equal(t, byte(1), c.SoundTimer())

	c.TickTimers()
	c.TickTimers()
	assert.Equal(t, byte(0), c.DelayTimer())
	assert.Equal(t, byte(0), c.SoundTimer())

	step(t, c, 1)
	assert.Equal(t, byte(0), c.V(1))
}

func TestCPU_Keys(t *testing.T) {
	c := New()

	_, ok := c.PressedKey()
	assert.False(t, ok)
	assert.False(t, c.AnyKeyPressed())

	assert.NoError(t, c.SetKey(0xB))
	assert.NoError(t, c.SetKey(0x3))
	assert.True(t, c.IsKeyPressed(0xB))
	assert.True(t, c.AnyKeyPressed())
	key, ok := c.PressedKey()
	assert.True(t, ok)
	assert.Equal(t, uint8(0x3), key)

	assert.NoError(t, c.ClearKey(0x3))
	key, ok = c.PressedKey()
	assert.True(t, ok)
	assert.Equal(t, uint8(0xB), key)

	assert.True(t, errors.Is(c.SetKey(16), ErrInvalidKey))
	assert.True(t, errors.Is(c.ClearKey(200), ErrInvalidKey))
	assert.False(t, c.IsKeyPressed(16))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "fetching", Fetching.String())
	assert.Equal(t, "waiting on key", WaitingOnKey.String())
	assert.Equal(t, "state(9)", State(9).String())
}
