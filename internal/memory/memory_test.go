package memory

import (
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNew_LoadsFont(t *testing.T) {
	m := New()

	b, err := m.Read(FontStart)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xF0), b)

	// last row of glyph F
	b, err = m.Read(FontStart + 16*GlyphSize - 1)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x80), b)

	b, err = m.Read(ProgramStart)
	assert.NoError(t, err)
	assert.Equal(t, byte(0), b)
}

func TestGlyphAddress(t *testing.T) {
	tests := []struct {
		digit    byte
		expected uint16
	}{
		{0x0, 0x050},
		{0x1, 0x055},
		{0xA, 0x082},
		{0xF, 0x09B},
		{0x1F, 0x09B}, // only the low nibble selects the glyph
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, GlyphAddress(tt.digit))
	}
}

func TestMemory_ReadWrite(t *testing.T) {
	m := New()

	assert.NoError(t, m.Write(0x300, 0xAB))
	b, err := m.Read(0x300)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xAB), b)

	assert.NoError(t, m.Write(0x301, 0xCD))
	w, err := m.ReadWord(0x300)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0xABCD), w)
}

func TestMemory_OutOfRange(t *testing.T) {
	m := New()

	_, err := m.Read(Size)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	err = m.Write(0xFFFF, 1)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	_, err = m.ReadWord(0xFFF)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	_, err = m.ReadRange(0xFFE, 3)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	err = m.WriteRange(0xFFE, []byte{1, 2, 3})
	assert.True(t, errors.Is(err, ErrOutOfRange))

	// a failed range write must not touch the bytes that would have fit
	b, err := m.Read(0xFFE)
	assert.NoError(t, err)
	assert.Equal(t, byte(0), b)
}

func TestMemory_Load(t *testing.T) {
	t.Run("program fits", func(t *testing.T) {
		m := New()
		assert.NoError(t, m.Load([]byte{0x60, 0x05}, ProgramStart))

		w, err := m.ReadWord(ProgramStart)
		assert.NoError(t, err)
		assert.Equal(t, uint16(0x6005), w)
	})

	t.Run("program fills memory exactly", func(t *testing.T) {
		m := New()
		data := make([]byte, Size-ProgramStart)
		data[len(data)-1] = 0x42
		assert.NoError(t, m.Load(data, ProgramStart))

		b, err := m.Read(Size - 1)
		assert.NoError(t, err)
		assert.Equal(t, byte(0x42), b)
	})

	t.Run("program too large", func(t *testing.T) {
		m := New()
		data := make([]byte, Size-ProgramStart+1)
		for i := range data {
			data[i] = 0xFF
		}

		err := m.Load(data, ProgramStart)
		assert.True(t, errors.Is(err, ErrProgramTooLarge))

		b, err := m.Read(ProgramStart)
		assert.NoError(t, err)
		assert.Equal(t, byte(0), b)
	})
}

func TestMemory_ReadRangeReturnsCopy(t *testing.T) {
	m := New()
	assert.NoError(t, m.WriteRange(0x400, []byte{1, 2, 3}))

	buf, err := m.ReadRange(0x400, 3)
	assert.NoError(t, err)
	assert.True(t, bytes.Equal([]byte{1, 2, 3}, buf))

	buf[0] = 9
	b, err := m.Read(0x400)
	assert.NoError(t, err)
	assert.Equal(t, byte(1), b)
}
