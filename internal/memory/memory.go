// Package memory implements the CHIP-8 address space.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x1FF: Interpreter area, the font glyphs live at FontStart
//	0x200-0xFFF: User program space
//
// Every access is bounds checked, an out of range address is reported as an
// error before any byte is read or written.
package memory

import (
	"errors"
	"fmt"
)

const (
	// Size is the number of addressable bytes.
	Size = 0x1000

	// ProgramStart is the address where CHIP-8 programs are loaded and begin execution.
	ProgramStart = 0x200

	// FontStart is the address of the first built-in hex digit glyph.
	FontStart = 0x050

	// GlyphSize is the number of bytes of a single font glyph.
	GlyphSize = 5

	// AddressMask limits an address to the 12 bit address space.
	AddressMask = Size - 1
)

var (
	// ErrOutOfRange is returned for any access outside of the address space.
	ErrOutOfRange = errors.New("memory address out of range")

	// ErrProgramTooLarge is returned when a program does not fit into memory
	// from the requested start address.
	ErrProgramTooLarge = errors.New("program too large")
)

// font contains the glyphs for the hex digits 0-F, 5 rows of 4 pixels each.
var font = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the flat CHIP-8 address space.
type Memory struct {
	data [Size]byte
}

// New returns a reset memory with the font loaded.
func New() *Memory {
	m := &Memory{}
	m.Reset()
	return m
}

// Reset zeroes the memory and loads the font glyphs.
func (m *Memory) Reset() {
	m.data = [Size]byte{}
	copy(m.data[FontStart:], font[:])
}

// GlyphAddress returns the address of the font glyph for the given hex digit.
// Only the low nibble of the digit is used.
func GlyphAddress(digit byte) uint16 {
	return FontStart + uint16(digit&0x0F)*GlyphSize
}

// Read returns the byte at the given address.
func (m *Memory) Read(address uint16) (byte, error) {
	if err := checkRange(address, 1); err != nil {
		return 0, err
	}
	return m.data[address], nil
}

// ReadWord returns the big-endian word stored at address and address+1.
func (m *Memory) ReadWord(address uint16) (uint16, error) {
	if err := checkRange(address, 2); err != nil {
		return 0, err
	}
	return uint16(m.data[address])<<8 | uint16(m.data[address+1]), nil
}

// Write stores a byte at the given address.
func (m *Memory) Write(address uint16, value byte) error {
	if err := checkRange(address, 1); err != nil {
		return err
	}
	m.data[address] = value
	return nil
}

// ReadRange returns a copy of length bytes starting at address.
func (m *Memory) ReadRange(address uint16, length int) ([]byte, error) {
	if err := checkRange(address, length); err != nil {
		return nil, err
	}
	buf := make([]byte, length)
	copy(buf, m.data[address:])
	return buf, nil
}

// WriteRange stores all bytes of data starting at address. Nothing is written
// if the range does not fit.
func (m *Memory) WriteRange(address uint16, data []byte) error {
	if err := checkRange(address, len(data)); err != nil {
		return err
	}
	copy(m.data[address:], data)
	return nil
}

// Load copies a program image verbatim into memory starting at the given
// address. The load does not proceed if the image would run past the end of
// the address space.
func (m *Memory) Load(data []byte, start uint16) error {
	if int(start)+len(data) > Size {
		return fmt.Errorf("%w: %d bytes at address $%03X exceed %d bytes of memory",
			ErrProgramTooLarge, len(data), start, Size)
	}
	copy(m.data[start:], data)
	return nil
}

// checkRange verifies that length bytes starting at address are addressable.
func checkRange(address uint16, length int) error {
	if length < 0 || int(address)+length > Size {
		return fmt.Errorf("%w: $%04X+%d", ErrOutOfRange, address, length)
	}
	return nil
}
