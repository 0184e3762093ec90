// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/memory"
)

// MaxProgramSize is the largest program image that fits between the program
// start and the end of memory.
const MaxProgramSize = memory.Size - memory.ProgramStart

var (
	// ErrEmptyProgram is returned for ROM files without any content.
	ErrEmptyProgram = errors.New("program is empty")
)

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the ROM file at the given path and returns the program image.
// CHIP-8 ROMs are raw memory images without any header.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	data, err := l.LoadFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("loading ROM %s: %w", path, err)
	}
	return data, nil
}

// LoadFromReader reads a program image from the reader. At most one byte more
// than the maximum program size is read so that oversized input is detected
// without consuming it completely.
func (l *Loader) LoadFromReader(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(reader, MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}
	return l.LoadFromBytes(data)
}

// LoadFromBytes validates a program image that is already in memory.
func (l *Loader) LoadFromBytes(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrEmptyProgram
	}
	if len(data) > MaxProgramSize {
		return nil, fmt.Errorf("%w: %d bytes, maximum is %d",
			memory.ErrProgramTooLarge, len(data), MaxProgramSize)
	}
	return data, nil
}
