// Package terminal implements the terminal host of the emulator: raw mode
// keyboard input, the mapping of keyboard keys to the CHIP-8 keypad and an
// ANSI renderer for the display.
package terminal

import (
	"errors"
	"fmt"
	"os"

	"github.com/pkg/term/termios"
	"github.com/retroenv/retrochip8/internal/display"
	"golang.org/x/sys/unix"
)

// ErrTooSmall is returned when the output terminal can not fit the display.
var ErrTooSmall = errors.New("terminal too small")

// MinColumns and MinRows are the terminal dimensions needed to render the
// display, two display rows are rendered per terminal row.
const (
	MinColumns = display.Width
	MinRows    = display.Height / 2
)

// Terminal controls the modes of a posix terminal.
type Terminal struct {
	input  *os.File
	output *os.File

	canAttr unix.Termios
	rawAttr unix.Termios
	raw     bool
}

// New returns a terminal that reads from input and writes to output. The
// current attributes of the input are saved so that Restore can return the
// terminal to its canonical mode.
func New(input, output *os.File) (*Terminal, error) {
	if input == nil {
		return nil, errors.New("terminal requires an input file")
	}
	if output == nil {
		return nil, errors.New("terminal requires an output file")
	}

	t := &Terminal{
		input:  input,
		output: output,
	}
	if err := termios.Tcgetattr(input.Fd(), &t.canAttr); err != nil {
		return nil, fmt.Errorf("getting terminal attributes: %w", err)
	}

	// reads time out after a tenth of a second so that the input reader can
	// check for cancellation
	t.rawAttr = t.canAttr
	termios.Cfmakeraw(&t.rawAttr)
	t.rawAttr.Cc[unix.VMIN] = 0
	t.rawAttr.Cc[unix.VTIME] = 1

	return t, nil
}

// RawMode puts the terminal into raw mode.
func (t *Terminal) RawMode() error {
	if err := termios.Tcsetattr(t.input.Fd(), termios.TCSANOW, &t.rawAttr); err != nil {
		return fmt.Errorf("setting raw mode: %w", err)
	}
	t.raw = true
	return nil
}

// Restore puts the terminal back into the mode it was in when it was opened.
func (t *Terminal) Restore() error {
	if !t.raw {
		return nil
	}
	if err := termios.Tcsetattr(t.input.Fd(), termios.TCSANOW, &t.canAttr); err != nil {
		return fmt.Errorf("restoring terminal mode: %w", err)
	}
	if err := termios.Tcflush(t.input.Fd(), termios.TCIFLUSH); err != nil {
		return fmt.Errorf("flushing terminal input: %w", err)
	}
	t.raw = false
	return nil
}

// Size returns the number of columns and rows of the output terminal.
func (t *Terminal) Size() (int, int, error) {
	ws, err := unix.IoctlGetWinsize(int(t.output.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, fmt.Errorf("getting terminal size: %w", err)
	}
	return int(ws.Col), int(ws.Row), nil
}

// CheckSize returns an error if the output terminal is too small to fit the
// rendered display.
func (t *Terminal) CheckSize() error {
	cols, rows, err := t.Size()
	if err != nil {
		return err
	}
	if cols < MinColumns || rows < MinRows {
		return fmt.Errorf("%w: %dx%d, need at least %dx%d",
			ErrTooSmall, cols, rows, MinColumns, MinRows)
	}
	return nil
}
