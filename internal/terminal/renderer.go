package terminal

import (
	"bytes"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/display"
)

// ANSI control sequences used by the renderer.
const (
	cursorHome  = "\x1b[H"
	clearScreen = "\x1b[2J"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// Half block characters, every terminal row shows two display rows.
const (
	blockEmpty = " "
	blockUpper = "▀"
	blockLower = "▄"
	blockFull  = "█"
)

// Renderer draws display frames to a terminal using ANSI control sequences.
type Renderer struct {
	writer io.Writer
	buf    bytes.Buffer

	last    display.Frame
	started bool
}

// NewRenderer returns a renderer that writes to the given writer.
func NewRenderer(writer io.Writer) *Renderer {
	return &Renderer{
		writer: writer,
	}
}

// Render draws the frame. Frames that are identical to the previously drawn
// one are skipped.
func (r *Renderer) Render(frame display.Frame) error {
	if r.started && frame == r.last {
		return nil
	}

	r.buf.Reset()
	if !r.started {
		r.buf.WriteString(hideCursor)
		r.buf.WriteString(clearScreen)
	}
	r.buf.WriteString(cursorHome)

	for y := 0; y < display.Height; y += 2 {
		for x := range display.Width {
			r.buf.WriteString(block(frame.Pixel(x, y), frame.Pixel(x, y+1)))
		}
		// output processing is disabled in raw mode
		r.buf.WriteString("\r\n")
	}

	if _, err := r.writer.Write(r.buf.Bytes()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	r.last = frame
	r.started = true
	return nil
}

// Close shows the cursor again.
func (r *Renderer) Close() error {
	if !r.started {
		return nil
	}
	if _, err := io.WriteString(r.writer, showCursor); err != nil {
		return fmt.Errorf("showing cursor: %w", err)
	}
	return nil
}

func block(upper, lower bool) string {
	switch {
	case upper && lower:
		return blockFull
	case upper:
		return blockUpper
	case lower:
		return blockLower
	default:
		return blockEmpty
	}
}
