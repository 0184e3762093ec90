package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// pollInterval is the wait time after a read returned no data.
const pollInterval = 10 * time.Millisecond

// Event is a keyboard event read from the terminal.
type Event struct {
	Key  uint8 // keypad key that got pressed
	Quit bool  // the user asked to stop the emulator
}

// Input reads keyboard characters and translates them to keypad events.
type Input struct {
	reader io.Reader
	keys   KeyMap
}

// NewInput returns an input reader using the given key map.
func NewInput(reader io.Reader, keys KeyMap) *Input {
	return &Input{
		reader: reader,
		keys:   keys,
	}
}

// Run reads from the terminal until the context is cancelled or the reader
// fails, and sends an event for every mapped key. Ctrl-C and escape send a
// quit event, as raw mode disables the interrupt signal.
func (in *Input) Run(ctx context.Context, events chan<- Event) error {
	buf := make([]byte, 16)

	for {
		if ctx.Err() != nil {
			return nil
		}

		n, err := in.reader.Read(buf)
		for _, b := range buf[:n] {
			event, ok := in.translate(b)
			if !ok {
				continue
			}
			select {
			case events <- event:
			case <-ctx.Done():
				return nil
			}
		}

		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			// raw mode reads return no data after the read timeout
			select {
			case <-time.After(pollInterval):
			case <-ctx.Done():
				return nil
			}
		default:
			return fmt.Errorf("reading terminal input: %w", err)
		}
	}
}

func (in *Input) translate(b byte) (Event, bool) {
	if b == KeyInterrupt || b == KeyEsc {
		return Event{Quit: true}, true
	}
	key, ok := in.keys.Key(b)
	if !ok {
		return Event{}, false
	}
	return Event{Key: key}, true
}
