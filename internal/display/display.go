// Package display implements the CHIP-8 monochrome display buffer.
package display

const (
	// Width of the display in pixels.
	Width = 64
	// Height of the display in pixels.
	Height = 32

	// SpriteWidth is the fixed width of a sprite row in pixels.
	SpriteWidth = 8
)

// Frame is a snapshot of all pixels of the display, stored row-major.
type Frame [Width * Height]bool

// Pixel returns whether the pixel at the given coordinate is set.
// Coordinates outside of the frame are reported as unset.
func (f *Frame) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return f[y*Width+x]
}

// Display is the pixel grid that sprites are drawn to.
//
// Sprites are drawn with XOR semantics. The sprite origin wraps around the
// display edges, while sprite pixels that would extend past the right or
// bottom edge are clipped.
type Display struct {
	pixels Frame
}

// New returns a cleared display.
func New() *Display {
	return &Display{}
}

// Clear unsets all pixels.
func (d *Display) Clear() {
	d.pixels = Frame{}
}

// Frame returns a copy of the current pixel state.
func (d *Display) Frame() Frame {
	return d.pixels
}

// Pixel returns whether the pixel at the given coordinate is set.
func (d *Display) Pixel(x, y int) bool {
	return d.pixels.Pixel(x, y)
}

// Draw XORs the sprite rows onto the display at position x, y. Every row is
// 8 pixels wide with the most significant bit being the leftmost pixel.
// It returns true if any set pixel got unset by the draw.
func (d *Display) Draw(x, y byte, sprite []byte) bool {
	originX := int(x) % Width
	originY := int(y) % Height
	collision := false

	for row, data := range sprite {
		py := originY + row
		if py >= Height {
			break
		}

		for bit := range SpriteWidth {
			if data&(0x80>>bit) == 0 {
				continue
			}

			px := originX + bit
			if px >= Width {
				break
			}

			index := py*Width + px
			if d.pixels[index] {
				collision = true
			}
			d.pixels[index] = !d.pixels[index]
		}
	}

	return collision
}
