package terminal

// ASCII codes of control keys that stop the emulator.
const (
	KeyInterrupt = 3  // end-of-text character, ctrl-c
	KeyEsc       = 27 // escape
)

// KeyMap maps keyboard characters to CHIP-8 keypad keys.
type KeyMap map[byte]uint8

// DefaultKeyMap maps the left side of a QWERTY keyboard to the hex keypad:
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
var DefaultKeyMap = KeyMap{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Key returns the keypad key for the keyboard character. Upper case letters
// map to the same key as their lower case version.
func (m KeyMap) Key(b byte) (uint8, bool) {
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	key, ok := m[b]
	return key, ok
}
