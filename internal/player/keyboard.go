package player

import "strings"

// keyCount covers the full MIDI note range.
const keyCount = 128

const (
	pressedCell = '█'
	idleCell    = '░'
)

// renderKeyboard draws the roll line, one cell per key.
func renderKeyboard(pressed [keyCount]bool) string {
	var b strings.Builder
	b.Grow(keyCount * 3)
	for _, down := range pressed {
		if down {
			b.WriteRune(pressedCell)
		} else {
			b.WriteRune(idleCell)
		}
	}
	return b.String()
}
