package tuitest

// Byte sequences a terminal sends for the keys cutout binds.
var (
	KeyEnter    = []byte{'\r'}
	KeyTab      = []byte{'\t'}
	KeyShiftTab = []byte("\x1b[Z")
	KeyEsc      = []byte{27}
	KeyCtrlB    = []byte{2}
	KeyCtrlC    = []byte{3}
	KeyCtrlO    = []byte{15}
	KeyCtrlQ    = []byte{17}
	KeyRight    = []byte("\x1b[C")
	KeyLeft     = []byte("\x1b[D")
)

// Alt returns the ESC-prefixed sequence terminals send for alt+r.
func Alt(r rune) []byte {
	return append([]byte{27}, []byte(string(r))...)
}

// Paste wraps text in bracketed paste markers, the way terminals deliver a
// dropped file path.
func Paste(text string) []byte {
	return []byte("\x1b[200~" + text + "\x1b[201~")
}
