package tuitest

import (
	"bytes"
	"io"
)

// terminalReplies answers the capability queries bubbletea and termenv send
// on startup; without them the program waits for a real terminal.
var terminalReplies = []struct {
	query []byte
	reply []byte
}{
	{[]byte("\x1b[6n"), []byte("\x1b[1;1R")},
	{[]byte("\x1b]10;?\x07"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x07")},
	{[]byte("\x1b]10;?\x1b\\"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x1b\\")},
	{[]byte("\x1b]11;?\x07"), []byte("\x1b]11;rgb:1a1a/1b1b/2626\x07")},
	{[]byte("\x1b]11;?\x1b\\"), []byte("\x1b]11;rgb:1a1a/1b1b/2626\x1b\\")},
}

type terminalResponder struct {
	w   io.Writer
	buf []byte
}

func newTerminalResponder(w io.Writer) *terminalResponder {
	return &terminalResponder{w: w, buf: make([]byte, 0, 128)}
}

// Process scans chunk for queries. A short tail is kept so a query split
// across reads is still seen.
func (tr *terminalResponder) Process(chunk []byte) {
	tr.buf = append(tr.buf, chunk...)
	for tr.answerOne() {
	}
	if len(tr.buf) > 256 {
		tr.buf = tr.buf[len(tr.buf)-64:]
	}
}

// answerOne replies to the earliest pending query and reports whether it
// found one.
func (tr *terminalResponder) answerOne() bool {
	first, match := -1, -1
	for i, entry := range terminalReplies {
		idx := bytes.Index(tr.buf, entry.query)
		if idx >= 0 && (first < 0 || idx < first) {
			first, match = idx, i
		}
	}
	if match < 0 {
		return false
	}
	entry := terminalReplies[match]
	tr.buf = tr.buf[first+len(entry.query):]
	_, _ = tr.w.Write(entry.reply)
	return true
}
