package tuitest

import (
	"bytes"
	"testing"
)

func TestParseFramesSplitsOnClear(t *testing.T) {
	raw := []byte("\x1b[2J\x1b[Hfirst \x1b[1;34mframe\x1b[0m\r\n\x1b[2J\x1b[Hsecond\x1b[1000z frame  \n\n")
	rec := &Recording{Raw: raw, Frames: parseFrames(raw)}

	if len(rec.Frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(rec.Frames))
	}
	if rec.Frames[0].Plain != "first frame" {
		t.Fatalf("unexpected first frame %q", rec.Frames[0].Plain)
	}
	final, ok := rec.FinalFrame()
	if !ok || final.Plain != "second frame" {
		t.Fatalf("unexpected final frame %q", final.Plain)
	}
	if !rec.Contains("first frame") || rec.Contains("third") {
		t.Fatal("Contains should search the whole session")
	}
}

func TestTerminalResponderAnswersInOrder(t *testing.T) {
	var replies bytes.Buffer
	tr := newTerminalResponder(&replies)

	tr.Process([]byte("\x1b]11;?\x07junk\x1b["))
	tr.Process([]byte("6n"))

	want := "\x1b]11;rgb:1a1a/1b1b/2626\x07\x1b[1;1R"
	if replies.String() != want {
		t.Fatalf("unexpected replies %q", replies.String())
	}
}

func TestKeyHelpers(t *testing.T) {
	if got := string(Alt(',')); got != "\x1b," {
		t.Fatalf("unexpected alt sequence %q", got)
	}
	if got := string(Paste("/tmp/a.png")); got != "\x1b[200~/tmp/a.png\x1b[201~" {
		t.Fatalf("unexpected paste sequence %q", got)
	}
}
