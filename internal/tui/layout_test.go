package tui

import "testing"

func TestPageLayoutUpdate(t *testing.T) {
	cases := []struct {
		name          string
		width         int
		height        int
		panelWidth    int
		previewWidth  int
		previewHeight int
		progressWidth int
		consoleHeight int
	}{
		{name: "default", width: 100, height: 30, panelWidth: 79, previewWidth: 36, previewHeight: 20, progressWidth: 70, consoleHeight: 16},
		{name: "narrow", width: 60, height: 20, panelWidth: 40, previewWidth: 17, previewHeight: 10, progressWidth: 31, consoleHeight: 6},
		{name: "tiny", width: 30, height: 8, panelWidth: 40, previewWidth: 17, previewHeight: 3, progressWidth: 31, consoleHeight: consoleMinHeight},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			layout := newPageLayout()
			layout.Update(tc.width, tc.height)
			if layout.panelWidth != tc.panelWidth {
				t.Fatalf("panel width mismatch: got %d want %d", layout.panelWidth, tc.panelWidth)
			}
			if layout.previewWidth != tc.previewWidth {
				t.Fatalf("preview width mismatch: got %d want %d", layout.previewWidth, tc.previewWidth)
			}
			if layout.previewHeight != tc.previewHeight {
				t.Fatalf("preview height mismatch: got %d want %d", layout.previewHeight, tc.previewHeight)
			}
			if layout.progressWidth != tc.progressWidth {
				t.Fatalf("progress width mismatch: got %d want %d", layout.progressWidth, tc.progressWidth)
			}
			if layout.consoleHeight != tc.consoleHeight {
				t.Fatalf("console height mismatch: got %d want %d", layout.consoleHeight, tc.consoleHeight)
			}
		})
	}
}

func TestContentBuilderCountsLines(t *testing.T) {
	cb := &contentBuilder{}
	cb.WriteLine("title")
	cb.WriteString("a\nb")
	cb.WriteRune('\n')
	if cb.Line() != 3 {
		t.Fatalf("expected 3 lines, got %d", cb.Line())
	}
	if got := cb.String(); got != "title\na\nb" {
		t.Fatalf("unexpected content %q", got)
	}
}
