package tui

import "strings"

// pageLayout derives widget sizes from the terminal size. The frame is a one
// line title bar, the menu column beside the active panel, then a help line
// and the status bar.
type pageLayout struct {
	windowWidth   int
	windowHeight  int
	panelWidth    int
	panelInner    int
	bodyHeight    int
	previewWidth  int
	previewHeight int
	progressWidth int
	consoleWidth  int
	consoleHeight int
}

func newPageLayout() pageLayout {
	l := pageLayout{}
	l.Update(defaultWidth, defaultHeight)
	return l
}

func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height

	const menuOuter = menuWidth + 2
	const frameLines = 3
	const panelBorder = 2
	const panelPadding = 2

	l.panelWidth = width - menuOuter - 1
	if l.panelWidth < minContentWidth {
		l.panelWidth = minContentWidth
	}
	l.panelInner = l.panelWidth - panelBorder - panelPadding

	l.bodyHeight = height - frameLines
	if l.bodyHeight < minContentHeight {
		l.bodyHeight = minContentHeight
	}
	innerHeight := l.bodyHeight - panelBorder

	// Two previews side by side with a two cell gutter; below them a heading,
	// a blank line and a bordered button row.
	l.previewWidth = (l.panelInner - 2) / 2
	if l.previewWidth < 4 {
		l.previewWidth = 4
	}
	l.previewHeight = innerHeight - 5
	if l.previewHeight < 2 {
		l.previewHeight = 2
	}

	l.progressWidth = l.panelInner - 5
	if l.progressWidth < 10 {
		l.progressWidth = 10
	}

	// Title, two folder rows, a blank line, buttons, progress and the log
	// heading come before the console.
	l.consoleWidth = l.panelInner
	l.consoleHeight = innerHeight - 9
	if l.consoleHeight < consoleMinHeight {
		l.consoleHeight = consoleMinHeight
	}
}

type contentBuilder struct {
	builder strings.Builder
	lines   int
}

func (cb *contentBuilder) WriteString(s string) {
	cb.builder.WriteString(s)
	cb.lines += strings.Count(s, "\n")
}

func (cb *contentBuilder) WriteLine(s string) {
	cb.WriteString(s)
	cb.WriteRune('\n')
}

func (cb *contentBuilder) WriteRune(r rune) {
	cb.builder.WriteRune(r)
	if r == '\n' {
		cb.lines++
	}
}

func (cb *contentBuilder) String() string {
	return strings.TrimSuffix(cb.builder.String(), "\n")
}

func (cb *contentBuilder) Line() int {
	return cb.lines
}
