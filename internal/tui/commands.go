package tui

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/cutout/internal/bridge"
	"github.com/csheth/cutout/internal/preview"
)

func openStreamCmd(ctx context.Context, api bridge.API) tea.Cmd {
	if api == nil {
		return nil
	}
	return func() tea.Msg {
		events, errs := api.Events(ctx)
		return streamOpenedMsg{events: events, errs: errs}
	}
}

// waitForEventCmd delivers the next host event. It is re-armed after every
// event so the stream is consumed in arrival order.
func waitForEventCmd(events <-chan bridge.Event, errs <-chan error) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if ok {
			return hostEventMsg{Event: ev}
		}
		err, ok := <-errs
		if !ok || err == nil {
			err = io.EOF
		}
		return streamClosedMsg{err: err}
	}
}

func reconnectCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return reconnectMsg{}
	})
}

func welcomeCmd(delay time.Duration) tea.Cmd {
	if delay <= 0 {
		return func() tea.Msg { return welcomeMsg{} }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return welcomeMsg{}
	})
}

func exportCmd(dir, processed string, now time.Time) tea.Cmd {
	return func() tea.Msg {
		path, err := preview.Export(dir, "processed", processed, now)
		return exportResultMsg{path: path, err: err}
	}
}

// folderName returns the last path element for either separator style; hosts
// on Windows report backslash paths.
func folderName(path string) string {
	trimmed := strings.TrimRight(path, `/\`)
	if trimmed == "" {
		return path
	}
	if idx := strings.LastIndexAny(trimmed, `/\`); idx >= 0 {
		return trimmed[idx+1:]
	}
	return filepath.Base(trimmed)
}
