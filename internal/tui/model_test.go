package tui

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/cutout/internal/bridge"
	"github.com/csheth/cutout/internal/feedback"
	"github.com/csheth/cutout/internal/prefs"
	"github.com/csheth/cutout/internal/uistate"
)

const onePixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg=="

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func altRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s), Alt: true}
}

func markReady(t *testing.T, m *model) {
	t.Helper()
	m.Update(hostEventMsg{Event: bridge.Event{Type: bridge.EventReady}})
	if !m.gate.Ready() {
		t.Fatal("gate should be ready after the ready event")
	}
}

func lastToast(t *testing.T, m *model) feedback.Notification {
	t.Helper()
	items := m.toasts.Items()
	if len(items) == 0 {
		t.Fatal("expected a notification")
	}
	return items[len(items)-1]
}

func TestNewStartsOnSingleTabWithDarkTheme(t *testing.T) {
	m := newTestModel(t)
	if m.ui.ActiveTab() != uistate.TabSingle {
		t.Fatalf("expected single tab, got %q", m.ui.ActiveTab())
	}
	if m.ui.Theme() != uistate.ThemeDark {
		t.Fatalf("expected dark theme, got %q", m.ui.Theme())
	}
	if m.toasts.TTL() != feedback.DefaultTTL {
		t.Fatalf("expected default ttl, got %s", m.toasts.TTL())
	}
}

func TestTabChords(t *testing.T) {
	m := newTestModel(t)
	steps := []struct {
		msg  tea.KeyMsg
		want uistate.Tab
	}{
		{tea.KeyMsg{Type: tea.KeyCtrlB}, uistate.TabBatch},
		{keyRunes("1"), uistate.TabSingle},
		{altRunes("b"), uistate.TabBatch},
		{altRunes(","), uistate.TabSettings},
		{tea.KeyMsg{Type: tea.KeyTab}, uistate.TabSingle},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, uistate.TabSettings},
		{keyRunes("2"), uistate.TabBatch},
		{keyRunes("3"), uistate.TabSettings},
	}
	for idx, step := range steps {
		_, cmd := m.Update(step.msg)
		if cmd != nil {
			t.Fatalf("step %d: tab chords should not produce commands", idx)
		}
		if got := m.ui.ActiveTab(); got != step.want {
			t.Fatalf("step %d: expected %q, got %q", idx, step.want, got)
		}
		if m.ui.Tabs().ActiveCount() != 1 {
			t.Fatalf("step %d: expected exactly one active tab", idx)
		}
	}
}

func TestUnknownTabIsIgnoredAndLogged(t *testing.T) {
	env := newTestEnv(t)
	env.model.handleClick(zoneMenuPrefix + "reports")
	if env.model.ui.ActiveTab() != uistate.TabSingle {
		t.Fatalf("unknown tab changed selection to %q", env.model.ui.ActiveTab())
	}
	if !strings.Contains(env.logs.String(), `"tab":"reports"`) {
		t.Fatalf("expected warning with tab field, got %s", env.logs.String())
	}
}

func TestCallsQueueUntilReady(t *testing.T) {
	env := newTestEnv(t)
	m := env.model

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	if cmd != nil {
		t.Fatal("select image should be queued before the host is ready")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	m.Update(keyRunes("i"))
	if m.gate.Pending() != 2 {
		t.Fatalf("expected 2 queued calls, got %d", m.gate.Pending())
	}
	if !strings.Contains(m.View(), waitingForHostMsg) {
		t.Fatal("status bar should report waiting for host")
	}

	cmd = m.applyEvent(bridge.Event{Type: bridge.EventReady})
	feed(m, runCmd(t, cmd, 200*time.Millisecond))

	calls := env.api.Calls()
	if len(calls) != 2 || calls[0] != bridge.MethodSelectImage || calls[1] != bridge.MethodSelectInputFolder {
		t.Fatalf("queued calls not released in order: %v", calls)
	}
	if got := lastToast(t, m); got.Message != readyMessage || got.Kind != feedback.KindSuccess {
		t.Fatalf("unexpected ready toast %#v", got)
	}
	if len(m.running) != 0 {
		t.Fatalf("finished jobs should not be tracked, got %d", len(m.running))
	}

	// A second ready after a reconnect neither re-runs calls nor toasts again.
	before := m.toasts.Len()
	if cmd := m.applyEvent(bridge.Event{Type: bridge.EventReady}); cmd != nil {
		t.Fatal("repeated ready should be a no-op")
	}
	if m.toasts.Len() != before {
		t.Fatal("repeated ready should not toast")
	}
}

func TestBridgeFailureShowsErrorToastAndLogLine(t *testing.T) {
	env := newTestEnv(t)
	m := env.model
	markReady(t, m)
	env.api.fail[bridge.MethodSelectImage] = errors.New("dialog unavailable")

	m.Update(hostEventMsg{Event: bridge.Event{Type: bridge.EventLoading, Busy: true}})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	feed(m, runCmd(t, cmd, 200*time.Millisecond))

	want := "Select image failed: dialog unavailable"
	if got := lastToast(t, m); got.Message != want || got.Kind != feedback.KindError {
		t.Fatalf("unexpected toast %#v", got)
	}
	entries := m.console.Entries()
	if len(entries) == 0 || entries[len(entries)-1].Message != want {
		t.Fatalf("expected log line %q, got %#v", want, entries)
	}
	if m.loading.Busy() {
		t.Fatal("failed selection should hide the loading gate")
	}
}

func TestHostEventsRouteIntoWidgets(t *testing.T) {
	m := newTestModel(t)
	events := []bridge.Event{
		{Type: bridge.EventProgress, Percent: 42},
		{Type: bridge.EventLog, Message: "Processing photo_001.jpg"},
		{Type: bridge.EventNotify, Message: "Saved!", Kind: "success"},
		{Type: bridge.EventFolder, Folder: bridge.FolderInput, Path: "/home/ana/in"},
		{Type: bridge.EventFolder, Folder: bridge.FolderOutput, Path: `C:\out\done`},
		{Type: bridge.EventBatch, Running: true},
		{Type: "telemetry"},
	}
	for _, ev := range events {
		m.applyEvent(ev)
	}
	if got := m.progress.Label(); got != "42%" {
		t.Fatalf("expected 42%%, got %s", got)
	}
	if m.console.Len() != 1 {
		t.Fatalf("expected one log entry, got %d", m.console.Len())
	}
	if got := lastToast(t, m); got.Message != "Saved!" || got.Kind != feedback.KindSuccess {
		t.Fatalf("unexpected toast %#v", got)
	}
	if m.folders.Input != "/home/ana/in" || m.folders.Output != `C:\out\done` {
		t.Fatalf("unexpected folders %#v", m.folders)
	}
	if !m.batchRunning {
		t.Fatal("batch should be running")
	}

	m.applyEvent(bridge.Event{Type: bridge.EventProgress, Percent: 150})
	if got := m.progress.Label(); got != "100%" {
		t.Fatalf("expected clamp to 100%%, got %s", got)
	}
}

func TestLoadingGateFollowsHostEvents(t *testing.T) {
	m := newTestModel(t)
	if cmd := m.applyEvent(bridge.Event{Type: bridge.EventLoading, Busy: true}); cmd == nil {
		t.Fatal("showing the gate should start the spinner")
	}
	if cmd := m.applyEvent(bridge.Event{Type: bridge.EventLoading, Busy: true}); cmd != nil {
		t.Fatal("second show should not start another spinner")
	}
	m.applyEvent(bridge.Event{Type: bridge.EventSingleResult, Original: onePixelPNG, Processed: "data:image/png;base64," + onePixelPNG})
	if m.loading.Busy() {
		t.Fatal("a result should hide the loading gate")
	}
	if m.result == nil || m.result.Processed != onePixelPNG {
		t.Fatalf("processed payload should be stored without the data URL header, got %#v", m.result)
	}

	m.applyEvent(bridge.Event{Type: bridge.EventLoading, Busy: true})
	m.applyEvent(bridge.Event{Type: bridge.EventNotify, Kind: "error", Message: "model missing"})
	if m.loading.Busy() {
		t.Fatal("an error notification should hide the loading gate")
	}
}

func TestSaveSendsProcessedPayload(t *testing.T) {
	env := newTestEnv(t)
	m := env.model
	markReady(t, m)

	_, cmd := m.Update(keyRunes("s"))
	feed(m, runCmd(t, cmd, 50*time.Millisecond))
	if len(env.api.Calls()) != 0 {
		t.Fatal("save without a result should not reach the host")
	}
	if got := lastToast(t, m); got.Kind != feedback.KindInfo {
		t.Fatalf("expected info toast, got %#v", got)
	}

	m.applyEvent(bridge.Event{Type: bridge.EventSingleResult, Original: onePixelPNG, Processed: onePixelPNG})
	_, cmd = m.Update(keyRunes("s"))
	feed(m, runCmd(t, cmd, 200*time.Millisecond))
	if len(env.api.saved) != 1 || env.api.saved[0] != bridge.PNGDataURL(onePixelPNG) {
		t.Fatalf("unexpected save payloads %v", env.api.saved)
	}
}

func TestExportWritesProcessedImage(t *testing.T) {
	m := newTestModel(t)
	m.applyEvent(bridge.Event{Type: bridge.EventSingleResult, Original: onePixelPNG, Processed: onePixelPNG})

	_, cmd := m.Update(keyRunes("e"))
	msgs := runCmd(t, cmd, time.Second)
	if len(msgs) != 1 {
		t.Fatalf("expected export result, got %d messages", len(msgs))
	}
	result, ok := msgs[0].(exportResultMsg)
	if !ok || result.err != nil {
		t.Fatalf("unexpected export result %#v", msgs[0])
	}
	if _, err := os.Stat(result.path); err != nil {
		t.Fatalf("export missing: %v", err)
	}
	m.Update(result)
	if got := lastToast(t, m); got.Kind != feedback.KindSuccess || !strings.HasPrefix(got.Message, "Exported processed_") {
		t.Fatalf("unexpected toast %#v", got)
	}
}

func TestThemeKeysPersistAndRejectUnknown(t *testing.T) {
	env := newTestEnv(t)
	m := env.model
	m.Update(altRunes(","))

	m.Update(keyRunes("l"))
	if m.ui.Theme() != uistate.ThemeLight {
		t.Fatalf("expected light theme, got %q", m.ui.Theme())
	}
	if stored, _, _ := env.store.Get(prefs.KeyTheme); stored != "light" {
		t.Fatalf("expected persisted light theme, got %q", stored)
	}
	if got := m.styles.title.GetForeground(); got != lipgloss.Color(m.ui.Palette().Accent) {
		t.Fatalf("styles should follow the theme, title color %v", got)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.ui.Theme() != uistate.ThemeDark {
		t.Fatalf("expected right arrow to cycle to dark, got %q", m.ui.Theme())
	}

	m.handleClick(zoneThemePrefix + "neon")
	if m.ui.Theme() != uistate.ThemeDark {
		t.Fatal("unknown theme should keep the active theme")
	}
	got := lastToast(t, m)
	if got.Kind != feedback.KindError || !strings.Contains(got.Message, `invalid theme "neon"`) {
		t.Fatalf("unexpected toast %#v", got)
	}
}

func TestPasteOnSingleTabShowsDropHint(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/tmp/cat.png"), Paste: true})
	if got := lastToast(t, m); got.Message != dropMessage || got.Kind != feedback.KindInfo {
		t.Fatalf("unexpected toast %#v", got)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	before := m.toasts.Len()
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/tmp/cat.png"), Paste: true})
	if m.toasts.Len() != before {
		t.Fatal("paste outside the single tab should be ignored")
	}
}

func TestEscDismissesNewestToast(t *testing.T) {
	m := newTestModel(t)
	m.notify("first", feedback.KindInfo)
	m.notify("second", feedback.KindInfo)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	items := m.toasts.Items()
	if len(items) != 1 || items[0].Message != "first" {
		t.Fatalf("expected only the first toast, got %#v", items)
	}

	m.handleClick(zoneToastPrefix + items[0].ID)
	if m.toasts.Len() != 0 {
		t.Fatal("clicking × should dismiss the toast")
	}
}

func TestExpiredMessageRemovesToast(t *testing.T) {
	m := newTestModel(t)
	m.Update(welcomeMsg{})
	n := lastToast(t, m)
	if n.Message != welcomeMessage {
		t.Fatalf("unexpected welcome toast %q", n.Message)
	}
	m.Update(feedback.ExpiredMsg{ID: n.ID})
	if m.toasts.Len() != 0 {
		t.Fatal("expired toast should be removed")
	}
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyRunes("?"))
	if !m.helpVisible || !strings.Contains(m.View(), "Getting started") {
		t.Fatal("help overlay should be visible")
	}
	m.notify("keep me", feedback.KindInfo)
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.helpVisible {
		t.Fatal("esc should close help first")
	}
	if m.toasts.Len() != 1 {
		t.Fatal("closing help should not dismiss toasts")
	}
}

func TestCloseWindowQuitsAfterHostCall(t *testing.T) {
	env := newTestEnv(t)
	m := env.model
	markReady(t, m)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlQ})
	msgs := runCmd(t, cmd, 200*time.Millisecond)
	feed(m, msgs[:len(msgs)-1])
	_, cmd = m.Update(msgs[len(msgs)-1])
	if calls := env.api.Calls(); len(calls) != 1 || calls[0] != bridge.MethodCloseWindow {
		t.Fatalf("expected close_window call, got %v", calls)
	}
	if !containsQuit(runCmd(t, cmd, 200*time.Millisecond)) {
		t.Fatal("expected quit after closing the window")
	}
	if m.View() != "" {
		t.Fatal("view should be empty once quitting")
	}
}

func TestCtrlQWithoutReadyHostQuitsImmediately(t *testing.T) {
	env := newTestEnv(t)
	_, cmd := env.model.Update(tea.KeyMsg{Type: tea.KeyCtrlQ})
	if !containsQuit(runCmd(t, cmd, 50*time.Millisecond)) {
		t.Fatal("expected immediate quit")
	}
	if len(env.api.Calls()) != 0 {
		t.Fatal("no host call expected before ready")
	}
}

func TestStreamClosedSchedulesReconnect(t *testing.T) {
	m := newTestModel(t)
	m.config.ReconnectDelay = 10 * time.Millisecond
	m.Update(streamOpenedMsg{events: make(chan bridge.Event), errs: make(chan error)})
	if m.connected {
		t.Fatal("an opened stream is not connected before its first event")
	}
	m.Update(hostEventMsg{Event: bridge.Event{Type: bridge.EventLog, Message: "hello"}})
	if !m.connected {
		t.Fatal("stream should be marked connected after an event")
	}

	_, cmd := m.Update(streamClosedMsg{err: errors.New("EOF")})
	if m.connected || !m.hostDown {
		t.Fatal("stream should be marked disconnected")
	}
	msgs := runCmd(t, cmd, time.Second)
	if len(msgs) != 1 {
		t.Fatalf("expected reconnect message, got %d", len(msgs))
	}
	if _, ok := msgs[0].(reconnectMsg); !ok {
		t.Fatalf("expected reconnectMsg, got %T", msgs[0])
	}
	if !strings.Contains(m.console.Entries()[m.console.Len()-1].Message, "Lost connection") {
		t.Fatal("expected reconnect log line")
	}

	m.quit()
	if _, cmd := m.Update(streamClosedMsg{err: errors.New("EOF")}); cmd != nil {
		t.Fatal("no reconnect after quitting")
	}
}

func TestUnreachableHostReportedOnceWithBackoff(t *testing.T) {
	m := newTestModel(t)
	m.config.ReconnectDelay = time.Second
	refused := errors.New("connection refused")

	var delays []time.Duration
	for i := 0; i < 8; i++ {
		m.Update(streamClosedMsg{err: refused})
		delays = append(delays, m.retryIn)
	}
	if m.console.Len() != 1 {
		t.Fatalf("expected a single outage line, got %d", m.console.Len())
	}
	if !strings.Contains(m.console.Entries()[0].Message, "Cannot reach host") {
		t.Fatalf("unexpected outage line %q", m.console.Entries()[0].Message)
	}
	want := []time.Duration{1, 2, 4, 8, 16, 30, 30, 30}
	for i := range want {
		if delays[i] != want[i]*time.Second {
			t.Fatalf("retry %d: got %v, want %v", i, delays[i], want[i]*time.Second)
		}
	}

	m.Update(hostEventMsg{Event: bridge.Event{Type: bridge.EventReady}})
	if m.hostDown || m.retryIn != 0 {
		t.Fatal("an event should clear the outage")
	}
	if got := m.console.Entries()[m.console.Len()-1].Message; got != "Connection to host restored." {
		t.Fatalf("unexpected restore line %q", got)
	}
	m.Update(streamClosedMsg{err: refused})
	if m.retryIn != time.Second {
		t.Fatalf("backoff should restart after a connection, got %v", m.retryIn)
	}
}

func TestViewRendersActivePanel(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 110, Height: 32})

	view := m.View()
	for _, want := range []string{"Single Image", "Batch Process", "Settings", "ctrl+o"} {
		if !strings.Contains(view, want) {
			t.Fatalf("single view missing %q", want)
		}
	}

	m.applyEvent(bridge.Event{Type: bridge.EventSingleResult, Original: onePixelPNG, Processed: onePixelPNG})
	view = m.View()
	if !strings.Contains(view, "Original Image") || !strings.Contains(view, "Processed Image") {
		t.Fatal("single result should render both previews")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	m.applyEvent(bridge.Event{Type: bridge.EventFolder, Folder: bridge.FolderInput, Path: "/data/holiday"})
	m.applyEvent(bridge.Event{Type: bridge.EventProgress, Percent: 64})
	view = m.View()
	for _, want := range []string{"holiday", "64%", "not selected"} {
		if !strings.Contains(view, want) {
			t.Fatalf("batch view missing %q", want)
		}
	}

	m.Update(altRunes(","))
	if view = m.View(); !strings.Contains(view, "● dark") {
		t.Fatal("settings view should mark the active theme")
	}
}

func TestOverlayRightKeepsWidth(t *testing.T) {
	base := strings.Repeat("a", 20) + "\n" + strings.Repeat("b", 20)
	out := overlayRight(base, "XY", 20)
	lines := strings.Split(out, "\n")
	if !strings.HasPrefix(lines[0], strings.Repeat("a", 18)) || !strings.HasSuffix(lines[0], "XY") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if lines[1] != strings.Repeat("b", 20) {
		t.Fatalf("second line should be untouched, got %q", lines[1])
	}
}

func containsQuit(msgs []tea.Msg) bool {
	for _, msg := range msgs {
		if _, ok := msg.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}
