package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rs/zerolog"

	"github.com/csheth/cutout/internal/bridge"
	"github.com/csheth/cutout/internal/feedback"
	"github.com/csheth/cutout/internal/guide"
	"github.com/csheth/cutout/internal/preview"
	"github.com/csheth/cutout/internal/prefs"
	"github.com/csheth/cutout/internal/uistate"
)

var errNoHost = errors.New("no host configured")

// Config wires runtime options into the TUI program.
type Config struct {
	API        bridge.API
	Controller *uistate.Controller
	Logger     zerolog.Logger

	HostURL         string
	NotificationTTL time.Duration
	WelcomeDelay    time.Duration
	ReconnectDelay  time.Duration
	ExportDir       string
	Mouse           bool

	// Now defaults to time.Now; tests pin it.
	Now func() time.Time
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.WelcomeDelay < 0 {
		config.WelcomeDelay = defaultWelcomeIn
	}
	if config.ReconnectDelay <= 0 {
		config.ReconnectDelay = defaultReconnect
	}
	if strings.TrimSpace(config.ExportDir) == "" {
		config.ExportDir = defaultExportDir
	}
	logger := config.Logger.With().Str("component", "tui").Logger()
	ui := config.Controller
	if ui == nil {
		ui = uistate.NewController(prefs.NewMemoryStore(), config.Logger)
	}
	ui.SelectTab(string(uistate.TabSingle))

	ctx, cancel := context.WithCancel(context.Background())
	zones := zone.New()
	zones.SetEnabled(config.Mouse)

	layout := newPageLayout()
	m := &model{
		config:   config,
		ctx:      ctx,
		cancel:   cancel,
		log:      logger,
		ui:       ui,
		layout:   layout,
		keys:     newKeyMap(),
		help:     help.New(),
		zones:    zones,
		toasts:   feedback.NewCenter(feedback.WithTTL(config.NotificationTTL), feedback.WithClock(config.Now)),
		progress: feedback.NewReporter(layout.progressWidth),
		console:  feedback.NewConsole(layout.consoleWidth, layout.consoleHeight, config.Now),
		loading:  feedback.NewGate(),
		previews: preview.NewRenderer(0),
		jobs:     newJobBus(ctx, config.API, config.Logger),
		running:  map[string]jobSnapshot{},
		guide: guide.Build(guide.Metadata{
			HostURL:   config.HostURL,
			ExportDir: config.ExportDir,
			Mouse:     config.Mouse,
		}),
	}
	m.applyTheme()
	return m
}

type model struct {
	config Config
	ctx    context.Context
	cancel context.CancelFunc
	log    zerolog.Logger

	ui     *uistate.Controller
	styles styles
	layout pageLayout
	keys   keyMap
	help   help.Model
	zones  *zone.Manager
	guide  []guide.Step

	toasts   *feedback.Center
	progress *feedback.Reporter
	console  *feedback.Console
	loading  *feedback.Gate
	previews *preview.Renderer

	gate    bridge.ReadyGate
	jobs    *jobBus
	running map[string]jobSnapshot

	// connected flips on the first event of a stream. hostDown marks that
	// the outage was already reported; retryIn doubles per failed attempt.
	events    <-chan bridge.Event
	errs      <-chan error
	connected bool
	hostDown  bool
	retryIn   time.Duration

	result        *singleResult
	folders       folderSelection
	batchRunning  bool
	helpVisible   bool
	quitAfterCall bool
	quitting      bool
}

func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{welcomeCmd(m.config.WelcomeDelay)}
	if m.config.API == nil {
		m.console.Append("No host configured; actions are disabled.")
	} else {
		cmds = append(cmds, openStreamCmd(m.ctx, m.config.API))
	}
	return tea.Batch(cmds...)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case spinner.TickMsg:
		return m, m.loading.Update(msg)
	case feedback.ExpiredMsg:
		m.toasts.Expire(msg.ID)
		return m, nil
	case welcomeMsg:
		return m, m.notify(welcomeMessage, feedback.KindSuccess)
	case streamOpenedMsg:
		m.events, m.errs = msg.events, msg.errs
		m.log.Debug().Msg("host event stream opened")
		return m, waitForEventCmd(m.events, m.errs)
	case hostEventMsg:
		m.streamAlive()
		cmd := m.applyEvent(msg.Event)
		return m, tea.Batch(cmd, waitForEventCmd(m.events, m.errs))
	case streamClosedMsg:
		wasConnected := m.connected
		m.connected = false
		if m.quitting || m.ctx.Err() != nil {
			return m, nil
		}
		return m, m.streamLost(msg.err, wasConnected)
	case reconnectMsg:
		if m.quitting {
			return m, nil
		}
		return m, openStreamCmd(m.ctx, m.config.API)
	case jobSignalMsg:
		m.running[msg.Snapshot.ID] = msg.Snapshot
		return m, nil
	case jobResultMsg:
		return m, m.finishJob(msg)
	case exportResultMsg:
		if msg.err != nil {
			return m, m.reportFailure("Export", msg.err)
		}
		m.console.Append("Exported " + msg.path)
		return m, m.notify("Exported "+folderName(msg.path), feedback.KindSuccess)
	}
	return m, nil
}

func (m *model) streamAlive() {
	if m.connected {
		return
	}
	m.connected = true
	m.retryIn = 0
	if m.hostDown {
		m.hostDown = false
		m.log.Info().Msg("host event stream restored")
		m.console.Append("Connection to host restored.")
	}
}

// streamLost schedules the next attempt. The outage is reported once; later
// failures only back off until an event arrives again.
func (m *model) streamLost(err error, wasConnected bool) tea.Cmd {
	switch {
	case wasConnected || m.retryIn == 0:
		m.retryIn = m.config.ReconnectDelay
	default:
		m.retryIn = min(m.retryIn*2, maxReconnectDelay)
	}
	if m.hostDown {
		m.log.Debug().Err(err).Dur("retry_in", m.retryIn).Msg("host still unreachable")
		return reconnectCmd(m.retryIn)
	}
	m.hostDown = true
	m.log.Warn().Err(err).Dur("retry_in", m.retryIn).Msg("host event stream closed")
	if wasConnected {
		m.console.Append(fmt.Sprintf("Lost connection to host (%v); reconnecting.", err))
	} else {
		m.console.Append(fmt.Sprintf("Cannot reach host (%v); retrying.", err))
	}
	return reconnectCmd(m.retryIn)
}

// applyEvent routes one host event into the widgets. Events are applied in
// arrival order.
func (m *model) applyEvent(ev bridge.Event) tea.Cmd {
	switch ev.Type {
	case bridge.EventReady:
		first := !m.gate.Ready()
		released := m.gate.MarkReady()
		if !first {
			return nil
		}
		m.log.Info().Int("released", len(released)).Msg("host ready")
		// One sequence keeps the host seeing the calls in submission order.
		starts := make([]tea.Cmd, 0, len(released))
		for _, call := range released {
			starts = append(starts, m.jobs.Start(call))
		}
		return tea.Batch(m.notify(readyMessage, feedback.KindSuccess), tea.Sequence(starts...))
	case bridge.EventSingleResult:
		m.loading.Hide()
		m.result = &singleResult{
			Original:  bridge.SplitDataURL(ev.Original),
			Processed: bridge.SplitDataURL(ev.Processed),
		}
		return nil
	case bridge.EventProgress:
		m.progress.Set(ev.Percent)
		return nil
	case bridge.EventLog:
		m.console.Append(ev.Message)
		return nil
	case bridge.EventNotify:
		kind := feedback.ParseKind(ev.Kind)
		if kind == feedback.KindError {
			m.loading.Hide()
		}
		return m.notify(ev.Message, kind)
	case bridge.EventFolder:
		switch ev.Folder {
		case bridge.FolderInput:
			m.folders.Input = ev.Path
		case bridge.FolderOutput:
			m.folders.Output = ev.Path
		default:
			m.log.Warn().Str("folder", ev.Folder).Msg("ignoring folder event")
		}
		return nil
	case bridge.EventBatch:
		m.batchRunning = ev.Running
		return nil
	case bridge.EventLoading:
		if ev.Busy {
			return m.loading.Show()
		}
		m.loading.Hide()
		return nil
	default:
		m.log.Warn().Str("type", string(ev.Type)).Msg("ignoring unknown host event")
		return nil
	}
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Paste {
		return m, m.handlePaste()
	}
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, m.quit()
	case key.Matches(msg, m.keys.CloseQuit):
		return m, m.closeAndQuit()
	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		m.help.ShowAll = m.helpVisible
		return m, nil
	case key.Matches(msg, m.keys.Dismiss):
		if m.helpVisible {
			m.helpVisible = false
			m.help.ShowAll = false
			return m, nil
		}
		m.toasts.DismissNewest()
		return m, nil
	case key.Matches(msg, m.keys.Open):
		return m, m.selectImage()
	case key.Matches(msg, m.keys.Batch), key.Matches(msg, m.keys.Tab2):
		return m, m.selectTab(string(uistate.TabBatch))
	case key.Matches(msg, m.keys.Settings), key.Matches(msg, m.keys.Tab3):
		return m, m.selectTab(string(uistate.TabSettings))
	case key.Matches(msg, m.keys.Tab1):
		return m, m.selectTab(string(uistate.TabSingle))
	case key.Matches(msg, m.keys.NextTab):
		return m, m.selectTab(string(m.ui.Tabs().Offset(1)))
	case key.Matches(msg, m.keys.PrevTab):
		return m, m.selectTab(string(m.ui.Tabs().Offset(-1)))
	case key.Matches(msg, m.keys.Minimize):
		return m, m.submit(callFor(bridge.MethodMinimizeWindow))
	case key.Matches(msg, m.keys.Maximize):
		return m, m.submit(callFor(bridge.MethodToggleMaximizeWindow))
	}

	switch m.ui.ActiveTab() {
	case uistate.TabSingle:
		return m, m.handleSingleKey(msg)
	case uistate.TabBatch:
		return m, m.handleBatchKey(msg)
	case uistate.TabSettings:
		return m, m.handleSettingsKey(msg)
	default:
		return m, nil
	}
}

func (m *model) handleSingleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Select):
		return m.selectImage()
	case key.Matches(msg, m.keys.Save):
		return m.saveResult()
	case key.Matches(msg, m.keys.Export):
		return m.exportResult()
	}
	return nil
}

func (m *model) handleBatchKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Input):
		return m.submit(callFor(bridge.MethodSelectInputFolder))
	case key.Matches(msg, m.keys.Output):
		return m.submit(callFor(bridge.MethodSelectOutputFolder))
	case key.Matches(msg, m.keys.Start):
		return m.submit(callFor(bridge.MethodStartBatch))
	case key.Matches(msg, m.keys.Stop):
		return m.submit(callFor(bridge.MethodStopBatch))
	case key.Matches(msg, m.keys.ClearLog):
		m.console.Clear()
	}
	return nil
}

func (m *model) handleSettingsKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Dark):
		return m.setTheme(string(uistate.ThemeDark))
	case key.Matches(msg, m.keys.Light):
		return m.setTheme(string(uistate.ThemeLight))
	case key.Matches(msg, m.keys.ThemePrev):
		return m.setTheme(string(uistate.NextTheme(m.ui.Theme(), -1)))
	case key.Matches(msg, m.keys.ThemeNext):
		return m.setTheme(string(uistate.NextTheme(m.ui.Theme(), 1)))
	}
	return nil
}

// handlePaste covers terminals that deliver a dropped file as pasted text.
func (m *model) handlePaste() tea.Cmd {
	if m.ui.ActiveTab() != uistate.TabSingle {
		return nil
	}
	return m.notify(dropMessage, feedback.KindInfo)
}

func (m *model) selectTab(name string) tea.Cmd {
	change, ok := m.ui.SelectTab(name)
	if ok && change.Changed() {
		m.log.Debug().Str("from", string(change.From)).Str("to", string(change.To)).Msg("tab changed")
	}
	return nil
}

func (m *model) setTheme(name string) tea.Cmd {
	if err := m.ui.SetTheme(name); err != nil {
		m.log.Warn().Err(err).Str("theme", name).Msg("theme change rejected")
		return m.notify(err.Error(), feedback.KindError)
	}
	m.applyTheme()
	return nil
}

func (m *model) applyTheme() {
	palette := m.ui.Palette()
	m.styles = newStyles(palette)
	m.progress.SetColors(palette.Accent, palette.Border)
	m.console.SetStampColor(palette.Muted)
}

func (m *model) selectImage() tea.Cmd {
	return m.submit(callFor(bridge.MethodSelectImage))
}

func (m *model) saveResult() tea.Cmd {
	if m.result == nil || m.result.Processed == "" {
		return m.notify("Nothing to save yet. Select an image first.", feedback.KindInfo)
	}
	return m.submit(saveCall(m.result.Processed))
}

func (m *model) exportResult() tea.Cmd {
	if m.result == nil || m.result.Processed == "" {
		return m.notify("Nothing to export yet. Select an image first.", feedback.KindInfo)
	}
	return exportCmd(m.config.ExportDir, m.result.Processed, m.config.Now())
}

// submit runs call now when the host is ready and queues it otherwise.
func (m *model) submit(call bridge.Call) tea.Cmd {
	if m.config.API == nil {
		return m.reportFailure(actionLabel(call.Name), errNoHost)
	}
	ready, ok := m.gate.Submit(call)
	if !ok {
		m.console.Append(fmt.Sprintf("%s queued until the host is ready.", actionLabel(call.Name)))
		return nil
	}
	return m.jobs.Start(ready)
}

func (m *model) finishJob(msg jobResultMsg) tea.Cmd {
	delete(m.running, msg.Snapshot.ID)
	var cmd tea.Cmd
	if msg.Snapshot.Status == jobStatusFailed {
		if msg.Snapshot.Method == bridge.MethodSelectImage {
			m.loading.Hide()
		}
		cmd = m.reportFailure(actionLabel(msg.Snapshot.Method), msg.Err)
	}
	if msg.Snapshot.Method == bridge.MethodCloseWindow && m.quitAfterCall {
		return tea.Batch(cmd, m.quit())
	}
	return cmd
}

func (m *model) reportFailure(action string, err error) tea.Cmd {
	text := fmt.Sprintf("%s failed: %v", action, err)
	m.log.Error().Err(err).Str("action", action).Msg("action failed")
	m.console.Append(text)
	return m.notify(text, feedback.KindError)
}

func (m *model) notify(message string, kind feedback.Kind) tea.Cmd {
	_, cmd := m.toasts.Notify(message, kind)
	return cmd
}

// closeAndQuit asks the host to close the window and quits once it answered.
// Without a ready host there is no window to close.
func (m *model) closeAndQuit() tea.Cmd {
	if m.config.API == nil || !m.gate.Ready() {
		return m.quit()
	}
	m.quitAfterCall = true
	return m.submit(callFor(bridge.MethodCloseWindow))
}

func (m *model) quit() tea.Cmd {
	if !m.quitting {
		m.quitting = true
		m.cancel()
		m.zones.Close()
		m.log.Info().Msg("quitting")
	}
	return tea.Quit
}

func (m *model) resize(width, height int) {
	m.layout.Update(width, height)
	m.progress.SetWidth(m.layout.progressWidth)
	m.console.SetSize(m.layout.consoleWidth, m.layout.consoleHeight)
	m.help.Width = width
}
