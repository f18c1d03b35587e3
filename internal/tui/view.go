package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/cutout/internal/uistate"
)

func (m *model) View() string {
	if m.quitting {
		return ""
	}
	active := m.ui.ActiveTab()

	var body string
	if m.helpVisible {
		body = m.helpOverlayView()
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.menuView(), " ", m.panelView(active))
	}
	body = overlayRight(body, m.toastStackView(), m.layout.windowWidth)

	frame := lipgloss.JoinVertical(
		lipgloss.Left,
		m.titleBarView(),
		body,
		m.help.View(m.keys.forTab(active)),
		m.statusBarView(),
	)
	return m.zones.Scan(m.styles.app.Render(frame))
}

func (m *model) titleBarView() string {
	left := m.styles.title.Render(appTitle) + m.styles.tagline.Render("  "+appTagline)
	right := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.zones.Mark(zoneMinimize, m.styles.chrome.Render("–")),
		m.zones.Mark(zoneMaximize, m.styles.chrome.Render("□")),
		m.zones.Mark(zoneClose, m.styles.chrome.Render("×")),
	)
	inner := m.layout.windowWidth - 2
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	filler := m.styles.titleBar.UnsetPadding().Render(strings.Repeat(" ", gap))
	return m.styles.titleBar.Render(left + filler + right)
}

func (m *model) menuView() string {
	tabs := m.ui.Tabs()
	lines := make([]string, 0, len(tabs.Tabs()))
	for idx, tab := range tabs.Tabs() {
		label := fmt.Sprintf("%d %s", idx+1, tabLabels[tab])
		style := m.styles.menuItem
		if tabs.IsActive(tab) {
			style = m.styles.menuActive
		}
		lines = append(lines, m.zones.Mark(zoneMenuPrefix+string(tab), style.Width(menuWidth-2).Render(label)))
	}
	return m.styles.menu.Height(m.layout.bodyHeight - 2).Render(strings.Join(lines, "\n"))
}

func (m *model) panelView(active uistate.Tab) string {
	var content string
	switch active {
	case uistate.TabSingle:
		content = m.singleView()
	case uistate.TabBatch:
		content = m.batchView()
	case uistate.TabSettings:
		content = m.settingsView()
	}
	return m.styles.panel.
		Width(m.layout.panelWidth - 2).
		Height(m.layout.bodyHeight - 2).
		Render(content)
}

func (m *model) singleView() string {
	cb := &contentBuilder{}
	cb.WriteLine(m.styles.sectionTitle.Render(tabLabels[uistate.TabSingle]))

	if m.result == nil {
		prompt := "Press ctrl+o to choose an image"
		if m.zones.Enabled() {
			prompt += " or click here"
		}
		if spin := m.loading.View(); spin != "" {
			prompt = spin + " Removing background…"
		}
		drop := m.styles.dropZone.Width(m.layout.panelInner - 2).Render(prompt)
		cb.WriteLine(m.zones.Mark(zoneDrop, drop))
		return cb.String()
	}

	original := m.previewView("Original Image", m.result.Original)
	processed := m.previewView("Processed Image", m.result.Processed)
	cb.WriteLine(lipgloss.JoinHorizontal(lipgloss.Top, original, "  ", processed))
	cb.WriteRune('\n')
	buttons := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.zones.Mark(zoneSave, m.styles.buttonActive.Render("s Save Image")),
		" ",
		m.zones.Mark(zoneExport, m.styles.button.Render("e Export")),
		" ",
		m.zones.Mark(zoneDrop, m.styles.button.Render("enter New Image")),
	)
	if spin := m.loading.View(); spin != "" {
		buttons = lipgloss.JoinHorizontal(lipgloss.Center, buttons, "  ", spin+" Working…")
	}
	cb.WriteLine(buttons)
	return cb.String()
}

func (m *model) previewView(title, payload string) string {
	heading := m.styles.helper.Render(title)
	rendered, err := m.previews.Render(payload, m.layout.previewWidth, m.layout.previewHeight)
	if err != nil {
		rendered = m.styles.errorText.Render(wordwrap.String("Preview unavailable: "+err.Error(), m.layout.previewWidth))
	}
	return lipgloss.NewStyle().Width(m.layout.previewWidth).Render(heading + "\n" + rendered)
}

func (m *model) batchView() string {
	cb := &contentBuilder{}
	cb.WriteLine(m.styles.sectionTitle.Render(tabLabels[uistate.TabBatch]))
	cb.WriteLine(m.folderLine("Input folder ", m.folders.Input))
	cb.WriteLine(m.folderLine("Output folder", m.folders.Output))
	cb.WriteRune('\n')

	start, stop := m.styles.buttonActive, m.styles.button
	if m.batchRunning {
		start, stop = m.styles.button, m.styles.buttonActive
	}
	cb.WriteLine(lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.zones.Mark(zoneInput, m.styles.button.Render("i Input")),
		" ",
		m.zones.Mark(zoneOutput, m.styles.button.Render("o Output")),
		" ",
		m.zones.Mark(zoneStart, start.Render("enter Start")),
		" ",
		m.zones.Mark(zoneStop, stop.Render("x Stop")),
	))
	cb.WriteLine(m.progress.View())
	logTitle := m.styles.sectionTitle.Render("Log") + " " + m.zones.Mark(zoneClearLog, m.styles.helper.Render("(c clear)"))
	cb.WriteLine(logTitle)
	cb.WriteString(m.console.View())
	return cb.String()
}

// folderLine shows the folder name with the full path dimmed after it.
func (m *model) folderLine(label, path string) string {
	prefix := m.styles.helper.Render(label + "  ")
	if path == "" {
		return prefix + m.styles.pathDim.Render("not selected")
	}
	name := m.styles.path.Render(folderName(path))
	room := m.layout.panelInner - lipgloss.Width(prefix) - lipgloss.Width(name) - 1
	full := ""
	if room > 3 {
		full = " " + m.styles.pathDim.Render(truncate.StringWithTail(path, uint(room), "…"))
	}
	return prefix + name + full
}

func (m *model) settingsView() string {
	cb := &contentBuilder{}
	cb.WriteLine(m.styles.sectionTitle.Render(tabLabels[uistate.TabSettings]))
	cb.WriteLine(m.styles.helper.Render("Theme"))

	current := m.ui.Theme()
	buttons := make([]string, 0, len(uistate.ThemeNames()))
	for _, name := range uistate.ThemeNames() {
		style := m.styles.button
		label := string(name)
		if name == current {
			style = m.styles.buttonActive
			label = "● " + label
		}
		buttons = append(buttons, m.zones.Mark(zoneThemePrefix+string(name), style.Render(label)), " ")
	}
	cb.WriteLine(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	cb.WriteLine(m.styles.helper.Render("d / l or ← / → to switch. The choice is kept for the next launch."))
	cb.WriteRune('\n')
	cb.WriteLine(m.styles.helper.Render("Host    ") + m.styles.path.Render(m.config.HostURL))
	cb.WriteLine(m.styles.helper.Render("Exports ") + m.styles.path.Render(m.config.ExportDir))
	return cb.String()
}

func (m *model) toastStackView() string {
	items := m.toasts.Items()
	if len(items) == 0 {
		return ""
	}
	wrap := toastWidth - 8
	rows := make([]string, 0, len(items))
	for _, n := range items {
		text := wordwrap.String(toastIcon(n.Kind)+" "+n.Message, wrap)
		closeBtn := m.zones.Mark(zoneToastPrefix+n.ID, m.styles.toastClose.Render("×"))
		content := lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Width(wrap+2).Render(text), closeBtn)
		rows = append(rows, m.styles.toastStyle(n.Kind).Render(content))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rows...)
}

func (m *model) helpOverlayView() string {
	cb := &contentBuilder{}
	cb.WriteLine(m.styles.sectionTitle.Render("Getting started"))
	wrap := m.layout.windowWidth - 12
	if wrap < 20 {
		wrap = 20
	}
	for idx, step := range m.guide {
		cb.WriteLine(fmt.Sprintf("%d. %s", idx+1, m.styles.path.Render(step.Title)))
		cb.WriteLine(indentMultiline(m.styles.helper.Render(wordwrap.String(step.Description, wrap)), "   "))
	}
	cb.WriteRune('\n')
	cb.WriteLine(m.styles.helper.Render("esc or ? closes this help."))
	return m.styles.helpBox.Width(m.layout.windowWidth - 2).Render(cb.String())
}

func (m *model) statusBarView() string {
	var parts []string
	switch {
	case m.config.API == nil:
		parts = append(parts, "no host")
	case !m.gate.Ready():
		parts = append(parts, waitingForHostMsg)
	case m.hostDown:
		parts = append(parts, "reconnecting…")
	default:
		parts = append(parts, "host ready")
	}
	if n := m.gate.Pending(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d queued", n))
	}
	if n := len(m.running); n > 0 {
		parts = append(parts, fmt.Sprintf("%d running", n))
	}
	if spin := m.loading.View(); spin != "" {
		parts = append(parts, spin+" processing")
	}
	if m.batchRunning {
		parts = append(parts, "batch "+m.progress.Label())
	}
	parts = append(parts, "theme "+string(m.ui.Theme()))
	if n := m.toasts.Len(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", n, plural(n, "notification")))
	}
	return m.styles.statusBar.Width(m.layout.windowWidth).Render(strings.Join(parts, "  •  "))
}

// overlayRight draws overlay over the top right corner of base. Lines are cut
// with an ANSI aware truncation so styles in base survive.
func overlayRight(base, overlay string, width int) string {
	if overlay == "" {
		return base
	}
	baseLines := strings.Split(base, "\n")
	overLines := strings.Split(overlay, "\n")
	overWidth := lipgloss.Width(overlay)
	left := width - overWidth
	if left < 0 {
		left = 0
	}
	for idx, line := range overLines {
		if idx >= len(baseLines) {
			baseLines = append(baseLines, "")
		}
		kept := truncate.String(baseLines[idx], uint(left))
		if pad := left - lipgloss.Width(kept); pad > 0 {
			kept += strings.Repeat(" ", pad)
		}
		baseLines[idx] = kept + "\x1b[0m" + line
	}
	return strings.Join(baseLines, "\n")
}

func indentMultiline(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
