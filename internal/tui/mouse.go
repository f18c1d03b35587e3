package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/cutout/internal/bridge"
	"github.com/csheth/cutout/internal/uistate"
)

func (m *model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.quitting || msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	for _, id := range m.clickTargets() {
		if info := m.zones.Get(id); info != nil && info.InBounds(msg) {
			return m, m.handleClick(id)
		}
	}
	return m, nil
}

// clickTargets lists the zones that can currently be on screen. Toasts come
// first because they are drawn over the panel.
func (m *model) clickTargets() []string {
	var ids []string
	for _, n := range m.toasts.Items() {
		ids = append(ids, zoneToastPrefix+n.ID)
	}
	ids = append(ids, zoneMinimize, zoneMaximize, zoneClose)
	for _, tab := range m.ui.Tabs().Tabs() {
		ids = append(ids, zoneMenuPrefix+string(tab))
	}
	switch m.ui.ActiveTab() {
	case uistate.TabSingle:
		ids = append(ids, zoneDrop, zoneSave, zoneExport)
	case uistate.TabBatch:
		ids = append(ids, zoneInput, zoneOutput, zoneStart, zoneStop, zoneClearLog)
	case uistate.TabSettings:
		for _, name := range uistate.ThemeNames() {
			ids = append(ids, zoneThemePrefix+string(name))
		}
	}
	return ids
}

func (m *model) handleClick(id string) tea.Cmd {
	switch {
	case strings.HasPrefix(id, zoneToastPrefix):
		m.toasts.Dismiss(strings.TrimPrefix(id, zoneToastPrefix))
		return nil
	case strings.HasPrefix(id, zoneMenuPrefix):
		return m.selectTab(strings.TrimPrefix(id, zoneMenuPrefix))
	case strings.HasPrefix(id, zoneThemePrefix):
		return m.setTheme(strings.TrimPrefix(id, zoneThemePrefix))
	}
	switch id {
	case zoneMinimize:
		return m.submit(callFor(bridge.MethodMinimizeWindow))
	case zoneMaximize:
		return m.submit(callFor(bridge.MethodToggleMaximizeWindow))
	case zoneClose:
		return m.closeAndQuit()
	case zoneDrop:
		return m.selectImage()
	case zoneSave:
		return m.saveResult()
	case zoneExport:
		return m.exportResult()
	case zoneInput:
		return m.submit(callFor(bridge.MethodSelectInputFolder))
	case zoneOutput:
		return m.submit(callFor(bridge.MethodSelectOutputFolder))
	case zoneStart:
		return m.submit(callFor(bridge.MethodStartBatch))
	case zoneStop:
		return m.submit(callFor(bridge.MethodStopBatch))
	case zoneClearLog:
		m.console.Clear()
	}
	return nil
}
