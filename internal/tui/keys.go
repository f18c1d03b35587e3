package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/csheth/cutout/internal/uistate"
)

type keyMap struct {
	Open      key.Binding
	Batch     key.Binding
	Settings  key.Binding
	Tab1      key.Binding
	Tab2      key.Binding
	Tab3      key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	Select    key.Binding
	Save      key.Binding
	Export    key.Binding
	Input     key.Binding
	Output    key.Binding
	Start     key.Binding
	Stop      key.Binding
	ClearLog  key.Binding
	Dark      key.Binding
	Light     key.Binding
	ThemePrev key.Binding
	ThemeNext key.Binding
	Dismiss   key.Binding
	Help      key.Binding
	Minimize  key.Binding
	Maximize  key.Binding
	CloseQuit key.Binding
	ForceQuit key.Binding

	tab uistate.Tab
}

func newKeyMap() keyMap {
	return keyMap{
		Open:      key.NewBinding(key.WithKeys("ctrl+o", "alt+o"), key.WithHelp("ctrl+o", "open image")),
		Batch:     key.NewBinding(key.WithKeys("ctrl+b", "alt+b"), key.WithHelp("ctrl+b", "batch")),
		Settings:  key.NewBinding(key.WithKeys("alt+,"), key.WithHelp("alt+,", "settings")),
		Tab1:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "single")),
		Tab2:      key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "batch")),
		Tab3:      key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "settings")),
		NextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select image")),
		Save:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Export:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Input:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "input folder")),
		Output:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "output folder")),
		Start:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start")),
		Stop:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
		ClearLog:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear log")),
		Dark:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dark")),
		Light:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "light")),
		ThemePrev: key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev theme")),
		ThemeNext: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next theme")),
		Dismiss:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss toast")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Minimize:  key.NewBinding(key.WithKeys("alt+-"), key.WithHelp("alt+-", "minimize")),
		Maximize:  key.NewBinding(key.WithKeys("alt+="), key.WithHelp("alt+=", "maximize")),
		CloseQuit: key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "close")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// forTab narrows the help output to the bindings that apply on tab.
func (k keyMap) forTab(tab uistate.Tab) keyMap {
	k.tab = tab
	return k
}

func (k keyMap) tabBindings() []key.Binding {
	switch k.tab {
	case uistate.TabSingle:
		return []key.Binding{k.Select, k.Save, k.Export}
	case uistate.TabBatch:
		return []key.Binding{k.Input, k.Output, k.Start, k.Stop, k.ClearLog}
	case uistate.TabSettings:
		return []key.Binding{k.Dark, k.Light, k.ThemePrev, k.ThemeNext}
	default:
		return nil
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return append(k.tabBindings(), k.NextTab, k.Help, k.CloseQuit)
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.tabBindings(),
		{k.Open, k.Batch, k.Settings, k.NextTab, k.PrevTab},
		{k.Dismiss, k.Help, k.Minimize, k.Maximize, k.CloseQuit, k.ForceQuit},
	}
}
