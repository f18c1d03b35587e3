package uistate

import "errors"

// Tab names one of the mutually exclusive panels.
type Tab string

const (
	TabSingle   Tab = "single"
	TabBatch    Tab = "batch"
	TabSettings Tab = "settings"
)

// DefaultTabs is the registered panel set, in menu order.
var DefaultTabs = []Tab{TabSingle, TabBatch, TabSettings}

// ErrUnknownTab is reported for selections outside the registered set.
var ErrUnknownTab = errors.New("unknown tab")

// TabState is the exclusive-selection state over a fixed tab set. The zero
// active value is the none-active state that exists only before the first
// selection.
type TabState struct {
	tabs   []Tab
	active Tab
}

// NewTabState registers tabs with none active.
func NewTabState(tabs ...Tab) TabState {
	if len(tabs) == 0 {
		tabs = DefaultTabs
	}
	return TabState{tabs: append([]Tab(nil), tabs...)}
}

// Select returns the state with only name active. Unregistered names leave
// the state unchanged and report false.
func (s TabState) Select(name string) (TabState, bool) {
	tab, ok := s.lookup(name)
	if !ok {
		return s, false
	}
	next := s
	next.active = tab
	return next, true
}

// Active returns the active tab and whether one is active at all.
func (s TabState) Active() (Tab, bool) {
	return s.active, s.active != ""
}

// IsActive reports whether tab is the active panel.
func (s TabState) IsActive(tab Tab) bool {
	return s.active != "" && s.active == tab
}

// Tabs returns the registered tabs in menu order.
func (s TabState) Tabs() []Tab {
	return append([]Tab(nil), s.tabs...)
}

// ActiveCount is at most one by construction.
func (s TabState) ActiveCount() int {
	n := 0
	for _, tab := range s.tabs {
		if s.IsActive(tab) {
			n++
		}
	}
	return n
}

// Offset returns the tab delta positions away from the active one, wrapping
// around. With nothing active it starts from the first tab.
func (s TabState) Offset(delta int) Tab {
	if len(s.tabs) == 0 {
		return ""
	}
	idx := 0
	for i, tab := range s.tabs {
		if tab == s.active {
			idx = i
			break
		}
	}
	n := len(s.tabs)
	return s.tabs[((idx+delta)%n+n)%n]
}

func (s TabState) lookup(name string) (Tab, bool) {
	for _, tab := range s.tabs {
		if string(tab) == name {
			return tab, true
		}
	}
	return "", false
}

// TabChange describes what the render step has to deactivate and activate.
type TabChange struct {
	From Tab
	To   Tab
}

// Changed reports whether anything has to be re-rendered.
func (c TabChange) Changed() bool {
	return c.From != c.To
}

// Diff compares two states.
func Diff(prev, next TabState) TabChange {
	return TabChange{From: prev.active, To: next.active}
}
