// Package uistate owns the UI state that outlives a single widget: the
// active theme and the active tab.
package uistate

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/csheth/cutout/internal/prefs"
)

// Controller holds the theme and tab selection behind explicit accessors.
// It is not safe for concurrent use; the UI loop is its only writer.
type Controller struct {
	store   prefs.Store
	log     zerolog.Logger
	palette Palette
	tabs    TabState
}

// NewController loads the persisted theme. A missing value yields the
// default theme; an unreadable or unknown value is logged and also falls
// back to the default.
func NewController(store prefs.Store, log zerolog.Logger, tabs ...Tab) *Controller {
	if store == nil {
		store = prefs.NewMemoryStore()
	}
	c := &Controller{
		store: store,
		log:   log.With().Str("component", "uistate").Logger(),
		tabs:  NewTabState(tabs...),
	}
	c.palette, _ = LookupTheme(string(DefaultTheme))
	c.restoreTheme()
	return c
}

func (c *Controller) restoreTheme() {
	stored, ok, err := c.store.Get(prefs.KeyTheme)
	if err != nil {
		c.log.Warn().Err(err).Msg("load persisted theme")
		return
	}
	if !ok || stored == "" {
		return
	}
	palette, err := LookupTheme(stored)
	if err != nil {
		c.log.Warn().Err(err).Str("theme", stored).Msg("ignoring persisted theme")
		return
	}
	c.palette = palette
}

// Theme returns the active theme name.
func (c *Controller) Theme() ThemeName {
	return c.palette.Name
}

// Palette returns the active palette.
func (c *Controller) Palette() Palette {
	return c.palette
}

// SetTheme validates name, persists it and then makes it active.
func (c *Controller) SetTheme(name string) error {
	palette, err := LookupTheme(name)
	if err != nil {
		return err
	}
	if err := c.store.Set(prefs.KeyTheme, string(palette.Name)); err != nil {
		return fmt.Errorf("persist theme: %w", err)
	}
	c.palette = palette
	c.log.Debug().Str("theme", string(palette.Name)).Msg("theme changed")
	return nil
}

// Tabs returns the current tab state.
func (c *Controller) Tabs() TabState {
	return c.tabs
}

// ActiveTab returns the active tab, or "" before the first selection.
func (c *Controller) ActiveTab() Tab {
	tab, _ := c.tabs.Active()
	return tab
}

// SelectTab makes name the only active tab. Unknown names are logged and
// leave the selection untouched.
func (c *Controller) SelectTab(name string) (TabChange, bool) {
	next, ok := c.tabs.Select(name)
	if !ok {
		c.log.Warn().Err(ErrUnknownTab).Str("tab", name).Msg("ignoring tab selection")
		return TabChange{From: c.ActiveTab(), To: c.ActiveTab()}, false
	}
	change := Diff(c.tabs, next)
	c.tabs = next
	return change, true
}
