package uistate

import (
	"errors"
	"fmt"
	"strings"
)

// ThemeName identifies a registered palette.
type ThemeName string

const (
	ThemeDark  ThemeName = "dark"
	ThemeLight ThemeName = "light"
)

// DefaultTheme is used when nothing has been persisted yet.
const DefaultTheme = ThemeDark

// ErrUnknownTheme is wrapped by ConfigError for unmatched theme names.
var ErrUnknownTheme = errors.New("unknown theme")

// ConfigError reports a bad configuration value, such as an unregistered
// theme name.
type ConfigError struct {
	Key   string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v (available: %s)", e.Key, e.Value, e.Err, strings.Join(themeNameStrings(), ", "))
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Palette is the set of colors a theme contributes to the styles.
type Palette struct {
	Name       ThemeName
	Background string
	Surface    string
	Border     string
	Text       string
	Muted      string
	Accent     string
	Success    string
	Error      string
	Info       string
}

var palettes = []Palette{
	{
		Name:       ThemeDark,
		Background: "#1a1b26",
		Surface:    "#24283b",
		Border:     "#3b4261",
		Text:       "#c0caf5",
		Muted:      "#737aa2",
		Accent:     "#7aa2f7",
		Success:    "#9ece6a",
		Error:      "#f7768e",
		Info:       "#7dcfff",
	},
	{
		Name:       ThemeLight,
		Background: "#f5f5f7",
		Surface:    "#ffffff",
		Border:     "#c8ccd4",
		Text:       "#2e3440",
		Muted:      "#6b7280",
		Accent:     "#2563eb",
		Success:    "#15803d",
		Error:      "#b91c1c",
		Info:       "#0369a1",
	},
}

// ThemeNames returns the registered themes in selector order.
func ThemeNames() []ThemeName {
	names := make([]ThemeName, len(palettes))
	for i, p := range palettes {
		names[i] = p.Name
	}
	return names
}

// NormalizeThemeName trims and lowercases name and reports whether it is
// registered.
func NormalizeThemeName(name string) (ThemeName, bool) {
	p, ok := paletteFor(name)
	return p.Name, ok
}

// LookupTheme returns the palette for name or a ConfigError.
func LookupTheme(name string) (Palette, error) {
	p, ok := paletteFor(name)
	if !ok {
		return Palette{}, &ConfigError{Key: "theme", Value: name, Err: ErrUnknownTheme}
	}
	return p, nil
}

func paletteFor(name string) (Palette, bool) {
	normalized := ThemeName(strings.ToLower(strings.TrimSpace(name)))
	for _, p := range palettes {
		if p.Name == normalized {
			return p, true
		}
	}
	return Palette{}, false
}

// NextTheme cycles through the registered themes.
func NextTheme(current ThemeName, delta int) ThemeName {
	names := ThemeNames()
	idx := 0
	for i, name := range names {
		if name == current {
			idx = i
			break
		}
	}
	n := len(names)
	return names[((idx+delta)%n+n)%n]
}

func themeNameStrings() []string {
	out := make([]string, 0, len(palettes))
	for _, p := range palettes {
		out = append(out, string(p.Name))
	}
	return out
}
