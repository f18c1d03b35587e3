package feedback

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

const stampLayout = "15:04:05"

// Entry is one stamped console line.
type Entry struct {
	Stamp   string
	Message string
}

// Console is an append-only log that always shows its newest line.
type Console struct {
	entries    []Entry
	viewport   viewport.Model
	now        func() time.Time
	stampStyle lipgloss.Style
}

// NewConsole returns an empty console sized width x height.
func NewConsole(width, height int, now func() time.Time) *Console {
	if now == nil {
		now = time.Now
	}
	return &Console{
		viewport:   viewport.New(width, height),
		now:        now,
		stampStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
	}
}

// Append stamps message with the local time and scrolls to the bottom.
func (c *Console) Append(message string) Entry {
	entry := Entry{Stamp: c.now().Format(stampLayout), Message: message}
	c.entries = append(c.entries, entry)
	c.refresh()
	c.viewport.GotoBottom()
	return entry
}

// Clear drops every entry.
func (c *Console) Clear() {
	c.entries = nil
	c.refresh()
	c.viewport.GotoTop()
}

// Entries returns a copy of the log, oldest first.
func (c *Console) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Len returns the number of entries.
func (c *Console) Len() int {
	return len(c.entries)
}

// AtBottom reports whether the newest entry is visible.
func (c *Console) AtBottom() bool {
	return c.viewport.AtBottom()
}

// SetSize resizes the viewport and re-wraps the content.
func (c *Console) SetSize(width, height int) {
	c.viewport.Width = width
	c.viewport.Height = height
	c.refresh()
	c.viewport.GotoBottom()
}

// SetStampColor restyles the timestamp prefix.
func (c *Console) SetStampColor(color string) {
	c.stampStyle = c.stampStyle.Foreground(lipgloss.Color(color))
	c.refresh()
}

// View renders the visible window of the log.
func (c *Console) View() string {
	return c.viewport.View()
}

func (c *Console) refresh() {
	width := c.viewport.Width
	if width < 20 {
		width = 20
	}
	lines := make([]string, 0, len(c.entries))
	for _, entry := range c.entries {
		prefix := c.stampStyle.Render("[" + entry.Stamp + "]")
		body := wordwrap.String(entry.Message, width-len(entry.Stamp)-3)
		lines = append(lines, prefix+" "+body)
	}
	c.viewport.SetContent(strings.Join(lines, "\n"))
}
