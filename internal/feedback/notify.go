// Package feedback holds the transient UI widgets driven by host events:
// toast notifications, the progress bar, the log console and the loading
// spinner. Every type here is owned by the bubbletea update loop and is not
// safe for concurrent use.
package feedback

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// DefaultTTL is how long a notification stays up without a dismissal.
const DefaultTTL = 5 * time.Second

// Kind selects the severity styling of a notification.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// ParseKind maps host supplied kinds onto the known set. Anything unknown is
// shown as info.
func ParseKind(value string) Kind {
	switch Kind(value) {
	case KindSuccess:
		return KindSuccess
	case KindError:
		return KindError
	default:
		return KindInfo
	}
}

// Notification is a single toast.
type Notification struct {
	ID        string
	Message   string
	Kind      Kind
	CreatedAt time.Time
}

// ExpiredMsg is delivered when a notification's expiry task fires.
type ExpiredMsg struct {
	ID string
}

// CenterOption customizes a Center.
type CenterOption func(*Center)

// WithTTL overrides DefaultTTL. Non-positive values are ignored.
func WithTTL(ttl time.Duration) CenterOption {
	return func(c *Center) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock injects the time source used for CreatedAt and Sweep.
func WithClock(now func() time.Time) CenterOption {
	return func(c *Center) {
		if now != nil {
			c.now = now
		}
	}
}

// Center keeps the stack of live notifications in arrival order.
type Center struct {
	ttl   time.Duration
	now   func() time.Time
	items []Notification
	tasks map[string]*expiryTask
}

// NewCenter returns an empty Center.
func NewCenter(opts ...CenterOption) *Center {
	c := &Center{
		ttl:   DefaultTTL,
		now:   time.Now,
		tasks: map[string]*expiryTask{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL reports the configured lifetime.
func (c *Center) TTL() time.Duration {
	return c.ttl
}

// Notify appends a notification and returns the command that expires it.
// Empty messages are kept; every call produces a new notification.
func (c *Center) Notify(message string, kind Kind) (Notification, tea.Cmd) {
	n := Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Kind:      ParseKind(string(kind)),
		CreatedAt: c.now(),
	}
	c.items = append(c.items, n)
	task := newExpiryTask(n.ID, c.ttl)
	c.tasks[n.ID] = task
	return n, task.Cmd()
}

// Dismiss removes the notification and cancels its expiry task. It reports
// false when the notification is already gone.
func (c *Center) Dismiss(id string) bool {
	if !c.remove(id) {
		return false
	}
	if task, ok := c.tasks[id]; ok {
		task.Cancel()
		delete(c.tasks, id)
	}
	return true
}

// DismissNewest removes the most recently added notification.
func (c *Center) DismissNewest() bool {
	if len(c.items) == 0 {
		return false
	}
	return c.Dismiss(c.items[len(c.items)-1].ID)
}

// Expire applies an ExpiredMsg.
func (c *Center) Expire(id string) bool {
	delete(c.tasks, id)
	return c.remove(id)
}

// Sweep drops every notification whose lifetime reached the TTL according
// to the Center's clock and returns their ids. The UI relies on expiry tasks;
// Sweep exists for driving the Center with a simulated clock.
func (c *Center) Sweep() []string {
	now := c.now()
	var expired []string
	kept := c.items[:0]
	for _, n := range c.items {
		if now.Sub(n.CreatedAt) >= c.ttl {
			expired = append(expired, n.ID)
			if task, ok := c.tasks[n.ID]; ok {
				task.Cancel()
				delete(c.tasks, n.ID)
			}
			continue
		}
		kept = append(kept, n)
	}
	c.items = kept
	return expired
}

// Items returns a copy of the live notifications, oldest first.
func (c *Center) Items() []Notification {
	return append([]Notification(nil), c.items...)
}

// Len returns the number of live notifications.
func (c *Center) Len() int {
	return len(c.items)
}

// Pending returns the number of expiry tasks that have not fired or been
// cancelled.
func (c *Center) Pending() int {
	return len(c.tasks)
}

func (c *Center) remove(id string) bool {
	for i, n := range c.items {
		if n.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

type expiryTask struct {
	id    string
	timer *time.Timer
	done  chan struct{}
	once  sync.Once
}

func newExpiryTask(id string, ttl time.Duration) *expiryTask {
	return &expiryTask{
		id:    id,
		timer: time.NewTimer(ttl),
		done:  make(chan struct{}),
	}
}

// Cmd waits for the timer or a cancellation. A cancelled task yields nil,
// which bubbletea drops.
func (t *expiryTask) Cmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-t.timer.C:
			return ExpiredMsg{ID: t.id}
		case <-t.done:
			return nil
		}
	}
}

func (t *expiryTask) Cancel() {
	t.once.Do(func() {
		t.timer.Stop()
		close(t.done)
	})
}
