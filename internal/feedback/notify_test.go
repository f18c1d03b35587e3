package feedback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 10, 19, 9, 30, 0, 0, time.Local)}
}

func TestNotifyStacksInArrivalOrder(t *testing.T) {
	c := NewCenter(WithClock(newFakeClock().Now))

	first, _ := c.Notify("one", KindInfo)
	second, _ := c.Notify("one", KindInfo)
	third, _ := c.Notify("", KindError)

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, []string{first.ID, second.ID, third.ID}, []string{items[0].ID, items[1].ID, items[2].ID})
	assert.NotEqual(t, first.ID, second.ID, "identical calls must not be merged")
	assert.Equal(t, "", items[2].Message)
	assert.Equal(t, KindError, items[2].Kind)
}

func TestNotifyNormalizesUnknownKind(t *testing.T) {
	c := NewCenter()
	n, _ := c.Notify("hello", Kind("warning"))
	assert.Equal(t, KindInfo, n.Kind)
}

func TestSavedNotificationExpiresAfterTTL(t *testing.T) {
	clock := newFakeClock()
	c := NewCenter(WithClock(clock.Now))

	n, _ := c.Notify("Saved!", KindSuccess)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, KindSuccess, c.Items()[0].Kind)
	assert.Equal(t, "Saved!", c.Items()[0].Message)

	clock.Advance(4999 * time.Millisecond)
	assert.Empty(t, c.Sweep())
	require.Equal(t, 1, c.Len())

	clock.Advance(time.Millisecond)
	assert.Equal(t, []string{n.ID}, c.Sweep())
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.Pending())
}

func TestLiveCountMatchesCallsMinusRemovals(t *testing.T) {
	clock := newFakeClock()
	c := NewCenter(WithClock(clock.Now))

	calls, expired, dismissed := 0, 0, 0
	var ids []string
	for step := 0; step < 40; step++ {
		n, _ := c.Notify("tick", KindInfo)
		calls++
		ids = append(ids, n.ID)
		if step%3 == 0 {
			if c.Dismiss(ids[len(ids)/2]) {
				dismissed++
			}
		}
		clock.Advance(700 * time.Millisecond)
		expired += len(c.Sweep())

		require.Equal(t, calls-expired-dismissed, c.Len())
		require.GreaterOrEqual(t, c.Len(), 0)
	}
}

func TestDismissTwiceIsNoop(t *testing.T) {
	c := NewCenter()
	n, _ := c.Notify("bye", KindInfo)

	assert.True(t, c.Dismiss(n.ID))
	assert.False(t, c.Dismiss(n.ID))
	assert.False(t, c.Expire(n.ID))
	assert.Equal(t, 0, c.Len())
}

func TestExpiryTaskFiresExpiredMsg(t *testing.T) {
	c := NewCenter(WithTTL(10 * time.Millisecond))
	n, cmd := c.Notify("soon gone", KindInfo)
	require.NotNil(t, cmd)

	msg := cmd()
	expired, ok := msg.(ExpiredMsg)
	require.True(t, ok, "expected ExpiredMsg, got %T", msg)
	assert.Equal(t, n.ID, expired.ID)

	assert.True(t, c.Expire(expired.ID))
	assert.Equal(t, 0, c.Len())
}

func TestDismissCancelsExpiryTask(t *testing.T) {
	c := NewCenter(WithTTL(time.Hour))
	n, cmd := c.Notify("dismiss me", KindInfo)
	require.Equal(t, 1, c.Pending())

	require.True(t, c.Dismiss(n.ID))
	assert.Equal(t, 0, c.Pending())

	done := make(chan any, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		assert.Nil(t, msg)
	case <-time.After(time.Second):
		t.Fatal("cancelled task did not return")
	}
}

func TestDismissNewest(t *testing.T) {
	c := NewCenter()
	first, _ := c.Notify("first", KindInfo)
	c.Notify("second", KindInfo)

	require.True(t, c.DismissNewest())
	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, first.ID, items[0].ID)

	require.True(t, c.DismissNewest())
	assert.False(t, c.DismissNewest())
}
