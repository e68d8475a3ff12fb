package toast

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotify_AppendsInOrder(t *testing.T) {
	q := NewQueue(time.Minute)
	t.Cleanup(q.Close)

	a := q.Notify("first", Info)
	b := q.Notify("second", "")

	got := q.List()
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Message)
	assert.Equal(t, Info, got[0].Severity)
	assert.Equal(t, Success, got[1].Severity, "empty severity defaults to success")
	assert.Less(t, a.ID, b.ID)
}

func TestNotify_SameInstantGetsDistinctIDs(t *testing.T) {
	fixed := time.Unix(1_700_000_000, 0)
	q := NewQueue(time.Minute, WithClock(func() time.Time { return fixed }))
	t.Cleanup(q.Close)

	a := q.Notify("a", Info)
	b := q.Notify("b", Info)
	c := q.Notify("c", Info)

	assert.Equal(t, fixed.UnixNano(), a.ID)
	assert.Equal(t, a.ID+1, b.ID)
	assert.Equal(t, b.ID+1, c.ID)
}

func TestNotify_ExpiresAfterTTL(t *testing.T) {
	q := NewQueue(30 * time.Millisecond)
	t.Cleanup(q.Close)

	q.Notify("short lived", Error)
	require.Equal(t, 1, q.Len())

	assert.Eventually(t, func() bool { return q.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestNotify_ExpiryRemovesOnlyItsOwnEntry(t *testing.T) {
	q := NewQueue(100 * time.Millisecond)
	t.Cleanup(q.Close)

	q.Notify("old", Info)
	time.Sleep(50 * time.Millisecond)
	q.Notify("new", Info)

	assert.Eventually(t, func() bool {
		l := q.List()
		return len(l) == 1 && l[0].Message == "new"
	}, time.Second, 2*time.Millisecond)
	assert.Eventually(t, func() bool { return q.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestClose_StopsTimersAndIgnoresLaterNotify(t *testing.T) {
	q := NewQueue(20 * time.Millisecond)
	q.Notify("pending", Info)

	q.Close()
	assert.Equal(t, 0, q.Len())

	got := q.Notify("after close", Info)
	assert.Equal(t, "after close", got.Message)
	assert.Equal(t, 0, q.Len())

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, 0, q.Len())
}

func TestObserver(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []Severity
	)
	q := NewQueue(time.Minute, WithObserver(func(t Toast) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, t.Severity)
	}))
	t.Cleanup(q.Close)

	q.Notify("x", Error)
	q.Notify("y", Info)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []Severity{Error, Info}, seen)
}
