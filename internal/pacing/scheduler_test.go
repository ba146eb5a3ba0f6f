package pacing

import (
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()
	s := NewScheduler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(s.Stop)
	return s
}

func TestScheduler_RunsAfterDelay(t *testing.T) {
	t.Parallel()
	s := newTestScheduler(t)

	done := make(chan struct{})
	s.Schedule("a", 10*time.Millisecond, func() { close(done) })
	assert.True(t, s.Pending("a"))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("callback did not run")
	}

	require.Eventually(t, func() bool { return !s.Pending("a") }, time.Second, 5*time.Millisecond)
}

func TestScheduler_RescheduleReplaces(t *testing.T) {
	t.Parallel()
	s := newTestScheduler(t)

	var first, second atomic.Int32
	s.Schedule("a", 30*time.Millisecond, func() { first.Add(1) })
	s.Schedule("a", 10*time.Millisecond, func() { second.Add(1) })

	require.Eventually(t, func() bool { return second.Load() == 1 }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), first.Load(), "replaced callback must not run")
}

func TestScheduler_Cancel(t *testing.T) {
	t.Parallel()
	s := newTestScheduler(t)

	var ran atomic.Bool
	s.Schedule("a", 20*time.Millisecond, func() { ran.Store(true) })

	assert.True(t, s.Cancel("a"))
	assert.False(t, s.Cancel("a"), "second cancel has nothing to drop")
	assert.False(t, s.Pending("a"))

	time.Sleep(50 * time.Millisecond)
	assert.False(t, ran.Load())
}

func TestScheduler_KeysAreIndependent(t *testing.T) {
	t.Parallel()
	s := newTestScheduler(t)

	var a, b atomic.Int32
	s.Schedule("a", 10*time.Millisecond, func() { a.Add(1) })
	s.Schedule("b", 10*time.Millisecond, func() { b.Add(1) })
	s.Cancel("a")

	require.Eventually(t, func() bool { return b.Load() == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(0), a.Load())
}

func TestScheduler_Stop(t *testing.T) {
	t.Parallel()
	s := NewScheduler(nil)

	var ran atomic.Bool
	s.Schedule("a", 20*time.Millisecond, func() { ran.Store(true) })
	s.Stop()

	assert.False(t, s.Pending("a"))
	s.Schedule("b", time.Millisecond, func() { ran.Store(true) })
	assert.False(t, s.Pending("b"), "schedule after stop is ignored")

	time.Sleep(50 * time.Millisecond)
	assert.False(t, ran.Load())

	// Idempotent
	s.Stop()
}

func TestScheduler_PanickingCallbackIsContained(t *testing.T) {
	t.Parallel()
	s := newTestScheduler(t)

	s.Schedule("boom", time.Millisecond, func() { panic("boom") })

	done := make(chan struct{})
	s.Schedule("after", 20*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler stopped working after a panicking callback")
	}
}
