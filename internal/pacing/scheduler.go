package pacing

import (
	"log/slog"
	"sync"
	"time"
)

type pending struct {
	timer *time.Timer
	gen   uint64
}

// Scheduler runs at most one delayed callback per key. Scheduling a key that
// already has a pending callback replaces it.
type Scheduler struct {
	mu      sync.Mutex
	tasks   map[string]pending
	nextGen uint64
	stopped bool
	wg      sync.WaitGroup
	logger  *slog.Logger
}

// NewScheduler creates a Scheduler.
func NewScheduler(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		tasks:  make(map[string]pending),
		logger: logger.With("component", "pacing_scheduler"),
	}
}

// Schedule arranges for fn to run once after delay, cancelling any callback
// still pending for key. It is a no-op after Stop.
func (s *Scheduler) Schedule(key string, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		s.logger.Debug("schedule ignored after stop", "key", key)
		return
	}

	if p, ok := s.tasks[key]; ok {
		p.timer.Stop()
	}

	s.nextGen++
	gen := s.nextGen
	s.tasks[key] = pending{
		gen:   gen,
		timer: time.AfterFunc(delay, func() { s.fire(key, gen, fn) }),
	}

	s.logger.Debug("scheduled callback", "key", key, "delay", delay)
}

func (s *Scheduler) fire(key string, gen uint64, fn func()) {
	s.mu.Lock()
	p, ok := s.tasks[key]
	// A replaced or cancelled callback whose timer had already fired.
	if !ok || p.gen != gen || s.stopped {
		s.mu.Unlock()
		return
	}
	delete(s.tasks, key)
	s.wg.Add(1)
	s.mu.Unlock()

	defer s.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("scheduled callback panicked", "key", key, "panic", r)
		}
	}()

	fn()
}

// Cancel drops the pending callback for key. It reports whether one was
// pending.
func (s *Scheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.tasks[key]
	if !ok {
		return false
	}
	p.timer.Stop()
	delete(s.tasks, key)
	return true
}

// Pending reports whether a callback is waiting to run for key.
func (s *Scheduler) Pending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tasks[key]
	return ok
}

// Stop cancels every pending callback and waits for callbacks already running
// to return. Later calls to Schedule do nothing.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	for key, p := range s.tasks {
		p.timer.Stop()
		delete(s.tasks, key)
	}
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("pacing scheduler stopped")
}
