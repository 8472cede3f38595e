// Package persist implements the write-coalescing saver. Rapid state
// changes collapse into one durable write after a quiet period; only the
// latest scheduled write survives. In-memory state is authoritative, so
// losing an intermediate flush is harmless as long as the final one
// lands — Close flushes synchronously for that reason.
package persist

import (
	"log"
	"sync"
	"time"
)

// DefaultDebounce is the quiet period before a scheduled write flushes.
const DefaultDebounce = time.Second

// Saver coalesces writes. Schedule replaces any pending write and
// restarts the quiet-period timer; Flush runs the pending write now.
type Saver struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending func() error
	closed  bool
}

// New creates a saver with the given debounce delay.
// A non-positive delay falls back to DefaultDebounce.
func New(delay time.Duration) *Saver {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Saver{delay: delay}
}

// Schedule queues a write, replacing any not-yet-flushed one. The write
// runs on the timer goroutine after the quiet period; errors are logged,
// not fatal — the caller keeps operating on in-memory state and a later
// save may succeed.
func (s *Saver) Schedule(write func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.pending = write
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.fire)
}

func (s *Saver) fire() {
	if err := s.Flush(); err != nil {
		log.Printf("[persist] deferred save failed: %v", err)
	}
}

// Flush runs the pending write immediately, if any.
func (s *Saver) Flush() error {
	s.mu.Lock()
	write := s.pending
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	if write == nil {
		return nil
	}
	return write()
}

// Close flushes any pending write and stops accepting new ones.
func (s *Saver) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return s.Flush()
}
