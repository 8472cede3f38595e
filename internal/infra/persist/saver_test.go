package persist_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/credify-app/credify/internal/infra/persist"
)

func TestSaver_CoalescesRapidWrites(t *testing.T) {
	s := persist.New(50 * time.Millisecond)
	defer s.Close()

	var fired int32
	for i := 0; i < 10; i++ {
		s.Schedule(func() error {
			atomic.AddInt32(&fired, 1)
			return nil
		})
	}

	time.Sleep(200 * time.Millisecond)
	if n := atomic.LoadInt32(&fired); n != 1 {
		t.Errorf("write fired %d times, want coalesced 1", n)
	}
}

func TestSaver_LatestWriteWins(t *testing.T) {
	s := persist.New(time.Hour) // never fires on its own
	defer s.Close()

	var got int32
	s.Schedule(func() error { atomic.StoreInt32(&got, 1); return nil })
	s.Schedule(func() error { atomic.StoreInt32(&got, 2); return nil })

	if err := s.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if atomic.LoadInt32(&got) != 2 {
		t.Errorf("got = %d, want the latest scheduled write (2)", got)
	}
}

func TestSaver_FlushWithNothingPending(t *testing.T) {
	s := persist.New(time.Hour)
	defer s.Close()

	if err := s.Flush(); err != nil {
		t.Errorf("empty flush returned %v", err)
	}
}

func TestSaver_FlushRunsOnce(t *testing.T) {
	s := persist.New(time.Hour)
	defer s.Close()

	var fired int32
	s.Schedule(func() error { atomic.AddInt32(&fired, 1); return nil })

	_ = s.Flush()
	_ = s.Flush()
	if n := atomic.LoadInt32(&fired); n != 1 {
		t.Errorf("pending write ran %d times, want 1", n)
	}
}

func TestSaver_CloseFlushesAndRejects(t *testing.T) {
	s := persist.New(time.Hour)

	var fired int32
	s.Schedule(func() error { atomic.AddInt32(&fired, 1); return nil })

	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if atomic.LoadInt32(&fired) != 1 {
		t.Error("close did not flush the pending write")
	}

	// Writes after close are dropped.
	s.Schedule(func() error { atomic.AddInt32(&fired, 1); return nil })
	_ = s.Flush()
	if n := atomic.LoadInt32(&fired); n != 1 {
		t.Errorf("write accepted after close (fired %d times)", n)
	}
}

func TestSaver_FlushReturnsWriteError(t *testing.T) {
	s := persist.New(time.Hour)
	defer s.Close()

	want := errors.New("disk full")
	s.Schedule(func() error { return want })

	if err := s.Flush(); !errors.Is(err, want) {
		t.Errorf("flush error = %v, want %v", err, want)
	}
}
