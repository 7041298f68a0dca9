package search

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/Asylian21/zcashvanity/internal/pattern"
)

// wideRangeSet compiles the loosest possible valid prefix ("zc"), whose
// range covers effectively the entire a_pk space, so a CPU device finds a
// match on its very first lane/iteration.
func wideRangeSet(t *testing.T) *RangeSet {
	t.Helper()
	p, err := pattern.New("zc")
	if err != nil {
		t.Fatalf("pattern.New(zc): %v", err)
	}
	return NewRangeSet([]pattern.Pattern{p})
}

func TestCPUDeviceFindsMatch(t *testing.T) {
	rs := wideRangeSet(t)
	d := NewCPUDevice(0, rs, 1)

	var cancel atomic.Bool
	reportCh := make(chan Report, 64)
	matchCh := make(chan Match, 64)

	done := make(chan struct{})
	go func() {
		d.Run(&cancel, reportCh, matchCh)
		close(done)
	}()

	select {
	case m := <-matchCh:
		if m.Address.String() == "" {
			t.Fatal("match has empty address text")
		}
		if !PrefixMatch(rs.PrefixesSorted, m.Address.String()) {
			t.Fatalf("match address %q does not satisfy any compiled prefix", m.Address.String())
		}
		cancel.Store(true)
	case <-time.After(10 * time.Second):
		t.Fatal("no match found within timeout against the widest possible prefix")
	}

	// Drain remaining reports so Run doesn't block forever on a send.
	go func() {
		for range reportCh {
		}
	}()
	go func() {
		for range matchCh {
		}
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("device did not stop after cancel was set")
	}
}

func TestCPUDeviceReportsRate(t *testing.T) {
	p, err := pattern.New("zcVANiTY")
	if err != nil {
		t.Fatalf("pattern.New: %v", err)
	}
	d := NewCPUDevice(1, NewRangeSet([]pattern.Pattern{p}), 1)

	var cancel atomic.Bool
	reportCh := make(chan Report, 64)
	matchCh := make(chan Match, 64)

	done := make(chan struct{})
	go func() {
		d.Run(&cancel, reportCh, matchCh)
		close(done)
	}()

	select {
	case r := <-reportCh:
		if r.WorkerID != 1 {
			t.Errorf("expected WorkerID 1, got %d", r.WorkerID)
		}
		if r.Rate <= 0 {
			t.Errorf("expected a positive rate, got %f", r.Rate)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("no report received within timeout")
	}

	cancel.Store(true)
	go func() {
		for range reportCh {
		}
	}()
	go func() {
		for range matchCh {
		}
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("device did not stop after cancel was set")
	}
}
