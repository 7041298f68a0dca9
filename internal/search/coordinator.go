package search

import (
	"fmt"
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// Coordinator runs a fleet of devices against a shared RangeSet, printing
// matches and periodic rate/ETA status the way the original tool's
// vanity() loop did (original_source/src/main.rs): one rate sample slot per
// device, summed on every report, feeding a Poisson ETA/probability model.
type Coordinator struct {
	Devices     []Device
	Ranges      *RangeSet
	SingleMatch bool
	Status      io.Writer // progress line target, typically os.Stderr
}

// Run starts every device and blocks until either a match is found with
// SingleMatch set, or every device's Run call returns on its own. onMatch
// is invoked synchronously on the coordinator's own goroutine for each
// confirmed match, in receipt order.
func (c *Coordinator) Run(onMatch func(Match)) {
	n := len(c.Devices)
	reportCh := make(chan Report, n*4)
	matchCh := make(chan Match, n*4)
	var cancel atomic.Bool

	var wg sync.WaitGroup
	wg.Add(n)
	for _, d := range c.Devices {
		d := d
		go func() {
			defer wg.Done()
			d.Run(&cancel, reportCh, matchCh)
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	searchSpace := c.Ranges.SearchSpace()
	var difficulty float64
	if searchSpace > 0 {
		difficulty = float64(^uint64(0)) / float64(searchSpace)
	} else {
		difficulty = math.Inf(1)
	}
	rateSamples := make([]float64, n)
	start := time.Now()

	for {
		select {
		case r := <-reportCh:
			rateSamples[r.WorkerID] = r.Rate
			c.printStatus(rateSamples, difficulty, start)

		case m := <-matchCh:
			clearStatusLine(c.Status)
			onMatch(m)
			if c.SingleMatch {
				cancel.Store(true)
			}

		case <-done:
			return
		}
	}
}

// printStatus writes the single-line elapsed/ETA/rate/probability status,
// exactly matching the original tool's format string.
func (c *Coordinator) printStatus(rateSamples []float64, difficulty float64, start time.Time) {
	var rate float64
	for _, r := range rateSamples {
		rate += r
	}

	elapsed := time.Since(start).Seconds()
	lambda := rate / difficulty
	probability := 1 - math.Exp(-elapsed*lambda)

	fmt.Fprintf(c.Status, "\rElapsed: %.0f/%.0fs Rate: %.0f/s Prob: %.2f%%",
		elapsed, 1/lambda, rate, 100*probability)
}
