package search

import (
	"crypto/rand"
	"encoding/binary"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Asylian21/zcashvanity/internal/sproutcrypto"
)

// CPULanesPerWorker is the lane multiplier: each launch runs
// workers*CPULanesPerWorker independent candidate lanes, each in its own
// goroutine, playing the role of a GPU work-group's local threads.
const CPULanesPerWorker = 4

// CPUDevice is a goroutine-parallel software Device: a trivial accelerator
// swap for OpenCL, since a backend only needs to produce candidates whose
// leading a_pk bits fall inside some range and let the host verifier reject
// any false positives. It implements the identical candidate-generation /
// binary-search / verify contract as the OpenCL backend, without requiring
// OpenCL headers or a physical GPU: one goroutine per lane per launch,
// sending confirmed matches on the caller's match channel, retargeted at
// Sprout range search instead of Bitcoin address lookup.
type CPUDevice struct {
	id       int
	ranges   *RangeSet
	prefixes []string
	workers  int // each launch runs workers*CPULanesPerWorker lane goroutines
}

// NewCPUDevice builds a CPU-backed Device searching rs with
// workers*CPULanesPerWorker lane goroutines per launch. workers <= 0
// defaults to runtime.NumCPU().
func NewCPUDevice(id int, rs *RangeSet, workers int) *CPUDevice {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &CPUDevice{id: id, ranges: rs, prefixes: rs.PrefixesSorted, workers: workers}
}

func (d *CPUDevice) laneCount() int { return d.workers * CPULanesPerWorker }

// Run implements Device.
func (d *CPUDevice) Run(cancel *atomic.Bool, reportCh chan<- Report, matchCh chan<- Match) {
	lanes := d.laneCount()

	for !cancel.Load() {
		var seed [32]byte
		if _, err := rand.Read(seed[:]); err != nil {
			panic("search: CSPRNG read failed: " + err.Error())
		}

		start := time.Now()

		var wg sync.WaitGroup
		wg.Add(lanes)
		for lane := 0; lane < lanes; lane++ {
			go d.runLane(seed, uint32(lane), matchCh, &wg)
		}
		wg.Wait()

		if cancel.Load() {
			return
		}

		elapsed := time.Since(start).Seconds()
		rate := float64(lanes*IterationsPerThread) / elapsed
		reportCh <- Report{WorkerID: d.id, Rate: rate}
	}
}

// runLane walks IterationsPerThread candidates starting from seed XORed
// with laneID in its leading word, exactly mirroring the kernel's
// `W[0] ^= get_global_id(0)` / `++W[1]` per-iteration update (kernel.cl).
func (d *CPUDevice) runLane(seed [32]byte, laneID uint32, matchCh chan<- Match, wg *sync.WaitGroup) {
	defer wg.Done()

	candidate := seed
	w0 := binary.BigEndian.Uint32(candidate[0:4]) ^ laneID
	binary.BigEndian.PutUint32(candidate[0:4], w0)

	for iter := 0; iter < IterationsPerThread; iter++ {
		word := leadingWord(&candidate)

		if d.ranges.Contains(word) {
			var words [8]uint32
			for i := 0; i < 8; i++ {
				words[i] = binary.BigEndian.Uint32(candidate[i*4 : i*4+4])
			}
			if match, ok := verifyCandidate(words, d.prefixes); ok {
				matchCh <- match
			}
		}

		w1 := binary.BigEndian.Uint32(candidate[4:8]) + 1
		binary.BigEndian.PutUint32(candidate[4:8], w1)
	}
}

// leadingWord computes PRF_0(aSk) and returns its leading 64 bits,
// big-endian, exactly matching the kernel's "word" value.
func leadingWord(aSk *[32]byte) uint64 {
	out := sproutcrypto.PRF0(aSk)
	return binary.BigEndian.Uint64(out[:8])
}
