package search

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/Asylian21/zcashvanity/internal/base58check"
	"github.com/Asylian21/zcashvanity/internal/sproutcrypto"
)

// Report is what a device worker sends to the coordinator after each
// completed launch: its most recent throughput sample.
type Report struct {
	WorkerID int
	Rate     float64 // candidate a_sk seeds evaluated per second
}

// Match is a confirmed vanity hit: an address whose base58-check text is
// actually covered by one of the requested prefixes (not just a range
// false-positive).
type Match struct {
	Address     sproutcrypto.PaymentAddress
	SpendingKey sproutcrypto.SpendingKey
	ViewingKey  sproutcrypto.ViewingKey
}

// Device is the C6 contract: run a single accelerator (GPU or CPU) against
// a shared RangeSet until cancel fires, emitting throughput reports and
// confirmed matches.
//
// Nothing about this contract is GPU-specific: a purely software
// implementation only needs to produce candidate a_sk-seed words whose
// PRF_0 output falls inside some compiled range, and the host-side
// verification in verifyCandidate (below) rejects any false positives
// regardless of which backend produced them.
type Device interface {
	// Run searches until cancel is set, sending throughput Reports on
	// reportCh and matches on matchCh.
	Run(cancel *atomic.Bool, reportCh chan<- Report, matchCh chan<- Match)
}

// clearStatusLine overwrites the in-progress 80-column status line before a
// match or log line is printed on the same stream, matching the original
// tool's clear_console_line_80 helper.
func clearStatusLine(w io.Writer) {
	fmt.Fprintf(w, "\r%s\r", spaces80)
}

const spaces80 = "                                                                                "

// verifyCandidate rebuilds a_sk from eight big-endian uint32 words (as the
// kernel leaves them in its output buffer), derives the full address, and
// confirms the range hit against the true sorted prefix list. It returns
// the confirmed Match and true only when the candidate is a genuine hit:
// false positives from the range pre-filter are silently dropped here.
func verifyCandidate(words [8]uint32, prefixesSorted []string) (Match, bool) {
	var aSk [32]byte
	for i, w := range words {
		binary.BigEndian.PutUint32(aSk[i*4:i*4+4], w)
	}

	sk := sproutcrypto.NewSpendingKey(aSk)
	addr := sk.Address()

	if !PrefixMatch(prefixesSorted, addr.String()) {
		return Match{}, false
	}

	return Match{
		Address:     addr,
		SpendingKey: sk,
		ViewingKey:  sk.ViewingKey(),
	}, true
}
