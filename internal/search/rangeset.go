package search

import (
	"sort"

	"github.com/Asylian21/zcashvanity/internal/pattern"
)

// RangeSet is the read-only, per-search compiled form of a pattern list:
// sorted prefix strings for host-side text verification, and sorted
// [lo,hi] pairs (by lo) for GPU/CPU kernel range membership tests.
//
// Both slices are built once by NewRangeSet and then shared read-only
// across every device worker.
type RangeSet struct {
	PrefixesSorted []string
	Words          []uint64 // pairs: Words[2i], Words[2i+1] = lo, hi of range i
}

// NewRangeSet compiles patterns into a RangeSet.
func NewRangeSet(patterns []pattern.Pattern) *RangeSet {
	prefixes := make([]string, len(patterns))
	for i, p := range patterns {
		prefixes[i] = p.Prefix
	}
	sort.Strings(prefixes)

	type loHi struct{ lo, hi uint64 }
	ranges := make([]loHi, len(patterns))
	for i, p := range patterns {
		ranges[i] = loHi{p.Lo, p.Hi}
	}
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].lo < ranges[j].lo })

	words := make([]uint64, 0, 2*len(ranges))
	for _, r := range ranges {
		words = append(words, r.lo, r.hi)
	}

	return &RangeSet{PrefixesSorted: prefixes, Words: words}
}

// RangeCount returns the number of compiled [lo,hi] ranges.
func (rs *RangeSet) RangeCount() int { return len(rs.Words) / 2 }

// SearchSpace returns S = sum(hi_i - lo_i + 1) over every compiled range:
// the total count of 64-bit words that could plausibly match, used for the
// ETA/probability model in the coordinator.
func (rs *RangeSet) SearchSpace() uint64 {
	var total uint64
	for i := 0; i+1 < len(rs.Words); i += 2 {
		total += rs.Words[i+1] - rs.Words[i] + 1
	}
	return total
}

// Contains reports whether word falls inside any compiled [lo,hi] range,
// using the serial binary search membershipIndex, which the kernel's
// unrolled search is tested to agree with (rangeset_test.go).
func (rs *RangeSet) Contains(word uint64) bool {
	_, ok := membershipIndex(rs.Words, word)
	return ok
}

// membershipIndex performs a standard binary search for the range
// containing word over pairs packed into words ([lo0,hi0,lo1,hi1,...],
// sorted by lo), returning the index of the matching range and true, or
// (0, false) if none matches.
//
// This is the serial reference the kernel's unrolled binary search (see
// kernel.cl and matchesKernelSearch in rangeset_test.go) must agree with
// for every word and every sorted range array.
func membershipIndex(words []uint64, word uint64) (int, bool) {
	n := len(words) / 2
	// lo is the smallest index i such that words[2i] > word (first range
	// whose start exceeds word); everything before it has lo <= word.
	lo := sort.Search(n, func(i int) bool { return words[2*i] > word })
	if lo == 0 {
		return 0, false
	}
	idx := lo - 1
	if word <= words[2*idx+1] {
		return idx, true
	}
	return 0, false
}

// PrefixMatch reports whether encoded text is covered by a prefix in
// prefixesSorted: either an exact match, or encoded extends the prefix
// immediately preceding its sorted insertion point. Only that one
// preceding prefix is checked, so when one requested prefix extends
// another (e.g. "zc" and "zcA"), text covered only by the shorter one is
// not reported if the longer one sorts between them.
func PrefixMatch(prefixesSorted []string, encoded string) bool {
	idx := sort.SearchStrings(prefixesSorted, encoded)
	if idx < len(prefixesSorted) && prefixesSorted[idx] == encoded {
		return true
	}
	if idx == 0 {
		return false
	}
	prev := prefixesSorted[idx-1]
	return len(encoded) >= len(prev) && encoded[:len(prev)] == prev
}
