// Package pattern compiles user-facing base58 vanity prefixes into the
// numeric search ranges the GPU kernel actually scans, and expands a prefix
// into its case-insensitive variants.
package pattern

import (
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcutil/base58"

	"github.com/Asylian21/zcashvanity/internal/sproutcrypto"
)

// addressPayloadLen is the length of an unencoded Sprout payment address
// payload: 2-byte prefix + 32-byte a_pk + 32-byte pk_enc + 4-byte checksum.
const addressPayloadLen = 2 + 32 + 32 + 4

// bitcoinAlphabet is the base58 alphabet base58check.Encode/Decode use
// (btcutil/base58 doesn't export its alphabet table, and we need the raw
// character set here to build the case-twin lookup below).
const bitcoinAlphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// Pattern is a compiled vanity prefix: the literal text and the inclusive
// [Lo,Hi] range of possible leading-64-bit a_pk values that could produce
// an address whose base58-check text starts with Prefix.
type Pattern struct {
	Prefix string
	Lo, Hi uint64
}

// New validates prefix and compiles it into a Pattern.
//
// prefix must begin with something that can actually prefix a zc... Sprout
// address; anything else is rejected with an error naming the offending
// boundary prefix.
func New(prefix string) (Pattern, error) {
	lo, hi, err := prefixToRange(prefix)
	if err != nil {
		return Pattern{}, err
	}
	return Pattern{Prefix: prefix, Lo: lo, Hi: hi}, nil
}

func prefixToRange(prefix string) (lo, hi uint64, err error) {
	data := make([]byte, addressPayloadLen)
	copy(data[:2], sproutcrypto.PaymentAddressPrefix[:])
	addressLo := base58.Encode(data)

	for i := 2; i < len(data); i++ {
		data[i] = 0xff
	}
	addressHi := base58.Encode(data)

	if len(prefix) > len(addressHi) {
		return 0, 0, fmt.Errorf("pattern: prefix %q is longer than any valid zc... address", prefix)
	}
	suffixLen := len(addressHi) - len(prefix)

	prefix1 := prefix + repeat('1', suffixLen)
	prefixZ := prefix + repeat('z', suffixLen)

	if prefixZ < addressLo {
		return 0, 0, fmt.Errorf("pattern: invalid prefix %q (must start with %q)", prefix, addressLo[:len(prefix)])
	}
	if prefix1 > addressHi {
		return 0, 0, fmt.Errorf("pattern: invalid prefix %q (must start with %q)", prefix, addressHi[:len(prefix)])
	}

	if prefix1 < addressLo {
		lo = 0
	} else {
		lo, err = decodeLeadingWord(prefix1)
		if err != nil {
			return 0, 0, err
		}
	}

	if prefixZ > addressHi {
		hi = ^uint64(0)
	} else {
		hi, err = decodeLeadingWord(prefixZ)
		if err != nil {
			return 0, 0, err
		}
	}

	return lo, hi, nil
}

// decodeLeadingWord base58-decodes a full-length address string and reads
// the big-endian uint64 occupying bytes [2,10): the leading 64 bits of
// a_pk.
func decodeLeadingWord(text string) (uint64, error) {
	raw := base58.Decode(text)
	if len(raw) != addressPayloadLen {
		return 0, fmt.Errorf("pattern: decoded boundary string has length %d, want %d", len(raw), addressPayloadLen)
	}
	return binary.BigEndian.Uint64(raw[2:10]), nil
}

func repeat(c byte, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = c
	}
	return string(b)
}

// CaseInsensitive returns every case-insensitive variant of p whose
// character positions have a distinct-case "twin" in the base58 alphabet,
// dropping any variant that doesn't itself compile to a valid Pattern.
func (p Pattern) CaseInsensitive() []Pattern {
	twin := caseTwinTable()

	prefixBytes := []byte(p.Prefix)
	var patterns []Pattern

	i, max := uint64(0), uint64(1)
	for i < max {
		tmp := make([]byte, len(prefixBytes))
		copy(tmp, prefixBytes)

		k := uint64(1)
		for idx, c := range tmp {
			if other, ok := twin[c]; ok {
				if i&k != 0 {
					tmp[idx] = other
				}
				k <<= 1
			}
		}
		max = k

		if compiled, err := New(string(tmp)); err == nil {
			patterns = append(patterns, compiled)
		}
		i++
	}
	return patterns
}

// caseTwinTable maps every base58 alphabet byte that has a distinct-case
// counterpart also present in the alphabet to that counterpart. Bytes with
// no twin (pure digits, and letters like i/o/l/0 whose twin is excluded
// from the alphabet) are absent from the map.
func caseTwinTable() map[byte]byte {
	alphabet := []byte(bitcoinAlphabet)

	present := make(map[byte]bool, len(alphabet))
	for _, c := range alphabet {
		present[c] = true
	}

	twin := make(map[byte]byte, len(alphabet))
	for _, c := range alphabet {
		lower := toLower(c)
		upper := toUpper(c)
		switch {
		case c != lower && present[lower]:
			twin[c] = lower
			twin[lower] = c
		case c != upper && present[upper]:
			twin[c] = upper
			twin[upper] = c
		}
	}
	return twin
}

func toLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func toUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
