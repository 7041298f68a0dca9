// Package base58check implements base58-check encoding: base58 over the
// Bitcoin alphabet with an appended 4-byte double-SHA-256 checksum.
//
// Zcash reuses Bitcoin's base58-check scheme verbatim for every text key
// and address form (spending keys, payment addresses, viewing keys); only
// the version-prefix bytes differ per form, and those live with their
// respective types in package sproutcrypto.
package base58check

import (
	"fmt"

	"github.com/btcsuite/btcutil/base58"
	sha256simd "github.com/minio/sha256-simd"
)

// ChecksumLen is the number of checksum bytes appended before base58
// encoding.
const ChecksumLen = 4

// checksum returns the first ChecksumLen bytes of SHA256(SHA256(data)).
func checksum(data []byte) [ChecksumLen]byte {
	h1 := sha256simd.Sum256(data)
	h2 := sha256simd.Sum256(h1[:])
	var out [ChecksumLen]byte
	copy(out[:], h2[:ChecksumLen])
	return out
}

// Encode computes the checksum of payload and returns the base58 encoding
// of payload||checksum.
func Encode(payload []byte) string {
	sum := checksum(payload)
	buf := make([]byte, 0, len(payload)+ChecksumLen)
	buf = append(buf, payload...)
	buf = append(buf, sum[:]...)
	return base58.Encode(buf)
}

// Decode base58-decodes text and verifies its trailing checksum, returning
// the payload with the checksum stripped.
func Decode(text string) ([]byte, error) {
	raw := base58.Decode(text)
	if len(raw) < ChecksumLen {
		return nil, fmt.Errorf("base58check: decoded data too short (%d bytes)", len(raw))
	}
	payload := raw[:len(raw)-ChecksumLen]
	want := checksum(payload)
	var got [ChecksumLen]byte
	copy(got[:], raw[len(raw)-ChecksumLen:])
	if got != want {
		return nil, fmt.Errorf("base58check: checksum mismatch")
	}
	return payload, nil
}
