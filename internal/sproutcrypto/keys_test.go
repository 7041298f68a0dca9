package sproutcrypto

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/Asylian21/zcashvanity/internal/base58check"
)

// vectors are concrete end-to-end spending-key -> address/IVK vectors,
// derived from the Sprout reference implementation.
var vectors = []struct {
	spendingKey    string
	paymentAddress string
	viewingKey     string
}{
	{
		"SKxny894fJe2rmZjeuoE6GVfNkWoXfPp8337VrLLNWG56FfQtuS1",
		"zcbxovDeXGJJikZH5wQkcQvYx1gzsRt9mR5UnQir6NY8hhPHdgK7z7dE1vfa55Bq3JHJu7isfuWQGYrvMbLnud74z2vS4tS",
		"ZiUBSSMXjXXeFEJVTNiEh3frFcxpBwuCWHEjnobHfGS2keQNF3LTJGGaBRcfamK4rBZHve1kh4YjSCLGwtZpt35WuzHSBTvC3",
	},
	{
		"SKxoo5QkFQgTbdc6EWRKyHPMdmtNDJhqudrAVhen9b4kjCwN6CeV",
		"zcRYvLiURno1LhXq95e8avXFcH2fKKToSFfhqaVKTy8mGH7i6SJbfuWcm4h9rEA6DvswrbxDhFGDQgpdDYV8zwUoHvwNvFX",
		"ZiTn6ZX2k5RyZ2pUZDtNMA97FK2pYNzAt2cZwMc1ZN8SwUNUKFWSbAahYakDUSWcJZYQuUBzdfDMqYdJ6VNxa8G4388qgSHFq",
	},
	{
		"SKxsVGKsCESoVb3Gfm762psjRtGHmjmv7HVjHckud5MnESfktUuG",
		"zcWGguu2UPfNhh1ygWW9Joo3osvncsuehtz5ewvXd78vFDdnDCRNG6QeKSZpwZmYmkfEutPVf8HzCfBytqXWsEcF2iBAM1e",
		"",
	},
}

func decodeSpendingKeyBytes(t *testing.T, text string) [32]byte {
	t.Helper()
	payload, err := base58check.Decode(text)
	if err != nil {
		t.Fatalf("base58check.Decode(%q): %v", text, err)
	}
	if len(payload) != 34 {
		t.Fatalf("spending key payload length = %d, want 34", len(payload))
	}
	var aSk [32]byte
	copy(aSk[:], payload[2:34])
	return aSk
}

func TestVectorsAddress(t *testing.T) {
	for _, v := range vectors {
		aSk := decodeSpendingKeyBytes(t, v.spendingKey)
		sk := NewSpendingKey(aSk)

		if got := sk.String(); got != v.spendingKey {
			t.Errorf("SpendingKey.String() = %q, want %q", got, v.spendingKey)
		}
		if got := sk.Address().String(); got != v.paymentAddress {
			t.Errorf("Address() = %q, want %q", got, v.paymentAddress)
		}
	}
}

func TestVectorsViewingKey(t *testing.T) {
	for _, v := range vectors {
		if v.viewingKey == "" {
			continue
		}
		aSk := decodeSpendingKeyBytes(t, v.spendingKey)
		sk := NewSpendingKey(aSk)
		if got := sk.ViewingKey().String(); got != v.viewingKey {
			t.Errorf("ViewingKey().String() = %q, want %q", got, v.viewingKey)
		}
	}
}

func TestSpendingKeyMasksTopNibble(t *testing.T) {
	var raw [32]byte
	for i := range raw {
		raw[i] = 0xff
	}
	sk := NewSpendingKey(raw)
	aSk := sk.Bytes()
	if aSk[0]&0xf0 != 0 {
		t.Fatalf("a_sk[0] = %#x, top nibble should be zero", aSk[0])
	}
}

func TestAddressAndViewingKeyShareShPkEnc(t *testing.T) {
	var raw [32]byte
	if _, err := rand.Read(raw[:]); err != nil {
		t.Fatal(err)
	}
	sk := NewSpendingKey(raw)
	if sk.Address().PkEnc != sk.ViewingKey().PkEnc {
		t.Fatalf("address.pk_enc != viewing_key.pk_enc")
	}
}

func TestSpendingKeyRoundTrip(t *testing.T) {
	var raw [32]byte
	if _, err := rand.Read(raw[:]); err != nil {
		t.Fatal(err)
	}
	sk := NewSpendingKey(raw)
	parsed, err := ParseSpendingKey(sk.String())
	if err != nil {
		t.Fatalf("ParseSpendingKey: %v", err)
	}
	if parsed.Bytes() != sk.Bytes() {
		t.Fatalf("round trip mismatch: got %x want %x", parsed.Bytes(), sk.Bytes())
	}
}

func TestClampCurve25519(t *testing.T) {
	var k [32]byte
	for i := range k {
		k[i] = 0xff
	}
	clampCurve25519(&k)
	if k[0]&7 != 0 {
		t.Errorf("k[0] low 3 bits not cleared: %#x", k[0])
	}
	if k[31]&0x80 != 0 {
		t.Errorf("k[31] high bit not cleared: %#x", k[31])
	}
	if k[31]&0x40 == 0 {
		t.Errorf("k[31] bit 6 not set: %#x", k[31])
	}
}

func TestPRFDistinguishesDiscriminant(t *testing.T) {
	var aSk [32]byte
	copy(aSk[:], bytes.Repeat([]byte{0x42}, 32))
	a := PRF0(&aSk)
	b := PRF1(&aSk)
	if a == b {
		t.Fatalf("PRF0 and PRF1 produced identical output")
	}
}

func BenchmarkPRF0(b *testing.B) {
	var aSk [32]byte
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = PRF0(&aSk)
	}
}

func BenchmarkAddress(b *testing.B) {
	var raw [32]byte
	sk := NewSpendingKey(raw)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = sk.Address()
	}
}
