package base58check

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcutil/base58"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		{0x00},
		{0x16, 0x9a},
		bytes.Repeat([]byte{0xff}, 70),
		[]byte("the quick brown fox"),
	}
	for _, payload := range cases {
		text := Encode(payload)
		got, err := Decode(text)
		if err != nil {
			t.Fatalf("Decode(%q) failed: %v", text, err)
		}
		if !bytes.Equal(got, payload) {
			t.Errorf("round trip mismatch: got %x want %x", got, payload)
		}
	}
}

func TestDecodeRejectsFlippedChecksumBit(t *testing.T) {
	text := Encode([]byte("zcash vanity"))
	raw := base58.Decode(text)
	raw[len(raw)-1] ^= 0x01
	flipped := base58.Encode(raw)

	if _, err := Decode(flipped); err == nil {
		t.Fatalf("Decode accepted data with a flipped checksum bit")
	}
}

func TestDecodeRejectsShortInput(t *testing.T) {
	if _, err := Decode(base58.Encode([]byte{0x01, 0x02, 0x03})); err == nil {
		t.Fatalf("Decode accepted input shorter than the checksum")
	}
}

func BenchmarkEncode(b *testing.B) {
	payload := bytes.Repeat([]byte{0xab}, 66)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Encode(payload)
	}
}

func BenchmarkDecode(b *testing.B) {
	text := Encode(bytes.Repeat([]byte{0xab}, 66))
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(text); err != nil {
			b.Fatal(err)
		}
	}
}
