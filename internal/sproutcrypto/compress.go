package sproutcrypto

import "encoding/binary"

// sha256IV is the standard SHA-256 initial hash state.
var sha256IV = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

// sha256K is the standard SHA-256 round constant table.
var sha256K = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1,
	0x923f82a4, 0xab1c5ed5, 0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3,
	0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174, 0xe49b69c1, 0xefbe4786,
	0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147,
	0x06ca6351, 0x14292967, 0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13,
	0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85, 0xa2bfe8a1, 0xa81a664b,
	0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a,
	0x5b9cca4f, 0x682e6ff3, 0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208,
	0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

func rotr(x, n uint32) uint32 { return (x >> n) | (x << (32 - n)) }

func bigSigma0(x uint32) uint32 { return rotr(x, 2) ^ rotr(x, 13) ^ rotr(x, 22) }
func bigSigma1(x uint32) uint32 { return rotr(x, 6) ^ rotr(x, 11) ^ rotr(x, 25) }
func smallSigma0(x uint32) uint32 { return rotr(x, 7) ^ rotr(x, 18) ^ (x >> 3) }
func smallSigma1(x uint32) uint32 { return rotr(x, 17) ^ rotr(x, 19) ^ (x >> 10) }

func choose(x, y, z uint32) uint32 { return z ^ (x & (y ^ z)) }
func majority(x, y, z uint32) uint32 { return (x & y) ^ (z & (x ^ y)) }

// sproutBlockCompress runs a single SHA-256 block compression over src (one
// 64-byte block) starting from the standard IV, and writes the resulting
// eight state words in big-endian order into dst.
//
// This is deliberately NOT a full SHA-256 (no length padding, no multi-block
// chaining): it is the raw compression step the Sprout PRF is built from,
// and it must match the identical computation in kernel.cl bit for bit.
func sproutBlockCompress(dst *[32]byte, src *[64]byte) {
	var w [64]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(src[i*4 : i*4+4])
	}
	for i := 16; i < 64; i++ {
		w[i] = smallSigma1(w[i-2]) + w[i-7] + smallSigma0(w[i-15]) + w[i-16]
	}

	state := sha256IV
	for i := 0; i < 64; i++ {
		t1 := state[7] + bigSigma1(state[4]) + choose(state[4], state[5], state[6]) + sha256K[i] + w[i]
		t2 := bigSigma0(state[0]) + majority(state[0], state[1], state[2])
		state[7] = state[6]
		state[6] = state[5]
		state[5] = state[4]
		state[4] = state[3] + t1
		state[3] = state[2]
		state[2] = state[1]
		state[1] = state[0]
		state[0] = t1 + t2
	}

	for i := 0; i < 8; i++ {
		state[i] += sha256IV[i]
	}
	for i := 0; i < 8; i++ {
		binary.BigEndian.PutUint32(dst[i*4:i*4+4], state[i])
	}
}
