package sproutcrypto

// PRF0 computes PRF_{a_pk}(a_sk): the Sprout public identifier for a_sk.
func PRF0(aSk *[32]byte) [32]byte {
	return pseudorandomFunction(aSk, 0)
}

// PRF1 computes PRF_{sk_enc}(a_sk): the pre-clamp curve25519 scalar for a_sk.
func PRF1(aSk *[32]byte) [32]byte {
	return pseudorandomFunction(aSk, 1)
}

// pseudorandomFunction builds the 64-byte Sprout PRF input block for the
// given discriminant t and runs a single SHA-256 block compression over it.
//
// Block layout:
//
//	B[0..32)  = a_sk, with the top two bits of B[0] forced to 1 (0xC0) and
//	            the low four bits of a_sk[0] preserved (a_sk is already
//	            masked to 252 bits by the caller, so this just asserts the
//	            PRF's own domain-separation bits on top).
//	B[32]     = t
//	B[33..64) = 0
func pseudorandomFunction(aSk *[32]byte, t byte) [32]byte {
	var block [64]byte
	copy(block[:32], aSk[:])
	block[0] = 0xc0 | (block[0] & 0x0f)
	block[32] = t

	var out [32]byte
	sproutBlockCompress(&out, &block)
	return out
}

// clampCurve25519 applies the standard curve25519 scalar clamp in place:
// clears the low 3 bits of k[0] (forces the scalar onto the subgroup), and
// forces k[31]'s top two bits to 0b01 (clears the sign/high bit, sets bit
// 254 so the scalar's bit length is fixed).
func clampCurve25519(k *[32]byte) {
	k[0] &= 248
	k[31] &= 127
	k[31] |= 64
}
