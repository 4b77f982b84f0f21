package container

import "math/rand"

// securityKeyTable XOR-scrambles the security chunk payload. A
// hand-rolled table is unavoidable here -- this is the proprietary
// anti-tampering block, not a general-purpose cipher, so there is no
// library in the retrieval pack (or the wider ecosystem) that could
// stand in for it.
var securityKeyTable = [13]byte{
	0x4B, 0x17, 0x92, 0xC3, 0x0E, 0x7A, 0x55, 0xD1, 0x29, 0x8F, 0x63, 0xA6, 0x3C,
}

const securityPayloadSize = 24

// verificationOffsets are the fixed positions the checksum's low three
// bytes are embedded at, pre-scramble, inside the security payload.
var verificationOffsets = [3]int{5, 12, 19}

// checksum folds b into a single deterministic 32-bit value. Any
// byte-for-byte change to the script body changes it, which is all the
// runtime's tamper check actually needs.
func checksum(b []byte) uint32 {
	var sum uint32 = 0x811C9DC5
	for _, v := range b {
		sum = (sum ^ uint32(v)) * 0x01000193
	}
	return sum
}

// buildSecurityPayload assembles the security chunk's anti-tampering
// block: the checksum, random filler from a seeded PRNG (spec's
// reproducibility requirement -- the same seed always produces the same
// script.dat), the checksum's low bytes re-embedded at three fixed
// offsets, and the whole block XOR-scrambled against securityKeyTable.
func buildSecurityPayload(sum uint32, seed int64) []byte {
	rng := rand.New(rand.NewSource(seed))

	buf := make([]byte, securityPayloadSize)
	buf[0] = byte(sum)
	buf[1] = byte(sum >> 8)
	buf[2] = byte(sum >> 16)
	buf[3] = byte(sum >> 24)
	for i := 4; i < securityPayloadSize; i++ {
		buf[i] = byte(rng.Intn(256))
	}

	verify := []byte{byte(sum), byte(sum >> 8), byte(sum >> 16)}
	for i, pos := range verificationOffsets {
		buf[pos] = verify[i]
	}

	for i := range buf {
		buf[i] ^= securityKeyTable[i%len(securityKeyTable)]
	}
	return buf
}
