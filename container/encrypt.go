package container

// headerPermTable permutes the first 64 bytes of script.dat before the
// XOR pass (spec §4.7's optional header encryption). Proprietary
// obfuscation table, not a general cipher -- carried verbatim rather
// than derived, same reasoning as securityKeyTable.
var headerPermTable = [64]byte{
	63, 2, 61, 4, 59, 6, 57, 8, 55, 10, 53, 12, 51, 14, 49, 16,
	47, 18, 45, 20, 43, 22, 41, 24, 39, 26, 37, 28, 35, 30, 33, 32,
	31, 34, 29, 36, 27, 38, 25, 40, 23, 42, 21, 44, 19, 46, 17, 48,
	15, 50, 13, 52, 11, 54, 9, 56, 7, 58, 5, 60, 3, 62, 1, 0,
}

var headerInvPermTable = buildInversePermutation(headerPermTable)

func buildInversePermutation(perm [64]byte) [64]byte {
	var inv [64]byte
	for i, p := range perm {
		inv[p] = byte(i)
	}
	return inv
}

// headerKeyTable XORs the permuted header bytes, cycled every 17 bytes.
var headerKeyTable = [17]byte{
	0x9C, 0x31, 0x7E, 0xB4, 0x05, 0x68, 0xDA, 0x22,
	0x4F, 0x8B, 0x16, 0xE3, 0x5A, 0x7D, 0x90, 0x0F, 0xC6,
}

// EncryptHeader permutes and XORs the first 64 bytes of body in place
// (body must be at least 64 bytes long).
func EncryptHeader(body []byte) {
	if len(body) < 64 {
		return
	}
	src := make([]byte, 64)
	copy(src, body[:64])
	for i := 0; i < 64; i++ {
		body[i] = src[headerPermTable[i]] ^ headerKeyTable[i%len(headerKeyTable)]
	}
}

// DecryptHeader reverses EncryptHeader, used by tests to confirm the
// pass round-trips.
func DecryptHeader(body []byte) {
	if len(body) < 64 {
		return
	}
	enc := make([]byte, 64)
	copy(enc, body[:64])
	for j := 0; j < 64; j++ {
		i := headerInvPermTable[j]
		body[j] = enc[i] ^ headerKeyTable[int(i)%len(headerKeyTable)]
	}
}
