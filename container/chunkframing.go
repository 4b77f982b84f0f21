// Package container implements the Container Writer (spec §4.7, §6):
// the final phase that lays out a compiled ScriptModel into a
// script.dat body, then appends the proprietary NG trailer (an Options
// chunk when [Options] carries NG commands, the security chunk, one
// chunk per Level/Title section that carries NG commands -- sections
// without any get no chunk -- and one chunk per registered import),
// with an optional header-encryption pass over the first 64 bytes.
//
// Grounded on the teacher's two-phase tag-container writer
// (pack/wad/wad.go's UpdateTagsData: body first, then an index/trailer
// describing it) and its MarshalTag-style fixed encoders, generalized
// from WAD tags to script.dat's own chunk catalog.
package container

import "github.com/mogaika/ng-scriptc/utils"

const (
	trailerMarker    = "NG"
	trailerEndMarker = "NGLE"

	// dwordEscapeFlag marks the high word of a two-word DWORD size
	// escape: bit 15 set, remaining 15 bits carry the high bits of the
	// 32-bit total word count (spec §4.7, §6, Glossary "DWORD size
	// escape").
	dwordEscapeFlag uint16 = 0x8000
)

// writeChunk appends a chunk's length-in-words header, its tag and its
// payload to buf, in that order. The leading word count is
// self-inclusive: it counts the length field itself (one word, or two
// under the DWORD escape), the tag word and every payload word, so a
// reader can skip straight from one chunk's start to the next (spec
// §4.7, §6, Testable Property P3). Once that total exceeds 0x7FFF
// words the single-word form can no longer represent it and the
// two-word DWORD escape is used instead: a high word with bit 15 set
// carrying the high 16 bits of the total, followed by a low word.
func writeChunk(buf []byte, tag uint16, payload []byte) []byte {
	payloadWords := len(payload) / 2
	if total := 1 + 1 + payloadWords; total <= 0x7FFF {
		buf = append(buf, utils.AsBytes(uint16(total))...)
	} else {
		total := uint32(2 + 1 + payloadWords)
		high := uint16(total>>16) | dwordEscapeFlag
		low := uint16(total)
		buf = append(buf, utils.AsBytes(high)...)
		buf = append(buf, utils.AsBytes(low)...)
	}
	buf = append(buf, utils.AsBytes(tag)...)
	return append(buf, payload...)
}

// wordsToBytes packs a uint16 word slice into little-endian bytes, the
// form every chunk payload is assembled in before framing.
func wordsToBytes(words []uint16) []byte {
	out := make([]byte, 0, len(words)*2)
	for _, w := range words {
		out = append(out, utils.AsBytes(w)...)
	}
	return out
}

// endTrailer appends the two zero words and "NGLE" end record (spec
// §4.7: "terminated by two zero words + NGLE end record with total
// byte size"). The recorded size covers the whole trailer, "NG" marker
// through the size field itself.
func endTrailer(buf []byte) []byte {
	buf = append(buf, utils.AsBytes(uint16(0))...)
	buf = append(buf, utils.AsBytes(uint16(0))...)
	totalSize := uint32(len(buf) + len(trailerEndMarker) + 4)
	buf = append(buf, []byte(trailerEndMarker)...)
	buf = append(buf, utils.AsBytes(totalSize)...)
	return buf
}
