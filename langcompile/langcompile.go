// Package langcompile emits the binary half of the Language Compiler
// (spec §4.6): a model.LanguageTable's already-computed section sizes
// and offset table, followed by every string's bytes XOR-obfuscated
// with the fixed key 0xA5 (including its NUL terminator, so the
// encode/decode round trip is a pure byte-wise XOR -- spec Testable
// Property P5), plus an optional ExtraNG trailer.
//
// Grounded on the teacher's tweak-file byte assembly
// (pack/wad/twk/twk.go's Produce) generalized from tweak fields to
// string-table sections, using the same stdlib encoding/binary-backed
// utils.AsBytes helper for every fixed-width field.
package langcompile

import (
	"github.com/mogaika/ng-scriptc/model"
	"github.com/mogaika/ng-scriptc/utils"
)

// xorKey obfuscates every string byte in a language.dat, classic
// sections and ExtraNG text alike (spec §4.6).
const xorKey = 0xA5

// extraNGChunkTag identifies the ExtraNG trailer chunk, the
// language.dat analogue of script.dat's NG trailer chunks (spec §4.7).
const extraNGChunkTag = 0x800A

const classicSectionCount = 3 // Strings, PSX Strings, PC Strings

// Compile renders table into a language.dat body.
func Compile(table *model.LanguageTable) []byte {
	var out []byte

	for s := 0; s < classicSectionCount; s++ {
		out = append(out, utils.AsBytes(table.SectionSizes[s])...)
		out = append(out, utils.AsBytes(uint16(len(table.Sections[s])))...)
	}

	out = append(out, utils.AsBytes(uint16(len(table.Offsets)))...)
	for _, o := range table.Offsets {
		out = append(out, utils.AsBytes(o)...)
	}

	for s := 0; s < classicSectionCount; s++ {
		for _, entry := range table.Sections[s] {
			out = append(out, xorTerminated(entry.Text)...)
		}
	}

	if extra := table.Sections[model.SectionExtraNG]; len(extra) > 0 {
		out = append(out, encodeExtraNGTrailer(extra)...)
	}

	return out
}

// xorTerminated XOR-obfuscates s's encoded bytes plus its NUL
// terminator, so DecodeXored below is a pure inverse.
func xorTerminated(s string) []byte {
	raw := append(utils.StringToBytes(s, false), 0)
	out := make([]byte, len(raw))
	for i, b := range raw {
		out[i] = b ^ xorKey
	}
	return out
}

// DecodeXored reverses xorTerminated against a byte stream starting at
// the first obfuscated string, returning the decoded text and the
// number of encoded bytes (including the terminator) it consumed.
func DecodeXored(encoded []byte) (string, int) {
	var raw []byte
	for i, b := range encoded {
		d := b ^ xorKey
		if d == 0 {
			return utils.BytesToString(raw), i + 1
		}
		raw = append(raw, d)
	}
	return utils.BytesToString(raw), len(encoded)
}

// encodeExtraNGTrailer packs a leading count-of-extras word, then
// every ExtraNG entry's explicit index, packed-word count and
// XOR-obfuscated text, into an "NG"/"NGLE"-framed chunk using the same
// self-inclusive count-word framing as script.dat's trailer (spec
// §4.6: "the same ... framing closes the trailer"), except that here
// the terminator byte is left unencrypted so a reader can find string
// boundaries without first decoding them.
func encodeExtraNGTrailer(entries []model.StringEntry) []byte {
	payload := utils.AsBytes(uint16(len(entries)))
	for _, e := range entries {
		payload = append(payload, utils.AsBytes(uint16(e.Index))...)

		encoded := utils.StringToBytes(e.Text, false)
		body := make([]byte, len(encoded)+1)
		for i, b := range encoded {
			body[i] = b ^ xorKey
		}
		body[len(encoded)] = 0
		if len(body)%2 != 0 {
			body = append(body, 0)
		}

		payload = append(payload, utils.AsBytes(uint16(len(body)/2))...)
		payload = append(payload, body...)
	}

	return wrapExtraNGChunk(payload)
}

// wrapExtraNGChunk frames payload exactly the way script.dat's trailer
// frames each of its chunks: a self-inclusive leading word count
// (length field + tag + payload, escaping to the two-word DWORD form
// past 0x7FFF words), the tag, then the payload, closed by the
// two-zero-words + "NGLE"+size end record.
func wrapExtraNGChunk(payload []byte) []byte {
	trailer := []byte("NG")

	payloadWords := len(payload) / 2
	if total := 1 + 1 + payloadWords; total <= 0x7FFF {
		trailer = append(trailer, utils.AsBytes(uint16(total))...)
	} else {
		total := uint32(2 + 1 + payloadWords)
		high := uint16(total>>16) | 0x8000
		low := uint16(total)
		trailer = append(trailer, utils.AsBytes(high)...)
		trailer = append(trailer, utils.AsBytes(low)...)
	}
	trailer = append(trailer, utils.AsBytes(uint16(extraNGChunkTag))...)
	trailer = append(trailer, payload...)

	trailer = append(trailer, utils.AsBytes(uint16(0))...)
	trailer = append(trailer, utils.AsBytes(uint16(0))...)
	totalSize := uint32(len(trailer) + len("NGLE") + 4)
	trailer = append(trailer, []byte("NGLE")...)
	trailer = append(trailer, utils.AsBytes(totalSize)...)
	return trailer
}
