package container

import (
	"github.com/mogaika/ng-scriptc/model"
	"github.com/mogaika/ng-scriptc/utils"
)

const (
	chunkTagOptions    uint16 = 0x800B
	chunkTagLevel      uint16 = 0x800C
	chunkTagSecurity   uint16 = 0x8016
	chunkTagImportFile uint16 = 0x801F

	flagsOptionKind byte = 200
	flagsLevelKind  byte = 201

	// importFileNameFieldSize is the fixed 40-word (80-byte) padded
	// filename field in an ImportFile chunk's prelude (spec §4.7 item 4).
	importFileNameFieldSize = 80
)

// commandWords renders one compiled NGCommand as its header word --
// `(tag<<8)|payload_word_count` (spec §4.5) -- followed by its payload
// words.
func commandWords(cmd *model.NGCommand) []uint16 {
	header := uint16(cmd.Tag)<<8 | uint16(len(cmd.Words)&0xFF)
	return append([]uint16{header}, cmd.Words...)
}

func optionsChunkPayload(group *model.NGCommandGroup) []byte {
	words := []uint16{uint16(flagsOptionKind)<<8 | uint16(group.OptionsFlag)}
	for _, cmd := range group.Commands {
		words = append(words, commandWords(cmd)...)
	}
	return wordsToBytes(words)
}

func levelChunkPayload(section *model.Section) []byte {
	words := []uint16{
		uint16(flagsLevelKind)<<8 | uint16(section.NG.LevelFlag),
		uint16(section.Index),
	}
	for _, cmd := range section.NG.Commands {
		words = append(words, commandWords(cmd)...)
	}
	return wordsToBytes(words)
}

// importFileChunkPayload renders an ImportFile chunk's fixed-layout
// prelude -- id, import-mode, file-type, file-number, an 80-byte
// padded filename, a 2-word file size -- followed by the raw file
// bytes packed little-endian into words (spec §4.7 item 4).
func importFileChunkPayload(imp *model.ImportFile) []byte {
	words := []uint16{
		uint16(imp.Id),
		uint16(imp.ImportMode),
		uint16(imp.FileType),
		uint16(imp.FileNumber),
	}
	payload := wordsToBytes(words)
	payload = append(payload, utils.StringToBytesBuffer(imp.BaseName, importFileNameFieldSize, true)...)

	size := uint32(len(imp.Data))
	payload = append(payload, wordsToBytes([]uint16{uint16(size), uint16(size >> 16)})...)

	payload = append(payload, imp.Data...)
	if len(payload)%2 != 0 {
		payload = append(payload, 0)
	}
	return payload
}

// buildTrailer assembles the full "NG"-marked trailer: the Options
// chunk (if any NG options commands were parsed), the security chunk,
// one Level chunk per section that carries NG commands, one ImportFile
// chunk per registered import, then the NGLE end record.
func buildTrailer(sm *model.ScriptModel, bodySoFar []byte, seed int64) []byte {
	trailer := []byte(trailerMarker)

	if sm.OptionsNG != nil && len(sm.OptionsNG.Commands) > 0 {
		trailer = writeChunk(trailer, chunkTagOptions, optionsChunkPayload(sm.OptionsNG))
	}

	trailer = writeChunk(trailer, chunkTagSecurity, buildSecurityPayload(checksum(bodySoFar), seed))

	for _, section := range sm.Sections {
		if section.NG != nil && len(section.NG.Commands) > 0 {
			trailer = writeChunk(trailer, chunkTagLevel, levelChunkPayload(section))
		}
	}

	for _, imp := range sm.Imports {
		trailer = writeChunk(trailer, chunkTagImportFile, importFileChunkPayload(imp))
	}

	return endTrailer(trailer)
}
