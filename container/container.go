package container

import (
	"github.com/mogaika/ng-scriptc/config"
	"github.com/mogaika/ng-scriptc/model"
	"github.com/mogaika/ng-scriptc/utils"
)

const extensionFieldSize = 20

// Build lays out sm as a complete script.dat byte stream: the fixed
// header, the padded PSX/PC extension blocks, a level-path offset table
// and its NUL-terminated path blob, a section offset table and its
// compiled payload blob, the NUL-terminated language basenames, and
// finally the NG trailer. If opts.EncryptHeader is set, the first 64
// bytes are permuted and XOR-scrambled in place as the very last step,
// matching the teacher's two-phase UpdateTagsData write (body fully
// assembled, then one finishing pass over it).
func Build(sm *model.ScriptModel, opts config.Options) []byte {
	var body []byte

	body = append(body, utils.AsBytes(sm.OptionsFlags)...)
	body = append(body, utils.AsBytes(sm.InputTimeout)...)
	body = append(body, sm.SecurityValue)
	body = append(body, 0, 0, 0) // pad SecurityValue to a 4-byte boundary
	body = append(body, utils.AsBytes(uint16(len(sm.Sections)))...)
	body = append(body, utils.AsBytes(uint16(len(sm.LanguageFiles)))...)

	for _, ext := range sm.PSXExtensions {
		body = append(body, utils.StringToBytesBuffer(ext, extensionFieldSize, true)...)
	}
	for _, ext := range sm.PCExtensions {
		body = append(body, utils.StringToBytesBuffer(ext, extensionFieldSize, true)...)
	}

	body = appendSectionPaths(body, sm.Sections)
	body = appendSectionPayloads(body, sm.Sections)
	body = appendLanguageBaseNames(body, sm.LanguageFiles)

	body = append(body, buildTrailer(sm, body, opts.PRNGSeed)...)

	if opts.EncryptHeader {
		EncryptHeader(body)
	}

	return body
}

// appendSectionPaths writes the level-path offset table (one u16 per
// section, offset relative to the start of the path blob that
// immediately follows the table) then the blob itself.
func appendSectionPaths(body []byte, sections []*model.Section) []byte {
	blob := make([]byte, 0, len(sections)*16)
	offsets := make([]uint16, len(sections))
	for i, s := range sections {
		offsets[i] = uint16(len(blob))
		blob = append(blob, utils.StringToBytes(s.FilePath, true)...)
	}
	for _, o := range offsets {
		body = append(body, utils.AsBytes(o)...)
	}
	return append(body, blob...)
}

// appendSectionPayloads writes the section offset table (one u32 per
// section, offset relative to the start of the payload blob) then the
// concatenated compiled section payloads.
func appendSectionPayloads(body []byte, sections []*model.Section) []byte {
	blob := make([]byte, 0, 256)
	offsets := make([]uint32, len(sections))
	for i, s := range sections {
		offsets[i] = uint32(len(blob))
		blob = append(blob, s.Emitted...)
	}
	for _, o := range offsets {
		body = append(body, utils.AsBytes(o)...)
	}
	return append(body, blob...)
}

// appendLanguageBaseNames writes every declared language file's base
// name, NUL-terminated, followed by one extra NUL marking the end of
// the list.
func appendLanguageBaseNames(body []byte, names []string) []byte {
	for _, n := range names {
		body = append(body, utils.StringToBytes(n, true)...)
	}
	return append(body, 0)
}
