// Package langparser implements the source-text half of the Language
// Parser (spec §4.6): turning one decoded language file's text into a
// model.LanguageTable, including escape decoding, the optional
// colon-prefixed special tag (disabled in the ExtraNG section, where
// the colon instead introduces an explicit numeric index) and the
// per-section cumulative byte size / running offset table the Language
// Compiler later needs unchanged.
//
// Grounded on the same file-to-struct shape as the Directive Parser
// (parser package), reusing the teacher's scanner-loop style rather
// than lexmachine, since language files have no nested grammar beyond
// "one string per line".
package langparser

import (
	"strconv"
	"strings"

	"github.com/mogaika/ng-scriptc/diag"
	"github.com/mogaika/ng-scriptc/model"
	"github.com/mogaika/ng-scriptc/utils"
)

// Parse parses the decoded contents of one language file, already read
// via FileSystem and CP-1252-decoded by the caller.
func Parse(file string, text string) (*model.LanguageTable, []diag.Diagnostic) {
	table := &model.LanguageTable{}
	var diags []diag.Diagnostic

	section := -1
	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(strings.TrimRight(raw, "\r"))
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}

		if kind, ok := sectionHeader(line); ok {
			section = int(kind)
			continue
		}
		if section < 0 {
			diags = append(diags, diag.Diagnostic{
				Kind: diag.Parse, SourceFile: file, Line: lineNo,
				Message: "text outside any language section, ignored",
			})
			continue
		}

		if model.LanguageSection(section) == model.SectionExtraNG {
			idx, body, err := splitExtraNGLine(line)
			if err != nil {
				diags = append(diags, diag.Diagnostic{
					Kind: diag.Parse, SourceFile: file, Line: lineNo, Fatal: true, Message: err.Error(),
				})
				continue
			}
			table.Sections[section] = append(table.Sections[section], model.StringEntry{
				Text: unescape(body), Index: idx,
			})
			continue
		}

		tag, body := splitSpecialTag(line)
		table.Sections[section] = append(table.Sections[section], model.StringEntry{
			Tag: tag, Text: unescape(body), Index: len(table.Sections[section]),
		})
	}

	computeSizesAndOffsets(table)
	return table, diags
}

func sectionHeader(line string) (model.LanguageSection, bool) {
	if !strings.HasPrefix(line, "[") || !strings.HasSuffix(line, "]") {
		return 0, false
	}
	switch strings.ToLower(line[1 : len(line)-1]) {
	case "strings":
		return model.SectionStrings, true
	case "psx strings", "psxstrings":
		return model.SectionPSXStrings, true
	case "pc strings", "pcstrings":
		return model.SectionPCStrings, true
	case "extrang", "extra_ng":
		return model.SectionExtraNG, true
	default:
		return 0, false
	}
}

// splitSpecialTag splits a Strings/PSX Strings/PC Strings line on its
// optional leading `tag:` prefix. The prefix is only recognized when
// the text before the colon is a bare identifier (no spaces or quotes);
// anything else means the line has no tag and the colon, if any, is
// part of the string body itself.
func splitSpecialTag(line string) (tag, body string) {
	i := strings.IndexByte(line, ':')
	if i < 0 {
		return "", line
	}
	candidate := line[:i]
	if !isBareIdentifier(candidate) {
		return "", line
	}
	return candidate, strings.TrimSpace(line[i+1:])
}

func isBareIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}

// splitExtraNGLine parses ExtraNG's mandatory `index: text` form.
func splitExtraNGLine(line string) (int, string, error) {
	i := strings.IndexByte(line, ':')
	if i < 0 {
		return 0, "", errMalformedExtraNG(line)
	}
	idx, err := strconv.Atoi(strings.TrimSpace(line[:i]))
	if err != nil {
		return 0, "", errMalformedExtraNG(line)
	}
	return idx, strings.TrimSpace(line[i+1:]), nil
}

func errMalformedExtraNG(line string) error {
	return &malformedExtraNGError{line: line}
}

type malformedExtraNGError struct{ line string }

func (e *malformedExtraNGError) Error() string {
	return "malformed ExtraNG line, expected \"index: text\": " + e.line
}

// unescape decodes `\n`, `\t`, `\\` and `\xNN` escapes and strips one
// pair of surrounding double quotes, if present (spec §4.6).
func unescape(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	var out strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			out.WriteByte(s[i])
			continue
		}
		switch s[i+1] {
		case 'n':
			out.WriteByte('\n')
			i++
		case 't':
			out.WriteByte('\t')
			i++
		case '\\':
			out.WriteByte('\\')
			i++
		case 'x':
			if i+3 < len(s) {
				if v, err := strconv.ParseUint(s[i+2:i+4], 16, 8); err == nil {
					out.WriteByte(byte(v))
					i += 3
					continue
				}
			}
			out.WriteByte(s[i])
		default:
			out.WriteByte(s[i])
		}
	}
	return out.String()
}

// computeSizesAndOffsets fills in SectionSizes and the cross-section
// Offsets table (spec §3: "Offsets[i+1]-Offsets[i] equals
// bytelen(strings[i])+1").
func computeSizesAndOffsets(table *model.LanguageTable) {
	var running uint16
	for s := model.SectionStrings; s < model.LanguageSection(len(table.Sections)); s++ {
		var sectionBytes uint16
		for _, entry := range table.Sections[s] {
			table.Offsets = append(table.Offsets, running)
			n := uint16(len(utils.StringToBytes(entry.Text, false))) + 1
			running += n
			sectionBytes += n
		}
		table.SectionSizes[s] = sectionBytes
	}
}
