// Package parser implements the Directive Parser (spec §4.3): an
// include-stack-driven scanner over one or more CP-1252 source files
// that resolves `#define`s and Plugin= declarations against the Symbol
// Resolver, routes each [Level]/[Title] line to either the classic or
// NG sub-parser, and assembles the resulting model.ScriptModel.
//
// Grounded on the teacher's lexmachine-driven scanner loop
// (scriptlang/parser.go) and the nested-buffer bookkeeping of
// utils/bufstack.go, repurposed here as a flat include stack of open
// files with per-file line counters rather than a parse-tree of nested
// buffers, since directive source has no nested-expression structure to
// track.
package parser

import (
	"strings"

	"github.com/mogaika/ng-scriptc/lexer"
	"github.com/mogaika/ng-scriptc/utils"
)

// FileSystem is the narrow byte-source abstraction the parser needs;
// the CLI driver supplies the real implementation backed by os.ReadFile.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// fileFrame is one entry of the include stack: a source file's decoded
// line buffer and its own line counter, independent of every other
// open file's counter (spec §4.3 Design Notes: "a per-file counter, not
// global").
type fileFrame struct {
	name string
	src  lexer.LineSource
}

func newFileFrame(name string, data []byte) fileFrame {
	text := utils.DecodeText(data)
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	return fileFrame{name: name, src: lexer.NewSliceLineSource(lines)}
}
