package classic

import (
	"sort"

	"github.com/mogaika/ng-scriptc/diag"
	"github.com/mogaika/ng-scriptc/model"
	"github.com/mogaika/ng-scriptc/symbols"
	"github.com/mogaika/ng-scriptc/utils"
)

const (
	trailerTagLevel  byte = 0x81
	trailerTagTitle  byte = 0x82
	trailerTerminator byte = 0x83
)

// Compile assigns sort keys to section's classic lines, stably sorts
// them into canonical tag order, encodes each directive's fixed
// tag-byte-plus-payload body (spec §6) and appends the section trailer,
// filling in section.Emitted. LoadCamera/Name/CDNumber are metadata
// directives consumed here rather than emitted as body bytes.
func Compile(section *model.Section, symtab *symbols.Table, lang *model.LanguageTable, index int, collector *diag.Collector) {
	var body []model.RawLine

	for _, line := range section.Lines {
		switch line.Command {
		case "LoadCamera":
			if len(line.Args) != 1 {
				collector.Fatalf(diag.Parse, line.SourceFile, line.LineNumber, "LoadCamera expects 1 argument")
				continue
			}
			section.FilePath = line.Args[0]
		case "Name":
			if len(line.Args) != 1 {
				collector.Fatalf(diag.Parse, line.SourceFile, line.LineNumber, "Name expects 1 argument")
				continue
			}
			section.DisplayName = line.Args[0]
		case "CDNumber":
			if len(line.Args) != 1 {
				collector.Fatalf(diag.Parse, line.SourceFile, line.LineNumber, "CDNumber expects 1 argument")
				continue
			}
			v, err := ResolveNumeric(symtab, line.SourceFile, line.Args[0])
			if err != nil {
				collector.Fatalf(diag.Parse, line.SourceFile, line.LineNumber, "%s", err)
				continue
			}
			section.CDNumber = byte(v)
		default:
			body = append(body, line)
		}
	}

	if section.FilePath == "" {
		collector.Fatalf(diag.Reference, section.Lines[0].SourceFile, section.Lines[0].LineNumber,
			"section %q is missing a required LoadCamera= directive", section.DisplayName)
	}
	if section.Kind == model.SectionLevel && section.DisplayName == "" {
		collector.Fatalf(diag.Reference, section.Lines[0].SourceFile, section.Lines[0].LineNumber,
			"section is missing a required Name= directive")
	}

	type encoded struct {
		line    model.RawLine
		tag     byte
		payload []byte
		sortKey int
	}
	entries := make([]encoded, 0, len(body))

	for i, line := range body {
		spec, orderIndex, ok := LookupDirective(line.Command)
		if !ok {
			collector.Addf(diag.Schema, line.SourceFile, line.LineNumber, "unknown classic directive %q, ignored", line.Command)
			continue
		}
		payload, adjust, err := spec.encode(symtab, lang, line.SourceFile, line.Args)
		if err != nil {
			collector.Fatalf(diag.Parse, line.SourceFile, line.LineNumber, "%s", err)
			continue
		}
		line.OriginalIndex = i
		line.SortKey = orderIndex*1000 + int(adjust)
		entries = append(entries, encoded{line: line, tag: spec.tag, payload: payload, sortKey: line.SortKey})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].sortKey < entries[j].sortKey })

	var out []byte
	for _, e := range entries {
		out = append(out, e.tag)
		out = append(out, e.payload...)
	}

	trailerTag := trailerTagLevel
	if section.Kind == model.SectionTitle {
		trailerTag = trailerTagTitle
	}

	trailer := []byte{trailerTag}
	if section.Kind == model.SectionLevel {
		nameIndex, extra, err := ResolveStringIndex(lang, section.DisplayName)
		if err != nil {
			collector.Fatalf(diag.Reference, section.Lines[0].SourceFile, section.Lines[0].LineNumber, "%s", err)
			nameIndex = 0
		}
		if extra {
			nameIndex |= 0x8000
		}
		trailer = append(trailer, utils.AsBytes(nameIndex)...)
	}
	trailer = append(trailer, utils.AsBytes(section.Flags)...)
	trailer = append(trailer, utils.AsBytes(uint16(index))...)
	trailer = append(trailer, section.CDNumber)
	trailer = append(trailer, trailerTerminator)

	section.Index = index
	section.Emitted = append(out, trailer...)
}
