// Package model holds the entities exchanged between the pipeline
// phases described in the data model: the Parser produces a
// ScriptModel, the Classic and NG compilers consume and annotate it in
// place, and the Container Writer consumes the finished result. No
// phase mutates another phase's state after hand-off (see
// concurrency/resource model notes).
package model

// SectionKind distinguishes the two classic section flavors. Title
// sections omit the display-name index that Level sections carry in
// their trailer; both kinds use the same directive ordering.
type SectionKind int

const (
	SectionLevel SectionKind = iota
	SectionTitle
)

func (k SectionKind) String() string {
	if k == SectionTitle {
		return "Title"
	}
	return "Level"
}

// RawLine is one already-normalized directive line, annotated with its
// source position for diagnostics and carrying the sort key the Classic
// Section Compiler uses to reproduce the canonical emit order.
type RawLine struct {
	Command    string
	Args       []string
	SourceFile string
	LineNumber int
	SortKey    int
	// OriginalIndex preserves declaration order for the stable sort.
	OriginalIndex int
}

// Section is one [Level] or [Title] block.
type Section struct {
	Kind        SectionKind
	Flags       uint16
	DisplayName string
	FilePath    string
	CDNumber    byte
	Lines       []RawLine

	// Emitted is the classic byte stream produced for this section,
	// filled in by the Classic Section Compiler.
	Emitted []byte

	// NG is the NG command group attached to this section (tag
	// 0x800C, "Level chunk"), filled in by the NG Command Compiler.
	NG *NGCommandGroup

	// Index is this section's position within ScriptModel.Sections,
	// assigned once all sections are parsed.
	Index int
}

// ScriptModel is the single exchange medium between Parser, Compilers
// and Container Writer.
type ScriptModel struct {
	OptionsFlags  uint32
	InputTimeout  uint32
	SecurityValue byte

	PSXExtensions [4]string
	PCExtensions  [4]string

	Sections []*Section

	// LanguageFiles are the declared [Language] File= base names, in
	// declaration order.
	LanguageFiles []string

	// Languages holds the parsed contents of the first file named in
	// LanguageFiles, keyed by that base name. The other declared files
	// are not parsed and have no entry here.
	Languages map[string]*LanguageTable

	// OptionsNG is the NG command group attached to the [Options]
	// section (tag 0x800B, "Options chunk").
	OptionsNG *NGCommandGroup

	// Imports are the registered ImportFile commands, in textual
	// order, used to build the trailer's ImportFile chunks.
	Imports []*ImportFile

	EncryptHeader bool
}

// ImportFile is one registered NG "ImportFile" command's payload
// description (spec §4.7 item 4). Id is the import's own registration
// index; FileNumber is the distinct trailing-digit-run parsed from
// BaseName -- the two are separate fields in the chunk's fixed layout
// and must not be conflated.
type ImportFile struct {
	Id         int32
	ImportMode int32
	FileType   int32
	FileNumber int32
	BaseName   string
	Data       []byte
}
