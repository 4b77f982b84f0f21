package model

// ArgKind tags one NGCommand argument's variant, mirroring the argument
// kinds of an NGCommandSchema entry. Argument lists are heterogeneous
// (Word/Long/String/Array mixed in one command), so a tagged-variant
// value type -- one field populated per Kind -- is the natural Go
// encoding of the source language's dynamically-typed argument lists
// (see DESIGN.md / spec §9).
type ArgKind int

const (
	ArgWord ArgKind = iota
	ArgInteger
	ArgLong
	ArgItemSlot
	ArgBool
	ArgString
	ArgImport
	ArgArrayWord
	ArgArrayByte
	ArgArrayNybble
	ArgArrayLong
)

// Arg is one resolved NG command argument.
type Arg struct {
	Kind ArgKind

	// Scalar holds Word/Integer/Long/ItemSlot/Import/Bool/String
	// values. Longs and the plugin-packed variants use the full
	// int64 range before truncation at encode time.
	Scalar int64

	// PluginId is the plugin id resolved while evaluating Scalar, 0
	// if none. Used by the AssignSlot/Customize/Parameters packing
	// rule (spec §4.5).
	PluginId int32

	// Array holds ArrayWord/ArrayByte/ArrayNybble/ArrayLong elements.
	Array []int64

	// Text holds the ArgString payload. String arguments are encoded
	// as an index into the language table; the parser resolves this raw
	// text into Scalar when it builds the command, leaving Scalar 0 when
	// no table is loaded yet or the text is not found (spec §4.5).
	Text string
}

// NGCommand is one parsed Next-Generation directive: a name resolved
// against the schema catalog, its already-type-checked arguments, and
// (after compilation) its encoded word buffer.
type NGCommand struct {
	SchemaName string
	Tag        byte

	Args []Arg

	// Words is the compiled payload, filled in by the NG Command
	// Compiler. It does not include the leading header word.
	Words []uint16

	SourceFile string
	LineNumber int
}

// NGCommandGroup is an ordered list of NG commands sharing one set of
// 16-bit Options/Level flags (spec §3). Every Level/Title section and
// the top-level [Options] section each own one group.
type NGCommandGroup struct {
	Commands    []*NGCommand
	OptionsFlag uint16
	LevelFlag   uint16
}
