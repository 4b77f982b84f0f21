// Package classic implements the Classic Section Compiler (spec §4.4)
// and the flag-bit directive tables shared by the Directive Parser: the
// [Options] section's 32-bit OptionsFlags word and each [Level]/[Title]
// section's 16-bit Flags word are both built from named on/off
// directives rather than schema-driven NG arguments, grounded on the
// teacher's tweak-template bit-field accessors (pack/wad/twk/twktree)
// generalized from one struct field per bit to a name-keyed table.
package classic

// optionsFlagBits names the bit positions of ScriptModel.OptionsFlags.
// Declared in a fixed table, the same shape as ngschema's declarative
// catalog, so the parser's routing between "this is a flag bit" and
// "this is an NG command" stays a simple two-table lookup.
var optionsFlagBits = map[string]uint32{
	"LoadSave":  1 << 0,
	"FlyCheat":  1 << 1,
	"DemoDisc":  1 << 2,
	"TitleDisc": 1 << 3,
}

// sectionFlagBits names the bit positions of Section.Flags.
var sectionFlagBits = map[string]uint16{
	"YoungLara": 1 << 0,
	"Horizon":   1 << 1,
	"AutoUzi":   1 << 2,
}

// LookupOptionsFlag reports whether name is a classic [Options] flag
// directive and, if so, its bit.
func LookupOptionsFlag(name string) (bit uint32, ok bool) {
	bit, ok = optionsFlagBits[name]
	return
}

// LookupSectionFlag reports whether name is a classic [Level]/[Title]
// flag directive and, if so, its bit.
func LookupSectionFlag(name string) (bit uint16, ok bool) {
	bit, ok = sectionFlagBits[name]
	return
}

// IsTruthy parses the small set of boolean spellings a flag directive's
// single argument may take (spec §4.4): ENABLED/DISABLED, ON/OFF, a
// decimal 0/1, or TRUE. Any other spelling reads as false.
func IsTruthy(arg string) bool {
	switch arg {
	case "ENABLED", "ON", "1", "TRUE":
		return true
	default:
		return false
	}
}
