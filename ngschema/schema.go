// Package ngschema is the NGCommandSchema catalog (spec §3, §4.5): the
// authoritative, process-wide description of every NG directive's tag
// code, argument-kind sequence, options-only flag and occurrence cap.
//
// The catalog is assembled once, declaratively, in an init() the same
// way the teacher's tweak-template tree builds its per-template field
// lists (pack/wad/twk/twktree/init.go: one builder call per field,
// grouped under one template-constructor function per command). Here
// one addSchema call plays the role of one AddFieldN/AddFieldA call,
// and one registerXxx function plays the role of one
// initTweakTemplateXxx function.
package ngschema

import "github.com/mogaika/ng-scriptc/model"

// Schema describes one NG command's encoding rules. It is read-mostly:
// the only mutable per-command state the NG Command Compiler needs
// (the running occurrence count) is deliberately kept out of this
// struct and lives in a local counters map in ngcompile instead, per the Design Notes
// guidance to model it as a local map reset at Level boundaries rather
// than as shared mutable catalog state.
type Schema struct {
	Name           string
	Tag            byte
	Args           []model.ArgKind
	OptionsOnly    bool
	MaxOccurrences int // -1 = unlimited
}

// HasTrailingArray reports whether the last argument kind is an array
// kind -- the only position an array argument may appear in (spec
// §4.5: "At most one Array-kind argument is allowed and must be the
// last").
func (s *Schema) HasTrailingArray() bool {
	if len(s.Args) == 0 {
		return false
	}
	return isArrayKind(s.Args[len(s.Args)-1])
}

func isArrayKind(k model.ArgKind) bool {
	switch k {
	case model.ArgArrayWord, model.ArgArrayByte, model.ArgArrayNybble, model.ArgArrayLong:
		return true
	default:
		return false
	}
}

// Catalog is the well-known tag assignments referenced by spec §4.5's
// worked examples and the TriggerGroup/TriggerGroupWord downgrade.
const (
	TagAssignSlot       byte = 1
	TagCustomize        byte = 2
	TagParameters       byte = 3
	TagTriggerGroup     byte = 21
	TagTriggerGroupWord byte = 46
)

var catalog map[string]*Schema

func init() {
	catalog = make(map[string]*Schema)
	registerCore()
	registerFlow()
	registerTriggers()
	registerMisc()
}

func addSchema(name string, tag byte, optionsOnly bool, maxOcc int, args ...model.ArgKind) {
	if _, exists := catalog[name]; exists {
		panic("duplicate NG schema " + name)
	}
	catalog[name] = &Schema{
		Name:           name,
		Tag:            tag,
		Args:           args,
		OptionsOnly:    optionsOnly,
		MaxOccurrences: maxOcc,
	}
}

// registerCore declares the NG commands that pack a plugin id into one
// of their Long arguments (spec §4.5: AssignSlot argument 1, Customize
// and Parameters argument 0).
func registerCore() {
	addSchema("AssignSlot", TagAssignSlot, false, -1,
		model.ArgItemSlot, model.ArgLong)
	addSchema("Customize", TagCustomize, false, -1,
		model.ArgLong, model.ArgWord)
	addSchema("Parameters", TagParameters, false, -1,
		model.ArgLong, model.ArgWord, model.ArgWord)
}

// registerTriggers declares TriggerGroup and its 16-bit-payload
// downgrade target, plus a small family of trigger-adjacent commands
// that exercise the Array argument kinds.
func registerTriggers() {
	addSchema("TriggerGroup", TagTriggerGroup, false, -1,
		model.ArgLong, model.ArgLong, model.ArgLong, model.ArgArrayLong)
	addSchema("TriggerGroupWord", TagTriggerGroupWord, false, -1,
		model.ArgWord, model.ArgWord, model.ArgWord, model.ArgArrayWord)

	addSchema("TriggerGroupActivate", 22, false, -1, model.ArgWord)
	addSchema("TriggerGroupDeactivate", 23, false, -1, model.ArgWord)
}

// registerFlow declares the genuinely NG-only switches and the string
// and import-file commands. LoadSave/FlyCheat/DemoDisc/TitleDisc and
// YoungLara/Horizon/AutoUzi are classic flag-bit directives (spec
// §4.4), not NG commands, so they live in classic's flag tables
// instead of here -- putting them in both places would make their
// routing ambiguous.
func registerFlow() {
	addSchema("ScreenFiltering", 14, true, -1, model.ArgBool)

	addSchema("DisplayMessage", 40, false, -1, model.ArgString)
	addSchema("SetStartPosition", 41, false, 1, model.ArgWord, model.ArgWord, model.ArgWord)

	addSchema("Plugin", 50, true, -1, model.ArgString, model.ArgLong)
	addSchema("ImportFile", 51, false, -1, model.ArgImport)
}

// registerMisc exercises the remaining argument kinds (Integer, byte-
// packed and nibble-packed arrays) with commands that have no other
// spec-mandated shape.
func registerMisc() {
	addSchema("InventoryWeight", 60, false, -1, model.ArgInteger)
	addSchema("CameraAngleTable", 61, false, -1, model.ArgArrayByte)
	addSchema("DamageNybbleTable", 62, false, -1, model.ArgArrayNybble)
	addSchema("StatOverride", 63, false, -1, model.ArgWord, model.ArgArrayWord)
}

// Lookup returns the schema for name, or nil if name is not an NG
// command (the caller routes it to the classic compiler instead, per
// spec §4.3's "if the name appears in the NG schema catalog ... it is
// an NG command; otherwise classic").
func Lookup(name string) *Schema {
	return catalog[name]
}

// All returns every registered schema, used by the `-dump-schema` debug
// dump and by tests.
func All() map[string]*Schema {
	return catalog
}
