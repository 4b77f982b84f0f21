// Package ngcompile implements the NG Command Compiler (spec §4.5): it
// walks each NGCommandGroup already assembled by the parser, encodes
// every command's resolved arguments into its 16-bit word payload,
// enforces the schema's occurrence cap with a map reset at each
// Level/Title boundary (kept local here rather than in ngschema.Schema,
// per the Design Notes guidance cited in that package), and applies the
// TriggerGroup -> TriggerGroupWord downgrade when every Long value in a
// TriggerGroup command fits 16 bits.
package ngcompile

import (
	"github.com/mogaika/ng-scriptc/diag"
	"github.com/mogaika/ng-scriptc/model"
	"github.com/mogaika/ng-scriptc/ngschema"
)

// groupFlag is the fixed per-chunk-kind flags value embedded in the
// trailer's Options/Level chunk headers (spec §4.7: FlagsOption
// `(200<<8)|1`, FlagsLevel `(201<<8)|1`) -- a schema version marker, not
// derived from any command argument.
const groupFlag = 1

// Compile compiles every NG command group in sm: the single Options
// group, if present, then each section's Level/Title group in turn.
func Compile(sm *model.ScriptModel, collector *diag.Collector) {
	if sm.OptionsNG != nil {
		compileGroup(sm.OptionsNG, collector, true)
	}
	for _, sec := range sm.Sections {
		if sec.NG != nil {
			compileGroup(sec.NG, collector, false)
		}
	}
}

func compileGroup(group *model.NGCommandGroup, collector *diag.Collector, isOptions bool) {
	counters := make(map[string]int)

	for _, cmd := range group.Commands {
		schema := ngschema.Lookup(cmd.SchemaName)
		if schema == nil {
			collector.Fatalf(diag.Internal, cmd.SourceFile, cmd.LineNumber, "no schema registered for NG command %q", cmd.SchemaName)
			continue
		}

		counters[cmd.SchemaName]++
		if schema.MaxOccurrences >= 0 && counters[cmd.SchemaName] > schema.MaxOccurrences {
			collector.Fatalf(diag.Occurrence, cmd.SourceFile, cmd.LineNumber,
				"%s occurs more than its maximum of %d times", cmd.SchemaName, schema.MaxOccurrences)
			continue
		}

		encodeCommand(cmd, schema)
	}

	if isOptions {
		group.OptionsFlag = groupFlag
	} else {
		group.LevelFlag = groupFlag
	}
}

// encodeCommand fills in cmd.Words (and, on downgrade, cmd.Tag) from
// cmd.Args per schema's argument-kind sequence.
func encodeCommand(cmd *model.NGCommand, schema *ngschema.Schema) {
	cmd.Tag = schema.Tag

	// Only AssignSlot argument 1 and Customize/Parameters argument 0
	// take a packed plugin id; every other argument drops it.
	packAt := -1
	switch schema.Tag {
	case ngschema.TagAssignSlot:
		packAt = 1
	case ngschema.TagCustomize, ngschema.TagParameters:
		packAt = 0
	}
	args := make([]model.Arg, len(cmd.Args))
	copy(args, cmd.Args)
	for i := range args {
		if i != packAt {
			args[i].PluginId = 0
		}
	}
	cmd.Words = encodeArgs(args, schema.Args)

	if schema.Tag == ngschema.TagTriggerGroup && triggerGroupFitsWord(cmd.Args) {
		cmd.Tag = ngschema.TagTriggerGroupWord
		cmd.Words = encodeArgs(cmd.Args, []model.ArgKind{
			model.ArgWord, model.ArgWord, model.ArgWord, model.ArgArrayWord,
		})
	}
}

// triggerGroupFitsWord reports whether every Long value in a
// TriggerGroup command -- its three scalar Longs and every ArrayLong
// element -- fits in 16 bits, signed or unsigned (spec §4.5's
// TriggerGroup -> TriggerGroupWord downgrade condition).
func triggerGroupFitsWord(args []model.Arg) bool {
	for i := 0; i < 3 && i < len(args); i++ {
		if !fits16(args[i].Scalar) {
			return false
		}
	}
	if len(args) < 4 {
		return true
	}
	for _, v := range args[3].Array {
		if !fits16(v) {
			return false
		}
	}
	return true
}

func fits16(v int64) bool {
	return v >= -32768 && v <= 65535
}

// encodeArgs encodes args against kinds positionally, packing the
// plugin id the Expression Evaluator carried along with a resolved
// symbol into the high word of a Long argument when present (spec
// §4.5: AssignSlot argument 1, Customize/Parameters argument 0). Word
// costs per kind follow the §4.5 Kind/Words table exactly: a plain
// Array (of word) is just its N elements and ArrayLong is 2×N, neither
// carries a separate count word -- only ArrayByte/ArrayNybble fold a
// count *byte* into their own byte stream before word-packing.
func encodeArgs(args []model.Arg, kinds []model.ArgKind) []uint16 {
	var words []uint16
	for i, arg := range args {
		kind := arg.Kind
		if i < len(kinds) {
			kind = kinds[i]
		}
		switch kind {
		case model.ArgWord, model.ArgInteger, model.ArgItemSlot, model.ArgBool, model.ArgImport, model.ArgString:
			words = append(words, uint16(arg.Scalar))
		case model.ArgLong:
			lo := uint16(uint64(arg.Scalar))
			hi := uint16(uint64(arg.Scalar) >> 16)
			if arg.PluginId != 0 {
				hi = uint16(arg.PluginId)
			}
			words = append(words, lo, hi)
		case model.ArgArrayWord:
			for _, v := range arg.Array {
				words = append(words, uint16(v))
			}
		case model.ArgArrayByte:
			bs := make([]byte, 0, 1+len(arg.Array))
			bs = append(bs, byte(len(arg.Array)))
			for _, v := range arg.Array {
				bs = append(bs, byte(v))
			}
			words = append(words, packBytesToWords(bs)...)
		case model.ArgArrayNybble:
			bs := make([]byte, 0, 1+(len(arg.Array)+1)/2)
			bs = append(bs, byte(len(arg.Array)))
			for j := 0; j < len(arg.Array); j += 2 {
				lo := byte(arg.Array[j]) & 0xF
				var hi byte
				if j+1 < len(arg.Array) {
					hi = byte(arg.Array[j+1]) & 0xF
				}
				bs = append(bs, lo|hi<<4)
			}
			words = append(words, packBytesToWords(bs)...)
		case model.ArgArrayLong:
			for _, v := range arg.Array {
				words = append(words, uint16(uint64(v)), uint16(uint64(v)>>16))
			}
		}
	}
	return words
}

// packBytesToWords little-endian-packs bs two bytes per word, even-
// padding with a trailing zero byte if bs has odd length (spec §4.5's
// "even-padded" ArrayByte/ArrayNybble word costs).
func packBytesToWords(bs []byte) []uint16 {
	if len(bs)%2 != 0 {
		bs = append(bs, 0)
	}
	words := make([]uint16, 0, len(bs)/2)
	for i := 0; i < len(bs); i += 2 {
		words = append(words, uint16(bs[i])|uint16(bs[i+1])<<8)
	}
	return words
}
