package classic

import (
	"github.com/pkg/errors"

	"github.com/mogaika/ng-scriptc/model"
	"github.com/mogaika/ng-scriptc/symbols"
	"github.com/mogaika/ng-scriptc/utils"
)

// directiveSpec describes one classic body directive's tag byte and
// payload encoder (spec §6). Its emit order is its position in
// tagOrder, which LookupDirective returns for building the sort key.
type directiveSpec struct {
	tag    byte
	encode func(symtab *symbols.Table, lang *model.LanguageTable, file string, args []string) ([]byte, int32, error)
}

// tagOrder fixes the canonical emit order classic lines are stably
// sorted into, independent of source declaration order (spec §4.4).
var tagOrder = []string{
	"FMV",
	"AnimatingMIP",
	"SetMusicTrack",
	"SetAmbientLight",
	"InventoryItem",
	"InventoryPiece",
}

var directiveTable = map[string]directiveSpec{
	"FMV":             {tag: 0x01, encode: encodeFMV},
	"AnimatingMIP":    {tag: 0x02, encode: encodeAnimatingMIP},
	"SetMusicTrack":   {tag: 0x05, encode: encodeSetMusicTrack},
	"SetAmbientLight": {tag: 0x06, encode: encodeSetAmbientLight},
	"InventoryItem":   {tag: 0x03, encode: encodeInventoryItem},
	"InventoryPiece":  {tag: 0x04, encode: encodeInventoryPiece},
}

// LookupDirective reports whether name is a known classic body
// directive and returns its order index within tagOrder.
func LookupDirective(name string) (spec directiveSpec, orderIndex int, ok bool) {
	spec, ok = directiveTable[name]
	if !ok {
		return directiveSpec{}, 0, false
	}
	for i, n := range tagOrder {
		if n == name {
			return spec, i, true
		}
	}
	return spec, len(tagOrder), true
}

func wantArgs(name string, args []string, n int) error {
	if len(args) != n {
		return errors.Errorf("%s expects %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

func encodeFMV(symtab *symbols.Table, _ *model.LanguageTable, file string, args []string) ([]byte, int32, error) {
	if err := wantArgs("FMV", args, 2); err != nil {
		return nil, 0, err
	}
	index, err := ResolveNumeric(symtab, file, args[0])
	if err != nil {
		return nil, 0, err
	}
	flags, err := ResolveNumeric(symtab, file, args[1])
	if err != nil {
		return nil, 0, err
	}
	return utils.AsBytes([2]uint16{uint16(index), uint16(flags)}), 0, nil
}

func encodeAnimatingMIP(symtab *symbols.Table, _ *model.LanguageTable, file string, args []string) ([]byte, int32, error) {
	if err := wantArgs("AnimatingMIP", args, 1); err != nil {
		return nil, 0, err
	}
	v, err := ResolveNumeric(symtab, file, args[0])
	if err != nil {
		return nil, 0, err
	}
	return utils.AsBytes(uint16(v)), 0, nil
}

func encodeSetMusicTrack(symtab *symbols.Table, _ *model.LanguageTable, file string, args []string) ([]byte, int32, error) {
	if err := wantArgs("SetMusicTrack", args, 1); err != nil {
		return nil, 0, err
	}
	v, err := ResolveNumeric(symtab, file, args[0])
	if err != nil {
		return nil, 0, err
	}
	return utils.AsBytes(uint16(v)), 0, nil
}

func encodeSetAmbientLight(symtab *symbols.Table, _ *model.LanguageTable, file string, args []string) ([]byte, int32, error) {
	if err := wantArgs("SetAmbientLight", args, 3); err != nil {
		return nil, 0, err
	}
	var rgb [3]uint16
	for i, a := range args {
		v, err := ResolveNumeric(symtab, file, a)
		if err != nil {
			return nil, 0, err
		}
		rgb[i] = uint16(v)
	}
	return utils.AsBytes(rgb), 0, nil
}

// encodeInventoryItem and encodeInventoryPiece return the item/piece
// slot as the sort-key adjustment so items and pieces emit grouped by
// ascending slot within their own tag, per spec §4.4.
func encodeInventoryItem(symtab *symbols.Table, lang *model.LanguageTable, file string, args []string) ([]byte, int32, error) {
	if err := wantArgs("InventoryItem", args, 2); err != nil {
		return nil, 0, err
	}
	slot, err := ResolveNumeric(symtab, file, args[0])
	if err != nil {
		return nil, 0, err
	}
	nameIndex, extra, err := ResolveStringIndex(lang, args[1])
	if err != nil {
		return nil, 0, err
	}
	flag := uint16(0)
	if extra {
		flag = 1
	}
	return utils.AsBytes([3]uint16{uint16(slot), nameIndex, flag}), slot, nil
}

func encodeInventoryPiece(symtab *symbols.Table, lang *model.LanguageTable, file string, args []string) ([]byte, int32, error) {
	if err := wantArgs("InventoryPiece", args, 2); err != nil {
		return nil, 0, err
	}
	slot, err := ResolveNumeric(symtab, file, args[0])
	if err != nil {
		return nil, 0, err
	}
	nameIndex, extra, err := ResolveStringIndex(lang, args[1])
	if err != nil {
		return nil, 0, err
	}
	flag := uint16(0)
	if extra {
		flag = 1
	}
	return utils.AsBytes([3]uint16{uint16(slot), nameIndex, flag}), slot, nil
}
