package classic

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/mogaika/ng-scriptc/model"
	"github.com/mogaika/ng-scriptc/symbols"
)

// ResolveNumeric parses one classic numeric argument token (spec §4.4):
// a `$`-prefixed hex literal, an `&H`-prefixed hex literal, a plain
// decimal, or a name looked up in the symbol table.
func ResolveNumeric(symtab *symbols.Table, file, tok string) (int32, error) {
	switch {
	case strings.HasPrefix(tok, "$"):
		return parseHex(tok[1:])
	case strings.HasPrefix(tok, "&H"), strings.HasPrefix(tok, "&h"):
		return parseHex(tok[2:])
	default:
		if v, err := strconv.ParseInt(tok, 10, 32); err == nil {
			return int32(v), nil
		}
		if v, _, ok := symtab.Resolve(file, tok); ok {
			return v, nil
		}
		return 0, errors.Errorf("unresolved classic numeric argument %q", tok)
	}
}

func parseHex(digits string) (int32, error) {
	v, err := strconv.ParseInt(digits, 16, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "malformed hex literal")
	}
	return int32(uint32(v)), nil
}

// ResolveStringIndex parses one classic string-table argument token
// (spec §4.4): `#n` addresses the normal-strings section directly by
// index, `!n` addresses the ExtraNG section directly by index, `&hex`
// addresses the normal-strings section by a hex index, and any other
// token is looked up by text via LanguageTable.FindString.
func ResolveStringIndex(lang *model.LanguageTable, tok string) (index uint16, extra bool, err error) {
	switch {
	case strings.HasPrefix(tok, "#"):
		v, err := strconv.ParseInt(tok[1:], 10, 32)
		if err != nil {
			return 0, false, errors.Wrapf(err, "malformed string index %q", tok)
		}
		return uint16(v), false, nil
	case strings.HasPrefix(tok, "!"):
		v, err := strconv.ParseInt(tok[1:], 10, 32)
		if err != nil {
			return 0, false, errors.Wrapf(err, "malformed ExtraNG index %q", tok)
		}
		return uint16(v), true, nil
	case strings.HasPrefix(tok, "&"):
		v, err := strconv.ParseInt(tok[1:], 16, 32)
		if err != nil {
			return 0, false, errors.Wrapf(err, "malformed hex string index %q", tok)
		}
		return uint16(v), false, nil
	default:
		if lang == nil {
			return 0, false, errors.Errorf("string lookup %q requires a loaded language table", tok)
		}
		i, ex, ok := lang.FindString(tok)
		if !ok {
			return 0, false, errors.Errorf("string %q not found in language table", tok)
		}
		return uint16(i), ex, nil
	}
}
