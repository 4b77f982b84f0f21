package parser

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/mogaika/ng-scriptc/classic"
	"github.com/mogaika/ng-scriptc/diag"
	"github.com/mogaika/ng-scriptc/eval"
	"github.com/mogaika/ng-scriptc/lexer"
	"github.com/mogaika/ng-scriptc/model"
	"github.com/mogaika/ng-scriptc/ngschema"
)

// buildNGCommand resolves cl's raw argument tokens against schema's
// argument-kind sequence into a fully resolved NGCommand, or returns
// nil (after recording a diagnostic) if resolution fails. Word-cost
// encoding and occurrence enforcement happen later, in ngcompile.
func (p *Parser) buildNGCommand(schema *ngschema.Schema, cl lexer.CommandLine, file string, line int) *model.NGCommand {
	args, err := p.resolveNGArgs(schema, cl.Args, file)
	if err != nil {
		p.collector.Fatalf(diag.Parse, file, line, "%s", err)
		return nil
	}
	return &model.NGCommand{
		SchemaName: schema.Name,
		Tag:        schema.Tag,
		Args:       args,
		SourceFile: file,
		LineNumber: line,
	}
}

// resolveNGArgs walks schema.Args positionally. A trailing array-kind
// argument (the only position one may appear in, per
// Schema.HasTrailingArray) consumes every remaining raw token.
func (p *Parser) resolveNGArgs(schema *ngschema.Schema, raw []string, file string) ([]model.Arg, error) {
	n := len(schema.Args)
	args := make([]model.Arg, 0, n)

	for i := 0; i < n; i++ {
		kind := schema.Args[i]

		if i == n-1 && isArrayKind(kind) {
			if i > len(raw) {
				return nil, errMissingArg(schema.Name, i)
			}
			values := make([]int64, 0, len(raw)-i)
			for _, tok := range raw[i:] {
				v, err := eval.Eval(p.symtab, file, tok)
				if err != nil {
					return nil, err
				}
				values = append(values, int64(v.Value))
			}
			args = append(args, model.Arg{Kind: kind, Array: values})
			return args, nil
		}

		if i >= len(raw) {
			return nil, errMissingArg(schema.Name, i)
		}
		arg, err := p.resolveOneArg(kind, raw[i], file)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	return args, nil
}

func (p *Parser) resolveOneArg(kind model.ArgKind, tok string, file string) (model.Arg, error) {
	switch kind {
	case model.ArgBool:
		val := int64(0)
		if classic.IsTruthy(lexer.Unquote(tok)) {
			val = 1
		}
		return model.Arg{Kind: kind, Scalar: val}, nil

	case model.ArgString:
		return p.resolveStringArg(tok)

	case model.ArgImport:
		return p.resolveImportArg(tok)

	default: // Word, Integer, Long, ItemSlot
		v, err := eval.Eval(p.symtab, file, tok)
		if err != nil {
			return model.Arg{}, err
		}
		return model.Arg{Kind: kind, Scalar: int64(v.Value), PluginId: v.PluginId}, nil
	}
}

// resolveStringArg resolves an NG string argument to its language-table
// index. While no language table is loaded yet (still inside
// [Options], before the lazy first-file load), lookups resolve eagerly
// to index 0 rather than failing (spec Open Questions).
func (p *Parser) resolveStringArg(tok string) (model.Arg, error) {
	text := lexer.Unquote(tok)
	lang := p.activeLanguage()
	if lang == nil {
		return model.Arg{Kind: model.ArgString, Text: text}, nil
	}
	idx, extra, ok := lang.FindString(text)
	if !ok {
		return model.Arg{Kind: model.ArgString, Text: text}, nil
	}
	scalar := int64(idx)
	if extra {
		scalar |= 0x8000
	}
	return model.Arg{Kind: model.ArgString, Scalar: scalar, Text: text}, nil
}

// resolveImportArg implements the ImportFile directive's single
// argument: the named file is read and registered as a new
// model.ImportFile entry (not looked up against an existing one --
// ImportFile is the only command this argument kind appears on, per
// ngschema). Id is the import's registration index; FileNumber is the
// distinct trailing run of digits in the base name, or 0 if it has
// none (spec Open Questions) -- the chunk layout carries both.
func (p *Parser) resolveImportArg(tok string) (model.Arg, error) {
	name := lexer.Unquote(tok)
	data, err := p.fs.ReadFile(name)
	if err != nil {
		return model.Arg{}, errors.Wrapf(err, "reading import file %q", name)
	}
	index := len(p.model.Imports)
	imp := &model.ImportFile{
		Id:         int32(index),
		FileNumber: importFileNumber(name),
		BaseName:   name,
		Data:       data,
	}
	p.model.Imports = append(p.model.Imports, imp)
	return model.Arg{Kind: model.ArgImport, Scalar: int64(index)}, nil
}

// importFileNumber extracts the trailing run of decimal digits from
// name's base (ignoring any extension), or 0 if it has none.
func importFileNumber(name string) int32 {
	base := name
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	end := len(base)
	start := end
	for start > 0 && base[start-1] >= '0' && base[start-1] <= '9' {
		start--
	}
	if start == end {
		return 0
	}
	v, err := strconv.ParseInt(base[start:end], 10, 32)
	if err != nil {
		return 0
	}
	return int32(v)
}

func isArrayKind(k model.ArgKind) bool {
	switch k {
	case model.ArgArrayWord, model.ArgArrayByte, model.ArgArrayNybble, model.ArgArrayLong:
		return true
	default:
		return false
	}
}

func errMissingArg(command string, index int) error {
	return errors.Errorf("%s: missing argument %d", command, index+1)
}
