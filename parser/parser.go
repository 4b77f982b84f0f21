package parser

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/mogaika/ng-scriptc/classic"
	"github.com/mogaika/ng-scriptc/config"
	"github.com/mogaika/ng-scriptc/diag"
	"github.com/mogaika/ng-scriptc/eval"
	"github.com/mogaika/ng-scriptc/langparser"
	"github.com/mogaika/ng-scriptc/lexer"
	"github.com/mogaika/ng-scriptc/model"
	"github.com/mogaika/ng-scriptc/ngschema"
	"github.com/mogaika/ng-scriptc/symbols"
	"github.com/mogaika/ng-scriptc/utils"
)

// Parser holds the running state of one directive-parse: the include
// stack, the symbol table being built up, the ScriptModel under
// construction and the diagnostics collected along the way.
type Parser struct {
	fs        FileSystem
	symtab    *symbols.Table
	collector *diag.Collector
	model     *model.ScriptModel
	opts      config.Options

	stack []fileFrame

	mode       string // "", "options", "language", "psx", "pc", "level", "title"
	curSection *model.Section

	firstLanguageLoaded bool

	pluginsByName map[string]int32
	pluginsById   map[int32]string
	pluginSeq     int64
}

// New creates a Parser. symtab should already have its engine-constant,
// slot-enum and static-enum layers loaded (spec §4.2); the parser only
// adds the user-#define and plugin layers as it scans.
func New(fs FileSystem, symtab *symbols.Table, opts config.Options) *Parser {
	return &Parser{
		fs:            fs,
		symtab:        symtab,
		collector:     diag.NewCollector(),
		model:         &model.ScriptModel{Languages: make(map[string]*model.LanguageTable), EncryptHeader: opts.EncryptHeader},
		opts:          opts,
		pluginsByName: make(map[string]int32),
		pluginsById:   make(map[int32]string),
	}
}

// Parse runs the scan starting at mainFile and returns the assembled
// ScriptModel plus every diagnostic collected. The caller should check
// collector.Aborted() before handing the model to the Classic/NG
// compilers.
func (p *Parser) Parse(mainFile string) (*model.ScriptModel, *diag.Collector) {
	data, err := p.fs.ReadFile(mainFile)
	if err != nil {
		p.collector.Fatalf(diag.Resource, mainFile, 0, "%s", err)
		return p.model, p.collector
	}
	p.stack = []fileFrame{newFileFrame(mainFile, data)}

	for {
		ll, file, ok := p.nextLogicalLine()
		if !ok {
			break
		}
		text := strings.TrimSpace(ll.Text)
		if text == "" {
			continue
		}
		p.handleLine(text, file, ll.LineNumber)
	}

	return p.model, p.collector
}

func (p *Parser) handleLine(text string, file string, line int) {
	if kind, ok := sectionHeaderKind(text); ok {
		p.enterSection(kind, file, line)
		return
	}
	if strings.HasPrefix(text, "#define") {
		p.handleDefine(strings.TrimSpace(text[len("#define"):]), file, line)
		return
	}

	cl, err := lexer.SplitCommandLine(text)
	if err != nil {
		p.collector.Fatalf(diag.Parse, file, line, "%s", err)
		return
	}
	if cl.Command == "Include" {
		p.handleInclude(cl, file, line)
		return
	}
	p.dispatch(cl, file, line)
}

// nextLogicalLine pulls the next logical line off the top of the
// include stack, popping exhausted frames until it finds one with
// input left or the stack empties.
func (p *Parser) nextLogicalLine() (lexer.LogicalLine, string, bool) {
	for len(p.stack) > 0 {
		top := &p.stack[len(p.stack)-1]
		if ll, ok := lexer.NextLogicalLine(top.src); ok {
			return ll, top.name, true
		}
		p.stack = p.stack[:len(p.stack)-1]
	}
	return lexer.LogicalLine{}, "", false
}

func (p *Parser) handleInclude(cl lexer.CommandLine, file string, line int) {
	if len(cl.Args) != 1 {
		p.collector.Fatalf(diag.Parse, file, line, "Include expects exactly one path argument")
		return
	}
	path := lexer.Unquote(cl.Args[0])
	data, err := p.fs.ReadFile(path)
	if err != nil {
		p.collector.Fatalf(diag.Resource, file, line, "including %q: %s", path, err)
		return
	}
	p.stack = append(p.stack, newFileFrame(path, data))
}

// sectionHeaderKind matches a `[Name]` header case-insensitively
// against the closed set of six recognized section names.
func sectionHeaderKind(text string) (string, bool) {
	if !strings.HasPrefix(text, "[") || !strings.HasSuffix(text, "]") {
		return "", false
	}
	switch strings.ToLower(text[1 : len(text)-1]) {
	case "options":
		return "options", true
	case "language":
		return "language", true
	case "psxextensions":
		return "psx", true
	case "pcextensions":
		return "pc", true
	case "level":
		return "level", true
	case "title":
		return "title", true
	default:
		return "", false
	}
}

func (p *Parser) enterSection(kind, file string, line int) {
	if (kind == "level" || kind == "title") && !p.firstLanguageLoaded && len(p.model.LanguageFiles) > 0 {
		p.loadLanguageFile(p.model.LanguageFiles[0], file, line)
	}

	p.mode = kind
	switch kind {
	case "level":
		p.curSection = &model.Section{Kind: model.SectionLevel}
		p.model.Sections = append(p.model.Sections, p.curSection)
		p.curSection.Index = len(p.model.Sections) - 1
	case "title":
		p.curSection = &model.Section{Kind: model.SectionTitle}
		p.model.Sections = append(p.model.Sections, p.curSection)
		p.curSection.Index = len(p.model.Sections) - 1
	default:
		p.curSection = nil
	}
}

func (p *Parser) loadLanguageFile(baseName, file string, line int) {
	data, err := p.fs.ReadFile(baseName)
	if err != nil {
		p.collector.Fatalf(diag.Resource, file, line, "loading language file %q: %s", baseName, err)
		return
	}
	table, diags := langparser.Parse(baseName, utils.DecodeText(data))
	for _, d := range diags {
		p.collector.Addf(d.Kind, d.SourceFile, d.Line, "%s", d.Message)
	}
	p.model.Languages[baseName] = table
	p.firstLanguageLoaded = true
}

// activeLanguage returns the language table NG/classic string lookups
// should resolve against: the first declared language file once loaded,
// or nil while still inside [Options] before the lazy load fires.
func (p *Parser) activeLanguage() *model.LanguageTable {
	if len(p.model.LanguageFiles) == 0 {
		return nil
	}
	return p.model.Languages[p.model.LanguageFiles[0]]
}

func (p *Parser) dispatch(cl lexer.CommandLine, file string, line int) {
	switch p.mode {
	case "options":
		p.dispatchOptions(cl, file, line)
	case "language":
		p.dispatchLanguage(cl, file, line)
	case "psx":
		p.dispatchExtensions(&p.model.PSXExtensions, cl, file, line)
	case "pc":
		p.dispatchExtensions(&p.model.PCExtensions, cl, file, line)
	case "level", "title":
		p.dispatchSection(cl, file, line)
	default:
		p.collector.Addf(diag.Parse, file, line, "directive %q outside any section, ignored", cl.Command)
	}
}

func (p *Parser) dispatchExtensions(slots *[4]string, cl lexer.CommandLine, file string, line int) {
	idx, ok := extensionSlotIndex(cl.Command)
	if !ok || len(cl.Args) != 1 {
		p.collector.Addf(diag.Schema, file, line, "unrecognized extension directive %q, ignored", cl.Command)
		return
	}
	slots[idx] = lexer.Unquote(cl.Args[0])
}

func extensionSlotIndex(name string) (int, bool) {
	switch name {
	case "File1":
		return 0, true
	case "File2":
		return 1, true
	case "File3":
		return 2, true
	case "File4":
		return 3, true
	default:
		return 0, false
	}
}

func (p *Parser) dispatchLanguage(cl lexer.CommandLine, file string, line int) {
	if cl.Command != "File" || len(cl.Args) != 1 {
		p.collector.Addf(diag.Schema, file, line, "unrecognized [Language] directive %q, ignored", cl.Command)
		return
	}
	p.model.LanguageFiles = append(p.model.LanguageFiles, lexer.Unquote(cl.Args[0]))
}

func (p *Parser) dispatchOptions(cl lexer.CommandLine, file string, line int) {
	if bit, ok := classic.LookupOptionsFlag(cl.Command); ok {
		p.setOptionsFlag(bit, cl.Args)
		return
	}

	switch cl.Command {
	case "InputTimeout":
		v, err := p.resolveClassicNumeric(file, cl.Args)
		if err != nil {
			p.collector.Fatalf(diag.Parse, file, line, "%s", err)
			return
		}
		p.model.InputTimeout = uint32(v)
		return
	case "SecurityValue":
		v, err := p.resolveClassicNumeric(file, cl.Args)
		if err != nil {
			p.collector.Fatalf(diag.Parse, file, line, "%s", err)
			return
		}
		p.model.SecurityValue = byte(v)
		return
	case "Plugin":
		p.handleOptionsPlugin(cl, file, line)
		return
	}

	if schema := ngschema.Lookup(cl.Command); schema != nil {
		cmd := p.buildNGCommand(schema, cl, file, line)
		if cmd != nil {
			if p.model.OptionsNG == nil {
				p.model.OptionsNG = &model.NGCommandGroup{}
			}
			p.model.OptionsNG.Commands = append(p.model.OptionsNG.Commands, cmd)
		}
		return
	}

	if p.opts.StrictUnknownFlags {
		p.collector.Fatalf(diag.Schema, file, line, "unknown [Options] directive %q", cl.Command)
	} else {
		p.collector.Addf(diag.Schema, file, line, "unknown [Options] directive %q, ignored", cl.Command)
	}
}

func (p *Parser) setOptionsFlag(bit uint32, args []string) {
	val := len(args) > 0 && classic.IsTruthy(lexer.Unquote(args[0]))
	if val {
		p.model.OptionsFlags |= bit
	} else {
		p.model.OptionsFlags &^= bit
	}
}

func (p *Parser) resolveClassicNumeric(file string, args []string) (int32, error) {
	if len(args) != 1 {
		return 0, errors.Errorf("expected exactly one argument")
	}
	return classic.ResolveNumeric(p.symtab, file, args[0])
}

func (p *Parser) handleOptionsPlugin(cl lexer.CommandLine, file string, line int) {
	if len(cl.Args) != 2 {
		p.collector.Fatalf(diag.Parse, file, line, "Plugin= expects name, id")
		return
	}
	name := lexer.Unquote(cl.Args[0])
	idResult, err := eval.Eval(p.symtab, file, cl.Args[1])
	if err != nil {
		p.collector.Fatalf(diag.Parse, file, line, "%s", err)
		return
	}
	id := idResult.Value

	p.registerPlugin(name, id, file, line)

	cmd := &model.NGCommand{
		SchemaName: "Plugin",
		Args: []model.Arg{
			{Kind: model.ArgString, Text: name},
			{Kind: model.ArgLong, Scalar: int64(id)},
		},
		SourceFile: file,
		LineNumber: line,
	}
	if p.model.OptionsNG == nil {
		p.model.OptionsNG = &model.NGCommandGroup{}
	}
	p.model.OptionsNG.Commands = append(p.model.OptionsNG.Commands, cmd)
}

// registerPlugin implements the synthetic-descriptor duplicate rules
// shared by Plugin= and `#define @Name id`: a duplicate id is fatal (two
// plugins cannot share a slot), a name redeclared under a different id
// is only a warning (the later declaration wins).
func (p *Parser) registerPlugin(name string, id int32, file string, line int) {
	if existingName, exists := p.pluginsById[id]; exists && existingName != name {
		p.collector.Fatalf(diag.Reference, file, line, "plugin id %d already registered to %q", id, existingName)
		return
	}
	if existingId, exists := p.pluginsByName[name]; exists && existingId != id {
		p.collector.Addf(diag.Reference, file, line, "plugin %q redefined with a different id", name)
	}
	p.pluginsByName[name] = id
	p.pluginsById[id] = name
	p.pluginSeq++
	p.symtab.RegisterPlugin(id, name, p.pluginSeq, map[string]int32{})
}

func (p *Parser) handleDefine(rest string, file string, line int) {
	if strings.HasPrefix(rest, "@") {
		p.handlePluginDefine(rest, file, line)
		return
	}

	fields := strings.SplitN(rest, " ", 2)
	if len(fields) != 2 {
		p.collector.Fatalf(diag.Parse, file, line, "malformed #define %q", rest)
		return
	}
	name := strings.TrimSpace(fields[0])
	result, err := eval.Eval(p.symtab, file, fields[1])
	if err != nil {
		p.collector.Fatalf(diag.Parse, file, line, "%s", err)
		return
	}
	p.symtab.Define(file, name, result.Value)
}

func (p *Parser) handlePluginDefine(rest string, file string, line int) {
	fields := strings.Fields(rest)
	if len(fields) == 2 && fields[0] == "@plugins" && fields[1] == "clear" {
		p.symtab.ClearPlugins()
		p.pluginsByName = make(map[string]int32)
		p.pluginsById = make(map[int32]string)
		return
	}
	if len(fields) < 2 {
		p.collector.Fatalf(diag.Parse, file, line, "malformed plugin #define %q", rest)
		return
	}
	name := strings.TrimPrefix(fields[0], "@")
	result, err := eval.Eval(p.symtab, file, strings.Join(fields[1:], " "))
	if err != nil {
		p.collector.Fatalf(diag.Parse, file, line, "%s", err)
		return
	}
	p.registerPlugin(name, result.Value, file, line)
}

func (p *Parser) dispatchSection(cl lexer.CommandLine, file string, line int) {
	if bit, ok := classic.LookupSectionFlag(cl.Command); ok {
		val := len(cl.Args) > 0 && classic.IsTruthy(lexer.Unquote(cl.Args[0]))
		if val {
			p.curSection.Flags |= bit
		} else {
			p.curSection.Flags &^= bit
		}
		return
	}

	if schema := ngschema.Lookup(cl.Command); schema != nil {
		cmd := p.buildNGCommand(schema, cl, file, line)
		if cmd != nil {
			if p.curSection.NG == nil {
				p.curSection.NG = &model.NGCommandGroup{}
			}
			p.curSection.NG.Commands = append(p.curSection.NG.Commands, cmd)
		}
		return
	}

	args := make([]string, len(cl.Args))
	for i, a := range cl.Args {
		args[i] = lexer.Unquote(a)
	}
	p.curSection.Lines = append(p.curSection.Lines, model.RawLine{
		Command:    cl.Command,
		Args:       args,
		SourceFile: file,
		LineNumber: line,
	})
}

