// Command scriptc compiles a directive-based level-editor script into
// its script.dat and language.dat binary artifacts, mirroring the
// teacher's single flag.StringVar/flag.Parse CLI driver shape
// (god_of_war_browser.go) rather than a subcommand framework.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/mogaika/ng-scriptc/classic"
	"github.com/mogaika/ng-scriptc/config"
	"github.com/mogaika/ng-scriptc/container"
	"github.com/mogaika/ng-scriptc/langcompile"
	"github.com/mogaika/ng-scriptc/model"
	"github.com/mogaika/ng-scriptc/ngcompile"
	"github.com/mogaika/ng-scriptc/ngschema"
	"github.com/mogaika/ng-scriptc/parser"
	"github.com/mogaika/ng-scriptc/symbols"
	"github.com/mogaika/ng-scriptc/utils"
)

type osFileSystem struct{}

func (osFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func main() {
	var (
		mainFile      = flag.String("main", "", "main script source file to compile")
		scriptOut     = flag.String("out", "script.dat", "output path for the compiled script container")
		constantsFile = flag.String("constants", "", "optional engine constants catalog (NAME=value per line)")
		slotEnumFile  = flag.String("slots", "", "optional item-slot enum catalog (NAME=value per line)")
		staticEnum    = flag.String("statics", "", "optional static enum catalog (NAME=value per line)")
		encryptHeader = flag.Bool("encrypt-header", false, "scramble the first 64 bytes of script.dat")
		seed          = flag.Int64("seed", 1, "PRNG seed for the security chunk's reproducible filler bytes")
		strict        = flag.Bool("strict", false, "treat unknown [Options] directives as fatal")
		dumpSchema    = flag.Bool("dump-schema", false, "print the NG command schema catalog as YAML and exit")
		verbose       = flag.Bool("v", false, "log each compile phase as it runs")
	)
	flag.Parse()

	if *dumpSchema {
		out, err := ngschema.DumpYAML()
		if err != nil {
			log.Fatalf("dumping schema: %s", err)
		}
		fmt.Print(out)
		return
	}

	if *mainFile == "" {
		log.Fatal("-main is required")
	}

	opts := config.DefaultOptions()
	opts.EncryptHeader = *encryptHeader
	opts.PRNGSeed = *seed
	opts.StrictUnknownFlags = *strict
	opts.Verbose = *verbose

	symtab := symbols.NewTable()
	loadOptionalCatalog(*constantsFile, symtab.LoadEngineConstants)
	loadOptionalCatalog(*slotEnumFile, symtab.LoadSlotEnum)
	loadOptionalCatalog(*staticEnum, symtab.LoadStaticEnum)

	fs := osFileSystem{}

	logPhase(opts, "parsing %s", *mainFile)
	p := parser.New(fs, symtab, opts)
	sm, collector := p.Parse(*mainFile)
	if collector.Aborted() {
		collector.Print(os.Stderr)
		os.Exit(1)
	}
	if opts.Verbose {
		utils.LogDump(sm)
	}

	lang := activeLanguageTable(sm)

	logPhase(opts, "compiling %d classic sections", len(sm.Sections))
	for i, section := range sm.Sections {
		classic.Compile(section, symtab, lang, i, collector)
	}
	if collector.Aborted() {
		collector.Print(os.Stderr)
		os.Exit(1)
	}

	logPhase(opts, "compiling NG command groups")
	ngcompile.Compile(sm, collector)
	if collector.Aborted() {
		collector.Print(os.Stderr)
		os.Exit(1)
	}
	if opts.Verbose {
		utils.LogDump(sm.OptionsNG)
	}

	logPhase(opts, "writing %s", *scriptOut)
	body := container.Build(sm, opts)
	if err := os.WriteFile(*scriptOut, body, 0o644); err != nil {
		log.Fatalf("writing %s: %s", *scriptOut, err)
	}

	for name, table := range sm.Languages {
		logPhase(opts, "writing language file %s", name)
		out := langcompile.Compile(table)
		if err := os.WriteFile(name, out, 0o644); err != nil {
			log.Fatalf("writing %s: %s", name, err)
		}
	}

	collector.Print(os.Stderr)
}

// activeLanguageTable returns the first declared language file's
// parsed table, the one classic string-index lookups resolve against
// (spec §4.4), or nil if the script declares no language file.
func activeLanguageTable(sm *model.ScriptModel) *model.LanguageTable {
	if len(sm.LanguageFiles) == 0 {
		return nil
	}
	return sm.Languages[sm.LanguageFiles[0]]
}

func logPhase(opts config.Options, format string, args ...interface{}) {
	if opts.Verbose {
		log.Printf(format, args...)
	}
}

// loadOptionalCatalog parses a simple "NAME=value" per line catalog
// file, decimal or `$`/`0x`-prefixed hex, and hands the result to load.
// An empty path is a no-op: the corresponding symbol layer stays empty.
func loadOptionalCatalog(path string, load func(map[string]int32)) {
	if path == "" {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("reading %s: %s", path, err)
	}
	values := make(map[string]int32)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		i := strings.IndexByte(line, '=')
		if i < 0 {
			continue
		}
		name := strings.TrimSpace(line[:i])
		v, err := parseCatalogValue(strings.TrimSpace(line[i+1:]))
		if err != nil {
			log.Fatalf("%s: %s", path, err)
		}
		values[name] = v
	}
	load(values)
}

func parseCatalogValue(tok string) (int32, error) {
	switch {
	case strings.HasPrefix(tok, "$"):
		v, err := strconv.ParseInt(tok[1:], 16, 32)
		return int32(v), err
	case strings.HasPrefix(tok, "0x"), strings.HasPrefix(tok, "0X"):
		v, err := strconv.ParseInt(tok[2:], 16, 32)
		return int32(v), err
	default:
		v, err := strconv.ParseInt(tok, 10, 32)
		return int32(v), err
	}
}
