package parser_test

import (
	"testing"

	"github.com/mogaika/ng-scriptc/config"
	"github.com/mogaika/ng-scriptc/parser"
	"github.com/mogaika/ng-scriptc/symbols"
)

type fakeFS map[string]string

func (fs fakeFS) ReadFile(path string) ([]byte, error) {
	data, ok := fs[path]
	if !ok {
		return nil, notFoundError(path)
	}
	return []byte(data), nil
}

type notFoundError string

func (e notFoundError) Error() string { return "not found: " + string(e) }

func TestParseOptionsFlagsAndExtensions(t *testing.T) {
	fs := fakeFS{
		"main.scr": "[Options]\n" +
			"LoadSave= ENABLED\n" +
			"InputTimeout= 30\n" +
			"[PSXExtensions]\n" +
			"File1= demo.psx\n" +
			"[Language]\n" +
			"File= lang.txt\n",
	}
	p := parser.New(fs, symbols.NewTable(), config.DefaultOptions())
	sm, collector := p.Parse("main.scr")

	if collector.Aborted() {
		t.Fatalf("unexpected fatal diagnostics: %v", collector.Entries())
	}
	if sm.OptionsFlags&1 == 0 {
		t.Errorf("LoadSave flag not set, flags = %#x", sm.OptionsFlags)
	}
	if sm.InputTimeout != 30 {
		t.Errorf("InputTimeout = %d, want 30", sm.InputTimeout)
	}
	if sm.PSXExtensions[0] != "demo.psx" {
		t.Errorf("PSXExtensions[0] = %q", sm.PSXExtensions[0])
	}
	if len(sm.LanguageFiles) != 1 || sm.LanguageFiles[0] != "lang.txt" {
		t.Errorf("LanguageFiles = %v", sm.LanguageFiles)
	}
}

func TestDefineScopesToFile(t *testing.T) {
	fs := fakeFS{
		"main.scr": "#define MYVAL 5\n" +
			"[Options]\n" +
			"InputTimeout= MYVAL\n",
	}
	p := parser.New(fs, symbols.NewTable(), config.DefaultOptions())
	sm, collector := p.Parse("main.scr")
	if collector.Aborted() {
		t.Fatalf("unexpected fatal diagnostics: %v", collector.Entries())
	}
	if sm.InputTimeout != 5 {
		t.Errorf("InputTimeout = %d, want 5", sm.InputTimeout)
	}
}

func TestLevelSectionRoutesFlagAndNGCommand(t *testing.T) {
	fs := fakeFS{
		"main.scr": "[Level]\n" +
			"LoadCamera= cam1.cam\n" +
			"Name= Level One\n" +
			"YoungLara= ENABLED\n" +
			"SetStartPosition= 1, 2, 3\n",
	}
	p := parser.New(fs, symbols.NewTable(), config.DefaultOptions())
	sm, collector := p.Parse("main.scr")
	if collector.Aborted() {
		t.Fatalf("unexpected fatal diagnostics: %v", collector.Entries())
	}
	if len(sm.Sections) != 1 {
		t.Fatalf("sections = %d, want 1", len(sm.Sections))
	}
	sec := sm.Sections[0]
	if sec.Flags&1 == 0 {
		t.Errorf("YoungLara flag not set")
	}
	if sec.NG == nil || len(sec.NG.Commands) != 1 {
		t.Fatalf("expected one NG command, got %+v", sec.NG)
	}
	if sec.NG.Commands[0].SchemaName != "SetStartPosition" {
		t.Errorf("command = %q", sec.NG.Commands[0].SchemaName)
	}
	// LoadCamera/Name route through as ordinary classic lines at parse
	// time; the Classic Section Compiler is what treats them as
	// section metadata rather than body directives.
	var sawLoadCamera bool
	for _, l := range sec.Lines {
		if l.Command == "LoadCamera" {
			sawLoadCamera = true
		}
	}
	if !sawLoadCamera {
		t.Error("expected LoadCamera to be recorded as a classic line")
	}
}

func TestPluginDefineDuplicateIdIsFatal(t *testing.T) {
	fs := fakeFS{
		"main.scr": "#define @First 1\n" +
			"#define @Second 1\n",
	}
	p := parser.New(fs, symbols.NewTable(), config.DefaultOptions())
	_, collector := p.Parse("main.scr")
	if !collector.Aborted() {
		t.Error("expected duplicate plugin id to be fatal")
	}
}
