package classic_test

import (
	"testing"

	"github.com/mogaika/ng-scriptc/classic"
	"github.com/mogaika/ng-scriptc/diag"
	"github.com/mogaika/ng-scriptc/model"
	"github.com/mogaika/ng-scriptc/symbols"
)

func rawLine(command string, args ...string) model.RawLine {
	return model.RawLine{Command: command, Args: args, SourceFile: "t.scr", LineNumber: 1}
}

func newLangTable(strings ...string) *model.LanguageTable {
	lt := &model.LanguageTable{}
	for _, s := range strings {
		lt.Sections[model.SectionStrings] = append(lt.Sections[model.SectionStrings], model.StringEntry{Text: s})
	}
	return lt
}

func TestCompileRequiresLoadCameraAndName(t *testing.T) {
	section := &model.Section{Kind: model.SectionLevel, Lines: []model.RawLine{
		rawLine("SetMusicTrack", "3"),
	}}
	collector := diag.NewCollector()
	classic.Compile(section, symbols.NewTable(), newLangTable("Level One"), 0, collector)
	if !collector.Aborted() {
		t.Fatal("expected missing LoadCamera/Name to be fatal")
	}
}

func TestCompileExtractsMetadataAndSortsByTagOrder(t *testing.T) {
	lang := newLangTable("Level One")
	section := &model.Section{Kind: model.SectionLevel, Lines: []model.RawLine{
		rawLine("SetAmbientLight", "1", "2", "3"),
		rawLine("LoadCamera", "level1.cam"),
		rawLine("FMV", "5", "0"),
		rawLine("Name", "Level One"),
		rawLine("CDNumber", "2"),
	}}
	collector := diag.NewCollector()
	classic.Compile(section, symbols.NewTable(), lang, 0, collector)
	if collector.Aborted() {
		t.Fatalf("unexpected fatal diagnostics: %v", collector.Entries())
	}

	if section.FilePath != "level1.cam" {
		t.Errorf("FilePath = %q, want level1.cam", section.FilePath)
	}
	if section.DisplayName != "Level One" {
		t.Errorf("DisplayName = %q", section.DisplayName)
	}
	if section.CDNumber != 2 {
		t.Errorf("CDNumber = %d, want 2", section.CDNumber)
	}

	// FMV (tag 0x01) must precede SetAmbientLight (tag 0x06) regardless
	// of source declaration order, per tagOrder.
	body := section.Emitted[:len(section.Emitted)-9] // strip the fixed 9-byte trailer
	if len(body) == 0 || body[0] != 0x01 {
		t.Fatalf("expected first emitted tag to be FMV (0x01), got %#x in %v", body[0], body)
	}
}

func TestCompileStableSortsWithinSameTagBySlot(t *testing.T) {
	lang := newLangTable("Level One", "Sword", "Shield")
	section := &model.Section{Kind: model.SectionLevel, Lines: []model.RawLine{
		rawLine("LoadCamera", "level1.cam"),
		rawLine("Name", "Level One"),
		rawLine("InventoryItem", "2", "Shield"),
		rawLine("InventoryItem", "1", "Sword"),
	}}
	collector := diag.NewCollector()
	classic.Compile(section, symbols.NewTable(), lang, 0, collector)
	if collector.Aborted() {
		t.Fatalf("unexpected fatal diagnostics: %v", collector.Entries())
	}

	body := section.Emitted[:len(section.Emitted)-9]
	// Each InventoryItem entry is tag(1) + slot(2) + nameIndex(2) + flag(2) = 7 bytes.
	if len(body) != 14 {
		t.Fatalf("expected two 7-byte InventoryItem entries, got %d bytes: %v", len(body), body)
	}
	firstSlot := uint16(body[1]) | uint16(body[2])<<8
	if firstSlot != 1 {
		t.Errorf("first emitted InventoryItem slot = %d, want 1 (sorted by slot)", firstSlot)
	}
}

func TestCompileTrailerEncodesFlagsAndIndex(t *testing.T) {
	lang := newLangTable("Level One")
	section := &model.Section{
		Kind:  model.SectionLevel,
		Flags: 0x0005,
		Lines: []model.RawLine{
			rawLine("LoadCamera", "level1.cam"),
			rawLine("Name", "Level One"),
		},
	}
	collector := diag.NewCollector()
	classic.Compile(section, symbols.NewTable(), lang, 3, collector)
	if collector.Aborted() {
		t.Fatalf("unexpected fatal diagnostics: %v", collector.Entries())
	}

	trailer := section.Emitted[len(section.Emitted)-9:]
	if trailer[0] != 0x81 {
		t.Errorf("trailer tag = %#x, want 0x81 for a Level section", trailer[0])
	}
	gotFlags := uint16(trailer[3]) | uint16(trailer[4])<<8
	if gotFlags != 0x0005 {
		t.Errorf("trailer flags = %#x, want 0x0005", gotFlags)
	}
	gotIndex := uint16(trailer[5]) | uint16(trailer[6])<<8
	if gotIndex != 3 {
		t.Errorf("trailer index = %d, want 3", gotIndex)
	}
	if trailer[8] != 0x83 {
		t.Errorf("trailer terminator = %#x, want 0x83", trailer[8])
	}
}

func TestCompileUnknownDirectiveIsNonFatal(t *testing.T) {
	lang := newLangTable("Level One")
	section := &model.Section{Kind: model.SectionLevel, Lines: []model.RawLine{
		rawLine("LoadCamera", "level1.cam"),
		rawLine("Name", "Level One"),
		rawLine("SomeFutureDirective", "1"),
	}}
	collector := diag.NewCollector()
	classic.Compile(section, symbols.NewTable(), lang, 0, collector)
	if collector.Aborted() {
		t.Fatalf("unrecognized classic directive should only warn, got fatal: %v", collector.Entries())
	}
}
