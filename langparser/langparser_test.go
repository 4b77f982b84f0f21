package langparser_test

import (
	"testing"

	"github.com/mogaika/ng-scriptc/langparser"
	"github.com/mogaika/ng-scriptc/model"
)

func TestParseStringsWithTag(t *testing.T) {
	text := "[Strings]\nGREETING: Hello\\nWorld\n\"Bare line\"\n"
	table, diags := langparser.Parse("lang.txt", text)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	entries := table.Sections[model.SectionStrings]
	if len(entries) != 2 {
		t.Fatalf("got %d entries", len(entries))
	}
	if entries[0].Tag != "GREETING" || entries[0].Text != "Hello\nWorld" {
		t.Errorf("entry0 = %+v", entries[0])
	}
	if entries[1].Tag != "" || entries[1].Text != "Bare line" {
		t.Errorf("entry1 = %+v", entries[1])
	}
}

func TestParseExtraNGExplicitIndex(t *testing.T) {
	text := "[ExtraNG]\n5: Extra text\n"
	table, diags := langparser.Parse("lang.txt", text)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	entries := table.Sections[model.SectionExtraNG]
	if len(entries) != 1 || entries[0].Index != 5 || entries[0].Text != "Extra text" {
		t.Errorf("got %+v", entries)
	}
}

func TestOffsetsAccumulateAcrossSections(t *testing.T) {
	text := "[Strings]\nab\n[PSX Strings]\ncd\n"
	table, _ := langparser.Parse("lang.txt", text)
	if len(table.Offsets) != 2 {
		t.Fatalf("offsets = %v", table.Offsets)
	}
	if table.Offsets[0] != 0 || table.Offsets[1] != 3 {
		t.Errorf("offsets = %v, want [0 3]", table.Offsets)
	}
}
