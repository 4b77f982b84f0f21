package langcompile_test

import (
	"testing"

	"github.com/mogaika/ng-scriptc/langcompile"
	"github.com/mogaika/ng-scriptc/model"
)

func TestStringXorRoundTrips(t *testing.T) {
	table := &model.LanguageTable{}
	table.Sections[model.SectionStrings] = []model.StringEntry{{Text: "Hello"}}
	table.SectionSizes[model.SectionStrings] = 6
	table.Offsets = []uint16{0}

	out := langcompile.Compile(table)

	// Header: 3 sections * (size u16 + count u16) = 12 bytes, then
	// offset table: count u16 + 1 offset u16 = 4 bytes.
	stringStart := 12 + 4
	got, n := langcompile.DecodeXored(out[stringStart:])
	if got != "Hello" {
		t.Errorf("decoded %q, want %q", got, "Hello")
	}
	if n != 6 {
		t.Errorf("consumed %d bytes, want 6", n)
	}
}

func TestCompileOmitsExtraNGTrailerWhenEmpty(t *testing.T) {
	table := &model.LanguageTable{}
	out := langcompile.Compile(table)
	for i := 0; i+2 <= len(out); i++ {
		if out[i] == 'N' && out[i+1] == 'G' {
			t.Fatalf("unexpected NG trailer marker at byte %d", i)
		}
	}
}
