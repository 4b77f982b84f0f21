package utils_test

import (
	"testing"

	"github.com/mogaika/ng-scriptc/utils"
)

func TestDecodeTextKeepsBytesPastAnEmbeddedNul(t *testing.T) {
	// Language and script source files are whole-buffer CP1252 text,
	// not NUL-terminated fixed fields -- DecodeText must not truncate
	// at the first zero byte the way BytesToString does.
	raw := []byte("line one\x00line two")
	got := utils.DecodeText(raw)
	want := "line one\x00line two"
	if got != want {
		t.Errorf("DecodeText = %q, want %q", got, want)
	}
}

func TestStringToBytesBufferPadsAndTerminates(t *testing.T) {
	got := utils.StringToBytesBuffer("hi", 5, true)
	want := []byte{'h', 'i', 0, 0, 0}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d = %#x, want %#x (%v)", i, got[i], want[i], got)
		}
	}
}

func TestAsBytesAndReadBytesRoundTrip(t *testing.T) {
	b := utils.AsBytes(uint32(0x01020304))
	var v uint32
	utils.ReadBytes(&v, b)
	if v != 0x01020304 {
		t.Errorf("round-tripped value = %#x, want 0x01020304", v)
	}
}
