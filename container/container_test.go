package container_test

import (
	"bytes"
	"testing"

	"github.com/mogaika/ng-scriptc/config"
	"github.com/mogaika/ng-scriptc/container"
	"github.com/mogaika/ng-scriptc/model"
)

func emptyModel() *model.ScriptModel {
	return &model.ScriptModel{Languages: map[string]*model.LanguageTable{}}
}

func TestBuildIsDeterministicForASeed(t *testing.T) {
	sm := emptyModel()
	opts := config.DefaultOptions()

	a := container.Build(sm, opts)
	b := container.Build(sm, opts)
	if !bytes.Equal(a, b) {
		t.Error("two builds from the same seed produced different bytes")
	}
}

func TestBuildEndsWithNGLERecord(t *testing.T) {
	sm := emptyModel()
	out := container.Build(sm, config.DefaultOptions())

	tail := out[len(out)-8:]
	if string(tail[:4]) != "NGLE" {
		t.Errorf("trailer does not end in NGLE, got %q", tail[:4])
	}
}

func TestHeaderEncryptionRoundTrips(t *testing.T) {
	sm := emptyModel()
	opts := config.DefaultOptions()
	opts.EncryptHeader = true

	encrypted := container.Build(sm, opts)
	encryptedHeader := make([]byte, 64)
	copy(encryptedHeader, encrypted[:64])

	decrypted := make([]byte, 64)
	copy(decrypted, encryptedHeader)
	container.DecryptHeader(decrypted)

	reencrypted := make([]byte, 64)
	copy(reencrypted, decrypted)
	container.EncryptHeader(reencrypted)

	if !bytes.Equal(reencrypted, encryptedHeader) {
		t.Error("decrypt-then-encrypt did not reproduce the original header")
	}
}

func TestSectionPayloadOffsetsPointIntoBlob(t *testing.T) {
	sm := emptyModel()
	sm.Sections = []*model.Section{
		{Kind: model.SectionLevel, FilePath: "a.cam", Emitted: []byte{0x81, 0x01}},
		{Kind: model.SectionLevel, FilePath: "b.cam", Emitted: []byte{0x82, 0x02, 0x03}},
	}
	out := container.Build(sm, config.DefaultOptions())
	if len(out) == 0 {
		t.Fatal("expected non-empty output")
	}

	// Header (16 bytes), PSX/PC extension blocks (2 * 4 * 20 bytes),
	// level-path offset table (2 * u16) and path blob come first.
	tableStart := 16 + 2*4*20 + 2*2 + len("a.cam\x00b.cam\x00")
	blobStart := tableStart + 4*len(sm.Sections)
	for i, s := range sm.Sections {
		o := tableStart + 4*i
		off := int(uint32(out[o]) | uint32(out[o+1])<<8 | uint32(out[o+2])<<16 | uint32(out[o+3])<<24)
		got := out[blobStart+off : blobStart+off+len(s.Emitted)]
		if !bytes.Equal(got, s.Emitted) {
			t.Errorf("section %d: offset %d points at %v, want %v", i, off, got, s.Emitted)
		}
	}
}
