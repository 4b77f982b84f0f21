package lexer_test

import (
	"reflect"
	"testing"

	"github.com/mogaika/ng-scriptc/lexer"
)

func TestSplitArgsQuoteAware(t *testing.T) {
	args, err := lexer.SplitArgs(`1, "a, b", 3`)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"1", `"a, b"`, "3"}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("got %#v, want %#v", args, want)
	}
}

func TestSplitCommandLine(t *testing.T) {
	cl, err := lexer.SplitCommandLine(`FMV= 3, 1`)
	if err != nil {
		t.Fatal(err)
	}
	if cl.Command != "FMV" {
		t.Errorf("command = %q", cl.Command)
	}
	want := []string{"3", "1"}
	if !reflect.DeepEqual(cl.Args, want) {
		t.Errorf("args = %#v, want %#v", cl.Args, want)
	}
}

func TestSplitCommandLineMissingEquals(t *testing.T) {
	if _, err := lexer.SplitCommandLine("NoEquals"); err == nil {
		t.Error("expected error for missing '='")
	}
}

func TestNextLogicalLineContinuation(t *testing.T) {
	src := lexer.NewSliceLineSource([]string{
		`TriggerGroup= 1, 2, 3 >`,
		`4, 5 ; trailing comment`,
		`Next= 1`,
	})

	ll, ok := lexer.NextLogicalLine(src)
	if !ok {
		t.Fatal("expected a logical line")
	}
	if ll.Text != "TriggerGroup= 1, 2, 3 4, 5" {
		t.Errorf("got %q", ll.Text)
	}

	ll2, ok := lexer.NextLogicalLine(src)
	if !ok {
		t.Fatal("expected a second logical line")
	}
	if ll2.Text != "Next= 1" {
		t.Errorf("got %q", ll2.Text)
	}
}
