package ngschema_test

import (
	"testing"

	"github.com/mogaika/ng-scriptc/ngschema"
)

func TestLookupKnownCommands(t *testing.T) {
	for _, name := range []string{"AssignSlot", "TriggerGroup", "TriggerGroupWord", "Customize", "Parameters"} {
		if ngschema.Lookup(name) == nil {
			t.Errorf("expected schema for %q", name)
		}
	}
}

func TestLookupUnknownReturnsNil(t *testing.T) {
	if s := ngschema.Lookup("NotARealCommand"); s != nil {
		t.Errorf("expected nil, got %+v", s)
	}
}

func TestTriggerGroupTrailingArray(t *testing.T) {
	s := ngschema.Lookup("TriggerGroup")
	if !s.HasTrailingArray() {
		t.Error("TriggerGroup should end in an array argument")
	}
}

func TestDumpYAMLRendersWithoutError(t *testing.T) {
	if _, err := ngschema.DumpYAML(); err != nil {
		t.Fatal(err)
	}
}
