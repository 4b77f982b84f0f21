package ngcompile_test

import (
	"testing"

	"github.com/mogaika/ng-scriptc/diag"
	"github.com/mogaika/ng-scriptc/model"
	"github.com/mogaika/ng-scriptc/ngcompile"
	"github.com/mogaika/ng-scriptc/ngschema"
)

func TestAssignSlotPacksPluginId(t *testing.T) {
	group := &model.NGCommandGroup{Commands: []*model.NGCommand{{
		SchemaName: "AssignSlot",
		Args: []model.Arg{
			{Kind: model.ArgItemSlot, Scalar: 4},
			{Kind: model.ArgLong, Scalar: 12, PluginId: 7},
		},
	}}}
	sm := &model.ScriptModel{OptionsNG: group}
	collector := diag.NewCollector()

	ngcompile.Compile(sm, collector)

	if collector.Aborted() {
		t.Fatalf("unexpected diagnostics: %v", collector.Entries())
	}
	cmd := group.Commands[0]
	if cmd.Tag != ngschema.TagAssignSlot {
		t.Errorf("tag = %d", cmd.Tag)
	}
	want := []uint16{4, 12, 7}
	if len(cmd.Words) != len(want) {
		t.Fatalf("words = %v", cmd.Words)
	}
	for i := range want {
		if cmd.Words[i] != want[i] {
			t.Errorf("word[%d] = %d, want %d", i, cmd.Words[i], want[i])
		}
	}
}

func TestTriggerGroupDowngradesWhenValuesFit(t *testing.T) {
	group := &model.NGCommandGroup{Commands: []*model.NGCommand{{
		SchemaName: "TriggerGroup",
		Args: []model.Arg{
			{Kind: model.ArgLong, Scalar: 100},
			{Kind: model.ArgLong, Scalar: 200},
			{Kind: model.ArgLong, Scalar: 300},
			{Kind: model.ArgArrayLong, Array: []int64{1, 2, 3}},
		},
	}}}
	sm := &model.ScriptModel{Sections: []*model.Section{{NG: group}}}
	collector := diag.NewCollector()

	ngcompile.Compile(sm, collector)

	cmd := group.Commands[0]
	if cmd.Tag != ngschema.TagTriggerGroupWord {
		t.Errorf("tag = %d, want downgrade to TriggerGroupWord", cmd.Tag)
	}
	if len(cmd.Words) != 6 {
		t.Fatalf("words = %v, want 6 (3 scalars + 3-element array, no count word)", cmd.Words)
	}
}

func TestTriggerGroupKeepsLongFormWhenOutOfRange(t *testing.T) {
	group := &model.NGCommandGroup{Commands: []*model.NGCommand{{
		SchemaName: "TriggerGroup",
		Args: []model.Arg{
			{Kind: model.ArgLong, Scalar: 1 << 20},
			{Kind: model.ArgLong, Scalar: 1},
			{Kind: model.ArgLong, Scalar: 1},
			{Kind: model.ArgArrayLong, Array: []int64{1}},
		},
	}}}
	sm := &model.ScriptModel{Sections: []*model.Section{{NG: group}}}
	collector := diag.NewCollector()

	ngcompile.Compile(sm, collector)

	cmd := group.Commands[0]
	if cmd.Tag != ngschema.TagTriggerGroup {
		t.Errorf("tag = %d, want long form kept", cmd.Tag)
	}
}

func TestOccurrenceCapIsFatal(t *testing.T) {
	var commands []*model.NGCommand
	for i := 0; i < 3; i++ {
		commands = append(commands, &model.NGCommand{
			SchemaName: "SetStartPosition",
			Args: []model.Arg{
				{Kind: model.ArgWord, Scalar: 1},
				{Kind: model.ArgWord, Scalar: 2},
				{Kind: model.ArgWord, Scalar: 3},
			},
		})
	}
	group := &model.NGCommandGroup{Commands: commands}
	sm := &model.ScriptModel{Sections: []*model.Section{{NG: group}}}
	collector := diag.NewCollector()

	ngcompile.Compile(sm, collector)

	if !collector.Aborted() {
		t.Error("expected occurrence cap to be fatal")
	}
}
