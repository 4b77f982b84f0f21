package symbols_test

import (
	"testing"

	"github.com/mogaika/ng-scriptc/symbols"
)

func TestResolvePrecedenceFileDefineBeatsEngineConstant(t *testing.T) {
	tab := symbols.NewTable()
	tab.LoadEngineConstants(map[string]int32{"MAX_HEALTH": 100})
	tab.Define("a.scr", "MAX_HEALTH", 50)

	v, pluginId, ok := tab.Resolve("a.scr", "MAX_HEALTH")
	if !ok || v != 50 || pluginId != 0 {
		t.Errorf("Resolve = (%d, %d, %v), want (50, 0, true)", v, pluginId, ok)
	}

	// A different file never sees another file's #define.
	v, _, ok = tab.Resolve("b.scr", "MAX_HEALTH")
	if !ok || v != 100 {
		t.Errorf("Resolve from unrelated file = (%d, %v), want (100, true)", v, ok)
	}
}

func TestResolveFallsThroughSlotThenStaticThenPlugins(t *testing.T) {
	tab := symbols.NewTable()
	tab.LoadSlotEnum(map[string]int32{"SLOT_SWORD": 1})
	tab.LoadStaticEnum(map[string]int32{"STATIC_DOOR": 2})
	tab.RegisterPlugin(7, "physics", 100, map[string]int32{"GRAVITY": 9})

	if v, _, ok := tab.Resolve("x.scr", "SLOT_SWORD"); !ok || v != 1 {
		t.Errorf("slot lookup = (%d, %v)", v, ok)
	}
	if v, _, ok := tab.Resolve("x.scr", "STATIC_DOOR"); !ok || v != 2 {
		t.Errorf("static lookup = (%d, %v)", v, ok)
	}
	v, pluginId, ok := tab.Resolve("x.scr", "GRAVITY")
	if !ok || v != 9 || pluginId != 7 {
		t.Errorf("plugin lookup = (%d, %d, %v), want (9, 7, true)", v, pluginId, ok)
	}
	if _, _, ok := tab.Resolve("x.scr", "NOT_A_SYMBOL"); ok {
		t.Error("expected a total miss to report ok=false")
	}
}

func TestRegisterPluginOrdersByDiscoveryMtime(t *testing.T) {
	tab := symbols.NewTable()
	tab.RegisterPlugin(2, "second", 200, map[string]int32{"SHARED": 2})
	tab.RegisterPlugin(1, "first", 100, map[string]int32{"SHARED": 1})

	// Both plugins define SHARED; discovery order (by mtime) means the
	// earlier-discovered plugin (mtime 100) should win the lookup.
	_, pluginId, ok := tab.Resolve("x.scr", "SHARED")
	if !ok || pluginId != 1 {
		t.Errorf("pluginId = %d, want 1 (earliest-discovered plugin)", pluginId)
	}
}

func TestClearPluginsDropsEveryRegisteredTable(t *testing.T) {
	tab := symbols.NewTable()
	tab.RegisterPlugin(1, "p", 1, map[string]int32{"X": 5})
	tab.ClearPlugins()

	if _, _, ok := tab.Resolve("x.scr", "X"); ok {
		t.Error("expected plugin symbol to be gone after ClearPlugins")
	}
}
