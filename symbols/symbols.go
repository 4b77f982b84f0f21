// Package symbols implements the Symbol Resolver (spec §4.2): a
// layered, mostly-immutable catalog with deterministic lookup order --
// user `#define`s scoped to the current source file, then engine
// constants, then the slot enum, then the static enum, then each
// plugin's constant table in plugin discovery order.
//
// The two process-wide catalogs (engine constants, slot/static enums)
// are assembled once into an immutable outermost layer, the same shape
// the teacher's tweak-template tree builds its declarative field tables
// in a package `init()` (pack/wad/twk/twktree/init.go); the plugin
// layer is a named registry in discovery order, grounded on the
// teacher's script-loader registry (pack/wad/scr/store/sstore.go).
package symbols

import "sort"

// Table is the resolver's layered catalog. Create one with NewTable:
// the zero value's maps are nil, so loading or defining into it panics.
type Table struct {
	engineConstants map[string]int32
	slotEnum        map[string]int32
	staticEnum      map[string]int32

	// userDefines is scoped per source file: outer map key is the
	// file name, inner map is that file's #define table.
	userDefines map[string]map[string]int32

	plugins []pluginTable
}

type pluginTable struct {
	id        int32
	name      string
	mtime     int64
	constants map[string]int32
}

// IGNORE is the reserved sentinel the Expression Evaluator treats as
// -1 without going through the resolver at all; kept here too so
// callers that want to pre-check a bare name can reuse it.
const IGNORE = "IGNORE"

func NewTable() *Table {
	return &Table{
		engineConstants: make(map[string]int32),
		slotEnum:        make(map[string]int32),
		staticEnum:      make(map[string]int32),
		userDefines:     make(map[string]map[string]int32),
	}
}

// LoadEngineConstants seeds the immutable engine-constants layer, e.g.
// from the scripter_constants.txt catalog (spec §1, §6) consumed
// through whatever narrow parsing the CLI driver performs.
func (t *Table) LoadEngineConstants(values map[string]int32) {
	for k, v := range values {
		t.engineConstants[k] = v
	}
}

func (t *Table) LoadSlotEnum(values map[string]int32) {
	for k, v := range values {
		t.slotEnum[k] = v
	}
}

func (t *Table) LoadStaticEnum(values map[string]int32) {
	for k, v := range values {
		t.staticEnum[k] = v
	}
}

// Define adds a user symbol scoped to file, per `#define NAME value`.
func (t *Table) Define(file, name string, value int32) {
	m := t.userDefines[file]
	if m == nil {
		m = make(map[string]int32)
		t.userDefines[file] = m
	}
	m[name] = value
}

// RegisterPlugin adds a plugin constant table, kept sorted by discovery
// mtime so Resolve walks plugins in "plugin discovery order (file
// mtime ascending)" (spec §4.2) deterministically.
func (t *Table) RegisterPlugin(id int32, name string, mtime int64, constants map[string]int32) {
	t.plugins = append(t.plugins, pluginTable{id: id, name: name, mtime: mtime, constants: constants})
	sort.SliceStable(t.plugins, func(i, j int) bool { return t.plugins[i].mtime < t.plugins[j].mtime })
}

// ClearPlugins drops every registered plugin table, for `#define
// @plugins clear` (spec §4.3).
func (t *Table) ClearPlugins() {
	t.plugins = nil
}

// Resolve looks up name with the full layered precedence, returning the
// resolved value and the owning plugin id (0 if the symbol was not
// resolved through a plugin table). ok is false on a total miss.
func (t *Table) Resolve(file, name string) (value int32, pluginId int32, ok bool) {
	if m, exists := t.userDefines[file]; exists {
		if v, exists := m[name]; exists {
			return v, 0, true
		}
	}
	if v, exists := t.engineConstants[name]; exists {
		return v, 0, true
	}
	if v, exists := t.slotEnum[name]; exists {
		return v, 0, true
	}
	if v, exists := t.staticEnum[name]; exists {
		return v, 0, true
	}
	for _, p := range t.plugins {
		if v, exists := p.constants[name]; exists {
			return v, p.id, true
		}
	}
	return 0, 0, false
}
