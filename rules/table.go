package rules

// Mapping holds the spellings of one (type, key) pair. Scheme lists
// alternative spellings in the input scheme, the first one being canonical.
// Script is the text in the target script, or empty if the mapping has no
// script representation.
type Mapping struct {
	Scheme []string
	Script string
}

// Canonical returns the first scheme spelling of m.
func (m Mapping) Canonical() (string, bool) {
	if len(m.Scheme) == 0 {
		return "", false
	}
	return m.Scheme[0], true
}

// Table is an ordered map type → key → Mapping.
//
// Iteration follows insertion order. Setting an existing (type, key) replaces
// its mapping and moves it to the end, which makes later definitions
// override earlier ones without leaving stale entries behind.
type Table struct {
	types  []string
	byType map[string]*keyTable
}

type keyTable struct {
	keys  []string
	byKey map[string]Mapping
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{byType: make(map[string]*keyTable)}
}

// Set stores m for (typ, key).
func (t *Table) Set(typ, key string, m Mapping) {
	kt, ok := t.byType[typ]
	if !ok {
		kt = &keyTable{byKey: make(map[string]Mapping)}
		t.byType[typ] = kt
		t.types = append(t.types, typ)
	}
	if _, exists := kt.byKey[key]; exists {
		kt.keys = remove(kt.keys, key)
	}
	kt.keys = append(kt.keys, key)
	kt.byKey[key] = m
}

// Get returns the mapping for (typ, key).
func (t *Table) Get(typ, key string) (Mapping, bool) {
	kt, ok := t.byType[typ]
	if !ok {
		return Mapping{}, false
	}
	m, ok := kt.byKey[key]
	return m, ok
}

// Types returns the types of t in insertion order.
func (t *Table) Types() []string {
	return append([]string(nil), t.types...)
}

// Keys returns the keys of typ in insertion order.
func (t *Table) Keys(typ string) []string {
	if kt, ok := t.byType[typ]; ok {
		return append([]string(nil), kt.keys...)
	}
	return nil
}

// Len returns the number of (type, key) pairs.
func (t *Table) Len() int {
	n := 0
	for _, kt := range t.byType {
		n += len(kt.keys)
	}
	return n
}

// Each calls fn for every (type, key) pair in order.
func (t *Table) Each(fn func(typ, key string, m Mapping)) {
	for _, typ := range t.types {
		kt := t.byType[typ]
		for _, key := range kt.keys {
			fn(typ, key, kt.byKey[key])
		}
	}
}

func remove(keys []string, key string) []string {
	for i, k := range keys {
		if k == key {
			return append(keys[:i], keys[i+1:]...)
		}
	}
	return keys
}
