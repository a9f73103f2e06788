package trie

import (
	"reflect"
	"testing"
)

func TestTrieSetGet(t *testing.T) {
	tr := New[rune, string]()
	tr.Set([]rune("a"), "A")
	tr.Set([]rune("ab"), "AB")
	tr.Set([]rune("abc"), "ABC")
	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		{key: "a", want: "A", ok: true},
		{key: "ab", want: "AB", ok: true},
		{key: "abc", want: "ABC", ok: true},
		{key: "b", ok: false},
		{key: "abcd", ok: false},
	}
	for _, tt := range tests {
		got, ok := tr.Get([]rune(tt.key))
		if ok != tt.ok || got != tt.want {
			t.Fatalf("Get(%q) = (%q, %v), want (%q, %v)", tt.key, got, ok, tt.want, tt.ok)
		}
	}
	if tr.Size() != 3 {
		t.Fatalf("expected 3 keys, have %d", tr.Size())
	}
}

func TestTrieIntermediateNodesHaveNoValue(t *testing.T) {
	tr := New[rune, int]()
	tr.Set([]rune("xyz"), 7)
	if _, ok := tr.Get([]rune("xy")); ok {
		t.Fatalf("intermediate node must not carry a value")
	}
	n, ok := tr.Root().Child('x')
	if !ok {
		t.Fatalf("expected edge 'x' from root")
	}
	if n.IsLeaf() || n.IsRoot() {
		t.Fatalf("node 'x' should be an inner node")
	}
}

func TestTrieUpdateAppends(t *testing.T) {
	tr := New[rune, []string]()
	add := func(key, v string) {
		tr.Update([]rune(key), func(old []string, _ bool) []string {
			return append(old, v)
		})
	}
	add("a", "VOWEL")
	add("a", "DEPENDENT")
	got, _ := tr.Get([]rune("a"))
	if !reflect.DeepEqual(got, []string{"VOWEL", "DEPENDENT"}) {
		t.Fatalf("expected appended values, have %v", got)
	}
	if tr.Size() != 1 {
		t.Fatalf("expected 1 key, have %d", tr.Size())
	}
}

func TestTrieEmptyKeyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected Set with empty key to panic")
		}
	}()
	New[rune, int]().Set(nil, 1)
}

func TestNodeNavigation(t *testing.T) {
	tr := New[rune, int]()
	tr.Set([]rune("kha"), 1)
	n := tr.Root()
	for _, r := range "kha" {
		var ok bool
		if n, ok = n.Child(r); !ok {
			t.Fatalf("missing edge %q", r)
		}
	}
	if !n.IsLeaf() {
		t.Fatalf("node for 'kha' should be a leaf")
	}
	if v, ok := n.Value(); !ok || v != 1 {
		t.Fatalf("expected value 1 at leaf, have %d (%v)", v, ok)
	}
	if string(n.Key()) != "kha" {
		t.Fatalf("key reconstruction failed: %q", string(n.Key()))
	}
	if string(n.Parent().Key()) != "kh" {
		t.Fatalf("parent should be 'kh', is %q", string(n.Parent().Key()))
	}
	if !n.Root().IsRoot() || !tr.Root().Parent().IsRoot() {
		t.Fatalf("root navigation broken")
	}
}

func TestTrieMerge(t *testing.T) {
	base := New[rune, string]()
	base.Set([]rune("k"), "ka")
	base.Set([]rune("kh"), "kha")
	overlay := New[rune, string]()
	overlay.Set([]rune("kh"), "KHA")
	overlay.Set([]rune("g"), "ga")
	var conflicts []string
	base.Merge(overlay, func(key []rune, old, new string) string {
		conflicts = append(conflicts, string(key))
		return new
	})
	want := map[string]string{"k": "ka", "kh": "KHA", "g": "ga"}
	for k, v := range want {
		if got, ok := base.Get([]rune(k)); !ok || got != v {
			t.Fatalf("after merge %q should map to %q, have %q", k, v, got)
		}
	}
	if !reflect.DeepEqual(conflicts, []string{"kh"}) {
		t.Fatalf("expected a single conflict for 'kh', have %v", conflicts)
	}
	if base.Size() != 3 {
		t.Fatalf("expected 3 keys after merge, have %d", base.Size())
	}
}
