package engine

import (
	"testing"

	"github.com/npillmayer/translit/trie"
)

func customMapping() *trie.Trie[rune, string] {
	m := trie.New[rune, string]()
	for k, v := range map[string]string{
		"k":   "क्",
		"ka":  "क",
		"kau": "कौ",
		"kh":  "ख्",
		"kha": "ख",
		"a":   "अ",
		".lu": "ऌ",
	} {
		m.Set([]rune(k), v)
	}
	return m
}

func TestCustomEngine(t *testing.T) {
	tests := []struct {
		symbol rune
		want   []Result
	}{
		{'k', []Result{{Input: "k", Output: "क्", IsPreviousFinal: true}}},
		{'a', []Result{{Input: "ka", Output: "क"}}},
		{'u', []Result{{Input: "kau", Output: "कौ"}}},
		{'a', []Result{{Input: "a", Output: "अ", IsPreviousFinal: true}}},
		{'.', []Result{{Input: ".", Output: ".", IsPreviousFinal: true, IsAppendage: true}}},
		{'l', []Result{{Input: "l", Output: "l", IsAppendage: true}}},
		{'x', []Result{
			{Input: ".l", Output: ".l"},
			{Input: "x", Output: "x", IsPreviousFinal: true},
		}},
		{'k', []Result{{Input: "k", Output: "क्", IsPreviousFinal: true}}},
		{'.', []Result{{Input: ".", Output: ".", IsPreviousFinal: true, IsAppendage: true}}},
		{'k', []Result{
			{Input: ".", Output: "."},
			{Input: "k", Output: "क्", IsPreviousFinal: true},
		}},
	}
	e := NewCustom(customMapping())
	for i, tt := range tests {
		got := e.Execute(tt.symbol)
		if len(got) != len(tt.want) {
			t.Fatalf("step #%d (%q): expected %v, have %v", i, tt.symbol, tt.want, got)
		}
		for j := range got {
			if got[j] != tt.want[j] {
				t.Fatalf("step #%d (%q) result #%d = %v, want %v", i, tt.symbol, j, got[j], tt.want[j])
			}
		}
	}
}

func TestCustomCollapsed(t *testing.T) {
	e := NewCustom(customMapping())
	fin, unfin := collapse(e.ExecuteAll([]rune("kaukha.luk")))
	if fin != "कौखऌ" || unfin != "क्" {
		t.Fatalf("have (%q, %q)", fin, unfin)
	}
	e.Reset()
	if got := e.Execute('('); len(got) != 1 || got[0] != (Result{Input: "(", Output: "(", IsPreviousFinal: true}) {
		t.Fatalf("unexpected identity result %v", got)
	}
}
