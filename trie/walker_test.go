package trie

import (
	"testing"
)

type step struct {
	inputs string
	typ    ResultType
	output string
}

func testTrie() *Trie[rune, string] {
	tr := New[rune, string]()
	for key, value := range map[string]string{
		"a":   "A",
		"ab":  "AB",
		"abc": "ABC",
		"x":   "X",
		"xyz": "XYZ",
		".lu": "LU",
	} {
		tr.Set([]rune(key), value)
	}
	return tr
}

func checkSteps(t *testing.T, results []WalkResult[rune, string], want []step) {
	t.Helper()
	if len(results) != len(want) {
		t.Fatalf("expected %d results, have %d: %v", len(want), len(results), results)
	}
	for i, r := range results {
		if string(r.Inputs) != want[i].inputs || r.Type != want[i].typ || r.Output != want[i].output {
			t.Fatalf("result #%d = (%q, %s, %q), want (%q, %s, %q)", i,
				string(r.Inputs), r.Type, r.Output, want[i].inputs, want[i].typ, want[i].output)
		}
	}
}

func TestWalkerExtendsMatch(t *testing.T) {
	w := NewWalker(testTrie())
	r1 := w.Walk('a')
	r2 := w.Walk('b')
	r3 := w.Walk('c')
	checkSteps(t, r1, []step{{"a", MappedOutput, "A"}})
	checkSteps(t, r2, []step{{"ab", MappedOutput, "AB"}})
	checkSteps(t, r3, []step{{"abc", MappedOutput, "ABC"}})
	if r1[0].Epoch != r3[0].Epoch {
		t.Fatalf("extending a match must not change the epoch")
	}
}

func TestWalkerNewEpochAfterDeadEnd(t *testing.T) {
	w := NewWalker(testTrie())
	r1 := w.Walk('a')
	r2 := w.Walk('a')
	checkSteps(t, r2, []step{{"a", MappedOutput, "A"}})
	if r1[0].Epoch == r2[0].Epoch {
		t.Fatalf("a dead end must start a new epoch")
	}
}

func TestWalkerReplaysAfterLastMatch(t *testing.T) {
	w := NewWalker(testTrie())
	w.Walk('x')
	r := w.Walk('y')
	checkSteps(t, r, []step{{"xy", MappedNoOutput, ""}})
	// "xya" is a dead end: replay "y" and "a" from the root
	r = w.Walk('a')
	checkSteps(t, r, []step{
		{"y", NoMappedOutput, ""},
		{"a", MappedOutput, "A"},
	})
	if r[0].Epoch == r[1].Epoch {
		t.Fatalf("noMappedOutput must close its epoch")
	}
}

func TestWalkerAbandonsUnmatchedPrefix(t *testing.T) {
	w := NewWalker(testTrie())
	checkSteps(t, w.Walk('.'), []step{{".", MappedNoOutput, ""}})
	checkSteps(t, w.Walk('l'), []step{{".l", MappedNoOutput, ""}})
	checkSteps(t, w.Walk('x'), []step{{"x", MappedOutput, "X"}})
}

func TestWalkerNoMappedOutputAtRoot(t *testing.T) {
	w := NewWalker(testTrie())
	e := w.Epoch()
	r := w.Walk('(')
	checkSteps(t, r, []step{{"(", NoMappedOutput, ""}})
	if !w.AtRoot() || w.Epoch() == e {
		t.Fatalf("walker should have reset after noMappedOutput")
	}
}

func TestWalkerStepBack(t *testing.T) {
	w := NewWalker(testTrie())
	w.WalkAll([]rune("ab"))
	e := w.Epoch()
	w.StepBack()
	if string(w.Inputs()) != "a" || w.Epoch() != e {
		t.Fatalf("step back should return to 'a' in the same epoch, have %q", string(w.Inputs()))
	}
	// the match at "ab" has been undone, so a dead end replays after "a"
	r := w.Walk('x')
	checkSteps(t, r, []step{{"x", MappedOutput, "X"}})
	w.Reset()
	w.StepBack()
	if !w.AtRoot() {
		t.Fatalf("step back at root should be a no-op")
	}
}

func TestWalkerResetIdempotent(t *testing.T) {
	w := NewWalker(testTrie())
	w.Reset()
	w.Reset()
	if !w.AtRoot() || len(w.Inputs()) != 0 {
		t.Fatalf("reset walker should sit at root with no inputs")
	}
}

func TestWalkAllConcatenates(t *testing.T) {
	w1 := NewWalker(testTrie())
	w2 := NewWalker(testTrie())
	var single []WalkResult[rune, string]
	for _, r := range "abxa(.lu" {
		single = append(single, w1.Walk(r)...)
	}
	all := w2.WalkAll([]rune("abxa(.lu"))
	if len(single) != len(all) {
		t.Fatalf("WalkAll should equal repeated Walk, have %d vs %d results", len(all), len(single))
	}
	for i := range all {
		if string(all[i].Inputs) != string(single[i].Inputs) || all[i].Type != single[i].Type {
			t.Fatalf("result #%d differs", i)
		}
	}
}
