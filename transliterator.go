package translit

import (
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/translit/engine"
)

// Transliterator aggregates incremental input and transliterates it with an
// engine. It holds state between calls: call Reset to start over.
//
// A Transliterator must not be used concurrently, see Shared.
type Transliterator struct {
	engine  engine.Transducer
	stop    rune
	escape  rune // 0 if escaping is disabled
	buf     buffer
	pending []typed // input of the unfinalized results
	state
}

// state is what a transliterator knows about the symbols before the next one.
type state struct {
	wasStop bool // previous symbol was an unescaped stop symbol
	escaped bool // inside a run of literal input
	literal int  // symbols since the escape symbol started the run
}

// typed is an input symbol and the state it has been fed in.
type typed struct {
	symbol rune
	before state
}

// NewTransliterator creates a transliterator for an engine. escape may be 0
// to disable literal input.
func NewTransliterator(e engine.Transducer, stop, escape rune) *Transliterator {
	assert(e != nil, "transliterator needs an engine")
	assert(stop != escape, "stop and escape symbol must differ")
	return &Transliterator{
		engine: e,
		stop:   stop,
		escape: escape,
	}
}

// Transliterate adds input to the aggregated input and returns the
// transliteration of all input since the last reset.
func (t *Transliterator) Transliterate(input string) Literated {
	for _, symbol := range input {
		t.put(symbol)
	}
	lit := t.buf.collapse()
	tracer().Debugf("transliterate %q → %q|%q", input, lit.FinalizedOutput, lit.UnfinalizedOutput)
	return lit
}

// Results returns a copy of the aggregated results since the last reset.
func (t *Transliterator) Results() []engine.Result {
	return append([]engine.Result(nil), t.buf.results...)
}

// put feeds symbol and keeps the input of the unfinalized results.
func (t *Transliterator) put(symbol rune) {
	t.pending = append(t.pending, typed{symbol: symbol, before: t.state})
	t.feed(symbol)
	n := 0
	for _, r := range t.buf.results[t.buf.finalized:] {
		n += utf8.RuneCountInString(r.Input)
	}
	if n < len(t.pending) {
		t.pending = append(t.pending[:0], t.pending[len(t.pending)-n:]...)
	}
}

func (t *Transliterator) feed(symbol rune) {
	switch {
	case t.escaped:
		t.feedLiteral(symbol)
	case t.escape != 0 && symbol == t.escape:
		t.engine.Reset()
		t.escaped, t.literal, t.wasStop = true, 0, false
		t.emit(engine.Result{Input: string(symbol), IsPreviousFinal: true})
	case symbol == t.stop:
		t.engine.Reset()
		out := ""
		if t.wasStop {
			out = string(t.stop)
		}
		t.emit(engine.Result{Input: string(symbol), Output: out, IsPreviousFinal: true})
		t.wasStop = !t.wasStop
	default:
		t.buf.add(t.engine.Execute(symbol))
		t.wasStop = false
	}
}

func (t *Transliterator) feedLiteral(symbol rune) {
	if symbol != t.escape {
		t.literal++
		t.emit(engine.Result{Input: string(symbol), Output: string(symbol), IsPreviousFinal: true})
		return
	}
	t.escaped = false
	out := ""
	if t.literal == 0 {
		out = string(t.escape) // empty run
	}
	t.emit(engine.Result{Input: string(symbol), Output: out, IsPreviousFinal: true})
}

func (t *Transliterator) emit(r engine.Result) {
	t.buf.add([]engine.Result{r})
}

// Delete removes the last input symbol. It returns the remaining unfinalized
// input and output. Finalized input is never deleted: if there is no
// unfinalized input, handled is false.
//
// Only the input of the unfinalized results is transliterated again.
func (t *Transliterator) Delete() (input string, output string, handled bool) {
	if len(t.pending) == 0 {
		return "", "", false
	}
	replay := append([]typed(nil), t.pending[:len(t.pending)-1]...)
	t.state = t.pending[0].before
	t.pending = t.pending[:0]
	t.buf.truncate()
	t.engine.Reset()
	for _, p := range replay {
		t.put(p.symbol)
	}
	lit := t.buf.collapse()
	tracer().Debugf("delete → %q|%q", lit.UnfinalizedInput, lit.UnfinalizedOutput)
	return lit.UnfinalizedInput, lit.UnfinalizedOutput, true
}

// Reset clears all state and returns the transliteration of the input
// before clearing it.
func (t *Transliterator) Reset() Literated {
	lit := t.buf.collapse()
	t.clear()
	return lit
}

func (t *Transliterator) clear() {
	t.engine.Reset()
	t.buf.reset()
	t.pending = t.pending[:0]
	t.state = state{}
}

// --- Shared ----------------------------------------------------------------

// Shared serializes access to a long-lived transliterator, for example one
// serving several editing sessions.
type Shared struct {
	mu sync.Mutex
	t  *Transliterator
}

// NewShared wraps t. t must not be used directly afterwards.
func NewShared(t *Transliterator) *Shared {
	return &Shared{t: t}
}

// Transliterate is Transliterator.Transliterate under a lock.
func (s *Shared) Transliterate(input string) Literated {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.Transliterate(input)
}

// Delete is Transliterator.Delete under a lock.
func (s *Shared) Delete() (string, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.Delete()
}

// Reset is Transliterator.Reset under a lock.
func (s *Shared) Reset() Literated {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.Reset()
}
