package translit

import (
	"strings"

	"github.com/npillmayer/translit/engine"
	"github.com/npillmayer/translit/rules"
)

// Anteliterator turns script text back into input text. Unlike a
// Transliterator it does not aggregate input between calls: every call
// receives complete script text.
//
// The result is verified against a forward transliteration. Where input
// pieces would merge into a different composition, the stop symbol is
// inserted between them.
type Anteliterator struct {
	reverse   engine.Transducer
	forward   *Transliterator
	stop      rune
	backwards bool // the reverse engine matches from the end of the text
}

// NewAnteliterator creates an anteliterator from a reverse engine and a
// transliterator for the same mapping. If backwards is set, reverse reads
// its input from the end of the text, as do reverse custom mappings.
func NewAnteliterator(reverse engine.Transducer, forward *Transliterator, backwards bool) *Anteliterator {
	assert(reverse != nil && forward != nil, "anteliterator needs a reverse engine and a transliterator")
	return &Anteliterator{
		reverse:   reverse,
		forward:   forward,
		stop:      forward.stop,
		backwards: backwards,
	}
}

// Anteliterate returns input text which transliterates to output. Output
// is compared in its canonical decomposition, precomposed characters match
// the sequence of their parts.
func (a *Anteliterator) Anteliterate(output string) string {
	output = rules.Decompose(output)
	chunks := a.decompose(output)
	var input, script strings.Builder
	for _, c := range chunks {
		script.WriteString(c.Input)
		candidate := input.String() + c.Output
		if rules.Decompose(a.transliterate(candidate)) != script.String() {
			tracer().Debugf("anteliterate: %q needs a stop before %q", input.String(), c.Output)
			input.WriteRune(a.stop)
		}
		input.WriteString(c.Output)
	}
	tracer().Debugf("anteliterate %q → %q", output, input.String())
	return input.String()
}

// decompose runs the reverse engine over text. The chunks carry script text
// as input and scheme text as output, in text order.
func (a *Anteliterator) decompose(text string) []engine.Result {
	symbols := []rune(text)
	if a.backwards {
		reverseRunes(symbols)
	}
	a.reverse.Reset()
	var buf buffer
	buf.add(a.reverse.ExecuteAll(symbols))
	a.reverse.Reset()
	chunks := buf.chunks()
	if !a.backwards {
		return chunks
	}
	for i, j := 0, len(chunks)-1; i < j; i, j = i+1, j-1 {
		chunks[i], chunks[j] = chunks[j], chunks[i]
	}
	for i, c := range chunks {
		chunks[i].Input = reversed(c.Input)
		chunks[i].Output = reversed(c.Output)
	}
	return chunks
}

func (a *Anteliterator) transliterate(input string) string {
	a.forward.Reset()
	out := a.forward.Transliterate(input).Output()
	a.forward.Reset()
	return out
}

func reverseRunes(r []rune) {
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
}

func reversed(s string) string {
	r := []rune(s)
	reverseRunes(r)
	return string(r)
}
