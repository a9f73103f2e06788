package translit

import (
	"strings"

	"github.com/npillmayer/translit/engine"
)

// Literated is aggregated transliteration output.
type Literated struct {
	FinalizedInput    string // input which will not change
	FinalizedOutput   string // output which will not change
	UnfinalizedInput  string // input which may change with further input
	UnfinalizedOutput string // output which may change with further input
}

// Input returns the complete input.
func (l Literated) Input() string {
	return l.FinalizedInput + l.UnfinalizedInput
}

// Output returns the complete output.
func (l Literated) Output() string {
	return l.FinalizedOutput + l.UnfinalizedOutput
}

// buffer aggregates engine results into a finalized prefix and a changeable
// suffix.
type buffer struct {
	results   []engine.Result
	finalized int // results before this index are final
}

func (b *buffer) add(results []engine.Result) {
	for _, r := range results {
		if r.IsPreviousFinal {
			b.finalized = len(b.results)
		} else if !r.IsAppendage {
			b.results = b.results[:b.finalized]
		}
		b.results = append(b.results, r)
	}
}

// truncate drops the unfinalized results.
func (b *buffer) truncate() {
	b.results = b.results[:b.finalized]
}

func (b *buffer) reset() {
	b.results = b.results[:0]
	b.finalized = 0
}

func (b *buffer) collapse() Literated {
	var fin, finOut, unfin, unfinOut strings.Builder
	for i, r := range b.results {
		if i < b.finalized {
			fin.WriteString(r.Input)
			finOut.WriteString(r.Output)
		} else {
			unfin.WriteString(r.Input)
			unfinOut.WriteString(r.Output)
		}
	}
	return Literated{
		FinalizedInput:    fin.String(),
		FinalizedOutput:   finOut.String(),
		UnfinalizedInput:  unfin.String(),
		UnfinalizedOutput: unfinOut.String(),
	}
}

// chunks returns the aggregated results, skipping empty ones.
func (b *buffer) chunks() []engine.Result {
	chunks := make([]engine.Result, 0, len(b.results))
	for _, r := range b.results {
		if r.Input == "" && r.Output == "" {
			continue
		}
		chunks = append(chunks, r)
	}
	return chunks
}
