/*
Package engine implements incremental transliteration engines.

An engine consumes one input symbol at a time and emits a sequence of
Results. Every Result tells the consumer how to update the text it holds:

  - IsPreviousFinal: everything the consumer held before this Result will
    never change again.
  - IsAppendage: add this Result to what is held; otherwise replace all
    non-final Results with it.

Engine walks a mapping trie and a rule trie in tandem (see package rules).
Longer spellings and longer rules win: typing "k" shows क, typing another
"k" revises the output to क्क, and so on until a symbol cannot extend the
current composition and the output is finalized.

Custom walks a single trie mapping input spellings directly to output text.

Both implement Transducer. Engines are not safe for concurrent use.
*/
package engine

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'translit.engine'
func tracer() tracing.Trace {
	return tracing.Select("translit.engine")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
