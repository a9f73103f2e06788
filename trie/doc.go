/*
Package trie implements a generic prefix tree and an incremental walker on
top of it.

Nodes of a trie are kept in an arena owned by the trie and are addressed by
index. Every node knows the index of its parent, which lets clients climb
from any node back to the root to reconstruct its key, and lets a walker
undo single steps without re-walking from the start.

A Walker consumes one symbol at a time and classifies each step as

	MappedOutput     the symbols walked so far form a key with a value
	MappedNoOutput   the symbols form a proper prefix of at least one key
	NoMappedOutput   the symbol cannot be mapped at all

Whenever the walker restarts from the root it starts a new epoch. Clients
compare epochs of successive results to tell whether a result continues
the current match or begins a new one.
*/
package trie

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'translit.trie'
func tracer() tracing.Trace {
	return tracing.Select("translit.trie")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
