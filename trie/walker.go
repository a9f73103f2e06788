package trie

// ResultType classifies the outcome of a single walker step.
type ResultType int8

const (
	// NoMappedOutput: the symbol cannot be mapped; the walker has reset.
	NoMappedOutput ResultType = iota
	// MappedNoOutput: the symbols walked form a proper prefix of a key.
	MappedNoOutput
	// MappedOutput: the symbols walked form a key carrying a value.
	MappedOutput
)

func (rt ResultType) String() string {
	switch rt {
	case MappedOutput:
		return "mappedOutput"
	case MappedNoOutput:
		return "mappedNoOutput"
	}
	return "noMappedOutput"
}

// WalkResult reports a single step of a walker.
//
// Inputs holds the symbols consumed in the epoch of the result, Output is the
// value of the node reached (valid for MappedOutput only).
type WalkResult[K comparable, V any] struct {
	Inputs []K
	Output V
	Type   ResultType
	Epoch  uint64
}

// Walker walks a trie one symbol at a time, remembering where the most
// recent complete match occurred. A walker is not safe for concurrent use;
// give each goroutine its own.
type Walker[K comparable, V any] struct {
	trie    *Trie[K, V]
	current int32
	inputs  []K   // symbols consumed since the last reset
	matches []int // len(inputs) at every match since the last reset
	epoch   uint64
}

// NewWalker creates a walker positioned at the root of t.
func NewWalker[K comparable, V any](t *Trie[K, V]) *Walker[K, V] {
	return &Walker[K, V]{trie: t, current: rootIndex}
}

// Epoch returns the current epoch. It is incremented on every reset.
func (w *Walker[K, V]) Epoch() uint64 {
	return w.epoch
}

// AtRoot is true if the walker is positioned at the root of its trie.
func (w *Walker[K, V]) AtRoot() bool {
	return w.current == rootIndex
}

// Node returns the node the walker is currently positioned at.
func (w *Walker[K, V]) Node() Node[K, V] {
	return Node[K, V]{trie: w.trie, index: w.current}
}

// Inputs returns a copy of the symbols consumed since the last reset.
func (w *Walker[K, V]) Inputs() []K {
	return append([]K(nil), w.inputs...)
}

// Reset positions the walker at the root and starts a new epoch.
func (w *Walker[K, V]) Reset() {
	w.current = rootIndex
	w.inputs = w.inputs[:0]
	w.matches = w.matches[:0]
	w.epoch++
}

// StepBack moves the walker one node up, undoing the last symbol. The epoch
// does not change. At the root StepBack does nothing.
func (w *Walker[K, V]) StepBack() {
	if w.current == rootIndex {
		return
	}
	if m := len(w.matches); m > 0 && w.matches[m-1] == len(w.inputs) {
		w.matches = w.matches[:m-1]
	}
	w.inputs = w.inputs[:len(w.inputs)-1]
	w.current = w.trie.nodes[w.current].parent
}

// Walk consumes symbol and returns the results of this step.
//
// Usually there is exactly one result. If symbol leads into a dead end after
// a complete match, the walker resets and replays every symbol consumed after
// that match, followed by symbol. The results of the replay are returned in
// order, so a single call may report several results spanning more than one
// epoch.
//
// If symbol leads into a dead end without any match since the last reset,
// the prefix walked so far is abandoned and symbol is retried from the root.
// A symbol without an edge from the root yields NoMappedOutput and the
// walker resets.
func (w *Walker[K, V]) Walk(symbol K) []WalkResult[K, V] {
	return w.walk(symbol, nil)
}

// WalkAll walks every symbol in turn and returns the concatenated results.
func (w *Walker[K, V]) WalkAll(symbols []K) []WalkResult[K, V] {
	var results []WalkResult[K, V]
	for _, symbol := range symbols {
		results = w.walk(symbol, results)
	}
	return results
}

func (w *Walker[K, V]) walk(symbol K, results []WalkResult[K, V]) []WalkResult[K, V] {
	if ch, ok := w.trie.child(w.current, symbol); ok {
		w.current = ch
		w.inputs = append(w.inputs, symbol)
		r := WalkResult[K, V]{
			Inputs: append([]K(nil), w.inputs...),
			Type:   MappedNoOutput,
			Epoch:  w.epoch,
		}
		if nd := &w.trie.nodes[ch]; nd.hasValue {
			w.matches = append(w.matches, len(w.inputs))
			r.Output = nd.value
			r.Type = MappedOutput
		}
		return append(results, r)
	}
	if m := len(w.matches); m > 0 {
		replay := append([]K(nil), w.inputs[w.matches[m-1]:]...)
		replay = append(replay, symbol)
		tracer().Debugf("walker dead end, replaying %d symbol(s)", len(replay))
		w.Reset()
		for _, s := range replay {
			results = w.walk(s, results)
		}
		return results
	}
	if w.current != rootIndex {
		tracer().Debugf("walker abandons unmatched prefix of length %d", len(w.inputs))
		w.Reset()
		return w.walk(symbol, results)
	}
	r := WalkResult[K, V]{
		Inputs: []K{symbol},
		Type:   NoMappedOutput,
		Epoch:  w.epoch,
	}
	w.Reset()
	return append(results, r)
}
