package trie

import (
	"fmt"
)

const rootIndex int32 = 0
const noParent int32 = -1

type node[K comparable, V any] struct {
	symbol   K
	parent   int32
	children map[K]int32
	value    V
	hasValue bool
}

// Trie is a prefix tree over sequences of symbols of type K. Every node may
// carry a value of type V.
//
// A Trie is built once and may then be shared read-only between any number
// of walkers.
type Trie[K comparable, V any] struct {
	nodes []node[K, V]
	size  int // number of nodes carrying a value
}

// New creates an empty trie consisting of a root node only.
func New[K comparable, V any]() *Trie[K, V] {
	t := &Trie[K, V]{}
	t.nodes = append(t.nodes, node[K, V]{parent: noParent})
	return t
}

// Size returns the number of keys stored in the trie.
func (t *Trie[K, V]) Size() int {
	return t.size
}

func (t *Trie[K, V]) String() string {
	return fmt.Sprintf("trie{keys=%d, nodes=%d}", t.size, len(t.nodes))
}

// Root returns a handle for the root node of the trie.
func (t *Trie[K, V]) Root() Node[K, V] {
	return Node[K, V]{trie: t, index: rootIndex}
}

func (t *Trie[K, V]) child(index int32, symbol K) (int32, bool) {
	ch, ok := t.nodes[index].children[symbol]
	return ch, ok
}

// addChild returns the child of node index for symbol, creating it if
// necessary.
func (t *Trie[K, V]) addChild(index int32, symbol K) int32 {
	if ch, ok := t.child(index, symbol); ok {
		return ch
	}
	ch := int32(len(t.nodes))
	t.nodes = append(t.nodes, node[K, V]{symbol: symbol, parent: index})
	if t.nodes[index].children == nil {
		t.nodes[index].children = make(map[K]int32)
	}
	t.nodes[index].children[symbol] = ch
	return ch
}

func (t *Trie[K, V]) find(key []K) (int32, bool) {
	n := rootIndex
	for _, symbol := range key {
		ch, ok := t.child(n, symbol)
		if !ok {
			return 0, false
		}
		n = ch
	}
	return n, true
}

// Get returns the value stored for key, if any.
func (t *Trie[K, V]) Get(key []K) (V, bool) {
	if n, ok := t.find(key); ok && t.nodes[n].hasValue {
		return t.nodes[n].value, true
	}
	var zero V
	return zero, false
}

// Set stores value under key, creating intermediate nodes as needed.
// An existing value is overwritten. key must not be empty.
func (t *Trie[K, V]) Set(key []K, value V) {
	t.Update(key, func(V, bool) V { return value })
}

// Update stores the value returned by fn under key. fn receives the value
// currently stored for key and a flag telling whether there is one.
// key must not be empty.
func (t *Trie[K, V]) Update(key []K, fn func(old V, ok bool) V) {
	assert(len(key) > 0, "trie key must not be empty")
	n := rootIndex
	for _, symbol := range key {
		n = t.addChild(n, symbol)
	}
	nd := &t.nodes[n]
	value := fn(nd.value, nd.hasValue)
	if !nd.hasValue {
		t.size++
	}
	nd.value = value
	nd.hasValue = true
}

// Merge adds all keys of other to t. If both tries carry a value for the
// same key, resolve decides which value to keep. A nil resolver lets the
// value of other win.
func (t *Trie[K, V]) Merge(other *Trie[K, V], resolve func(key []K, old, new V) V) {
	if other == nil {
		return
	}
	assert(other != t, "cannot merge a trie into itself")
	t.mergeNode(rootIndex, other, rootIndex, resolve)
}

func (t *Trie[K, V]) mergeNode(into int32, other *Trie[K, V], from int32, resolve func(key []K, old, new V) V) {
	src := &other.nodes[from]
	if src.hasValue {
		dst := &t.nodes[into]
		if dst.hasValue {
			key := t.keyOf(into)
			value := src.value
			if resolve != nil {
				value = resolve(key, dst.value, src.value)
			}
			tracer().Debugf("merge replaces value for key %v", key)
			dst.value = value
		} else {
			dst.value = src.value
			dst.hasValue = true
			t.size++
		}
	}
	for symbol, ch := range other.nodes[from].children {
		n := t.addChild(into, symbol)
		t.mergeNode(n, other, ch, resolve)
	}
}

func (t *Trie[K, V]) keyOf(index int32) []K {
	var key []K
	for n := index; n != rootIndex; n = t.nodes[n].parent {
		key = append(key, t.nodes[n].symbol)
	}
	for i, j := 0, len(key)-1; i < j; i, j = i+1, j-1 {
		key[i], key[j] = key[j], key[i]
	}
	return key
}

// --- Nodes -----------------------------------------------------------------

// Node is a handle for a node of a trie.
type Node[K comparable, V any] struct {
	trie  *Trie[K, V]
	index int32
}

// IsRoot is true for the root node of a trie.
func (n Node[K, V]) IsRoot() bool {
	return n.index == rootIndex
}

// IsLeaf is true for nodes without children.
func (n Node[K, V]) IsLeaf() bool {
	return len(n.trie.nodes[n.index].children) == 0
}

// Parent returns the parent node. The root is its own parent.
func (n Node[K, V]) Parent() Node[K, V] {
	if n.IsRoot() {
		return n
	}
	return Node[K, V]{trie: n.trie, index: n.trie.nodes[n.index].parent}
}

// Root returns the root node of the trie n belongs to.
func (n Node[K, V]) Root() Node[K, V] {
	return n.trie.Root()
}

// Key reconstructs the sequence of symbols leading from the root to n.
func (n Node[K, V]) Key() []K {
	return n.trie.keyOf(n.index)
}

// Value returns the value stored at n, if any.
func (n Node[K, V]) Value() (V, bool) {
	nd := &n.trie.nodes[n.index]
	return nd.value, nd.hasValue
}

// Child returns the child of n reached by symbol.
func (n Node[K, V]) Child(symbol K) (Node[K, V], bool) {
	ch, ok := n.trie.child(n.index, symbol)
	if !ok {
		return Node[K, V]{}, false
	}
	return Node[K, V]{trie: n.trie, index: ch}, true
}
