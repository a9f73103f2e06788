package engine

import (
	"github.com/npillmayer/translit/trie"
)

type customEpoch struct {
	valid   bool
	epoch   uint64
	inputs  []rune
	matched int
	output  string
}

// Custom is an engine for mappings without rules: a trie maps input
// spellings directly to output text, the longest spelling wins.
type Custom struct {
	walker *trie.Walker[rune, string]
	cur    customEpoch
	view   display
}

var _ Transducer = (*Custom)(nil)

// NewCustom creates an engine for mapping.
func NewCustom(mapping *trie.Trie[rune, string]) *Custom {
	return &Custom{
		walker: trie.NewWalker(mapping),
		view:   newDisplay(),
	}
}

// Execute consumes symbol and returns the resulting output changes.
func (c *Custom) Execute(symbol rune) []Result {
	var out []Result
	for _, r := range c.walker.Walk(symbol) {
		out = c.handle(r, out)
	}
	tracer().Debugf("custom %q → %v", symbol, out)
	return out
}

// ExecuteAll consumes symbols in order.
func (c *Custom) ExecuteAll(symbols []rune) []Result {
	var out []Result
	for _, symbol := range symbols {
		out = append(out, c.Execute(symbol)...)
	}
	return out
}

// Reset discards all input. The engine behaves as if newly created.
func (c *Custom) Reset() {
	c.walker.Reset()
	c.cur = customEpoch{}
	c.view.reset()
}

func (c *Custom) handle(r trie.WalkResult[rune, string], out []Result) []Result {
	if c.cur.valid && (r.Epoch != c.cur.epoch || r.Type == trie.NoMappedOutput) {
		out = c.close(out)
	}
	switch r.Type {
	case trie.NoMappedOutput:
		return c.view.identity(string(r.Inputs), r.Epoch, true, out)
	case trie.MappedNoOutput:
		if !c.cur.valid {
			c.cur = customEpoch{valid: true, epoch: r.Epoch}
		}
		c.cur.inputs = r.Inputs
	case trie.MappedOutput:
		c.cur = customEpoch{
			valid:   true,
			epoch:   r.Epoch,
			inputs:  r.Inputs,
			matched: len(r.Inputs),
			output:  r.Output,
		}
	}
	return c.view.publish(c.segments(true), c.cur.epoch, out)
}

func (c *Custom) close(out []Result) []Result {
	cur := c.cur
	if cur.matched == 0 {
		c.cur = customEpoch{}
		return c.view.identity(string(cur.inputs), cur.epoch, true, out)
	}
	out = c.view.publish(c.segments(false), cur.epoch, out)
	c.cur = customEpoch{}
	return out
}

func (c *Custom) segments(withPending bool) []segment {
	var segs []segment
	if c.cur.matched > 0 {
		segs = append(segs, segment{
			input:    string(c.cur.inputs[:c.cur.matched]),
			output:   c.cur.output,
			composed: true,
		})
	}
	if withPending {
		for _, r := range c.cur.inputs[c.cur.matched:] {
			segs = append(segs, segment{input: string(r), output: string(r)})
		}
	}
	return segs
}
