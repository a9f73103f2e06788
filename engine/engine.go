package engine

import (
	"strings"

	"github.com/npillmayer/translit/rules"
	"github.com/npillmayer/translit/trie"
)

type mappingResult = trie.WalkResult[rune, []rules.MappingOutput]

// step is a token accepted by the rule walker.
type step struct {
	input  string
	token  rules.MappingOutput
	edge   rules.RuleInput   // edge taken in the rule trie
	output *rules.RuleOutput // nil if the rule walk is at a proper prefix
}

// mappingEpoch is the state of the mapping walk in its current epoch.
type mappingEpoch struct {
	valid   bool
	epoch   uint64
	inputs  []rune
	matched int  // length of the latest match, 0 if none
	stepped bool // the latest match is the last of the steps
}

// pending returns the input symbols not accounted for by a step.
func (m *mappingEpoch) pending() []rune {
	if m.stepped {
		return m.inputs[m.matched:]
	}
	return m.inputs
}

// Engine is a transliteration engine walking the mapping trie and the rule
// trie of a set of Rules in tandem.
//
// Symbols are fed to the mapping walker. Each match offers candidate tokens,
// the first one accepted by the rule walker at its current position is
// composed with the tokens before it. If no candidate continues the current
// composition, the composition is closed and a new one starts at the root of
// the rule trie.
type Engine struct {
	rules   *rules.Rules
	mapping *trie.Walker[rune, []rules.MappingOutput]
	rule    *trie.Walker[rules.RuleInput, *rules.RuleOutput]
	steps   []step // composition of the current rule epoch
	cur     mappingEpoch
	view    display
}

var _ Transducer = (*Engine)(nil)

// New creates an engine for r. r may be forward or reverse rules.
func New(r *rules.Rules) *Engine {
	return &Engine{
		rules:   r,
		mapping: trie.NewWalker(r.MappingTrie()),
		rule:    trie.NewWalker(r.RuleTrie()),
		view:    newDisplay(),
	}
}

// Rules returns the rules e has been created for.
func (e *Engine) Rules() *rules.Rules {
	return e.rules
}

// Execute consumes symbol and returns the resulting output changes.
func (e *Engine) Execute(symbol rune) []Result {
	var out []Result
	for _, r := range e.mapping.Walk(symbol) {
		out = e.handle(r, out)
	}
	tracer().Debugf("engine %q → %v", symbol, out)
	return out
}

// ExecuteAll consumes symbols in order.
func (e *Engine) ExecuteAll(symbols []rune) []Result {
	var out []Result
	for _, symbol := range symbols {
		out = append(out, e.Execute(symbol)...)
	}
	return out
}

// Reset discards all input. The engine behaves as if newly created.
func (e *Engine) Reset() {
	e.mapping.Reset()
	e.resetRules()
	e.cur = mappingEpoch{}
	e.view.reset()
}

func (e *Engine) resetRules() {
	e.rule.Reset()
	e.steps = e.steps[:0]
}

func (e *Engine) handle(r mappingResult, out []Result) []Result {
	if e.cur.valid && (r.Epoch != e.cur.epoch || r.Type == trie.NoMappedOutput) {
		out = e.closeEpoch(out)
	}
	switch r.Type {
	case trie.NoMappedOutput:
		return e.identity(string(r.Inputs), out)
	case trie.MappedNoOutput:
		if !e.cur.valid {
			e.cur = mappingEpoch{valid: true, epoch: r.Epoch}
		}
		e.cur.inputs = r.Inputs
		return e.publish(true, out)
	}
	if e.cur.valid && e.cur.stepped {
		// a longer match replaces the token of the shorter one
		e.steps = e.steps[:len(e.steps)-1]
		e.rule.StepBack()
	}
	e.cur = mappingEpoch{
		valid:   true,
		epoch:   r.Epoch,
		inputs:  r.Inputs,
		matched: len(r.Inputs),
	}
	return e.compose(r.Output, out)
}

// closeEpoch settles the output of a mapping epoch which has ended. Symbols
// after the latest accepted match are replayed by the mapping walker and are
// withdrawn from the output. Input which has not been accepted by the rule
// walker is passed through unchanged.
func (e *Engine) closeEpoch(out []Result) []Result {
	c := e.cur
	e.cur = mappingEpoch{}
	switch {
	case c.stepped:
		return e.publish(false, out)
	case c.matched > 0:
		return e.identity(string(c.inputs[:c.matched]), out)
	}
	return e.identity(string(c.inputs), out)
}

func (e *Engine) compose(candidates []rules.MappingOutput, out []Result) []Result {
	edge, token, ok := accepting(e.rule.Node(), candidates)
	if !ok && !e.rule.AtRoot() {
		if edge, token, ok = accepting(e.rule.Node().Root(), candidates); ok {
			out = e.publish(false, out)
			e.resetRules()
		}
	}
	if !ok {
		tracer().Debugf("no rule accepts any of %v", candidates)
		return e.publish(true, out)
	}
	results := e.rule.Walk(edge)
	assert(len(results) == 1 && results[0].Type != trie.NoMappedOutput,
		"rule walker rejected an edge present in the rule trie")
	s := step{input: string(e.cur.inputs), token: token, edge: edge}
	if results[0].Type == trie.MappedOutput {
		s.output = results[0].Output
	}
	e.steps = append(e.steps, s)
	e.cur.stepped = true
	return e.publish(true, out)
}

// accepting returns the first candidate with an edge from n, preferring an
// edge for the specific token over the wildcard edge for its type.
func accepting(n trie.Node[rules.RuleInput, *rules.RuleOutput], candidates []rules.MappingOutput) (
	rules.RuleInput, rules.MappingOutput, bool) {
	for _, c := range candidates {
		specific := rules.RuleInput{Type: c.Type, Key: c.Key}
		if _, ok := n.Child(specific); ok {
			return specific, c, true
		}
		wildcard := rules.RuleInput{Type: c.Type}
		if _, ok := n.Child(wildcard); ok {
			return wildcard, c, true
		}
	}
	return rules.RuleInput{}, rules.MappingOutput{}, false
}

// identity emits text as a finished composition of its own and restarts the
// rule walk.
func (e *Engine) identity(text string, out []Result) []Result {
	base := e.segments(false)
	if len(base) > 0 {
		out = e.view.publish(base, e.rule.Epoch(), out)
	}
	out = e.view.identity(text, e.rule.Epoch(), len(base) == 0, out)
	e.resetRules()
	return out
}

func (e *Engine) publish(withPending bool, out []Result) []Result {
	return e.view.publish(e.segments(withPending), e.rule.Epoch(), out)
}

// segments renders the current composition. The longest prefix of steps
// ending in a complete rule is rendered by that rule's template, every step
// after it contributes its raw token output. Pending input symbols follow
// unchanged.
func (e *Engine) segments(withPending bool) []segment {
	var segs []segment
	last := -1
	for i := len(e.steps) - 1; i >= 0; i-- {
		if e.steps[i].output != nil {
			last = i
			break
		}
	}
	if last >= 0 {
		var repl rules.Replacements
		var input strings.Builder
		for _, s := range e.steps[:last+1] {
			input.WriteString(s.input)
			if s.edge.IsWildcard() {
				repl.Add(s.token.Type, s.token.Output)
			}
		}
		segs = append(segs, segment{
			input:    input.String(),
			output:   e.steps[last].output.Generate(&repl),
			composed: true,
		})
	}
	for _, s := range e.steps[last+1:] {
		segs = append(segs, segment{input: s.input, output: s.token.Output})
	}
	if withPending && e.cur.valid {
		for _, r := range e.cur.pending() {
			segs = append(segs, segment{input: string(r), output: string(r)})
		}
	}
	return segs
}
