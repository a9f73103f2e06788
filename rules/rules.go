package rules

import (
	"fmt"
	"sort"
	"strings"

	dtrie "github.com/derekparker/trie"
	"golang.org/x/text/unicode/norm"

	"github.com/npillmayer/translit/trie"
)

// MappingTrie maps spellings to candidate tokens. Candidates are ordered
// as in the mapping table.
type MappingTrie = trie.Trie[rune, []MappingOutput]

// RuleTrie maps sequences of rule inputs to output templates.
type RuleTrie = trie.Trie[RuleInput, *RuleOutput]

// Rules is the compiled mapping model of one transliteration direction.
// Rules are immutable after construction and may be shared between engines.
type Rules struct {
	reverse   bool
	mapping   *MappingTrie
	rules     *RuleTrie
	spellings *dtrie.Trie // spelling → []MappingOutput
	ruleCount int
}

func newRules(reverse bool) *Rules {
	return &Rules{
		reverse:   reverse,
		mapping:   trie.New[rune, []MappingOutput](),
		rules:     trie.New[RuleInput, *RuleOutput](),
		spellings: dtrie.New(),
	}
}

// New creates forward rules, transliterating scheme text to script text.
// Every scheme spelling of a table entry becomes a key of the mapping trie;
// every non-empty line is parsed as a rule.
func New(table *Table, lines []Line) (*Rules, error) {
	r := newRules(false)
	table.Each(func(typ, key string, m Mapping) {
		for _, spelling := range m.Scheme {
			if spelling == "" {
				continue
			}
			r.addMapping(spelling, MappingOutput{Type: typ, Key: key, Output: m.Script})
		}
	})
	for _, line := range lines {
		if strings.TrimSpace(line.Text) == "" {
			continue
		}
		in, out, err := splitRule(line.Text)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", line.Location(), err)
		}
		inputs := make([]RuleInput, len(in))
		for j, tok := range in {
			inputs[j] = RuleInput{Type: tok.typ, Key: tok.key}
		}
		output, err := forwardOutput(table, out, line.Text)
		if err == nil {
			err = checkPlaceholders(in, output, line.Text)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", line.Location(), err)
		}
		r.addRule(inputs, output)
	}
	tracer().Infof("forward rules: %d mappings, %d rules", r.mapping.Size(), r.ruleCount)
	return r, nil
}

func forwardOutput(table *Table, tokens []token, line string) (*RuleOutput, error) {
	output := &RuleOutput{rule: line}
	for _, tok := range tokens {
		if tok.isType() {
			output.Parts = append(output.Parts, Placeholder(tok.typ))
			continue
		}
		m, ok := table.Get(tok.typ, tok.key)
		if !ok {
			return nil, fmt.Errorf("%w: %s/%s in %q", ErrUnknownMapping, tok.typ, tok.key, line)
		}
		if tok.bracket == '{' {
			spelling, ok := m.Canonical()
			if !ok {
				return nil, fmt.Errorf("%w: %s/%s has no scheme spelling in %q", ErrUnknownMapping, tok.typ, tok.key, line)
			}
			output.Parts = append(output.Parts, Literal(spelling))
			continue
		}
		if m.Script == "" {
			return nil, fmt.Errorf("%w: %s/%s has no script in %q", ErrUnknownMapping, tok.typ, tok.key, line)
		}
		output.Parts = append(output.Parts, Literal(m.Script))
	}
	return output, nil
}

// NewReverse creates reverse rules, decomposing script text into scheme
// text. Script texts of table entries become keys of the mapping trie,
// mapping to the canonical scheme spelling of their entry. Rules are
// inverted: the output template of a forward rule is the input of the
// reverse rule and vice versa. Forward rules producing literal scheme text
// ({TYPE/KEY}) cannot be inverted and are skipped.
func NewReverse(table *Table, lines []Line) (*Rules, error) {
	r := newRules(true)
	table.Each(func(typ, key string, m Mapping) {
		spelling, ok := m.Canonical()
		if m.Script == "" || !ok {
			return
		}
		r.addMapping(Decompose(m.Script), MappingOutput{Type: typ, Key: key, Output: spelling})
	})
	for _, line := range lines {
		if strings.TrimSpace(line.Text) == "" {
			continue
		}
		in, out, err := splitRule(line.Text)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", line.Location(), err)
		}
		inputs, ok := reverseInputs(out)
		if !ok {
			tracer().Debugf("rule %q produces scheme text, not reversible", line.Text)
			continue
		}
		output, err := reverseOutput(table, in, line.Text)
		if err == nil {
			err = checkPlaceholders(out, output, line.Text)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", line.Location(), err)
		}
		r.addRule(inputs, output)
	}
	tracer().Infof("reverse rules: %d mappings, %d rules", r.mapping.Size(), r.ruleCount)
	return r, nil
}

func reverseInputs(tokens []token) ([]RuleInput, bool) {
	inputs := make([]RuleInput, len(tokens))
	for i, tok := range tokens {
		if !tok.isType() && tok.bracket == '{' {
			return nil, false
		}
		inputs[i] = RuleInput{Type: tok.typ, Key: tok.key}
	}
	return inputs, true
}

func reverseOutput(table *Table, tokens []token, line string) (*RuleOutput, error) {
	output := &RuleOutput{rule: line}
	for _, tok := range tokens {
		if tok.isType() {
			output.Parts = append(output.Parts, Placeholder(tok.typ))
			continue
		}
		m, ok := table.Get(tok.typ, tok.key)
		if !ok {
			return nil, fmt.Errorf("%w: %s/%s in %q", ErrUnknownMapping, tok.typ, tok.key, line)
		}
		spelling, ok := m.Canonical()
		if !ok {
			return nil, fmt.Errorf("%w: %s/%s has no scheme spelling in %q", ErrUnknownMapping, tok.typ, tok.key, line)
		}
		output.Parts = append(output.Parts, Literal(spelling))
	}
	return output, nil
}

// checkPlaceholders makes sure every placeholder of output is filled by a
// wildcard token of sources.
func checkPlaceholders(sources []token, output *RuleOutput, line string) error {
	available := make(map[string]int)
	for _, tok := range sources {
		if tok.isType() {
			available[tok.typ]++
		}
	}
	for _, p := range output.Parts {
		if !p.IsPlaceholder() {
			continue
		}
		if available[p.Type] == 0 {
			return fmt.Errorf("%w: %q: placeholder for %s has no matching input", ErrMalformedRule, line, p.Type)
		}
		available[p.Type]--
	}
	return nil
}

// Decompose returns the canonical decomposition (NFD) of script text.
// Reverse rules match script text in this form.
func Decompose(text string) string {
	return norm.NFD.String(text)
}

func (r *Rules) addMapping(spelling string, out MappingOutput) {
	r.mapping.Update([]rune(spelling), func(old []MappingOutput, _ bool) []MappingOutput {
		return append(old, out)
	})
	var candidates []MappingOutput
	if n, ok := r.spellings.Find(spelling); ok {
		candidates, _ = n.Meta().([]MappingOutput)
	}
	r.spellings.Add(spelling, append(candidates, out))
}

func (r *Rules) addRule(inputs []RuleInput, output *RuleOutput) {
	if _, ok := r.rules.Get(inputs); ok {
		tracer().Infof("rule %q overrides an earlier rule with the same input", output.rule)
	} else {
		r.ruleCount++
	}
	r.rules.Set(inputs, output)
}

// IsReverse is true for rules decomposing script text into scheme text.
func (r *Rules) IsReverse() bool {
	return r.reverse
}

// MappingTrie returns the mapping trie of r.
func (r *Rules) MappingTrie() *MappingTrie {
	return r.mapping
}

// RuleTrie returns the rule trie of r.
func (r *Rules) RuleTrie() *RuleTrie {
	return r.rules
}

// Candidates returns the tokens a complete spelling stands for.
func (r *Rules) Candidates(spelling string) []MappingOutput {
	if n, ok := r.spellings.Find(spelling); ok {
		candidates, _ := n.Meta().([]MappingOutput)
		return candidates
	}
	return nil
}

// Completions returns all spellings starting with prefix, in lexical order.
func (r *Rules) Completions(prefix string) []string {
	if prefix == "" {
		return nil
	}
	completions := r.spellings.PrefixSearch(prefix)
	sort.Strings(completions)
	return completions
}
