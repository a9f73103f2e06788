package rules

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedRule is returned for rule lines which cannot be parsed.
var ErrMalformedRule = errors.New("malformed rule")

// ErrUnknownMapping is returned for templates referencing a (type, key) pair
// which is missing in the mapping table.
var ErrUnknownMapping = errors.New("unknown mapping")

// MappingOutput is a candidate token for a matched scheme (or script)
// spelling. Output is the text the token stands for in the target of the
// transliteration and may be empty.
type MappingOutput struct {
	Type   string
	Key    string
	Output string
}

func (mo MappingOutput) String() string {
	return fmt.Sprintf("%s/%s→%q", mo.Type, mo.Key, mo.Output)
}

// RuleInput labels an edge of the rule trie. An empty Key matches any
// token of Type.
type RuleInput struct {
	Type string
	Key  string
}

// IsWildcard is true for inputs matching every key of a type.
func (in RuleInput) IsWildcard() bool {
	return in.Key == ""
}

func (in RuleInput) String() string {
	if in.IsWildcard() {
		return "[" + in.Type + "]"
	}
	return "[" + in.Type + "/" + in.Key + "]"
}

// Part is an element of a rule output template: either literal text or a
// placeholder for a fragment of a given type.
type Part struct {
	Text string
	Type string // non-empty for placeholders
}

// Literal returns a template part for fixed text.
func Literal(text string) Part {
	return Part{Text: text}
}

// Placeholder returns a template part to be filled by a fragment of typ.
func Placeholder(typ string) Part {
	return Part{Type: typ}
}

// IsPlaceholder is true for parts without fixed text.
func (p Part) IsPlaceholder() bool {
	return p.Type != ""
}

// RuleOutput is the output template of a rule.
type RuleOutput struct {
	Parts []Part
	rule  string
}

// String returns the rule line the template has been created from.
func (o *RuleOutput) String() string {
	return o.rule
}

// Generate renders the template. Each placeholder consumes the next unused
// fragment of its type from r, in the order the fragments have been added.
// Placeholders without a fragment render as empty text.
func (o *RuleOutput) Generate(r *Replacements) string {
	used := make(map[string]int)
	var sb strings.Builder
	for _, p := range o.Parts {
		if !p.IsPlaceholder() {
			sb.WriteString(p.Text)
			continue
		}
		fragments := r.Fragments(p.Type)
		i := used[p.Type]
		if i >= len(fragments) {
			tracer().Debugf("no fragment left for placeholder %s in %q", p.Type, o.rule)
			continue
		}
		sb.WriteString(fragments[i])
		used[p.Type] = i + 1
	}
	return sb.String()
}

// Replacements collects the fragments matched by wildcard rule inputs,
// grouped by type.
type Replacements struct {
	types     []string
	fragments map[string][]string
}

// Add appends fragment to the fragments of typ.
func (r *Replacements) Add(typ, fragment string) {
	if r.fragments == nil {
		r.fragments = make(map[string][]string)
	}
	if _, ok := r.fragments[typ]; !ok {
		r.types = append(r.types, typ)
	}
	r.fragments[typ] = append(r.fragments[typ], fragment)
}

// Fragments returns the fragments of typ in the order they have been added.
func (r *Replacements) Fragments(typ string) []string {
	if r == nil {
		return nil
	}
	return r.fragments[typ]
}

func (r *Replacements) String() string {
	var sb strings.Builder
	for i, typ := range r.types {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%q", typ, r.fragments[typ])
	}
	return sb.String()
}

// --- Template parsing ------------------------------------------------------

// token is a bracketed element of a template: [TYPE], {TYPE}, [TYPE/KEY]
// or {TYPE/KEY}.
type token struct {
	bracket byte
	typ     string
	key     string
}

func (tok token) isType() bool {
	return tok.key == ""
}

func parseTemplate(template string) ([]token, error) {
	var tokens []token
	s := strings.TrimSpace(template)
	for len(s) > 0 {
		var closing byte
		switch s[0] {
		case '[':
			closing = ']'
		case '{':
			closing = '}'
		default:
			return nil, fmt.Errorf("unexpected text %q in template %q", s, template)
		}
		end := strings.IndexByte(s, closing)
		if end < 0 {
			return nil, fmt.Errorf("missing %q in template %q", closing, template)
		}
		tok := token{bracket: s[0]}
		content := s[1:end]
		if i := strings.IndexByte(content, '/'); i >= 0 {
			tok.typ = strings.TrimSpace(content[:i])
			tok.key = strings.TrimSpace(content[i+1:])
			if tok.key == "" {
				return nil, fmt.Errorf("empty key in %q of template %q", s[:end+1], template)
			}
		} else {
			tok.typ = strings.TrimSpace(content)
		}
		if tok.typ == "" {
			return nil, fmt.Errorf("empty type in %q of template %q", s[:end+1], template)
		}
		tokens = append(tokens, tok)
		s = strings.TrimSpace(s[end+1:])
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty template")
	}
	return tokens, nil
}

// Line is a rule line together with its origin.
type Line struct {
	Text string
	File string // empty for rules not read from a file
	No   int
}

// Lines numbers rule texts not read from a file.
func Lines(texts ...string) []Line {
	lines := make([]Line, len(texts))
	for i, text := range texts {
		lines[i] = Line{Text: text, No: i + 1}
	}
	return lines
}

// Location names the origin of l for error messages.
func (l Line) Location() string {
	if l.File == "" {
		return fmt.Sprintf("rule #%d", l.No)
	}
	return fmt.Sprintf("%s:%d", l.File, l.No)
}

// splitRule splits a rule line into its input and output templates.
func splitRule(line string) ([]token, []token, error) {
	columns := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	if len(columns) != 2 {
		return nil, nil, fmt.Errorf("%w: %q: expected 2 tab separated columns, have %d",
			ErrMalformedRule, line, len(columns))
	}
	in, err := parseTemplate(columns[0])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %q: input: %v", ErrMalformedRule, line, err)
	}
	out, err := parseTemplate(columns[1])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %q: output: %v", ErrMalformedRule, line, err)
	}
	return in, out, nil
}
