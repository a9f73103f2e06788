package custom

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/npillmayer/translit/trie"
)

// ErrMalformedMapping is returned for custom mapping files which cannot be
// parsed.
var ErrMalformedMapping = errors.New("malformed custom mapping")

// Extension is the file extension of custom mapping files.
const Extension = ".scm"

// Mapping is a parsed custom mapping.
type Mapping struct {
	Name       string
	Version    float64
	StopSymbol rune
	reverse    bool
	trie       *trie.Trie[rune, string]
}

// Trie returns the trie of m, ready to be used by an engine.
func (m *Mapping) Trie() *trie.Trie[rune, string] {
	return m.trie
}

// IsReverse is true for mappings decomposing output text.
func (m *Mapping) IsReverse() bool {
	return m.reverse
}

// Overlay adds the mappings of other to m. Mappings of other win over
// mappings of m for the same input.
func (m *Mapping) Overlay(other *Mapping) error {
	if other.reverse != m.reverse {
		return fmt.Errorf("cannot overlay %q onto %q: direction differs", other.Name, m.Name)
	}
	m.trie.Merge(other.trie, func(key []rune, old, new string) string {
		tracer().Infof("mapping %q overrides %q: %q → %q", other.Name, string(key), old, new)
		return new
	})
	return nil
}

// Available lists the names of all custom mapping files in fsys.
func Available(fsys fs.FS) ([]string, error) {
	files, err := fs.Glob(fsys, "*"+Extension)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, strings.TrimSuffix(path.Base(f), Extension))
	}
	sort.Strings(names)
	return names, nil
}

// Load parses the custom mapping name from fsys.
func Load(fsys fs.FS, name string, reverse bool) (*Mapping, error) {
	f, err := fsys.Open(name + Extension)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(name, f, reverse)
}

// Parse reads a custom mapping from reader. name is the default name of the
// mapping if the headers do not define one.
func Parse(name string, reader io.Reader, reverse bool) (*Mapping, error) {
	p := &parser{
		mapping: &Mapping{
			Name:       name,
			StopSymbol: '\\',
			reverse:    reverse,
			trie:       trie.New[rune, string](),
		},
		file:       name + Extension,
		classStart: '{',
		classEnd:   '}',
		wildcard:   '*',
		classes:    make(map[string]*class),
	}
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		p.line++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := p.parseLine(line); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if p.current != "" {
		return nil, p.errorf("class %q is never closed", p.current)
	}
	tracer().Infof("custom mapping %q: %d entries", p.mapping.Name, p.mapping.trie.Size())
	return p.mapping, nil
}

type class struct {
	keys   []string
	values map[string]string
}

type parser struct {
	mapping      *Mapping
	file         string
	line         int
	inMappings   bool // headers are done
	usingClasses bool
	classStart   rune
	classEnd     rune
	wildcard     rune
	current      string // class being defined
	classes      map[string]*class
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s:%d: %s", ErrMalformedMapping, p.file, p.line, fmt.Sprintf(format, args...))
}

func (p *parser) parseLine(line string) error {
	if !p.inMappings {
		if key, value, ok := splitHeader(line); ok {
			return p.header(key, value)
		}
		if fields := strings.Fields(line); len(fields) == 2 && fields[0] == "using" && fields[1] == "classes" {
			p.usingClasses = true
			return nil
		}
		p.inMappings = true
	}
	return p.mappingLine(line)
}

func splitHeader(line string) (string, string, bool) {
	i := strings.IndexByte(line, ':')
	if i < 0 {
		return "", "", false
	}
	key := strings.TrimSpace(line[:i])
	value := strings.TrimSpace(line[i+1:])
	if key == "" || value == "" {
		return "", "", false
	}
	return strings.ToLower(key), value, true
}

func (p *parser) header(key, value string) error {
	switch key {
	case "name":
		p.mapping.Name = value
	case "version":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return p.errorf("version has to be a number, is %q", value)
		}
		p.mapping.Version = v
	case "stop-char":
		r, ok := singleRune(value)
		if !ok {
			return p.errorf("stop-char has to be a single character, is %q", value)
		}
		p.mapping.StopSymbol = r
	case "wildcard":
		r, ok := singleRune(value)
		if !ok {
			return p.errorf("wildcard has to be a single character, is %q", value)
		}
		p.wildcard = r
	case "class-delimiters":
		fields := strings.Fields(value)
		if len(fields) != 2 {
			return p.errorf("invalid class delimiters %q", value)
		}
		start, ok1 := singleRune(fields[0])
		end, ok2 := singleRune(fields[1])
		if !ok1 || !ok2 {
			return p.errorf("invalid class delimiters %q", value)
		}
		p.classStart, p.classEnd = start, end
	default:
		return p.errorf("invalid header %q", key)
	}
	return nil
}

func singleRune(s string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(s)
	return r, size > 0 && size == len(s) && r != utf8.RuneError
}

func (p *parser) mappingLine(line string) error {
	fields := strings.Fields(line)
	switch {
	case len(fields) == 2:
		return p.mappingEntry(fields[0], fields[1])
	case len(fields) == 3 && fields[0] == "class" && fields[2] == string(p.classStart):
		if !p.usingClasses {
			return p.errorf("class %q defined without 'using classes'", fields[1])
		}
		if p.current != "" {
			return p.errorf("class %q opened before class %q is closed", fields[1], p.current)
		}
		p.current = fields[1]
		if _, ok := p.classes[p.current]; !ok {
			p.classes[p.current] = &class{values: make(map[string]string)}
		}
		return nil
	case line == string(p.classEnd):
		if p.current == "" {
			return p.errorf("closing a class which has never been opened")
		}
		p.current = ""
		return nil
	}
	return p.errorf("malformed mapping %q", line)
}

func (p *parser) mappingEntry(input, output string) error {
	pre, name, post, isClassKey := p.splitClassKey(input)
	if !isClassKey {
		if p.current != "" {
			c := p.classes[p.current]
			if _, exists := c.values[input]; !exists {
				c.keys = append(c.keys, input)
			}
			c.values[input] = output
			return nil
		}
		p.add(input, output)
		return nil
	}
	if !p.usingClasses {
		return p.errorf("class %q used without 'using classes'", name)
	}
	if name == p.current {
		return p.errorf("class %q used inside its own definition", name)
	}
	c, ok := p.classes[name]
	if !ok {
		return p.errorf("class %q is undefined", name)
	}
	if i := strings.IndexRune(output, p.wildcard); i >= 0 {
		preW, postW := output[:i], output[i+utf8.RuneLen(p.wildcard):]
		for _, k := range c.keys {
			p.add(pre+k+post, preW+c.values[k]+postW)
		}
		return nil
	}
	for _, k := range c.keys {
		p.add(pre+k+post, output)
	}
	return nil
}

// splitClassKey splits inputs of the form pre{class}post.
func (p *parser) splitClassKey(input string) (string, string, string, bool) {
	i := strings.IndexRune(input, p.classStart)
	if i < 0 {
		return "", "", "", false
	}
	rest := input[i+utf8.RuneLen(p.classStart):]
	j := strings.IndexRune(rest, p.classEnd)
	if j <= 0 {
		return "", "", "", false
	}
	return input[:i], rest[:j], rest[j+utf8.RuneLen(p.classEnd):], true
}

func (p *parser) add(input, output string) {
	if p.mapping.reverse {
		// reverse mappings read decomposed script text
		p.mapping.trie.Set(reversed(norm.NFD.String(output)), string(reversed(input)))
		return
	}
	p.mapping.trie.Set([]rune(input), output)
}

func reversed(s string) []rune {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return r
}
