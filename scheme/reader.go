package scheme

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMalformedLine is returned for lines of mapping files which cannot be
// parsed.
var ErrMalformedLine = errors.New("malformed line")

func isComment(line string) bool {
	return line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "#")
}

// MappingReader streams (type, key, value) entries from a scheme or script
// file.
type MappingReader struct {
	scanner *bufio.Scanner
	name    string
	line    int
}

// NewMappingReader creates a reader for the mapping file name, read from
// reader. name is used in error messages only.
func NewMappingReader(name string, reader io.Reader) *MappingReader {
	return &MappingReader{
		scanner: bufio.NewScanner(reader),
		name:    name,
	}
}

// Next returns the next entry as (type, key, value).
// It returns io.EOF when exhausted.
func (r *MappingReader) Next() (string, string, string, error) {
	for r.scanner.Scan() {
		r.line++
		line := strings.TrimSpace(r.scanner.Text())
		if isComment(line) {
			continue
		}
		columns := strings.Split(line, "\t")
		if len(columns) != 3 {
			return "", "", "", fmt.Errorf("%w: %s:%d: expected 3 tab separated columns, have %d",
				ErrMalformedLine, r.name, r.line, len(columns))
		}
		for i := range columns {
			columns[i] = strings.TrimSpace(columns[i])
			if columns[i] == "" {
				return "", "", "", fmt.Errorf("%w: %s:%d: empty column %d",
					ErrMalformedLine, r.name, r.line, i+1)
			}
		}
		return columns[0], columns[1], columns[2], nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", "", "", err
	}
	return "", "", "", io.EOF
}

// LineKind tells rule lines from directives of a rule file.
type LineKind int8

const (
	RuleLine LineKind = iota
	SchemeDirective
	ScriptDirective
	IncludeDirective
)

var directives = []struct {
	prefix string
	kind   LineKind
}{
	{"Scheme:", SchemeDirective},
	{"Script:", ScriptDirective},
	{"Rule:", IncludeDirective},
}

// Line is an entry of a rule file.
type Line struct {
	Kind  LineKind
	Text  string   // rule text for RuleLine
	Names []string // file names for directives
	No    int      // line number
}

// RuleReader streams lines from a rule file.
type RuleReader struct {
	scanner *bufio.Scanner
	name    string
	line    int
}

// NewRuleReader creates a reader for the rule file name, read from reader.
func NewRuleReader(name string, reader io.Reader) *RuleReader {
	return &RuleReader{
		scanner: bufio.NewScanner(reader),
		name:    name,
	}
}

// Next returns the next rule line or directive.
// It returns io.EOF when exhausted.
func (r *RuleReader) Next() (Line, error) {
	for r.scanner.Scan() {
		r.line++
		text := strings.TrimRight(r.scanner.Text(), " \r")
		trimmed := strings.TrimSpace(text)
		if isComment(trimmed) {
			continue
		}
		for _, d := range directives {
			if !strings.HasPrefix(trimmed, d.prefix) {
				continue
			}
			names, err := splitNames(trimmed[len(d.prefix):])
			if err != nil {
				return Line{}, fmt.Errorf("%w: %s:%d: %v", ErrMalformedLine, r.name, r.line, err)
			}
			return Line{Kind: d.kind, Names: names, No: r.line}, nil
		}
		return Line{Kind: RuleLine, Text: trimmed, No: r.line}, nil
	}
	if err := r.scanner.Err(); err != nil {
		return Line{}, err
	}
	return Line{}, io.EOF
}

func splitNames(list string) ([]string, error) {
	var names []string
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("empty name in directive")
		}
		names = append(names, name)
	}
	return names, nil
}
