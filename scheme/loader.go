package scheme

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/npillmayer/translit/rules"
)

// ErrUnknownSelection is returned if a scheme or script is not available.
var ErrUnknownSelection = errors.New("unknown scheme or script")

const (
	schemeDir   = "Scheme"
	scriptDir   = "Script"
	schemeExt   = ".scheme"
	scriptExt   = ".script"
	ruleExt     = ".rule"
	defaultRule = "Default"
)

// Loader reads mappings from a mapping directory.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a loader for the mapping directory fsys.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// AvailableSchemes lists the names of all scheme files.
func (l *Loader) AvailableSchemes() ([]string, error) {
	return l.available(schemeDir, schemeExt)
}

// AvailableScripts lists the names of all script files.
func (l *Loader) AvailableScripts() ([]string, error) {
	return l.available(scriptDir, scriptExt)
}

func (l *Loader) available(dir, ext string) ([]string, error) {
	files, err := fs.Glob(l.fsys, path.Join(dir, "*"+ext))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, strings.TrimSuffix(path.Base(f), ext))
	}
	sort.Strings(names)
	return names, nil
}

// Rules loads forward rules transliterating scheme to script.
func (l *Loader) Rules(scheme, script string) (*rules.Rules, error) {
	table, lines, err := l.Parse(scheme, script)
	if err != nil {
		return nil, err
	}
	return rules.New(table, lines)
}

// ReverseRules loads reverse rules transliterating script to scheme.
func (l *Loader) ReverseRules(scheme, script string) (*rules.Rules, error) {
	table, lines, err := l.Parse(scheme, script)
	if err != nil {
		return nil, err
	}
	return rules.NewReverse(table, lines)
}

// Parse reads the mapping table and the rule lines for a pair of scheme
// and script.
func (l *Loader) Parse(scheme, script string) (*rules.Table, []rules.Line, error) {
	if err := l.check(scheme, l.AvailableSchemes); err != nil {
		return nil, nil, err
	}
	if err := l.check(script, l.AvailableScripts); err != nil {
		return nil, nil, err
	}
	p := &parse{
		loader:  l,
		schemes: newLayer(),
		scripts: newLayer(),
		seen:    make(map[string]bool),
	}
	if err := p.overlay(p.schemes, schemeDir, scheme, schemeExt); err != nil {
		return nil, nil, err
	}
	if err := p.overlay(p.scripts, scriptDir, script, scriptExt); err != nil {
		return nil, nil, err
	}
	ruleName := script + "-" + scheme
	if _, err := fs.Stat(l.fsys, ruleName+ruleExt); err != nil {
		ruleName = defaultRule
	}
	if err := p.ruleFile(ruleName); err != nil {
		return nil, nil, err
	}
	table, err := p.table()
	if err != nil {
		return nil, nil, err
	}
	tracer().Infof("%s/%s: %d mappings, %d rule lines", scheme, script, table.Len(), len(p.lines))
	return table, p.lines, nil
}

func (l *Loader) check(name string, available func() ([]string, error)) error {
	names, err := available()
	if err != nil {
		return err
	}
	for _, n := range names {
		if n == name {
			return nil
		}
	}
	return fmt.Errorf("%w: %q not in %v", ErrUnknownSelection, name, names)
}

type parse struct {
	loader  *Loader
	schemes *layer
	scripts *layer
	lines   []rules.Line
	seen    map[string]bool // rule files on the include path
}

func (p *parse) overlay(into *layer, dir, name, ext string) error {
	file := path.Join(dir, name+ext)
	f, err := p.loader.fsys.Open(file)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnknownSelection, err)
	}
	defer f.Close()
	r := NewMappingReader(file, f)
	for {
		typ, key, value, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		into.set(typ, key, value)
	}
}

func (p *parse) ruleFile(name string) error {
	if p.seen[name] {
		return fmt.Errorf("%w: rule file %s includes itself", ErrMalformedLine, name)
	}
	p.seen[name] = true
	defer delete(p.seen, name)
	file := name + ruleExt
	f, err := p.loader.fsys.Open(file)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnknownSelection, err)
	}
	defer f.Close()
	r := NewRuleReader(file, f)
	for {
		line, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch line.Kind {
		case RuleLine:
			p.lines = append(p.lines, rules.Line{Text: line.Text, File: file, No: line.No})
		case SchemeDirective:
			for _, n := range line.Names {
				if err := p.overlay(p.schemes, schemeDir, n, schemeExt); err != nil {
					return err
				}
			}
		case ScriptDirective:
			for _, n := range line.Names {
				if err := p.overlay(p.scripts, scriptDir, n, scriptExt); err != nil {
					return err
				}
			}
		case IncludeDirective:
			for _, n := range line.Names {
				if err := p.ruleFile(n); err != nil {
					return err
				}
			}
		}
	}
}

// table joins scheme spellings and script code points. The order of the
// table follows the scheme files.
func (p *parse) table() (*rules.Table, error) {
	table := rules.NewTable()
	var err error
	p.schemes.each(func(typ, key, value string) {
		if err != nil {
			return
		}
		m := rules.Mapping{Scheme: splitSpellings(value)}
		if codepoints, ok := p.scripts.get(typ, key); ok {
			if m.Script, err = decodeCodepoints(codepoints); err != nil {
				err = fmt.Errorf("%w: script of %s/%s: %v", ErrMalformedLine, typ, key, err)
				return
			}
		}
		table.Set(typ, key, m)
	})
	return table, err
}

func splitSpellings(value string) []string {
	var spellings []string
	for _, s := range strings.Split(value, ",") {
		if s = strings.TrimSpace(s); s != "" {
			spellings = append(spellings, s)
		}
	}
	return spellings
}

func decodeCodepoints(value string) (string, error) {
	var sb strings.Builder
	for _, hex := range strings.Split(value, ",") {
		cp, err := strconv.ParseUint(strings.TrimSpace(hex), 16, 32)
		if err != nil {
			return "", err
		}
		sb.WriteRune(rune(cp))
	}
	return norm.NFC.String(sb.String()), nil
}

// --- Layers ----------------------------------------------------------------

// layer is an ordered map type → key → value. Setting an existing pair
// moves it to the end.
type layer struct {
	types  []string
	byType map[string]*layerRow
}

type layerRow struct {
	keys   []string
	values map[string]string
}

func newLayer() *layer {
	return &layer{byType: make(map[string]*layerRow)}
}

func (l *layer) set(typ, key, value string) {
	row, ok := l.byType[typ]
	if !ok {
		row = &layerRow{values: make(map[string]string)}
		l.byType[typ] = row
		l.types = append(l.types, typ)
	}
	if _, exists := row.values[key]; exists {
		for i, k := range row.keys {
			if k == key {
				row.keys = append(row.keys[:i], row.keys[i+1:]...)
				break
			}
		}
	}
	row.keys = append(row.keys, key)
	row.values[key] = value
}

func (l *layer) get(typ, key string) (string, bool) {
	if row, ok := l.byType[typ]; ok {
		v, ok := row.values[key]
		return v, ok
	}
	return "", false
}

func (l *layer) each(fn func(typ, key, value string)) {
	for _, typ := range l.types {
		row := l.byType[typ]
		for _, key := range row.keys {
			fn(typ, key, row.values[key])
		}
	}
}
