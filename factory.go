package translit

import (
	"fmt"
	"io/fs"
	"sync"

	"github.com/npillmayer/translit/config"
	"github.com/npillmayer/translit/custom"
	"github.com/npillmayer/translit/engine"
	"github.com/npillmayer/translit/rules"
	"github.com/npillmayer/translit/scheme"
)

// Factory creates transliterators and anteliterators for the mappings of a
// file system. Loaded mappings are cached and shared between the engines
// created by a factory.
type Factory struct {
	conf   *config.Config
	loader *scheme.Loader
	custom fs.FS
	mu     sync.Mutex
	cache  map[string]*rules.Rules
}

// NewFactory creates a factory for fsys. Mappings are read from the
// sub-directories of fsys named by conf. If conf is nil, the default
// configuration is used.
func NewFactory(fsys fs.FS, conf *config.Config) (*Factory, error) {
	if conf == nil {
		conf = config.Default()
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	mapping, err := fs.Sub(fsys, conf.MappingDir)
	if err != nil {
		return nil, fmt.Errorf("mapping directory %q: %w", conf.MappingDir, err)
	}
	customs, err := fs.Sub(fsys, conf.CustomDir)
	if err != nil {
		return nil, fmt.Errorf("custom directory %q: %w", conf.CustomDir, err)
	}
	conf.ApplyLogLevel()
	return &Factory{
		conf:   conf,
		loader: scheme.NewLoader(mapping),
		custom: customs,
		cache:  make(map[string]*rules.Rules),
	}, nil
}

// AvailableSchemes lists the names of all input schemes.
func (f *Factory) AvailableSchemes() ([]string, error) {
	return f.loader.AvailableSchemes()
}

// AvailableScripts lists the names of all output scripts.
func (f *Factory) AvailableScripts() ([]string, error) {
	return f.loader.AvailableScripts()
}

// AvailableCustomMappings lists the names of all custom mappings.
func (f *Factory) AvailableCustomMappings() ([]string, error) {
	return custom.Available(f.custom)
}

// Transliterator creates a transliterator from scheme to script.
func (f *Factory) Transliterator(schemeName, scriptName string) (*Transliterator, error) {
	r, err := f.rules(schemeName, scriptName, false)
	if err != nil {
		return nil, err
	}
	return NewTransliterator(engine.New(r), f.conf.Stop(), f.conf.Escape()), nil
}

// Anteliterator creates an anteliterator from script back to scheme.
func (f *Factory) Anteliterator(schemeName, scriptName string) (*Anteliterator, error) {
	forward, err := f.rules(schemeName, scriptName, false)
	if err != nil {
		return nil, err
	}
	reverse, err := f.rules(schemeName, scriptName, true)
	if err != nil {
		return nil, err
	}
	verify := NewTransliterator(engine.New(forward), f.conf.Stop(), 0)
	return NewAnteliterator(engine.New(reverse), verify, false), nil
}

// CustomTransliterator creates a transliterator for the custom mapping name.
// The stop symbol is the one of the mapping.
func (f *Factory) CustomTransliterator(name string) (*Transliterator, error) {
	m, err := custom.Load(f.custom, name, false)
	if err != nil {
		return nil, err
	}
	escape := f.conf.Escape()
	if escape == m.StopSymbol {
		escape = 0
	}
	return NewTransliterator(engine.NewCustom(m.Trie()), m.StopSymbol, escape), nil
}

// CustomAnteliterator creates an anteliterator for the custom mapping name.
func (f *Factory) CustomAnteliterator(name string) (*Anteliterator, error) {
	forward, err := custom.Load(f.custom, name, false)
	if err != nil {
		return nil, err
	}
	reverse, err := custom.Load(f.custom, name, true)
	if err != nil {
		return nil, err
	}
	verify := NewTransliterator(engine.NewCustom(forward.Trie()), forward.StopSymbol, 0)
	return NewAnteliterator(engine.NewCustom(reverse.Trie()), verify, true), nil
}

func (f *Factory) rules(schemeName, scriptName string, reverse bool) (*rules.Rules, error) {
	key := fmt.Sprintf("%s/%s/%t", schemeName, scriptName, reverse)
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.cache[key]; ok {
		return r, nil
	}
	load := f.loader.Rules
	if reverse {
		load = f.loader.ReverseRules
	}
	r, err := load(schemeName, scriptName)
	if err != nil {
		return nil, err
	}
	f.cache[key] = r
	return r, nil
}
