package engine

import (
	"fmt"
	"sort"
	"sync"
)

// Factory functions build engine handles on first use. Model-backed
// engines are expensive to initialize, so the registry constructs each
// named engine exactly once and shares the handle across requests.
type (
	DiarizerFactory    func() (Diarizer, error)
	TranscriberFactory func() (Transcriber, error)
	TranslatorFactory  func() (Translator, error)
)

// Registry is the explicit engine handle object constructed once at
// process start and injected into the pipeline. It replaces hidden
// package-global singletons while preserving the load-once contract.
type Registry struct {
	mu sync.Mutex

	diarizerFactories    map[string]DiarizerFactory
	transcriberFactories map[string]TranscriberFactory
	translatorFactories  map[string]TranslatorFactory

	diarizers    map[string]Diarizer
	transcribers map[string]Transcriber
	translators  map[string]Translator
}

// NewRegistry creates an empty engine registry.
func NewRegistry() *Registry {
	return &Registry{
		diarizerFactories:    make(map[string]DiarizerFactory),
		transcriberFactories: make(map[string]TranscriberFactory),
		translatorFactories:  make(map[string]TranslatorFactory),
		diarizers:            make(map[string]Diarizer),
		transcribers:         make(map[string]Transcriber),
		translators:          make(map[string]Translator),
	}
}

// RegisterDiarizer registers a named diarizer factory. Duplicate names
// are rejected.
func (r *Registry) RegisterDiarizer(name string, factory DiarizerFactory) error {
	if name == "" {
		return fmt.Errorf("diarizer name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("diarizer factory cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.diarizerFactories[name]; exists {
		return fmt.Errorf("diarizer '%s' already registered", name)
	}
	r.diarizerFactories[name] = factory
	return nil
}

// RegisterTranscriber registers a named transcriber factory.
func (r *Registry) RegisterTranscriber(name string, factory TranscriberFactory) error {
	if name == "" {
		return fmt.Errorf("transcriber name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("transcriber factory cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.transcriberFactories[name]; exists {
		return fmt.Errorf("transcriber '%s' already registered", name)
	}
	r.transcriberFactories[name] = factory
	return nil
}

// RegisterTranslator registers a named translator factory.
func (r *Registry) RegisterTranslator(name string, factory TranslatorFactory) error {
	if name == "" {
		return fmt.Errorf("translator name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("translator factory cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.translatorFactories[name]; exists {
		return fmt.Errorf("translator '%s' already registered", name)
	}
	r.translatorFactories[name] = factory
	return nil
}

// Diarizer returns the named diarizer, constructing it on first use.
func (r *Registry) Diarizer(name string) (Diarizer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.diarizers[name]; ok {
		return d, nil
	}
	factory, ok := r.diarizerFactories[name]
	if !ok {
		return nil, fmt.Errorf("diarizer '%s' not registered", name)
	}
	d, err := factory()
	if err != nil {
		return nil, fmt.Errorf("initializing diarizer '%s': %w", name, err)
	}
	r.diarizers[name] = d
	return d, nil
}

// Transcriber returns the named transcriber, constructing it on first use.
func (r *Registry) Transcriber(name string) (Transcriber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.transcribers[name]; ok {
		return t, nil
	}
	factory, ok := r.transcriberFactories[name]
	if !ok {
		return nil, fmt.Errorf("transcriber '%s' not registered", name)
	}
	t, err := factory()
	if err != nil {
		return nil, fmt.Errorf("initializing transcriber '%s': %w", name, err)
	}
	r.transcribers[name] = t
	return t, nil
}

// Translator returns the named translator, constructing it on first use.
func (r *Registry) Translator(name string) (Translator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.translators[name]; ok {
		return t, nil
	}
	factory, ok := r.translatorFactories[name]
	if !ok {
		return nil, fmt.Errorf("translator '%s' not registered", name)
	}
	t, err := factory()
	if err != nil {
		return nil, fmt.Errorf("initializing translator '%s': %w", name, err)
	}
	r.translators[name] = t
	return t, nil
}

// List returns the registered engine names grouped by kind, sorted for
// stable output.
func (r *Registry) List() map[string][]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := map[string][]string{
		"diarizers":    {},
		"transcribers": {},
		"translators":  {},
	}
	for name := range r.diarizerFactories {
		out["diarizers"] = append(out["diarizers"], name)
	}
	for name := range r.transcriberFactories {
		out["transcribers"] = append(out["transcribers"], name)
	}
	for name := range r.translatorFactories {
		out["translators"] = append(out["translators"], name)
	}
	for _, names := range out {
		sort.Strings(names)
	}
	return out
}
