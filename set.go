package coretmpl

import (
	"fmt"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/coretmpl/literal"
)

// SetMatch is a match of one member of a Set.
type SetMatch struct {
	// Name is the member name given to SetBuilder.
	Name string

	// Index is the member position in insertion order.
	Index int

	*Match
}

// Set is a read-only, ordered collection of named templates.
//
// A Set is safe to use concurrently from multiple goroutines.
//
// Example:
//
//	b := coretmpl.NewSetBuilder(coretmpl.DefaultConfig())
//	_ = b.AddContexts("assign", []string{"", "=", ""})
//	_ = b.AddContexts("call", []string{"", "(", ")"})
//	set, _ := b.Build()
//	m := set.Match("f(x)")
//	// m.Name == "call", m.Groups() == [f x]
type Set struct {
	names     []string
	templates []Template
	byName    map[string]int
	prefilter *ahocorasick.Automaton
}

// SetBuilder collects named templates for a Set.
type SetBuilder struct {
	config    Config
	names     []string
	templates []Template
	byName    map[string]int
}

// NewSetBuilder returns an empty builder using config.
func NewSetBuilder(config Config) *SetBuilder {
	return &SetBuilder{
		config: config,
		byName: make(map[string]int),
	}
}

// Add appends tmpl under name. Names must be non-empty and unique.
func (b *SetBuilder) Add(name string, tmpl Template) error {
	if name == "" {
		return ErrEmptyName
	}
	if _, ok := b.byName[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	if limit := b.config.MaxTemplates; limit > 0 && len(b.templates) >= limit {
		return fmt.Errorf("%w: limit is %d", ErrTooManyTemplates, limit)
	}
	b.byName[name] = len(b.templates)
	b.names = append(b.names, name)
	b.templates = append(b.templates, tmpl)
	return nil
}

// AddContexts builds a template of the configured kind from contexts and adds it.
func (b *SetBuilder) AddContexts(name string, contexts []string) error {
	tmpl, err := FromContexts(b.config.Kind, contexts)
	if err != nil {
		return fmt.Errorf("template %q: %w", name, err)
	}
	return b.Add(name, tmpl)
}

// AddRegex builds a template of the configured kind from regex source and adds it.
func (b *SetBuilder) AddRegex(name, pattern string) error {
	tmpl, err := FromRegex(b.config.Kind, pattern)
	if err != nil {
		return fmt.Errorf("template %q: %w", name, err)
	}
	return b.Add(name, tmpl)
}

// Build validates the configuration and freezes the collected templates.
//
// The builder may be reused afterwards; the Set does not share its slices.
func (b *SetBuilder) Build() (*Set, error) {
	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	s := &Set{
		names:     append([]string(nil), b.names...),
		templates: append([]Template(nil), b.templates...),
		byName:    make(map[string]int, len(b.byName)),
	}
	for name, i := range b.byName {
		s.byName[name] = i
	}

	if b.config.Prefilter {
		s.prefilter = buildPrefilter(s.templates)
	}
	return s, nil
}

// buildPrefilter returns nil when some member could match a text that
// contains none of the leading contexts.
func buildPrefilter(templates []Template) *ahocorasick.Automaton {
	if len(templates) == 0 {
		return nil
	}

	seq := literal.NewSeq()
	for _, tmpl := range templates {
		ct, ok := tmpl.(*ContextsTemplate)
		if !ok {
			return nil
		}
		seq.Add(ct.contexts[0])
	}
	if seq.ContainsEmpty() {
		return nil
	}

	builder := ahocorasick.NewBuilder()
	for i := 0; i < seq.Len(); i++ {
		builder.AddPattern([]byte(seq.Get(i)))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return auto
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.templates)
}

// Names returns member names in insertion order.
func (s *Set) Names() []string {
	return append([]string(nil), s.names...)
}

// Get returns the member called name.
func (s *Set) Get(name string) (Template, bool) {
	i, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return s.templates[i], true
}

// Prefiltered reports whether matching is guarded by the literal prefilter.
func (s *Set) Prefiltered() bool {
	return s.prefilter != nil
}

// Match returns the first member, in insertion order, that matches text.
// Returns nil if no member matches.
func (s *Set) Match(text string) *SetMatch {
	if !s.candidate(text) {
		return nil
	}
	for i, tmpl := range s.templates {
		if m := tmpl.TryMatch(text); m != nil {
			return &SetMatch{Name: s.names[i], Index: i, Match: m}
		}
	}
	return nil
}

// MatchAll returns a match for every member that matches text, in insertion order.
func (s *Set) MatchAll(text string) []SetMatch {
	if !s.candidate(text) {
		return nil
	}
	var matches []SetMatch
	for i, tmpl := range s.templates {
		if m := tmpl.TryMatch(text); m != nil {
			matches = append(matches, SetMatch{Name: s.names[i], Index: i, Match: m})
		}
	}
	return matches
}

func (s *Set) candidate(text string) bool {
	if s.prefilter == nil {
		return true
	}
	return s.prefilter.IsMatch([]byte(text))
}
