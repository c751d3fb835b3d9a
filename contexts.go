package coretmpl

import (
	"github.com/coregx/coretmpl/literal"
)

// ContextsTemplate matches by searching for each context in order.
//
// The first context is searched for from the start of the text; each
// following context is searched for right after the previous one, and the
// text skipped over becomes the next group. An empty last context captures
// the rest of the text.
//
// Matching costs at most one literal.Index scan per context.
//
// The zero value has no contexts and matches nothing; it is only useful as
// a target for UnmarshalJSON.
type ContextsTemplate struct {
	contexts []string
}

// NewContextsTemplate creates a template from contexts.
//
// The slice is copied. Returns ErrEmptyContexts if contexts is empty.
func NewContextsTemplate(contexts []string) (*ContextsTemplate, error) {
	if len(contexts) == 0 {
		return nil, ErrEmptyContexts
	}
	owned := make([]string, len(contexts))
	copy(owned, contexts)
	return &ContextsTemplate{contexts: owned}, nil
}

// TryMatch locates the template in text.
// Returns nil if any context cannot be found.
//
// Example:
//
//	tmpl, _ := coretmpl.NewContextsTemplate([]string{"a", "b"})
//	m := tmpl.TryMatch("ab")
//	// m.Groups() == [""]
func (t *ContextsTemplate) TryMatch(text string) *Match {
	if len(t.contexts) == 0 {
		return nil
	}
	first := t.contexts[0]
	start := literal.Index(text, first, 0)
	if start < 0 {
		return nil
	}
	i := start + len(first)

	numVars := len(t.contexts) - 1
	if numVars == 0 {
		return newMatch(start, i, []string{})
	}

	groups := make([]string, numVars)
	for k := 1; k < numVars; k++ {
		ctx := t.contexts[k]
		j := literal.Index(text, ctx, i)
		if j < 0 {
			return nil
		}
		groups[k-1] = text[i:j]
		i = j + len(ctx)
	}

	last := t.contexts[numVars]
	if last == "" {
		groups[numVars-1] = text[i:]
		return newMatch(start, len(text), groups)
	}

	j := literal.Index(text, last, i)
	if j < 0 {
		return nil
	}
	groups[numVars-1] = text[i:j]
	return newMatch(start, j+len(last), groups)
}

// Copy returns an independent template with the same contexts.
func (t *ContextsTemplate) Copy() Template {
	owned := make([]string, len(t.contexts))
	copy(owned, t.contexts)
	return &ContextsTemplate{contexts: owned}
}

// Contexts returns a copy of the contexts.
func (t *ContextsTemplate) Contexts() []string {
	out := make([]string, len(t.contexts))
	copy(out, t.contexts)
	return out
}

// Regex returns the regex form of the contexts, or "" for the zero value.
func (t *ContextsTemplate) Regex() string {
	// Only the zero value has no contexts.
	regex, _ := ContextsToRegex(t.contexts)
	return regex
}

// Kind returns KindContexts.
func (t *ContextsTemplate) Kind() Kind {
	return KindContexts
}

// NumVariables returns the number of variables, one less than the number of contexts.
func (t *ContextsTemplate) NumVariables() int {
	if len(t.contexts) == 0 {
		return 0
	}
	return len(t.contexts) - 1
}

// String returns the regex form.
func (t *ContextsTemplate) String() string {
	return t.Regex()
}
