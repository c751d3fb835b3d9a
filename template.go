// Package coretmpl provides pattern templates: literal text segments
// (contexts) separated by variables, matched against input text to extract
// the text spanned by each variable.
//
// A template with V variables owns exactly V+1 contexts. It can be held in
// either of two equivalent representations:
//   - ContextsTemplate matches by scanning for each context in turn
//   - RegexTemplate compiles the regex form and delegates to a regex engine
//
// The regex form of contexts c0..cV is
//
//	escape(c0) + Placeholder + escape(c1) + ... + Placeholder + escape(cV)
//
// and the two forms convert into each other losslessly as long as no context
// contains the text of Placeholder.
//
// Basic usage:
//
//	tmpl, err := coretmpl.FromContexts(coretmpl.KindContexts, []string{"key=", ""})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if m := tmpl.TryMatch("prefix key=value"); m != nil {
//	    fmt.Println(m.Start(), m.End(), m.Groups()) // 7 16 [value]
//	}
//
// Matching semantics of the contexts form:
//   - the first context is searched for anywhere in the text, not anchored
//   - a variable may capture the empty string
//   - an empty last context makes the last variable run to the end of text
//
// Templates never change after construction and are safe for concurrent use
// from multiple goroutines. Offsets in a Match are byte offsets.
package coretmpl

import (
	"fmt"

	"github.com/coregx/coregex"
)

// Template is a pattern of contexts and variables.
//
// Both implementations, *ContextsTemplate and *RegexTemplate, are immutable.
type Template interface {
	// TryMatch locates the template in text.
	// Returns nil if the template does not occur.
	TryMatch(text string) *Match

	// Copy returns an independent template with the same content.
	Copy() Template

	// Contexts returns the contexts form, deriving it from the regex if needed.
	// The returned slice is owned by the caller.
	Contexts() []string

	// Regex returns the regex form, deriving it from the contexts if needed.
	Regex() string

	// Kind returns the representation held by the template.
	Kind() Kind
}

// Kind selects a template representation.
type Kind uint8

const (
	// KindContexts holds templates as ordered literal contexts.
	KindContexts Kind = iota

	// KindRegex holds templates as compiled regular expressions.
	KindRegex
)

// String returns "contexts" or "regex".
func (k Kind) String() string {
	switch k {
	case KindContexts:
		return "contexts"
	case KindRegex:
		return "regex"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ParseKind parses the String form of a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "contexts":
		return KindContexts, nil
	case "regex":
		return KindRegex, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k != KindContexts && k != KindRegex {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKind, uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// FromContexts builds a template of the requested kind from contexts.
//
// For KindRegex the contexts are first converted with ContextsToRegex.
// Returns ErrEmptyContexts if contexts is empty.
//
// Example:
//
//	tmpl, err := coretmpl.FromContexts(coretmpl.KindRegex, []string{"<", ">"})
//	// tmpl.Regex() == `<(\S+)>`
func FromContexts(kind Kind, contexts []string) (Template, error) {
	switch kind {
	case KindContexts:
		return contextsTemplate(contexts)
	case KindRegex:
		regex, err := ContextsToRegex(contexts)
		if err != nil {
			return nil, err
		}
		return regexTemplate(regex)
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidKind, uint8(kind))
	}
}

// FromRegex builds a template of the requested kind from regex source.
//
// For KindContexts the source is split with RegexToContexts and never
// compiled. For KindRegex a syntax error is returned as *CompileError.
//
// Example:
//
//	tmpl, err := coretmpl.FromRegex(coretmpl.KindContexts, `key=(\S+)`)
//	// tmpl.Contexts() == ["key=", ""]
func FromRegex(kind Kind, pattern string) (Template, error) {
	switch kind {
	case KindContexts:
		return contextsTemplate(RegexToContexts(pattern))
	case KindRegex:
		return regexTemplate(pattern)
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidKind, uint8(kind))
	}
}

// FromCompiled builds a template of the requested kind from an already
// compiled regex.
//
// For KindRegex the compiled regex is used as is. A nil re is rejected with
// ErrInvalidConfig.
func FromCompiled(kind Kind, re *coregex.Regex) (Template, error) {
	if re == nil {
		return nil, fmt.Errorf("%w: nil regex", ErrInvalidConfig)
	}
	switch kind {
	case KindContexts:
		return contextsTemplate(RegexToContexts(re.String()))
	case KindRegex:
		return newRegexTemplate(re), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidKind, uint8(kind))
	}
}

// contextsTemplate and regexTemplate return an untyped nil Template on error.
func contextsTemplate(contexts []string) (Template, error) {
	t, err := NewContextsTemplate(contexts)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func regexTemplate(pattern string) (Template, error) {
	t, err := CompileRegex(pattern)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// MustFromContexts is like FromContexts but panics on error.
//
// This is useful for templates known to be valid at compile time.
func MustFromContexts(kind Kind, contexts []string) Template {
	tmpl, err := FromContexts(kind, contexts)
	if err != nil {
		panic("coretmpl: FromContexts: " + err.Error())
	}
	return tmpl
}

// MustFromRegex is like FromRegex but panics on error.
func MustFromRegex(kind Kind, pattern string) Template {
	tmpl, err := FromRegex(kind, pattern)
	if err != nil {
		panic("coretmpl: FromRegex(`" + pattern + "`): " + err.Error())
	}
	return tmpl
}
