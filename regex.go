package coretmpl

import (
	"strings"

	"github.com/coregx/coregex"
)

// RegexTemplate matches by running a compiled regular expression.
//
// The regex engine is github.com/coregx/coregex. Each capture group of the
// pattern becomes one group of the Match, in order. Two RegexTemplates are
// equal if their pattern sources are equal, however they were compiled.
//
// A RegexTemplate is safe to use concurrently from multiple goroutines.
// The zero value matches nothing; it is only useful as a target for
// UnmarshalText.
type RegexTemplate struct {
	re      *coregex.Regex
	pattern string
}

// CompileRegex compiles pattern into a RegexTemplate.
//
// Syntax is Perl-compatible (same as Go's stdlib regexp). A syntax error is
// returned as *CompileError.
//
// Example:
//
//	tmpl, err := coretmpl.CompileRegex(`<(\S+)>`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func CompileRegex(pattern string) (*RegexTemplate, error) {
	re, err := coregex.Compile(pattern)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	return newRegexTemplate(re), nil
}

// MustCompileRegex is like CompileRegex but panics if pattern does not compile.
//
// This is useful for patterns known to be valid at compile time.
func MustCompileRegex(pattern string) *RegexTemplate {
	tmpl, err := CompileRegex(pattern)
	if err != nil {
		panic("coretmpl: CompileRegex(`" + pattern + "`): " + err.Error())
	}
	return tmpl
}

func newRegexTemplate(re *coregex.Regex) *RegexTemplate {
	return &RegexTemplate{
		re:      re,
		pattern: re.String(),
	}
}

// TryMatch finds the leftmost match of the pattern in text.
// Returns nil if there is none. A group that did not participate in the
// match is reported as the empty string.
//
// Example:
//
//	tmpl := coretmpl.MustCompileRegex(`<(\S+)>(\S+)!`)
//	m := tmpl.TryMatch("<a>b!")
//	// m.Start() == 0, m.End() == 5, m.Groups() == [a b]
func (t *RegexTemplate) TryMatch(text string) *Match {
	if t.re == nil {
		return nil
	}
	idx := t.re.FindStringSubmatchIndex(text)
	if idx == nil {
		return nil
	}

	groups := make([]string, len(idx)/2-1)
	for i := range groups {
		lo, hi := idx[2*i+2], idx[2*i+3]
		if lo >= 0 && hi >= lo {
			groups[i] = text[lo:hi]
		}
	}
	return newMatch(idx[0], idx[1], groups)
}

// Copy recompiles the pattern source into an independent template.
func (t *RegexTemplate) Copy() Template {
	return newRegexTemplate(coregex.MustCompile(t.pattern))
}

// Contexts derives the contexts form with RegexToContexts.
func (t *RegexTemplate) Contexts() []string {
	return RegexToContexts(t.pattern)
}

// Regex returns the pattern source.
func (t *RegexTemplate) Regex() string {
	return t.pattern
}

// Kind returns KindRegex.
func (t *RegexTemplate) Kind() Kind {
	return KindRegex
}

// NumVariables returns the number of capture groups in the pattern.
func (t *RegexTemplate) NumVariables() int {
	if t.re == nil {
		return 0
	}
	return t.re.NumSubexp()
}

// String returns the pattern source.
func (t *RegexTemplate) String() string {
	return t.pattern
}

// Equal reports whether both templates have the same pattern source.
func (t *RegexTemplate) Equal(other *RegexTemplate) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.pattern == other.pattern
}

// Compare orders templates by pattern source.
// The result is 0 if t and other are Equal, -1 if t sorts first, +1 otherwise.
func (t *RegexTemplate) Compare(other *RegexTemplate) int {
	return strings.Compare(t.pattern, other.pattern)
}
