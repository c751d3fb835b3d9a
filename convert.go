package coretmpl

import (
	"strings"

	"github.com/coregx/coretmpl/escape"
	"github.com/coregx/coretmpl/literal"
)

// Placeholder is the regex sub-pattern standing for one template variable.
//
// It captures one or more non-whitespace bytes. Contexts templates do not use
// it for matching and accept empty captures, so the two representations can
// disagree on inputs where a variable would be empty or contain whitespace.
const Placeholder = `(\S+)`

// ContextsToRegex joins escaped contexts with Placeholder.
//
// A single context yields its escaped form with no placeholder. Returns
// ErrEmptyContexts if contexts is empty.
//
// Example:
//
//	re, _ := coretmpl.ContextsToRegex([]string{"key=", ""})
//	// re == `key=(\S+)`
func ContextsToRegex(contexts []string) (string, error) {
	switch len(contexts) {
	case 0:
		return "", ErrEmptyContexts
	case 1:
		return escape.Escape(contexts[0]), nil
	}

	var b strings.Builder
	last := len(contexts) - 1
	for _, ctx := range contexts[:last] {
		b.WriteString(escape.Escape(ctx))
		b.WriteString(Placeholder)
	}
	b.WriteString(escape.Escape(contexts[last]))
	return b.String(), nil
}

// RegexToContexts splits a template regex back into its contexts.
//
// The whole source is unescaped first and then cut at every non-overlapping
// occurrence of Placeholder. This is the inverse of ContextsToRegex as long as
// no context contains the text of Placeholder itself; if one does, the split
// is wrong and no error is reported.
//
// Example:
//
//	coretmpl.RegexToContexts(`<(\S+)>(\S+)!`) // ["<", ">", "!"]
func RegexToContexts(regex string) []string {
	expression := escape.Unescape(regex)
	positions := literal.IndexAll(expression, Placeholder)
	return CreateContextsAt(expression, positions, len(Placeholder))
}

// CreateContextsAt splits expression around variables of the given width
// starting at each of positions.
//
// positions must be increasing and at least width apart. With no positions
// the whole expression is the only context.
//
// Example:
//
//	coretmpl.CreateContextsAt("a$b$c", []int{1, 3}, 1) // ["a", "b", "c"]
func CreateContextsAt(expression string, positions []int, width int) []string {
	contexts := make([]string, 0, len(positions)+1)
	pointer := 0
	for _, pos := range positions {
		contexts = append(contexts, expression[pointer:pos])
		pointer = pos + width
	}
	return append(contexts, expression[pointer:])
}

// CreateContexts splits an already matched expression around the given
// variable values, located left to right.
//
// Every variable must occur in expression after the previous one; a missing
// variable makes CreateContexts panic.
//
// Example:
//
//	coretmpl.CreateContexts("x + s(y)", []string{"x", "y"}) // ["", " + s(", ")"]
func CreateContexts(expression string, variables []string) []string {
	contexts := make([]string, 0, len(variables)+1)
	pointer := 0
	for _, variable := range variables {
		i := literal.Index(expression, variable, pointer)
		contexts = append(contexts, expression[pointer:i])
		pointer = i + len(variable)
	}
	return append(contexts, expression[pointer:])
}
