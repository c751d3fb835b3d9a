package coretmpl

import (
	"errors"
	"fmt"
)

// Common template errors
var (
	// ErrEmptyContexts indicates a template was requested from zero contexts.
	// A template always has at least one context.
	ErrEmptyContexts = errors.New("template needs at least one context")

	// ErrInvalidKind indicates an unknown template representation.
	ErrInvalidKind = errors.New("invalid template kind")

	// ErrInvalidConfig indicates invalid configuration was provided
	ErrInvalidConfig = errors.New("invalid template configuration")

	// ErrEmptyName indicates a set member was added without a name
	ErrEmptyName = errors.New("template name is empty")

	// ErrDuplicateName indicates two set members share a name
	ErrDuplicateName = errors.New("duplicate template name")

	// ErrTooManyTemplates indicates a set exceeded Config.MaxTemplates
	ErrTooManyTemplates = errors.New("too many templates")

	// ErrInitialized indicates a decode into a template that already holds a value
	ErrInitialized = errors.New("template already initialized")
)

// CompileError reports a regex source that the regex engine rejected.
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	return fmt.Sprintf("compiling template regex %q: %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}
