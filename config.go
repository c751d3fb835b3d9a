package coretmpl

import "fmt"

// Config controls how a Set is built and matched.
//
// Example:
//
//	config := coretmpl.DefaultConfig()
//	config.Kind = coretmpl.KindRegex // compile added contexts into regexes
//	b := coretmpl.NewSetBuilder(config)
type Config struct {
	// Kind is the representation built by SetBuilder.AddContexts and
	// SetBuilder.AddRegex. Templates passed to SetBuilder.Add keep their own.
	// Default: KindContexts
	Kind Kind

	// Prefilter enables the Aho-Corasick prefilter over leading contexts.
	// It only takes effect when every member is a contexts template with a
	// non-empty first context.
	// Default: true
	Prefilter bool

	// MaxTemplates caps the number of members of a Set. Zero means no limit.
	// Default: 0
	MaxTemplates int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Kind:         KindContexts,
		Prefilter:    true,
		MaxTemplates: 0,
	}
}

// Validate checks if the configuration is valid.
// Returns an error wrapping ErrInvalidConfig if any field is out of range.
func (c Config) Validate() error {
	if c.Kind != KindContexts && c.Kind != KindRegex {
		return fmt.Errorf("%w: Kind must be contexts or regex, got %v", ErrInvalidConfig, c.Kind)
	}
	if c.MaxTemplates < 0 {
		return fmt.Errorf("%w: MaxTemplates must be >= 0, got %d", ErrInvalidConfig, c.MaxTemplates)
	}
	return nil
}
