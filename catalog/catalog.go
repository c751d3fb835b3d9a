// Package catalog loads named templates from configuration files and builds
// them into a coretmpl.Set.
//
// A catalog is authored as YAML, TOML or JSONC (JSON with comments and
// trailing commas). Every entry names a template and gives exactly one of
// its two forms:
//
//	kind: contexts
//	templates:
//	  - name: assignment
//	    contexts: ["key=", ""]
//	  - name: tag
//	    kind: regex
//	    regex: '<(\S+)>'
//
// The document kind selects the representation built for every entry; an
// entry kind overrides it.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/coregx/coretmpl"
)

// Sentinel errors for catalog operations.
var (
	// ErrUnknownFormat is returned when a file extension maps to no format.
	ErrUnknownFormat = errors.New("unknown catalog format")

	// ErrInvalidEntry is returned when an entry fails validation.
	ErrInvalidEntry = errors.New("invalid catalog entry")
)

// Format is a catalog file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatOf returns the format implied by the extension of path.
// .json and .jsonc both parse as JSONC.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json", ".jsonc":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Document is the top level of a catalog file.
type Document struct {
	// Kind is the representation built for entries without their own kind.
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty" toml:"kind,omitempty" jsonschema:"enum=contexts,enum=regex,description=Default template representation"`

	// Templates lists the catalog entries in match order.
	Templates []Entry `json:"templates" yaml:"templates" toml:"templates" jsonschema:"description=Templates in match order"`
}

// Entry is one named template.
type Entry struct {
	Name        string   `json:"name" yaml:"name" toml:"name" jsonschema:"minLength=1,description=Unique template name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Kind        string   `json:"kind,omitempty" yaml:"kind,omitempty" toml:"kind,omitempty" jsonschema:"enum=contexts,enum=regex"`
	Contexts    []string `json:"contexts,omitempty" yaml:"contexts,omitempty" toml:"contexts,omitempty" jsonschema:"description=Literal contexts around each variable"`
	Regex       string   `json:"regex,omitempty" yaml:"regex,omitempty" toml:"regex,omitempty" jsonschema:"description=Template regex source"`
}

// Parse decodes data in the given format. It does not validate the result.
func Parse(data []byte, format Format) (*Document, error) {
	var doc Document
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	case FormatJSON:
		err = json.Unmarshal(jsonc.ToJSON(data), &doc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s catalog: %w", format, err)
	}
	return &doc, nil
}

// ReadFile reads, parses and validates the catalog at path.
func ReadFile(path string) (*Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	doc, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Validate checks kinds, names and that each entry has exactly one form.
// It does not compile regexes; Build reports those errors.
func (d *Document) Validate() error {
	if _, err := parseKind(d.Kind, coretmpl.KindContexts); err != nil {
		return err
	}

	seen := make(map[string]bool, len(d.Templates))
	for i, e := range d.Templates {
		if e.Name == "" {
			return fmt.Errorf("%w: entry %d has no name", ErrInvalidEntry, i)
		}
		if seen[e.Name] {
			return fmt.Errorf("%w: %q: %w", ErrInvalidEntry, e.Name, coretmpl.ErrDuplicateName)
		}
		seen[e.Name] = true

		if _, err := parseKind(e.Kind, coretmpl.KindContexts); err != nil {
			return fmt.Errorf("%w: %q: %w", ErrInvalidEntry, e.Name, err)
		}
		hasContexts := len(e.Contexts) > 0
		hasRegex := e.Regex != ""
		if hasContexts == hasRegex {
			return fmt.Errorf("%w: %q: exactly one of contexts or regex is required", ErrInvalidEntry, e.Name)
		}
	}
	return nil
}

// Build validates the document and builds its templates into a Set.
//
// config supplies the prefilter and size settings; a document or entry kind
// overrides config.Kind.
func (d *Document) Build(config coretmpl.Config) (*coretmpl.Set, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	defaultKind, _ := parseKind(d.Kind, config.Kind)
	b := coretmpl.NewSetBuilder(config)
	for _, e := range d.Templates {
		kind, _ := parseKind(e.Kind, defaultKind)

		var tmpl coretmpl.Template
		var err error
		if len(e.Contexts) > 0 {
			tmpl, err = coretmpl.FromContexts(kind, e.Contexts)
		} else {
			tmpl, err = coretmpl.FromRegex(kind, e.Regex)
		}
		if err != nil {
			return nil, fmt.Errorf("template %q: %w", e.Name, err)
		}
		if err := b.Add(e.Name, tmpl); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

// Duplicates groups the names of set members with identical content.
// Only groups of two or more names are returned, in first-seen order.
func Duplicates(set *coretmpl.Set) [][]string {
	groups := make(map[[32]byte][]string)
	var order [][32]byte
	for _, name := range set.Names() {
		tmpl, _ := set.Get(name)
		fp := coretmpl.Fingerprint(tmpl)
		if _, ok := groups[fp]; !ok {
			order = append(order, fp)
		}
		groups[fp] = append(groups[fp], name)
	}

	var dups [][]string
	for _, fp := range order {
		if len(groups[fp]) > 1 {
			dups = append(dups, groups[fp])
		}
	}
	return dups
}

func parseKind(s string, fallback coretmpl.Kind) (coretmpl.Kind, error) {
	if s == "" {
		return fallback, nil
	}
	return coretmpl.ParseKind(s)
}
