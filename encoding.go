package coretmpl

import (
	"encoding/json"
	"fmt"

	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"

	"github.com/coregx/coretmpl/internal/codec"
)

// record is the persisted form of a template of either kind.
type record struct {
	Kind     Kind     `json:"kind" yaml:"kind" cbor:"kind"`
	Contexts []string `json:"contexts,omitempty" yaml:"contexts,omitempty" cbor:"contexts,omitempty"`
	Regex    string   `json:"regex,omitempty" yaml:"regex,omitempty" cbor:"regex,omitempty"`
}

func toRecord(t Template) record {
	if t.Kind() == KindRegex {
		return record{Kind: KindRegex, Regex: t.Regex()}
	}
	return record{Kind: KindContexts, Contexts: t.Contexts()}
}

func (r record) template() (Template, error) {
	switch r.Kind {
	case KindContexts:
		return NewContextsTemplate(r.Contexts)
	case KindRegex:
		return CompileRegex(r.Regex)
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidKind, uint8(r.Kind))
	}
}

// Value wraps a Template of either kind for persistence.
//
// It encodes as {"kind": ..., "contexts": [...]} or {"kind": ..., "regex": ...}
// in JSON, YAML and CBOR, and decodes back to a template of the same kind
// with the same content. A Value with a nil Template encodes as null.
//
// Example:
//
//	data, _ := json.Marshal(coretmpl.Value{Template: tmpl})
//	var v coretmpl.Value
//	_ = json.Unmarshal(data, &v)
//	// v.Template.Regex() == tmpl.Regex()
type Value struct {
	Template
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Template == nil {
		return []byte("null"), nil
	}
	return json.Marshal(toRecord(v.Template))
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		v.Template = nil
		return nil
	}
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return fmt.Errorf("decoding template: %w", err)
	}
	return v.set(r)
}

// MarshalYAML implements yaml.Marshaler.
func (v Value) MarshalYAML() (any, error) {
	if v.Template == nil {
		return nil, nil
	}
	return toRecord(v.Template), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		v.Template = nil
		return nil
	}
	var r record
	if err := node.Decode(&r); err != nil {
		return fmt.Errorf("decoding template: %w", err)
	}
	return v.set(r)
}

// MarshalCBOR implements cbor.Marshaler.
func (v Value) MarshalCBOR() ([]byte, error) {
	if v.Template == nil {
		// CBOR null
		return []byte{0xf6}, nil
	}
	return codec.Marshal(toRecord(v.Template))
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (v *Value) UnmarshalCBOR(data []byte) error {
	if len(data) == 1 && data[0] == 0xf6 {
		v.Template = nil
		return nil
	}
	var r record
	if err := codec.Unmarshal(data, &r); err != nil {
		return fmt.Errorf("decoding template: %w", err)
	}
	return v.set(r)
}

func (v *Value) set(r record) error {
	tmpl, err := r.template()
	if err != nil {
		return fmt.Errorf("decoding template: %w", err)
	}
	v.Template = tmpl
	return nil
}

// Marshal encodes t as deterministic CBOR.
func Marshal(t Template) ([]byte, error) {
	return codec.Marshal(Value{Template: t})
}

// Unmarshal decodes a template encoded by Marshal.
func Unmarshal(data []byte) (Template, error) {
	var v Value
	if err := codec.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	if v.Template == nil {
		return nil, fmt.Errorf("decoding template: %w", ErrEmptyContexts)
	}
	return v.Template, nil
}

// MarshalJSON encodes the contexts as a JSON array of strings.
func (t *ContextsTemplate) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.contexts)
}

// UnmarshalJSON decodes a JSON array of strings into a zero ContextsTemplate.
// Returns ErrEmptyContexts for an empty array and ErrInitialized if t
// already holds contexts.
func (t *ContextsTemplate) UnmarshalJSON(data []byte) error {
	if t.contexts != nil {
		return ErrInitialized
	}
	var contexts []string
	if err := json.Unmarshal(data, &contexts); err != nil {
		return err
	}
	if len(contexts) == 0 {
		return ErrEmptyContexts
	}
	t.contexts = contexts
	return nil
}

// MarshalText returns the pattern source.
func (t *RegexTemplate) MarshalText() ([]byte, error) {
	return []byte(t.pattern), nil
}

// UnmarshalText compiles text as the pattern source into a zero
// RegexTemplate. Returns ErrInitialized if t already holds a regex.
func (t *RegexTemplate) UnmarshalText(text []byte) error {
	if t.re != nil {
		return ErrInitialized
	}
	compiled, err := CompileRegex(string(text))
	if err != nil {
		return err
	}
	*t = *compiled
	return nil
}

// Fingerprint returns a BLAKE3 digest of the template kind and regex form.
//
// Templates of the same kind with the same content have the same
// fingerprint, including copies and decoded values.
func Fingerprint(t Template) [32]byte {
	regex := t.Regex()
	buf := make([]byte, 0, len(regex)+1)
	buf = append(buf, byte(t.Kind()))
	buf = append(buf, regex...)
	return blake3.Sum256(buf)
}
