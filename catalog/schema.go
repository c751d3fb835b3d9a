package catalog

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema of a catalog Document, indented.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		DoNotReference: true,
	}
	s := r.Reflect(&Document{})
	s.Title = "coretmpl catalog"
	return json.MarshalIndent(s, "", "  ")
}
