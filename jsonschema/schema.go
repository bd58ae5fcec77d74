package jsonschema

// Draft is the dialect the exported documents declare.
const Draft = "http://json-schema.org/draft-07/schema#"

// Schema is a minimal JSON Schema representation used for export.
// It only carries the keywords the ACL message document needs.
type Schema struct {
	// Core
	SchemaURI   string `json:"$schema,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	Enum        []any  `json:"enum,omitempty"`
	Default     any    `json:"default,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	PropertyNames        *Schema            `json:"propertyNames,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	// Union
	AnyOf []*Schema `json:"anyOf,omitempty"`
}

// Leaf returns a schema carrying only a type.
func Leaf(typ string) *Schema { return &Schema{Type: typ} }
