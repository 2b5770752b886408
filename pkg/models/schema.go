package models

import "sort"

// Schema layout kinds.
const (
	SchemaKindSection  = "section"
	SchemaKindGrid     = "grid"
	SchemaKindFieldset = "fieldset"
)

// Schema is a layout container grouping fields and/or nested child schemas
// under a single owner. Roots have no parent; siblings order by position.
type Schema struct {
	ULID       string   `json:"ulid" validate:"required"`
	Name       string   `json:"name" validate:"required"`
	Kind       string   `json:"kind" validate:"omitempty,oneof=section grid fieldset"`
	Position   int      `json:"position" validate:"omitempty"`
	ParentULID string   `json:"parent_ulid" validate:"omitempty"`
	ModelType  string   `json:"model_type" validate:"omitempty"`
	ModelKey   string   `json:"model_key" validate:"omitempty"`
	Children   []Schema `json:"children,omitempty" validate:"omitempty"`
	Fields     Fields   `json:"fields,omitempty" validate:"omitempty"`
}

type Schemas []Schema

// CollectFields flattens the schema tree depth-first pre-order: every schema's
// direct fields are accumulated before descending into its child schemas.
func (s Schemas) CollectFields() Fields {
	collected := Fields{}
	for _, schema := range s {
		collected = append(collected, schema.collect()...)
	}
	return collected
}

func (s Schema) collect() Fields {
	collected := append(Fields{}, s.Fields...)
	for _, child := range s.Children {
		collected = append(collected, child.collect()...)
	}
	return collected
}

// SortByPosition orders sibling schemas in place, recursively.
func (s Schemas) SortByPosition() {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Position < s[j].Position
	})
	for i := range s {
		Schemas(s[i].Children).SortByPosition()
		s[i].Fields.SortByPosition()
	}
}
