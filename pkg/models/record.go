package models

// Record is the owning content record as seen by the field-resolution and
// mutation pipeline: an ordered field collection plus the current stored value
// tree. The pipeline never mutates the definitions, only the value tree.
type Record interface {
	RecordKey() string
	// ValueColumn names the structured column holding field values; form data
	// nests under this key (e.g. data["values"]["hero_title"]).
	ValueColumn() string
	FieldDefinitions() Fields
	ValueTree() map[string]any
}

// ContentRecord is the plain Record implementation used by the form services
// and tests.
type ContentRecord struct {
	Key    string
	Column string
	Fields Fields
	Values map[string]any
}

func (r ContentRecord) RecordKey() string {
	return r.Key
}

func (r ContentRecord) ValueColumn() string {
	if r.Column == "" {
		return "values"
	}
	return r.Column
}

func (r ContentRecord) FieldDefinitions() Fields {
	return r.Fields
}

func (r ContentRecord) ValueTree() map[string]any {
	if r.Values == nil {
		return map[string]any{}
	}
	return r.Values
}
