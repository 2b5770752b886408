// Package models defines the schema for form field and layout definitions.
//
// # Overview
//
// Fields describe one form input each: its type (a registry key), its sparse
// configuration blob, its position among siblings and its place in the
// container tree. Container fields (repeater/builder) own ordered children;
// every other type is a leaf.
//
// # Identity
//
// ULID: globally unique, assigned at creation, never edited.
// Slug: human-editable; when present it is used as the storage key, otherwise
// the ULID is. A slug must be unique among siblings under the same owner.
//
// # Example
//
//	Field{
//	  ULID: "01J8...", Slug: "hero_title", Name: "Hero Title",
//	  FieldType: FieldTypeText,
//	  Config: FieldConfig{"helperText": "Shown on the landing page"},
//	}
package models

import (
	"sort"

	"github.com/Gobusters/ectolinq"
)

// Builtin field type keys. Custom types registered at startup extend this set.
const (
	FieldTypeText           = "text"
	FieldTypeTextarea       = "textarea"
	FieldTypeRichEditor     = "rich-editor"
	FieldTypeMarkdownEditor = "markdown-editor"
	FieldTypeRepeater       = "repeater"
	FieldTypeBuilder        = "builder"
	FieldTypeSelect         = "select"
	FieldTypeCheckbox       = "checkbox"
	FieldTypeCheckboxList   = "checkbox-list"
	FieldTypeFileUpload     = "file-upload"
	FieldTypeKeyValue       = "key-value"
	FieldTypeRadio          = "radio"
	FieldTypeToggle         = "toggle"
	FieldTypeColor          = "color"
	FieldTypeDateTime       = "date-time"
	FieldTypeTags           = "tags"
)

// Field defines a single form input.
//
// The rendering pipeline treats fields as read-only; only the admin API
// mutates them.
type Field struct {
	ULID       string      `json:"ulid" validate:"required"`                // Globally unique identifier
	Slug       string      `json:"slug" validate:"omitempty"`               // Human-editable storage key
	Name       string      `json:"name" validate:"required"`                // Display label
	FieldType  string      `json:"field_type" validate:"required"`          // Registry key
	Config     FieldConfig `json:"config" validate:"omitempty"`             // Sparse per-type settings
	Position   int         `json:"position" validate:"omitempty"`           // Sibling order
	ParentULID string      `json:"parent_ulid" validate:"omitempty"`        // Container parent, if nested
	SchemaULID string      `json:"schema_ulid" validate:"omitempty"`        // Owning layout schema, if any
	ModelType  string      `json:"model_type" validate:"omitempty"`         // Polymorphic owner type
	ModelKey   string      `json:"model_key" validate:"omitempty"`          // Polymorphic owner key
	Children   Fields      `json:"children,omitempty" validate:"omitempty"` // Ordered, container types only
}

// StorageKey returns the key the field's value is stored under: the slug when
// present, the ULID otherwise.
func (f Field) StorageKey() string {
	if f.Slug != "" {
		return f.Slug
	}
	return f.ULID
}

// IsContainer reports whether the field's value is a list of rows holding
// child field values.
func (f Field) IsContainer() bool {
	return f.FieldType == FieldTypeRepeater || f.FieldType == FieldTypeBuilder
}

// Matches reports whether key addresses this field by ULID or slug.
func (f Field) Matches(key string) bool {
	return key != "" && (key == f.ULID || key == f.Slug)
}

type Fields []Field

// Find returns the first field (searching children recursively) addressed by
// ULID or slug.
func (f Fields) Find(key string) (Field, bool) {
	for _, field := range f {
		if field.Matches(key) {
			return field, true
		}

		if child, ok := field.Children.Find(key); ok {
			return child, true
		}
	}

	return Field{}, false
}

// Flatten returns the fields and all their descendants in definition order.
func (f Fields) Flatten() Fields {
	flat := Fields{}
	for _, field := range f {
		flat = append(flat, field)
		flat = append(flat, field.Children.Flatten()...)
	}
	return flat
}

// SortByPosition orders siblings in place by their Position attribute.
func (f Fields) SortByPosition() {
	sort.SliceStable(f, func(i, j int) bool {
		return f[i].Position < f[j].Position
	})
}

// ULIDs returns the ULID of every field in order.
func (f Fields) ULIDs() []string {
	return ectolinq.Map(f, func(field Field) string {
		return field.ULID
	})
}
