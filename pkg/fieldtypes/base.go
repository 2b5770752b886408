// Package fieldtypes implements the per-type field builders.
//
// # Overview
//
// A builder turns a field definition into a renderable input. Every builder
// exposes:
//   - DefaultConfig: the full set of recognized config options with defaults.
//     A field's stored config is a sparse override on top of these; every
//     config read falls back to the default when the stored value is blank.
//   - Build: construct the input node, wire type-specific attributes, resolve
//     selectable options and attach validation/conditional/visibility rules.
//   - FormSchema: the settings panel definition; its keys mirror
//     DefaultConfig exactly (the inspector checks this contract).
//
// Builders may additionally implement FillMutator/SaveMutator to hook into
// the mapper's fill and save pipelines.
//
// # Presence vs blankness
//
// Blank config values (empty string/slice, nil) fall back to defaults, except
// where false/0 are meaningful: toggle-like options read with explicit
// presence checks. See models.FieldConfig.
package fieldtypes

import (
	"context"

	"github.com/Ramsey-B/fern/pkg/inputs"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/validation"
)

// Builder is the per-field-type contract.
type Builder interface {
	Key() string
	DefaultConfig() models.FieldConfig
	Build(ctx context.Context, name string, field models.Field) (inputs.Input, error)
	FormSchema() []inputs.SettingsField
}

// FillMutator is the optional storage->form hook. The hook receives the form
// data map (full or scoped to one container row) and returns the mutated map.
type FillMutator interface {
	OnFillMutate(record models.Record, field models.Field, data map[string]any) (map[string]any, error)
}

// SaveMutator is the optional form->storage hook, symmetric to FillMutator.
type SaveMutator interface {
	OnSaveMutate(record models.Record, field models.Field, data map[string]any) (map[string]any, error)
}

// Shared base options recognized by every field type.
func baseConfig() models.FieldConfig {
	return models.FieldConfig{
		models.ConfigRequired:   false,
		models.ConfigDisabled:   false,
		models.ConfigHidden:     false,
		models.ConfigHelperText: "",
		models.ConfigHint:       "",
		models.ConfigHintColor:  "",
		models.ConfigHintIcon:   "",
	}
}

// withBase merges type-specific defaults over the shared base options.
func withBase(extra models.FieldConfig) models.FieldConfig {
	return extra.MergeDefaults(baseConfig())
}

// buildBase constructs the input skeleton shared by all types: base options
// resolved with default fallback, rule config attached, validation rules
// compiled.
func buildBase(typeKey, name string, field models.Field, defaults models.FieldConfig) inputs.Input {
	cfg := field.Config

	input := inputs.Input{
		FieldULID:  field.ULID,
		Key:        field.StorageKey(),
		Name:       name,
		Label:      field.Name,
		Type:       typeKey,
		Required:   cfg.GetBool(models.ConfigRequired, defaults.GetBool(models.ConfigRequired, false)),
		Disabled:   cfg.GetBool(models.ConfigDisabled, defaults.GetBool(models.ConfigDisabled, false)),
		Hidden:     cfg.GetBool(models.ConfigHidden, defaults.GetBool(models.ConfigHidden, false)),
		HelperText: cfg.GetString(models.ConfigHelperText, defaults.GetString(models.ConfigHelperText, "")),
		Hint:       cfg.GetString(models.ConfigHint, defaults.GetString(models.ConfigHint, "")),
		HintColor:  cfg.GetString(models.ConfigHintColor, defaults.GetString(models.ConfigHintColor, "")),
		HintIcon:   cfg.GetString(models.ConfigHintIcon, defaults.GetString(models.ConfigHintIcon, "")),
		Attributes: map[string]any{},
	}

	if conditional, ok := cfg.Conditional(); ok {
		input.Conditional = &conditional
	}
	input.VisibilityRules = cfg.VisibilityRules()

	validation.Apply(&input, cfg.ValidationRules())

	return input
}

// baseFormSchema returns the settings fields for the shared base options.
func baseFormSchema() []inputs.SettingsField {
	return []inputs.SettingsField{
		{Key: models.ConfigRequired, Label: "Required", Widget: inputs.WidgetToggle, Default: false},
		{Key: models.ConfigDisabled, Label: "Disabled", Widget: inputs.WidgetToggle, Default: false},
		{Key: models.ConfigHidden, Label: "Hidden", Widget: inputs.WidgetToggle, Default: false},
		{Key: models.ConfigHelperText, Label: "Helper Text", Widget: inputs.WidgetText, Default: ""},
		{Key: models.ConfigHint, Label: "Hint", Widget: inputs.WidgetText, Default: ""},
		{Key: models.ConfigHintColor, Label: "Hint Color", Widget: inputs.WidgetText, Default: ""},
		{Key: models.ConfigHintIcon, Label: "Hint Icon", Widget: inputs.WidgetText, Default: ""},
	}
}

// dataKey picks the key addressing the field inside a value map: ULID
// primarily, slug as fallback when the ULID is absent (nested/table-repeater
// editing keys rows by slug).
func dataKey(field models.Field, values map[string]any) string {
	if _, ok := values[field.ULID]; ok {
		return field.ULID
	}
	if field.Slug != "" {
		if _, ok := values[field.Slug]; ok {
			return field.Slug
		}
	}
	return field.ULID
}

// readStoredValue reads the field's current value from the record's value
// store: ULID first, slug fallback.
func readStoredValue(record models.Record, field models.Field) (any, bool) {
	values := record.ValueTree()
	if v, ok := values[field.ULID]; ok {
		return v, true
	}
	if field.Slug != "" {
		if v, ok := values[field.Slug]; ok {
			return v, true
		}
	}
	return nil, false
}

// valueColumn extracts the record's value map from form data, creating it when
// absent.
func valueColumn(record models.Record, data map[string]any) map[string]any {
	column, ok := data[record.ValueColumn()].(map[string]any)
	if !ok {
		column = map[string]any{}
		data[record.ValueColumn()] = column
	}
	return column
}
