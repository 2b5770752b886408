package models

// FieldConfig is the open per-type settings blob attached to a field. It is a
// sparse override: a key absent from the map falls back to the builder's
// default config. Empty strings, empty slices and nils count as "not set",
// except where zero values are meaningful (see IsSet).
type FieldConfig map[string]any

// Shared config keys recognized by every field type.
const (
	ConfigRequired   = "required"
	ConfigDisabled   = "disabled"
	ConfigHidden     = "hidden"
	ConfigHelperText = "helperText"
	ConfigHint       = "hint"
	ConfigHintColor  = "hintColor"
	ConfigHintIcon   = "hintIcon"

	ConfigValidationRules     = "validationRules"
	ConfigConditionalField    = "conditionalField"
	ConfigConditionalOperator = "conditionalOperator"
	ConfigConditionalValue    = "conditionalValue"
	ConfigConditionalAction   = "conditionalAction"
	ConfigVisibilityRules     = "visibilityRules"
)

// IsSet reports key presence without any blankness interpretation. Toggle-like
// options where false/0 are meaningful must use this instead of the typed
// getters.
func (c FieldConfig) IsSet(key string) bool {
	_, ok := c[key]
	return ok
}

// IsBlank reports whether the configured value counts as "not set": absent,
// nil, empty string, empty slice or empty map.
func (c FieldConfig) IsBlank(key string) bool {
	value, ok := c[key]
	if !ok || value == nil {
		return true
	}

	switch v := value.(type) {
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}

	return false
}

// GetString returns the configured string for key, or fallback when the value
// is blank or not a string.
func (c FieldConfig) GetString(key, fallback string) string {
	if c.IsBlank(key) {
		return fallback
	}
	if s, ok := c[key].(string); ok {
		return s
	}
	return fallback
}

// GetBool returns the configured bool for key. Presence wins over blankness:
// an explicit false is honored.
func (c FieldConfig) GetBool(key string, fallback bool) bool {
	value, ok := c[key]
	if !ok {
		return fallback
	}
	if b, ok := value.(bool); ok {
		return b
	}
	return fallback
}

// GetInt returns the configured int for key, accepting JSON float64 values.
// An explicit 0 is honored.
func (c FieldConfig) GetInt(key string, fallback int) int {
	value, ok := c[key]
	if !ok {
		return fallback
	}

	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}

	return fallback
}

// GetFloat returns the configured float for key. An explicit 0 is honored.
func (c FieldConfig) GetFloat(key string, fallback float64) float64 {
	value, ok := c[key]
	if !ok {
		return fallback
	}

	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}

	return fallback
}

// GetSlice returns the configured slice for key, or fallback when blank.
func (c FieldConfig) GetSlice(key string, fallback []any) []any {
	if c.IsBlank(key) {
		return fallback
	}
	if s, ok := c[key].([]any); ok {
		return s
	}
	return fallback
}

// GetMap returns the configured map for key, or fallback when blank.
func (c FieldConfig) GetMap(key string, fallback map[string]any) map[string]any {
	if c.IsBlank(key) {
		return fallback
	}
	if m, ok := c[key].(map[string]any); ok {
		return m
	}
	return fallback
}

// MergeDefaults overlays the sparse config on top of defaults, producing the
// full effective config. The receiver and defaults are not mutated.
func (c FieldConfig) MergeDefaults(defaults FieldConfig) FieldConfig {
	merged := make(FieldConfig, len(defaults)+len(c))
	for key, value := range defaults {
		merged[key] = value
	}
	for key, value := range c {
		merged[key] = value
	}
	return merged
}

// Clone returns a shallow copy of the config.
func (c FieldConfig) Clone() FieldConfig {
	clone := make(FieldConfig, len(c))
	for key, value := range c {
		clone[key] = value
	}
	return clone
}
