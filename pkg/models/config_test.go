package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBlank(t *testing.T) {
	t.Run("should treat absent keys as blank", func(t *testing.T) {
		config := FieldConfig{}

		assert.True(t, config.IsBlank("helperText"))
	})

	t.Run("should treat nil, empty string, empty slice and empty map as blank", func(t *testing.T) {
		config := FieldConfig{
			"a": nil,
			"b": "",
			"c": []any{},
			"d": map[string]any{},
		}

		assert.True(t, config.IsBlank("a"))
		assert.True(t, config.IsBlank("b"))
		assert.True(t, config.IsBlank("c"))
		assert.True(t, config.IsBlank("d"))
	})

	t.Run("should not treat false or zero as blank", func(t *testing.T) {
		config := FieldConfig{"required": false, "max": 0}

		assert.False(t, config.IsBlank("required"))
		assert.False(t, config.IsBlank("max"))
	})
}

func TestTypedGetters(t *testing.T) {
	t.Run("should fall back when a string value is blank", func(t *testing.T) {
		config := FieldConfig{"helperText": ""}

		assert.Equal(t, "default", config.GetString("helperText", "default"))
	})

	t.Run("should honor an explicit false", func(t *testing.T) {
		config := FieldConfig{"required": false}

		assert.False(t, config.GetBool("required", true))
	})

	t.Run("should honor an explicit zero", func(t *testing.T) {
		config := FieldConfig{"minLength": 0}

		assert.Equal(t, 0, config.GetInt("minLength", 5))
	})

	t.Run("should accept decoded-JSON float64 for int keys", func(t *testing.T) {
		config := FieldConfig{"maxLength": float64(24)}

		assert.Equal(t, 24, config.GetInt("maxLength", 0))
	})

	t.Run("should fall back on a type mismatch", func(t *testing.T) {
		config := FieldConfig{"required": "yes", "maxLength": "10"}

		assert.True(t, config.GetBool("required", true))
		assert.Equal(t, 3, config.GetInt("maxLength", 3))
	})

	t.Run("should widen int values for float keys", func(t *testing.T) {
		config := FieldConfig{"step": 2}

		assert.Equal(t, 2.0, config.GetFloat("step", 0.5))
	})

	t.Run("should fall back for blank slices and maps", func(t *testing.T) {
		config := FieldConfig{"options": []any{}, "filters": map[string]any{}}

		assert.Equal(t, []any{"a"}, config.GetSlice("options", []any{"a"}))
		assert.Equal(t, map[string]any{"k": "v"}, config.GetMap("filters", map[string]any{"k": "v"}))
	})
}

func TestMergeDefaults(t *testing.T) {
	t.Run("should overlay the sparse config on the defaults", func(t *testing.T) {
		defaults := FieldConfig{"required": false, "helperText": "", "maxLength": 255}
		config := FieldConfig{"helperText": "shown below the input"}

		merged := config.MergeDefaults(defaults)

		assert.Equal(t, "shown below the input", merged["helperText"])
		assert.Equal(t, false, merged["required"])
		assert.Equal(t, 255, merged["maxLength"])
	})

	t.Run("should let explicit keys win even when set to a zero value", func(t *testing.T) {
		defaults := FieldConfig{"required": true}
		config := FieldConfig{"required": false}

		merged := config.MergeDefaults(defaults)

		assert.Equal(t, false, merged["required"])
	})

	t.Run("should not mutate the receiver or the defaults", func(t *testing.T) {
		defaults := FieldConfig{"required": false}
		config := FieldConfig{"helperText": "hi"}

		config.MergeDefaults(defaults)

		assert.NotContains(t, config, "required")
		assert.NotContains(t, defaults, "helperText")
	})
}

func TestClone(t *testing.T) {
	t.Run("should copy all keys into an independent map", func(t *testing.T) {
		config := FieldConfig{"required": true}

		clone := config.Clone()
		clone["required"] = false

		assert.Equal(t, true, config["required"])
	})
}
