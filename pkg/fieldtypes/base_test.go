package fieldtypes

import (
	"context"
	"testing"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestBuildBase(t *testing.T) {
	ctx := context.Background()

	t.Run("should fall back to defaults for absent config keys", func(t *testing.T) {
		field := models.Field{
			ULID: "f1", Slug: "title", Name: "Title", FieldType: models.FieldTypeText,
			Config: models.FieldConfig{"helperText": "hi"},
		}

		input, err := NewText(nil).Build(ctx, "title", field)
		assert.NoError(t, err)
		assert.Equal(t, "hi", input.HelperText)
		assert.False(t, input.Required)
		assert.False(t, input.Hidden)
		assert.Equal(t, "Title", input.Label)
		assert.Equal(t, "title", input.Key)
	})

	t.Run("should use the ulid as storage key when the slug is empty", func(t *testing.T) {
		field := models.Field{ULID: "f1", Name: "Title", FieldType: models.FieldTypeText}

		input, err := NewText(nil).Build(ctx, "title", field)
		assert.NoError(t, err)
		assert.Equal(t, "f1", input.Key)
	})

	t.Run("should attach the conditional rule when complete", func(t *testing.T) {
		field := models.Field{
			ULID: "f1", Slug: "title", Name: "Title", FieldType: models.FieldTypeText,
			Config: models.FieldConfig{
				"conditionalField":    "f-status",
				"conditionalOperator": "equals",
				"conditionalValue":    "published",
				"conditionalAction":   "show",
			},
		}

		input, err := NewText(nil).Build(ctx, "title", field)
		assert.NoError(t, err)
		assert.NotNil(t, input.Conditional)
		assert.Equal(t, "f-status", input.Conditional.Field)
	})

	t.Run("should not attach an incomplete conditional rule", func(t *testing.T) {
		field := models.Field{
			ULID: "f1", Slug: "title", Name: "Title", FieldType: models.FieldTypeText,
			Config: models.FieldConfig{"conditionalField": "f-status"},
		}

		input, err := NewText(nil).Build(ctx, "title", field)
		assert.NoError(t, err)
		assert.Nil(t, input.Conditional)
	})

	t.Run("should compile validation rules onto the input", func(t *testing.T) {
		field := models.Field{
			ULID: "f1", Slug: "title", Name: "Title", FieldType: models.FieldTypeText,
			Config: models.FieldConfig{
				"validationRules": []any{
					"required",
					map[string]any{"rule": "max_length", "value": 10},
				},
			},
		}

		input, err := NewText(nil).Build(ctx, "title", field)
		assert.NoError(t, err)
		assert.Equal(t, "required,max=10", input.ValidationTag)
	})
}

func TestTextBuild(t *testing.T) {
	ctx := context.Background()

	t.Run("should default to the text widget", func(t *testing.T) {
		field := models.Field{ULID: "f1", Slug: "title", Name: "Title", FieldType: models.FieldTypeText}

		input, err := NewText(nil).Build(ctx, "title", field)
		assert.NoError(t, err)
		assert.Equal(t, "text", input.Attributes["type"])
	})

	t.Run("should apply number mode attributes only in number mode", func(t *testing.T) {
		field := models.Field{
			ULID: "f1", Slug: "count", Name: "Count", FieldType: models.FieldTypeText,
			Config: models.FieldConfig{"type": "number", "step": 0.5},
		}

		input, err := NewText(nil).Build(ctx, "count", field)
		assert.NoError(t, err)
		assert.Equal(t, 0.5, input.Attributes["step"])
		assert.Equal(t, "numeric", input.Attributes["inputMode"])

		field.Config = models.FieldConfig{"step": 0.5}
		input, err = NewText(nil).Build(ctx, "count", field)
		assert.NoError(t, err)
		_, hasStep := input.Attributes["step"]
		assert.False(t, hasStep)
	})

	t.Run("should omit zero-valued length limits", func(t *testing.T) {
		field := models.Field{
			ULID: "f1", Slug: "title", Name: "Title", FieldType: models.FieldTypeText,
			Config: models.FieldConfig{"minLength": 0, "maxLength": 80},
		}

		input, err := NewText(nil).Build(ctx, "title", field)
		assert.NoError(t, err)
		_, hasMin := input.Attributes["minLength"]
		assert.False(t, hasMin)
		assert.Equal(t, 80, input.Attributes["maxLength"])
	})
}

func TestToggleBuild(t *testing.T) {
	ctx := context.Background()

	t.Run("should honor explicit false on and off values", func(t *testing.T) {
		field := models.Field{
			ULID: "f1", Slug: "active", Name: "Active", FieldType: models.FieldTypeToggle,
			Config: models.FieldConfig{"onValue": false, "offValue": 0},
		}

		input, err := NewToggle().Build(ctx, "active", field)
		assert.NoError(t, err)
		assert.Equal(t, false, input.Attributes["onValue"])
		assert.Equal(t, 0, input.Attributes["offValue"])
	})

	t.Run("should default on and off values when absent", func(t *testing.T) {
		field := models.Field{ULID: "f1", Slug: "active", Name: "Active", FieldType: models.FieldTypeToggle}

		input, err := NewToggle().Build(ctx, "active", field)
		assert.NoError(t, err)
		assert.Equal(t, true, input.Attributes["onValue"])
		assert.Equal(t, false, input.Attributes["offValue"])
	})
}

func TestMergeDefaults(t *testing.T) {
	t.Run("should overlay sparse config without mutating either side", func(t *testing.T) {
		defaults := models.FieldConfig{"required": false, "helperText": ""}
		sparse := models.FieldConfig{"helperText": "hi"}

		merged := sparse.MergeDefaults(defaults)
		assert.Equal(t, "hi", merged["helperText"])
		assert.Equal(t, false, merged["required"])
		assert.Equal(t, "", defaults["helperText"])
		assert.Len(t, sparse, 1)
	})
}
