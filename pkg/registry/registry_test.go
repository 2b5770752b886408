package registry

import (
	"context"
	"testing"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/inputs"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/stretchr/testify/assert"
)

// StarRating must have nonzero size: TestRegister distinguishes two instances
// by pointer identity, and zero-size allocations share one address.
type StarRating struct{ _ byte }

func (s *StarRating) Key() string                       { return "star-rating" }
func (s *StarRating) DefaultConfig() models.FieldConfig { return models.FieldConfig{"max": 5} }
func (s *StarRating) Build(ctx context.Context, name string, field models.Field) (inputs.Input, error) {
	return inputs.Input{Type: "star-rating", Name: name}, nil
}
func (s *StarRating) FormSchema() []inputs.SettingsField {
	return []inputs.SettingsField{{Key: "max", Label: "Max Stars", Widget: inputs.WidgetNumber, Default: 5}}
}

type Text struct{ StarRating }

func TestResolve(t *testing.T) {
	t.Run("should resolve every builtin type", func(t *testing.T) {
		registry := New(Deps{})
		for _, key := range []string{
			models.FieldTypeText, models.FieldTypeTextarea, models.FieldTypeRichEditor,
			models.FieldTypeMarkdownEditor, models.FieldTypeRepeater, models.FieldTypeBuilder,
			models.FieldTypeSelect, models.FieldTypeCheckbox, models.FieldTypeCheckboxList,
			models.FieldTypeFileUpload, models.FieldTypeKeyValue, models.FieldTypeRadio,
			models.FieldTypeToggle, models.FieldTypeColor, models.FieldTypeDateTime,
			models.FieldTypeTags,
		} {
			assert.NotNil(t, registry.Resolve(key), key)
		}
	})

	t.Run("should return nil for an unknown key", func(t *testing.T) {
		registry := New(Deps{})
		assert.Nil(t, registry.Resolve("star-rating"))
	})

	t.Run("should resolve custom types after builtins", func(t *testing.T) {
		registry := New(Deps{})
		key := registry.Register(&StarRating{})

		assert.Equal(t, "star-rating", key)
		assert.NotNil(t, registry.Resolve("star-rating"))
	})

	t.Run("should let builtins win over a colliding custom key", func(t *testing.T) {
		registry := New(Deps{})
		registry.Register(&Text{}) // derives the key "text"

		builder := registry.Resolve(models.FieldTypeText)
		_, isCustom := builder.(*Text)
		assert.False(t, isCustom)
	})
}

func TestResolveStrict(t *testing.T) {
	t.Run("should error for an unknown key", func(t *testing.T) {
		registry := New(Deps{})

		_, err := registry.ResolveStrict("star-rating")
		assert.Error(t, err)
		assert.True(t, errors.IsKind(err, errors.KindUnknownFieldType))
		assert.Contains(t, err.Error(), "star-rating")
	})

	t.Run("should return the builder for a known key", func(t *testing.T) {
		registry := New(Deps{})

		builder, err := registry.ResolveStrict(models.FieldTypeText)
		assert.NoError(t, err)
		assert.NotNil(t, builder)
	})
}

func TestRegister(t *testing.T) {
	t.Run("should overwrite earlier registrations for the same key", func(t *testing.T) {
		registry := New(Deps{})
		first := &StarRating{}
		second := &StarRating{}

		registry.Register(first)
		registry.Register(second)

		resolved, ok := registry.Resolve("star-rating").(*StarRating)
		assert.True(t, ok)
		assert.Same(t, second, resolved)
		assert.NotSame(t, first, resolved)
	})
}

func TestAll(t *testing.T) {
	t.Run("should merge builtin and custom entries", func(t *testing.T) {
		registry := New(Deps{})
		registry.Register(&StarRating{})

		all := registry.All()
		assert.Contains(t, all, "star-rating")
		assert.Contains(t, all, models.FieldTypeText)
		assert.Len(t, all, 17)
	})

	t.Run("should agree with Resolve on a colliding key", func(t *testing.T) {
		registry := New(Deps{})
		registry.Register(&Text{}) // derives the key "text"

		all := registry.All()
		assert.Same(t, registry.Resolve(models.FieldTypeText), all[models.FieldTypeText])
		_, isCustom := all[models.FieldTypeText].(*Text)
		assert.False(t, isCustom)
	})
}

type HTMLBlock struct{ StarRating }

type URLInput struct{ StarRating }

func TestDeriveKey(t *testing.T) {
	t.Run("should kebab-case the concrete type name", func(t *testing.T) {
		assert.Equal(t, "star-rating", DeriveKey(&StarRating{}))
	})

	t.Run("should keep an acronym run as one segment", func(t *testing.T) {
		assert.Equal(t, "html-block", DeriveKey(&HTMLBlock{}))
		assert.Equal(t, "url-input", DeriveKey(&URLInput{}))
	})
}

func TestIsContainerType(t *testing.T) {
	assert.True(t, IsContainerType(models.FieldTypeRepeater))
	assert.True(t, IsContainerType(models.FieldTypeBuilder))
	assert.False(t, IsContainerType(models.FieldTypeText))
}
