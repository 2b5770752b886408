package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStorageKey(t *testing.T) {
	t.Run("should prefer the slug", func(t *testing.T) {
		field := Field{ULID: "01J8A", Slug: "hero_title"}

		assert.Equal(t, "hero_title", field.StorageKey())
	})

	t.Run("should fall back to the ulid", func(t *testing.T) {
		field := Field{ULID: "01J8A"}

		assert.Equal(t, "01J8A", field.StorageKey())
	})
}

func TestIsContainer(t *testing.T) {
	t.Run("should report repeater and builder as containers", func(t *testing.T) {
		assert.True(t, Field{FieldType: FieldTypeRepeater}.IsContainer())
		assert.True(t, Field{FieldType: FieldTypeBuilder}.IsContainer())
		assert.False(t, Field{FieldType: FieldTypeText}.IsContainer())
	})
}

func TestMatches(t *testing.T) {
	t.Run("should match by ulid or slug", func(t *testing.T) {
		field := Field{ULID: "01J8A", Slug: "hero_title"}

		assert.True(t, field.Matches("01J8A"))
		assert.True(t, field.Matches("hero_title"))
		assert.False(t, field.Matches("other"))
	})

	t.Run("should never match the empty key", func(t *testing.T) {
		field := Field{ULID: "01J8A"}

		assert.False(t, field.Matches(""))
	})
}

func TestFieldsFind(t *testing.T) {
	fields := Fields{
		{ULID: "01J8A", Slug: "title"},
		{
			ULID:      "01J8B",
			Slug:      "gallery",
			FieldType: FieldTypeRepeater,
			Children: Fields{
				{ULID: "01J8C", Slug: "caption"},
			},
		},
	}

	t.Run("should find a top level field", func(t *testing.T) {
		found, ok := fields.Find("title")

		assert.True(t, ok)
		assert.Equal(t, "01J8A", found.ULID)
	})

	t.Run("should descend into children", func(t *testing.T) {
		found, ok := fields.Find("01J8C")

		assert.True(t, ok)
		assert.Equal(t, "caption", found.Slug)
	})

	t.Run("should miss unknown keys", func(t *testing.T) {
		_, ok := fields.Find("missing")

		assert.False(t, ok)
	})
}

func TestFieldsFlatten(t *testing.T) {
	t.Run("should list fields and descendants in definition order", func(t *testing.T) {
		fields := Fields{
			{ULID: "a", Children: Fields{{ULID: "a1"}, {ULID: "a2"}}},
			{ULID: "b"},
		}

		flat := fields.Flatten()

		assert.Equal(t, []string{"a", "a1", "a2", "b"}, flat.ULIDs())
	})
}

func TestSortByPosition(t *testing.T) {
	t.Run("should order siblings by position", func(t *testing.T) {
		fields := Fields{
			{ULID: "c", Position: 3},
			{ULID: "a", Position: 1},
			{ULID: "b", Position: 2},
		}

		fields.SortByPosition()

		assert.Equal(t, []string{"a", "b", "c"}, fields.ULIDs())
	})

	t.Run("should keep insertion order on ties", func(t *testing.T) {
		fields := Fields{
			{ULID: "first", Position: 1},
			{ULID: "second", Position: 1},
		}

		fields.SortByPosition()

		assert.Equal(t, []string{"first", "second"}, fields.ULIDs())
	})
}
