package mapper

import (
	"context"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/store"
	"github.com/stretchr/testify/assert"
)

func testPersister(s store.ValueStore) *Persister {
	logger := ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
	return NewPersister(s, logger)
}

func persistRecord(fields ...models.Field) models.ContentRecord {
	return models.ContentRecord{Key: "r1", Fields: fields}
}

func TestPersist(t *testing.T) {
	ctx := context.Background()
	title := models.Field{ULID: "f1", Slug: "title", Name: "Title", FieldType: models.FieldTypeText}

	t.Run("should store scalar values directly", func(t *testing.T) {
		memory := store.NewMemoryStore()
		persisted, err := testPersister(memory).Persist(ctx, persistRecord(title), map[string]any{
			"title": "hello",
		})

		assert.NoError(t, err)
		assert.Equal(t, []string{"f1"}, persisted)
		assert.Equal(t, "hello", memory.Values("r1")["f1"])
	})

	t.Run("should key stored rows by field ulid even when submitted by slug", func(t *testing.T) {
		memory := store.NewMemoryStore()
		_, err := testPersister(memory).Persist(ctx, persistRecord(title), map[string]any{
			"title": "hello",
		})

		assert.NoError(t, err)
		_, ok := memory.Values("r1")["title"]
		assert.False(t, ok)
	})

	t.Run("should delete the stored row for blank values", func(t *testing.T) {
		memory := store.NewMemoryStore()
		assert.NoError(t, memory.Upsert(ctx, "r1", "f1", "old"))

		persisted, err := testPersister(memory).Persist(ctx, persistRecord(title), map[string]any{
			"title": "",
		})

		assert.NoError(t, err)
		assert.Equal(t, []string{"f1"}, persisted)
		_, ok := memory.Values("r1")["f1"]
		assert.False(t, ok)
	})

	t.Run("should not treat false or zero as blank", func(t *testing.T) {
		memory := store.NewMemoryStore()
		toggle := models.Field{ULID: "f2", Slug: "active", Name: "Active", FieldType: models.FieldTypeToggle}

		_, err := testPersister(memory).Persist(ctx, persistRecord(toggle), map[string]any{
			"active": false,
		})

		assert.NoError(t, err)
		assert.Equal(t, false, memory.Values("r1")["f2"])
	})

	t.Run("should skip keys with no field definition", func(t *testing.T) {
		memory := store.NewMemoryStore()
		persisted, err := testPersister(memory).Persist(ctx, persistRecord(title), map[string]any{
			"unknown": "x",
		})

		assert.NoError(t, err)
		assert.Empty(t, persisted)
		assert.Empty(t, memory.Values("r1"))
	})

	t.Run("should json encode arrays", func(t *testing.T) {
		memory := store.NewMemoryStore()
		tags := models.Field{ULID: "f3", Slug: "tags", Name: "Tags", FieldType: models.FieldTypeTags}

		_, err := testPersister(memory).Persist(ctx, persistRecord(tags), map[string]any{
			"tags": []any{"a", "b"},
		})

		assert.NoError(t, err)
		assert.Equal(t, `["a","b"]`, memory.Values("r1")["f3"])
	})

	t.Run("should re-encode the value wrapper some widgets submit", func(t *testing.T) {
		memory := store.NewMemoryStore()
		tags := models.Field{ULID: "f3", Slug: "tags", Name: "Tags", FieldType: models.FieldTypeTags}

		_, err := testPersister(memory).Persist(ctx, persistRecord(tags), map[string]any{
			"tags": map[string]any{"value": []any{"a", "b"}},
		})

		assert.NoError(t, err)
		assert.Equal(t, `["a","b"]`, memory.Values("r1")["f3"])
	})

	t.Run("should leave multi-key maps alone", func(t *testing.T) {
		memory := store.NewMemoryStore()
		kv := models.Field{ULID: "f4", Slug: "meta", Name: "Meta", FieldType: models.FieldTypeKeyValue}

		_, err := testPersister(memory).Persist(ctx, persistRecord(kv), map[string]any{
			"meta": map[string]any{"value": []any{"a"}, "other": true},
		})

		assert.NoError(t, err)
		stored, ok := memory.Values("r1")["f4"].(map[string]any)
		assert.True(t, ok)
		assert.Equal(t, true, stored["other"])
	})

	t.Run("should decode nested json strings inside container values", func(t *testing.T) {
		memory := store.NewMemoryStore()
		gallery := models.Field{ULID: "rep", Slug: "gallery", Name: "Gallery", FieldType: models.FieldTypeRepeater}

		_, err := testPersister(memory).Persist(ctx, persistRecord(gallery), map[string]any{
			"gallery": []any{
				map[string]any{"slides": `[{"caption":"x"}]`},
			},
		})

		assert.NoError(t, err)
		assert.Equal(t, `[{"slides":[{"caption":"x"}]}]`, memory.Values("r1")["rep"])
	})

	t.Run("should persist values for fields nested inside containers", func(t *testing.T) {
		memory := store.NewMemoryStore()
		caption := models.Field{ULID: "f5", Slug: "caption", Name: "Caption", FieldType: models.FieldTypeText}
		gallery := models.Field{
			ULID: "rep", Slug: "gallery", Name: "Gallery", FieldType: models.FieldTypeRepeater,
			Children: models.Fields{caption},
		}

		_, err := testPersister(memory).Persist(ctx, persistRecord(gallery), map[string]any{
			"caption": "standalone",
		})

		assert.NoError(t, err)
		assert.Equal(t, "standalone", memory.Values("r1")["f5"])
	})
}

func TestDecodeJSONStrings(t *testing.T) {
	t.Run("should decode repeatedly until stable", func(t *testing.T) {
		double := `"[1,2]"` // a JSON string containing a JSON array
		decoded := decodeJSONStrings(double)
		assert.Equal(t, []any{float64(1), float64(2)}, decoded)
	})

	t.Run("should leave plain strings alone", func(t *testing.T) {
		assert.Equal(t, "hello", decodeJSONStrings("hello"))
	})

	t.Run("should leave numeric strings decoded once", func(t *testing.T) {
		assert.Equal(t, float64(42), decodeJSONStrings("42"))
	})

	t.Run("should stop on strings that decode to themselves", func(t *testing.T) {
		// `"x"` decodes to the string x; x itself is not JSON, so this
		// terminates rather than looping.
		assert.Equal(t, "x", decodeJSONStrings(`"x"`))
	})
}
