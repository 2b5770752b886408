package mapper

import (
	"context"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/registry"
	"github.com/stretchr/testify/assert"
)

func testMapper() *Mapper {
	logger := ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
	return New(registry.New(registry.Deps{}), logger)
}

func TestFill(t *testing.T) {
	ctx := context.Background()

	t.Run("should short circuit when the record has no field definitions", func(t *testing.T) {
		record := models.ContentRecord{Key: "r1"}
		data := map[string]any{"untouched": true}

		result, err := testMapper().Fill(ctx, record, data)
		assert.NoError(t, err)
		assert.Equal(t, map[string]any{"untouched": true}, result)
	})

	t.Run("should copy stored values verbatim for hookless fields", func(t *testing.T) {
		record := models.ContentRecord{
			Key: "r1",
			Fields: models.Fields{
				{ULID: "f1", Slug: "title", Name: "Title", FieldType: models.FieldTypeText},
			},
			Values: map[string]any{"f1": "hello"},
		}
		data := map[string]any{}

		result, err := testMapper().Fill(ctx, record, data)
		assert.NoError(t, err)

		column := result["values"].(map[string]any)
		assert.Equal(t, "hello", column["f1"])
	})

	t.Run("should fall back to the slug key when the ulid is absent", func(t *testing.T) {
		record := models.ContentRecord{
			Key: "r1",
			Fields: models.Fields{
				{ULID: "f1", Slug: "title", Name: "Title", FieldType: models.FieldTypeText},
			},
			Values: map[string]any{"title": "hello"},
		}

		result, err := testMapper().Fill(ctx, record, map[string]any{})
		assert.NoError(t, err)

		column := result["values"].(map[string]any)
		assert.Equal(t, "hello", column["title"])
		_, hasULID := column["f1"]
		assert.False(t, hasULID)
	})

	t.Run("should leave fields with no stored value absent", func(t *testing.T) {
		record := models.ContentRecord{
			Key: "r1",
			Fields: models.Fields{
				{ULID: "f1", Slug: "title", Name: "Title", FieldType: models.FieldTypeText},
			},
		}

		result, err := testMapper().Fill(ctx, record, map[string]any{})
		assert.NoError(t, err)
		_, ok := result["values"]
		assert.False(t, ok)
	})

	t.Run("should skip fields with an unregistered type", func(t *testing.T) {
		record := models.ContentRecord{
			Key: "r1",
			Fields: models.Fields{
				{ULID: "f1", Slug: "custom", Name: "Custom", FieldType: "star-rating"},
			},
			Values: map[string]any{"f1": 4},
		}

		result, err := testMapper().Fill(ctx, record, map[string]any{})
		assert.NoError(t, err)
		_, ok := result["values"]
		assert.False(t, ok)
	})

	t.Run("should decode repeater row lists through the fill hook", func(t *testing.T) {
		record := models.ContentRecord{
			Key: "r1",
			Fields: models.Fields{
				{ULID: "rep", Slug: "gallery", Name: "Gallery", FieldType: models.FieldTypeRepeater},
			},
			Values: map[string]any{"rep": `[{"caption":"first"}]`},
		}

		result, err := testMapper().Fill(ctx, record, map[string]any{})
		assert.NoError(t, err)

		column := result["values"].(map[string]any)
		rows, ok := column["rep"].([]any)
		assert.True(t, ok)
		assert.Len(t, rows, 1)
		assert.Equal(t, "first", rows[0].(map[string]any)["caption"])
	})

	t.Run("should decode stored rich editor documents", func(t *testing.T) {
		record := models.ContentRecord{
			Key: "r1",
			Fields: models.Fields{
				{ULID: "re", Slug: "body", Name: "Body", FieldType: models.FieldTypeRichEditor},
			},
			Values: map[string]any{"re": `{"type":"doc","content":[]}`},
		}

		result, err := testMapper().Fill(ctx, record, map[string]any{})
		assert.NoError(t, err)

		column := result["values"].(map[string]any)
		doc, ok := column["re"].(map[string]any)
		assert.True(t, ok)
		assert.Equal(t, "doc", doc["type"])
	})

	t.Run("should be idempotent", func(t *testing.T) {
		record := models.ContentRecord{
			Key: "r1",
			Fields: models.Fields{
				{ULID: "f1", Slug: "title", Name: "Title", FieldType: models.FieldTypeText},
				{ULID: "rep", Slug: "gallery", Name: "Gallery", FieldType: models.FieldTypeRepeater},
			},
			Values: map[string]any{
				"f1":  "hello",
				"rep": `[{"caption":"first"}]`,
			},
		}

		m := testMapper()
		once, err := m.Fill(ctx, record, map[string]any{})
		assert.NoError(t, err)

		twice, err := m.Fill(ctx, record, once)
		assert.NoError(t, err)
		assert.Equal(t, once, twice)
	})
}

func TestSave(t *testing.T) {
	ctx := context.Background()

	t.Run("should pass hookless fields through unchanged", func(t *testing.T) {
		record := models.ContentRecord{
			Key: "r1",
			Fields: models.Fields{
				{ULID: "f1", Slug: "title", Name: "Title", FieldType: models.FieldTypeText},
			},
		}
		data := map[string]any{"values": map[string]any{"f1": "hello"}}

		result, err := testMapper().Save(ctx, record, data)
		assert.NoError(t, err)

		column := result["values"].(map[string]any)
		assert.Equal(t, "hello", column["f1"])
	})

	t.Run("should encode rich editor documents through the save hook", func(t *testing.T) {
		record := models.ContentRecord{
			Key: "r1",
			Fields: models.Fields{
				{ULID: "re", Slug: "body", Name: "Body", FieldType: models.FieldTypeRichEditor},
			},
		}
		data := map[string]any{"values": map[string]any{
			"re": map[string]any{"type": "doc", "content": []any{}},
		}}

		result, err := testMapper().Save(ctx, record, data)
		assert.NoError(t, err)

		column := result["values"].(map[string]any)
		assert.Equal(t, `{"content":[],"type":"doc"}`, column["re"])
	})

	t.Run("should mutate hook fields inside container rows through a scoped view", func(t *testing.T) {
		record := models.ContentRecord{
			Key: "r1",
			Fields: models.Fields{
				{
					ULID: "rep", Slug: "sections", Name: "Sections", FieldType: models.FieldTypeRepeater,
					Children: models.Fields{
						{ULID: "re", Slug: "body", Name: "Body", FieldType: models.FieldTypeRichEditor},
					},
				},
			},
		}
		data := map[string]any{"values": map[string]any{
			"sections": []any{
				map[string]any{"body": map[string]any{"type": "doc", "content": []any{}}},
			},
		}}

		result, err := testMapper().Save(ctx, record, data)
		assert.NoError(t, err)

		column := result["values"].(map[string]any)
		rows := column["sections"].([]any)
		row := rows[0].(map[string]any)
		assert.Equal(t, `{"content":[],"type":"doc"}`, row["body"])
	})

	t.Run("should leave sibling row values untouched by scoped mutation", func(t *testing.T) {
		record := models.ContentRecord{
			Key: "r1",
			Fields: models.Fields{
				{
					ULID: "rep", Slug: "sections", Name: "Sections", FieldType: models.FieldTypeRepeater,
					Children: models.Fields{
						{ULID: "re", Slug: "body", Name: "Body", FieldType: models.FieldTypeRichEditor},
						{ULID: "f2", Slug: "title", Name: "Title", FieldType: models.FieldTypeText},
					},
				},
			},
		}
		data := map[string]any{"values": map[string]any{
			"sections": []any{
				map[string]any{
					"body":  map[string]any{"type": "doc", "content": []any{}},
					"title": "untouched",
				},
			},
		}}

		result, err := testMapper().Save(ctx, record, data)
		assert.NoError(t, err)

		row := result["values"].(map[string]any)["sections"].([]any)[0].(map[string]any)
		assert.Equal(t, "untouched", row["title"])
		assert.Equal(t, `{"content":[],"type":"doc"}`, row["body"])
	})
}
