package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectFields(t *testing.T) {
	t.Run("should flatten fields before descending into child schemas", func(t *testing.T) {
		tree := Schemas{
			{
				ULID: "s-hero",
				Fields: Fields{
					{ULID: "f-title"},
					{ULID: "f-subtitle"},
				},
				Children: []Schema{
					{
						ULID:   "s-content",
						Fields: Fields{{ULID: "f-body"}},
						Children: []Schema{
							{ULID: "s-deep", Fields: Fields{{ULID: "f-caption"}}},
						},
					},
				},
			},
			{
				ULID:   "s-footer",
				Fields: Fields{{ULID: "f-links"}},
			},
		}

		collected := tree.CollectFields()

		assert.Equal(t, []string{"f-title", "f-subtitle", "f-body", "f-caption", "f-links"}, collected.ULIDs())
	})

	t.Run("should return no fields for an empty tree", func(t *testing.T) {
		assert.Empty(t, Schemas{}.CollectFields())
	})
}

func TestSchemasSortByPosition(t *testing.T) {
	tree := Schemas{
		{
			ULID: "s-b", Position: 2,
			Children: []Schema{
				{ULID: "s-b2", Position: 1},
				{ULID: "s-b1", Position: 0},
			},
		},
		{ULID: "s-a", Position: 1},
	}

	tree.SortByPosition()

	assert.Equal(t, "s-a", tree[0].ULID)
	assert.Equal(t, "s-b", tree[1].ULID)
	assert.Equal(t, "s-b1", tree[1].Children[0].ULID)
	assert.Equal(t, "s-b2", tree[1].Children[1].ULID)
}
