package fieldtypes

import (
	"context"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/resources"
	"github.com/stretchr/testify/assert"
)

type staticSource struct {
	rows        []map[string]any
	lastFilters []resources.Filter
}

func (s *staticSource) Query(ctx context.Context, filters []resources.Filter) ([]map[string]any, error) {
	s.lastFilters = filters
	return s.rows, nil
}

func testResolver(registry *resources.Registry) *OptionsResolver {
	logger := ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
	return NewOptionsResolver(registry, nil, logger)
}

func TestOptionsResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("should use array options literally", func(t *testing.T) {
		resolver := testResolver(resources.NewRegistry())

		options, err := resolver.Resolve(ctx, models.FieldConfig{
			"optionType": OptionTypeArray,
			"options":    map[string]any{"a": "Alpha", "b": "Beta"},
		})
		assert.NoError(t, err)
		assert.Equal(t, map[string]string{"a": "Alpha", "b": "Beta"}, options)
	})

	t.Run("should stringify non-string labels", func(t *testing.T) {
		resolver := testResolver(resources.NewRegistry())

		options, err := resolver.Resolve(ctx, models.FieldConfig{
			"options": map[string]any{"1": 1},
		})
		assert.NoError(t, err)
		assert.Equal(t, map[string]string{"1": "1"}, options)
	})

	t.Run("should project relationship rows into options", func(t *testing.T) {
		registry := resources.NewRegistry()
		registry.Register("authors", &staticSource{rows: []map[string]any{
			{"id": 1, "name": "Ada"},
			{"id": 2, "name": "Grace"},
		}})

		options, err := testResolver(registry).Resolve(ctx, models.FieldConfig{
			"optionType": OptionTypeRelationship,
			"relations": []any{
				map[string]any{"resource": "authors", "relationKey": "id", "relationValue": "name"},
			},
		})
		assert.NoError(t, err)
		assert.Equal(t, map[string]string{"1": "Ada", "2": "Grace"}, options)
	})

	t.Run("should pass relation filters to the source", func(t *testing.T) {
		registry := resources.NewRegistry()
		source := &staticSource{}
		registry.Register("authors", source)

		_, err := testResolver(registry).Resolve(ctx, models.FieldConfig{
			"optionType": OptionTypeRelationship,
			"relations": []any{
				map[string]any{
					"resource": "authors", "relationKey": "id", "relationValue": "name",
					"relationValue_filters": []any{
						map[string]any{"column": "active", "operator": "=", "value": true},
					},
				},
			},
		})
		assert.NoError(t, err)
		assert.Len(t, source.lastFilters, 1)
		assert.Equal(t, "active", source.lastFilters[0].Column)
	})

	t.Run("should skip rows missing the key or label column", func(t *testing.T) {
		registry := resources.NewRegistry()
		registry.Register("authors", &staticSource{rows: []map[string]any{
			{"id": 1},
			{"name": "orphan"},
			{"id": 2, "name": "Grace"},
		}})

		options, err := testResolver(registry).Resolve(ctx, models.FieldConfig{
			"optionType": OptionTypeRelationship,
			"relations": []any{
				map[string]any{"resource": "authors", "relationKey": "id", "relationValue": "name"},
			},
		})
		assert.NoError(t, err)
		assert.Equal(t, map[string]string{"2": "Grace"}, options)
	})

	t.Run("should contribute nothing for an unknown resource", func(t *testing.T) {
		options, err := testResolver(resources.NewRegistry()).Resolve(ctx, models.FieldConfig{
			"optionType": OptionTypeRelationship,
			"relations": []any{
				map[string]any{"resource": "missing", "relationKey": "id", "relationValue": "name"},
			},
		})
		assert.NoError(t, err)
		assert.Empty(t, options)
	})

	t.Run("should let later relations override earlier keys", func(t *testing.T) {
		registry := resources.NewRegistry()
		registry.Register("first", &staticSource{rows: []map[string]any{{"id": 1, "name": "First"}}})
		registry.Register("second", &staticSource{rows: []map[string]any{{"id": 1, "name": "Second"}}})

		options, err := testResolver(registry).Resolve(ctx, models.FieldConfig{
			"optionType": OptionTypeRelationship,
			"relations": []any{
				map[string]any{"resource": "first", "relationKey": "id", "relationValue": "name"},
				map[string]any{"resource": "second", "relationKey": "id", "relationValue": "name"},
			},
		})
		assert.NoError(t, err)
		assert.Equal(t, map[string]string{"1": "Second"}, options)
	})
}
