package rules

import (
	"testing"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestEvaluateVisibility(t *testing.T) {
	view := MapView{
		"values": map[string]any{
			"status": "published",
			"score":  7,
		},
		"locale": "en",
	}
	resolve := resolverFor(map[string]string{
		"f-status": "values.status",
		"f-score":  "values.score",
	})

	t.Run("should be visible with no rule groups", func(t *testing.T) {
		assert.True(t, EvaluateVisibility(nil, view, resolve))
	})

	t.Run("should AND conditions within a group by default", func(t *testing.T) {
		groups := []models.VisibilityRule{{
			Conditions: []models.RuleCondition{
				{Source: models.ConditionSourceField, Field: "f-status", Operator: OpEquals, Value: "published"},
				{Source: models.ConditionSourceField, Field: "f-score", Operator: OpGreaterThan, Value: 5},
			},
		}}
		assert.True(t, EvaluateVisibility(groups, view, resolve))

		groups[0].Conditions[1].Value = 10
		assert.False(t, EvaluateVisibility(groups, view, resolve))
	})

	t.Run("should OR conditions when the group logic is OR", func(t *testing.T) {
		groups := []models.VisibilityRule{{
			Logic: models.RuleLogicOr,
			Conditions: []models.RuleCondition{
				{Source: models.ConditionSourceField, Field: "f-status", Operator: OpEquals, Value: "draft"},
				{Source: models.ConditionSourceField, Field: "f-score", Operator: OpGreaterThan, Value: 5},
			},
		}}
		assert.True(t, EvaluateVisibility(groups, view, resolve))
	})

	t.Run("should AND groups together", func(t *testing.T) {
		groups := []models.VisibilityRule{
			{Conditions: []models.RuleCondition{
				{Source: models.ConditionSourceField, Field: "f-status", Operator: OpEquals, Value: "published"},
			}},
			{Conditions: []models.RuleCondition{
				{Source: models.ConditionSourceField, Field: "f-score", Operator: OpGreaterThan, Value: 10},
			}},
		}
		assert.False(t, EvaluateVisibility(groups, view, resolve))
	})

	t.Run("should skip empty groups", func(t *testing.T) {
		groups := []models.VisibilityRule{
			{Logic: models.RuleLogicAnd},
			{Conditions: []models.RuleCondition{
				{Source: models.ConditionSourceField, Field: "f-status", Operator: OpEquals, Value: "published"},
			}},
		}
		assert.True(t, EvaluateVisibility(groups, view, resolve))
	})

	t.Run("should skip unresolvable conditions without counting them", func(t *testing.T) {
		groups := []models.VisibilityRule{{
			Conditions: []models.RuleCondition{
				{Source: models.ConditionSourceField, Field: "deleted-field", Operator: OpEquals, Value: "x"},
				{Source: models.ConditionSourceField, Field: "f-status", Operator: OpEquals, Value: "published"},
			},
		}}
		assert.True(t, EvaluateVisibility(groups, view, resolve))
	})

	t.Run("should treat a group with only unresolvable conditions as passing", func(t *testing.T) {
		groups := []models.VisibilityRule{{
			Conditions: []models.RuleCondition{
				{Source: models.ConditionSourceField, Field: "deleted-field", Operator: OpEquals, Value: "x"},
			},
		}}
		assert.True(t, EvaluateVisibility(groups, view, resolve))
	})

	t.Run("should read model attributes directly by property name", func(t *testing.T) {
		groups := []models.VisibilityRule{{
			Conditions: []models.RuleCondition{
				{Source: models.ConditionSourceModelAttribute, Property: "locale", Operator: OpEquals, Value: "en"},
			},
		}}
		assert.True(t, EvaluateVisibility(groups, view, resolve))

		groups[0].Conditions[0].Value = "fr"
		assert.False(t, EvaluateVisibility(groups, view, resolve))
	})

	t.Run("should skip conditions with an unknown source", func(t *testing.T) {
		groups := []models.VisibilityRule{{
			Conditions: []models.RuleCondition{
				{Source: "cookie", Property: "locale", Operator: OpEquals, Value: "en"},
			},
		}}
		assert.True(t, EvaluateVisibility(groups, view, resolve))
	})
}
