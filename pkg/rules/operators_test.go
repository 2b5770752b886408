package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateEquals(t *testing.T) {
	t.Run("should match identical strings", func(t *testing.T) {
		assert.True(t, Evaluate("draft", OpEquals, "draft"))
	})

	t.Run("should match numbers across representations", func(t *testing.T) {
		assert.True(t, Evaluate("1", OpEquals, 1))
		assert.True(t, Evaluate(1.0, OpEquals, "1"))
	})

	t.Run("should compare bools as bools", func(t *testing.T) {
		assert.True(t, Evaluate(true, OpEquals, true))
		assert.False(t, Evaluate(true, OpEquals, false))
	})

	t.Run("should treat two nils as equal", func(t *testing.T) {
		assert.True(t, Evaluate(nil, OpEquals, nil))
		assert.False(t, Evaluate(nil, OpEquals, "x"))
	})

	t.Run("should invert for not_equals", func(t *testing.T) {
		assert.False(t, Evaluate("draft", OpNotEquals, "draft"))
		assert.True(t, Evaluate("draft", OpNotEquals, "published"))
	})
}

func TestEvaluateStringOperators(t *testing.T) {
	t.Run("should handle contains and not_contains", func(t *testing.T) {
		assert.True(t, Evaluate("hello world", OpContains, "world"))
		assert.False(t, Evaluate("hello world", OpNotContains, "world"))
		assert.True(t, Evaluate("hello world", OpNotContains, "mars"))
	})

	t.Run("should handle starts_with and ends_with", func(t *testing.T) {
		assert.True(t, Evaluate("hello world", OpStartsWith, "hello"))
		assert.True(t, Evaluate("hello world", OpEndsWith, "world"))
		assert.False(t, Evaluate("hello world", OpStartsWith, "world"))
	})

	t.Run("should return false when either operand is not a string", func(t *testing.T) {
		assert.False(t, Evaluate(42, OpContains, "4"))
		assert.False(t, Evaluate("42", OpContains, 4))
		assert.False(t, Evaluate(42, OpNotContains, "4"))
	})
}

func TestEvaluateEmptiness(t *testing.T) {
	t.Run("should treat nil and empty string as empty", func(t *testing.T) {
		assert.True(t, Evaluate(nil, OpIsEmpty, nil))
		assert.True(t, Evaluate("", OpIsEmpty, nil))
		assert.True(t, Evaluate([]any{}, OpIsEmpty, nil))
	})

	t.Run("should not treat false or zero as empty", func(t *testing.T) {
		assert.False(t, Evaluate(false, OpIsEmpty, nil))
		assert.False(t, Evaluate(0, OpIsEmpty, nil))
		assert.True(t, Evaluate(0, OpIsNotEmpty, nil))
	})
}

func TestEvaluateNumericOperators(t *testing.T) {
	t.Run("should compare numbers", func(t *testing.T) {
		assert.True(t, Evaluate(5, OpGreaterThan, 3))
		assert.True(t, Evaluate(3, OpLessThan, 5))
		assert.True(t, Evaluate(5, OpGreaterThanOrEqual, 5))
		assert.True(t, Evaluate(5, OpLessThanOrEqual, 5))
	})

	t.Run("should coerce numeric strings", func(t *testing.T) {
		assert.True(t, Evaluate("10", OpGreaterThan, "9"))
		assert.True(t, Evaluate("10", OpGreaterThan, 9.5))
	})

	t.Run("should return false for non-numeric operands", func(t *testing.T) {
		assert.False(t, Evaluate("abc", OpGreaterThan, 1))
		assert.False(t, Evaluate(1, OpLessThan, "abc"))
	})
}

func TestEvaluateListOperators(t *testing.T) {
	t.Run("should match values in a comma separated list", func(t *testing.T) {
		assert.True(t, Evaluate("b", OpIn, "a, b, c"))
		assert.False(t, Evaluate("d", OpIn, "a, b, c"))
		assert.True(t, Evaluate(2, OpIn, "1,2,3"))
	})

	t.Run("should handle not_in", func(t *testing.T) {
		assert.False(t, Evaluate("b", OpNotIn, "a, b, c"))
		assert.True(t, Evaluate("d", OpNotIn, "a, b, c"))
	})

	t.Run("should return false for in with a non-string list", func(t *testing.T) {
		assert.False(t, Evaluate("a", OpIn, []string{"a", "b"}))
	})

	t.Run("should return true for not_in with a non-string list", func(t *testing.T) {
		// Asymmetric with in on purpose; existing rule configs depend on it.
		assert.True(t, Evaluate("a", OpNotIn, []string{"a", "b"}))
		assert.True(t, Evaluate("a", OpNotIn, nil))
	})
}

func TestEvaluateUnknownOperator(t *testing.T) {
	t.Run("should return false", func(t *testing.T) {
		assert.False(t, Evaluate("a", "matches_regex", "a"))
	})
}
