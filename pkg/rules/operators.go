package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Ramsey-B/fern/pkg/utils"
)

// Condition operators. The conditional evaluator accepts the first eight; the
// visibility evaluator accepts all of them.
const (
	OpEquals             = "equals"
	OpNotEquals          = "not_equals"
	OpContains           = "contains"
	OpNotContains        = "not_contains"
	OpStartsWith         = "starts_with"
	OpEndsWith           = "ends_with"
	OpIsEmpty            = "is_empty"
	OpIsNotEmpty         = "is_not_empty"
	OpGreaterThan        = "greater_than"
	OpLessThan           = "less_than"
	OpGreaterThanOrEqual = "greater_than_or_equal"
	OpLessThanOrEqual    = "less_than_or_equal"
	OpIn                 = "in"
	OpNotIn              = "not_in"
)

// Evaluate applies operator to the actual form-state value and the expected
// rule value.
//
// Semantics:
//   - equals/not_equals use loose equality ("1" equals 1).
//   - string operators are false when either operand is not a string.
//   - numeric operators are false when either operand is not numeric.
//   - is_empty/is_not_empty use generic blankness (false and 0 are not blank).
//   - in splits the expected string on commas; a non-string expected value is
//     false. not_in is vacuously TRUE for a non-string expected value. The
//     asymmetry is intentional and load-bearing for existing rule configs.
func Evaluate(actual any, operator string, expected any) bool {
	switch operator {
	case OpEquals:
		return looseEquals(actual, expected)
	case OpNotEquals:
		return !looseEquals(actual, expected)
	case OpContains:
		actualStr, expectedStr, ok := bothStrings(actual, expected)
		return ok && strings.Contains(actualStr, expectedStr)
	case OpNotContains:
		actualStr, expectedStr, ok := bothStrings(actual, expected)
		return ok && !strings.Contains(actualStr, expectedStr)
	case OpStartsWith:
		actualStr, expectedStr, ok := bothStrings(actual, expected)
		return ok && strings.HasPrefix(actualStr, expectedStr)
	case OpEndsWith:
		actualStr, expectedStr, ok := bothStrings(actual, expected)
		return ok && strings.HasSuffix(actualStr, expectedStr)
	case OpIsEmpty:
		return utils.IsBlankValue(actual)
	case OpIsNotEmpty:
		return !utils.IsBlankValue(actual)
	case OpGreaterThan:
		a, b, ok := bothNumbers(actual, expected)
		return ok && a > b
	case OpLessThan:
		a, b, ok := bothNumbers(actual, expected)
		return ok && a < b
	case OpGreaterThanOrEqual:
		a, b, ok := bothNumbers(actual, expected)
		return ok && a >= b
	case OpLessThanOrEqual:
		a, b, ok := bothNumbers(actual, expected)
		return ok && a <= b
	case OpIn:
		expectedStr, ok := expected.(string)
		if !ok {
			return false
		}
		return inList(actual, expectedStr)
	case OpNotIn:
		expectedStr, ok := expected.(string)
		if !ok {
			// Vacuously true. See the package note above; do not "fix" this
			// to mirror in.
			return true
		}
		return !inList(actual, expectedStr)
	}

	return false
}

func inList(actual any, expected string) bool {
	for _, part := range strings.Split(expected, ",") {
		if looseEquals(actual, strings.TrimSpace(part)) {
			return true
		}
	}
	return false
}

func bothStrings(actual, expected any) (string, string, bool) {
	actualStr, ok := actual.(string)
	if !ok {
		return "", "", false
	}
	expectedStr, ok := expected.(string)
	if !ok {
		return "", "", false
	}
	return actualStr, expectedStr, true
}

func bothNumbers(actual, expected any) (float64, float64, bool) {
	a, ok := toNumber(actual)
	if !ok {
		return 0, 0, false
	}
	b, ok := toNumber(expected)
	if !ok {
		return 0, 0, false
	}
	return a, b, true
}

func toNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return parsed, err == nil
	}
	return 0, false
}

// looseEquals compares with type coercion: numbers compare numerically even
// across string representations, bools compare as bools, everything else
// compares by string form.
func looseEquals(actual, expected any) bool {
	if actual == nil || expected == nil {
		return actual == nil && expected == nil
	}

	if a, ok := toNumber(actual); ok {
		if b, ok := toNumber(expected); ok {
			return a == b
		}
	}

	if a, ok := actual.(bool); ok {
		if b, ok := expected.(bool); ok {
			return a == b
		}
	}

	return fmt.Sprintf("%v", actual) == fmt.Sprintf("%v", expected)
}
