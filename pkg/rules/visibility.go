package rules

import "github.com/Ramsey-B/fern/pkg/models"

// EvaluateVisibility reports whether a field is visible under its visibility
// rule groups: every group must hold (groups are implicitly AND-ed), while
// conditions inside a group combine via the group's own AND/OR logic.
//
// A group with zero conditions is skipped. A condition whose field reference
// cannot be resolved is skipped without counting either way; if that leaves a
// group with no evaluated conditions, the group is skipped too.
func EvaluateVisibility(groups []models.VisibilityRule, view FormStateView, resolve PathResolver) bool {
	for _, group := range groups {
		if len(group.Conditions) == 0 {
			continue
		}

		if !evaluateGroup(group, view, resolve) {
			return false
		}
	}

	return true
}

func evaluateGroup(group models.VisibilityRule, view FormStateView, resolve PathResolver) bool {
	evaluated := 0
	matched := 0

	for _, condition := range group.Conditions {
		result, ok := evaluateCondition(condition, view, resolve)
		if !ok {
			continue
		}

		evaluated++
		if result {
			matched++
		}
	}

	if evaluated == 0 {
		return true
	}

	if group.Logic == models.RuleLogicOr {
		return matched > 0
	}

	// AND is the default when logic is absent or unrecognized.
	return matched == evaluated
}

// evaluateCondition returns the condition's result and whether it could be
// evaluated at all.
func evaluateCondition(condition models.RuleCondition, view FormStateView, resolve PathResolver) (bool, bool) {
	var actual any

	switch condition.Source {
	case models.ConditionSourceModelAttribute:
		// Model attributes live under their own name, no id indirection.
		actual, _ = view.Read(condition.Property)
	case models.ConditionSourceField:
		path, ok := resolve(condition.Field)
		if !ok {
			return false, false
		}
		actual, _ = view.Read(path)
	default:
		return false, false
	}

	return Evaluate(actual, condition.Operator, condition.Value), true
}
