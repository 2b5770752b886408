package rules

import "github.com/Ramsey-B/fern/pkg/models"

// Decision captures what a conditional rule wants changed on the input. Nil
// pointers mean "leave as configured".
type Decision struct {
	Visible  *bool
	Required *bool
}

// IsNoop reports whether the rule had no effect.
func (d Decision) IsNoop() bool {
	return d.Visible == nil && d.Required == nil
}

// EvaluateConditional evaluates a field's conditional rule against live form
// state. When the referenced field cannot be resolved to a form-state path the
// whole rule is a no-op, never an error. An unknown action is likewise a no-op.
func EvaluateConditional(conditional models.Conditional, view FormStateView, resolve PathResolver) Decision {
	path, ok := resolve(conditional.Field)
	if !ok {
		return Decision{}
	}

	actual, _ := view.Read(path)
	result := Evaluate(actual, conditional.Operator, conditional.Value)

	switch conditional.Action {
	case models.ConditionalActionShow:
		return Decision{Visible: &result}
	case models.ConditionalActionHide:
		hidden := !result
		return Decision{Visible: &hidden}
	case models.ConditionalActionRequired:
		return Decision{Required: &result}
	case models.ConditionalActionNotRequired:
		notRequired := !result
		return Decision{Required: &notRequired}
	}

	return Decision{}
}
