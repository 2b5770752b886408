package models

import "encoding/json"

// Conditional is the single-condition, single-action rule attached directly to
// a field's config. The referenced field is addressed by ULID; resolution to a
// live form-state path happens at evaluation time.
type Conditional struct {
	Field    string `json:"conditionalField" validate:"required"`
	Operator string `json:"conditionalOperator" validate:"required"`
	Value    any    `json:"conditionalValue" validate:"omitempty"`
	Action   string `json:"conditionalAction" validate:"required"`
}

// Conditional actions. At most one action per field, no composition.
const (
	ConditionalActionShow        = "show"
	ConditionalActionHide        = "hide"
	ConditionalActionRequired    = "required"
	ConditionalActionNotRequired = "not_required"
)

// Visibility rule group logic.
const (
	RuleLogicAnd = "AND"
	RuleLogicOr  = "OR"
)

// Rule condition sources.
const (
	ConditionSourceField          = "field"
	ConditionSourceModelAttribute = "model_attribute"
)

// VisibilityRule is one group in a field's visibility rule list. Groups are
// implicitly AND-ed together; conditions within a group combine via Logic.
type VisibilityRule struct {
	Logic      string          `json:"logic" validate:"omitempty,oneof=AND OR"`
	Conditions []RuleCondition `json:"conditions" validate:"omitempty"`
}

// RuleCondition is a single comparison inside a visibility rule group.
// Field sources resolve a field ULID to a form-state path; model_attribute
// sources read directly under the attribute's own name.
type RuleCondition struct {
	Source   string `json:"source" validate:"required,oneof=field model_attribute"`
	Field    string `json:"field" validate:"omitempty"`    // for source=field: the referenced field ULID
	Property string `json:"property" validate:"omitempty"` // for source=model_attribute: the attribute name
	Operator string `json:"operator" validate:"required"`
	Value    any    `json:"value" validate:"omitempty"`
}

// ValidationRule is one declarative constraint descriptor from a field's
// validationRules config list.
type ValidationRule struct {
	Rule  string `json:"rule" validate:"required"`
	Value any    `json:"value" validate:"omitempty"`
}

// Conditional extracts the conditional rule from the config, if all of its
// required keys are present.
func (c FieldConfig) Conditional() (Conditional, bool) {
	conditional := Conditional{
		Field:    c.GetString(ConfigConditionalField, ""),
		Operator: c.GetString(ConfigConditionalOperator, ""),
		Value:    c[ConfigConditionalValue],
		Action:   c.GetString(ConfigConditionalAction, ""),
	}

	if conditional.Field == "" || conditional.Operator == "" || conditional.Action == "" {
		return Conditional{}, false
	}

	return conditional, true
}

// VisibilityRules extracts the visibility rule groups from the config.
// A missing or malformed list yields nil.
func (c FieldConfig) VisibilityRules() []VisibilityRule {
	raw, ok := c[ConfigVisibilityRules]
	if !ok || raw == nil {
		return nil
	}

	var rules []VisibilityRule
	if !decodeAs(raw, &rules) {
		return nil
	}
	return rules
}

// ValidationRules extracts the declarative validation rule descriptors from
// the config. Bare-string entries are treated as valueless rules.
func (c FieldConfig) ValidationRules() []ValidationRule {
	raw, ok := c[ConfigValidationRules]
	if !ok || raw == nil {
		return nil
	}

	list, ok := raw.([]any)
	if !ok {
		return nil
	}

	rules := make([]ValidationRule, 0, len(list))
	for _, entry := range list {
		if name, ok := entry.(string); ok {
			rules = append(rules, ValidationRule{Rule: name})
			continue
		}

		var rule ValidationRule
		if decodeAs(entry, &rule) && rule.Rule != "" {
			rules = append(rules, rule)
		}
	}

	return rules
}

// decodeAs converts a decoded-JSON shape into a typed struct via a marshal
// round trip.
func decodeAs(raw any, target any) bool {
	b, err := json.Marshal(raw)
	if err != nil {
		return false
	}
	return json.Unmarshal(b, target) == nil
}
