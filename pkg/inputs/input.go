// Package inputs defines the renderable form-input node handed to the
// rendering layer. The node is deliberately dumb: static attributes resolved
// from field config at build time, plus the raw conditional/visibility rule
// config. The rendering layer re-evaluates the rule helpers against a live
// FormStateView on every render, so show/hide/require decisions always track
// current form state.
package inputs

import (
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/rules"
)

// Input is one renderable form input.
type Input struct {
	FieldULID  string            `json:"field_ulid"`
	Key        string            `json:"key"`  // storage key (slug or ulid)
	Name       string            `json:"name"` // form input name
	Label      string            `json:"label"`
	Type       string            `json:"type"` // field type key, doubles as widget kind
	Required   bool              `json:"required"`
	Disabled   bool              `json:"disabled"`
	Hidden     bool              `json:"hidden"`
	HelperText string            `json:"helper_text,omitempty"`
	Hint       string            `json:"hint,omitempty"`
	HintColor  string            `json:"hint_color,omitempty"`
	HintIcon   string            `json:"hint_icon,omitempty"`
	Attributes map[string]any    `json:"attributes,omitempty"` // type-specific render attributes
	Options    map[string]string `json:"options,omitempty"`    // selectable values, key -> label

	// ValidationTag is the compiled constraint expression attached by the
	// validation rule applier.
	ValidationTag string `json:"validation_tag,omitempty"`

	Conditional     *models.Conditional     `json:"conditional,omitempty"`
	VisibilityRules []models.VisibilityRule `json:"visibility_rules,omitempty"`

	// Children are the sub-inputs of a container (repeater/builder) type.
	Children []Input `json:"children,omitempty"`
}

// IsVisible resolves the input's effective visibility against live form
// state: static hidden config, then the conditional rule, then the visibility
// rule groups. All three must agree the input is visible.
func (i Input) IsVisible(view rules.FormStateView, resolve rules.PathResolver) bool {
	visible := !i.Hidden

	if i.Conditional != nil {
		decision := rules.EvaluateConditional(*i.Conditional, view, resolve)
		if decision.Visible != nil {
			visible = *decision.Visible
		}
	}

	if !visible {
		return false
	}

	if len(i.VisibilityRules) > 0 {
		return rules.EvaluateVisibility(i.VisibilityRules, view, resolve)
	}

	return true
}

// IsRequired resolves the input's effective required flag against live form
// state.
func (i Input) IsRequired(view rules.FormStateView, resolve rules.PathResolver) bool {
	required := i.Required

	if i.Conditional != nil {
		decision := rules.EvaluateConditional(*i.Conditional, view, resolve)
		if decision.Required != nil {
			required = *decision.Required
		}
	}

	return required
}

// SettingsField describes one entry of a field type's configuration UI. The
// set of keys across a builder's FormSchema mirrors its DefaultConfig exactly;
// the inspector enforces this contract.
type SettingsField struct {
	Key     string            `json:"key"`
	Label   string            `json:"label"`
	Widget  string            `json:"widget"` // widget kind for the settings panel
	Options map[string]string `json:"options,omitempty"`
	Default any               `json:"default,omitempty"`
}

// Settings panel widget kinds.
const (
	WidgetText     = "text"
	WidgetToggle   = "toggle"
	WidgetNumber   = "number"
	WidgetSelect   = "select"
	WidgetKeyValue = "key-value"
	WidgetList     = "list"
)
