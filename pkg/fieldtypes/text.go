package fieldtypes

import (
	"context"

	"github.com/Ramsey-B/fern/pkg/inputs"
	"github.com/Ramsey-B/fern/pkg/models"
)

// Text is the single-line input type. Its "type" option switches the widget
// between text, email, tel, number, url and password modes; number mode
// additionally honors step and inputMode.
type Text struct {
	options *OptionsResolver
}

func NewText(options *OptionsResolver) *Text {
	return &Text{options: options}
}

func (t *Text) Key() string {
	return models.FieldTypeText
}

func (t *Text) DefaultConfig() models.FieldConfig {
	return withBase(models.FieldConfig{
		"readOnly":    false,
		"placeholder": "",
		"mask":        "",
		"minLength":   0,
		"maxLength":   0,
		"type":        "text",
		"step":        0,
		"inputMode":   "",
		"telRegex":    "",
		"revealable":  false,
		"prefix":      "",
		"suffix":      "",
		"optionType":  OptionTypeArray,
		"options":     map[string]any{},
		"relations":   []any{},
	})
}

func (t *Text) Build(ctx context.Context, name string, field models.Field) (inputs.Input, error) {
	defaults := t.DefaultConfig()
	cfg := field.Config

	input := buildBase(models.FieldTypeText, name, field, defaults)

	inputType := cfg.GetString("type", defaults.GetString("type", "text"))
	input.Attributes["type"] = inputType
	input.Attributes["readOnly"] = cfg.GetBool("readOnly", false)
	input.Attributes["placeholder"] = cfg.GetString("placeholder", "")
	input.Attributes["mask"] = cfg.GetString("mask", "")
	input.Attributes["prefix"] = cfg.GetString("prefix", "")
	input.Attributes["suffix"] = cfg.GetString("suffix", "")

	if minLength := cfg.GetInt("minLength", 0); minLength > 0 {
		input.Attributes["minLength"] = minLength
	}
	if maxLength := cfg.GetInt("maxLength", 0); maxLength > 0 {
		input.Attributes["maxLength"] = maxLength
	}

	// Numeric-only options apply to the number mode.
	if inputType == "number" {
		input.Attributes["step"] = cfg.GetFloat("step", 0)
		input.Attributes["inputMode"] = cfg.GetString("inputMode", "numeric")
	}

	if inputType == "tel" {
		if telRegex := cfg.GetString("telRegex", ""); telRegex != "" {
			input.Attributes["telRegex"] = telRegex
		}
	}

	if inputType == "password" {
		input.Attributes["revealable"] = cfg.GetBool("revealable", false)
	}

	// A datalist-bearing text input resolves selectable values like a select.
	if !cfg.IsBlank("options") || !cfg.IsBlank("relations") {
		options, err := t.options.Resolve(ctx, cfg)
		if err != nil {
			return inputs.Input{}, err
		}
		input.Options = options
	}

	return input, nil
}

func (t *Text) FormSchema() []inputs.SettingsField {
	return append(baseFormSchema(),
		inputs.SettingsField{Key: "readOnly", Label: "Read Only", Widget: inputs.WidgetToggle, Default: false},
		inputs.SettingsField{Key: "placeholder", Label: "Placeholder", Widget: inputs.WidgetText, Default: ""},
		inputs.SettingsField{Key: "mask", Label: "Input Mask", Widget: inputs.WidgetText, Default: ""},
		inputs.SettingsField{Key: "minLength", Label: "Min Length", Widget: inputs.WidgetNumber, Default: 0},
		inputs.SettingsField{Key: "maxLength", Label: "Max Length", Widget: inputs.WidgetNumber, Default: 0},
		inputs.SettingsField{Key: "type", Label: "Input Type", Widget: inputs.WidgetSelect, Default: "text", Options: map[string]string{
			"text":     "Text",
			"email":    "Email",
			"tel":      "Telephone",
			"number":   "Number",
			"url":      "URL",
			"password": "Password",
		}},
		inputs.SettingsField{Key: "step", Label: "Step", Widget: inputs.WidgetNumber, Default: 0},
		inputs.SettingsField{Key: "inputMode", Label: "Input Mode", Widget: inputs.WidgetText, Default: ""},
		inputs.SettingsField{Key: "telRegex", Label: "Telephone Pattern", Widget: inputs.WidgetText, Default: ""},
		inputs.SettingsField{Key: "revealable", Label: "Revealable", Widget: inputs.WidgetToggle, Default: false},
		inputs.SettingsField{Key: "prefix", Label: "Prefix", Widget: inputs.WidgetText, Default: ""},
		inputs.SettingsField{Key: "suffix", Label: "Suffix", Widget: inputs.WidgetText, Default: ""},
		inputs.SettingsField{Key: "optionType", Label: "Datalist Source", Widget: inputs.WidgetSelect, Default: OptionTypeArray, Options: map[string]string{
			OptionTypeArray:        "Fixed List",
			OptionTypeRelationship: "Relationship",
		}},
		inputs.SettingsField{Key: "options", Label: "Datalist Options", Widget: inputs.WidgetKeyValue, Default: map[string]any{}},
		inputs.SettingsField{Key: "relations", Label: "Relations", Widget: inputs.WidgetList, Default: []any{}},
	)
}
