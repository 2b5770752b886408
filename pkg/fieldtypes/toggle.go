package fieldtypes

import (
	"context"

	"github.com/Ramsey-B/fern/pkg/inputs"
	"github.com/Ramsey-B/fern/pkg/models"
)

// Toggle reads its defaults with explicit presence checks: false and 0 are
// meaningful values here, so blankness semantics do not apply.
type Toggle struct{}

func NewToggle() *Toggle {
	return &Toggle{}
}

func (t *Toggle) Key() string {
	return models.FieldTypeToggle
}

func (t *Toggle) DefaultConfig() models.FieldConfig {
	return withBase(models.FieldConfig{
		"default":  false,
		"onLabel":  "",
		"offLabel": "",
		"onValue":  true,
		"offValue": false,
	})
}

func (t *Toggle) Build(ctx context.Context, name string, field models.Field) (inputs.Input, error) {
	cfg := field.Config
	input := buildBase(models.FieldTypeToggle, name, field, t.DefaultConfig())

	input.Attributes["default"] = cfg.GetBool("default", false)
	input.Attributes["onLabel"] = cfg.GetString("onLabel", "")
	input.Attributes["offLabel"] = cfg.GetString("offLabel", "")

	// on/off values may legitimately be false or 0; check presence.
	if cfg.IsSet("onValue") {
		input.Attributes["onValue"] = cfg["onValue"]
	} else {
		input.Attributes["onValue"] = true
	}
	if cfg.IsSet("offValue") {
		input.Attributes["offValue"] = cfg["offValue"]
	} else {
		input.Attributes["offValue"] = false
	}

	return input, nil
}

func (t *Toggle) FormSchema() []inputs.SettingsField {
	return append(baseFormSchema(),
		inputs.SettingsField{Key: "default", Label: "On By Default", Widget: inputs.WidgetToggle, Default: false},
		inputs.SettingsField{Key: "onLabel", Label: "On Label", Widget: inputs.WidgetText, Default: ""},
		inputs.SettingsField{Key: "offLabel", Label: "Off Label", Widget: inputs.WidgetText, Default: ""},
		inputs.SettingsField{Key: "onValue", Label: "On Value", Widget: inputs.WidgetText, Default: true},
		inputs.SettingsField{Key: "offValue", Label: "Off Value", Widget: inputs.WidgetText, Default: false},
	)
}
