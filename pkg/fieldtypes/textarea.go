package fieldtypes

import (
	"context"

	"github.com/Ramsey-B/fern/pkg/inputs"
	"github.com/Ramsey-B/fern/pkg/models"
)

type Textarea struct{}

func NewTextarea() *Textarea {
	return &Textarea{}
}

func (t *Textarea) Key() string {
	return models.FieldTypeTextarea
}

func (t *Textarea) DefaultConfig() models.FieldConfig {
	return withBase(models.FieldConfig{
		"readOnly":    false,
		"placeholder": "",
		"rows":        4,
		"minLength":   0,
		"maxLength":   0,
		"autosize":    false,
	})
}

func (t *Textarea) Build(ctx context.Context, name string, field models.Field) (inputs.Input, error) {
	cfg := field.Config
	input := buildBase(models.FieldTypeTextarea, name, field, t.DefaultConfig())

	input.Attributes["readOnly"] = cfg.GetBool("readOnly", false)
	input.Attributes["placeholder"] = cfg.GetString("placeholder", "")
	input.Attributes["rows"] = cfg.GetInt("rows", 4)
	input.Attributes["autosize"] = cfg.GetBool("autosize", false)

	if minLength := cfg.GetInt("minLength", 0); minLength > 0 {
		input.Attributes["minLength"] = minLength
	}
	if maxLength := cfg.GetInt("maxLength", 0); maxLength > 0 {
		input.Attributes["maxLength"] = maxLength
	}

	return input, nil
}

func (t *Textarea) FormSchema() []inputs.SettingsField {
	return append(baseFormSchema(),
		inputs.SettingsField{Key: "readOnly", Label: "Read Only", Widget: inputs.WidgetToggle, Default: false},
		inputs.SettingsField{Key: "placeholder", Label: "Placeholder", Widget: inputs.WidgetText, Default: ""},
		inputs.SettingsField{Key: "rows", Label: "Rows", Widget: inputs.WidgetNumber, Default: 4},
		inputs.SettingsField{Key: "minLength", Label: "Min Length", Widget: inputs.WidgetNumber, Default: 0},
		inputs.SettingsField{Key: "maxLength", Label: "Max Length", Widget: inputs.WidgetNumber, Default: 0},
		inputs.SettingsField{Key: "autosize", Label: "Autosize", Widget: inputs.WidgetToggle, Default: false},
	)
}
