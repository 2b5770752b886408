package fieldtypes

import (
	"context"

	"github.com/Ramsey-B/fern/pkg/inputs"
	"github.com/Ramsey-B/fern/pkg/models"
)

type Checkbox struct{}

func NewCheckbox() *Checkbox {
	return &Checkbox{}
}

func (c *Checkbox) Key() string {
	return models.FieldTypeCheckbox
}

func (c *Checkbox) DefaultConfig() models.FieldConfig {
	return withBase(models.FieldConfig{
		"default": false,
		"inline":  false,
	})
}

func (c *Checkbox) Build(ctx context.Context, name string, field models.Field) (inputs.Input, error) {
	cfg := field.Config
	input := buildBase(models.FieldTypeCheckbox, name, field, c.DefaultConfig())

	// false is a meaningful default; presence check, not blankness.
	input.Attributes["default"] = cfg.GetBool("default", false)
	input.Attributes["inline"] = cfg.GetBool("inline", false)

	return input, nil
}

func (c *Checkbox) FormSchema() []inputs.SettingsField {
	return append(baseFormSchema(),
		inputs.SettingsField{Key: "default", Label: "Checked By Default", Widget: inputs.WidgetToggle, Default: false},
		inputs.SettingsField{Key: "inline", Label: "Inline", Widget: inputs.WidgetToggle, Default: false},
	)
}
