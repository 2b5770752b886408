package fieldtypes

import (
	"context"

	"github.com/Ramsey-B/fern/pkg/inputs"
	"github.com/Ramsey-B/fern/pkg/models"
)

type Color struct{}

func NewColor() *Color {
	return &Color{}
}

func (c *Color) Key() string {
	return models.FieldTypeColor
}

func (c *Color) DefaultConfig() models.FieldConfig {
	return withBase(models.FieldConfig{
		"format":   "hex",
		"swatches": []any{},
		"alpha":    false,
	})
}

func (c *Color) Build(ctx context.Context, name string, field models.Field) (inputs.Input, error) {
	cfg := field.Config
	input := buildBase(models.FieldTypeColor, name, field, c.DefaultConfig())

	input.Attributes["format"] = cfg.GetString("format", "hex")
	input.Attributes["swatches"] = cfg.GetSlice("swatches", []any{})
	input.Attributes["alpha"] = cfg.GetBool("alpha", false)

	return input, nil
}

func (c *Color) FormSchema() []inputs.SettingsField {
	return append(baseFormSchema(),
		inputs.SettingsField{Key: "format", Label: "Format", Widget: inputs.WidgetSelect, Default: "hex", Options: map[string]string{
			"hex": "Hex",
			"rgb": "RGB",
			"hsl": "HSL",
		}},
		inputs.SettingsField{Key: "swatches", Label: "Swatches", Widget: inputs.WidgetList, Default: []any{}},
		inputs.SettingsField{Key: "alpha", Label: "Alpha Channel", Widget: inputs.WidgetToggle, Default: false},
	)
}
