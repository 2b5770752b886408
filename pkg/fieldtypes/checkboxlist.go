package fieldtypes

import (
	"context"

	"github.com/Ramsey-B/fern/pkg/inputs"
	"github.com/Ramsey-B/fern/pkg/models"
)

type CheckboxList struct {
	options *OptionsResolver
}

func NewCheckboxList(options *OptionsResolver) *CheckboxList {
	return &CheckboxList{options: options}
}

func (c *CheckboxList) Key() string {
	return models.FieldTypeCheckboxList
}

func (c *CheckboxList) DefaultConfig() models.FieldConfig {
	return withBase(models.FieldConfig{
		"inline":     false,
		"optionType": OptionTypeArray,
		"options":    map[string]any{},
		"relations":  []any{},
	})
}

func (c *CheckboxList) Build(ctx context.Context, name string, field models.Field) (inputs.Input, error) {
	cfg := field.Config
	input := buildBase(models.FieldTypeCheckboxList, name, field, c.DefaultConfig())

	input.Attributes["inline"] = cfg.GetBool("inline", false)

	options, err := c.options.Resolve(ctx, cfg)
	if err != nil {
		return inputs.Input{}, err
	}
	input.Options = options

	return input, nil
}

func (c *CheckboxList) FormSchema() []inputs.SettingsField {
	return append(baseFormSchema(),
		inputs.SettingsField{Key: "inline", Label: "Inline", Widget: inputs.WidgetToggle, Default: false},
		inputs.SettingsField{Key: "optionType", Label: "Option Source", Widget: inputs.WidgetSelect, Default: OptionTypeArray, Options: map[string]string{
			OptionTypeArray:        "Fixed List",
			OptionTypeRelationship: "Relationship",
		}},
		inputs.SettingsField{Key: "options", Label: "Options", Widget: inputs.WidgetKeyValue, Default: map[string]any{}},
		inputs.SettingsField{Key: "relations", Label: "Relations", Widget: inputs.WidgetList, Default: []any{}},
	)
}
