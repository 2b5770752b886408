package fieldtypes

import (
	"context"

	"github.com/Ramsey-B/fern/pkg/inputs"
	"github.com/Ramsey-B/fern/pkg/models"
)

type Select struct {
	options *OptionsResolver
}

func NewSelect(options *OptionsResolver) *Select {
	return &Select{options: options}
}

func (s *Select) Key() string {
	return models.FieldTypeSelect
}

func (s *Select) DefaultConfig() models.FieldConfig {
	return withBase(models.FieldConfig{
		"placeholder": "",
		"multiple":    false,
		"searchable":  false,
		"optionType":  OptionTypeArray,
		"options":     map[string]any{},
		"relations":   []any{},
	})
}

func (s *Select) Build(ctx context.Context, name string, field models.Field) (inputs.Input, error) {
	cfg := field.Config
	input := buildBase(models.FieldTypeSelect, name, field, s.DefaultConfig())

	input.Attributes["placeholder"] = cfg.GetString("placeholder", "")
	input.Attributes["multiple"] = cfg.GetBool("multiple", false)
	input.Attributes["searchable"] = cfg.GetBool("searchable", false)

	options, err := s.options.Resolve(ctx, cfg)
	if err != nil {
		return inputs.Input{}, err
	}
	input.Options = options

	return input, nil
}

func (s *Select) FormSchema() []inputs.SettingsField {
	return append(baseFormSchema(),
		inputs.SettingsField{Key: "placeholder", Label: "Placeholder", Widget: inputs.WidgetText, Default: ""},
		inputs.SettingsField{Key: "multiple", Label: "Multiple", Widget: inputs.WidgetToggle, Default: false},
		inputs.SettingsField{Key: "searchable", Label: "Searchable", Widget: inputs.WidgetToggle, Default: false},
		inputs.SettingsField{Key: "optionType", Label: "Option Source", Widget: inputs.WidgetSelect, Default: OptionTypeArray, Options: map[string]string{
			OptionTypeArray:        "Fixed List",
			OptionTypeRelationship: "Relationship",
		}},
		inputs.SettingsField{Key: "options", Label: "Options", Widget: inputs.WidgetKeyValue, Default: map[string]any{}},
		inputs.SettingsField{Key: "relations", Label: "Relations", Widget: inputs.WidgetList, Default: []any{}},
	)
}
