package fieldtypes

import (
	"context"

	"github.com/Ramsey-B/fern/pkg/inputs"
	"github.com/Ramsey-B/fern/pkg/models"
)

type MarkdownEditor struct{}

func NewMarkdownEditor() *MarkdownEditor {
	return &MarkdownEditor{}
}

func (m *MarkdownEditor) Key() string {
	return models.FieldTypeMarkdownEditor
}

func (m *MarkdownEditor) DefaultConfig() models.FieldConfig {
	return withBase(models.FieldConfig{
		"readOnly":    false,
		"placeholder": "",
		"preview":     true,
		"maxHeight":   0,
	})
}

func (m *MarkdownEditor) Build(ctx context.Context, name string, field models.Field) (inputs.Input, error) {
	cfg := field.Config
	input := buildBase(models.FieldTypeMarkdownEditor, name, field, m.DefaultConfig())

	input.Attributes["readOnly"] = cfg.GetBool("readOnly", false)
	input.Attributes["placeholder"] = cfg.GetString("placeholder", "")
	input.Attributes["preview"] = cfg.GetBool("preview", true)
	if maxHeight := cfg.GetInt("maxHeight", 0); maxHeight > 0 {
		input.Attributes["maxHeight"] = maxHeight
	}

	return input, nil
}

func (m *MarkdownEditor) FormSchema() []inputs.SettingsField {
	return append(baseFormSchema(),
		inputs.SettingsField{Key: "readOnly", Label: "Read Only", Widget: inputs.WidgetToggle, Default: false},
		inputs.SettingsField{Key: "placeholder", Label: "Placeholder", Widget: inputs.WidgetText, Default: ""},
		inputs.SettingsField{Key: "preview", Label: "Live Preview", Widget: inputs.WidgetToggle, Default: true},
		inputs.SettingsField{Key: "maxHeight", Label: "Max Height", Widget: inputs.WidgetNumber, Default: 0},
	)
}
