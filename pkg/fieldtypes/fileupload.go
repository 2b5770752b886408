package fieldtypes

import (
	"context"

	"github.com/Ramsey-B/fern/pkg/inputs"
	"github.com/Ramsey-B/fern/pkg/models"
)

type FileUpload struct{}

func NewFileUpload() *FileUpload {
	return &FileUpload{}
}

func (f *FileUpload) Key() string {
	return models.FieldTypeFileUpload
}

func (f *FileUpload) DefaultConfig() models.FieldConfig {
	return withBase(models.FieldConfig{
		"multiple":      false,
		"acceptedTypes": []any{},
		"maxSizeKB":     0,
		"maxFiles":      0,
		"directory":     "",
	})
}

func (f *FileUpload) Build(ctx context.Context, name string, field models.Field) (inputs.Input, error) {
	cfg := field.Config
	input := buildBase(models.FieldTypeFileUpload, name, field, f.DefaultConfig())

	input.Attributes["multiple"] = cfg.GetBool("multiple", false)
	input.Attributes["acceptedTypes"] = cfg.GetSlice("acceptedTypes", []any{})
	input.Attributes["directory"] = cfg.GetString("directory", "")
	if maxSizeKB := cfg.GetInt("maxSizeKB", 0); maxSizeKB > 0 {
		input.Attributes["maxSizeKB"] = maxSizeKB
	}
	if maxFiles := cfg.GetInt("maxFiles", 0); maxFiles > 0 {
		input.Attributes["maxFiles"] = maxFiles
	}

	return input, nil
}

func (f *FileUpload) FormSchema() []inputs.SettingsField {
	return append(baseFormSchema(),
		inputs.SettingsField{Key: "multiple", Label: "Multiple", Widget: inputs.WidgetToggle, Default: false},
		inputs.SettingsField{Key: "acceptedTypes", Label: "Accepted Types", Widget: inputs.WidgetList, Default: []any{}},
		inputs.SettingsField{Key: "maxSizeKB", Label: "Max Size (KB)", Widget: inputs.WidgetNumber, Default: 0},
		inputs.SettingsField{Key: "maxFiles", Label: "Max Files", Widget: inputs.WidgetNumber, Default: 0},
		inputs.SettingsField{Key: "directory", Label: "Directory", Widget: inputs.WidgetText, Default: ""},
	)
}
