package fieldtypes

import (
	"context"
	"strings"

	"github.com/Ramsey-B/fern/pkg/inputs"
	"github.com/Ramsey-B/fern/pkg/models"
)

// Tags edits as a list of strings. Legacy records stored tags as a
// comma-separated string; the fill hook upgrades those to lists.
type Tags struct{}

func NewTags() *Tags {
	return &Tags{}
}

func (t *Tags) Key() string {
	return models.FieldTypeTags
}

func (t *Tags) DefaultConfig() models.FieldConfig {
	return withBase(models.FieldConfig{
		"placeholder": "",
		"maxTags":     0,
		"suggestions": []any{},
	})
}

func (t *Tags) Build(ctx context.Context, name string, field models.Field) (inputs.Input, error) {
	cfg := field.Config
	input := buildBase(models.FieldTypeTags, name, field, t.DefaultConfig())

	input.Attributes["placeholder"] = cfg.GetString("placeholder", "")
	input.Attributes["suggestions"] = cfg.GetSlice("suggestions", []any{})
	if maxTags := cfg.GetInt("maxTags", 0); maxTags > 0 {
		input.Attributes["maxTags"] = maxTags
	}

	return input, nil
}

func (t *Tags) FormSchema() []inputs.SettingsField {
	return append(baseFormSchema(),
		inputs.SettingsField{Key: "placeholder", Label: "Placeholder", Widget: inputs.WidgetText, Default: ""},
		inputs.SettingsField{Key: "maxTags", Label: "Max Tags", Widget: inputs.WidgetNumber, Default: 0},
		inputs.SettingsField{Key: "suggestions", Label: "Suggestions", Widget: inputs.WidgetList, Default: []any{}},
	)
}

// OnFillMutate splits legacy comma-separated values into tag lists. Values
// already shaped as lists pass through, keeping the hook idempotent.
func (t *Tags) OnFillMutate(record models.Record, field models.Field, data map[string]any) (map[string]any, error) {
	values := valueColumn(record, data)
	key := dataKey(field, values)

	value, ok := values[key]
	if !ok {
		stored, found := readStoredValue(record, field)
		if !found {
			return data, nil
		}
		value = stored
	}

	raw, ok := value.(string)
	if !ok {
		values[key] = value
		return data, nil
	}

	tags := []any{}
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}

	values[key] = tags
	return data, nil
}
