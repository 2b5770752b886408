package fieldtypes

import (
	"context"
	"time"

	"github.com/Ramsey-B/fern/pkg/inputs"
	"github.com/Ramsey-B/fern/pkg/models"
)

// acceptedTimeLayouts are the formats the save hook tries in order when
// normalizing submitted values.
var acceptedTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DateTime normalizes stored values to RFC3339 on save; the hook is a pure
// normalization so repeated fill/save cycles are stable.
type DateTime struct{}

func NewDateTime() *DateTime {
	return &DateTime{}
}

func (d *DateTime) Key() string {
	return models.FieldTypeDateTime
}

func (d *DateTime) DefaultConfig() models.FieldConfig {
	return withBase(models.FieldConfig{
		"withTime": true,
		"min":      "",
		"max":      "",
		"timezone": "",
	})
}

func (d *DateTime) Build(ctx context.Context, name string, field models.Field) (inputs.Input, error) {
	cfg := field.Config
	input := buildBase(models.FieldTypeDateTime, name, field, d.DefaultConfig())

	input.Attributes["withTime"] = cfg.GetBool("withTime", true)
	input.Attributes["min"] = cfg.GetString("min", "")
	input.Attributes["max"] = cfg.GetString("max", "")
	input.Attributes["timezone"] = cfg.GetString("timezone", "")

	return input, nil
}

func (d *DateTime) FormSchema() []inputs.SettingsField {
	return append(baseFormSchema(),
		inputs.SettingsField{Key: "withTime", Label: "Include Time", Widget: inputs.WidgetToggle, Default: true},
		inputs.SettingsField{Key: "min", Label: "Earliest", Widget: inputs.WidgetText, Default: ""},
		inputs.SettingsField{Key: "max", Label: "Latest", Widget: inputs.WidgetText, Default: ""},
		inputs.SettingsField{Key: "timezone", Label: "Timezone", Widget: inputs.WidgetText, Default: ""},
	)
}

// OnSaveMutate parses the submitted value with the accepted layouts and
// stores RFC3339. Unparseable values pass through untouched rather than
// failing the save.
func (d *DateTime) OnSaveMutate(record models.Record, field models.Field, data map[string]any) (map[string]any, error) {
	values := valueColumn(record, data)
	key := dataKey(field, values)

	raw, ok := values[key].(string)
	if !ok || raw == "" {
		return data, nil
	}

	for _, layout := range acceptedTimeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			values[key] = parsed.UTC().Format(time.RFC3339)
			return data, nil
		}
	}

	return data, nil
}
