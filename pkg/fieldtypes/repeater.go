package fieldtypes

import (
	"context"
	"encoding/json"

	"github.com/Ramsey-B/fern/pkg/inputs"
	"github.com/Ramsey-B/fern/pkg/models"
)

// Repeater is a container type: its value is an ordered list of rows, each
// row a map of child-field keys to values. Child inputs are built by the
// mapper walking the field's children; the builder itself only shapes the
// container input.
type Repeater struct{}

func NewRepeater() *Repeater {
	return &Repeater{}
}

func (r *Repeater) Key() string {
	return models.FieldTypeRepeater
}

func (r *Repeater) DefaultConfig() models.FieldConfig {
	return withBase(models.FieldConfig{
		"addRowLabel": "Add Row",
		"minRows":     0,
		"maxRows":     0,
		"collapsed":   false,
	})
}

func (r *Repeater) Build(ctx context.Context, name string, field models.Field) (inputs.Input, error) {
	cfg := field.Config
	input := buildBase(models.FieldTypeRepeater, name, field, r.DefaultConfig())

	input.Attributes["addRowLabel"] = cfg.GetString("addRowLabel", "Add Row")
	input.Attributes["collapsed"] = cfg.GetBool("collapsed", false)
	if minRows := cfg.GetInt("minRows", 0); minRows > 0 {
		input.Attributes["minRows"] = minRows
	}
	if maxRows := cfg.GetInt("maxRows", 0); maxRows > 0 {
		input.Attributes["maxRows"] = maxRows
	}

	return input, nil
}

func (r *Repeater) FormSchema() []inputs.SettingsField {
	return append(baseFormSchema(),
		inputs.SettingsField{Key: "addRowLabel", Label: "Add Row Label", Widget: inputs.WidgetText, Default: "Add Row"},
		inputs.SettingsField{Key: "minRows", Label: "Min Rows", Widget: inputs.WidgetNumber, Default: 0},
		inputs.SettingsField{Key: "maxRows", Label: "Max Rows", Widget: inputs.WidgetNumber, Default: 0},
		inputs.SettingsField{Key: "collapsed", Label: "Collapsed", Widget: inputs.WidgetToggle, Default: false},
	)
}

// OnFillMutate decodes a JSON-encoded row list back into its structured form
// so the form receives actual rows.
func (r *Repeater) OnFillMutate(record models.Record, field models.Field, data map[string]any) (map[string]any, error) {
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

	values[key] = decodeRowList(value)
	return data, nil
}

// decodeRowList turns a JSON string of rows into []any; anything else passes
// through untouched.
func decodeRowList(value any) any {
	raw, ok := value.(string)
	if !ok {
		return value
	}

	var rows []any
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return value
	}

	return rows
}
