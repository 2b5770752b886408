package fieldtypes

import (
	"context"
	"fmt"
	"sort"

	"github.com/Ramsey-B/fern/pkg/inputs"
	"github.com/Ramsey-B/fern/pkg/models"
)

// KeyValue stores a flat map but edits as an ordered list of {key, value}
// rows; the fill and save hooks translate between the two shapes. The
// round trip is a pure normalization: fill(save(fill(x))) == fill(x).
type KeyValue struct{}

func NewKeyValue() *KeyValue {
	return &KeyValue{}
}

func (k *KeyValue) Key() string {
	return models.FieldTypeKeyValue
}

func (k *KeyValue) DefaultConfig() models.FieldConfig {
	return withBase(models.FieldConfig{
		"keyLabel":    "Key",
		"valueLabel":  "Value",
		"addRowLabel": "Add Row",
	})
}

func (k *KeyValue) Build(ctx context.Context, name string, field models.Field) (inputs.Input, error) {
	cfg := field.Config
	input := buildBase(models.FieldTypeKeyValue, name, field, k.DefaultConfig())

	input.Attributes["keyLabel"] = cfg.GetString("keyLabel", "Key")
	input.Attributes["valueLabel"] = cfg.GetString("valueLabel", "Value")
	input.Attributes["addRowLabel"] = cfg.GetString("addRowLabel", "Add Row")

	return input, nil
}

func (k *KeyValue) FormSchema() []inputs.SettingsField {
	return append(baseFormSchema(),
		inputs.SettingsField{Key: "keyLabel", Label: "Key Label", Widget: inputs.WidgetText, Default: "Key"},
		inputs.SettingsField{Key: "valueLabel", Label: "Value Label", Widget: inputs.WidgetText, Default: "Value"},
		inputs.SettingsField{Key: "addRowLabel", Label: "Add Row Label", Widget: inputs.WidgetText, Default: "Add Row"},
	)
}

// OnFillMutate expands the stored map into ordered {key, value} rows for the
// editor. Keys sort lexically so repeated fills are deterministic.
func (k *KeyValue) OnFillMutate(record models.Record, field models.Field, data map[string]any) (map[string]any, error) {
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

	asMap, ok := value.(map[string]any)
	if !ok {
		values[key] = value
		return data, nil
	}

	keys := make([]string, 0, len(asMap))
	for entryKey := range asMap {
		keys = append(keys, entryKey)
	}
	sort.Strings(keys)

	rows := make([]any, 0, len(asMap))
	for _, entryKey := range keys {
		rows = append(rows, map[string]any{
			"key":   entryKey,
			"value": asMap[entryKey],
		})
	}

	values[key] = rows
	return data, nil
}

// OnSaveMutate collapses {key, value} rows back into the stored map shape.
// Rows with blank keys are dropped; duplicate keys keep the last row.
func (k *KeyValue) OnSaveMutate(record models.Record, field models.Field, data map[string]any) (map[string]any, error) {
	values := valueColumn(record, data)
	key := dataKey(field, values)

	value, ok := values[key]
	if !ok {
		return data, nil
	}

	rows, ok := value.([]any)
	if !ok {
		return data, nil
	}

	collapsed := map[string]any{}
	for _, row := range rows {
		entry, ok := row.(map[string]any)
		if !ok {
			continue
		}

		entryKey := fmt.Sprintf("%v", entry["key"])
		if entryKey == "" || entry["key"] == nil {
			continue
		}

		collapsed[entryKey] = entry["value"]
	}

	values[key] = collapsed
	return data, nil
}
