package fieldtypes

import (
	"context"

	"github.com/Ramsey-B/fern/pkg/inputs"
	"github.com/Ramsey-B/fern/pkg/models"
)

// Blocks is the block-based container type ("builder"). Rows carry a block
// kind and wrap their child values in a data map: {"type": "...", "data":
// {...}}. The nesting resolver accepts both the wrapped and the flat row
// shape.
type Blocks struct{}

func NewBlocks() *Blocks {
	return &Blocks{}
}

func (b *Blocks) Key() string {
	return models.FieldTypeBuilder
}

func (b *Blocks) DefaultConfig() models.FieldConfig {
	return withBase(models.FieldConfig{
		"addBlockLabel": "Add Block",
		"blocks":        []any{},
		"collapsed":     false,
	})
}

func (b *Blocks) Build(ctx context.Context, name string, field models.Field) (inputs.Input, error) {
	cfg := field.Config
	input := buildBase(models.FieldTypeBuilder, name, field, b.DefaultConfig())

	input.Attributes["addBlockLabel"] = cfg.GetString("addBlockLabel", "Add Block")
	input.Attributes["blocks"] = cfg.GetSlice("blocks", []any{})
	input.Attributes["collapsed"] = cfg.GetBool("collapsed", false)

	return input, nil
}

func (b *Blocks) FormSchema() []inputs.SettingsField {
	return append(baseFormSchema(),
		inputs.SettingsField{Key: "addBlockLabel", Label: "Add Block Label", Widget: inputs.WidgetText, Default: "Add Block"},
		inputs.SettingsField{Key: "blocks", Label: "Block Kinds", Widget: inputs.WidgetList, Default: []any{}},
		inputs.SettingsField{Key: "collapsed", Label: "Collapsed", Widget: inputs.WidgetToggle, Default: false},
	)
}

// OnFillMutate decodes a JSON-encoded block list back into structured rows.
func (b *Blocks) OnFillMutate(record models.Record, field models.Field, data map[string]any) (map[string]any, error) {
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
