package fieldtypes

import (
	"context"
	"encoding/json"

	"github.com/Ramsey-B/fern/pkg/inputs"
	"github.com/Ramsey-B/fern/pkg/models"
)

// ContentCleaner is the content-normalization collaborator for rich-text
// values. The builder never parses HTML itself; translating between raw HTML
// strings and structured document trees is delegated here.
type ContentCleaner interface {
	Clean(html string, opts CleanOptions) (string, error)
}

type CleanOptions struct {
	PreserveCustomCaptions bool
}

// RichEditor stores either a raw HTML string or a structured document tree
// ({"type":"doc","content":[...]}), JSON-encoded at rest. The fill hook
// decodes stored trees back into maps for the editor; the save hook encodes
// trees to JSON strings and runs raw HTML through the cleaner.
type RichEditor struct {
	cleaner ContentCleaner
}

// NewRichEditor creates the builder. cleaner may be nil; raw HTML then passes
// through unmodified.
func NewRichEditor(cleaner ContentCleaner) *RichEditor {
	return &RichEditor{cleaner: cleaner}
}

func (r *RichEditor) Key() string {
	return models.FieldTypeRichEditor
}

func (r *RichEditor) DefaultConfig() models.FieldConfig {
	return withBase(models.FieldConfig{
		"readOnly":               false,
		"placeholder":            "",
		"toolbar":                []any{},
		"maxHeight":              0,
		"preserveCustomCaptions": false,
	})
}

func (r *RichEditor) Build(ctx context.Context, name string, field models.Field) (inputs.Input, error) {
	cfg := field.Config
	input := buildBase(models.FieldTypeRichEditor, name, field, r.DefaultConfig())

	input.Attributes["readOnly"] = cfg.GetBool("readOnly", false)
	input.Attributes["placeholder"] = cfg.GetString("placeholder", "")
	input.Attributes["toolbar"] = cfg.GetSlice("toolbar", []any{})
	if maxHeight := cfg.GetInt("maxHeight", 0); maxHeight > 0 {
		input.Attributes["maxHeight"] = maxHeight
	}

	return input, nil
}

func (r *RichEditor) FormSchema() []inputs.SettingsField {
	return append(baseFormSchema(),
		inputs.SettingsField{Key: "readOnly", Label: "Read Only", Widget: inputs.WidgetToggle, Default: false},
		inputs.SettingsField{Key: "placeholder", Label: "Placeholder", Widget: inputs.WidgetText, Default: ""},
		inputs.SettingsField{Key: "toolbar", Label: "Toolbar Buttons", Widget: inputs.WidgetList, Default: []any{}},
		inputs.SettingsField{Key: "maxHeight", Label: "Max Height", Widget: inputs.WidgetNumber, Default: 0},
		inputs.SettingsField{Key: "preserveCustomCaptions", Label: "Preserve Custom Captions", Widget: inputs.WidgetToggle, Default: false},
	)
}

// OnFillMutate decodes a stored JSON document tree back into a map so the
// editor receives structured content. Raw HTML strings pass through verbatim.
func (r *RichEditor) OnFillMutate(record models.Record, field models.Field, data map[string]any) (map[string]any, error) {
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

	if raw, ok := value.(string); ok {
		if doc, ok := decodeDocTree(raw); ok {
			values[key] = doc
			return data, nil
		}
	}

	values[key] = value
	return data, nil
}

// OnSaveMutate encodes document trees to JSON strings for storage and runs
// raw HTML through the content cleaner.
func (r *RichEditor) OnSaveMutate(record models.Record, field models.Field, data map[string]any) (map[string]any, error) {
	values := valueColumn(record, data)
	key := dataKey(field, values)

	value, ok := values[key]
	if !ok {
		return data, nil
	}

	switch v := value.(type) {
	case map[string]any:
		if v["type"] == "doc" {
			encoded, err := json.Marshal(v)
			if err != nil {
				return nil, err
			}
			values[key] = string(encoded)
		}
	case string:
		if _, isDoc := decodeDocTree(v); isDoc || r.cleaner == nil {
			return data, nil
		}

		cleaned, err := r.cleaner.Clean(v, CleanOptions{
			PreserveCustomCaptions: field.Config.GetBool("preserveCustomCaptions", false),
		})
		if err != nil {
			return nil, err
		}
		values[key] = cleaned
	}

	return data, nil
}

// decodeDocTree parses raw as a document tree, reporting whether it is one.
func decodeDocTree(raw string) (map[string]any, bool) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, false
	}
	if doc["type"] != "doc" {
		return nil, false
	}
	return doc, true
}
