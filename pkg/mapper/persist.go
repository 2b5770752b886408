package mapper

import (
	"context"
	"encoding/json"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/store"
	"github.com/Ramsey-B/fern/pkg/utils"
)

// maxDecodePasses caps the repeated JSON-string decoding of container values.
// Multi-layer double-encoding beyond this is left as-is rather than looping on
// pathological input.
const maxDecodePasses = 10

// Persister applies submitted values to the value store, one row per field.
type Persister struct {
	store  store.ValueStore
	logger ectologger.Logger
}

func NewPersister(valueStore store.ValueStore, logger ectologger.Logger) *Persister {
	return &Persister{
		store:  valueStore,
		logger: logger,
	}
}

// Persist writes each submitted value keyed by field ULID or slug. Blank
// values delete the stored row. Container values get their nested JSON-string
// layers decoded before storage. Arrays are stored JSON-encoded, scalars
// directly. Keys that resolve to no field definition are skipped. Returns the
// ULIDs of the fields that were written or deleted.
func (p *Persister) Persist(ctx context.Context, record models.Record, values map[string]any) ([]string, error) {
	definitions := record.FieldDefinitions().Flatten()
	persisted := []string{}

	for key, raw := range values {
		field, ok := definitions.Find(key)
		if !ok {
			p.logger.WithContext(ctx).WithFields(map[string]any{
				"record_key": record.RecordKey(),
				"value_key":  key,
			}).Debug("skipping submitted value with no field definition")
			continue
		}

		value := normalizeSubmitted(raw)

		if utils.IsBlankValue(value) {
			if err := p.store.Delete(ctx, record.RecordKey(), field.ULID); err != nil {
				return persisted, errors.WrapFormError(errors.KindStoreFailure, err).AddField(field.StorageKey())
			}
			persisted = append(persisted, field.ULID)
			continue
		}

		if field.IsContainer() {
			value = decodeJSONStrings(value)
		}

		if err := p.store.Upsert(ctx, record.RecordKey(), field.ULID, storageValue(value)); err != nil {
			return persisted, errors.WrapFormError(errors.KindStoreFailure, err).AddField(field.StorageKey())
		}
		persisted = append(persisted, field.ULID)
	}

	return persisted, nil
}

// normalizeSubmitted re-encodes the `{value: [...]}` wrapper some widgets
// submit into a JSON string of the inner array.
func normalizeSubmitted(value any) any {
	wrapper, ok := value.(map[string]any)
	if !ok || len(wrapper) != 1 {
		return value
	}

	inner, ok := wrapper["value"].([]any)
	if !ok {
		return value
	}

	encoded, err := json.Marshal(inner)
	if err != nil {
		return value
	}

	return string(encoded)
}

// decodeJSONStrings undoes multi-layer double-encoding: every string in the
// tree that parses as JSON is decoded, repeatedly, until a pass changes
// nothing or the pass cap is hit.
func decodeJSONStrings(value any) any {
	for i := 0; i < maxDecodePasses; i++ {
		decoded, changed := decodePass(value)
		value = decoded
		if !changed {
			break
		}
	}
	return value
}

func decodePass(value any) (any, bool) {
	switch v := value.(type) {
	case string:
		var decoded any
		if err := json.Unmarshal([]byte(v), &decoded); err != nil {
			return v, false
		}
		if s, ok := decoded.(string); ok && s == v {
			return v, false
		}
		return decoded, true
	case map[string]any:
		changed := false
		for key, item := range v {
			decoded, itemChanged := decodePass(item)
			v[key] = decoded
			changed = changed || itemChanged
		}
		return v, changed
	case []any:
		changed := false
		for i, item := range v {
			decoded, itemChanged := decodePass(item)
			v[i] = decoded
			changed = changed || itemChanged
		}
		return v, changed
	}
	return value, false
}

// storageValue JSON-encodes arrays for storage; everything else is stored
// as-is.
func storageValue(value any) any {
	switch v := value.(type) {
	case []any:
		if encoded, err := json.Marshal(v); err == nil {
			return string(encoded)
		}
	case []string:
		if encoded, err := json.Marshal(v); err == nil {
			return string(encoded)
		}
	case []map[string]any:
		if encoded, err := json.Marshal(v); err == nil {
			return string(encoded)
		}
	}
	return value
}
