// Package mapper runs the two symmetric value pipelines between storage and
// form data.
//
// # Overview
//
// Fill (storage -> form): every resolved field either runs its builder's
// OnFillMutate hook or, by default, has its stored value placed verbatim into
// the form-data map under the value column. Save (form -> storage) is
// symmetric, except there is no default transform: hookless fields pass
// through unchanged.
//
// Hook-bearing fields nested inside container rows are mutated through a
// scoped view: a synthetic single-field record/data pair limited to the
// located row, with the mutated value spliced back at the discovered path.
// Top-level fields get the full data map directly.
//
// Fields whose type is not registered are skipped; a record with no field
// definitions short-circuits both pipelines.
package mapper

import (
	"context"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/fern/pkg/container"
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/fieldtypes"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/registry"
)

// MutationContext is the per-field tuple both pipelines rebuild on every
// field. It is never reused across fields.
type MutationContext struct {
	Field   models.Field
	Config  models.FieldConfig
	Builder fieldtypes.Builder
	Data    map[string]any
}

type Mapper struct {
	registry *registry.Registry
	logger   ectologger.Logger
}

func New(registry *registry.Registry, logger ectologger.Logger) *Mapper {
	return &Mapper{
		registry: registry,
		logger:   logger,
	}
}

// Fill runs the storage -> form pipeline, mutating and returning data.
func (m *Mapper) Fill(ctx context.Context, record models.Record, data map[string]any) (map[string]any, error) {
	if len(record.FieldDefinitions()) == 0 {
		return data, nil
	}

	fields, err := container.ResolveAllFields(record)
	if err != nil {
		return nil, err
	}

	for _, field := range fields {
		mc, ok := m.mutationContext(ctx, field, data)
		if !ok {
			continue
		}

		hook, ok := mc.Builder.(fieldtypes.FillMutator)
		if !ok {
			m.defaultFill(record, field, data)
			continue
		}

		location := container.Locate(record, field)
		if !location.Found {
			data, err = hook.OnFillMutate(record, field, data)
			if err != nil {
				return nil, errors.WrapFormError(errors.KindMutationFailed, err).AddField(field.StorageKey())
			}
			continue
		}

		if err := m.mutateScoped(record, field, location, hook.OnFillMutate); err != nil {
			return nil, err
		}
	}

	return data, nil
}

// Save runs the form -> storage pipeline, mutating and returning data. Fields
// without a save hook pass through unchanged.
func (m *Mapper) Save(ctx context.Context, record models.Record, data map[string]any) (map[string]any, error) {
	if len(record.FieldDefinitions()) == 0 {
		return data, nil
	}

	column, _ := data[record.ValueColumn()].(map[string]any)

	// Nested fields are discovered from the submitted rows, not the stored
	// tree: a brand-new record has no stored rows yet.
	submitted := models.ContentRecord{
		Key:    record.RecordKey(),
		Column: record.ValueColumn(),
		Fields: record.FieldDefinitions(),
		Values: column,
	}

	fields, err := container.ResolveAllFields(submitted)
	if err != nil {
		return nil, err
	}

	lookup := record.FieldDefinitions().Flatten()

	for _, field := range fields {
		mc, ok := m.mutationContext(ctx, field, data)
		if !ok {
			continue
		}

		hook, ok := mc.Builder.(fieldtypes.SaveMutator)
		if !ok {
			continue
		}

		location := container.LocateIn(column, lookup, field)
		if !location.Found {
			data, err = hook.OnSaveMutate(record, field, data)
			if err != nil {
				return nil, errors.WrapFormError(errors.KindMutationFailed, err).AddField(field.StorageKey())
			}
			continue
		}

		mutate := func(scoped models.Record, f models.Field, scopedData map[string]any) (map[string]any, error) {
			return hook.OnSaveMutate(scoped, f, scopedData)
		}
		if err := m.mutateScopedIn(column, record, field, location, mutate); err != nil {
			return nil, err
		}
	}

	return data, nil
}

// mutationContext resolves the field's builder, reporting false on an
// unregistered type so the caller can skip the field.
func (m *Mapper) mutationContext(ctx context.Context, field models.Field, data map[string]any) (MutationContext, bool) {
	builder := m.registry.Resolve(field.FieldType)
	if builder == nil {
		m.logger.WithContext(ctx).WithFields(map[string]any{
			"field_ulid": field.ULID,
			"field_type": field.FieldType,
		}).Debug("skipping field with unregistered type")
		return MutationContext{}, false
	}

	return MutationContext{
		Field:   field,
		Config:  field.Config,
		Builder: builder,
		Data:    data,
	}, true
}

// defaultFill copies the field's stored value verbatim into the form data
// under the key it is stored under.
func (m *Mapper) defaultFill(record models.Record, field models.Field, data map[string]any) {
	stored := record.ValueTree()

	key := field.ULID
	value, ok := stored[key]
	if !ok && field.Slug != "" {
		key = field.Slug
		value, ok = stored[key]
	}
	if !ok {
		return
	}

	column, ok := data[record.ValueColumn()].(map[string]any)
	if !ok {
		column = map[string]any{}
		data[record.ValueColumn()] = column
	}
	column[key] = value
}

type mutateFunc func(models.Record, models.Field, map[string]any) (map[string]any, error)

// mutateScoped runs the hook against a single-field view of the located
// container row in the record's value tree. Row maps are shared by reference
// with the form data, so the splice is visible to both.
func (m *Mapper) mutateScoped(record models.Record, field models.Field, location container.Location, mutate mutateFunc) error {
	return m.mutateScopedIn(record.ValueTree(), record, field, location, mutate)
}

// mutateScopedIn is mutateScoped against an arbitrary value tree (submitted
// form data on the save side).
func (m *Mapper) mutateScopedIn(values map[string]any, record models.Record, field models.Field, location container.Location, mutate mutateFunc) error {
	row, ok := container.RowAt(values, location.Path)
	if !ok {
		return nil
	}

	scopedValues := map[string]any{location.Key: row[location.Key]}
	scopedRecord := models.ContentRecord{
		Key:    record.RecordKey(),
		Column: record.ValueColumn(),
		Fields: models.Fields{field},
		Values: scopedValues,
	}
	scopedData := map[string]any{
		record.ValueColumn(): map[string]any{location.Key: row[location.Key]},
	}

	mutated, err := mutate(scopedRecord, field, scopedData)
	if err != nil {
		tail := location.Path[len(location.Path)-1]
		return errors.WrapFormError(errors.KindMutationFailed, err).
			AddField(field.StorageKey()).
			AddContainer(tail.ContainerULID).
			AddRowIndex(tail.Row)
	}

	if column, ok := mutated[record.ValueColumn()].(map[string]any); ok {
		if value, ok := column[location.Key]; ok {
			row[location.Key] = value
		}
	}

	return nil
}
