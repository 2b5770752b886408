// Package form orchestrates form rendering and submission: assemble the
// record, run the fill pipeline, build inputs, evaluate rules against live
// state, and on submit run the save pipeline, validation and persistence,
// then publish the content-update event.
package form

import (
	"context"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/fern/pkg/container"
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/inputs"
	"github.com/Ramsey-B/fern/pkg/kafka"
	"github.com/Ramsey-B/fern/pkg/mapper"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/registry"
	"github.com/Ramsey-B/fern/pkg/rules"
	"github.com/Ramsey-B/fern/pkg/tracing"
	"github.com/Ramsey-B/fern/pkg/validation"
)

// EventPublisher publishes content-update events. Nil-able at wiring time so
// the service runs without Kafka in tests and local setups.
type EventPublisher interface {
	Publish(ctx context.Context, msg *kafka.ContentUpdatedMessage) error
}

// FieldLister loads the owner's field definition tree.
type FieldLister interface {
	ListByOwner(ctx context.Context, modelType, modelKey string) (models.Fields, error)
}

// SchemaLister loads the owner's layout schema tree. Nil-able at wiring time
// for owners that define fields without layout schemas.
type SchemaLister interface {
	ListByOwner(ctx context.Context, modelType, modelKey string) (models.Schemas, error)
}

// ValueReader loads a record's stored values keyed by field ULID.
type ValueReader interface {
	ValuesFor(ctx context.Context, recordKey string) (map[string]any, error)
}

// RenderModel is the form build result handed to the rendering layer.
type RenderModel struct {
	Inputs []RenderedInput `json:"inputs"`
	Data   map[string]any  `json:"data"`
}

// RenderedInput pairs the input node with its rule evaluation snapshot
// against the just-filled form state. Clients re-evaluate on edit through the
// rules endpoints; the snapshot is the initial render state.
type RenderedInput struct {
	inputs.Input
	Visible  bool `json:"visible"`
	Required bool `json:"required_now"`
}

type FormService interface {
	Build(ctx context.Context, modelType, modelKey, recordKey string) (RenderModel, error)
	Submit(ctx context.Context, modelType, modelKey, recordKey string, data map[string]any) error
}

type Service struct {
	logger    ectologger.Logger
	fields    FieldLister
	schemas   SchemaLister
	values    ValueReader
	registry  *registry.Registry
	mapper    *mapper.Mapper
	persister *mapper.Persister
	publisher EventPublisher
}

// NewService creates a new form service
func NewService(
	fields FieldLister,
	schemas SchemaLister,
	values ValueReader,
	reg *registry.Registry,
	formMapper *mapper.Mapper,
	persister *mapper.Persister,
	publisher EventPublisher,
	logger ectologger.Logger,
) *Service {
	return &Service{
		logger:    logger,
		fields:    fields,
		schemas:   schemas,
		values:    values,
		registry:  reg,
		mapper:    formMapper,
		persister: persister,
		publisher: publisher,
	}
}

// Build assembles the record's render model: fill the form data from storage,
// build an input per resolved field and snapshot rule evaluation.
func (s *Service) Build(ctx context.Context, modelType, modelKey, recordKey string) (RenderModel, error) {
	ctx, span := tracing.StartSpan(ctx, "form.Build")
	defer span.End()

	record, err := s.assembleRecord(ctx, modelType, modelKey, recordKey)
	if err != nil {
		return RenderModel{}, err
	}

	data := map[string]any{}
	data, err = s.mapper.Fill(ctx, record, data)
	if err != nil {
		return RenderModel{}, s.toHTTPError(err)
	}

	resolved, err := container.ResolveAllFields(record)
	if err != nil {
		return RenderModel{}, s.toHTTPError(err)
	}

	view := rules.MapView(data)
	resolve := PathResolver(record, data)

	rendered := make([]RenderedInput, 0, len(resolved))
	for _, field := range resolved {
		builder := s.registry.Resolve(field.FieldType)
		if builder == nil {
			s.logger.WithContext(ctx).WithFields(map[string]any{
				"field_ulid": field.ULID,
				"field_type": field.FieldType,
			}).Warn("skipping field with unregistered type")
			continue
		}

		input, err := builder.Build(ctx, field.StorageKey(), field)
		if err != nil {
			return RenderModel{}, s.toHTTPError(err)
		}

		rendered = append(rendered, RenderedInput{
			Input:    input,
			Visible:  input.IsVisible(view, resolve),
			Required: input.IsRequired(view, resolve),
		})
	}

	return RenderModel{Inputs: rendered, Data: data}, nil
}

// Submit runs the save pipeline over the submitted data, validates visible
// inputs, persists the values and publishes the update event.
func (s *Service) Submit(ctx context.Context, modelType, modelKey, recordKey string, data map[string]any) error {
	ctx, span := tracing.StartSpan(ctx, "form.Submit")
	defer span.End()

	record, err := s.assembleRecord(ctx, modelType, modelKey, recordKey)
	if err != nil {
		return err
	}

	data, err = s.mapper.Save(ctx, record, data)
	if err != nil {
		return s.toHTTPError(err)
	}

	values, _ := data[record.ValueColumn()].(map[string]any)

	if err := s.validateSubmission(ctx, record, data, values); err != nil {
		return err
	}

	persisted, err := s.persister.Persist(ctx, record, values)
	if err != nil {
		return s.toHTTPError(err)
	}

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"record_key": recordKey,
		"model_type": modelType,
		"model_key":  modelKey,
		"fields":     len(persisted),
	}).Info("persisted form submission")

	if s.publisher != nil && len(persisted) > 0 {
		msg := &kafka.ContentUpdatedMessage{
			RecordKey:  recordKey,
			ModelType:  modelType,
			ModelKey:   modelKey,
			FieldULIDs: persisted,
			Timestamp:  time.Now().UTC(),
			TraceID:    tracing.GetTraceID(ctx),
		}
		if err := s.publisher.Publish(ctx, msg); err != nil {
			// the save already landed; the event is best-effort
			s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
				"record_key": recordKey,
			}).Error("failed to publish content update event")
		}
	}

	return nil
}

func (s *Service) assembleRecord(ctx context.Context, modelType, modelKey, recordKey string) (models.Record, error) {
	fields, err := s.fields.ListByOwner(ctx, modelType, modelKey)
	if err != nil {
		return nil, err
	}

	if s.schemas != nil {
		tree, err := s.schemas.ListByOwner(ctx, modelType, modelKey)
		if err != nil {
			return nil, err
		}
		fields = layoutOrder(tree, fields)
	}

	values, err := s.values.ValuesFor(ctx, recordKey)
	if err != nil {
		return nil, err
	}

	return models.ContentRecord{
		Key:    recordKey,
		Fields: fields,
		Values: values,
	}, nil
}

// layoutOrder reorders the field list to follow the owner's layout: fields
// placed in schemas come first, flattened through the tree, then fields
// without a layout home keep their relative order. No definition is dropped.
func layoutOrder(tree models.Schemas, fields models.Fields) models.Fields {
	if len(tree) == 0 {
		return fields
	}

	ordered := tree.CollectFields()
	placed := map[string]bool{}
	for _, field := range ordered {
		placed[field.ULID] = true
	}

	for _, field := range fields {
		if !placed[field.ULID] {
			ordered = append(ordered, field)
		}
	}

	return ordered
}

// validateSubmission checks submitted values against each input's compiled
// constraints. Hidden inputs are skipped so conditionally hidden fields never
// block a save.
func (s *Service) validateSubmission(ctx context.Context, record models.Record, data map[string]any, values map[string]any) error {
	// Nested fields resolve through the submitted rows (a new record has no
	// stored rows yet) and through the stored tree, so a row dropping a known
	// field still gets its required check.
	submitted := models.ContentRecord{
		Key:    record.RecordKey(),
		Column: record.ValueColumn(),
		Fields: record.FieldDefinitions(),
		Values: values,
	}
	resolved, err := container.ResolveAllFields(submitted)
	if err != nil {
		return s.toHTTPError(err)
	}

	stored, err := container.ResolveAllFields(record)
	if err != nil {
		return s.toHTTPError(err)
	}
	seen := map[string]bool{}
	for _, field := range resolved {
		seen[field.ULID] = true
	}
	for _, field := range stored {
		if !seen[field.ULID] {
			resolved = append(resolved, field)
		}
	}

	view := rules.MapView(data)
	resolve := PathResolver(record, data)
	lookup := record.FieldDefinitions().Flatten()

	for _, field := range resolved {
		builder := s.registry.Resolve(field.FieldType)
		if builder == nil {
			continue
		}

		input, err := builder.Build(ctx, field.StorageKey(), field)
		if err != nil {
			return s.toHTTPError(err)
		}

		if !input.IsVisible(view, resolve) {
			continue
		}

		value := submittedValue(values, lookup, field)

		if input.IsRequired(view, resolve) && value == nil {
			return httperror.NewHTTPError(http.StatusBadRequest, "field '"+field.Name+"' is required")
		}

		if value == nil {
			continue
		}

		if err := validation.Check(input, value); err != nil {
			return httperror.NewHTTPError(http.StatusBadRequest, "field '"+field.Name+"': "+err.Error())
		}
	}

	return nil
}

// submittedValue reads the field's submitted value: top level for flat
// fields, through the container row holding it for nested ones.
func submittedValue(values map[string]any, lookup models.Fields, field models.Field) any {
	if value, ok := values[field.ULID]; ok {
		return value
	}
	if field.Slug != "" {
		if value, ok := values[field.Slug]; ok {
			return value
		}
	}

	if location := container.LocateIn(values, lookup, field); location.Found {
		if row, ok := container.RowAt(values, location.Path); ok {
			return row[location.Key]
		}
	}

	return nil
}

func (s *Service) toHTTPError(err error) error {
	if formErr, ok := err.(*errors.FormError); ok {
		return formErr.ToHTTPError()
	}
	return err
}

// PathResolver maps a field ULID to its live form-state path under the
// record's value column, preferring the key actually present in the data.
func PathResolver(record models.Record, data map[string]any) rules.PathResolver {
	return func(fieldULID string) (string, bool) {
		field, ok := record.FieldDefinitions().Find(fieldULID)
		if !ok {
			return "", false
		}

		key := field.ULID
		if column, ok := data[record.ValueColumn()].(map[string]any); ok {
			if _, present := column[key]; !present && field.Slug != "" {
				if _, present := column[field.Slug]; present {
					key = field.Slug
				}
			}
		}

		return record.ValueColumn() + "." + key, true
	}
}
