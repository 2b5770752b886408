// Package schema implements the layout schema service: per-owner root
// listing, nesting, reorder and cascading delete, with fields attached to
// their owning schemas.
package schema

import (
	"context"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	fieldrepo "github.com/Ramsey-B/fern/internal/repositories/field"
	schemarepo "github.com/Ramsey-B/fern/internal/repositories/schema"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
	"github.com/oklog/ulid/v2"
)

type SchemaService interface {
	Create(ctx context.Context, schema models.Schema) (models.Schema, error)
	Update(ctx context.Context, schema models.Schema) (models.Schema, error)
	ListByOwner(ctx context.Context, modelType, modelKey string) (models.Schemas, error)
	Reorder(ctx context.Context, positions map[string]int) error
	Delete(ctx context.Context, schemaULID string) error
}

type Service struct {
	logger ectologger.Logger
	repo   schemarepo.SchemaRepository
	fields fieldrepo.FieldRepository
}

// NewService creates a new schema service
func NewService(repo schemarepo.SchemaRepository, fields fieldrepo.FieldRepository, logger ectologger.Logger) *Service {
	return &Service{
		logger: logger,
		repo:   repo,
		fields: fields,
	}
}

func (s *Service) Create(ctx context.Context, schema models.Schema) (models.Schema, error) {
	ctx, span := tracing.StartSpan(ctx, "schema.Create")
	defer span.End()

	schema.ULID = ulid.Make().String()

	if err := s.validate(ctx, schema); err != nil {
		return models.Schema{}, err
	}

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"ulid":       schema.ULID,
		"name":       schema.Name,
		"model_type": schema.ModelType,
		"model_key":  schema.ModelKey,
	}).Info("creating schema")
	return schema, s.repo.Upsert(ctx, schema)
}

func (s *Service) Update(ctx context.Context, schema models.Schema) (models.Schema, error) {
	ctx, span := tracing.StartSpan(ctx, "schema.Update")
	defer span.End()

	if schema.ULID == "" {
		return models.Schema{}, httperror.NewHTTPError(http.StatusBadRequest, "ulid is required")
	}

	existing, err := s.repo.Get(ctx, schema.ULID)
	if err != nil {
		return models.Schema{}, err
	}
	schema.ModelType = existing.ModelType
	schema.ModelKey = existing.ModelKey

	if err := s.validate(ctx, schema); err != nil {
		return models.Schema{}, err
	}

	return schema, s.repo.Upsert(ctx, schema)
}

// ListByOwner returns the owner's schema tree with each schema's direct
// fields attached, everything ordered by position.
func (s *Service) ListByOwner(ctx context.Context, modelType, modelKey string) (models.Schemas, error) {
	ctx, span := tracing.StartSpan(ctx, "schema.ListByOwner")
	defer span.End()

	flat, err := s.repo.ListByOwner(ctx, modelType, modelKey)
	if err != nil {
		return nil, err
	}

	fields, err := s.fields.ListByOwner(ctx, modelType, modelKey)
	if err != nil {
		return nil, err
	}

	fieldsBySchema := map[string]models.Fields{}
	for _, field := range fields {
		if field.SchemaULID != "" && field.ParentULID == "" {
			fieldsBySchema[field.SchemaULID] = append(fieldsBySchema[field.SchemaULID], field)
		}
	}

	tree := BuildTree(flat, fieldsBySchema)
	tree.SortByPosition()
	return tree, nil
}

func (s *Service) Reorder(ctx context.Context, positions map[string]int) error {
	ctx, span := tracing.StartSpan(ctx, "schema.Reorder")
	defer span.End()

	if len(positions) == 0 {
		return nil
	}

	return s.repo.UpdatePositions(ctx, positions)
}

// Delete removes the schema and its descendant schemas. Fields owned by the
// deleted schemas keep their definitions but lose the layout reference.
func (s *Service) Delete(ctx context.Context, schemaULID string) error {
	ctx, span := tracing.StartSpan(ctx, "schema.Delete")
	defer span.End()

	schema, err := s.repo.Get(ctx, schemaULID)
	if err != nil {
		return err
	}

	flat, err := s.repo.ListByOwner(ctx, schema.ModelType, schema.ModelKey)
	if err != nil {
		return err
	}

	byParent := map[string][]string{}
	for _, candidate := range flat {
		byParent[candidate.ParentULID] = append(byParent[candidate.ParentULID], candidate.ULID)
	}

	ulids := []string{schema.ULID}
	queue := []string{schema.ULID}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]
		for _, child := range byParent[parent] {
			ulids = append(ulids, child)
			queue = append(queue, child)
		}
	}

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"ulid":    schemaULID,
		"cascade": len(ulids) - 1,
	}).Info("deleting schema")
	return s.repo.Delete(ctx, ulids)
}

func (s *Service) validate(ctx context.Context, schema models.Schema) error {
	if schema.Name == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if schema.ModelType == "" || schema.ModelKey == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "model_type and model_key are required")
	}

	if schema.ParentULID != "" {
		if schema.ParentULID == schema.ULID {
			return httperror.NewHTTPError(http.StatusBadRequest, "schema cannot nest under itself")
		}
		if _, err := s.repo.Get(ctx, schema.ParentULID); err != nil {
			return err
		}
	}

	return nil
}

// BuildTree nests a flat schema list, attaching each schema's direct fields.
func BuildTree(flat models.Schemas, fieldsBySchema map[string]models.Fields) models.Schemas {
	known := map[string]bool{}
	for _, schema := range flat {
		known[schema.ULID] = true
	}

	byParent := map[string]models.Schemas{}
	for _, schema := range flat {
		parent := schema.ParentULID
		if parent != "" && !known[parent] {
			parent = ""
		}
		byParent[parent] = append(byParent[parent], schema)
	}

	var attach func(parent string) models.Schemas
	attach = func(parent string) models.Schemas {
		children := byParent[parent]
		for i := range children {
			children[i].Fields = fieldsBySchema[children[i].ULID]
			children[i].Children = attach(children[i].ULID)
		}
		return children
	}

	return attach("")
}
