// Package field implements the admin-facing field definition service: CRUD
// with sibling-slug uniqueness, container-only nesting, position reorder and
// cascading delete.
package field

import (
	"context"
	"net/http"
	"strings"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectolinq"
	"github.com/Gobusters/ectologger"
	fieldrepo "github.com/Ramsey-B/fern/internal/repositories/field"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/registry"
	"github.com/Ramsey-B/fern/pkg/tracing"
	"github.com/oklog/ulid/v2"
)

type FieldService interface {
	Create(ctx context.Context, field models.Field) (models.Field, error)
	Update(ctx context.Context, field models.Field) (models.Field, error)
	Get(ctx context.Context, ulid string) (models.Field, error)
	ListByOwner(ctx context.Context, modelType, modelKey string) (models.Fields, error)
	Reorder(ctx context.Context, positions map[string]int) error
	Delete(ctx context.Context, fieldULID string) error
}

type Service struct {
	logger   ectologger.Logger
	repo     fieldrepo.FieldRepository
	registry *registry.Registry
}

// NewService creates a new field service
func NewService(repo fieldrepo.FieldRepository, registry *registry.Registry, logger ectologger.Logger) *Service {
	return &Service{
		logger:   logger,
		repo:     repo,
		registry: registry,
	}
}

func (s *Service) Create(ctx context.Context, field models.Field) (models.Field, error) {
	ctx, span := tracing.StartSpan(ctx, "field.Create")
	defer span.End()

	field.ULID = ulid.Make().String()
	field.Slug = strings.TrimSpace(field.Slug)

	if err := s.validate(ctx, field); err != nil {
		return models.Field{}, err
	}

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"ulid":       field.ULID,
		"slug":       field.Slug,
		"field_type": field.FieldType,
		"model_type": field.ModelType,
		"model_key":  field.ModelKey,
	}).Info("creating field")
	return field, s.repo.Upsert(ctx, field)
}

func (s *Service) Update(ctx context.Context, field models.Field) (models.Field, error) {
	ctx, span := tracing.StartSpan(ctx, "field.Update")
	defer span.End()

	if field.ULID == "" {
		return models.Field{}, httperror.NewHTTPError(http.StatusBadRequest, "ulid is required")
	}

	existing, err := s.repo.Get(ctx, field.ULID)
	if err != nil {
		return models.Field{}, err
	}

	// owner and identity are fixed at creation
	field.ModelType = existing.ModelType
	field.ModelKey = existing.ModelKey
	field.Slug = strings.TrimSpace(field.Slug)

	if err := s.validate(ctx, field); err != nil {
		return models.Field{}, err
	}

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"ulid": field.ULID,
		"slug": field.Slug,
	}).Info("updating field")
	return field, s.repo.Upsert(ctx, field)
}

func (s *Service) Get(ctx context.Context, ulid string) (models.Field, error) {
	ctx, span := tracing.StartSpan(ctx, "field.Get")
	defer span.End()

	return s.repo.Get(ctx, ulid)
}

// ListByOwner returns the owner's fields as a tree: roots ordered by
// position, children nested under their container parents.
func (s *Service) ListByOwner(ctx context.Context, modelType, modelKey string) (models.Fields, error) {
	ctx, span := tracing.StartSpan(ctx, "field.ListByOwner")
	defer span.End()

	flat, err := s.repo.ListByOwner(ctx, modelType, modelKey)
	if err != nil {
		return nil, err
	}

	return BuildTree(flat), nil
}

func (s *Service) Reorder(ctx context.Context, positions map[string]int) error {
	ctx, span := tracing.StartSpan(ctx, "field.Reorder")
	defer span.End()

	if len(positions) == 0 {
		return nil
	}

	return s.repo.UpdatePositions(ctx, positions)
}

// Delete removes the field and every descendant under it.
func (s *Service) Delete(ctx context.Context, fieldULID string) error {
	ctx, span := tracing.StartSpan(ctx, "field.Delete")
	defer span.End()

	field, err := s.repo.Get(ctx, fieldULID)
	if err != nil {
		return err
	}

	ulids := []string{field.ULID}
	queue := []string{field.ULID}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]

		children, err := s.repo.ListByParent(ctx, parent)
		if err != nil {
			return err
		}
		for _, child := range children {
			ulids = append(ulids, child.ULID)
			queue = append(queue, child.ULID)
		}
	}

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"ulid":    fieldULID,
		"cascade": len(ulids) - 1,
	}).Info("deleting field")
	return s.repo.Delete(ctx, ulids)
}

func (s *Service) validate(ctx context.Context, field models.Field) error {
	if field.Name == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if field.FieldType == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "field_type is required")
	}
	if field.ModelType == "" || field.ModelKey == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "model_type and model_key are required")
	}

	// operators editing a field must see an unknown type, not a silent skip
	if _, err := s.registry.ResolveStrict(field.FieldType); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if field.ParentULID != "" {
		parent, err := s.repo.Get(ctx, field.ParentULID)
		if err != nil {
			return err
		}
		if !parent.IsContainer() {
			return httperror.NewHTTPError(http.StatusBadRequest, "parent field must be a repeater or builder")
		}
	}

	if field.Slug != "" {
		siblings, err := s.siblings(ctx, field)
		if err != nil {
			return err
		}
		for _, sibling := range siblings {
			if sibling.ULID != field.ULID && sibling.Slug == field.Slug {
				return httperror.NewHTTPError(http.StatusConflict, "slug already in use by a sibling field")
			}
		}
	}

	return nil
}

func (s *Service) siblings(ctx context.Context, field models.Field) (models.Fields, error) {
	if field.ParentULID != "" {
		return s.repo.ListByParent(ctx, field.ParentULID)
	}

	owned, err := s.repo.ListByOwner(ctx, field.ModelType, field.ModelKey)
	if err != nil {
		return nil, err
	}

	roots := ectolinq.Filter(owned, func(candidate models.Field) bool {
		return candidate.ParentULID == ""
	})
	return roots, nil
}

// BuildTree nests a flat field list into parent/children form. Orphans whose
// parent is missing surface as roots rather than disappearing.
func BuildTree(flat models.Fields) models.Fields {
	byParent := map[string]models.Fields{}
	known := map[string]bool{}
	for _, field := range flat {
		known[field.ULID] = true
	}

	for _, field := range flat {
		parent := field.ParentULID
		if parent != "" && !known[parent] {
			parent = ""
		}
		byParent[parent] = append(byParent[parent], field)
	}

	var attach func(parent string) models.Fields
	attach = func(parent string) models.Fields {
		children := byParent[parent]
		children.SortByPosition()
		for i := range children {
			children[i].Children = attach(children[i].ULID)
		}
		return children
	}

	return attach("")
}
