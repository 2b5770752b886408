package field

import (
	"context"
	"net/http"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/registry"
)

// memoryRepo keeps field rows in a map so service behavior can be exercised
// without a database.
type memoryRepo struct {
	fields    map[string]models.Field
	positions map[string]int
	deleted   []string
}

func newMemoryRepo(fields ...models.Field) *memoryRepo {
	repo := &memoryRepo{fields: map[string]models.Field{}}
	for _, field := range fields {
		repo.fields[field.ULID] = field
	}
	return repo
}

func (r *memoryRepo) Upsert(_ context.Context, field models.Field) error {
	r.fields[field.ULID] = field
	return nil
}

func (r *memoryRepo) Get(_ context.Context, ulid string) (models.Field, error) {
	field, ok := r.fields[ulid]
	if !ok {
		return models.Field{}, httperror.NewHTTPError(http.StatusNotFound, "field not found")
	}
	return field, nil
}

func (r *memoryRepo) ListByOwner(_ context.Context, modelType, modelKey string) (models.Fields, error) {
	owned := models.Fields{}
	for _, field := range r.fields {
		if field.ModelType == modelType && field.ModelKey == modelKey {
			owned = append(owned, field)
		}
	}
	owned.SortByPosition()
	return owned, nil
}

func (r *memoryRepo) ListByParent(_ context.Context, parentULID string) (models.Fields, error) {
	children := models.Fields{}
	for _, field := range r.fields {
		if field.ParentULID == parentULID {
			children = append(children, field)
		}
	}
	children.SortByPosition()
	return children, nil
}

func (r *memoryRepo) UpdatePositions(_ context.Context, positions map[string]int) error {
	r.positions = positions
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, ulids []string) error {
	r.deleted = append(r.deleted, ulids...)
	for _, ulid := range ulids {
		delete(r.fields, ulid)
	}
	return nil
}

func newTestService(repo *memoryRepo) *Service {
	logger := ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
	return NewService(repo, registry.New(registry.Deps{}), logger)
}

func TestCreate(t *testing.T) {
	t.Run("should assign a ulid and persist", func(t *testing.T) {
		repo := newMemoryRepo()
		service := newTestService(repo)

		created, err := service.Create(context.Background(), models.Field{
			Name:      "Title",
			Slug:      " title ",
			FieldType: models.FieldTypeText,
			ModelType: "page",
			ModelKey:  "landing",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, created.ULID)
		assert.Equal(t, "title", created.Slug)
		assert.Contains(t, repo.fields, created.ULID)
	})

	t.Run("should reject an unknown field type", func(t *testing.T) {
		service := newTestService(newMemoryRepo())

		_, err := service.Create(context.Background(), models.Field{
			Name:      "Title",
			FieldType: "hologram",
			ModelType: "page",
			ModelKey:  "landing",
		})

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err))
	})

	t.Run("should reject a missing owner", func(t *testing.T) {
		service := newTestService(newMemoryRepo())

		_, err := service.Create(context.Background(), models.Field{
			Name:      "Title",
			FieldType: models.FieldTypeText,
		})

		assert.Error(t, err)
	})

	t.Run("should reject a non container parent", func(t *testing.T) {
		repo := newMemoryRepo(models.Field{
			ULID: "parent", FieldType: models.FieldTypeText,
			ModelType: "page", ModelKey: "landing",
		})
		service := newTestService(repo)

		_, err := service.Create(context.Background(), models.Field{
			Name:       "Caption",
			FieldType:  models.FieldTypeText,
			ModelType:  "page",
			ModelKey:   "landing",
			ParentULID: "parent",
		})

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err))
	})

	t.Run("should allow nesting under a repeater", func(t *testing.T) {
		repo := newMemoryRepo(models.Field{
			ULID: "gallery", FieldType: models.FieldTypeRepeater,
			ModelType: "page", ModelKey: "landing",
		})
		service := newTestService(repo)

		created, err := service.Create(context.Background(), models.Field{
			Name:       "Caption",
			FieldType:  models.FieldTypeText,
			ModelType:  "page",
			ModelKey:   "landing",
			ParentULID: "gallery",
		})

		assert.NoError(t, err)
		assert.Equal(t, "gallery", created.ParentULID)
	})

	t.Run("should reject a slug already used by a sibling", func(t *testing.T) {
		repo := newMemoryRepo(models.Field{
			ULID: "existing", Slug: "title", FieldType: models.FieldTypeText,
			ModelType: "page", ModelKey: "landing",
		})
		service := newTestService(repo)

		_, err := service.Create(context.Background(), models.Field{
			Name:      "Other Title",
			Slug:      "title",
			FieldType: models.FieldTypeText,
			ModelType: "page",
			ModelKey:  "landing",
		})

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, httperror.GetStatusCode(err))
	})

	t.Run("should allow the same slug under a different parent", func(t *testing.T) {
		repo := newMemoryRepo(
			models.Field{
				ULID: "gallery", FieldType: models.FieldTypeRepeater,
				ModelType: "page", ModelKey: "landing",
			},
			models.Field{
				ULID: "existing", Slug: "caption", FieldType: models.FieldTypeText,
				ModelType: "page", ModelKey: "landing",
			},
		)
		service := newTestService(repo)

		_, err := service.Create(context.Background(), models.Field{
			Name:       "Caption",
			Slug:       "caption",
			FieldType:  models.FieldTypeText,
			ModelType:  "page",
			ModelKey:   "landing",
			ParentULID: "gallery",
		})

		assert.NoError(t, err)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("should require a ulid", func(t *testing.T) {
		service := newTestService(newMemoryRepo())

		_, err := service.Update(context.Background(), models.Field{Name: "Title"})

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err))
	})

	t.Run("should keep the owner fixed at creation", func(t *testing.T) {
		repo := newMemoryRepo(models.Field{
			ULID: "f1", Name: "Title", FieldType: models.FieldTypeText,
			ModelType: "page", ModelKey: "landing",
		})
		service := newTestService(repo)

		updated, err := service.Update(context.Background(), models.Field{
			ULID:      "f1",
			Name:      "Headline",
			FieldType: models.FieldTypeText,
			ModelType: "post",
			ModelKey:  "other",
		})

		assert.NoError(t, err)
		assert.Equal(t, "page", updated.ModelType)
		assert.Equal(t, "landing", updated.ModelKey)
		assert.Equal(t, "Headline", updated.Name)
	})

	t.Run("should fail for a missing field", func(t *testing.T) {
		service := newTestService(newMemoryRepo())

		_, err := service.Update(context.Background(), models.Field{ULID: "ghost", Name: "x"})

		assert.Error(t, err)
	})
}

func TestListByOwner(t *testing.T) {
	t.Run("should nest children under their containers", func(t *testing.T) {
		repo := newMemoryRepo(
			models.Field{ULID: "gallery", FieldType: models.FieldTypeRepeater, Position: 1, ModelType: "page", ModelKey: "landing"},
			models.Field{ULID: "caption", FieldType: models.FieldTypeText, ParentULID: "gallery", ModelType: "page", ModelKey: "landing"},
			models.Field{ULID: "title", FieldType: models.FieldTypeText, Position: 0, ModelType: "page", ModelKey: "landing"},
		)
		service := newTestService(repo)

		tree, err := service.ListByOwner(context.Background(), "page", "landing")

		assert.NoError(t, err)
		assert.Equal(t, []string{"title", "gallery"}, tree.ULIDs())
		assert.Equal(t, []string{"caption"}, tree[1].Children.ULIDs())
	})
}

func TestReorder(t *testing.T) {
	t.Run("should forward positions to the repository", func(t *testing.T) {
		repo := newMemoryRepo()
		service := newTestService(repo)

		err := service.Reorder(context.Background(), map[string]int{"f1": 2, "f2": 1})

		assert.NoError(t, err)
		assert.Equal(t, map[string]int{"f1": 2, "f2": 1}, repo.positions)
	})

	t.Run("should no-op on an empty map", func(t *testing.T) {
		repo := newMemoryRepo()
		service := newTestService(repo)

		err := service.Reorder(context.Background(), nil)

		assert.NoError(t, err)
		assert.Nil(t, repo.positions)
	})
}

func TestDelete(t *testing.T) {
	t.Run("should cascade to every descendant", func(t *testing.T) {
		repo := newMemoryRepo(
			models.Field{ULID: "gallery", FieldType: models.FieldTypeRepeater, ModelType: "page", ModelKey: "landing"},
			models.Field{ULID: "slides", FieldType: models.FieldTypeRepeater, ParentULID: "gallery"},
			models.Field{ULID: "caption", FieldType: models.FieldTypeText, ParentULID: "slides"},
			models.Field{ULID: "title", FieldType: models.FieldTypeText, ModelType: "page", ModelKey: "landing"},
		)
		service := newTestService(repo)

		err := service.Delete(context.Background(), "gallery")

		assert.NoError(t, err)
		assert.ElementsMatch(t, []string{"gallery", "slides", "caption"}, repo.deleted)
		assert.Contains(t, repo.fields, "title")
	})

	t.Run("should fail for a missing field", func(t *testing.T) {
		service := newTestService(newMemoryRepo())

		err := service.Delete(context.Background(), "ghost")

		assert.Error(t, err)
	})
}

func TestBuildTree(t *testing.T) {
	t.Run("should surface orphans as roots", func(t *testing.T) {
		flat := models.Fields{
			{ULID: "orphan", ParentULID: "missing"},
			{ULID: "root"},
		}

		tree := BuildTree(flat)

		assert.ElementsMatch(t, []string{"orphan", "root"}, tree.ULIDs())
	})

	t.Run("should sort siblings at every level", func(t *testing.T) {
		flat := models.Fields{
			{ULID: "b", Position: 2},
			{ULID: "a", Position: 1},
			{ULID: "a2", ParentULID: "a", Position: 2},
			{ULID: "a1", ParentULID: "a", Position: 1},
		}

		tree := BuildTree(flat)

		assert.Equal(t, []string{"a", "b"}, tree.ULIDs())
		assert.Equal(t, []string{"a1", "a2"}, tree[0].Children.ULIDs())
	})
}
