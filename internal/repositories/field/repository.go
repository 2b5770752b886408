package field

import (
	"context"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

type FieldRepository interface {
	Upsert(ctx context.Context, field models.Field) error
	Get(ctx context.Context, ulid string) (models.Field, error)
	ListByOwner(ctx context.Context, modelType, modelKey string) (models.Fields, error)
	ListByParent(ctx context.Context, parentULID string) (models.Fields, error)
	UpdatePositions(ctx context.Context, positions map[string]int) error
	Delete(ctx context.Context, ulids []string) error
}

type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new field repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) Upsert(ctx context.Context, field models.Field) error {
	ctx, span := tracing.StartSpan(ctx, "FieldRepository.Upsert")
	defer span.End()

	row := FromField(field)
	row.CreatedTS.Time = time.Now().UTC()
	row.CreatedTS.Valid = true

	ib := fieldStruct.InsertInto(fieldTable, row)
	ub := ib.OnConflict("ulid")
	ub.Set(
		ub.Assign("slug", database.Excluded("slug")),
		ub.Assign("name", database.Excluded("name")),
		ub.Assign("field_type", database.Excluded("field_type")),
		ub.Assign("config", database.Excluded("config")),
		ub.Assign("position", database.Excluded("position")),
		ub.Assign("parent_ulid", database.Excluded("parent_ulid")),
		ub.Assign("schema_ulid", database.Excluded("schema_ulid")),
		ub.Assign("is_deleted", false),
		ub.Assign("updated_at", time.Now().UTC()),
	)

	sql, args := ib.Build()

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"ulid":       field.ULID,
		"slug":       field.Slug,
		"field_type": field.FieldType,
		"model_type": field.ModelType,
		"model_key":  field.ModelKey,
	}).Info("Upserting field")
	_, err = tx.ExecContext(ctx, sql, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"ulid": field.ULID,
			"slug": field.Slug,
		}).Error("error upserting field")
		return httperror.NewHTTPError(http.StatusInternalServerError, "error upserting field")
	}

	return tx.Commit(ctx)
}

func (r *Repository) Get(ctx context.Context, ulid string) (models.Field, error) {
	ctx, span := tracing.StartSpan(ctx, "FieldRepository.Get")
	defer span.End()

	sb := fieldStruct.SelectFrom(fieldTable)
	sb.Where(
		sb.Equal("ulid", ulid),
		sb.Equal("is_deleted", false),
	)
	sb.Limit(1)

	sql, args := sb.Build()

	var row FieldRow
	err := r.db.GetContext(ctx, &row, sql, args...)
	if err != nil {
		if err.Error() == "sql: no rows in result set" {
			r.logger.WithContext(ctx).WithFields(map[string]any{
				"ulid": ulid,
			}).Warn("Field not found")
			return models.Field{}, httperror.NewHTTPError(http.StatusNotFound, "field not found")
		}

		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"ulid": ulid,
		}).Error("error getting field")
		return models.Field{}, httperror.NewHTTPError(http.StatusInternalServerError, "error getting field")
	}

	return ToField(&row), nil
}

func (r *Repository) ListByOwner(ctx context.Context, modelType, modelKey string) (models.Fields, error) {
	ctx, span := tracing.StartSpan(ctx, "FieldRepository.ListByOwner")
	defer span.End()

	sb := fieldStruct.SelectFrom(fieldTable)
	sb.Where(
		sb.Equal("model_type", modelType),
		sb.Equal("model_key", modelKey),
		sb.Equal("is_deleted", false),
	)
	sb.OrderBy("position").Asc()

	sql, args := sb.Build()

	var rows []FieldRow
	err := r.db.SelectContext(ctx, &rows, sql, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"model_type": modelType,
			"model_key":  modelKey,
		}).Error("error listing fields for owner")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "error listing fields")
	}

	fields := make(models.Fields, 0, len(rows))
	for i := range rows {
		fields = append(fields, ToField(&rows[i]))
	}

	return fields, nil
}

func (r *Repository) ListByParent(ctx context.Context, parentULID string) (models.Fields, error) {
	ctx, span := tracing.StartSpan(ctx, "FieldRepository.ListByParent")
	defer span.End()

	sb := fieldStruct.SelectFrom(fieldTable)
	sb.Where(
		sb.Equal("parent_ulid", parentULID),
		sb.Equal("is_deleted", false),
	)
	sb.OrderBy("position").Asc()

	sql, args := sb.Build()

	var rows []FieldRow
	err := r.db.SelectContext(ctx, &rows, sql, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"parent_ulid": parentULID,
		}).Error("error listing child fields")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "error listing child fields")
	}

	fields := make(models.Fields, 0, len(rows))
	for i := range rows {
		fields = append(fields, ToField(&rows[i]))
	}

	return fields, nil
}

func (r *Repository) UpdatePositions(ctx context.Context, positions map[string]int) error {
	ctx, span := tracing.StartSpan(ctx, "FieldRepository.UpdatePositions")
	defer span.End()

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for ulid, position := range positions {
		ub := database.NewUpdateBuilder()
		ub.Update(fieldTable)
		ub.Set(
			ub.Assign("position", position),
			ub.Assign("updated_at", time.Now().UTC()),
		)
		ub.Where(ub.Equal("ulid", ulid))

		sql, args := ub.Build()
		if _, err := tx.ExecContext(ctx, sql, args...); err != nil {
			r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
				"ulid":     ulid,
				"position": position,
			}).Error("error updating field position")
			return httperror.NewHTTPError(http.StatusInternalServerError, "error updating field positions")
		}
	}

	return tx.Commit(ctx)
}

// Delete soft-deletes the fields. Callers pass the full descendant set so the
// cascade happens in one transaction.
func (r *Repository) Delete(ctx context.Context, ulids []string) error {
	ctx, span := tracing.StartSpan(ctx, "FieldRepository.Delete")
	defer span.End()

	if len(ulids) == 0 {
		return nil
	}

	ub := database.NewUpdateBuilder()
	ub.Update(fieldTable)
	ub.Set(
		ub.Assign("is_deleted", true),
		ub.Assign("updated_at", time.Now().UTC()),
	)

	keys := make([]any, 0, len(ulids))
	for _, ulid := range ulids {
		keys = append(keys, ulid)
	}
	ub.Where(ub.In("ulid", keys...))

	sql, args := ub.Build()

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"ulids": ulids,
	}).Info("Deleting fields")
	if _, err := tx.ExecContext(ctx, sql, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"ulids": ulids,
		}).Error("error deleting fields")
		return httperror.NewHTTPError(http.StatusInternalServerError, "error deleting fields")
	}

	return tx.Commit(ctx)
}
