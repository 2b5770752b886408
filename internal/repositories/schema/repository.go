package schema

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

type SchemaRepository interface {
	Upsert(ctx context.Context, schema models.Schema) error
	Get(ctx context.Context, ulid string) (models.Schema, error)
	ListByOwner(ctx context.Context, modelType, modelKey string) (models.Schemas, error)
	UpdatePositions(ctx context.Context, positions map[string]int) error
	Delete(ctx context.Context, ulids []string) error
}

type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new schema repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) Upsert(ctx context.Context, schema models.Schema) error {
	ctx, span := tracing.StartSpan(ctx, "SchemaRepository.Upsert")
	defer span.End()

	row := FromSchema(schema)
	row.CreatedTS.Time = time.Now().UTC()
	row.CreatedTS.Valid = true

	ib := schemaStruct.InsertInto(schemaTable, row)
	ub := ib.OnConflict("ulid")
	ub.Set(
		ub.Assign("name", database.Excluded("name")),
		ub.Assign("kind", database.Excluded("kind")),
		ub.Assign("position", database.Excluded("position")),
		ub.Assign("parent_ulid", database.Excluded("parent_ulid")),
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
		"ulid":       schema.ULID,
		"name":       schema.Name,
		"model_type": schema.ModelType,
		"model_key":  schema.ModelKey,
	}).Info("Upserting schema")
	_, err = tx.ExecContext(ctx, sql, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"ulid": schema.ULID,
		}).Error("error upserting schema")
		return httperror.NewHTTPError(http.StatusInternalServerError, "error upserting schema")
	}

	return tx.Commit(ctx)
}

func (r *Repository) Get(ctx context.Context, ulid string) (models.Schema, error) {
	ctx, span := tracing.StartSpan(ctx, "SchemaRepository.Get")
	defer span.End()

	sb := schemaStruct.SelectFrom(schemaTable)
	sb.Where(
		sb.Equal("ulid", ulid),
		sb.Equal("is_deleted", false),
	)
	sb.Limit(1)

	sql, args := sb.Build()

	var row SchemaRow
	err := r.db.GetContext(ctx, &row, sql, args...)
	if err != nil {
		if err.Error() == "sql: no rows in result set" {
			r.logger.WithContext(ctx).WithFields(map[string]any{
				"ulid": ulid,
			}).Warn("Schema not found")
			return models.Schema{}, httperror.NewHTTPError(http.StatusNotFound, "schema not found")
		}

		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"ulid": ulid,
		}).Error("error getting schema")
		return models.Schema{}, httperror.NewHTTPError(http.StatusInternalServerError, "error getting schema")
	}

	return ToSchema(&row), nil
}

// ListByOwner returns every schema for the owner as a flat list ordered by
// position; tree assembly happens in the service.
func (r *Repository) ListByOwner(ctx context.Context, modelType, modelKey string) (models.Schemas, error) {
	ctx, span := tracing.StartSpan(ctx, "SchemaRepository.ListByOwner")
	defer span.End()

	sb := schemaStruct.SelectFrom(schemaTable)
	sb.Where(
		sb.Equal("model_type", modelType),
		sb.Equal("model_key", modelKey),
		sb.Equal("is_deleted", false),
	)
	sb.OrderBy("position").Asc()

	sql, args := sb.Build()

	var rows []SchemaRow
	err := r.db.SelectContext(ctx, &rows, sql, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"model_type": modelType,
			"model_key":  modelKey,
		}).Error("error listing schemas for owner")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "error listing schemas")
	}

	schemas := make(models.Schemas, 0, len(rows))
	for i := range rows {
		schemas = append(schemas, ToSchema(&rows[i]))
	}

	return schemas, nil
}

func (r *Repository) UpdatePositions(ctx context.Context, positions map[string]int) error {
	ctx, span := tracing.StartSpan(ctx, "SchemaRepository.UpdatePositions")
	defer span.End()

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for ulid, position := range positions {
		ub := database.NewUpdateBuilder()
		ub.Update(schemaTable)
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
			}).Error("error updating schema position")
			return httperror.NewHTTPError(http.StatusInternalServerError, "error updating schema positions")
		}
	}

	return tx.Commit(ctx)
}

func (r *Repository) Delete(ctx context.Context, ulids []string) error {
	ctx, span := tracing.StartSpan(ctx, "SchemaRepository.Delete")
	defer span.End()

	if len(ulids) == 0 {
		return nil
	}

	ub := database.NewUpdateBuilder()
	ub.Update(schemaTable)
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
	}).Info("Deleting schemas")
	if _, err := tx.ExecContext(ctx, sql, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"ulids": ulids,
		}).Error("error deleting schemas")
		return httperror.NewHTTPError(http.StatusInternalServerError, "error deleting schemas")
	}

	return tx.Commit(ctx)
}
