// Package contentvalue persists per-field values keyed by (record, field),
// the database-backed store.ValueStore implementation.
package contentvalue

import (
	"context"
	stdsql "database/sql"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new content value repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) Get(ctx context.Context, recordKey, fieldULID string) (any, bool, error) {
	ctx, span := tracing.StartSpan(ctx, "ContentValueRepository.Get")
	defer span.End()

	sb := contentValueStruct.SelectFrom(contentValueTable)
	sb.Where(
		sb.Equal("record_key", recordKey),
		sb.Equal("field_ulid", fieldULID),
	)
	sb.Limit(1)

	sql, args := sb.Build()

	var row ContentValueRow
	err := r.db.GetContext(ctx, &row, sql, args...)
	if err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, false, nil
		}

		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"record_key": recordKey,
			"field_ulid": fieldULID,
		}).Error("error getting content value")
		return nil, false, httperror.NewHTTPError(http.StatusInternalServerError, "error getting content value")
	}

	return row.Value.Data, true, nil
}

// ValuesFor returns the record's full value map keyed by field ULID.
func (r *Repository) ValuesFor(ctx context.Context, recordKey string) (map[string]any, error) {
	ctx, span := tracing.StartSpan(ctx, "ContentValueRepository.ValuesFor")
	defer span.End()

	sb := contentValueStruct.SelectFrom(contentValueTable)
	sb.Where(sb.Equal("record_key", recordKey))

	sql, args := sb.Build()

	var rows []ContentValueRow
	err := r.db.SelectContext(ctx, &rows, sql, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"record_key": recordKey,
		}).Error("error listing content values")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "error listing content values")
	}

	values := make(map[string]any, len(rows))
	for i := range rows {
		values[rows[i].FieldULID.String] = rows[i].Value.Data
	}

	return values, nil
}

func (r *Repository) Upsert(ctx context.Context, recordKey, fieldULID string, value any) error {
	ctx, span := tracing.StartSpan(ctx, "ContentValueRepository.Upsert")
	defer span.End()

	row := &ContentValueRow{
		RecordKey: stdsql.NullString{String: recordKey, Valid: recordKey != ""},
		FieldULID: stdsql.NullString{String: fieldULID, Valid: fieldULID != ""},
		Value:     database.JSONB[any]{Data: value},
		CreatedTS: stdsql.NullTime{Time: time.Now().UTC(), Valid: true},
	}

	ib := contentValueStruct.InsertInto(contentValueTable, row)
	ub := ib.OnConflict("record_key", "field_ulid")
	ub.Set(
		ub.Assign("value", database.Excluded("value")),
		ub.Assign("updated_at", time.Now().UTC()),
	)

	sql, args := ib.Build()

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.ExecContext(ctx, sql, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"record_key": recordKey,
			"field_ulid": fieldULID,
		}).Error("error upserting content value")
		return httperror.NewHTTPError(http.StatusInternalServerError, "error upserting content value")
	}

	return tx.Commit(ctx)
}

func (r *Repository) Delete(ctx context.Context, recordKey, fieldULID string) error {
	ctx, span := tracing.StartSpan(ctx, "ContentValueRepository.Delete")
	defer span.End()

	db := contentValueStruct.DeleteFrom(contentValueTable)
	db.Where(
		db.Equal("record_key", recordKey),
		db.Equal("field_ulid", fieldULID),
	)

	sql, args := db.Build()

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.ExecContext(ctx, sql, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"record_key": recordKey,
			"field_ulid": fieldULID,
		}).Error("error deleting content value")
		return httperror.NewHTTPError(http.StatusInternalServerError, "error deleting content value")
	}

	return tx.Commit(ctx)
}
