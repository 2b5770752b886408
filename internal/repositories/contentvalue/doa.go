package contentvalue

import (
	"database/sql"

	"github.com/Ramsey-B/fern/pkg/database"
)

type ContentValueRow struct {
	RecordKey sql.NullString      `db:"record_key"`
	FieldULID sql.NullString      `db:"field_ulid"`
	Value     database.JSONB[any] `db:"value"`
	CreatedTS sql.NullTime        `db:"created_at"`
	UpdatedTS sql.NullTime        `db:"updated_at"`
}

const (
	contentValueTable = "content_values"
)

var contentValueStruct = database.NewStruct(new(ContentValueRow))
