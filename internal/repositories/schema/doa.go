package schema

import (
	"database/sql"

	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/models"
)

func FromSchema(schema models.Schema) *SchemaRow {
	return &SchemaRow{
		ULID:       sql.NullString{String: schema.ULID, Valid: schema.ULID != ""},
		Name:       sql.NullString{String: schema.Name, Valid: schema.Name != ""},
		Kind:       sql.NullString{String: schema.Kind, Valid: schema.Kind != ""},
		Position:   sql.NullInt64{Int64: int64(schema.Position), Valid: true},
		ParentULID: sql.NullString{String: schema.ParentULID, Valid: schema.ParentULID != ""},
		ModelType:  sql.NullString{String: schema.ModelType, Valid: schema.ModelType != ""},
		ModelKey:   sql.NullString{String: schema.ModelKey, Valid: schema.ModelKey != ""},
	}
}

type SchemaRow struct {
	ULID       sql.NullString `db:"ulid"`
	Name       sql.NullString `db:"name"`
	Kind       sql.NullString `db:"kind"`
	Position   sql.NullInt64  `db:"position"`
	ParentULID sql.NullString `db:"parent_ulid"`
	ModelType  sql.NullString `db:"model_type"`
	ModelKey   sql.NullString `db:"model_key"`
	IsDeleted  sql.NullBool   `db:"is_deleted"`
	CreatedTS  sql.NullTime   `db:"created_at"`
	UpdatedTS  sql.NullTime   `db:"updated_at"`
}

const (
	schemaTable = "schemas"
)

var schemaStruct = database.NewStruct(new(SchemaRow))

func ToSchema(row *SchemaRow) models.Schema {
	return models.Schema{
		ULID:       row.ULID.String,
		Name:       row.Name.String,
		Kind:       row.Kind.String,
		Position:   int(row.Position.Int64),
		ParentULID: row.ParentULID.String,
		ModelType:  row.ModelType.String,
		ModelKey:   row.ModelKey.String,
	}
}
