package field

import (
	"database/sql"

	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/models"
)

func FromField(field models.Field) *FieldRow {
	return &FieldRow{
		ULID:       sql.NullString{String: field.ULID, Valid: field.ULID != ""},
		Slug:       sql.NullString{String: field.Slug, Valid: field.Slug != ""},
		Name:       sql.NullString{String: field.Name, Valid: field.Name != ""},
		FieldType:  sql.NullString{String: field.FieldType, Valid: field.FieldType != ""},
		Config:     database.JSONB[models.FieldConfig]{Data: field.Config},
		Position:   sql.NullInt64{Int64: int64(field.Position), Valid: true},
		ParentULID: sql.NullString{String: field.ParentULID, Valid: field.ParentULID != ""},
		SchemaULID: sql.NullString{String: field.SchemaULID, Valid: field.SchemaULID != ""},
		ModelType:  sql.NullString{String: field.ModelType, Valid: field.ModelType != ""},
		ModelKey:   sql.NullString{String: field.ModelKey, Valid: field.ModelKey != ""},
	}
}

type FieldRow struct {
	ULID       sql.NullString                     `db:"ulid"`
	Slug       sql.NullString                     `db:"slug"`
	Name       sql.NullString                     `db:"name"`
	FieldType  sql.NullString                     `db:"field_type"`
	Config     database.JSONB[models.FieldConfig] `db:"config"`
	Position   sql.NullInt64                      `db:"position"`
	ParentULID sql.NullString                     `db:"parent_ulid"`
	SchemaULID sql.NullString                     `db:"schema_ulid"`
	ModelType  sql.NullString                     `db:"model_type"`
	ModelKey   sql.NullString                     `db:"model_key"`
	IsDeleted  sql.NullBool                       `db:"is_deleted"`
	CreatedTS  sql.NullTime                       `db:"created_at"`
	UpdatedTS  sql.NullTime                       `db:"updated_at"`
}

const (
	fieldTable = "fields"
)

var fieldStruct = database.NewStruct(new(FieldRow))

func ToField(row *FieldRow) models.Field {
	return models.Field{
		ULID:       row.ULID.String,
		Slug:       row.Slug.String,
		Name:       row.Name.String,
		FieldType:  row.FieldType.String,
		Config:     row.Config.Data,
		Position:   int(row.Position.Int64),
		ParentULID: row.ParentULID.String,
		SchemaULID: row.SchemaULID.String,
		ModelType:  row.ModelType.String,
		ModelKey:   row.ModelKey.String,
	}
}
