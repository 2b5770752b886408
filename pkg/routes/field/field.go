package field

import (
	"net/http"

	"github.com/Gobusters/ectoinject"
	fieldsvc "github.com/Ramsey-B/fern/internal/services/field"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
	"github.com/Ramsey-B/fern/pkg/utils"
	"github.com/labstack/echo/v4"
)

type FieldRequest struct {
	Slug       string             `json:"slug" validate:"omitempty"`
	Name       string             `json:"name" validate:"required"`
	FieldType  string             `json:"field_type" validate:"required"`
	Config     models.FieldConfig `json:"config" validate:"omitempty"`
	Position   int                `json:"position" validate:"omitempty"`
	ParentULID string             `json:"parent_ulid" validate:"omitempty"`
	SchemaULID string             `json:"schema_ulid" validate:"omitempty"`
	ModelType  string             `json:"model_type" validate:"required"`
	ModelKey   string             `json:"model_key" validate:"required"`
}

func (r FieldRequest) toField() models.Field {
	return models.Field{
		Slug:       r.Slug,
		Name:       r.Name,
		FieldType:  r.FieldType,
		Config:     r.Config,
		Position:   r.Position,
		ParentULID: r.ParentULID,
		SchemaULID: r.SchemaULID,
		ModelType:  r.ModelType,
		ModelKey:   r.ModelKey,
	}
}

func CreateField(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "field.CreateField")
	defer span.End()

	req, err := utils.BindRequest[FieldRequest](c)
	if err != nil {
		return err
	}

	ctx, service, err := ectoinject.GetContext[fieldsvc.FieldService](ctx)
	if err != nil {
		return err
	}

	result, err := service.Create(ctx, req.toField())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, result)
}

func UpdateField(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "field.UpdateField")
	defer span.End()

	req, err := utils.BindRequest[FieldRequest](c)
	if err != nil {
		return err
	}

	field := req.toField()
	field.ULID = c.Param("ulid")

	ctx, service, err := ectoinject.GetContext[fieldsvc.FieldService](ctx)
	if err != nil {
		return err
	}

	result, err := service.Update(ctx, field)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func GetField(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "field.GetField")
	defer span.End()

	ctx, service, err := ectoinject.GetContext[fieldsvc.FieldService](ctx)
	if err != nil {
		return err
	}

	result, err := service.Get(ctx, c.Param("ulid"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func ListFields(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "field.ListFields")
	defer span.End()

	ctx, service, err := ectoinject.GetContext[fieldsvc.FieldService](ctx)
	if err != nil {
		return err
	}

	result, err := service.ListByOwner(ctx, c.Param("model_type"), c.Param("model_key"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

type ReorderRequest struct {
	Positions map[string]int `json:"positions" validate:"required"`
}

func ReorderFields(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "field.ReorderFields")
	defer span.End()

	req, err := utils.BindRequest[ReorderRequest](c)
	if err != nil {
		return err
	}

	ctx, service, err := ectoinject.GetContext[fieldsvc.FieldService](ctx)
	if err != nil {
		return err
	}

	if err := service.Reorder(ctx, req.Positions); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func DeleteField(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "field.DeleteField")
	defer span.End()

	ctx, service, err := ectoinject.GetContext[fieldsvc.FieldService](ctx)
	if err != nil {
		return err
	}

	if err := service.Delete(ctx, c.Param("ulid")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
