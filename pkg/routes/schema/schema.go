package schema

import (
	"net/http"

	"github.com/Gobusters/ectoinject"
	schemasvc "github.com/Ramsey-B/fern/internal/services/schema"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
	"github.com/Ramsey-B/fern/pkg/utils"
	"github.com/labstack/echo/v4"
)

type SchemaRequest struct {
	Name       string `json:"name" validate:"required"`
	Kind       string `json:"kind" validate:"omitempty,oneof=section grid fieldset"`
	Position   int    `json:"position" validate:"omitempty"`
	ParentULID string `json:"parent_ulid" validate:"omitempty"`
	ModelType  string `json:"model_type" validate:"required"`
	ModelKey   string `json:"model_key" validate:"required"`
}

func (r SchemaRequest) toSchema() models.Schema {
	return models.Schema{
		Name:       r.Name,
		Kind:       r.Kind,
		Position:   r.Position,
		ParentULID: r.ParentULID,
		ModelType:  r.ModelType,
		ModelKey:   r.ModelKey,
	}
}

func CreateSchema(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "schema.CreateSchema")
	defer span.End()

	req, err := utils.BindRequest[SchemaRequest](c)
	if err != nil {
		return err
	}

	ctx, service, err := ectoinject.GetContext[schemasvc.SchemaService](ctx)
	if err != nil {
		return err
	}

	result, err := service.Create(ctx, req.toSchema())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, result)
}

func UpdateSchema(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "schema.UpdateSchema")
	defer span.End()

	req, err := utils.BindRequest[SchemaRequest](c)
	if err != nil {
		return err
	}

	schema := req.toSchema()
	schema.ULID = c.Param("ulid")

	ctx, service, err := ectoinject.GetContext[schemasvc.SchemaService](ctx)
	if err != nil {
		return err
	}

	result, err := service.Update(ctx, schema)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func ListSchemas(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "schema.ListSchemas")
	defer span.End()

	ctx, service, err := ectoinject.GetContext[schemasvc.SchemaService](ctx)
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

func ReorderSchemas(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "schema.ReorderSchemas")
	defer span.End()

	req, err := utils.BindRequest[ReorderRequest](c)
	if err != nil {
		return err
	}

	ctx, service, err := ectoinject.GetContext[schemasvc.SchemaService](ctx)
	if err != nil {
		return err
	}

	if err := service.Reorder(ctx, req.Positions); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func DeleteSchema(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "schema.DeleteSchema")
	defer span.End()

	ctx, service, err := ectoinject.GetContext[schemasvc.SchemaService](ctx)
	if err != nil {
		return err
	}

	if err := service.Delete(ctx, c.Param("ulid")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
