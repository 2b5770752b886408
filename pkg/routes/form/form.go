package form

import (
	"net/http"

	"github.com/Gobusters/ectoinject"
	formsvc "github.com/Ramsey-B/fern/internal/services/form"
	"github.com/Ramsey-B/fern/pkg/tracing"
	"github.com/Ramsey-B/fern/pkg/utils"
	"github.com/labstack/echo/v4"
)

func BuildForm(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "form.BuildForm")
	defer span.End()

	ctx, service, err := ectoinject.GetContext[formsvc.FormService](ctx)
	if err != nil {
		return err
	}

	result, err := service.Build(ctx, c.Param("model_type"), c.Param("model_key"), c.Param("record_key"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

type SubmitRequest struct {
	Data map[string]any `json:"data" validate:"required"`
}

func SubmitForm(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "form.SubmitForm")
	defer span.End()

	req, err := utils.BindRequest[SubmitRequest](c)
	if err != nil {
		return err
	}

	ctx, service, err := ectoinject.GetContext[formsvc.FormService](ctx)
	if err != nil {
		return err
	}

	err = service.Submit(ctx, c.Param("model_type"), c.Param("model_key"), c.Param("record_key"), req.Data)
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusAccepted)
}
