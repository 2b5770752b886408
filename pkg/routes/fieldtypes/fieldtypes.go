package fieldtypes

import (
	"net/http"

	"github.com/Gobusters/ectoinject"
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/inspector"
	"github.com/Ramsey-B/fern/pkg/tracing"
	"github.com/labstack/echo/v4"
)

func ListFieldTypes(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "fieldtypes.ListFieldTypes")
	defer span.End()

	_, insp, err := ectoinject.GetContext[*inspector.Inspector](ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, insp.InspectAll())
}

func GetFieldType(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "fieldtypes.GetFieldType")
	defer span.End()

	_, insp, err := ectoinject.GetContext[*inspector.Inspector](ctx)
	if err != nil {
		return err
	}

	descriptor, err := insp.Inspect(c.Param("key"))
	if err != nil {
		if formErr, ok := err.(*errors.FormError); ok {
			return formErr.ToHTTPError()
		}
		return err
	}

	return c.JSON(http.StatusOK, descriptor)
}
