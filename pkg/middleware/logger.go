package middleware

import (
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/fern/pkg/tracing"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Logger emits one structured line per request after the handler chain runs.
// Handler errors are routed through the echo error handler here so the logged
// status reflects the response actually written.
func Logger(logger ectologger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			req := c.Request()
			res := c.Response()
			start := time.Now()
			if err = next(c); err != nil {
				c.Error(err)
			}

			elapsed := time.Since(start)

			logger.WithContext(req.Context()).WithFields(map[string]interface{}{
				"request_id":    requestID(c),
				"trace_id":      tracing.GetTraceID(req.Context()),
				"method":        req.Method,
				"uri":           req.RequestURI,
				"route":         c.Path(),
				"status":        res.Status,
				"remote_ip":     c.RealIP(),
				"host":          req.Host,
				"user_agent":    req.UserAgent(),
				"response_time": elapsed,
				"request_size":  req.Header.Get(echo.HeaderContentLength),
				"response_size": res.Size,
			}).Info("Request")

			return nil
		}
	}
}

// requestID prefers the id the caller or an upstream proxy supplied and only
// mints one when neither did.
func requestID(c echo.Context) string {
	if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return uuid.New().String()
}
