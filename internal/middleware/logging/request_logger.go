package loggingmw

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mlazarev/book-library/internal/logging"
)

// RequestLogger binds a per-request logger into the request context and emits
// one completion record per request. The request id comes from the incoming
// header when the client sent one, otherwise from the id generated by echo's
// RequestID middleware, which has already stamped the response by the time
// this middleware runs.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l := base.With(
				"method", c.Request().Method,
				"path", c.Path(),
				"url", c.Request().URL.Path,
				"remote_ip", c.RealIP(),
				"user_agent", c.Request().UserAgent(),
			)
			if rid := requestID(c); rid != "" {
				l = l.With("request_id", rid)
				c.Response().Header().Set(echo.HeaderXRequestID, rid)
			}

			c.SetRequest(c.Request().WithContext(logging.IntoContext(c.Request().Context(), l)))

			start := time.Now()
			err := next(c)
			dur := time.Since(start)

			if err != nil {
				c.Echo().HTTPErrorHandler(err, c)
			}
			status := c.Response().Status

			switch {
			case err != nil || status >= 500:
				attrs := []any{"status", status, "duration_ms", dur.Milliseconds()}
				if err != nil {
					attrs = append(attrs, "error", err.Error())
				}
				l.Error("request completed", attrs...)
			case status >= 400:
				l.Warn("request completed", "status", status, "duration_ms", dur.Milliseconds())
			default:
				l.Info("request completed", "status", status, "duration_ms", dur.Milliseconds(), "bytes", c.Response().Size)
			}
			return nil
		}
	}
}

func requestID(c echo.Context) string {
	if rid := c.Request().Header.Get(echo.HeaderXRequestID); rid != "" {
		return rid
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
