package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mlazarev/book-library/internal/repo"
	"github.com/mlazarev/book-library/internal/service"
)

func bookErrToHTTP(l *slog.Logger, event string, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		l.Warn(event, "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, repo.ErrISBNTaken):
		l.Warn(event, "status", 409, "error", err)
		return echo.NewHTTPError(http.StatusConflict, "a book with this isbn already exists")
	case errors.Is(err, gorm.ErrRecordNotFound):
		l.Warn(event, "status", 404, "error", err)
		return echo.NewHTTPError(http.StatusNotFound, "book not found")
	default:
		l.Error(event, "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "storage failure")
	}
}
