package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mlazarev/book-library/internal/logging"
	"github.com/mlazarev/book-library/internal/repo"
	"github.com/mlazarev/book-library/internal/service"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, service.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, repo.ErrUserAlreadyExist):
			return echo.NewHTTPError(http.StatusConflict, "username or email already taken")
		default:
			l.Error("register_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot register user")
		}
	}

	l.Info("register_successful", "username", user.Username)
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "user registered",
		"user":    user,
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation), errors.Is(err, repo.ErrInvalidCredentials):
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
		default:
			l.Error("login_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot log in")
		}
	}

	l.Info("login_successful")
	return c.JSON(http.StatusOK, echo.Map{
		"message": "login successful",
		"token":   res.Token,
		"user":    res.User,
	})
}
