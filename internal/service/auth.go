package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mlazarev/book-library/internal/events"
	"github.com/mlazarev/book-library/internal/hash"
	"github.com/mlazarev/book-library/internal/logging"
	"github.com/mlazarev/book-library/internal/models"
	"github.com/mlazarev/book-library/internal/repo"
	"github.com/mlazarev/book-library/internal/tokens"
)

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	Events    *events.Producer
}

type LoginResult struct {
	Token string
	User  *models.User
}

type RegisterParams struct {
	Username string
	Email    string
	Password string
	IsAdmin  bool
}

func (s *AuthService) Register(ctx context.Context, p RegisterParams) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if p.Username == "" || p.Email == "" || p.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", ErrValidation)
	}

	pwHash, err := hash.HashPassword(p.Password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	// Pre-check for a friendlier error only. The unique constraints decide:
	// two concurrent registrations can both pass this check, and the loser of
	// the insert race still gets the same conflict error.
	if taken, err := s.Repo.UsernameOrEmailTaken(ctx, p.Username, p.Email); err != nil {
		l.Error("register_error", "status", 500, "error", err)
		return nil, err
	} else if taken {
		l.Warn("register_error", "status", 409, "reason", "username or email already taken")
		return nil, repo.ErrUserAlreadyExist
	}

	user := models.User{
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: pwHash,
		IsAdmin:      p.IsAdmin,
	}

	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		return nil, err
	}

	if err := s.Events.Publish(ctx, events.TopicUserEvents, user.Username, map[string]any{
		"type":     "user_registered",
		"userID":   user.ID,
		"username": user.Username,
	}); err != nil {
		l.Warn("user_event_publish_failed", "error", err)
	}

	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	user, err := s.Repo.FindUserByUsername(ctx, username)
	if err != nil {
		l.Warn("login_failed", "status", 401, "error", err)
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 401, "reason", "password mismatch")
		return nil, repo.ErrInvalidCredentials
	}

	exp := time.Now().Add(tokens.TTL)
	token, err := tokens.Sign(user.ID, user.Username, user.IsAdmin, exp, s.JWTSecret)
	if err != nil {
		l.Error("login_failed", "status", 500, "error", err)
		return nil, err
	}

	return &LoginResult{Token: token, User: user}, nil
}
