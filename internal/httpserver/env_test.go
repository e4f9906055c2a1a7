package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mlazarev/book-library/internal/models"
	"github.com/mlazarev/book-library/internal/repo"
	"github.com/mlazarev/book-library/internal/service"
)

type testEnv struct {
	T         *testing.T
	E         *echo.Echo
	DB        *gorm.DB
	Repo      *repo.GormRepo
	UploadDir string
}

var testSecret = []byte("test-jwt-secret")

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Book{}, &models.Comment{}))

	repository := &repo.GormRepo{DB: db}
	uploadDir := t.TempDir()

	e := echo.New()
	Register(e, &Deps{
		AuthHandler:    &AuthHTTP{Svc: &service.AuthService{Repo: repository, JWTSecret: testSecret}},
		BookHandler:    &BookHTTP{Svc: &service.CatalogService{Repo: repository}, UploadDir: uploadDir},
		CommentHandler: &CommentHTTP{Svc: &service.CommentService{Repo: repository}},
		JWTSecret:      testSecret,
		UploadDir:      uploadDir,
	})

	return &testEnv{T: t, E: e, DB: db, Repo: repository, UploadDir: uploadDir}
}

func (env *testEnv) doJSON(method, path string, body any, token string) *httptest.ResponseRecorder {
	env.T.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(env.T, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) registerAndLogin(username, email string, isAdmin bool) string {
	env.T.Helper()

	rec := env.doJSON(http.MethodPost, "/register", RegisterRequest{
		Username: username,
		Email:    email,
		Password: "secret",
		IsAdmin:  isAdmin,
	}, "")
	require.Equal(env.T, http.StatusCreated, rec.Code)

	rec = env.doJSON(http.MethodPost, "/login", LoginRequest{Username: username, Password: "secret"}, "")
	require.Equal(env.T, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(env.T, resp.Token)
	return resp.Token
}

func (env *testEnv) seedBook(title, author, isbn string, year int) models.Book {
	env.T.Helper()
	book := models.Book{Title: title, Author: author, ISBN: isbn, PublishedYear: &year}
	require.NoError(env.T, env.DB.Create(&book).Error)
	return book
}

func bookPath(id uint) string {
	return fmt.Sprintf("/books/%d", id)
}
