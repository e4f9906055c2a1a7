package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/mlazarev/book-library/internal/middleware/auth"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	BookHandler    *BookHTTP
	CommentHandler *CommentHTTP
	JWTSecret      []byte
	UploadDir      string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMW := authmw.New(d.JWTSecret)

	e.POST("/register", d.AuthHandler.Register)
	e.POST("/login", d.AuthHandler.Login)

	books := e.Group("/books")
	books.GET("", d.BookHandler.ListBooks)
	books.GET("/suggest", d.BookHandler.SuggestBooks)
	books.GET("/:id", d.BookHandler.GetBook)
	books.GET("/:id/comments", d.CommentHandler.ListComments)
	books.POST("/:id/comments", d.CommentHandler.CreateComment, authMW.RequireAuth)

	admin := books.Group("", authMW.RequireAdmin)
	admin.POST("", d.BookHandler.CreateBook)
	admin.PUT("/:id", d.BookHandler.UpdateBook)
	admin.DELETE("/:id", d.BookHandler.DeleteBook)

	e.Static("/uploads", d.UploadDir)
}
