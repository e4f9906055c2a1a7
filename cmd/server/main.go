package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/mlazarev/book-library/internal/config"
	"github.com/mlazarev/book-library/internal/db"
	"github.com/mlazarev/book-library/internal/events"
	"github.com/mlazarev/book-library/internal/httpserver"
	"github.com/mlazarev/book-library/internal/logging"
	loggingmw "github.com/mlazarev/book-library/internal/middleware/logging"
	"github.com/mlazarev/book-library/internal/repo"
	"github.com/mlazarev/book-library/internal/search"
	"github.com/mlazarev/book-library/internal/service"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gormDB, err := db.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)

	var bookIndex *search.BookIndex
	if cfg.ESURL != "" {
		esClient, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		bookIndex = search.NewBookIndex(esClient, search.DefaultIndex)
	}

	repository := &repo.GormRepo{DB: gormDB}
	authSvc := &service.AuthService{Repo: repository, JWTSecret: cfg.JWTSecret, Events: producer}
	catalogSvc := &service.CatalogService{Repo: repository, Events: producer, Index: bookIndex}
	commentSvc := &service.CommentService{Repo: repository, Events: producer}

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc},
		BookHandler:    &httpserver.BookHTTP{Svc: catalogSvc, UploadDir: cfg.UploadDir},
		CommentHandler: &httpserver.CommentHTTP{Svc: commentSvc},
		JWTSecret:      cfg.JWTSecret,
		UploadDir:      cfg.UploadDir,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("book-library listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if err := producer.Close(); err != nil {
		log.Printf("kafka close: %v", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("book-library stopped")
}
