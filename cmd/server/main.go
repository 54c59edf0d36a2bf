package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/mwalcott/motorlot/internal/config"
	"github.com/mwalcott/motorlot/internal/db"
	"github.com/mwalcott/motorlot/internal/events"
	"github.com/mwalcott/motorlot/internal/flash"
	"github.com/mwalcott/motorlot/internal/handlers"
	"github.com/mwalcott/motorlot/internal/httpserver"
	"github.com/mwalcott/motorlot/internal/logging"
	"github.com/mwalcott/motorlot/internal/middleware"
	"github.com/mwalcott/motorlot/internal/repo"
	"github.com/mwalcott/motorlot/internal/search"
	"github.com/mwalcott/motorlot/internal/view"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	cfg.MustValidate()

	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()
	gormDB, err := db.Open(ctx, cfg.DSN())
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)

	var index *search.VehicleIndex
	if cfg.ES_URL != "" {
		esClient, err := search.NewClient(cfg.ES_URL, cfg.ES_USER, cfg.ES_PASSWORD)
		if err != nil {
			log.Fatalf("elasticsearch init failed: %v", err)
		}
		index = &search.VehicleIndex{ES: esClient, Index: "vehicles"}
	}

	flashStore := flash.NewStore(cfg.SessionSecret, cfg.Production())
	accountRepo := &repo.AccountRepo{DB: gormDB}
	inventoryRepo := &repo.InventoryRepo{DB: gormDB}
	renderer := &view.Renderer{Inv: inventoryRepo, Flash: flashStore, Log: logger}
	auth := &middleware.JWT{Secret: cfg.AccessTokenSecret, Flash: flashStore}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handlers.HTTPErrorHandler(renderer, logger)
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.CSRF(cfg.Production()))
	e.Use(auth.CheckToken)

	deps := httpserver.Deps{
		Base: &handlers.BaseHandler{View: renderer},
		Account: &handlers.AccountHandler{
			Repo:     accountRepo,
			Secret:   cfg.AccessTokenSecret,
			Secure:   cfg.Production(),
			Flash:    flashStore,
			View:     renderer,
			Producer: producer,
			Log:      logger,
		},
		Inventory: &handlers.InventoryHandler{
			Repo:     inventoryRepo,
			Flash:    flashStore,
			View:     renderer,
			Producer: producer,
			Index:    index,
			Log:      logger,
		},
		Auth: auth,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "host", cfg.Host, "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	logger.Info("shutdown complete")
}
