package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	pgrepo "github.com/halitkalayci/gyk-backend/internal/adapters/db/postgres"
	"github.com/halitkalayci/gyk-backend/internal/adapters/detector"
	transport "github.com/halitkalayci/gyk-backend/internal/adapters/transport/http"
	"github.com/halitkalayci/gyk-backend/internal/app/auth/jwt"
	authsvc "github.com/halitkalayci/gyk-backend/internal/app/auth/service"
	platesvc "github.com/halitkalayci/gyk-backend/internal/app/plate"
	usersvc "github.com/halitkalayci/gyk-backend/internal/app/user"
	"github.com/halitkalayci/gyk-backend/internal/infra/config"
	lg "github.com/halitkalayci/gyk-backend/internal/infra/log"
	"github.com/halitkalayci/gyk-backend/internal/infra/migrate"
	"github.com/halitkalayci/gyk-backend/internal/infra/server"
)

func main() {
	zapLog := lg.Must(os.Getenv("LOG_LEVEL"))
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("failed to load config", zap.Error(err))
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zapLog.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()
	if err := migrate.Up(sqlDB); err != nil {
		zapLog.Fatal("run migrations", zap.Error(err))
	}

	// annotated frames from previous runs
	platesvc.CleanupTemp()

	validate := validator.New()

	userRepo := pgrepo.NewUserRepo(db)
	jwtUtil := jwt.NewUtil(cfg)
	auth := authsvc.New(userRepo, jwtUtil, cfg, validate)
	users := usersvc.New(userRepo, validate)

	model := detector.NewHTTPDetector(cfg.ModelURL, cfg.ModelTimeout)
	plates := platesvc.New(model, cfg.ConfidenceThreshold, cfg.ModelURL)

	handler := transport.NewHandler(auth, users, plates, cfg, zapLog)
	router := transport.NewRouter(handler)

	srv := &http.Server{Addr: cfg.HTTPAddress, Handler: router}

	rootCtx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		return server.StartHTTPServer(ctx, srv, zapLog)
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		zapLog.Info("shutdown signal received")
	case <-ctx.Done():
	}
	cancel()

	if err := g.Wait(); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
	}
}
