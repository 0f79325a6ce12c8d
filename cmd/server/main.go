package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/WPrzybyszewski/10-X-Cards/internal/config"
	"github.com/WPrzybyszewski/10-X-Cards/internal/engine"
	"github.com/WPrzybyszewski/10-X-Cards/internal/handlers"
	"github.com/WPrzybyszewski/10-X-Cards/internal/middleware"
	"github.com/WPrzybyszewski/10-X-Cards/internal/repo"
	"github.com/WPrzybyszewski/10-X-Cards/internal/service"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	categoryRepo := repo.NewCategoryRepository(gormDB)
	flashcardRepo := repo.NewFlashcardRepository(gormDB)
	generationRepo := repo.NewGenerationRepository(gormDB)

	// генератор: OpenRouter при наличии ключа, иначе детерминированная заглушка
	var gen engine.Generator
	if cfg.OpenRouterAPIKey != "" {
		gen = engine.NewOpenRouter(cfg.OpenRouterBaseURL, cfg.OpenRouterAPIKey)
	} else {
		sugar.Warnw("OPENROUTER_API_KEY is not set, using the built-in mock generator")
		gen = &engine.MockGenerator{Delay: 2 * time.Second}
	}
	eng := engine.New(generationRepo, gen, cfg.EngineWorkers, cfg.EngineQueueSize, sugar)

	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	flashcardService := service.NewFlashcardService(flashcardRepo, categoryRepo)
	generationService := service.NewGenerationService(
		generationRepo, categoryRepo, eng, cfg.GenerationModel, sugar)

	h := handlers.NewHandler(
		userService, categoryService, flashcardService, generationService, sugar, cfg)

	addr := cfg.BaseURL
	srv := &http.Server{Addr: addr, Handler: h.Router}

	sugar.Infow("Starting server", "addr", addr)
	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"DatabaseDSN", cfg.DatabaseDSN,
		"Model", cfg.GenerationModel,
		"EngineWorkers", cfg.EngineWorkers,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return eng.Run(gctx)
	})
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
