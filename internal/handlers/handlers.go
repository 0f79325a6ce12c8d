package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/WPrzybyszewski/10-X-Cards/internal/config"
	"github.com/WPrzybyszewski/10-X-Cards/internal/middleware"
	"github.com/WPrzybyszewski/10-X-Cards/internal/service"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	categoryService *service.CategoryService,
	flashcardService *service.FlashcardService,
	generationService *service.GenerationService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger, config)
	categoryHandler := NewCategoryHandler(categoryService, logger)
	flashcardHandler := NewFlashcardHandler(flashcardService, logger)
	generationHandler := NewGenerationHandler(generationService, logger)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Auth routes
		r.Post("/auth/signup", userHandler.Signup)
		r.Post("/auth/login", userHandler.Login)

		// Category routes
		r.Post("/categories", categoryHandler.Create)
		r.Get("/categories", categoryHandler.List)

		// Flashcard routes
		r.Post("/flashcards", flashcardHandler.Create)
		r.Get("/flashcards", flashcardHandler.List)
		r.Patch("/flashcards/{flashcardId}", flashcardHandler.Update)

		// Generation routes
		r.Post("/generations", generationHandler.Submit)
		r.Get("/generations", generationHandler.List)
		r.Get("/generations/{generationId}", generationHandler.Get)
		r.Post("/generations/{generationId}/accept", generationHandler.Accept)
		r.Post("/generations/{generationId}/cancel", generationHandler.Cancel)
	})

	return &Handler{Router: r}
}
