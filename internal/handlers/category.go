package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/WPrzybyszewski/10-X-Cards/internal/service"
	"github.com/WPrzybyszewski/10-X-Cards/internal/validate"
)

// CategoryHandler — категории пользователя.
type CategoryHandler struct {
	CategoryService *service.CategoryService
	Logger          *zap.SugaredLogger
}

// NewCategoryHandler создаёт хендлер категорий
func NewCategoryHandler(categoryService *service.CategoryService, logger *zap.SugaredLogger) *CategoryHandler {
	return &CategoryHandler{CategoryService: categoryService, Logger: logger}
}

// Create создание категории
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var cmd validate.CreateCategoryCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.Logger.Warnw("CreateCategory: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, CodeValidation, "invalid request body", nil)
		return
	}
	cmd.Name = strings.TrimSpace(cmd.Name)
	if err := validate.Struct(cmd); err != nil {
		writeValidationError(w, err)
		return
	}

	category, err := h.CategoryService.Create(r.Context(), userID, cmd.Name)
	if err != nil {
		if err != service.ErrCategoryExists {
			h.Logger.Errorw("CreateCategory: service error", "user_id", userID, "error", err)
		}
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/categories/"+category.ID)
	writeJSON(w, http.StatusCreated, toCategoryDTO(category))
}

// List список категорий пользователя (по имени)
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	categories, err := h.CategoryService.List(r.Context(), userID)
	if err != nil {
		h.Logger.Errorw("ListCategories: service error", "user_id", userID, "error", err)
		writeServiceError(w, err)
		return
	}

	out := make([]CategoryDTO, 0, len(categories))
	for i := range categories {
		out = append(out, toCategoryDTO(&categories[i]))
	}
	writeJSON(w, http.StatusOK, out)
}
