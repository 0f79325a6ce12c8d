package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/WPrzybyszewski/10-X-Cards/internal/service"
	"github.com/WPrzybyszewski/10-X-Cards/internal/validate"
)

// FlashcardHandler — ручное создание, правка и листинг фишек.
type FlashcardHandler struct {
	FlashcardService *service.FlashcardService
	Logger           *zap.SugaredLogger
}

// NewFlashcardHandler создаёт хендлер фишек
func NewFlashcardHandler(flashcardService *service.FlashcardService, logger *zap.SugaredLogger) *FlashcardHandler {
	return &FlashcardHandler{FlashcardService: flashcardService, Logger: logger}
}

// Create ручное создание фишки
func (h *FlashcardHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var cmd validate.CreateFlashcardCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.Logger.Warnw("CreateFlashcard: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, CodeValidation, "invalid request body", nil)
		return
	}
	cmd.Question = strings.TrimSpace(cmd.Question)
	cmd.Answer = strings.TrimSpace(cmd.Answer)
	if err := validate.Struct(cmd); err != nil {
		writeValidationError(w, err)
		return
	}

	card, err := h.FlashcardService.Create(r.Context(), userID, cmd)
	if err != nil {
		if err != service.ErrCategoryNotFound {
			h.Logger.Errorw("CreateFlashcard: service error", "user_id", userID, "error", err)
		}
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/flashcards/"+card.ID)
	writeJSON(w, http.StatusCreated, toFlashcardDTO(card))
}

// Update частичное обновление фишки
func (h *FlashcardHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "flashcardId")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, "flashcardId must be a valid UUID", nil)
		return
	}

	var cmd validate.UpdateFlashcardCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.Logger.Warnw("UpdateFlashcard: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, CodeValidation, "invalid request body", nil)
		return
	}
	if cmd.Empty() {
		writeError(w, http.StatusBadRequest, CodeValidation, "at least one field must be provided", nil)
		return
	}
	if err := validate.Struct(cmd); err != nil {
		writeValidationError(w, err)
		return
	}

	card, err := h.FlashcardService.Update(r.Context(), userID, id, cmd)
	if err != nil {
		if err != service.ErrFlashcardNotFound && err != service.ErrCategoryNotFound {
			h.Logger.Errorw("UpdateFlashcard: service error", "user_id", userID, "flashcard_id", id, "error", err)
		}
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toFlashcardDTO(card))
}

// List страница фишек пользователя (новые сначала)
func (h *FlashcardHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	p, err := validate.ParsePagination(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return
	}

	cards, total, err := h.FlashcardService.List(r.Context(), userID, p)
	if err != nil {
		h.Logger.Errorw("ListFlashcards: service error", "user_id", userID, "error", err)
		writeServiceError(w, err)
		return
	}

	data := make([]FlashcardDTO, 0, len(cards))
	for i := range cards {
		data = append(data, toFlashcardDTO(&cards[i]))
	}
	writeJSON(w, http.StatusOK, PageResponse[FlashcardDTO]{
		Data:       data,
		Pagination: newPagination(p, total),
	})
}
