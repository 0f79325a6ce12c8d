package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/WPrzybyszewski/10-X-Cards/internal/model"
	"github.com/WPrzybyszewski/10-X-Cards/internal/service"
	"github.com/WPrzybyszewski/10-X-Cards/internal/validate"
)

// Период опроса статуса при SSE-стриминге.
const sseInterval = time.Second

// GenerationHandler — постановка задач генерации, наблюдение и акцепт.
type GenerationHandler struct {
	GenerationService *service.GenerationService
	Logger            *zap.SugaredLogger
}

// NewGenerationHandler создаёт хендлер задач генерации
func NewGenerationHandler(generationService *service.GenerationService, logger *zap.SugaredLogger) *GenerationHandler {
	return &GenerationHandler{GenerationService: generationService, Logger: logger}
}

// Submit постановка задачи генерации в очередь
func (h *GenerationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var cmd validate.SubmitGenerationCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.Logger.Warnw("SubmitGeneration: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, CodeValidation, "invalid request body", nil)
		return
	}
	if err := validate.Struct(cmd); err != nil {
		writeValidationError(w, err)
		return
	}

	task, err := h.GenerationService.Submit(r.Context(), userID, cmd)
	if err != nil {
		if err != service.ErrCategoryNotFound {
			h.Logger.Errorw("SubmitGeneration: service error", "user_id", userID, "error", err)
		}
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/generations/"+task.ID)
	writeJSON(w, http.StatusAccepted, toGenerationDTO(task))
}

// List страница задач пользователя (новые сначала)
func (h *GenerationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	p, err := validate.ParsePagination(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return
	}

	tasks, total, err := h.GenerationService.List(r.Context(), userID, p)
	if err != nil {
		h.Logger.Errorw("ListGenerations: service error", "user_id", userID, "error", err)
		writeServiceError(w, err)
		return
	}

	data := make([]GenerationDTO, 0, len(tasks))
	for i := range tasks {
		data = append(data, toGenerationDTO(&tasks[i]))
	}
	writeJSON(w, http.StatusOK, PageResponse[GenerationDTO]{
		Data:       data,
		Pagination: newPagination(p, total),
	})
}

// Get деталка задачи: JSON для поллинга или SSE-стрим прогресса
func (h *GenerationHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "generationId")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, "generationId must be a valid UUID", nil)
		return
	}

	task, err := h.GenerationService.Get(r.Context(), userID, id)
	if err != nil {
		if err != service.ErrGenerationNotFound {
			h.Logger.Errorw("GetGeneration: service error", "user_id", userID, "generation_id", id, "error", err)
		}
		writeServiceError(w, err)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
		h.stream(w, r, userID, task)
		return
	}
	writeJSON(w, http.StatusOK, toGenerationDTO(task))
}

// stream шлёт события прогресса раз в секунду до терминального статуса
// или готовности результата.
func (h *GenerationHandler) stream(w http.ResponseWriter, r *http.Request, userID int64, task *model.Generation) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusOK, toGenerationDTO(task))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	emit := func(event map[string]any) {
		payload, err := json.Marshal(event)
		if err != nil {
			return
		}
		fmt.Fprintf(w, "data: %s\n\n", payload)
		flusher.Flush()
	}

	// завершающее событие по состоянию задачи; false — стрим продолжается
	final := func(g *model.Generation) bool {
		switch {
		case g.Terminal():
			emit(map[string]any{"type": g.Status})
			return true
		case g.Progress >= 100:
			emit(map[string]any{"type": "suggestions_ready", "suggestions": len(g.Suggestions)})
			return true
		}
		return false
	}

	emit(map[string]any{"type": "progress", "progress": task.Progress})
	if final(task) {
		return
	}

	ticker := time.NewTicker(sseInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			g, err := h.GenerationService.Get(r.Context(), userID, task.ID)
			if err != nil {
				h.Logger.Warnw("stream: failed to reload task", "generation_id", task.ID, "error", err)
				return
			}
			emit(map[string]any{"type": "progress", "progress": g.Progress})
			if final(g) {
				return
			}
		}
	}
}

// Accept перенос предложенных карточек в коллекцию пользователя
func (h *GenerationHandler) Accept(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "generationId")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, "generationId must be a valid UUID", nil)
		return
	}

	// тело опционально: пустое тело означает «принять все предложения»
	cmd := &validate.AcceptGeneratedCardsCommand{}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(cmd); err != nil {
			h.Logger.Warnw("AcceptGeneration: invalid request body", "error", err)
			writeError(w, http.StatusBadRequest, CodeValidation, "invalid request body", nil)
			return
		}
		if err := validate.Struct(*cmd); err != nil {
			writeValidationError(w, err)
			return
		}
	}

	cards, err := h.GenerationService.Accept(r.Context(), userID, id, cmd)
	if err != nil {
		switch err {
		case service.ErrGenerationNotFound, service.ErrAlreadyProcessed, service.ErrNoSuggestions:
		default:
			h.Logger.Errorw("AcceptGeneration: service error", "user_id", userID, "generation_id", id, "error", err)
		}
		writeServiceError(w, err)
		return
	}

	out := make([]FlashcardDTO, 0, len(cards))
	for i := range cards {
		out = append(out, toFlashcardDTO(&cards[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// Cancel отмена невыполненной задачи
func (h *GenerationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "generationId")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, "generationId must be a valid UUID", nil)
		return
	}

	task, err := h.GenerationService.Cancel(r.Context(), userID, id)
	if err != nil {
		if err != service.ErrGenerationNotFound && err != service.ErrAlreadyProcessed {
			h.Logger.Errorw("CancelGeneration: service error", "user_id", userID, "generation_id", id, "error", err)
		}
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toGenerationDTO(task))
}
