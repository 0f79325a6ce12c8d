package handlers

import (
	"net/http"
	"time"

	"github.com/WPrzybyszewski/10-X-Cards/internal/middleware"
	"github.com/WPrzybyszewski/10-X-Cards/internal/model"
	"github.com/WPrzybyszewski/10-X-Cards/internal/validate"
)

// DTO ответов API. Поля в camelCase, время в RFC3339 UTC.

type UserDTO struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

type CategoryDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type FlashcardDTO struct {
	ID           string  `json:"id"`
	Question     string  `json:"question"`
	Answer       string  `json:"answer"`
	CategoryID   *string `json:"categoryId"`
	GenerationID *string `json:"generationId"`
	Source       string  `json:"source"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

type SuggestionDTO struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type GenerationDTO struct {
	ID           string          `json:"id"`
	Status       string          `json:"status"`
	Progress     int             `json:"progress"`
	ModelUsed    string          `json:"modelUsed"`
	CategoryID   *string         `json:"categoryId"`
	ErrorMessage string          `json:"errorMessage,omitempty"`
	Suggestions  []SuggestionDTO `json:"suggestions,omitempty"`
	CreatedAt    string          `json:"createdAt"`
	UpdatedAt    string          `json:"updatedAt"`
}

// PaginationDTO — блок pagination в списочных ответах.
type PaginationDTO struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

// PageResponse — конверт списочных ответов {data, pagination}.
type PageResponse[T any] struct {
	Data       []T           `json:"data"`
	Pagination PaginationDTO `json:"pagination"`
}

func fmtTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func toUserDTO(u *model.User) UserDTO {
	return UserDTO{ID: u.ID, Email: u.Email, CreatedAt: fmtTime(u.CreatedAt)}
}

func toCategoryDTO(c *model.Category) CategoryDTO {
	return CategoryDTO{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: fmtTime(c.CreatedAt),
		UpdatedAt: fmtTime(c.UpdatedAt),
	}
}

func toFlashcardDTO(f *model.Flashcard) FlashcardDTO {
	return FlashcardDTO{
		ID:           f.ID,
		Question:     f.Question,
		Answer:       f.Answer,
		CategoryID:   f.CategoryID,
		GenerationID: f.GenerationID,
		Source:       f.Source,
		CreatedAt:    fmtTime(f.CreatedAt),
		UpdatedAt:    fmtTime(f.UpdatedAt),
	}
}

func toGenerationDTO(g *model.Generation) GenerationDTO {
	dto := GenerationDTO{
		ID:           g.ID,
		Status:       g.Status,
		Progress:     g.Progress,
		ModelUsed:    g.ModelUsed,
		CategoryID:   g.CategoryID,
		ErrorMessage: g.ErrorMessage,
		CreatedAt:    fmtTime(g.CreatedAt),
		UpdatedAt:    fmtTime(g.UpdatedAt),
	}
	for _, s := range g.Suggestions {
		dto.Suggestions = append(dto.Suggestions, SuggestionDTO{Question: s.Question, Answer: s.Answer})
	}
	return dto
}

func newPagination(p validate.Pagination, total int64) PaginationDTO {
	return PaginationDTO{
		Page:       p.Page,
		Limit:      p.Limit,
		TotalItems: total,
		TotalPages: validate.TotalPages(total, p.Limit),
	}
}

// requireUser достаёт пользователя из контекста или пишет 401 в конверте.
func requireUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, CodeUnauthorized, "authentication required", nil)
		return 0, false
	}
	return userID, true
}
