package commands

import (
	"strings"

	"github.com/WPrzybyszewski/10-X-Cards/internal/config"
)

// Представления ответов сервера на стороне клиента.

type categoryView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type flashcardView struct {
	ID         string  `json:"id"`
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	CategoryID *string `json:"categoryId"`
	Source     string  `json:"source"`
}

type suggestionView struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type generationView struct {
	ID           string           `json:"id"`
	Status       string           `json:"status"`
	Progress     int              `json:"progress"`
	ModelUsed    string           `json:"modelUsed"`
	ErrorMessage string           `json:"errorMessage"`
	Suggestions  []suggestionView `json:"suggestions"`
	CreatedAt    string           `json:"createdAt"`
}

type paginationView struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

type pageView[T any] struct {
	Data       []T            `json:"data"`
	Pagination paginationView `json:"pagination"`
}

func apiURL(cfg *config.Config, path string) string {
	return strings.TrimRight(cfg.ServerURL, "/") + path
}

// terminal — закончена ли задача (повторяет статусы сервера).
func terminal(status string) bool {
	switch status {
	case "completed", "failed", "cancelled":
		return true
	}
	return false
}
