package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/WPrzybyszewski/10-X-Cards/internal/service"
	"github.com/WPrzybyszewski/10-X-Cards/internal/validate"
)

// Коды ошибок единого конверта ответа.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_SERVER_ERROR"
)

// ErrorBody — тело ошибки внутри конверта.
type ErrorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

type errorEnvelope struct {
	Error ErrorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string, details map[string]string) {
	writeJSON(w, status, errorEnvelope{Error: ErrorBody{Code: code, Message: message, Details: details}})
}

// writeValidationError разворачивает ошибки validator в details конверта.
func writeValidationError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusBadRequest, CodeValidation, "request validation failed", validate.Details(err))
}

// writeServiceError переводит сентинелы сервисного слоя в HTTP-статусы.
// Всё незнакомое схлопывается в 500 без деталей.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, CodeConflict, err.Error(), nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, CodeUnauthorized, err.Error(), nil)
	case errors.Is(err, service.ErrCategoryExists):
		writeError(w, http.StatusConflict, CodeConflict, err.Error(), nil)
	case errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrFlashcardNotFound),
		errors.Is(err, service.ErrGenerationNotFound):
		writeError(w, http.StatusNotFound, CodeNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrAlreadyProcessed):
		writeError(w, http.StatusConflict, CodeConflict, err.Error(), nil)
	case errors.Is(err, service.ErrNoSuggestions):
		writeError(w, http.StatusBadRequest, CodeValidation, err.Error(), nil)
	default:
		writeError(w, http.StatusInternalServerError, CodeInternal, "internal error", nil)
	}
}
