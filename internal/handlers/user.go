package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/WPrzybyszewski/10-X-Cards/internal/config"
	"github.com/WPrzybyszewski/10-X-Cards/internal/middleware"
	"github.com/WPrzybyszewski/10-X-Cards/internal/service"
	"github.com/WPrzybyszewski/10-X-Cards/internal/validate"
)

// UserHandler — регистрация и вход.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

// NewUserHandler создаёт хендлер auth-маршрутов.
func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger, Config: cfg}
}

// Signup регистрация нового пользователя
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var cmd validate.SignupCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.Logger.Warnw("Signup: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, CodeValidation, "invalid request body", nil)
		return
	}
	cmd.Email = strings.TrimSpace(strings.ToLower(cmd.Email))
	if err := validate.Struct(cmd); err != nil {
		writeValidationError(w, err)
		return
	}

	user, err := h.UserService.Register(r.Context(), cmd.Email, cmd.Password)
	if err != nil {
		if err != service.ErrEmailTaken {
			h.Logger.Errorw("Signup: service error", "email", cmd.Email, "error", err)
		}
		writeServiceError(w, err)
		return
	}

	if err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret); err != nil {
		h.Logger.Errorw("Signup: failed to set auth cookie", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, CodeInternal, "internal error", nil)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(user))
}

// Login вход по email и паролю
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var cmd validate.LoginCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.Logger.Warnw("Login: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, CodeValidation, "invalid request body", nil)
		return
	}
	cmd.Email = strings.TrimSpace(strings.ToLower(cmd.Email))
	if err := validate.Struct(cmd); err != nil {
		writeValidationError(w, err)
		return
	}

	user, err := h.UserService.Login(r.Context(), cmd.Email, cmd.Password)
	if err != nil {
		if err != service.ErrInvalidCredentials {
			h.Logger.Errorw("Login: service error", "email", cmd.Email, "error", err)
		}
		writeServiceError(w, err)
		return
	}

	if err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret); err != nil {
		h.Logger.Errorw("Login: failed to set auth cookie", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, CodeInternal, "internal error", nil)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(user))
}
