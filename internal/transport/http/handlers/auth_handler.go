package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vedran77/chirp/internal/metrics"
	"github.com/vedran77/chirp/internal/service"
	"github.com/vedran77/chirp/internal/transport/http/middleware"
	"github.com/vedran77/chirp/pkg/apperror"
	"github.com/vedran77/chirp/pkg/validator"
)

type AuthHandler struct {
	authService *service.AuthService
	sessions    *middleware.Sessions
}

func NewAuthHandler(authService *service.AuthService, sessions *middleware.Sessions) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if !decodeJSON(w, r, &input) {
		return
	}

	if errs := validator.ValidateRegister(input.Email, input.Username, input.DisplayName, input.Password); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	resp, err := h.authService.Register(r.Context(), input)
	if err != nil {
		writeServiceError(w, "register", err)
		return
	}

	if err := h.sessions.Login(w, r, resp.User.ID); err != nil {
		logrus.WithError(err).Warn("saving session after register")
	}
	metrics.RegisterSuccess.Inc()
	writeJSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if !decodeJSON(w, r, &input) {
		return
	}

	if errs := validator.ValidateLogin(input.Username, input.Password); errs.HasErrors() {
		metrics.LoginFailure.WithLabelValues("validation").Inc()
		writeValidationErrors(w, errs)
		return
	}

	resp, err := h.authService.Login(r.Context(), input)
	if err != nil {
		if apperror.CodeOf(err) == apperror.CodeInvalidCredentials {
			metrics.LoginFailure.WithLabelValues("invalid_credentials").Inc()
		}
		writeServiceError(w, "login", err)
		return
	}

	if err := h.sessions.Login(w, r, resp.User.ID); err != nil {
		logrus.WithError(err).Warn("saving session after login")
	}
	metrics.LoginSuccess.Inc()
	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(w, r); err != nil {
		logrus.WithError(err).Warn("clearing session")
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.GetUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, "me", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}
