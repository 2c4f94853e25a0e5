package handlers

import (
	"net/http"

	"github.com/vedran77/chirp/internal/service"
	"github.com/vedran77/chirp/internal/transport/http/middleware"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	resp, err := h.notificationService.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, "list notifications", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	notificationID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(r.Context(), userID, notificationID); err != nil {
		writeServiceError(w, "mark notification read", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	updated, err := h.notificationService.MarkAllRead(r.Context(), userID)
	if err != nil {
		writeServiceError(w, "mark all notifications read", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"updated": updated})
}
