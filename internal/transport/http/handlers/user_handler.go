package handlers

import (
	"net/http"

	"github.com/vedran77/chirp/internal/metrics"
	"github.com/vedran77/chirp/internal/service"
	"github.com/vedran77/chirp/internal/transport/http/middleware"
)

type UserHandler struct {
	userService *service.UserService
	postService *service.PostService
}

func NewUserHandler(userService *service.UserService, postService *service.PostService) *UserHandler {
	return &UserHandler{userService: userService, postService: postService}
}

func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	targetID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	resp, err := h.userService.ToggleFollow(r.Context(), userID, targetID)
	if err != nil {
		writeServiceError(w, "toggle follow", err)
		return
	}

	metrics.ObserveToggle("follow", resp.Following)
	writeJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	resp, err := h.userService.Profile(r.Context(), userID, r.PathValue("username"))
	if err != nil {
		writeServiceError(w, "get profile", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) Tweets(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	tweets, err := h.postService.ListByUser(r.Context(), userID, r.PathValue("username"))
	if err != nil {
		writeServiceError(w, "list user tweets", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tweets": tweets})
}

func (h *UserHandler) Likes(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	tweets, err := h.postService.LikedByUser(r.Context(), userID, r.PathValue("username"))
	if err != nil {
		writeServiceError(w, "list liked tweets", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tweets": tweets})
}

func (h *UserHandler) Suggested(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	users, err := h.userService.Suggested(r.Context(), userID)
	if err != nil {
		writeServiceError(w, "suggested users", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}
