package handlers

import (
	"net/http"

	"github.com/vedran77/chirp/internal/service"
	"github.com/vedran77/chirp/internal/transport/http/middleware"
)

type ExploreHandler struct {
	exploreService *service.ExploreService
}

func NewExploreHandler(exploreService *service.ExploreService) *ExploreHandler {
	return &ExploreHandler{exploreService: exploreService}
}

func (h *ExploreHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	resp, err := h.exploreService.Search(r.Context(), userID, r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, "search", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ExploreHandler) Trending(w http.ResponseWriter, r *http.Request) {
	trends, err := h.exploreService.Trending(r.Context())
	if err != nil {
		writeServiceError(w, "trending", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"trending": trends})
}
