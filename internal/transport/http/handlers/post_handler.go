package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/vedran77/chirp/internal/domain"
	"github.com/vedran77/chirp/internal/metrics"
	"github.com/vedran77/chirp/internal/service"
	"github.com/vedran77/chirp/internal/transport/http/middleware"
)

type PostHandler struct {
	postService        *service.PostService
	interactionService *service.InteractionService
}

func NewPostHandler(postService *service.PostService, interactionService *service.InteractionService) *PostHandler {
	return &PostHandler{postService: postService, interactionService: interactionService}
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", service.DefaultPageSize)

	resp, err := h.postService.List(r.Context(), userID, page, perPage)
	if err != nil {
		writeServiceError(w, "list tweets", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input service.CreatePostInput
	if !decodeJSON(w, r, &input) {
		return
	}

	tweet, err := h.postService.Create(r.Context(), userID, input)
	if err != nil {
		writeServiceError(w, "create tweet", err)
		return
	}

	metrics.TweetsPosted.Inc()
	writeJSON(w, http.StatusCreated, map[string]any{"tweet": tweet})
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	postID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	tweet, err := h.postService.Get(r.Context(), userID, postID)
	if err != nil {
		writeServiceError(w, "get tweet", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tweet": tweet})
}

func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	postID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	resp, err := h.interactionService.ToggleLike(r.Context(), userID, postID)
	if err != nil {
		writeServiceError(w, "toggle like", err)
		return
	}

	metrics.ObserveToggle(string(domain.InteractionLike), resp.Liked)
	writeJSON(w, http.StatusOK, resp)
}

func (h *PostHandler) Retweet(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	postID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	resp, err := h.interactionService.ToggleRepost(r.Context(), userID, postID)
	if err != nil {
		writeServiceError(w, "toggle retweet", err)
		return
	}

	metrics.ObserveToggle(string(domain.InteractionRetweet), resp.Reposted)
	writeJSON(w, http.StatusOK, resp)
}

func (h *PostHandler) Bookmark(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	postID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	resp, err := h.interactionService.ToggleBookmark(r.Context(), userID, postID)
	if err != nil {
		writeServiceError(w, "toggle bookmark", err)
		return
	}

	metrics.ObserveToggle(string(domain.InteractionBookmark), resp.Bookmarked)
	writeJSON(w, http.StatusOK, resp)
}

func (h *PostHandler) Bookmarks(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	tweets, err := h.postService.Bookmarks(r.Context(), userID)
	if err != nil {
		writeServiceError(w, "list bookmarks", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tweets": tweets})
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return uuid.Nil, false
	}
	return id, true
}

// queryInt reads an integer query parameter, falling back to def when it is
// missing or malformed.
func queryInt(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return def
	}
	return v
}
