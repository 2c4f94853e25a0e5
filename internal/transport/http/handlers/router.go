package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vedran77/chirp/internal/metrics"
	"github.com/vedran77/chirp/internal/service"
	"github.com/vedran77/chirp/internal/transport/http/middleware"
)

type RouterConfig struct {
	Auth          *service.AuthService
	Users         *service.UserService
	Posts         *service.PostService
	Interactions  *service.InteractionService
	Notifications *service.NotificationService
	Explore       *service.ExploreService

	Sessions   *middleware.Sessions
	CORSOrigin string
	// WS serves the websocket upgrade; nil leaves the route out.
	WS http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	authHandler := NewAuthHandler(cfg.Auth, cfg.Sessions)
	postHandler := NewPostHandler(cfg.Posts, cfg.Interactions)
	userHandler := NewUserHandler(cfg.Users, cfg.Posts)
	notificationHandler := NewNotificationHandler(cfg.Notifications)
	exploreHandler := NewExploreHandler(cfg.Explore)

	auth := middleware.Auth(cfg.Auth, cfg.Sessions)
	protected := func(h http.HandlerFunc) http.Handler { return auth(h) }

	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /api/register", authHandler.Register)
	mux.HandleFunc("POST /api/login", authHandler.Login)
	mux.HandleFunc("POST /api/logout", authHandler.Logout)
	if cfg.WS != nil {
		mux.Handle("GET /api/ws", cfg.WS)
	}

	mux.Handle("GET /api/me", protected(authHandler.Me))

	// Tweets
	mux.Handle("GET /api/tweets", protected(postHandler.List))
	mux.Handle("POST /api/tweets", protected(postHandler.Create))
	mux.Handle("GET /api/tweets/{id}", protected(postHandler.Get))
	mux.Handle("POST /api/tweets/{id}/like", protected(postHandler.Like))
	mux.Handle("POST /api/tweets/{id}/retweet", protected(postHandler.Retweet))
	mux.Handle("POST /api/tweets/{id}/bookmark", protected(postHandler.Bookmark))
	mux.Handle("GET /api/bookmarks", protected(postHandler.Bookmarks))

	// Users
	mux.Handle("POST /api/users/{id}/follow", protected(userHandler.Follow))
	mux.Handle("GET /api/users/{username}", protected(userHandler.Profile))
	mux.Handle("GET /api/users/{username}/tweets", protected(userHandler.Tweets))
	mux.Handle("GET /api/users/{username}/likes", protected(userHandler.Likes))
	mux.Handle("GET /api/suggested-users", protected(userHandler.Suggested))

	// Explore
	mux.Handle("GET /api/search", protected(exploreHandler.Search))
	mux.Handle("GET /api/trending", protected(exploreHandler.Trending))

	// Notifications
	mux.Handle("GET /api/notifications", protected(notificationHandler.List))
	mux.Handle("POST /api/notifications/read-all", protected(notificationHandler.MarkAllRead))
	mux.Handle("POST /api/notifications/{id}/read", protected(notificationHandler.MarkRead))

	return metrics.InstrumentHandler(middleware.Logging(middleware.CORS(cfg.CORSOrigin)(mux)))
}
