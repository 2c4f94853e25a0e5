package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/vedran77/chirp/internal/config"
	"github.com/vedran77/chirp/internal/database"
	"github.com/vedran77/chirp/internal/repository"
	"github.com/vedran77/chirp/internal/repository/memory"
	postgresrepo "github.com/vedran77/chirp/internal/repository/postgres"
	"github.com/vedran77/chirp/internal/service"
)

// app holds the wired services shared by every subcommand.
type app struct {
	cfg  *config.Config
	pool *pgxpool.Pool

	auth          *service.AuthService
	users         *service.UserService
	posts         *service.PostService
	interactions  *service.InteractionService
	notifications *service.NotificationService
	explore       *service.ExploreService
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}

	var store *repository.Store
	switch cfg.Store {
	case config.StoreMemory:
		store = memory.NewStore()
		logrus.Warn("using in-memory store, data is lost on exit")
	case config.StorePostgres:
		a.pool, err = database.Connect(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		store = postgresrepo.NewStore(a.pool)
		logrus.WithField("host", cfg.DBHost).Info("connected to database")
	}

	a.notifications = service.NewNotificationService(store.Notifications, store.Users)
	a.auth = service.NewAuthService(store.Users, cfg.JWTSecret)
	a.users = service.NewUserService(store.Users, store.Follows, store.Posts, a.notifications)
	a.posts = service.NewPostService(store.Posts, store.Users, store.Interactions)
	a.interactions = service.NewInteractionService(store.Interactions, store.Posts, store.Users, a.notifications)
	a.explore = service.NewExploreService(a.posts, store.Users)

	return a, nil
}

func (a *app) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}
