package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vedran77/chirp/internal/repository"
)

// NewStore builds every repository over one connection pool.
func NewStore(pool *pgxpool.Pool) *repository.Store {
	return &repository.Store{
		Users:         NewUserRepo(pool),
		Follows:       NewFollowRepo(pool),
		Posts:         NewPostRepo(pool),
		Interactions:  NewInteractionRepo(pool),
		Notifications: NewNotificationRepo(pool),
	}
}
