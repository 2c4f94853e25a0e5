package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vedran77/chirp/internal/domain"
)

var (
	// ErrNotFound is returned by operations whose target row does not exist.
	// Plain lookups (GetByID, GetByUsername, ...) return nil, nil instead.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate signals a unique constraint violation.
	ErrDuplicate = errors.New("duplicate")
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Search(ctx context.Context, query string, limit int) ([]domain.User, error)
	// ListSuggested returns users other than userID that userID does not follow.
	ListSuggested(ctx context.Context, userID uuid.UUID, limit int) ([]domain.User, error)
}

type FollowRepository interface {
	// Toggle removes the edge if present, otherwise creates it. The check and
	// the flip are atomic. Returns ErrNotFound if followedID does not exist.
	Toggle(ctx context.Context, followerID, followedID uuid.UUID) (domain.ToggleState, error)
	Create(ctx context.Context, followerID, followedID uuid.UUID) (bool, error)
	Delete(ctx context.Context, followerID, followedID uuid.UUID) (bool, error)
	Exists(ctx context.Context, followerID, followedID uuid.UUID) (bool, error)
	CountFollowers(ctx context.Context, userID uuid.UUID) (int, error)
	CountFollowing(ctx context.Context, userID uuid.UUID) (int, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	List(ctx context.Context, offset, limit int) ([]domain.Post, error)
	Count(ctx context.Context) (int, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Post, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Post, error)
}

type InteractionRepository interface {
	// Toggle flips the (user, post) fact of the given kind atomically.
	// Returns ErrNotFound if the post does not exist.
	Toggle(ctx context.Context, kind domain.InteractionKind, userID, postID uuid.UUID) (domain.ToggleState, error)
	// ListPosts returns the posts userID holds a fact of kind on, most recent
	// fact first.
	ListPosts(ctx context.Context, kind domain.InteractionKind, userID uuid.UUID, limit int) ([]domain.Post, error)
	// Stats returns counts and viewer flags for each existing post in postIDs.
	Stats(ctx context.Context, viewerID uuid.UUID, postIDs []uuid.UUID) (map[uuid.UUID]domain.PostStats, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, recipientID, id uuid.UUID) (bool, error)
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int, error)
}

// Store bundles the repositories of one backing store.
type Store struct {
	Users         UserRepository
	Follows       FollowRepository
	Posts         PostRepository
	Interactions  InteractionRepository
	Notifications NotificationRepository
}
