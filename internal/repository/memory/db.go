// Package memory is the in-process store. All repositories built on one DB
// share a single lock, so every operation, toggles included, is atomic.
package memory

import (
	"cmp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vedran77/chirp/internal/domain"
	"github.com/vedran77/chirp/internal/repository"
)

type edge struct {
	from, to uuid.UUID
}

type fact struct {
	kind domain.InteractionKind
	user uuid.UUID
	post uuid.UUID
}

type DB struct {
	mu sync.RWMutex

	users     map[uuid.UUID]domain.User
	usernames map[string]uuid.UUID
	emails    map[string]uuid.UUID

	posts []domain.Post
	// postIdx maps a post id to its position in posts.
	postIdx map[uuid.UUID]int

	follows       map[edge]time.Time
	facts         map[fact]time.Time
	notifications []domain.Notification
}

func NewDB() *DB {
	return &DB{
		users:     make(map[uuid.UUID]domain.User),
		usernames: make(map[string]uuid.UUID),
		emails:    make(map[string]uuid.UUID),
		postIdx:   make(map[uuid.UUID]int),
		follows:   make(map[edge]time.Time),
		facts:     make(map[fact]time.Time),
	}
}

// NewStore builds every repository over one fresh DB.
func NewStore() *repository.Store {
	db := NewDB()
	return &repository.Store{
		Users:         NewUserRepo(db),
		Follows:       NewFollowRepo(db),
		Posts:         NewPostRepo(db),
		Interactions:  NewInteractionRepo(db),
		Notifications: NewNotificationRepo(db),
	}
}

func foldKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// newestFirst orders by created_at desc, id desc.
func newestFirst[T any](items []T, createdAt func(T) time.Time, id func(T) uuid.UUID) {
	slices.SortStableFunc(items, func(a, b T) int {
		if c := createdAt(b).Compare(createdAt(a)); c != 0 {
			return c
		}
		return cmp.Compare(id(b).String(), id(a).String())
	})
}

func postCreatedAt(p domain.Post) time.Time { return p.CreatedAt }
func postID(p domain.Post) uuid.UUID        { return p.ID }

// sortedPosts returns a copy of all posts matching keep, newest first.
// Caller holds at least the read lock.
func (db *DB) sortedPosts(keep func(*domain.Post) bool) []domain.Post {
	out := make([]domain.Post, 0, len(db.posts))
	for i := range db.posts {
		if keep == nil || keep(&db.posts[i]) {
			out = append(out, db.posts[i])
		}
	}
	newestFirst(out, postCreatedAt, postID)
	return out
}

func page[T any](items []T, offset, limit int) []T {
	if offset < 0 || offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit >= 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
