package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/chirp/internal/domain"
	"github.com/vedran77/chirp/internal/repository/memory"
)

type services struct {
	auth          *AuthService
	users         *UserService
	posts         *PostService
	interactions  *InteractionService
	notifications *NotificationService
	explore       *ExploreService
}

func newServices(t *testing.T) *services {
	t.Helper()
	store := memory.NewStore()

	notifications := NewNotificationService(store.Notifications, store.Users)
	posts := NewPostService(store.Posts, store.Users, store.Interactions)
	return &services{
		auth:          NewAuthService(store.Users, "test-secret"),
		users:         NewUserService(store.Users, store.Follows, store.Posts, notifications),
		posts:         posts,
		interactions:  NewInteractionService(store.Interactions, store.Posts, store.Users, notifications),
		notifications: notifications,
		explore:       NewExploreService(posts, store.Users),
	}
}

func (s *services) register(t *testing.T, username string) *domain.User {
	t.Helper()
	resp, err := s.auth.Register(context.Background(), RegisterInput{
		Email:       username + "@example.com",
		Username:    username,
		DisplayName: username + " display",
		Password:    "Password123",
	})
	require.NoError(t, err)
	return resp.User
}

func (s *services) post(t *testing.T, author *domain.User, content string) *domain.TweetView {
	t.Helper()
	tweet, err := s.posts.Create(context.Background(), author.ID, CreatePostInput{Content: content})
	require.NoError(t, err)
	return tweet
}

// recordingNotifier collects pushed notifications.
type recordingNotifier struct {
	mu     sync.Mutex
	pushed map[uuid.UUID][]domain.NotificationView
}

func (n *recordingNotifier) NotifyUser(userID uuid.UUID, v *domain.NotificationView) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.pushed == nil {
		n.pushed = make(map[uuid.UUID][]domain.NotificationView)
	}
	n.pushed[userID] = append(n.pushed[userID], *v)
}
