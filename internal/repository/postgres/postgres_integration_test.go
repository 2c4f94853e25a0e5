//go:build integration

package postgres

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/vedran77/chirp/internal/database"
	"github.com/vedran77/chirp/internal/domain"
	"github.com/vedran77/chirp/internal/repository"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("chirp"),
		tcpostgres.WithUsername("chirp"),
		tcpostgres.WithPassword("password"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Fatalf("failed to start container: %s", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("failed to get connection string: %v", err)
	}

	testPool, err = pgxpool.New(ctx, connStr)
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	if err := database.Migrate(ctx, testPool); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
	// applying the schema twice must be harmless
	if err := database.Migrate(ctx, testPool); err != nil {
		log.Fatalf("failed to re-migrate: %v", err)
	}

	code := m.Run()

	testPool.Close()
	if err := container.Terminate(ctx); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
	os.Exit(code)
}

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	_, err := testPool.Exec(context.Background(),
		`TRUNCATE users, posts, follows, likes, reposts, bookmarks, notifications CASCADE`)
	require.NoError(t, err)
	return NewStore(testPool)
}

func createUser(t *testing.T, store *repository.Store, username string) *domain.User {
	t.Helper()
	u := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		DisplayName:  username,
		PasswordHash: "hash",
		Profile:      domain.Profile{AvatarURL: domain.DefaultAvatarURL},
		CreatedAt:    time.Now(),
	}
	require.NoError(t, store.Users.Create(context.Background(), u))
	return u
}

func createPost(t *testing.T, store *repository.Store, author uuid.UUID, content string, at time.Time) *domain.Post {
	t.Helper()
	p := &domain.Post{ID: uuid.New(), UserID: author, Content: content, CreatedAt: at}
	require.NoError(t, store.Posts.Create(context.Background(), p))
	return p
}

func TestUserRepo(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	ana := createUser(t, store, "ana")

	err := store.Users.Create(ctx, &domain.User{ID: uuid.New(), Username: "ANA", Email: "x@example.com", DisplayName: "x", PasswordHash: "h", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	got, err := store.Users.GetByUsername(ctx, "Ana")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, ana.ID, got.ID)
	assert.Equal(t, domain.DefaultAvatarURL, got.AvatarURL)

	missing, err := store.Users.GetByID(ctx, uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, missing)

	createUser(t, store, "under_score")
	found, err := store.Users.Search(ctx, "_", 10)
	require.NoError(t, err)
	require.Len(t, found, 1, "LIKE wildcards must be escaped")
	assert.Equal(t, "under_score", found[0].Username)
}

func TestFollowRepo(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	ana, bob := createUser(t, store, "ana"), createUser(t, store, "bob")

	state, err := store.Follows.Toggle(ctx, bob.ID, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ToggleState{Active: true, Count: 1}, state)

	suggested, err := store.Users.ListSuggested(ctx, bob.ID, 3)
	require.NoError(t, err)
	assert.Empty(t, suggested)

	state, err = store.Follows.Toggle(ctx, bob.ID, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ToggleState{Active: false, Count: 0}, state)

	_, err = store.Follows.Toggle(ctx, bob.ID, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPostRepo(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	ana := createUser(t, store, "ana")

	base := time.Now().Truncate(time.Millisecond)
	first := createPost(t, store, ana.ID, "Hello World", base)
	second := createPost(t, store, ana.ID, "100% sure", base.Add(time.Second))

	list, err := store.Posts.List(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	found, err := store.Posts.Search(ctx, "hello", 20)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, first.ID, found[0].ID)

	found, err = store.Posts.Search(ctx, "%", 20)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, second.ID, found[0].ID)

	list, err = store.Posts.List(ctx, -20, 10)
	require.NoError(t, err)
	assert.Empty(t, list)

	err = store.Posts.Create(ctx, &domain.Post{ID: uuid.New(), UserID: uuid.New(), Content: "orphan", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestInteractionRepo_ConcurrentToggles(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	ana, bob := createUser(t, store, "ana"), createUser(t, store, "bob")
	p := createPost(t, store, ana.ID, "hello", time.Now())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Interactions.Toggle(ctx, domain.InteractionLike, bob.ID, p.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stats, err := store.Interactions.Stats(ctx, bob.ID, []uuid.UUID{p.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.PostStats{}, stats[p.ID])

	state, err := store.Interactions.Toggle(ctx, domain.InteractionRetweet, bob.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ToggleState{Active: true, Count: 1}, state)

	_, err = store.Interactions.Toggle(ctx, domain.InteractionLike, bob.ID, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFollowRepo_ToggleLockAllowsReferencingInserts(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	ana := createUser(t, store, "ana")

	// hold the same row lock a follow toggle on ana takes
	tx, err := testPool.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)
	_, err = tx.Exec(ctx, `SELECT id FROM users WHERE id = $1 FOR NO KEY UPDATE`, ana.ID)
	require.NoError(t, err)

	insertCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	p := &domain.Post{ID: uuid.New(), UserID: ana.ID, Content: "still posting", CreatedAt: time.Now()}
	assert.NoError(t, store.Posts.Create(insertCtx, p))
}

func TestInteractionRepo_BookmarksAndLikedPosts(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	ana, bob := createUser(t, store, "ana"), createUser(t, store, "bob")
	first := createPost(t, store, ana.ID, "first", time.Now())
	second := createPost(t, store, ana.ID, "second", time.Now().Add(time.Second))

	state, err := store.Interactions.Toggle(ctx, domain.InteractionBookmark, bob.ID, first.ID)
	require.NoError(t, err)
	assert.True(t, state.Active)

	stats, err := store.Interactions.Stats(ctx, bob.ID, []uuid.UUID{first.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.PostStats{Bookmarked: true}, stats[first.ID])

	// ana sees the post without bob's bookmark
	stats, err = store.Interactions.Stats(ctx, ana.ID, []uuid.UUID{first.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.PostStats{}, stats[first.ID])

	bookmarked, err := store.Interactions.ListPosts(ctx, domain.InteractionBookmark, bob.ID, 50)
	require.NoError(t, err)
	require.Len(t, bookmarked, 1)
	assert.Equal(t, first.ID, bookmarked[0].ID)

	_, err = store.Interactions.Toggle(ctx, domain.InteractionLike, bob.ID, first.ID)
	require.NoError(t, err)
	_, err = store.Interactions.Toggle(ctx, domain.InteractionLike, bob.ID, second.ID)
	require.NoError(t, err)

	liked, err := store.Interactions.ListPosts(ctx, domain.InteractionLike, bob.ID, 50)
	require.NoError(t, err)
	require.Len(t, liked, 2)
	assert.Equal(t, second.ID, liked[0].ID, "most recent like first")

	liked, err = store.Interactions.ListPosts(ctx, domain.InteractionLike, ana.ID, 50)
	require.NoError(t, err)
	assert.Empty(t, liked)
}

func TestNotificationRepo(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	ana, bob := createUser(t, store, "ana"), createUser(t, store, "bob")
	p := createPost(t, store, ana.ID, "hello", time.Now())

	n := &domain.Notification{
		ID:          uuid.New(),
		RecipientID: ana.ID,
		ActorID:     bob.ID,
		PostID:      &p.ID,
		Kind:        domain.NotificationLike,
		Message:     "bob liked your tweet",
		CreatedAt:   time.Now(),
	}
	require.NoError(t, store.Notifications.Create(ctx, n))

	list, err := store.Notifications.ListByRecipient(ctx, ana.ID, 20)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].PostID)
	assert.Equal(t, p.ID, *list[0].PostID)

	ok, err := store.Notifications.MarkRead(ctx, bob.ID, n.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	updated, err := store.Notifications.MarkAllRead(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	unread, err := store.Notifications.CountUnread(ctx, ana.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)
}
