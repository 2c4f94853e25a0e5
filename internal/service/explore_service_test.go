package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/chirp/internal/domain"
)

func TestExploreService_Search(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	ana := s.register(t, "ana")
	s.register(t, "banana")
	s.post(t, ana, "I like bananas")
	s.post(t, ana, "unrelated")

	res, err := s.explore.Search(ctx, ana.ID, "Banana")
	require.NoError(t, err)
	require.Len(t, res.Tweets, 1)
	assert.Equal(t, "I like bananas", res.Tweets[0].Content)
	require.Len(t, res.Users, 1)
	assert.Equal(t, "banana", res.Users[0].Username)

	res, err = s.explore.Search(ctx, ana.ID, "")
	require.NoError(t, err)
	assert.Empty(t, res.Tweets)
	assert.Empty(t, res.Users)
}

func TestExploreService_Trending(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	ana := s.register(t, "ana")

	t.Run("fallback without hashtags", func(t *testing.T) {
		trends, err := s.explore.Trending(ctx)
		require.NoError(t, err)
		assert.Len(t, trends, 5)
	})

	s.post(t, ana, "#go #rust")
	s.post(t, ana, "more #go and #zig")
	s.post(t, ana, "#go #zig #ai #db #web")

	trends, err := s.explore.Trending(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Trend{
		{Hashtag: "go", Tweets: 3},
		{Hashtag: "zig", Tweets: 2},
		{Hashtag: "ai", Tweets: 1},
		{Hashtag: "db", Tweets: 1},
		{Hashtag: "rust", Tweets: 1},
	}, trends)
}
