package service

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/vedran77/chirp/internal/domain"
	"github.com/vedran77/chirp/internal/repository"
	"github.com/vedran77/chirp/pkg/apperror"
)

const (
	searchUsersLimit = 10
	trendingLimit    = 5
	// trendingWindow is how many of the newest posts are scanned for hashtags.
	trendingWindow = 500
)

// fallbackTrends is shown while no post carries a hashtag.
var fallbackTrends = []domain.Trend{
	{Hashtag: "WebDev", Tweets: 0},
	{Hashtag: "JavaScript", Tweets: 0},
	{Hashtag: "Golang", Tweets: 0},
	{Hashtag: "OpenSource", Tweets: 0},
	{Hashtag: "TechNews", Tweets: 0},
}

type ExploreService struct {
	posts    *PostService
	userRepo repository.UserRepository
}

func NewExploreService(posts *PostService, userRepo repository.UserRepository) *ExploreService {
	return &ExploreService{posts: posts, userRepo: userRepo}
}

type SearchResult struct {
	Tweets []domain.TweetView   `json:"tweets"`
	Users  []domain.UserSummary `json:"users"`
}

func (s *ExploreService) Search(ctx context.Context, viewerID uuid.UUID, query string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &SearchResult{Tweets: []domain.TweetView{}, Users: []domain.UserSummary{}}, nil
	}

	tweets, err := s.posts.Search(ctx, viewerID, query)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.Search(ctx, query, searchUsersLimit)
	if err != nil {
		return nil, apperror.Internal("searching users", err)
	}

	return &SearchResult{Tweets: tweets, Users: summaries(users)}, nil
}

// Trending counts hashtags over the newest posts, busiest first and
// alphabetical among ties.
func (s *ExploreService) Trending(ctx context.Context) ([]domain.Trend, error) {
	posts, err := s.posts.Recent(ctx, trendingWindow)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for i := range posts {
		for _, tag := range posts[i].Hashtags() {
			counts[tag]++
		}
	}
	if len(counts) == 0 {
		return slices.Clone(fallbackTrends), nil
	}

	trends := make([]domain.Trend, 0, len(counts))
	for tag, n := range counts {
		trends = append(trends, domain.Trend{Hashtag: tag, Tweets: n})
	}
	slices.SortFunc(trends, func(a, b domain.Trend) int {
		if c := cmp.Compare(b.Tweets, a.Tweets); c != 0 {
			return c
		}
		return strings.Compare(a.Hashtag, b.Hashtag)
	})

	if len(trends) > trendingLimit {
		trends = trends[:trendingLimit]
	}
	return trends, nil
}
