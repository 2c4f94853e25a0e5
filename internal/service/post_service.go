package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vedran77/chirp/internal/domain"
	"github.com/vedran77/chirp/internal/repository"
	"github.com/vedran77/chirp/pkg/apperror"
	"github.com/vedran77/chirp/pkg/validator"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	userTweetsLimit   = 50
	searchTweetsLimit = 20
)

type PostService struct {
	postRepo        repository.PostRepository
	userRepo        repository.UserRepository
	interactionRepo repository.InteractionRepository
}

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	interactionRepo repository.InteractionRepository,
) *PostService {
	return &PostService{
		postRepo:        postRepo,
		userRepo:        userRepo,
		interactionRepo: interactionRepo,
	}
}

type CreatePostInput struct {
	Content string `json:"content"`
}

type TweetPage struct {
	Tweets  []domain.TweetView `json:"tweets"`
	HasNext bool               `json:"hasNext"`
	HasPrev bool               `json:"hasPrev"`
	Page    int                `json:"page"`
	Pages   int                `json:"pages"`
	Total   int                `json:"total"`
}

func (s *PostService) Create(ctx context.Context, authorID uuid.UUID, input CreatePostInput) (*domain.TweetView, error) {
	content, errs := validator.NormalizePost(input.Content)
	if errs.HasErrors() {
		return nil, apperror.InvalidArg(errs["content"])
	}

	post := &domain.Post{
		ID:        uuid.New(),
		UserID:    authorID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, apperror.Internal("creating post", err)
	}

	views, err := s.views(ctx, authorID, []domain.Post{*post})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *PostService) Get(ctx context.Context, viewerID, id uuid.UUID) (*domain.TweetView, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("getting post", err)
	}
	if post == nil {
		return nil, apperror.NotFound("tweet not found")
	}

	views, err := s.views(ctx, viewerID, []domain.Post{*post})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// List returns one page of the global timeline, newest first. page is
// 1-based; out-of-range values are clamped.
func (s *PostService) List(ctx context.Context, viewerID uuid.UUID, page, perPage int) (*TweetPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPageSize
	}
	if perPage > MaxPageSize {
		perPage = MaxPageSize
	}

	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, apperror.Internal("counting posts", err)
	}

	pages := (total + perPage - 1) / perPage
	resp := &TweetPage{
		Tweets:  []domain.TweetView{},
		HasNext: page < pages,
		HasPrev: page > 1,
		Page:    page,
		Pages:   pages,
		Total:   total,
	}
	// past the last page; also keeps (page-1)*perPage from overflowing
	if page > pages {
		return resp, nil
	}

	posts, err := s.postRepo.List(ctx, (page-1)*perPage, perPage)
	if err != nil {
		return nil, apperror.Internal("listing posts", err)
	}

	resp.Tweets, err = s.views(ctx, viewerID, posts)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *PostService) ListByUser(ctx context.Context, viewerID uuid.UUID, username string) ([]domain.TweetView, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperror.Internal("getting user", err)
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}

	posts, err := s.postRepo.ListByUser(ctx, user.ID, userTweetsLimit)
	if err != nil {
		return nil, apperror.Internal("listing user posts", err)
	}
	return s.views(ctx, viewerID, posts)
}

// LikedByUser returns the tweets username has liked, most recent like first.
func (s *PostService) LikedByUser(ctx context.Context, viewerID uuid.UUID, username string) ([]domain.TweetView, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperror.Internal("getting user", err)
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}

	posts, err := s.interactionRepo.ListPosts(ctx, domain.InteractionLike, user.ID, userTweetsLimit)
	if err != nil {
		return nil, apperror.Internal("listing liked posts", err)
	}
	return s.views(ctx, viewerID, posts)
}

// Bookmarks returns the viewer's own bookmarked tweets, most recent first.
func (s *PostService) Bookmarks(ctx context.Context, viewerID uuid.UUID) ([]domain.TweetView, error) {
	posts, err := s.interactionRepo.ListPosts(ctx, domain.InteractionBookmark, viewerID, userTweetsLimit)
	if err != nil {
		return nil, apperror.Internal("listing bookmarks", err)
	}
	return s.views(ctx, viewerID, posts)
}

// Search matches content case-insensitively. A blank query matches nothing.
func (s *PostService) Search(ctx context.Context, viewerID uuid.UUID, query string) ([]domain.TweetView, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.TweetView{}, nil
	}

	posts, err := s.postRepo.Search(ctx, query, searchTweetsLimit)
	if err != nil {
		return nil, apperror.Internal("searching posts", err)
	}
	return s.views(ctx, viewerID, posts)
}

// Recent returns the newest posts without viewer data.
func (s *PostService) Recent(ctx context.Context, limit int) ([]domain.Post, error) {
	posts, err := s.postRepo.List(ctx, 0, limit)
	if err != nil {
		return nil, apperror.Internal("listing posts", err)
	}
	return posts, nil
}

// views attaches authors and interaction stats for viewerID.
func (s *PostService) views(ctx context.Context, viewerID uuid.UUID, posts []domain.Post) ([]domain.TweetView, error) {
	out := make([]domain.TweetView, 0, len(posts))
	if len(posts) == 0 {
		return out, nil
	}

	ids := make([]uuid.UUID, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	stats, err := s.interactionRepo.Stats(ctx, viewerID, ids)
	if err != nil {
		return nil, apperror.Internal("loading post stats", err)
	}

	authors := make(map[uuid.UUID]domain.UserSummary)
	for i := range posts {
		p := &posts[i]
		author, ok := authors[p.UserID]
		if !ok {
			u, err := s.userRepo.GetByID(ctx, p.UserID)
			if err != nil {
				return nil, apperror.Internal("getting post author", err)
			}
			author = domain.UserSummary{ID: p.UserID}
			if u != nil {
				author = u.Summary()
			}
			authors[p.UserID] = author
		}
		out = append(out, domain.NewTweetView(p, author, stats[p.ID]))
	}
	return out, nil
}
