package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/vedran77/chirp/internal/domain"
	"github.com/vedran77/chirp/internal/repository"
)

type PostRepo struct {
	db *DB
}

func NewPostRepo(db *DB) *PostRepo {
	return &PostRepo{db: db}
}

func (r *PostRepo) Create(_ context.Context, post *domain.Post) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[post.UserID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := r.db.postIdx[post.ID]; ok {
		return repository.ErrDuplicate
	}

	r.db.postIdx[post.ID] = len(r.db.posts)
	r.db.posts = append(r.db.posts, *post)
	return nil
}

func (r *PostRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Post, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	i, ok := r.db.postIdx[id]
	if !ok {
		return nil, nil
	}
	p := r.db.posts[i]
	return &p, nil
}

func (r *PostRepo) List(_ context.Context, offset, limit int) ([]domain.Post, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return page(r.db.sortedPosts(nil), offset, limit), nil
}

func (r *PostRepo) Count(_ context.Context) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return len(r.db.posts), nil
}

func (r *PostRepo) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]domain.Post, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	posts := r.db.sortedPosts(func(p *domain.Post) bool { return p.UserID == userID })
	return page(posts, 0, limit), nil
}

func (r *PostRepo) CountByUser(_ context.Context, userID uuid.UUID) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	n := 0
	for i := range r.db.posts {
		if r.db.posts[i].UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *PostRepo) Search(_ context.Context, query string, limit int) ([]domain.Post, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	posts := r.db.sortedPosts(func(p *domain.Post) bool { return containsFold(p.Content, query) })
	return page(posts, 0, limit), nil
}
