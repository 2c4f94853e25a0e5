package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/vedran77/chirp/internal/domain"
	"github.com/vedran77/chirp/internal/repository"
)

const postColumns = `id, user_id, content, created_at`

type PostRepo struct {
	pool *pgxpool.Pool
}

func NewPostRepo(pool *pgxpool.Pool) *PostRepo {
	return &PostRepo{pool: pool}
}

func (r *PostRepo) Create(ctx context.Context, post *domain.Post) error {
	query := `
		INSERT INTO posts (` + postColumns + `)
		VALUES ($1, $2, $3, $4)`
	_, err := r.pool.Exec(ctx, query, post.ID, post.UserID, post.Content, post.CreatedAt)
	if isForeignKeyViolation(err) {
		return repository.ErrNotFound
	}
	return errors.Wrap(err, "postRepo.Create")
}

func (r *PostRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	var p domain.Post
	err := r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id).
		Scan(&p.ID, &p.UserID, &p.Content, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "postRepo.GetByID")
	}
	return &p, nil
}

func (r *PostRepo) List(ctx context.Context, offset, limit int) ([]domain.Post, error) {
	if offset < 0 {
		return []domain.Post{}, nil
	}
	query := `
		SELECT ` + postColumns + `
		FROM posts
		ORDER BY created_at DESC, id DESC
		OFFSET $1 LIMIT $2`
	return r.queryPosts(ctx, "postRepo.List", query, offset, limit)
}

func (r *PostRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.pool, "postRepo.Count", `SELECT count(*) FROM posts`)
}

func (r *PostRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`
	return r.queryPosts(ctx, "postRepo.ListByUser", query, userID, limit)
}

func (r *PostRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	return count(ctx, r.pool, "postRepo.CountByUser", `SELECT count(*) FROM posts WHERE user_id = $1`, userID)
}

func (r *PostRepo) Search(ctx context.Context, query string, limit int) ([]domain.Post, error) {
	q := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE content ILIKE '%' || $1 || '%' ESCAPE '\'
		ORDER BY created_at DESC, id DESC
		LIMIT $2`
	return r.queryPosts(ctx, "postRepo.Search", q, escapeLike(query), limit)
}

func (r *PostRepo) queryPosts(ctx context.Context, op, query string, args ...any) ([]domain.Post, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Content, &p.CreatedAt); err != nil {
			return nil, errors.Wrap(err, op)
		}
		posts = append(posts, p)
	}
	return posts, errors.Wrap(rows.Err(), op)
}
