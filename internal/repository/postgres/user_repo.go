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

const userColumns = `id, username, email, display_name, password_hash,
	bio, location, website, avatar_url, verified, created_at`

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Username, user.Email, user.DisplayName, user.PasswordHash,
		user.Bio, user.Location, user.Website, user.AvatarURL, user.Verified, user.CreatedAt,
	)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return errors.Wrap(err, "userRepo.Create")
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE lower(email) = lower($1)", email)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE lower(username) = lower($1)", username)
}

func (r *UserRepo) Search(ctx context.Context, query string, limit int) ([]domain.User, error) {
	q := `
		SELECT ` + userColumns + `
		FROM users
		WHERE username ILIKE '%' || $1 || '%' ESCAPE '\' OR display_name ILIKE '%' || $1 || '%' ESCAPE '\'
		ORDER BY created_at DESC, id DESC
		LIMIT $2`
	return r.queryUsers(ctx, "userRepo.Search", q, escapeLike(query), limit)
}

func (r *UserRepo) ListSuggested(ctx context.Context, userID uuid.UUID, limit int) ([]domain.User, error) {
	q := `
		SELECT ` + userColumns + `
		FROM users u
		WHERE u.id <> $1
			AND NOT EXISTS (SELECT 1 FROM follows f WHERE f.follower_id = $1 AND f.followed_id = u.id)
		ORDER BY u.created_at DESC, u.id DESC
		LIMIT $2`
	return r.queryUsers(ctx, "userRepo.ListSuggested", q, userID, limit)
}

func (r *UserRepo) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	u, err := scanUserRow(r.pool.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "userRepo.scanUser")
	}
	return u, nil
}

func (r *UserRepo) queryUsers(ctx context.Context, op, query string, args ...any) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUserRow(rows)
		if err != nil {
			return nil, errors.Wrap(err, op)
		}
		users = append(users, *u)
	}
	return users, errors.Wrap(rows.Err(), op)
}

func scanUserRow(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.DisplayName, &u.PasswordHash,
		&u.Bio, &u.Location, &u.Website, &u.AvatarURL, &u.Verified, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
