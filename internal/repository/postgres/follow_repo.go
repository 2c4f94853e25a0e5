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

type FollowRepo struct {
	pool *pgxpool.Pool
}

func NewFollowRepo(pool *pgxpool.Pool) *FollowRepo {
	return &FollowRepo{pool: pool}
}

// Toggle locks the followed user's row so concurrent toggles on the same
// target are serialized. NO KEY UPDATE leaves the FK key-share locks taken by
// inserts referencing that user unblocked.
func (r *FollowRepo) Toggle(ctx context.Context, followerID, followedID uuid.UUID) (domain.ToggleState, error) {
	var state domain.ToggleState

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := lockRow(ctx, tx, `SELECT id FROM users WHERE id = $1 FOR NO KEY UPDATE`, followedID); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx,
			`DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2`,
			followerID, followedID,
		)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			if _, err := tx.Exec(ctx,
				`INSERT INTO follows (follower_id, followed_id, created_at) VALUES ($1, $2, now())`,
				followerID, followedID,
			); err != nil {
				return err
			}
			state.Active = true
		}

		return tx.QueryRow(ctx,
			`SELECT count(*) FROM follows WHERE followed_id = $1`, followedID,
		).Scan(&state.Count)
	})
	if err != nil {
		return domain.ToggleState{}, wrapTxErr(err, "followRepo.Toggle")
	}
	return state, nil
}

func (r *FollowRepo) Create(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, followedID).Scan(&exists); err != nil {
		return false, errors.Wrap(err, "followRepo.Create")
	}
	if !exists {
		return false, repository.ErrNotFound
	}

	tag, err := r.pool.Exec(ctx, `
		INSERT INTO follows (follower_id, followed_id, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT DO NOTHING`,
		followerID, followedID,
	)
	if err != nil {
		return false, errors.Wrap(err, "followRepo.Create")
	}
	return tag.RowsAffected() == 1, nil
}

func (r *FollowRepo) Delete(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2`,
		followerID, followedID,
	)
	if err != nil {
		return false, errors.Wrap(err, "followRepo.Delete")
	}
	return tag.RowsAffected() == 1, nil
}

func (r *FollowRepo) Exists(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND followed_id = $2)`,
		followerID, followedID,
	).Scan(&exists)
	return exists, errors.Wrap(err, "followRepo.Exists")
}

func (r *FollowRepo) CountFollowers(ctx context.Context, userID uuid.UUID) (int, error) {
	return count(ctx, r.pool, "followRepo.CountFollowers", `SELECT count(*) FROM follows WHERE followed_id = $1`, userID)
}

func (r *FollowRepo) CountFollowing(ctx context.Context, userID uuid.UUID) (int, error) {
	return count(ctx, r.pool, "followRepo.CountFollowing", `SELECT count(*) FROM follows WHERE follower_id = $1`, userID)
}
