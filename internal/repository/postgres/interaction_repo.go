package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/vedran77/chirp/internal/domain"
)

// Each interaction kind lives in its own table with (user_id, post_id) as key.
var interactionTables = map[domain.InteractionKind]string{
	domain.InteractionLike:     "likes",
	domain.InteractionRetweet:  "reposts",
	domain.InteractionBookmark: "bookmarks",
}

type InteractionRepo struct {
	pool *pgxpool.Pool
}

func NewInteractionRepo(pool *pgxpool.Pool) *InteractionRepo {
	return &InteractionRepo{pool: pool}
}

// Toggle locks the post row, so check-and-flip for one post never interleaves.
func (r *InteractionRepo) Toggle(ctx context.Context, kind domain.InteractionKind, userID, postID uuid.UUID) (domain.ToggleState, error) {
	table, ok := interactionTables[kind]
	if !ok {
		return domain.ToggleState{}, fmt.Errorf("unknown interaction kind %q", kind)
	}

	var state domain.ToggleState
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := lockRow(ctx, tx, `SELECT id FROM posts WHERE id = $1 FOR NO KEY UPDATE`, postID); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND post_id = $2`, table),
			userID, postID,
		)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			if _, err := tx.Exec(ctx,
				fmt.Sprintf(`INSERT INTO %s (user_id, post_id, created_at) VALUES ($1, $2, now())`, table),
				userID, postID,
			); err != nil {
				return err
			}
			state.Active = true
		}

		return tx.QueryRow(ctx,
			fmt.Sprintf(`SELECT count(*) FROM %s WHERE post_id = $1`, table), postID,
		).Scan(&state.Count)
	})
	if err != nil {
		return domain.ToggleState{}, wrapTxErr(err, "interactionRepo.Toggle")
	}
	return state, nil
}

func (r *InteractionRepo) ListPosts(ctx context.Context, kind domain.InteractionKind, userID uuid.UUID, limit int) ([]domain.Post, error) {
	table, ok := interactionTables[kind]
	if !ok {
		return nil, fmt.Errorf("unknown interaction kind %q", kind)
	}

	query := fmt.Sprintf(`
		SELECT p.id, p.user_id, p.content, p.created_at
		FROM %s f
		JOIN posts p ON p.id = f.post_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC, p.id DESC
		LIMIT $2`, table)

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "interactionRepo.ListPosts")
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Content, &p.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "interactionRepo.ListPosts")
		}
		posts = append(posts, p)
	}
	return posts, errors.Wrap(rows.Err(), "interactionRepo.ListPosts")
}

func (r *InteractionRepo) Stats(ctx context.Context, viewerID uuid.UUID, postIDs []uuid.UUID) (map[uuid.UUID]domain.PostStats, error) {
	stats := make(map[uuid.UUID]domain.PostStats, len(postIDs))
	if len(postIDs) == 0 {
		return stats, nil
	}

	ids := make([]string, len(postIDs))
	for i, id := range postIDs {
		ids[i] = id.String()
	}

	query := `
		SELECT p.id,
			(SELECT count(*) FROM likes l WHERE l.post_id = p.id),
			(SELECT count(*) FROM reposts rp WHERE rp.post_id = p.id),
			EXISTS(SELECT 1 FROM likes l WHERE l.post_id = p.id AND l.user_id = $2),
			EXISTS(SELECT 1 FROM reposts rp WHERE rp.post_id = p.id AND rp.user_id = $2),
			EXISTS(SELECT 1 FROM bookmarks b WHERE b.post_id = p.id AND b.user_id = $2)
		FROM posts p
		WHERE p.id = ANY($1::uuid[])`

	rows, err := r.pool.Query(ctx, query, ids, viewerID)
	if err != nil {
		return nil, errors.Wrap(err, "interactionRepo.Stats")
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var s domain.PostStats
		if err := rows.Scan(&id, &s.Likes, &s.Retweets, &s.Liked, &s.Retweeted, &s.Bookmarked); err != nil {
			return nil, errors.Wrap(err, "interactionRepo.Stats")
		}
		stats[id] = s
	}
	return stats, errors.Wrap(rows.Err(), "interactionRepo.Stats")
}
