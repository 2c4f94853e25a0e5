package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/vedran77/chirp/internal/domain"
)

type NotificationRepo struct {
	pool *pgxpool.Pool
}

func NewNotificationRepo(pool *pgxpool.Pool) *NotificationRepo {
	return &NotificationRepo{pool: pool}
}

func (r *NotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, recipient_id, actor_id, post_id, kind, message, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		n.ID, n.RecipientID, n.ActorID, n.PostID, string(n.Kind), n.Message, n.Read, n.CreatedAt,
	)
	return errors.Wrap(err, "notificationRepo.Create")
}

func (r *NotificationRepo) ListByRecipient(ctx context.Context, recipientID uuid.UUID, limit int) ([]domain.Notification, error) {
	query := `
		SELECT id, recipient_id, actor_id, post_id, kind, message, read, created_at
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, recipientID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "notificationRepo.ListByRecipient")
	}
	defer rows.Close()

	var list []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var kind string
		if err := rows.Scan(
			&n.ID, &n.RecipientID, &n.ActorID, &n.PostID, &kind, &n.Message, &n.Read, &n.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "notificationRepo.ListByRecipient")
		}
		n.Kind = domain.NotificationKind(kind)
		list = append(list, n)
	}
	return list, errors.Wrap(rows.Err(), "notificationRepo.ListByRecipient")
}

func (r *NotificationRepo) CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error) {
	return count(ctx, r.pool, "notificationRepo.CountUnread",
		`SELECT count(*) FROM notifications WHERE recipient_id = $1 AND NOT read`, recipientID)
}

func (r *NotificationRepo) MarkRead(ctx context.Context, recipientID, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE id = $1 AND recipient_id = $2`,
		id, recipientID,
	)
	if err != nil {
		return false, errors.Wrap(err, "notificationRepo.MarkRead")
	}
	return tag.RowsAffected() == 1, nil
}

func (r *NotificationRepo) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE recipient_id = $1 AND NOT read`,
		recipientID,
	)
	if err != nil {
		return 0, errors.Wrap(err, "notificationRepo.MarkAllRead")
	}
	return int(tag.RowsAffected()), nil
}
