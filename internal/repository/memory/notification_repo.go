package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vedran77/chirp/internal/domain"
)

type NotificationRepo struct {
	db *DB
}

func NewNotificationRepo(db *DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

func (r *NotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.notifications = append(r.db.notifications, *n)
	return nil
}

func (r *NotificationRepo) ListByRecipient(_ context.Context, recipientID uuid.UUID, limit int) ([]domain.Notification, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]domain.Notification, 0)
	for _, n := range r.db.notifications {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	newestFirst(out,
		func(n domain.Notification) time.Time { return n.CreatedAt },
		func(n domain.Notification) uuid.UUID { return n.ID },
	)
	return page(out, 0, limit), nil
}

func (r *NotificationRepo) CountUnread(_ context.Context, recipientID uuid.UUID) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	count := 0
	for _, n := range r.db.notifications {
		if n.RecipientID == recipientID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *NotificationRepo) MarkRead(_ context.Context, recipientID, id uuid.UUID) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.notifications {
		n := &r.db.notifications[i]
		if n.ID == id && n.RecipientID == recipientID {
			n.Read = true
			return true, nil
		}
	}
	return false, nil
}

func (r *NotificationRepo) MarkAllRead(_ context.Context, recipientID uuid.UUID) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	updated := 0
	for i := range r.db.notifications {
		n := &r.db.notifications[i]
		if n.RecipientID == recipientID && !n.Read {
			n.Read = true
			updated++
		}
	}
	return updated, nil
}
