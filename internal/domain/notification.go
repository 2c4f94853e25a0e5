package domain

import (
	"time"

	"github.com/google/uuid"
)

type NotificationKind string

const (
	NotificationLike    NotificationKind = "like"
	NotificationRetweet NotificationKind = "retweet"
	NotificationFollow  NotificationKind = "follow"
)

type Notification struct {
	ID          uuid.UUID        `json:"id"`
	RecipientID uuid.UUID        `json:"recipient_id"`
	ActorID     uuid.UUID        `json:"actor_id"`
	PostID      *uuid.UUID       `json:"post_id,omitempty"`
	Kind        NotificationKind `json:"type"`
	Message     string           `json:"message"`
	Read        bool             `json:"read"`
	CreatedAt   time.Time        `json:"created_at"`
}

type NotificationView struct {
	Notification
	Actor UserSummary `json:"actor"`
}
