package domain

import (
	"time"

	"github.com/google/uuid"
)

type Follow struct {
	FollowerID uuid.UUID `json:"follower_id"`
	FollowedID uuid.UUID `json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type InteractionKind string

const (
	InteractionLike     InteractionKind = "like"
	InteractionRetweet  InteractionKind = "retweet"
	InteractionBookmark InteractionKind = "bookmark"
)

func (k InteractionKind) Valid() bool {
	switch k {
	case InteractionLike, InteractionRetweet, InteractionBookmark:
		return true
	}
	return false
}

// ToggleState is the outcome of flipping a fact: whether it now exists and
// the live count of facts of that kind on the target.
type ToggleState struct {
	Active bool
	Count  int
}
