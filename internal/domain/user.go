package domain

import (
	"time"

	"github.com/google/uuid"
)

const DefaultAvatarURL = "https://images.pexels.com/photos/771742/pexels-photo-771742.jpeg?w=100&h=100&fit=crop&crop=face"

type Profile struct {
	Bio       string `json:"bio"`
	Location  string `json:"location"`
	Website   string `json:"website"`
	AvatarURL string `json:"avatar_url"`
	Verified  bool   `json:"verified"`
}

type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	Profile
	CreatedAt time.Time `json:"created_at"`
}

// UserView is a user as the API returns it, with counts derived from live edges.
type UserView struct {
	User
	FollowersCount int `json:"followers_count"`
	FollowingCount int `json:"following_count"`
	TweetsCount    int `json:"tweets_count"`
}

// UserSummary is the author/actor block embedded in tweets and notifications.
type UserSummary struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
	Verified    bool      `json:"verified"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		Verified:    u.Verified,
	}
}
