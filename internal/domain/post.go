package domain

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

var (
	hashtagRegex = regexp.MustCompile(`#(\w+)`)
	mentionRegex = regexp.MustCompile(`@(\w+)`)
)

type Post struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Hashtags returns the tags in content, without '#', in order of appearance.
func (p *Post) Hashtags() []string {
	return submatches(hashtagRegex, p.Content)
}

// Mentions returns the usernames referenced with '@', in order of appearance.
// They are not checked against existing accounts.
func (p *Post) Mentions() []string {
	return submatches(mentionRegex, p.Content)
}

func submatches(re *regexp.Regexp, s string) []string {
	matches := re.FindAllStringSubmatch(s, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

// PostStats holds the interaction counts of a post and what the viewer did to it.
type PostStats struct {
	Likes     int
	Retweets  int
	Liked     bool
	Retweeted bool
	// Bookmarked is the viewer's own bookmark; bookmarks are never counted.
	Bookmarked bool
}

type TweetView struct {
	ID         uuid.UUID   `json:"id"`
	UserID     uuid.UUID   `json:"user_id"`
	Content    string      `json:"content"`
	Hashtags   []string    `json:"hashtags"`
	Mentions   []string    `json:"mentions"`
	CreatedAt  time.Time   `json:"created_at"`
	Author     UserSummary `json:"author"`
	Likes      int         `json:"likes"`
	Retweets   int         `json:"retweets"`
	Liked      bool        `json:"liked"`
	Retweeted  bool        `json:"retweeted"`
	Bookmarked bool        `json:"bookmarked"`
}

func NewTweetView(p *Post, author UserSummary, stats PostStats) TweetView {
	return TweetView{
		ID:         p.ID,
		UserID:     p.UserID,
		Content:    p.Content,
		Hashtags:   p.Hashtags(),
		Mentions:   p.Mentions(),
		CreatedAt:  p.CreatedAt,
		Author:     author,
		Likes:      stats.Likes,
		Retweets:   stats.Retweets,
		Liked:      stats.Liked,
		Retweeted:  stats.Retweeted,
		Bookmarked: stats.Bookmarked,
	}
}

type Trend struct {
	Hashtag string `json:"hashtag"`
	Tweets  int    `json:"tweets"`
}
