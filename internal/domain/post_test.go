package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostHashtags(t *testing.T) {
	tests := []struct {
		content string
		want    []string
	}{
		{"no tags here", []string{}},
		{"Shipping #Go and #WebDev today", []string{"Go", "WebDev"}},
		{"#start middle#glued end", []string{"start", "glued"}},
		{"#Go #Go", []string{"Go", "Go"}},
		{"just a # sign", []string{}},
	}

	for _, tt := range tests {
		p := &Post{Content: tt.content}
		assert.Equal(t, tt.want, p.Hashtags(), tt.content)
	}
}

func TestPostMentions(t *testing.T) {
	tests := []struct {
		content string
		want    []string
	}{
		{"nobody here", []string{}},
		{"hi @sarahchen and @john_doe", []string{"sarahchen", "john_doe"}},
		{"mail me at ana@example.com", []string{"example"}},
		{"a lone @ sign", []string{}},
	}

	for _, tt := range tests {
		p := &Post{Content: tt.content}
		assert.Equal(t, tt.want, p.Mentions(), tt.content)
	}
}

func TestInteractionKindValid(t *testing.T) {
	assert.True(t, InteractionLike.Valid())
	assert.True(t, InteractionRetweet.Valid())
	assert.True(t, InteractionBookmark.Valid())
	assert.False(t, InteractionKind("reply").Valid())
}

func TestNewTweetView(t *testing.T) {
	p := &Post{Content: "hello #world @ana"}
	author := UserSummary{Username: "ana"}

	v := NewTweetView(p, author, PostStats{Likes: 2, Retweets: 1, Liked: true, Bookmarked: true})

	assert.Equal(t, "ana", v.Author.Username)
	assert.Equal(t, []string{"world"}, v.Hashtags)
	assert.Equal(t, []string{"ana"}, v.Mentions)
	assert.Equal(t, 2, v.Likes)
	assert.Equal(t, 1, v.Retweets)
	assert.True(t, v.Liked)
	assert.False(t, v.Retweeted)
	assert.True(t, v.Bookmarked)
}
