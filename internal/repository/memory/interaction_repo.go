package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vedran77/chirp/internal/domain"
	"github.com/vedran77/chirp/internal/repository"
)

type InteractionRepo struct {
	db *DB
}

func NewInteractionRepo(db *DB) *InteractionRepo {
	return &InteractionRepo{db: db}
}

func (r *InteractionRepo) Toggle(_ context.Context, kind domain.InteractionKind, userID, postID uuid.UUID) (domain.ToggleState, error) {
	if !kind.Valid() {
		return domain.ToggleState{}, fmt.Errorf("unknown interaction kind %q", kind)
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.postIdx[postID]; !ok {
		return domain.ToggleState{}, repository.ErrNotFound
	}

	key := fact{kind: kind, user: userID, post: postID}
	_, exists := r.db.facts[key]
	if exists {
		delete(r.db.facts, key)
	} else {
		r.db.facts[key] = time.Now()
	}

	n := 0
	for f := range r.db.facts {
		if f.kind == kind && f.post == postID {
			n++
		}
	}
	return domain.ToggleState{Active: !exists, Count: n}, nil
}

func (r *InteractionRepo) ListPosts(_ context.Context, kind domain.InteractionKind, userID uuid.UUID, limit int) ([]domain.Post, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	type held struct {
		post domain.Post
		at   time.Time
	}
	var items []held
	for f, at := range r.db.facts {
		if f.kind != kind || f.user != userID {
			continue
		}
		if i, ok := r.db.postIdx[f.post]; ok {
			items = append(items, held{post: r.db.posts[i], at: at})
		}
	}
	newestFirst(items,
		func(h held) time.Time { return h.at },
		func(h held) uuid.UUID { return h.post.ID },
	)

	out := make([]domain.Post, 0, len(items))
	for _, h := range page(items, 0, limit) {
		out = append(out, h.post)
	}
	return out, nil
}

func (r *InteractionRepo) Stats(_ context.Context, viewerID uuid.UUID, postIDs []uuid.UUID) (map[uuid.UUID]domain.PostStats, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	stats := make(map[uuid.UUID]domain.PostStats, len(postIDs))
	for _, id := range postIDs {
		if _, ok := r.db.postIdx[id]; ok {
			stats[id] = domain.PostStats{}
		}
	}

	for f := range r.db.facts {
		s, ok := stats[f.post]
		if !ok {
			continue
		}
		switch f.kind {
		case domain.InteractionLike:
			s.Likes++
			s.Liked = s.Liked || f.user == viewerID
		case domain.InteractionRetweet:
			s.Retweets++
			s.Retweeted = s.Retweeted || f.user == viewerID
		case domain.InteractionBookmark:
			s.Bookmarked = s.Bookmarked || f.user == viewerID
		}
		stats[f.post] = s
	}
	return stats, nil
}
