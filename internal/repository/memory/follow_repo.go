package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vedran77/chirp/internal/domain"
	"github.com/vedran77/chirp/internal/repository"
)

type FollowRepo struct {
	db *DB
}

func NewFollowRepo(db *DB) *FollowRepo {
	return &FollowRepo{db: db}
}

func (r *FollowRepo) Toggle(_ context.Context, followerID, followedID uuid.UUID) (domain.ToggleState, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[followedID]; !ok {
		return domain.ToggleState{}, repository.ErrNotFound
	}

	key := edge{from: followerID, to: followedID}
	_, exists := r.db.follows[key]
	if exists {
		delete(r.db.follows, key)
	} else {
		r.db.follows[key] = time.Now()
	}

	return domain.ToggleState{Active: !exists, Count: r.countFollowers(followedID)}, nil
}

func (r *FollowRepo) Create(_ context.Context, followerID, followedID uuid.UUID) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[followedID]; !ok {
		return false, repository.ErrNotFound
	}

	key := edge{from: followerID, to: followedID}
	if _, exists := r.db.follows[key]; exists {
		return false, nil
	}
	r.db.follows[key] = time.Now()
	return true, nil
}

func (r *FollowRepo) Delete(_ context.Context, followerID, followedID uuid.UUID) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	key := edge{from: followerID, to: followedID}
	if _, exists := r.db.follows[key]; !exists {
		return false, nil
	}
	delete(r.db.follows, key)
	return true, nil
}

func (r *FollowRepo) Exists(_ context.Context, followerID, followedID uuid.UUID) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	_, ok := r.db.follows[edge{from: followerID, to: followedID}]
	return ok, nil
}

func (r *FollowRepo) CountFollowers(_ context.Context, userID uuid.UUID) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.countFollowers(userID), nil
}

func (r *FollowRepo) CountFollowing(_ context.Context, userID uuid.UUID) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	n := 0
	for e := range r.db.follows {
		if e.from == userID {
			n++
		}
	}
	return n, nil
}

func (r *FollowRepo) countFollowers(userID uuid.UUID) int {
	n := 0
	for e := range r.db.follows {
		if e.to == userID {
			n++
		}
	}
	return n
}
