package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vedran77/chirp/internal/domain"
	"github.com/vedran77/chirp/internal/repository"
)

type UserRepo struct {
	db *DB
}

func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(_ context.Context, user *domain.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	uname, email := foldKey(user.Username), foldKey(user.Email)
	if _, ok := r.db.usernames[uname]; ok {
		return repository.ErrDuplicate
	}
	if _, ok := r.db.emails[email]; ok {
		return repository.ErrDuplicate
	}

	r.db.users[user.ID] = *user
	r.db.usernames[uname] = user.ID
	r.db.emails[email] = user.ID
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.lookup(id), nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	id, ok := r.db.emails[foldKey(email)]
	if !ok {
		return nil, nil
	}
	return r.lookup(id), nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	id, ok := r.db.usernames[foldKey(username)]
	if !ok {
		return nil, nil
	}
	return r.lookup(id), nil
}

func (r *UserRepo) Search(_ context.Context, query string, limit int) ([]domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return r.sortedUsers(limit, func(u *domain.User) bool {
		return containsFold(u.Username, query) || containsFold(u.DisplayName, query)
	}), nil
}

func (r *UserRepo) ListSuggested(_ context.Context, userID uuid.UUID, limit int) ([]domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return r.sortedUsers(limit, func(u *domain.User) bool {
		if u.ID == userID {
			return false
		}
		_, following := r.db.follows[edge{from: userID, to: u.ID}]
		return !following
	}), nil
}

func (r *UserRepo) lookup(id uuid.UUID) *domain.User {
	u, ok := r.db.users[id]
	if !ok {
		return nil
	}
	return &u
}

func (r *UserRepo) sortedUsers(limit int, keep func(*domain.User) bool) []domain.User {
	out := make([]domain.User, 0)
	for _, u := range r.db.users {
		if keep(&u) {
			out = append(out, u)
		}
	}
	newestFirst(out,
		func(u domain.User) time.Time { return u.CreatedAt },
		func(u domain.User) uuid.UUID { return u.ID },
	)
	return page(out, 0, limit)
}
