package memory

import (
	"context"
	"sync"
	"time"

	"github.com/freshbite/shop/internal/domain/user"
)

// UsersRepo is a map-backed stand-in for the postgres repository. It keeps
// insertion order so GetByEmail resolves duplicates the same way the SQL
// query would (first inserted wins).
type UsersRepo struct {
	mu    sync.RWMutex
	items map[string]user.User
	order []string
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		items: make(map[string]user.User),
	}
}

func (r *UsersRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	r.items[u.ID] = u
	r.order = append(r.order, u.ID)
	r.mu.Unlock()

	return u, nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if u := r.items[id]; u.Email == email {
			return u, nil
		}
	}

	return user.User{}, user.ErrNotFound
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return u, nil
}

func (r *UsersRepo) UpdatePartial(ctx context.Context, id string, req user.UpdateUserRequest) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	req.Apply(&u)
	u.UpdatedAt = time.Now().UTC()
	r.items[id] = u

	return u, nil
}
