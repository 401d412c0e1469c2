package memory

import (
	"context"
	"sync"

	"github.com/geocoder89/birthdays/internal/apperror"
	"github.com/geocoder89/birthdays/internal/domain/user"
)

// UsersRepo keeps user documents in process memory. It is meant for local
// runs and tests; nothing survives a restart.
type UsersRepo struct {
	mu    sync.RWMutex
	items map[string]user.Document // {"name": document}
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		items: make(map[string]user.Document),
	}
}

func (r *UsersRepo) Store(ctx context.Context, u user.User) error {
	if err := ctx.Err(); err != nil {
		return apperror.Other(err)
	}

	doc := user.ToDocument(u)

	r.mu.Lock()
	r.items[doc.Name] = doc
	r.mu.Unlock()

	return nil
}

func (r *UsersRepo) Retrieve(ctx context.Context, name string) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, apperror.Other(err)
	}

	r.mu.RLock()
	doc, ok := r.items[name]
	r.mu.RUnlock()

	if !ok {
		return user.User{}, apperror.NotFound()
	}

	u, err := user.FromDocument(doc)
	if err != nil {
		return user.User{}, apperror.Other(err)
	}
	return u, nil
}

func (r *UsersRepo) Ping(context.Context) error {
	return nil
}

func (r *UsersRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
