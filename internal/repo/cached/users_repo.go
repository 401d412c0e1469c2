package cached

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/geocoder89/birthdays/internal/apperror"
	"github.com/geocoder89/birthdays/internal/cache"
	"github.com/geocoder89/birthdays/internal/domain/user"
	"github.com/geocoder89/birthdays/internal/observability"
)

type UserStore interface {
	Store(ctx context.Context, u user.User) error
	Retrieve(ctx context.Context, name string) (user.User, error)
}

// UsersRepo is a read-through cache in front of another UserStore.
//
// Store invalidates after the write lands and fails if it cannot, so a
// successful Store is always visible to the next Retrieve. Retrieve fills
// under the generation it saw before reading the store, which drops any fill
// racing a newer write. Cache failures on the read path fall back to the
// store.
type UsersRepo struct {
	next  UserStore
	cache cache.Cache
	prom  *observability.Prom
}

func NewUsersRepo(next UserStore, c cache.Cache, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{next: next, cache: c, prom: prom}
}

func (r *UsersRepo) Store(ctx context.Context, u user.User) error {
	if err := r.next.Store(ctx, u); err != nil {
		return err
	}

	if err := r.cache.Invalidate(ctx, cache.UserKey(u.Name())); err != nil {
		return apperror.Otherf("invalidating cached user %q: %w", u.Name(), err)
	}
	return nil
}

func (r *UsersRepo) Retrieve(ctx context.Context, name string) (user.User, error) {
	key := cache.UserKey(name)

	raw, err := r.cache.Get(ctx, key)
	switch {
	case err == nil:
		var doc user.Document
		if err := json.Unmarshal(raw, &doc); err == nil {
			if u, err := user.FromDocument(doc); err == nil {
				r.observe("hit")
				return u, nil
			}
		}
		// unreadable entry: drop it and fall back to the store
		r.observe("error")
		if err := r.cache.Invalidate(ctx, key); err != nil {
			slog.WarnContext(ctx, "cache evict failed", "key", key, "err", err)
		}
	case errors.Is(err, cache.ErrMiss):
		r.observe("miss")
	default:
		r.observe("error")
		slog.WarnContext(ctx, "cache read failed", "key", key, "err", err)
	}

	gen, genErr := r.cache.Generation(ctx, key)

	u, err := r.next.Retrieve(ctx, name)
	if err != nil {
		return user.User{}, err
	}

	if genErr != nil {
		slog.WarnContext(ctx, "cache generation read failed", "key", key, "err", genErr)
		return u, nil
	}

	r.fill(ctx, key, gen, u)
	return u, nil
}

func (r *UsersRepo) fill(ctx context.Context, key string, gen int64, u user.User) {
	raw, err := json.Marshal(user.ToDocument(u))
	if err != nil {
		return
	}

	filled, err := r.cache.Fill(ctx, key, gen, raw)
	switch {
	case err != nil:
		slog.WarnContext(ctx, "cache fill failed", "key", key, "err", err)
	case !filled:
		slog.DebugContext(ctx, "cache fill skipped, newer write seen", "key", key)
	}
}

func (r *UsersRepo) observe(result string) {
	if r.prom != nil {
		r.prom.ObserveCache(result)
	}
}
