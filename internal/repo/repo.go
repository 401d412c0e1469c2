package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/geocoder89/birthdays/internal/cache"
	"github.com/geocoder89/birthdays/internal/config"
	"github.com/geocoder89/birthdays/internal/db"
	"github.com/geocoder89/birthdays/internal/domain/user"
	"github.com/geocoder89/birthdays/internal/observability"
	"github.com/geocoder89/birthdays/internal/repo/cached"
	"github.com/geocoder89/birthdays/internal/repo/memory"
	"github.com/geocoder89/birthdays/internal/repo/mongodb"
	"github.com/geocoder89/birthdays/internal/repo/postgres"
)

var ErrUnknownDriver = errors.New("unknown store driver")

// UserStore persists users by name. Retrieve reports apperror.NotFound for
// unknown names; every other failure is an apperror.Other.
type UserStore interface {
	Store(ctx context.Context, u user.User) error
	Retrieve(ctx context.Context, name string) (user.User, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Backend is the long-lived store handle built once at startup.
type Backend struct {
	Users   UserStore
	pingers []Pinger
	closers []func() error
}

// Ping checks the document store only; the cache is optional and never
// makes the service unready.
func (b *Backend) Ping(ctx context.Context) error {
	for _, p := range b.pingers {
		if err := p.Ping(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (b *Backend) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		errs = append(errs, b.closers[i]())
	}
	return errors.Join(errs...)
}

// Open connects the configured document store and, when enabled, the cache
// in front of it.
func Open(ctx context.Context, cfg config.Config, prom *observability.Prom, log *slog.Logger) (*Backend, error) {
	b := &Backend{}

	switch cfg.StoreDriver {
	case config.DriverMemory:
		r := memory.NewUsersRepo()
		b.Users = r
		b.pingers = append(b.pingers, r)

	case config.DriverMongo:
		client, err := db.NewMongo(cfg.StoreURI)
		if err != nil {
			return nil, fmt.Errorf("connecting to mongo: %w", err)
		}
		b.closers = append(b.closers, func() error { return client.Disconnect(context.Background()) })

		r := mongodb.NewUsersRepo(client.Database(cfg.StoreProject), prom)
		b.Users = r
		b.pingers = append(b.pingers, r)

	case config.DriverPostgres:
		pool, err := db.NewPool(cfg.StoreURI)
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		b.closers = append(b.closers, func() error { pool.Close(); return nil })

		r := postgres.NewUsersRepo(pool, prom)
		if err := r.EnsureSchema(ctx); err != nil {
			_ = b.Close()
			return nil, err
		}
		b.Users = r
		b.pingers = append(b.pingers, r)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.StoreDriver)
	}

	log.Info("document store ready", "driver", cfg.StoreDriver)

	// only a cache shared by every replica can be invalidated by every write
	if cfg.RedisAddr != "" && cfg.CacheTTL > 0 {
		rc := cache.NewRedis(cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.CacheTTL,
		})
		if err := rc.Ping(ctx); err != nil {
			// the cache only saves round-trips; run without it
			log.Warn("redis unreachable, continuing without cache", "addr", cfg.RedisAddr, "err", err)
			_ = rc.Close()
		} else {
			b.closers = append(b.closers, rc.Close)
			b.Users = cached.NewUsersRepo(b.Users, rc, prom)
			log.Info("user cache enabled", "backend", "redis", "ttl", cfg.CacheTTL)
		}
	}

	b.Users = WithTracing(b.Users)

	return b, nil
}
