package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/geocoder89/birthdays/internal/apperror"
	"github.com/geocoder89/birthdays/internal/domain/user"
	"github.com/geocoder89/birthdays/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// users holds one JSONB document per name, the same shape the document
// stores keep.
const schema = `CREATE TABLE IF NOT EXISTS users (
	name       TEXT PRIMARY KEY,
	doc        JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type UsersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewUsersRepo(pool *pgxpool.Pool, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *UsersRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn, pgx.ErrNoRows)
	}
	return fn()
}

func (r *UsersRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}
	return nil
}

func (r *UsersRepo) Store(ctx context.Context, u user.User) error {
	doc := user.ToDocument(u)

	err := r.observe("users.store", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO users (name, doc, updated_at)
			 VALUES ($1, $2, now())
			 ON CONFLICT (name) DO UPDATE
			 SET doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at`,
			doc.Name, doc)
		return err
	})

	if err != nil {
		return apperror.Other(fmt.Errorf("storing user %q: %w", doc.Name, err))
	}
	return nil
}

func (r *UsersRepo) Retrieve(ctx context.Context, name string) (user.User, error) {
	var doc user.Document

	err := r.observe("users.retrieve", func() error {
		return r.pool.QueryRow(ctx, `SELECT doc FROM users WHERE name = $1`, name).Scan(&doc)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, apperror.NotFound()
		}

		return user.User{}, apperror.Other(fmt.Errorf("retrieving user %q: %w", name, err))
	}

	u, err := user.FromDocument(doc)
	if err != nil {
		return user.User{}, apperror.Other(err)
	}
	return u, nil
}

func (r *UsersRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
