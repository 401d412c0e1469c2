package cache

import (
	"context"
	"errors"
)

var ErrMiss = errors.New("cache miss")

// Cache stores opaque values by key next to a per-key write generation.
// Readers note the generation before loading from the source of truth and
// fill with it; a write in between bumps the generation and the fill is
// dropped, so a fill can never resurrect a value older than the last write.
// Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Generation returns the current write generation of key, 0 if none.
	Generation(ctx context.Context, key string) (int64, error)
	// Fill stores val only while key is still at generation gen and reports
	// whether it did.
	Fill(ctx context.Context, key string, gen int64, val []byte) (bool, error)
	// Invalidate drops the value and bumps the generation.
	Invalidate(ctx context.Context, key string) error
}

// UserKey is the cache key of the user stored under name. Names are
// case-sensitive document ids, so the key keeps the case.
func UserKey(name string) string {
	return "users:v1:" + name
}

func generationKey(key string) string {
	return key + ":gen"
}
