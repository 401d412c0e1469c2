package observability

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/mongo"
)

// ObserveDB times one logical store operation. Not-found results are part of
// normal traffic and are passed in as notFound so they do not count as errors.
func (p *Prom) ObserveDB(op string, fn func() error, notFound ...error) error {
	start := time.Now()
	err := fn()

	status := "ok"

	if err != nil && !isAny(err, notFound) {
		status = "error"
		p.DbErrorsTotal.WithLabelValues(op, classifyDBErr(err)).Inc()
	}
	p.DbQueryDuration.WithLabelValues(op, status).Observe(time.Since(start).Seconds())
	return err

}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func classifyDBErr(err error) string {
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	if errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err) {
		return "timeout"
	}
	if mongo.IsNetworkError(err) {
		return "connection"
	}
	if mongo.IsDuplicateKeyError(err) {
		return "duplicate_key"
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return "unique_violation"
		case "40001":
			return "serialization_failure"
		case "40P01":
			return "deadlock"
		case "57014":
			return "query_canceled"
		default:
			return "pg_" + pgErr.Code
		}
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Name != "" {
		return "mongo_" + cmdErr.Name
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline"):
		return "timeout"
	case strings.Contains(msg, "connection"):
		return "connection"
	default:
		return "unknown"
	}
}
