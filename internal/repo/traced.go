package repo

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/geocoder89/birthdays/internal/apperror"
	"github.com/geocoder89/birthdays/internal/domain/user"
)

const tracerName = "github.com/geocoder89/birthdays/internal/repo"

type tracedStore struct {
	next   UserStore
	tracer trace.Tracer
}

// WithTracing wraps next so each call runs in its own span. It uses the
// global tracer provider, a no-op until tracing is configured.
func WithTracing(next UserStore) UserStore {
	return &tracedStore{next: next, tracer: otel.Tracer(tracerName)}
}

func (s *tracedStore) Store(ctx context.Context, u user.User) error {
	ctx, span := s.tracer.Start(ctx, "users.store", trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("db.collection.name", "users")))
	defer span.End()

	err := s.next.Store(ctx, u)
	record(span, err)
	return err
}

func (s *tracedStore) Retrieve(ctx context.Context, name string) (user.User, error) {
	ctx, span := s.tracer.Start(ctx, "users.retrieve", trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("db.collection.name", "users")))
	defer span.End()

	u, err := s.next.Retrieve(ctx, name)
	record(span, err)
	return u, err
}

func record(span trace.Span, err error) {
	if err == nil {
		return
	}
	if apperror.IsNotFound(err) {
		span.SetAttributes(attribute.Bool("users.not_found", true))
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, "store call failed")
}
