package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/geocoder89/birthdays/internal/apperror"
)

func TestError_PublicAndStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        *apperror.Error
		wantStatus int
		wantPublic string
	}{
		{"not found", apperror.NotFound(), http.StatusNotFound, "not found"},
		{"bad request", apperror.BadRequest("Invalid name, only letters allowed."), http.StatusBadRequest, "Invalid name, only letters allowed."},
		{"other", apperror.Other(errors.New("connection refused")), http.StatusInternalServerError, "Something went wrong!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.Status())
			assert.Equal(t, tt.wantPublic, tt.err.Public())
		})
	}
}

func TestOther_KeepsDetailOutOfPublicText(t *testing.T) {
	cause := errors.New("mongo: server selection timeout")
	err := apperror.Other(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "server selection timeout")
	assert.NotContains(t, err.Public(), "mongo")
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("retrieving user: %w", apperror.NotFound())
	assert.True(t, apperror.IsNotFound(wrapped))
	assert.Equal(t, apperror.KindNotFound, apperror.As(wrapped).Kind)

	plain := errors.New("boom")
	got := apperror.As(plain)
	assert.Equal(t, apperror.KindOther, got.Kind)
	assert.ErrorIs(t, got, plain)
	assert.False(t, apperror.IsNotFound(plain))
}

func TestOtherf_WrapsCause(t *testing.T) {
	cause := errors.New("date arithmetic overflow")
	err := apperror.Otherf("days until birthday of %q: %w", "jacob", cause)

	assert.Equal(t, apperror.KindOther, err.Kind)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), `"jacob"`)
	assert.Equal(t, "Something went wrong!", err.Public())
}
