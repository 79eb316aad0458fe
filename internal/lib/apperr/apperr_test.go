package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIs(t *testing.T) {
	err := New(NotFound, "subscriber not found")
	assert.True(t, Is(err, NotFound))
	assert.False(t, Is(err, Conflict))

	wrapped := fmt.Errorf("services.Get: %w", err)
	assert.True(t, Is(wrapped, NotFound))

	assert.False(t, Is(errors.New("plain"), NotFound))
	assert.False(t, Is(nil, NotFound))
}

func TestMessage(t *testing.T) {
	err := New(Conflict, "username already exists")
	assert.Equal(t, "username already exists", Message(err, "fallback"))

	wrapped := fmt.Errorf("op: %w", err)
	assert.Equal(t, "username already exists", Message(wrapped, "fallback"))

	assert.Equal(t, "fallback", Message(errors.New("db error"), "fallback"))
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(Upstream, "gateway request failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "gateway request failed")
	assert.Contains(t, err.Error(), "connection refused")
}
