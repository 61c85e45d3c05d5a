package platformerrors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelMatchesAfterWrapping(t *testing.T) {
	notFound := Sentinel(LayerDomain, ErrorTypeNotFound, "Glossary not found")

	wrapped := fmt.Errorf("lookup: %w", notFound.WithDetail("id=abc"))

	assert.True(t, errors.Is(wrapped, notFound))
	assert.True(t, IsErrorType(wrapped, ErrorTypeNotFound))
	assert.False(t, IsErrorType(wrapped, ErrorTypeValidation))
}

func TestWithDetailDoesNotMutateSentinel(t *testing.T) {
	base := Sentinel(LayerDomain, ErrorTypeValidation, "Invalid file data.")
	detailed := base.WithDetail("extension .exe")

	assert.Empty(t, base.Detail)
	assert.Equal(t, "extension .exe", detailed.Detail)
	assert.Contains(t, detailed.Error(), "extension .exe")
}

func TestNewErrorCarriesRequestID(t *testing.T) {
	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	err := NewError(ctx, LayerInfrastructure, ErrorTypeInternal, "write failed", errors.New("disk full"))

	assert.Equal(t, "req-1", err.RequestID)
	assert.ErrorContains(t, err, "disk full")
	assert.False(t, err.Timestamp.IsZero())
}

func TestAsErrorKeepsPlatformType(t *testing.T) {
	ctx := context.Background()
	original := NewError(ctx, LayerDomain, ErrorTypeQuotaExceeded, "quota", nil)

	got := AsError(ctx, LayerHandler, fmt.Errorf("wrap: %w", original), "ignored")
	require.NotNil(t, got)
	assert.Equal(t, ErrorTypeQuotaExceeded, got.Type)

	plain := AsError(ctx, LayerHandler, errors.New("boom"), "unexpected failure")
	assert.Equal(t, ErrorTypeInternal, plain.Type)
	assert.Equal(t, "unexpected failure", plain.Message)

	assert.Nil(t, AsError(ctx, LayerHandler, nil, "nil"))
}
