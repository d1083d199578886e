package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequestContext(t *testing.T) {
	ctx := NewRequestContext(context.Background(), "")

	// Both ids are generated and retrievable.
	require.NotEmpty(t, RequestIDFromContext(ctx))
	require.NotEmpty(t, CorrelationIDFromContext(ctx))
	assert.NotEqual(t, RequestIDFromContext(ctx), CorrelationIDFromContext(ctx))
}

func TestNewRequestContext_ReusesParentCorrelation(t *testing.T) {
	ctx := NewRequestContext(context.Background(), "corr-123")
	assert.Equal(t, "corr-123", CorrelationIDFromContext(ctx))
	assert.NotEmpty(t, RequestIDFromContext(ctx))
}

func TestOperationRoundTrip(t *testing.T) {
	assert.Empty(t, OperationFromContext(context.Background()))

	ctx := WithOperation(context.Background(), "get_moon_phases")
	assert.Equal(t, "get_moon_phases", OperationFromContext(ctx))
}
