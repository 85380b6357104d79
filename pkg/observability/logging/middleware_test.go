package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContextReturnsNopWhenUnset(t *testing.T) {
	logger := FromContext(context.Background())
	require.NotNil(t, logger)
	// Must never panic, a no-op logger swallows everything.
	logger.Info("dropped")
}

func TestWithRequestLoggerRoundtrip(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	ctx := WithRequestLogger(context.Background(), logger)
	FromContext(ctx).Info("hello from the request")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "hello from the request", logs.All()[0].Message)
}
