package log_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"

	"github.com/snehendu098/ghost/wallet/pkg/log"
)

func TestContextLogger(t *testing.T) {
	ctx := context.Background()

	logger := log.FromContext(ctx)
	_, isNoop := logger.(log.NoopLogger)
	assert.True(t, isNoop)

	ctx = log.SetContextLogger(ctx, nil)
	_, isNoop = log.FromContext(ctx).(log.NoopLogger)
	assert.True(t, isNoop)

	logger = log.NewZapLogger(log.Config{}, &testWriteSyncer{})
	ctx = log.SetContextLogger(ctx, logger)
	_, isZapLogger := log.FromContext(ctx).(*log.ZapLogger)
	assert.True(t, isZapLogger)

	ctx = trace.ContextWithSpanContext(ctx, trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: [16]byte{1},
		SpanID:  [8]byte{1},
	}))
	ctx = log.SetContextLogger(ctx, logger)
	_, isSpanLogger := log.FromContext(ctx).(log.SpanLogger)
	assert.True(t, isSpanLogger)
}
