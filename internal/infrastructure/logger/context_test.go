package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVendorIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	log, _ := New(DefaultConfig())

	ctx, _ = WithVendorID(ctx, log, "8f7f2b1e-0000-0000-0000-000000000001")

	assert.Equal(t, "8f7f2b1e-0000-0000-0000-000000000001", GetVendorID(ctx))
}

func TestGetVendorIDMissing(t *testing.T) {
	assert.Equal(t, "", GetVendorID(context.Background()))
}

func TestFromContextFallsBackToNop(t *testing.T) {
	log := FromContext(context.Background())
	assert.NotNil(t, log)
	// Must not panic
	log.Info("noop")
}

func TestWithRequestID(t *testing.T) {
	ctx := context.Background()
	log, _ := New(DefaultConfig())

	ctx, enriched := WithRequestID(ctx, log, "req-123")

	assert.Equal(t, "req-123", GetRequestID(ctx))
	assert.NotNil(t, enriched)
	assert.Same(t, enriched, FromContext(ctx))
}

func TestTraceFieldsWithoutSpan(t *testing.T) {
	assert.Nil(t, TraceFields(context.Background()))
	assert.Equal(t, "", GetTraceID(context.Background()))
}
