package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type ctxKey struct{}

func TestNilTracerPropagatesContext(t *testing.T) {
	t.Parallel()

	provider := NewNilTracerProvider(context.Background())
	tracer := provider.NewTracer("engine")

	ctx := context.WithValue(context.Background(), ctxKey{}, "query")
	span := tracer.StartWithContext(ctx, "expression")

	assert.NotPanics(t, func() {
		span.SetAttribute("entity", "block")
		span.RecordError(errors.New("boom"))
		span.SetStatus(Ok, "")
		span.End()
	})
	assert.Equal(t, "query", span.Context().Value(ctxKey{}))
	assert.NotNil(t, tracer.Start("root").Context())
	assert.NoError(t, provider.Shutdown(context.Background()))
}
