package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/redo/internal/adapters/telemetry"
	"go.trai.ch/redo/internal/adapters/telemetry/progrock"
	"go.trai.ch/redo/internal/core/domain"
)

func TestNew_SelectsBackend(t *testing.T) {
	assert.IsType(t, &telemetry.NoOp{}, telemetry.New(domain.TelemetryNone))
	assert.IsType(t, &progrock.Recorder{}, telemetry.New(domain.TelemetryProgrock))
}

func TestNoOp_DiscardsOutput(t *testing.T) {
	tel := telemetry.NewNoOp()
	ctx := context.Background()

	got, vertex := tel.Record(ctx, "target")
	assert.Equal(t, ctx, got)

	n, err := vertex.Stdout().Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	vertex.Cached()
	vertex.Complete(nil)
	require.NoError(t, tel.Close())
}
