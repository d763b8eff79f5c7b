package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lal/internal/adapters/telemetry"
	"go.trai.ch/lal/internal/core/domain"
	"go.trai.ch/lal/internal/core/ports"
)

func TestNoOp(t *testing.T) {
	var tel telemetry.NoOp

	ctx, v := tel.Record(context.Background(), "stage")
	got, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, v, got)

	n, err := v.Stdout().Write([]byte("ignored"))
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	v.Log(domain.LogLevelInfo, "ignored")
	v.Complete(nil)

	require.NoError(t, tel.Close())
}
