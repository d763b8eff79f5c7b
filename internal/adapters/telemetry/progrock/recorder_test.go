package progrock_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lal/internal/adapters/telemetry/progrock"
	"go.trai.ch/lal/internal/core/domain"
	"go.trai.ch/lal/internal/core/ports"
	"go.trai.ch/lal/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestRecorder_Record(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).Do(func(msg string) {
		assert.True(t, strings.HasPrefix(msg, "run build script done"), msg)
	}).Times(1)

	recorder := progrock.New(mockLogger)

	ctx, vertex := recorder.Record(context.Background(), domain.StageBuild)
	got, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, vertex, got)

	_, err := vertex.Stdout().Write([]byte("Standard Output\n"))
	require.NoError(t, err)
	vertex.Log(domain.LogLevelDebug, "debug msg")
	vertex.Complete(nil)

	require.NoError(t, recorder.Close())
}

func TestRecorder_Record_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn("package OUTPUT failed: no build output found in OUTPUT").Times(1)

	recorder := progrock.New(mockLogger)

	_, vertex := recorder.Record(context.Background(), domain.StagePackage)
	vertex.Complete(errors.New("no build output found in OUTPUT"))

	require.NoError(t, recorder.Close())
}

func TestRecorder_Record_SameStageTwice(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).Times(1)
	mockLogger.EXPECT().Warn("prepare OUTPUT failed: disk full").Times(1)

	recorder := progrock.New(mockLogger)

	_, first := recorder.Record(context.Background(), domain.StageOutput)
	first.Complete(nil)

	_, second := recorder.Record(context.Background(), domain.StageOutput)
	second.Complete(errors.New("disk full"))

	require.NoError(t, recorder.Close())
}
