package book

import (
	"context"
	"errors"
	"testing"

	"booklog/internal/platform/logging"
	"booklog/internal/platform/metrics"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentedClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockClient := NewMockClient(ctrl)

	m, err := metrics.New()
	require.NoError(t, err)
	client := Instrument(mockClient, m.Client, logging.Discard())

	count := func(op, status string) float64 {
		return testutil.ToFloat64(m.Client.RequestsTotal.WithLabelValues(op, status))
	}

	mockClient.EXPECT().List(gomock.Any()).Return([]Book{{ID: 1}}, nil)
	mockClient.EXPECT().List(gomock.Any()).Return(nil, errors.New("boom"))
	mockClient.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&Book{ID: 2}, nil)
	mockClient.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil, nil)
	mockClient.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))

	ctx := context.Background()
	books, err := client.List(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 1)
	_, err = client.List(ctx)
	assert.Error(t, err)

	b, err := client.Insert(ctx, Draft{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), b.ID)
	b, err = client.Insert(ctx, Draft{})
	assert.NoError(t, err)
	assert.Nil(t, b)
	_, err = client.Insert(ctx, Draft{})
	assert.Error(t, err)

	assert.Equal(t, float64(1), count(metrics.OperationList, metrics.StatusOK))
	assert.Equal(t, float64(1), count(metrics.OperationList, metrics.StatusError))
	assert.Equal(t, float64(1), count(metrics.OperationAdd, metrics.StatusOK))
	assert.Equal(t, float64(1), count(metrics.OperationAdd, metrics.StatusNoRow))
	assert.Equal(t, float64(1), count(metrics.OperationAdd, metrics.StatusError))

	assert.ErrorIs(t, client.Ping(ctx), ErrPingUnsupported)
}

func TestInstrumentedClient_PingForwards(t *testing.T) {
	repo, err := NewMemoryRepo()
	require.NoError(t, err)
	m, err := metrics.New()
	require.NoError(t, err)

	client := Instrument(repo, m.Client, logging.Discard())
	assert.NoError(t, client.Ping(context.Background()))
}
