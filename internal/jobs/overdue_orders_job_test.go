package jobs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOverdueOrdersFinder struct{ mock.Mock }

func (m *MockOverdueOrdersFinder) Handle(
	ctx context.Context,
	query queries.GetOverdueOrdersQuery,
) ([]queries.GetOverdueOrdersQueryResponse, error) {
	args := m.Called(ctx, query)
	resp, _ := args.Get(0).([]queries.GetOverdueOrdersQueryResponse)
	return resp, args.Error(1)
}

func newTestJob(finder OverdueOrdersFinder, schedule string, buf *bytes.Buffer) *OverdueOrdersJob {
	return NewOverdueOrdersJob(finder, schedule, slog.New(slog.NewTextHandler(buf, nil)))
}

func TestOverdueOrdersJob_Run(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	driver := kernel.ID(11)

	finder := new(MockOverdueOrdersFinder)
	finder.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOverdueOrdersQuery) bool {
		return q.Now().Equal(now)
	})).Return([]queries.GetOverdueOrdersQueryResponse{
		{ID: 1, UserID: 7, Status: order.Shipped, EstimatedDeliveryTime: now.Add(-time.Hour), DriverID: &driver},
		{ID: 2, UserID: 8, Status: order.Created, EstimatedDeliveryTime: now.Add(-time.Minute)},
	}, nil).Once()

	var buf bytes.Buffer
	job := newTestJob(finder, "0 */5 * * * *", &buf)
	job.now = func() time.Time { return now }

	n, err := job.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, strings.Count(buf.String(), "level=WARN"))
	assert.Contains(t, buf.String(), "driver_id=11")
	finder.AssertExpectations(t)
}

func TestOverdueOrdersJob_RunFailure(t *testing.T) {
	finder := new(MockOverdueOrdersFinder)
	finder.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

	var buf bytes.Buffer
	job := newTestJob(finder, "0 */5 * * * *", &buf)

	n, err := job.Run(context.Background())

	require.Error(t, err)
	assert.Zero(t, n)
	assert.Contains(t, buf.String(), "level=ERROR")
}

func TestOverdueOrdersJob_StartRejectsMalformedSchedule(t *testing.T) {
	var buf bytes.Buffer
	job := newTestJob(new(MockOverdueOrdersFinder), "every five minutes", &buf)

	require.Error(t, job.Start())
}

func TestJobManager_StartAndStop(t *testing.T) {
	finder := new(MockOverdueOrdersFinder)
	finder.On("Handle", mock.Anything, mock.Anything).Return([]queries.GetOverdueOrdersQueryResponse{}, nil).Maybe()

	var buf bytes.Buffer
	manager := NewJobManager(finder, "* * * * * *", slog.New(slog.NewTextHandler(&buf, nil)))

	require.NoError(t, manager.StartAll())
	manager.StopAll()

	assert.Contains(t, buf.String(), "Overdue orders job stopped")
}
