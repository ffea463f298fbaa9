package holiday

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/singhHarcharan/trip-planner-agent/pkg/errors"
)

func TestUpcomingFormatsDates(t *testing.T) {
	repo := &stubRepo{dates: []time.Time{
		time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC),
	}}
	svc := NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))).(*service)
	svc.now = func() time.Time { return time.Date(2025, 8, 17, 15, 4, 5, 0, time.UTC) }

	resp, err := svc.Upcoming(context.Background(), 1001)
	require.NoError(t, err)
	require.Equal(t, int64(1001), resp.EmployeeID)
	require.Equal(t, "2025-08-17", resp.From)
	require.Equal(t, []string{"2025-08-18", "2025-08-25"}, resp.Holidays)
	require.Equal(t, time.Date(2025, 8, 17, 0, 0, 0, 0, time.UTC), repo.from)
}

func TestUpcomingEmpty(t *testing.T) {
	svc := NewService(&stubRepo{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	resp, err := svc.Upcoming(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, resp.Holidays)
	require.Empty(t, resp.Holidays)
}

func TestUpcomingErrors(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := NewService(&stubRepo{}, logger).Upcoming(context.Background(), 0)
	require.True(t, apperrors.IsCode(err, "invalid_input"))

	_, err = NewService(&stubRepo{err: errors.New("connection refused")}, logger).Upcoming(context.Background(), 1001)
	require.True(t, apperrors.IsCode(err, "storage_error"))
}

type stubRepo struct {
	dates []time.Time
	err   error
	from  time.Time
}

func (r *stubRepo) ListFrom(ctx context.Context, employeeID int64, from time.Time) ([]time.Time, error) {
	r.from = from
	return r.dates, r.err
}
