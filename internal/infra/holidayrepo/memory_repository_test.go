package holidayrepo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryRepositoryListFrom(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 8, d, 0, 0, 0, 0, time.UTC) }
	repo := NewMemoryRepository(map[int64][]time.Time{
		1001: {day(25), day(10), day(18)},
	})
	repo.Add(1001, day(17))

	got, err := repo.ListFrom(context.Background(), 1001, day(17))
	require.NoError(t, err)
	require.Equal(t, []time.Time{day(17), day(18), day(25)}, got)

	got, err = repo.ListFrom(context.Background(), 42, day(1))
	require.NoError(t, err)
	require.Empty(t, got)
}
