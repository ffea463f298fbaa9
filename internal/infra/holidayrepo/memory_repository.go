package holidayrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/singhHarcharan/trip-planner-agent/internal/domain/holiday"
)

// MemoryRepository keeps holidays in process memory for tests/dev.
type MemoryRepository struct {
	mu       sync.RWMutex
	holidays map[int64][]time.Time
}

// NewMemoryRepository constructs a repository seeded with the given calendar.
func NewMemoryRepository(seed map[int64][]time.Time) *MemoryRepository {
	repo := &MemoryRepository{holidays: make(map[int64][]time.Time)}
	for id, days := range seed {
		repo.Add(id, days...)
	}
	return repo
}

// Add records holiday dates for an employee.
func (r *MemoryRepository) Add(employeeID int64, days ...time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := append(r.holidays[employeeID], days...)
	sort.Slice(list, func(i, j int) bool { return list[i].Before(list[j]) })
	r.holidays[employeeID] = list
}

// ListFrom implements holiday.Repository.
func (r *MemoryRepository) ListFrom(_ context.Context, employeeID int64, from time.Time) ([]time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []time.Time
	for _, day := range r.holidays[employeeID] {
		if !day.Before(from) {
			out = append(out, day)
		}
	}
	return out, nil
}

var _ holiday.Repository = (*MemoryRepository)(nil)
