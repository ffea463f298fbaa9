package holiday

import (
	"context"
	"log/slog"
	"time"

	apperrors "github.com/singhHarcharan/trip-planner-agent/pkg/errors"
	"github.com/singhHarcharan/trip-planner-agent/pkg/util"
)

// Service exposes the employee holiday calendar.
type Service interface {
	Upcoming(ctx context.Context, employeeID int64) (Response, error)
}

// Repository returns holiday dates on or after from, earliest first.
type Repository interface {
	ListFrom(ctx context.Context, employeeID int64, from time.Time) ([]time.Time, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires up the holiday domain.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With("component", "holiday.service"),
		now:    util.NowUTC,
	}
}

func (s *service) Upcoming(ctx context.Context, employeeID int64) (Response, error) {
	if employeeID <= 0 {
		return Response{}, apperrors.Wrap("invalid_input", "employee id must be positive", nil)
	}
	now := s.now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	dates, err := s.repo.ListFrom(ctx, employeeID, from)
	if err != nil {
		return Response{}, apperrors.Wrap("storage_error", "failed to load holidays", err)
	}

	holidays := make([]string, 0, len(dates))
	seen := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		day := util.FormatDate(d)
		if _, dup := seen[day]; dup {
			continue
		}
		seen[day] = struct{}{}
		holidays = append(holidays, day)
	}
	s.logger.Info("holidays loaded", "employeeId", employeeID, "count", len(holidays))

	return Response{
		EmployeeID: employeeID,
		From:       util.FormatDate(from),
		Holidays:   holidays,
	}, nil
}
