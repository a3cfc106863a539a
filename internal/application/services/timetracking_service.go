package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

// TimeTrackingService owns the start/stop lifecycle of tracking intervals
// and derives the daily/monthly totals from closed intervals.
type TimeTrackingService struct {
	intervalRepo ports.TimeIntervalRepository
	taskRepo     ports.TaskRepository
	logger       *logger.Logger

	// now is injected so window boundaries are testable
	now func() time.Time
}

// NewTimeTrackingService creates a new time tracking service
func NewTimeTrackingService(intervalRepo ports.TimeIntervalRepository, taskRepo ports.TaskRepository, logger *logger.Logger) *TimeTrackingService {
	return &TimeTrackingService{
		intervalRepo: intervalRepo,
		taskRepo:     taskRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// Start opens a new tracking interval for the task. At most one open
// interval may exist per task; a second start fails with ErrAlreadyTracking.
// The pre-check here is backed by the store's partial unique index, so two
// concurrent starts cannot both slip through.
func (s *TimeTrackingService) Start(ctx context.Context, taskID uuid.UUID, req ports.StartTrackingRequest) (*entities.TimeInterval, error) {
	if _, err := s.taskRepo.GetByID(ctx, taskID); err != nil {
		return nil, fmt.Errorf("task lookup: %w", err)
	}

	_, err := s.intervalRepo.GetOpenByTask(ctx, taskID)
	if err == nil {
		return nil, entities.ErrAlreadyTracking
	}
	if !errors.Is(err, entities.ErrNoActiveTracking) {
		return nil, fmt.Errorf("check open interval: %w", err)
	}

	interval := &entities.TimeInterval{
		ID:        uuid.New(),
		TaskID:    taskID,
		StartDate: s.now(),
		TimeZone:  req.TimeZone,
	}

	if err := s.intervalRepo.Create(ctx, interval); err != nil {
		if errors.Is(err, entities.ErrAlreadyTracking) {
			return nil, entities.ErrAlreadyTracking
		}
		return nil, fmt.Errorf("create interval: %w", err)
	}

	s.logger.Info("Time tracking started", "interval_id", interval.ID, "task_id", taskID, "time_zone", req.TimeZone)

	return interval, nil
}

// Stop closes the task's open interval. Stopping a task with no open
// interval fails with ErrNoActiveTracking, including a second stop in a row.
func (s *TimeTrackingService) Stop(ctx context.Context, taskID uuid.UUID) (*entities.TimeInterval, error) {
	interval, err := s.intervalRepo.CloseOpen(ctx, taskID, s.now())
	if err != nil {
		if errors.Is(err, entities.ErrNoActiveTracking) {
			return nil, entities.ErrNoActiveTracking
		}
		return nil, fmt.Errorf("close interval: %w", err)
	}

	s.logger.Info("Time tracking stopped", "interval_id", interval.ID, "task_id", taskID, "duration", interval.Duration())

	return interval, nil
}

// History returns the task's closed intervals, most recent first. Open
// intervals are excluded; the result is a point-in-time snapshot.
func (s *TimeTrackingService) History(ctx context.Context, taskID uuid.UUID) ([]*entities.TimeInterval, error) {
	intervals, err := s.intervalRepo.ListClosedByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("list closed intervals: %w", err)
	}

	return intervals, nil
}

// ActiveStatus reports whether the task has an open interval. It never
// fails for a well-formed task id.
func (s *TimeTrackingService) ActiveStatus(ctx context.Context, taskID uuid.UUID) (*ports.TrackingStatus, error) {
	interval, err := s.intervalRepo.GetOpenByTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, entities.ErrNoActiveTracking) {
			return &ports.TrackingStatus{IsActive: false}, nil
		}
		return nil, fmt.Errorf("get open interval: %w", err)
	}

	return &ports.TrackingStatus{IsActive: true, TrackingData: interval}, nil
}

// Summary recomputes the daily and monthly totals from closed intervals.
// The daily window opens at local midnight of the current day, the monthly
// window at 00:00 of day 1; both run up to now. Totals are always rebuilt
// from source records rather than kept as counters.
func (s *TimeTrackingService) Summary(ctx context.Context) (*ports.TrackingSummary, error) {
	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	daily, err := s.sumClosedSince(ctx, startOfDay)
	if err != nil {
		return nil, err
	}

	monthly, err := s.sumClosedSince(ctx, startOfMonth)
	if err != nil {
		return nil, err
	}

	return &ports.TrackingSummary{
		DailyTotal:   FormatDuration(daily),
		MonthlyTotal: FormatDuration(monthly),
	}, nil
}

func (s *TimeTrackingService) sumClosedSince(ctx context.Context, since time.Time) (time.Duration, error) {
	intervals, err := s.intervalRepo.ListClosedSince(ctx, since)
	if err != nil {
		return 0, fmt.Errorf("list closed intervals since %s: %w", since.Format(time.RFC3339), err)
	}

	var total time.Duration
	for _, interval := range intervals {
		total += interval.Duration()
	}

	return total, nil
}

// FormatDuration renders a duration as zero-padded HH:MM. Seconds are
// dropped, minutes always take 2 digits, hours take at least 2 and grow
// unbounded.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	totalSeconds := int64(d.Seconds())
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60

	return fmt.Sprintf("%02d:%02d", hours, minutes)
}
