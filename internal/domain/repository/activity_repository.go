package repository

import (
	"context"
	"errors"

	"fieldops/internal/domain/entity"
)

// ErrLogNotFound is returned when a referenced activity record does not exist.
var ErrLogNotFound = errors.New("log not found")

// ErrDayAlreadyOpen is returned by StartDay when the user already has an
// open day.
var ErrDayAlreadyOpen = errors.New("day already open")

// MeetingRepository stores logged meetings. Append prepends so that List
// returns records most-recent-first without sorting.
type MeetingRepository interface {
	Append(ctx context.Context, meeting *entity.Meeting) error
	List(ctx context.Context) ([]*entity.Meeting, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Meeting, error)
}

// SampleRepository stores sample distribution records, most-recent-first.
type SampleRepository interface {
	Append(ctx context.Context, sample *entity.SampleDistribution) error
	List(ctx context.Context) ([]*entity.SampleDistribution, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.SampleDistribution, error)
}

// SaleRepository stores sale records, most-recent-first.
type SaleRepository interface {
	Append(ctx context.Context, sale *entity.Sale) error
	List(ctx context.Context) ([]*entity.Sale, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Sale, error)
}

// DailyLogRepository stores work-day logs and tracks the single open day
// per user. At most one log per user may have no end time.
type DailyLogRepository interface {
	Append(ctx context.Context, log *entity.DailyLog) error
	List(ctx context.Context) ([]*entity.DailyLog, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.DailyLog, error)

	// FindByID retrieves a log by id. Returns ErrLogNotFound when absent.
	FindByID(ctx context.Context, id string) (*entity.DailyLog, error)

	// Update replaces a stored log in place, preserving its list position.
	// Returns ErrLogNotFound when the id is unknown.
	Update(ctx context.Context, log *entity.DailyLog) error

	// OpenLog returns the user's currently open log, or (nil, nil) when
	// the user has no open day.
	OpenLog(ctx context.Context, userID string) (*entity.DailyLog, error)

	// StartDay stores the log and marks it as the user's open day in one
	// step, so two concurrent starts cannot both pass the open-day check.
	// Returns ErrDayAlreadyOpen when the user already has an open day.
	StartDay(ctx context.Context, log *entity.DailyLog) error

	// ClearOpen removes the user's open-day marker.
	ClearOpen(ctx context.Context, userID string) error
}
