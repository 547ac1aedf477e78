package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fieldops/internal/domain/entity"
)

// --- Input DTOs ---

// LocationInput carries a captured GPS point. Zero is a legitimate
// coordinate, so range checks live in the tags rather than required.
type LocationInput struct {
	Lat     float64 `json:"lat" validate:"latitude"`
	Lng     float64 `json:"lng" validate:"longitude"`
	Address string  `json:"address"`
}

// LogMeetingInput defines the data required to log a meeting.
type LogMeetingInput struct {
	UserID   string
	Type     entity.MeetingType
	Date     time.Time
	Location *LocationInput
	Notes    string
	Photos   []string

	// Exactly one of the two detail blocks must be set, matching Type.
	OneOnOne *entity.OneOnOneDetails
	Group    *entity.GroupDetails
}

// RecordSampleInput defines the data required to record a sample distribution.
type RecordSampleInput struct {
	UserID        string
	Date          time.Time
	ProductSKU    string
	Quantity      float64
	RecipientName string
	RecipientType entity.RecipientType
	Purpose       entity.SamplePurpose
	Location      *LocationInput
	Notes         string
}

// RecordSaleInput defines the data required to record a sale.
type RecordSaleInput struct {
	UserID          string
	Date            time.Time
	Type            entity.SaleType
	ProductSKU      string
	PackSize        string
	Quantity        int
	Mode            entity.SaleMode
	IsRepeatOrder   bool
	CustomerName    string
	CustomerContact string
	Location        *LocationInput
	Amount          decimal.Decimal
}

// StartDayInput opens a work day.
type StartDayInput struct {
	UserID        string
	Location      *LocationInput
	OdometerStart *int
}

// EndDayInput closes the caller's open work day.
type EndDayInput struct {
	UserID      string
	LogID       string
	Location    *LocationInput
	OdometerEnd *int
}

// AppendLocationInput adds a tracking point to the open day.
type AppendLocationInput struct {
	UserID   string
	Location LocationInput
}

// ActivityUsecase defines the interface for field activity operations.
type ActivityUsecase interface {
	LogMeeting(ctx context.Context, input LogMeetingInput) (*entity.Meeting, error)
	RecordSample(ctx context.Context, input RecordSampleInput) (*entity.SampleDistribution, error)
	RecordSale(ctx context.Context, input RecordSaleInput) (*entity.Sale, error)

	// StartDay opens a work day; at most one day per user may be open.
	StartDay(ctx context.Context, input StartDayInput) (*entity.DailyLog, error)

	// EndDay closes the open day and computes the distance traveled from
	// the odometer readings, falling back to the tracked path.
	EndDay(ctx context.Context, input EndDayInput) (*entity.DailyLog, error)

	// AppendLocation records a tracking point on the caller's open day.
	AppendLocation(ctx context.Context, input AppendLocationInput) error

	// CurrentDay returns the caller's open day, or nil when none is open.
	CurrentDay(ctx context.Context, userID string) (*entity.DailyLog, error)

	ListMeetings(ctx context.Context, userID string) ([]*entity.Meeting, error)
	ListSamples(ctx context.Context, userID string) ([]*entity.SampleDistribution, error)
	ListSales(ctx context.Context, userID string) ([]*entity.Sale, error)
	ListDailyLogs(ctx context.Context, userID string) ([]*entity.DailyLog, error)

	// ListAll* return records across all users, for the admin views.
	ListAllMeetings(ctx context.Context) ([]*entity.Meeting, error)
	ListAllSamples(ctx context.Context) ([]*entity.SampleDistribution, error)
	ListAllSales(ctx context.Context) ([]*entity.Sale, error)
	ListAllDailyLogs(ctx context.Context) ([]*entity.DailyLog, error)
}
