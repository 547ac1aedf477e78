package impl

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "fieldops/internal/delivery/context"
	"fieldops/internal/domain/entity"
	domainerrors "fieldops/internal/domain/errors"
	"fieldops/internal/domain/repository"
	"fieldops/internal/domain/service"
	"fieldops/internal/usecase"
)

// activityService implements the ActivityUsecase interface.
type activityService struct {
	meetingRepo  repository.MeetingRepository
	sampleRepo   repository.SampleRepository
	saleRepo     repository.SaleRepository
	dailyLogRepo repository.DailyLogRepository
	publisher    service.EventPublisher
	logger       *slog.Logger
}

// ActivityServiceParams holds dependencies for ActivityService, injected by Fx.
type ActivityServiceParams struct {
	fx.In

	MeetingRepo  repository.MeetingRepository
	SampleRepo   repository.SampleRepository
	SaleRepo     repository.SaleRepository
	DailyLogRepo repository.DailyLogRepository
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewActivityService is the constructor for activityService.
func NewActivityService(params ActivityServiceParams) usecase.ActivityUsecase {
	return &activityService{
		meetingRepo:  params.MeetingRepo,
		sampleRepo:   params.SampleRepo,
		saleRepo:     params.SaleRepo,
		dailyLogRepo: params.DailyLogRepo,
		publisher:    params.Publisher,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *activityService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// publish sends a field event best-effort. A publish failure never fails the
// write that triggered it.
func (srv *activityService) publish(ctx context.Context, event *service.FieldEvent) {
	event.RequestID = deliverycontext.GetRequestIDFromContext(ctx)
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	if err := srv.publisher.PublishFieldEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish field event",
			slog.String("eventType", event.EventType),
			slog.String("recordID", event.RecordID),
			slog.String("error", err.Error()),
		)
	}
}

// toLocation converts a location input, validating coordinate ranges.
func toLocation(input *usecase.LocationInput) (*entity.Location, error) {
	if input == nil {
		return nil, nil
	}
	if math.IsNaN(input.Lat) || math.IsInf(input.Lat, 0) ||
		math.IsNaN(input.Lng) || math.IsInf(input.Lng, 0) {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("coordinates must be finite numbers")
	}
	if input.Lat < -90 || input.Lat > 90 || input.Lng < -180 || input.Lng > 180 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("coordinates out of range")
	}

	now := time.Now()

	return &entity.Location{
		Lat:        input.Lat,
		Lng:        input.Lng,
		Address:    input.Address,
		CapturedAt: &now,
	}, nil
}

// normalizeDate defaults a zero date to now.
func normalizeDate(date time.Time) time.Time {
	if date.IsZero() {
		return time.Now()
	}

	return date
}

// LogMeeting validates and stores a meeting record.
func (srv *activityService) LogMeeting(ctx context.Context, input usecase.LogMeetingInput) (*entity.Meeting, error) {
	location, err := toLocation(input.Location)
	if err != nil {
		return nil, err
	}

	meeting := &entity.Meeting{
		ID:       uuid.NewString(),
		Type:     input.Type,
		UserID:   input.UserID,
		Date:     normalizeDate(input.Date),
		Location: location,
		Notes:    input.Notes,
		Photos:   input.Photos,
		OneOnOne: input.OneOnOne,
		Group:    input.Group,
	}
	if err := meeting.Validate(); err != nil {
		return nil, domainerrors.ErrValidationFailed.Wrap(err)
	}

	if err := srv.meetingRepo.Append(ctx, meeting); err != nil {
		return nil, errors.Wrap(err, "failed to store meeting")
	}

	srv.log(ctx).Info("Meeting logged",
		slog.String("meetingID", meeting.ID),
		slog.Any("type", meeting.Type),
	)
	srv.publish(ctx, &service.FieldEvent{
		EventType:  service.EventMeetingLogged,
		RecordID:   meeting.ID,
		UserID:     meeting.UserID,
		OccurredAt: meeting.Date,
	})

	return meeting, nil
}

// RecordSample validates and stores a sample distribution record.
func (srv *activityService) RecordSample(ctx context.Context, input usecase.RecordSampleInput) (*entity.SampleDistribution, error) {
	if input.ProductSKU == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("product SKU is required")
	}
	if math.IsNaN(input.Quantity) || math.IsInf(input.Quantity, 0) || input.Quantity <= 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("quantity must be a positive number")
	}
	if !input.RecipientType.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown recipient type")
	}
	if !input.Purpose.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown sample purpose")
	}

	location, err := toLocation(input.Location)
	if err != nil {
		return nil, err
	}

	sample := &entity.SampleDistribution{
		ID:            uuid.NewString(),
		UserID:        input.UserID,
		Date:          normalizeDate(input.Date),
		ProductSKU:    input.ProductSKU,
		Quantity:      input.Quantity,
		RecipientName: input.RecipientName,
		RecipientType: input.RecipientType,
		Purpose:       input.Purpose,
		Location:      location,
		Notes:         input.Notes,
	}

	if err := srv.sampleRepo.Append(ctx, sample); err != nil {
		return nil, errors.Wrap(err, "failed to store sample distribution")
	}

	srv.log(ctx).Info("Sample distribution recorded",
		slog.String("sampleID", sample.ID),
		slog.String("productSKU", sample.ProductSKU),
	)
	srv.publish(ctx, &service.FieldEvent{
		EventType:  service.EventSampleRecorded,
		RecordID:   sample.ID,
		UserID:     sample.UserID,
		OccurredAt: sample.Date,
		ProductSKU: sample.ProductSKU,
	})

	return sample, nil
}

// RecordSale validates and stores a sale record.
func (srv *activityService) RecordSale(ctx context.Context, input usecase.RecordSaleInput) (*entity.Sale, error) {
	if input.ProductSKU == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("product SKU is required")
	}
	if input.Quantity <= 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("quantity must be positive")
	}
	if input.Amount.IsNegative() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("amount must not be negative")
	}
	if !input.Type.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown sale type")
	}
	if !input.Mode.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown sale mode")
	}

	location, err := toLocation(input.Location)
	if err != nil {
		return nil, err
	}

	sale := &entity.Sale{
		ID:              uuid.NewString(),
		UserID:          input.UserID,
		Date:            normalizeDate(input.Date),
		Type:            input.Type,
		ProductSKU:      input.ProductSKU,
		PackSize:        input.PackSize,
		Quantity:        input.Quantity,
		Mode:            input.Mode,
		IsRepeatOrder:   input.IsRepeatOrder,
		CustomerName:    input.CustomerName,
		CustomerContact: input.CustomerContact,
		Location:        location,
		Amount:          input.Amount,
	}

	if err := srv.saleRepo.Append(ctx, sale); err != nil {
		return nil, errors.Wrap(err, "failed to store sale")
	}

	srv.log(ctx).Info("Sale recorded",
		slog.String("saleID", sale.ID),
		slog.String("productSKU", sale.ProductSKU),
	)
	srv.publish(ctx, &service.FieldEvent{
		EventType:  service.EventSaleRecorded,
		RecordID:   sale.ID,
		UserID:     sale.UserID,
		OccurredAt: sale.Date,
		ProductSKU: sale.ProductSKU,
	})

	return sale, nil
}

// StartDay opens a new work day for the caller. The open-day check and the
// insert happen inside the repository, under one lock.
func (srv *activityService) StartDay(ctx context.Context, input usecase.StartDayInput) (*entity.DailyLog, error) {
	location, err := toLocation(input.Location)
	if err != nil {
		return nil, err
	}
	if input.OdometerStart != nil && *input.OdometerStart < 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("odometer reading must not be negative")
	}

	now := time.Now()
	log := &entity.DailyLog{
		ID:            uuid.NewString(),
		UserID:        input.UserID,
		Date:          now,
		StartTime:     now,
		StartLocation: location,
		OdometerStart: input.OdometerStart,
	}
	if location != nil {
		log.LocationHistory = []entity.Location{*location}
	}

	if err := srv.dailyLogRepo.StartDay(ctx, log); err != nil {
		if errors.Is(err, repository.ErrDayAlreadyOpen) {
			return nil, domainerrors.ErrDayAlreadyOpen.WrapMessage("a work day is already in progress")
		}

		return nil, errors.Wrap(err, "failed to store daily log")
	}

	srv.log(ctx).Info("Work day started", slog.String("logID", log.ID))
	srv.publish(ctx, &service.FieldEvent{
		EventType:  service.EventDayStarted,
		RecordID:   log.ID,
		UserID:     log.UserID,
		OccurredAt: log.StartTime,
	})

	return log, nil
}

// EndDay closes a work day and computes the distance traveled. Odometer
// readings win; otherwise the tracked path length is used.
func (srv *activityService) EndDay(ctx context.Context, input usecase.EndDayInput) (*entity.DailyLog, error) {
	log, err := srv.dailyLogRepo.FindByID(ctx, input.LogID)
	if err != nil {
		if errors.Is(err, repository.ErrLogNotFound) {
			return nil, domainerrors.ErrLogNotFound.WrapMessage("no such work day")
		}

		return nil, errors.Wrap(err, "failed to load daily log")
	}
	if log.UserID != input.UserID {
		return nil, domainerrors.ErrForbidden.WrapMessage("work day belongs to another user")
	}
	if log.Ended() {
		return nil, domainerrors.ErrDayAlreadyEnded.WrapMessage("work day is already closed")
	}

	location, err := toLocation(input.Location)
	if err != nil {
		return nil, err
	}
	if input.OdometerEnd != nil && *input.OdometerEnd < 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("odometer reading must not be negative")
	}

	now := time.Now()
	log.EndTime = &now
	log.EndLocation = location
	log.OdometerEnd = input.OdometerEnd
	if location != nil {
		log.LocationHistory = append(log.LocationHistory, *location)
	}

	distance := computeDistance(log)
	log.DistanceTraveled = &distance

	if err := srv.dailyLogRepo.Update(ctx, log); err != nil {
		return nil, errors.Wrap(err, "failed to update daily log")
	}
	if err := srv.dailyLogRepo.ClearOpen(ctx, input.UserID); err != nil {
		return nil, errors.Wrap(err, "failed to clear open day")
	}

	srv.log(ctx).Info("Work day ended",
		slog.String("logID", log.ID),
		slog.Float64("distanceKm", distance),
	)
	srv.publish(ctx, &service.FieldEvent{
		EventType:  service.EventDayEnded,
		RecordID:   log.ID,
		UserID:     log.UserID,
		OccurredAt: now,
	})

	return log, nil
}

// computeDistance prefers the odometer difference; a missing or inconsistent
// pair falls back to the tracked GPS path.
func computeDistance(log *entity.DailyLog) float64 {
	if log.OdometerStart != nil && log.OdometerEnd != nil && *log.OdometerEnd >= *log.OdometerStart {
		return float64(*log.OdometerEnd - *log.OdometerStart)
	}

	return entity.PathDistanceKm(log.LocationHistory)
}

// AppendLocation records a tracking point on the caller's open day.
func (srv *activityService) AppendLocation(ctx context.Context, input usecase.AppendLocationInput) error {
	log, err := srv.dailyLogRepo.OpenLog(ctx, input.UserID)
	if err != nil {
		return errors.Wrap(err, "failed to check open day")
	}
	if log == nil {
		return domainerrors.ErrNoOpenDay.WrapMessage("no work day in progress")
	}

	location, err := toLocation(&input.Location)
	if err != nil {
		return err
	}

	log.LocationHistory = append(log.LocationHistory, *location)

	return errors.Wrap(srv.dailyLogRepo.Update(ctx, log), "failed to update daily log")
}

// CurrentDay returns the caller's open day, or nil when none is open.
func (srv *activityService) CurrentDay(ctx context.Context, userID string) (*entity.DailyLog, error) {
	log, err := srv.dailyLogRepo.OpenLog(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load open day")
	}

	return log, nil
}

func (srv *activityService) ListMeetings(ctx context.Context, userID string) ([]*entity.Meeting, error) {
	return srv.meetingRepo.ListByUser(ctx, userID)
}

func (srv *activityService) ListSamples(ctx context.Context, userID string) ([]*entity.SampleDistribution, error) {
	return srv.sampleRepo.ListByUser(ctx, userID)
}

func (srv *activityService) ListSales(ctx context.Context, userID string) ([]*entity.Sale, error) {
	return srv.saleRepo.ListByUser(ctx, userID)
}

func (srv *activityService) ListDailyLogs(ctx context.Context, userID string) ([]*entity.DailyLog, error) {
	return srv.dailyLogRepo.ListByUser(ctx, userID)
}

func (srv *activityService) ListAllMeetings(ctx context.Context) ([]*entity.Meeting, error) {
	return srv.meetingRepo.List(ctx)
}

func (srv *activityService) ListAllSamples(ctx context.Context) ([]*entity.SampleDistribution, error) {
	return srv.sampleRepo.List(ctx)
}

func (srv *activityService) ListAllSales(ctx context.Context) ([]*entity.Sale, error) {
	return srv.saleRepo.List(ctx)
}

func (srv *activityService) ListAllDailyLogs(ctx context.Context) ([]*entity.DailyLog, error) {
	return srv.dailyLogRepo.List(ctx)
}
