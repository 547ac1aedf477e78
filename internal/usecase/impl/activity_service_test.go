package impl

import (
	"context"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldops/internal/domain/entity"
	domainerrors "fieldops/internal/domain/errors"
	"fieldops/internal/domain/service"
	"fieldops/internal/infra/persistence/memory"
	"fieldops/internal/usecase"
)

type activityServiceFixtures struct {
	service   usecase.ActivityUsecase
	dailyLogs *memory.DailyLogRepository
	publisher *capturingPublisher
}

func createTestActivityService(t *testing.T) activityServiceFixtures {
	t.Helper()

	dailyLogs := memory.NewDailyLogRepository()
	publisher := &capturingPublisher{}
	svc := NewActivityService(ActivityServiceParams{
		MeetingRepo:  memory.NewMeetingRepository(),
		SampleRepo:   memory.NewSampleRepository(),
		SaleRepo:     memory.NewSaleRepository(),
		DailyLogRepo: dailyLogs,
		Publisher:    publisher,
		Logger:       newDiscardLogger(),
	})

	return activityServiceFixtures{service: svc, dailyLogs: dailyLogs, publisher: publisher}
}

func assertAppErrorCode(t *testing.T, err error, want domainerrors.AppError) {
	t.Helper()
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, want.ErrorCode(), appErr.ErrorCode())
}

func TestActivityService_LogMeeting_OneOnOne(t *testing.T) {
	fx := createTestActivityService(t)
	ctx := context.Background()

	meeting, err := fx.service.LogMeeting(ctx, usecase.LogMeetingInput{
		UserID:   "u1",
		Type:     entity.MeetingTypeOneOnOne,
		Location: &usecase.LocationInput{Lat: 18.52, Lng: 73.85},
		OneOnOne: &entity.OneOnOneDetails{
			PersonName:     "Ravi",
			PersonCategory: entity.PersonCategoryFarmer,
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, meeting.ID)
	assert.False(t, meeting.Date.IsZero())

	events := fx.publisher.published()
	require.Len(t, events, 1)
	assert.Equal(t, service.EventMeetingLogged, events[0].EventType)
	assert.Equal(t, meeting.ID, events[0].RecordID)
}

func TestActivityService_LogMeeting_RejectsMismatchedDetails(t *testing.T) {
	fx := createTestActivityService(t)
	ctx := context.Background()

	// Group type but one-on-one details.
	_, err := fx.service.LogMeeting(ctx, usecase.LogMeetingInput{
		UserID:   "u1",
		Type:     entity.MeetingTypeGroup,
		OneOnOne: &entity.OneOnOneDetails{PersonName: "Ravi", PersonCategory: entity.PersonCategoryFarmer},
	})
	assertAppErrorCode(t, err, domainerrors.ErrValidationFailed)

	// No details at all.
	_, err = fx.service.LogMeeting(ctx, usecase.LogMeetingInput{UserID: "u1", Type: entity.MeetingTypeOneOnOne})
	assertAppErrorCode(t, err, domainerrors.ErrValidationFailed)

	assert.Empty(t, fx.publisher.published())
}

func TestActivityService_LogMeeting_RejectsBadCoordinates(t *testing.T) {
	fx := createTestActivityService(t)

	_, err := fx.service.LogMeeting(context.Background(), usecase.LogMeetingInput{
		UserID:   "u1",
		Type:     entity.MeetingTypeOneOnOne,
		Location: &usecase.LocationInput{Lat: math.NaN(), Lng: 73.85},
		OneOnOne: &entity.OneOnOneDetails{PersonName: "Ravi", PersonCategory: entity.PersonCategoryFarmer},
	})
	assertAppErrorCode(t, err, domainerrors.ErrValidationFailed)
}

func TestActivityService_RecordSample_Validation(t *testing.T) {
	fx := createTestActivityService(t)
	ctx := context.Background()

	valid := usecase.RecordSampleInput{
		UserID:        "u1",
		ProductSKU:    "bio-npk",
		Quantity:      2.5,
		RecipientName: "Ravi",
		RecipientType: entity.RecipientTypeFarmer,
		Purpose:       entity.SamplePurposeTrial,
	}

	sample, err := fx.service.RecordSample(ctx, valid)
	require.NoError(t, err)
	assert.Equal(t, "bio-npk", sample.ProductSKU)

	missingSKU := valid
	missingSKU.ProductSKU = ""
	_, err = fx.service.RecordSample(ctx, missingSKU)
	assertAppErrorCode(t, err, domainerrors.ErrValidationFailed)

	zeroQuantity := valid
	zeroQuantity.Quantity = 0
	_, err = fx.service.RecordSample(ctx, zeroQuantity)
	assertAppErrorCode(t, err, domainerrors.ErrValidationFailed)

	badRecipient := valid
	badRecipient.RecipientType = entity.RecipientType("tourist")
	_, err = fx.service.RecordSample(ctx, badRecipient)
	assertAppErrorCode(t, err, domainerrors.ErrValidationFailed)
}

func TestActivityService_RecordSale_Validation(t *testing.T) {
	fx := createTestActivityService(t)
	ctx := context.Background()

	valid := usecase.RecordSaleInput{
		UserID:     "u1",
		Type:       entity.SaleTypeB2C,
		ProductSKU: "bio-npk",
		PackSize:   "1L",
		Quantity:   3,
		Mode:       entity.SaleModeDirect,
		Amount:     decimal.NewFromInt(1500),
	}

	sale, err := fx.service.RecordSale(ctx, valid)
	require.NoError(t, err)
	assert.True(t, sale.Amount.Equal(decimal.NewFromInt(1500)))

	negative := valid
	negative.Amount = decimal.NewFromInt(-1)
	_, err = fx.service.RecordSale(ctx, negative)
	assertAppErrorCode(t, err, domainerrors.ErrValidationFailed)

	badMode := valid
	badMode.Mode = entity.SaleMode("teleport")
	_, err = fx.service.RecordSale(ctx, badMode)
	assertAppErrorCode(t, err, domainerrors.ErrValidationFailed)
}

func TestActivityService_StartDay_RejectsSecondOpenDay(t *testing.T) {
	fx := createTestActivityService(t)
	ctx := context.Background()

	first, err := fx.service.StartDay(ctx, usecase.StartDayInput{UserID: "u1"})
	require.NoError(t, err)
	require.NotNil(t, first)

	_, err = fx.service.StartDay(ctx, usecase.StartDayInput{UserID: "u1"})
	assertAppErrorCode(t, err, domainerrors.ErrDayAlreadyOpen)

	// A different user is unaffected.
	_, err = fx.service.StartDay(ctx, usecase.StartDayInput{UserID: "u2"})
	require.NoError(t, err)
}

func TestActivityService_EndDay_OdometerWins(t *testing.T) {
	fx := createTestActivityService(t)
	ctx := context.Background()

	start := 1000
	day, err := fx.service.StartDay(ctx, usecase.StartDayInput{
		UserID:        "u1",
		Location:      &usecase.LocationInput{Lat: 18.52, Lng: 73.85},
		OdometerStart: &start,
	})
	require.NoError(t, err)

	end := 1042
	closed, err := fx.service.EndDay(ctx, usecase.EndDayInput{
		UserID:      "u1",
		LogID:       day.ID,
		Location:    &usecase.LocationInput{Lat: 18.60, Lng: 73.90},
		OdometerEnd: &end,
	})
	require.NoError(t, err)
	require.NotNil(t, closed.DistanceTraveled)
	assert.InDelta(t, 42.0, *closed.DistanceTraveled, 1e-9)
	assert.True(t, closed.Ended())

	// The open-day marker is released.
	current, err := fx.service.CurrentDay(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestActivityService_EndDay_FallsBackToTrackedPath(t *testing.T) {
	fx := createTestActivityService(t)
	ctx := context.Background()

	day, err := fx.service.StartDay(ctx, usecase.StartDayInput{
		UserID:   "u1",
		Location: &usecase.LocationInput{Lat: 18.52, Lng: 73.85},
	})
	require.NoError(t, err)

	require.NoError(t, fx.service.AppendLocation(ctx, usecase.AppendLocationInput{
		UserID:   "u1",
		Location: usecase.LocationInput{Lat: 18.53, Lng: 73.86},
	}))

	closed, err := fx.service.EndDay(ctx, usecase.EndDayInput{
		UserID:   "u1",
		LogID:    day.ID,
		Location: &usecase.LocationInput{Lat: 18.54, Lng: 73.87},
	})
	require.NoError(t, err)
	require.NotNil(t, closed.DistanceTraveled)
	assert.Greater(t, *closed.DistanceTraveled, 0.0)
	assert.Less(t, *closed.DistanceTraveled, 10.0)
}

func TestActivityService_EndDay_Errors(t *testing.T) {
	fx := createTestActivityService(t)
	ctx := context.Background()

	_, err := fx.service.EndDay(ctx, usecase.EndDayInput{UserID: "u1", LogID: "missing"})
	assertAppErrorCode(t, err, domainerrors.ErrLogNotFound)

	day, err := fx.service.StartDay(ctx, usecase.StartDayInput{UserID: "u1"})
	require.NoError(t, err)

	_, err = fx.service.EndDay(ctx, usecase.EndDayInput{UserID: "u2", LogID: day.ID})
	assertAppErrorCode(t, err, domainerrors.ErrForbidden)

	_, err = fx.service.EndDay(ctx, usecase.EndDayInput{UserID: "u1", LogID: day.ID})
	require.NoError(t, err)

	_, err = fx.service.EndDay(ctx, usecase.EndDayInput{UserID: "u1", LogID: day.ID})
	assertAppErrorCode(t, err, domainerrors.ErrDayAlreadyEnded)
}

func TestActivityService_AppendLocation_RequiresOpenDay(t *testing.T) {
	fx := createTestActivityService(t)

	err := fx.service.AppendLocation(context.Background(), usecase.AppendLocationInput{
		UserID:   "u1",
		Location: usecase.LocationInput{Lat: 18.52, Lng: 73.85},
	})
	assertAppErrorCode(t, err, domainerrors.ErrNoOpenDay)
}

func TestActivityService_DayEventsPublished(t *testing.T) {
	fx := createTestActivityService(t)
	ctx := context.Background()

	day, err := fx.service.StartDay(ctx, usecase.StartDayInput{UserID: "u1"})
	require.NoError(t, err)

	_, err = fx.service.EndDay(ctx, usecase.EndDayInput{UserID: "u1", LogID: day.ID})
	require.NoError(t, err)

	events := fx.publisher.published()
	require.Len(t, events, 2)
	assert.Equal(t, service.EventDayStarted, events[0].EventType)
	assert.Equal(t, service.EventDayEnded, events[1].EventType)
}
