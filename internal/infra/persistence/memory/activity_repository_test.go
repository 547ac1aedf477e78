package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldops/internal/domain/entity"
	"fieldops/internal/domain/repository"
)

func TestMeetingRepository_AppendIsMostRecentFirst(t *testing.T) {
	repo := NewMeetingRepository()
	ctx := context.Background()

	first := &entity.Meeting{ID: "m1", UserID: "u1", Type: entity.MeetingTypeOneOnOne}
	second := &entity.Meeting{ID: "m2", UserID: "u1", Type: entity.MeetingTypeGroup}
	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, second))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "m2", list[0].ID)
	assert.Equal(t, "m1", list[1].ID)
}

func TestMeetingRepository_ListByUser(t *testing.T) {
	repo := NewMeetingRepository()
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, &entity.Meeting{ID: "m1", UserID: "u1"}))
	require.NoError(t, repo.Append(ctx, &entity.Meeting{ID: "m2", UserID: "u2"}))
	require.NoError(t, repo.Append(ctx, &entity.Meeting{ID: "m3", UserID: "u1"}))

	mine, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "m3", mine[0].ID)
	assert.Equal(t, "m1", mine[1].ID)

	none, err := repo.ListByUser(ctx, "u3")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDailyLogRepository_OpenDayLifecycle(t *testing.T) {
	repo := NewDailyLogRepository()
	ctx := context.Background()

	open, err := repo.OpenLog(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, open)

	log := &entity.DailyLog{ID: "d1", UserID: "u1", StartTime: time.Now()}
	require.NoError(t, repo.StartDay(ctx, log))

	open, err = repo.OpenLog(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.Equal(t, "d1", open.ID)

	// Close the day and verify the marker clears.
	endTime := time.Now()
	open.EndTime = &endTime
	require.NoError(t, repo.Update(ctx, open))
	require.NoError(t, repo.ClearOpen(ctx, "u1"))

	open, err = repo.OpenLog(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, open)

	stored, err := repo.FindByID(ctx, "d1")
	require.NoError(t, err)
	assert.True(t, stored.Ended())
}

func TestDailyLogRepository_StartDayIsExclusive(t *testing.T) {
	repo := NewDailyLogRepository()
	ctx := context.Background()

	require.NoError(t, repo.StartDay(ctx, &entity.DailyLog{ID: "d1", UserID: "u1"}))
	err := repo.StartDay(ctx, &entity.DailyLog{ID: "d2", UserID: "u1"})
	assert.ErrorIs(t, err, repository.ErrDayAlreadyOpen)

	// A different user is unaffected.
	require.NoError(t, repo.StartDay(ctx, &entity.DailyLog{ID: "d3", UserID: "u2"}))

	// After the day closes, the user may start again.
	require.NoError(t, repo.ClearOpen(ctx, "u1"))
	require.NoError(t, repo.StartDay(ctx, &entity.DailyLog{ID: "d4", UserID: "u1"}))
}

func TestDailyLogRepository_StartDayConcurrent(t *testing.T) {
	repo := NewDailyLogRepository()
	ctx := context.Background()

	const attempts = 16
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			errs <- repo.StartDay(ctx, &entity.DailyLog{ID: fmt.Sprintf("d%d", n), UserID: "u1"})
		}(i)
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, repository.ErrDayAlreadyOpen)
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestDailyLogRepository_UpdatePreservesListPosition(t *testing.T) {
	repo := NewDailyLogRepository()
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, &entity.DailyLog{ID: "d1", UserID: "u1"}))
	require.NoError(t, repo.Append(ctx, &entity.DailyLog{ID: "d2", UserID: "u1"}))

	older, err := repo.FindByID(ctx, "d1")
	require.NoError(t, err)
	distance := 42.5
	older.DistanceTraveled = &distance
	require.NoError(t, repo.Update(ctx, older))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "d2", list[0].ID)
	assert.Equal(t, "d1", list[1].ID)
	require.NotNil(t, list[1].DistanceTraveled)
	assert.InDelta(t, 42.5, *list[1].DistanceTraveled, 1e-9)
}

func TestDailyLogRepository_UnknownID(t *testing.T) {
	repo := NewDailyLogRepository()
	ctx := context.Background()

	_, err := repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrLogNotFound)

	err = repo.Update(ctx, &entity.DailyLog{ID: "missing"})
	assert.ErrorIs(t, err, repository.ErrLogNotFound)
}

func TestDailyLogRepository_CallerCannotMutateStoredHistory(t *testing.T) {
	repo := NewDailyLogRepository()
	ctx := context.Background()

	log := &entity.DailyLog{
		ID:              "d1",
		UserID:          "u1",
		LocationHistory: []entity.Location{{Lat: 1, Lng: 2}},
	}
	require.NoError(t, repo.Append(ctx, log))

	fetched, err := repo.FindByID(ctx, "d1")
	require.NoError(t, err)
	fetched.LocationHistory[0].Lat = 99

	again, err := repo.FindByID(ctx, "d1")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, again.LocationHistory[0].Lat, 1e-9)
}

func TestSaleRepository_AppendIsMostRecentFirst(t *testing.T) {
	repo := NewSaleRepository()
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, &entity.Sale{ID: "s1", UserID: "u1"}))
	require.NoError(t, repo.Append(ctx, &entity.Sale{ID: "s2", UserID: "u1"}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "s2", list[0].ID)
}

func TestSampleRepository_ListByUser(t *testing.T) {
	repo := NewSampleRepository()
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, &entity.SampleDistribution{ID: "sd1", UserID: "u1"}))
	require.NoError(t, repo.Append(ctx, &entity.SampleDistribution{ID: "sd2", UserID: "u2"}))

	mine, err := repo.ListByUser(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "sd2", mine[0].ID)
}
