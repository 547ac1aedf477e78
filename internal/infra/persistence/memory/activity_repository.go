package memory

import (
	"context"
	"sync"

	"fieldops/internal/domain/entity"
	"fieldops/internal/domain/repository"
)

// MeetingRepository is an in-memory implementation of repository.MeetingRepository.
// Records are prepended so List is most-recent-first.
type MeetingRepository struct {
	mu       sync.RWMutex
	meetings []*entity.Meeting
}

func NewMeetingRepository() *MeetingRepository {
	return &MeetingRepository{}
}

func (r *MeetingRepository) Append(_ context.Context, meeting *entity.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *meeting
	r.meetings = append([]*entity.Meeting{&copied}, r.meetings...)

	return nil
}

func (r *MeetingRepository) List(_ context.Context) ([]*entity.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Meeting, len(r.meetings))
	copy(out, r.meetings)

	return out, nil
}

func (r *MeetingRepository) ListByUser(_ context.Context, userID string) ([]*entity.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.Meeting
	for _, meeting := range r.meetings {
		if meeting.UserID == userID {
			out = append(out, meeting)
		}
	}

	return out, nil
}

// SampleRepository is an in-memory implementation of repository.SampleRepository.
type SampleRepository struct {
	mu      sync.RWMutex
	samples []*entity.SampleDistribution
}

func NewSampleRepository() *SampleRepository {
	return &SampleRepository{}
}

func (r *SampleRepository) Append(_ context.Context, sample *entity.SampleDistribution) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *sample
	r.samples = append([]*entity.SampleDistribution{&copied}, r.samples...)

	return nil
}

func (r *SampleRepository) List(_ context.Context) ([]*entity.SampleDistribution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.SampleDistribution, len(r.samples))
	copy(out, r.samples)

	return out, nil
}

func (r *SampleRepository) ListByUser(_ context.Context, userID string) ([]*entity.SampleDistribution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.SampleDistribution
	for _, sample := range r.samples {
		if sample.UserID == userID {
			out = append(out, sample)
		}
	}

	return out, nil
}

// SaleRepository is an in-memory implementation of repository.SaleRepository.
type SaleRepository struct {
	mu    sync.RWMutex
	sales []*entity.Sale
}

func NewSaleRepository() *SaleRepository {
	return &SaleRepository{}
}

func (r *SaleRepository) Append(_ context.Context, sale *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *sale
	r.sales = append([]*entity.Sale{&copied}, r.sales...)

	return nil
}

func (r *SaleRepository) List(_ context.Context) ([]*entity.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Sale, len(r.sales))
	copy(out, r.sales)

	return out, nil
}

func (r *SaleRepository) ListByUser(_ context.Context, userID string) ([]*entity.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.Sale
	for _, sale := range r.sales {
		if sale.UserID == userID {
			out = append(out, sale)
		}
	}

	return out, nil
}

// DailyLogRepository is an in-memory implementation of repository.DailyLogRepository.
// openByUser tracks each user's single open day.
type DailyLogRepository struct {
	mu         sync.RWMutex
	logs       []*entity.DailyLog
	byID       map[string]*entity.DailyLog
	openByUser map[string]string
}

func NewDailyLogRepository() *DailyLogRepository {
	return &DailyLogRepository{
		byID:       make(map[string]*entity.DailyLog),
		openByUser: make(map[string]string),
	}
}

func (r *DailyLogRepository) Append(_ context.Context, log *entity.DailyLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := cloneDailyLog(log)
	r.logs = append([]*entity.DailyLog{copied}, r.logs...)
	r.byID[copied.ID] = copied

	return nil
}

func (r *DailyLogRepository) List(_ context.Context) ([]*entity.DailyLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.DailyLog, 0, len(r.logs))
	for _, log := range r.logs {
		out = append(out, cloneDailyLog(log))
	}

	return out, nil
}

func (r *DailyLogRepository) ListByUser(_ context.Context, userID string) ([]*entity.DailyLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.DailyLog
	for _, log := range r.logs {
		if log.UserID == userID {
			out = append(out, cloneDailyLog(log))
		}
	}

	return out, nil
}

func (r *DailyLogRepository) FindByID(_ context.Context, id string) (*entity.DailyLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	log, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrLogNotFound
	}

	return cloneDailyLog(log), nil
}

func (r *DailyLogRepository) Update(_ context.Context, log *entity.DailyLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[log.ID]
	if !ok {
		return repository.ErrLogNotFound
	}

	*stored = *cloneDailyLog(log)

	return nil
}

func (r *DailyLogRepository) OpenLog(_ context.Context, userID string) (*entity.DailyLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	logID, ok := r.openByUser[userID]
	if !ok {
		return nil, nil
	}

	log, ok := r.byID[logID]
	if !ok {
		return nil, nil
	}

	return cloneDailyLog(log), nil
}

// StartDay holds the write lock across the open-day check and the insert,
// so concurrent starts by one user cannot both succeed.
func (r *DailyLogRepository) StartDay(_ context.Context, log *entity.DailyLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, open := r.openByUser[log.UserID]; open {
		return repository.ErrDayAlreadyOpen
	}

	copied := cloneDailyLog(log)
	r.logs = append([]*entity.DailyLog{copied}, r.logs...)
	r.byID[copied.ID] = copied
	r.openByUser[copied.UserID] = copied.ID

	return nil
}

func (r *DailyLogRepository) ClearOpen(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.openByUser, userID)

	return nil
}

// cloneDailyLog deep-copies a log so callers cannot mutate stored state
// through the LocationHistory slice or pointer fields.
func cloneDailyLog(log *entity.DailyLog) *entity.DailyLog {
	copied := *log
	if log.LocationHistory != nil {
		copied.LocationHistory = make([]entity.Location, len(log.LocationHistory))
		copy(copied.LocationHistory, log.LocationHistory)
	}
	if log.EndTime != nil {
		endTime := *log.EndTime
		copied.EndTime = &endTime
	}
	if log.StartLocation != nil {
		startLocation := *log.StartLocation
		copied.StartLocation = &startLocation
	}
	if log.EndLocation != nil {
		endLocation := *log.EndLocation
		copied.EndLocation = &endLocation
	}
	if log.OdometerStart != nil {
		odo := *log.OdometerStart
		copied.OdometerStart = &odo
	}
	if log.OdometerEnd != nil {
		odo := *log.OdometerEnd
		copied.OdometerEnd = &odo
	}
	if log.DistanceTraveled != nil {
		dist := *log.DistanceTraveled
		copied.DistanceTraveled = &dist
	}

	return &copied
}
