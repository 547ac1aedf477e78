package impl

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	deliverycontext "fieldops/internal/delivery/context"
	"fieldops/internal/domain/entity"
	"fieldops/internal/domain/repository"
	"fieldops/internal/domain/service"
	"fieldops/internal/usecase"
)

// analyticsService implements the AnalyticsUsecase interface. Views are
// computed on demand from full snapshots of the stores.
type analyticsService struct {
	profileRepo  repository.ProfileRepository
	meetingRepo  repository.MeetingRepository
	sampleRepo   repository.SampleRepository
	saleRepo     repository.SaleRepository
	dailyLogRepo repository.DailyLogRepository
	catalog      service.CatalogService
	logger       *slog.Logger
}

// AnalyticsServiceParams holds dependencies for AnalyticsService, injected by Fx.
type AnalyticsServiceParams struct {
	fx.In

	ProfileRepo  repository.ProfileRepository
	MeetingRepo  repository.MeetingRepository
	SampleRepo   repository.SampleRepository
	SaleRepo     repository.SaleRepository
	DailyLogRepo repository.DailyLogRepository
	Catalog      service.CatalogService
	Logger       *slog.Logger
}

// NewAnalyticsService is the constructor for analyticsService.
func NewAnalyticsService(params AnalyticsServiceParams) usecase.AnalyticsUsecase {
	return &analyticsService{
		profileRepo:  params.ProfileRepo,
		meetingRepo:  params.MeetingRepo,
		sampleRepo:   params.SampleRepo,
		saleRepo:     params.SaleRepo,
		dailyLogRepo: params.DailyLogRepo,
		catalog:      params.Catalog,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *analyticsService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// StatsForUser summarizes one user's activity.
func (srv *analyticsService) StatsForUser(ctx context.Context, userID string) (*usecase.UserStats, error) {
	meetings, err := srv.meetingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list meetings")
	}
	samples, err := srv.sampleRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list samples")
	}
	sales, err := srv.saleRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sales")
	}
	logs, err := srv.dailyLogRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list daily logs")
	}

	stats := &usecase.UserStats{
		UserID:     userID,
		Meetings:   len(meetings),
		Samples:    len(samples),
		Sales:      len(sales),
		SalesTotal: decimal.Zero,
	}
	for _, meeting := range meetings {
		if meeting.Type == entity.MeetingTypeGroup {
			stats.GroupMeetings++
		}
	}
	for _, sale := range sales {
		stats.SalesTotal = stats.SalesTotal.Add(sale.Amount)
		if sale.IsRepeatOrder {
			stats.RepeatOrders++
		}
	}
	for _, log := range logs {
		if log.Ended() {
			stats.DaysWorked++
			if log.DistanceTraveled != nil {
				stats.DistanceKm += *log.DistanceTraveled
			}
		}
	}

	return stats, nil
}

// Overview aggregates activity across every user.
func (srv *analyticsService) Overview(ctx context.Context) (*usecase.OverviewStats, error) {
	profiles, err := srv.profileRepo.ListProfiles(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list profiles")
	}
	meetings, err := srv.meetingRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list meetings")
	}
	samples, err := srv.sampleRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list samples")
	}
	sales, err := srv.saleRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sales")
	}

	overview := &usecase.OverviewStats{
		Meetings:   len(meetings),
		Samples:    len(samples),
		Sales:      len(sales),
		SalesTotal: decimal.Zero,
	}
	for _, profile := range profiles {
		if profile.Role != entity.RoleAdmin {
			overview.Users++
		}
	}
	for _, meeting := range meetings {
		if meeting.OneOnOne != nil && meeting.OneOnOne.PersonCategory == entity.PersonCategoryFarmer {
			overview.FarmersReached++
		}
	}
	for _, sample := range samples {
		overview.SampleVolume += sample.Quantity
	}
	for _, sale := range sales {
		overview.SalesTotal = overview.SalesTotal.Add(sale.Amount)
		switch sale.Type {
		case entity.SaleTypeB2C:
			overview.SalesB2C++
		case entity.SaleTypeB2B:
			overview.SalesB2B++
		}
	}

	srv.log(ctx).Debug("Overview computed", slog.Int("users", overview.Users))

	return overview, nil
}

// StateRollups groups activity by the state each user registered under.
// Activity from users without a stored state lands in the empty-state bucket.
func (srv *analyticsService) StateRollups(ctx context.Context) ([]*usecase.StateRollup, error) {
	profiles, err := srv.profileRepo.ListProfiles(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list profiles")
	}
	meetings, err := srv.meetingRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list meetings")
	}
	samples, err := srv.sampleRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list samples")
	}
	sales, err := srv.saleRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sales")
	}

	stateByUser := make(map[string]string, len(profiles))
	rollups := make(map[string]*usecase.StateRollup)
	rollupFor := func(state string) *usecase.StateRollup {
		rollup, ok := rollups[state]
		if !ok {
			rollup = &usecase.StateRollup{State: state, SalesTotal: decimal.Zero}
			rollups[state] = rollup
		}

		return rollup
	}

	for _, profile := range profiles {
		stateByUser[profile.IdentityID] = profile.State
		if profile.Role != entity.RoleAdmin {
			rollupFor(profile.State).Users++
		}
	}
	for _, meeting := range meetings {
		rollupFor(stateByUser[meeting.UserID]).Meetings++
	}
	for _, sample := range samples {
		rollupFor(stateByUser[sample.UserID]).Samples++
	}
	for _, sale := range sales {
		rollup := rollupFor(stateByUser[sale.UserID])
		rollup.Sales++
		rollup.SalesTotal = rollup.SalesTotal.Add(sale.Amount)
	}

	out := make([]*usecase.StateRollup, 0, len(rollups))
	for _, rollup := range rollups {
		out = append(out, rollup)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].State < out[j].State })

	return out, nil
}

// MonthlySeries buckets meetings and sales by calendar month. Keys are
// YYYY-MM, so lexicographic order is chronological.
func (srv *analyticsService) MonthlySeries(ctx context.Context, userID string) ([]*usecase.MonthlyPoint, error) {
	meetings, err := srv.listMeetings(ctx, userID)
	if err != nil {
		return nil, err
	}
	sales, err := srv.listSales(ctx, userID)
	if err != nil {
		return nil, err
	}

	points := make(map[string]*usecase.MonthlyPoint)
	pointFor := func(date time.Time) *usecase.MonthlyPoint {
		month := date.Format("2006-01")
		point, ok := points[month]
		if !ok {
			point = &usecase.MonthlyPoint{Month: month, SalesTotal: decimal.Zero}
			points[month] = point
		}

		return point
	}

	for _, meeting := range meetings {
		pointFor(meeting.Date).Meetings++
	}
	for _, sale := range sales {
		point := pointFor(sale.Date)
		point.SaleVolume += sale.Quantity
		point.SalesTotal = point.SalesTotal.Add(sale.Amount)
	}

	out := make([]*usecase.MonthlyPoint, 0, len(points))
	for _, point := range points {
		out = append(out, point)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })

	return out, nil
}

// CategoryDistribution counts people reached per category. One-on-one
// meetings contribute their person category; group meetings contribute
// their attendee counts.
func (srv *analyticsService) CategoryDistribution(ctx context.Context, userID string) (*usecase.CategoryDistribution, error) {
	meetings, err := srv.listMeetings(ctx, userID)
	if err != nil {
		return nil, err
	}

	dist := &usecase.CategoryDistribution{}
	for _, meeting := range meetings {
		switch {
		case meeting.OneOnOne != nil:
			switch meeting.OneOnOne.PersonCategory {
			case entity.PersonCategoryFarmer:
				dist.Farmer++
			case entity.PersonCategorySeller:
				dist.Seller++
			case entity.PersonCategoryInfluencer:
				dist.Influencer++
			}
		case meeting.Group != nil:
			dist.GroupAttendees += meeting.Group.AttendeeCount
		}
	}

	return dist, nil
}

// ProductSales rolls sales up per product SKU, resolving display names
// through the catalog.
func (srv *analyticsService) ProductSales(ctx context.Context, userID string) ([]*usecase.ProductSales, error) {
	sales, err := srv.listSales(ctx, userID)
	if err != nil {
		return nil, err
	}

	rollups := make(map[string]*usecase.ProductSales)
	for _, sale := range sales {
		rollup, ok := rollups[sale.ProductSKU]
		if !ok {
			name := sale.ProductSKU
			if product, found := srv.catalog.Lookup(sale.ProductSKU); found {
				name = product.Name
			}
			rollup = &usecase.ProductSales{SKU: sale.ProductSKU, Name: name, SalesTotal: decimal.Zero}
			rollups[sale.ProductSKU] = rollup
		}
		rollup.Volume += sale.Quantity
		rollup.SalesTotal = rollup.SalesTotal.Add(sale.Amount)
	}

	out := make([]*usecase.ProductSales, 0, len(rollups))
	for _, rollup := range rollups {
		out = append(out, rollup)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })

	return out, nil
}

// SampleInventory rolls sample distributions up per product SKU, resolving
// display names through the catalog.
func (srv *analyticsService) SampleInventory(ctx context.Context, userID string) ([]*usecase.SampleInventory, error) {
	samples, err := srv.listSamples(ctx, userID)
	if err != nil {
		return nil, err
	}

	rollups := make(map[string]*usecase.SampleInventory)
	for _, sample := range samples {
		rollup, ok := rollups[sample.ProductSKU]
		if !ok {
			name := sample.ProductSKU
			if product, found := srv.catalog.Lookup(sample.ProductSKU); found {
				name = product.Name
			}
			rollup = &usecase.SampleInventory{SKU: sample.ProductSKU, Name: name}
			rollups[sample.ProductSKU] = rollup
		}
		rollup.Quantity += sample.Quantity
		rollup.Handouts++
	}

	out := make([]*usecase.SampleInventory, 0, len(rollups))
	for _, rollup := range rollups {
		out = append(out, rollup)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })

	return out, nil
}

func (srv *analyticsService) listSamples(ctx context.Context, userID string) ([]*entity.SampleDistribution, error) {
	if userID == "" {
		samples, err := srv.sampleRepo.List(ctx)

		return samples, errors.Wrap(err, "failed to list samples")
	}
	samples, err := srv.sampleRepo.ListByUser(ctx, userID)

	return samples, errors.Wrap(err, "failed to list samples")
}

func (srv *analyticsService) listMeetings(ctx context.Context, userID string) ([]*entity.Meeting, error) {
	if userID == "" {
		meetings, err := srv.meetingRepo.List(ctx)

		return meetings, errors.Wrap(err, "failed to list meetings")
	}
	meetings, err := srv.meetingRepo.ListByUser(ctx, userID)

	return meetings, errors.Wrap(err, "failed to list meetings")
}

func (srv *analyticsService) listSales(ctx context.Context, userID string) ([]*entity.Sale, error) {
	if userID == "" {
		sales, err := srv.saleRepo.List(ctx)

		return sales, errors.Wrap(err, "failed to list sales")
	}
	sales, err := srv.saleRepo.ListByUser(ctx, userID)

	return sales, errors.Wrap(err, "failed to list sales")
}
