package usecase

import (
	"context"

	"github.com/shopspring/decimal"
)

// --- Output DTOs ---

// UserStats summarizes one user's activity.
type UserStats struct {
	UserID        string          `json:"userId"`
	Meetings      int             `json:"meetings"`
	Samples       int             `json:"samples"`
	Sales         int             `json:"sales"`
	SalesTotal    decimal.Decimal `json:"salesTotal"`
	DaysWorked    int             `json:"daysWorked"`
	DistanceKm    float64         `json:"distanceKm"`
	RepeatOrders  int             `json:"repeatOrders"`
	GroupMeetings int             `json:"groupMeetings"`
}

// OverviewStats aggregates activity across every user. Users counts field
// personnel only; admin accounts do not log activity.
type OverviewStats struct {
	Users          int             `json:"users"`
	Meetings       int             `json:"meetings"`
	Samples        int             `json:"samples"`
	SampleVolume   float64         `json:"sampleVolume"`
	Sales          int             `json:"sales"`
	SalesB2C       int             `json:"salesB2c"`
	SalesB2B       int             `json:"salesB2b"`
	SalesTotal     decimal.Decimal `json:"salesTotal"`
	FarmersReached int             `json:"farmersReached"`
}

// StateRollup aggregates activity for one state, by the users registered there.
type StateRollup struct {
	State      string          `json:"state"`
	Users      int             `json:"users"`
	Meetings   int             `json:"meetings"`
	Samples    int             `json:"samples"`
	Sales      int             `json:"sales"`
	SalesTotal decimal.Decimal `json:"salesTotal"`
}

// MonthlyPoint is one month of activity. Month is formatted YYYY-MM so the
// series sorts chronologically.
type MonthlyPoint struct {
	Month      string          `json:"month"`
	Meetings   int             `json:"meetings"`
	SaleVolume int             `json:"saleVolume"`
	SalesTotal decimal.Decimal `json:"salesTotal"`
}

// CategoryDistribution counts the people reached per category. Group meeting
// attendees are counted under their own bucket.
type CategoryDistribution struct {
	Farmer         int `json:"farmer"`
	Seller         int `json:"seller"`
	Influencer     int `json:"influencer"`
	GroupAttendees int `json:"groupAttendees"`
}

// SampleInventory rolls sample distributions up per product. Name falls
// back to the raw SKU when the product is not in the catalog.
type SampleInventory struct {
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Handouts int     `json:"handouts"`
}

// ProductSales rolls sales up per product. Name falls back to the raw SKU
// when the product is not in the catalog.
type ProductSales struct {
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	Volume     int             `json:"volume"`
	SalesTotal decimal.Decimal `json:"salesTotal"`
}

// AnalyticsUsecase defines the read-side aggregation views.
type AnalyticsUsecase interface {
	// StatsForUser summarizes one user's own activity.
	StatsForUser(ctx context.Context, userID string) (*UserStats, error)

	// Overview aggregates everything, for the admin dashboard.
	Overview(ctx context.Context) (*OverviewStats, error)

	// StateRollups groups activity by the state users registered under.
	StateRollups(ctx context.Context) ([]*StateRollup, error)

	// MonthlySeries buckets activity by calendar month. An empty userID
	// covers all users.
	MonthlySeries(ctx context.Context, userID string) ([]*MonthlyPoint, error)

	// CategoryDistribution counts people reached per category. An empty
	// userID covers all users.
	CategoryDistribution(ctx context.Context, userID string) (*CategoryDistribution, error)

	// ProductSales rolls sales up per product SKU. An empty userID covers
	// all users.
	ProductSales(ctx context.Context, userID string) ([]*ProductSales, error)

	// SampleInventory rolls sample distributions up per product SKU. An
	// empty userID covers all users.
	SampleInventory(ctx context.Context, userID string) ([]*SampleInventory, error)
}
