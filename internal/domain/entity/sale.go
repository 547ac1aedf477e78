// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleType distinguishes consumer from business sales.
type SaleType string

const (
	SaleTypeB2C SaleType = "B2C"
	SaleTypeB2B SaleType = "B2B"
)

// IsValid checks if the SaleType is a valid value.
func (t SaleType) IsValid() bool {
	switch t {
	case SaleTypeB2C, SaleTypeB2B:
		return true
	default:
		return false
	}
}

// SaleMode states how a sale was fulfilled.
type SaleMode string

const (
	SaleModeDirect         SaleMode = "direct"
	SaleModeViaDistributor SaleMode = "via_distributor"
)

// IsValid checks if the SaleMode is a valid value.
func (m SaleMode) IsValid() bool {
	switch m {
	case SaleModeDirect, SaleModeViaDistributor:
		return true
	default:
		return false
	}
}

// Sale records a completed sale. Amounts are decimal currency values.
// Immutable once appended.
type Sale struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Date            time.Time       `json:"date"`
	Type            SaleType        `json:"type"`
	ProductSKU      string          `json:"productSku"`
	PackSize        string          `json:"packSize,omitempty"`
	Quantity        int             `json:"quantity"`
	Mode            SaleMode        `json:"mode"`
	IsRepeatOrder   bool            `json:"isRepeatOrder"`
	CustomerName    string          `json:"customerName,omitempty"`
	CustomerContact string          `json:"customerContact,omitempty"`
	Location        *Location       `json:"location,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
}
