// Package entity contains the core business objects of the project.
package entity

import "time"

// RecipientType classifies who receives a product sample.
type RecipientType string

const (
	RecipientTypeFarmer      RecipientType = "farmer"
	RecipientTypeDistributor RecipientType = "distributor"
	RecipientTypeRetailer    RecipientType = "retailer"
)

// IsValid checks if the RecipientType is a valid value.
func (t RecipientType) IsValid() bool {
	switch t {
	case RecipientTypeFarmer, RecipientTypeDistributor, RecipientTypeRetailer:
		return true
	default:
		return false
	}
}

// SamplePurpose states why a sample was handed out.
type SamplePurpose string

const (
	SamplePurposeTrial    SamplePurpose = "trial"
	SamplePurposeDemo     SamplePurpose = "demo"
	SamplePurposeFollowUp SamplePurpose = "follow-up"
)

// IsValid checks if the SamplePurpose is a valid value.
func (p SamplePurpose) IsValid() bool {
	switch p {
	case SamplePurposeTrial, SamplePurposeDemo, SamplePurposeFollowUp:
		return true
	default:
		return false
	}
}

// SampleDistribution records handing a product sample to a recipient.
// Immutable once appended.
type SampleDistribution struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	Date          time.Time     `json:"date"`
	ProductSKU    string        `json:"productSku"` // Foreign key into the external product catalog.
	Quantity      float64       `json:"quantity"`
	RecipientName string        `json:"recipientName"`
	RecipientType RecipientType `json:"recipientType"`
	Purpose       SamplePurpose `json:"purpose"`
	Location      *Location     `json:"location,omitempty"`
	Notes         string        `json:"notes,omitempty"`
}
