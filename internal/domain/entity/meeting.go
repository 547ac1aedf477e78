// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"fieldops/internal/errors"
)

// MeetingType discriminates the two meeting variants.
type MeetingType string

const (
	// MeetingTypeOneOnOne is a meeting with a single person.
	MeetingTypeOneOnOne MeetingType = "one-on-one"
	// MeetingTypeGroup is a village-level group meeting.
	MeetingTypeGroup MeetingType = "group"
)

// IsValid checks if the MeetingType is a valid value.
func (t MeetingType) IsValid() bool {
	switch t {
	case MeetingTypeOneOnOne, MeetingTypeGroup:
		return true
	default:
		return false
	}
}

// PersonCategory classifies the counterpart of a one-on-one meeting.
type PersonCategory string

const (
	PersonCategoryFarmer     PersonCategory = "farmer"
	PersonCategorySeller     PersonCategory = "seller"
	PersonCategoryInfluencer PersonCategory = "influencer"
)

// IsValid checks if the PersonCategory is a valid value.
func (c PersonCategory) IsValid() bool {
	switch c {
	case PersonCategoryFarmer, PersonCategorySeller, PersonCategoryInfluencer:
		return true
	default:
		return false
	}
}

// OneOnOneDetails carries the fields specific to a one-on-one meeting.
type OneOnOneDetails struct {
	PersonName        string         `json:"personName"`
	PersonCategory    PersonCategory `json:"personCategory"`
	ContactDetails    string         `json:"contactDetails"`
	BusinessPotential string         `json:"businessPotential"` // Free-text bucket, e.g. "high", "2-5 acres".
}

// GroupDetails carries the fields specific to a group meeting.
type GroupDetails struct {
	VillageName   string `json:"villageName"`
	AttendeeCount int    `json:"attendeeCount"` // Always >= 0.
	Format        string `json:"format"`        // Free-text meeting type, e.g. "demo day".
}

// Meeting is a field visit record owned by a field officer. It is immutable
// once appended; exactly one of OneOnOne or Group is populated, matching Type.
type Meeting struct {
	ID       string      `json:"id"`
	Type     MeetingType `json:"type"`
	UserID   string      `json:"userId"`
	Date     time.Time   `json:"date"`
	Location *Location   `json:"location,omitempty"` // Optional capture position.
	Notes    string      `json:"notes,omitempty"`
	Photos   []string    `json:"photos,omitempty"`

	OneOnOne *OneOnOneDetails `json:"oneOnOne,omitempty"`
	Group    *GroupDetails    `json:"group,omitempty"`
}

// Validate checks the variant invariant: the populated detail struct must
// match the discriminant and the other must be nil.
func (m *Meeting) Validate() error {
	if !m.Type.IsValid() {
		return errors.Errorf("invalid meeting type: %s", m.Type)
	}

	switch m.Type {
	case MeetingTypeOneOnOne:
		if m.OneOnOne == nil || m.Group != nil {
			return errors.New("one-on-one meeting must carry exactly the one-on-one details")
		}
		if !m.OneOnOne.PersonCategory.IsValid() {
			return errors.Errorf("invalid person category: %s", m.OneOnOne.PersonCategory)
		}
	case MeetingTypeGroup:
		if m.Group == nil || m.OneOnOne != nil {
			return errors.New("group meeting must carry exactly the group details")
		}
		if m.Group.AttendeeCount < 0 {
			return errors.New("attendee count must be non-negative")
		}
	}

	return nil
}
