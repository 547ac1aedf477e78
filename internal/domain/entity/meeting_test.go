package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeeting_Validate(t *testing.T) {
	oneOnOne := &OneOnOneDetails{PersonName: "Ravi", PersonCategory: PersonCategoryFarmer}
	group := &GroupDetails{VillageName: "Wagholi", AttendeeCount: 20}

	tests := []struct {
		name    string
		meeting Meeting
		wantErr bool
	}{
		{"one-on-one", Meeting{Type: MeetingTypeOneOnOne, OneOnOne: oneOnOne}, false},
		{"group", Meeting{Type: MeetingTypeGroup, Group: group}, false},
		{"unknown type", Meeting{Type: "webinar", OneOnOne: oneOnOne}, true},
		{"one-on-one missing details", Meeting{Type: MeetingTypeOneOnOne}, true},
		{"one-on-one with group details", Meeting{Type: MeetingTypeOneOnOne, OneOnOne: oneOnOne, Group: group}, true},
		{"group missing details", Meeting{Type: MeetingTypeGroup}, true},
		{"unknown person category", Meeting{Type: MeetingTypeOneOnOne, OneOnOne: &OneOnOneDetails{PersonCategory: "vip"}}, true},
		{"negative attendee count", Meeting{Type: MeetingTypeGroup, Group: &GroupDetails{AttendeeCount: -1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.meeting.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPathDistanceKm(t *testing.T) {
	assert.Zero(t, PathDistanceKm(nil))
	assert.Zero(t, PathDistanceKm([]Location{{Lat: 18.52, Lng: 73.85}}))

	// Pune to Mumbai is roughly 120 km as the crow flies.
	km := PathDistanceKm([]Location{
		{Lat: 18.5204, Lng: 73.8567},
		{Lat: 19.0760, Lng: 72.8777},
	})
	assert.InDelta(t, 120, km, 10)

	// A round trip doubles the distance.
	roundTrip := PathDistanceKm([]Location{
		{Lat: 18.5204, Lng: 73.8567},
		{Lat: 19.0760, Lng: 72.8777},
		{Lat: 18.5204, Lng: 73.8567},
	})
	assert.InDelta(t, 2*km, roundTrip, 0.001)
}
