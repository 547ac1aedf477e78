package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Entities are served directly by the API, so their wire names must match
// the camelCase convention of the request and analytics payloads.
func TestEntityJSONFieldNames(t *testing.T) {
	date := time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC)

	t.Run("sale", func(t *testing.T) {
		sale := Sale{
			ID:            "s1",
			UserID:        "u1",
			Date:          date,
			Type:          SaleTypeB2C,
			ProductSKU:    "bio-npk",
			Quantity:      3,
			Mode:          SaleModeDirect,
			IsRepeatOrder: true,
			Amount:        decimal.NewFromInt(900),
		}

		raw, err := json.Marshal(sale)
		require.NoError(t, err)

		var keys map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(raw, &keys))
		assert.Contains(t, keys, "productSku")
		assert.Contains(t, keys, "isRepeatOrder")
		assert.Contains(t, keys, "userId")
		assert.NotContains(t, keys, "ProductSKU")
		assert.NotContains(t, keys, "IsRepeatOrder")
	})

	t.Run("meeting", func(t *testing.T) {
		meeting := Meeting{
			ID:     "m1",
			Type:   MeetingTypeGroup,
			UserID: "u1",
			Date:   date,
			Group:  &GroupDetails{VillageName: "Wagholi", AttendeeCount: 12},
		}

		raw, err := json.Marshal(meeting)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"group":{"villageName":"Wagholi","attendeeCount":12`)
		assert.NotContains(t, string(raw), `"OneOnOne"`)
	})

	t.Run("daily log omits unset transitions", func(t *testing.T) {
		log := DailyLog{
			ID:        "d1",
			UserID:    "u1",
			Date:      date,
			StartTime: date,
		}

		raw, err := json.Marshal(log)
		require.NoError(t, err)

		var keys map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(raw, &keys))
		assert.Contains(t, keys, "startTime")
		assert.NotContains(t, keys, "endTime")
		assert.NotContains(t, keys, "distanceTraveled")
	})

	t.Run("user", func(t *testing.T) {
		raw, err := json.Marshal(User{ID: "u1", Role: RoleFieldOfficer, State: "Maharashtra"})
		require.NoError(t, err)

		var keys map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(raw, &keys))
		assert.Contains(t, keys, "role")
		assert.Contains(t, keys, "state")
		assert.NotContains(t, keys, "ID")
	})
}
