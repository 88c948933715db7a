package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingHttp "github.com/hoardspace/bms-backend/internal/booking/http"
	hoardingHttp "github.com/hoardspace/bms-backend/internal/hoarding/http"
	"github.com/hoardspace/bms-backend/internal/pkg/response"
	"github.com/hoardspace/bms-backend/internal/user"
)

func floatPtr(f float64) *float64 { return &f }

func TestHoardingCRUDAndAvailability(t *testing.T) {
	clearTables()

	admin := createTestUser(t, "admin@hoarding.com", "pass", user.RoleAdmin)
	member := createTestUser(t, "member@hoarding.com", "pass", user.RoleUser)
	adminToken := generateToken(admin)
	memberToken := generateToken(member)

	var hoardingID string

	// ==== Create ====

	t.Run("Create: Requires admin", func(t *testing.T) {
		payload := hoardingHttp.CreateHoardingBody{
			Location:   "MG Road Junction",
			Size:       hoardingHttp.SizeBody{Width: 40, Height: 20},
			DailyPrice: floatPtr(1000),
		}

		w := executeRequest("POST", "/api/hoardings", payload, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = executeRequest("POST", "/api/hoardings", payload, memberToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Create: Validation errors", func(t *testing.T) {
		// Missing location
		w := executeRequest("POST", "/api/hoardings", map[string]any{
			"size":        map[string]any{"width": 40, "height": 20},
			"daily_price": 1000,
		}, adminToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		// Size below minimum
		w = executeRequest("POST", "/api/hoardings", map[string]any{
			"location":    "Somewhere",
			"size":        map[string]any{"width": 0.5, "height": 20},
			"daily_price": 1000,
		}, adminToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		// Negative price
		w = executeRequest("POST", "/api/hoardings", map[string]any{
			"location":    "Somewhere",
			"size":        map[string]any{"width": 40, "height": 20},
			"daily_price": -5,
		}, adminToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		// Unknown status enum
		w = executeRequest("POST", "/api/hoardings", map[string]any{
			"location":    "Somewhere",
			"size":        map[string]any{"width": 40, "height": 20},
			"daily_price": 1000,
			"status":      "hidden",
		}, adminToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Create: Success defaults to available", func(t *testing.T) {
		desc := "Prime junction billboard"
		payload := hoardingHttp.CreateHoardingBody{
			Location:    "MG Road Junction",
			Size:        hoardingHttp.SizeBody{Width: 40, Height: 20},
			DailyPrice:  floatPtr(1000),
			Description: &desc,
		}
		w := executeRequest("POST", "/api/hoardings", payload, adminToken)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp hoardingHttp.HoardingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "available", resp.Status)
		assert.Equal(t, 40.0, resp.Size.Width)
		assert.Equal(t, admin.ID, resp.CreatedBy)

		hoardingID = resp.ID
	})

	// ==== Read ====

	t.Run("List: Public with filters", func(t *testing.T) {
		// Another hoarding under maintenance, cheaper
		maintenance := "maintenance"
		payload := hoardingHttp.CreateHoardingBody{
			Location:   "Airport Road",
			Size:       hoardingHttp.SizeBody{Width: 30, Height: 10},
			DailyPrice: floatPtr(500),
			Status:     &maintenance,
		}
		wCreate := executeRequest("POST", "/api/hoardings", payload, adminToken)
		require.Equal(t, http.StatusCreated, wCreate.Code)

		// No auth needed
		w := executeRequest("GET", "/api/hoardings", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		var all response.PageResponse[hoardingHttp.HoardingResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
		assert.Equal(t, 2, all.Total)

		// Filter by status
		w = executeRequest("GET", "/api/hoardings?status=available", nil, "")
		var avail response.PageResponse[hoardingHttp.HoardingResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &avail))
		assert.Equal(t, 1, avail.Total)
		assert.Equal(t, hoardingID, avail.Items[0].ID)

		// Filter by location substring
		w = executeRequest("GET", "/api/hoardings?location=airport", nil, "")
		var byLoc response.PageResponse[hoardingHttp.HoardingResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &byLoc))
		assert.Equal(t, 1, byLoc.Total)

		// Price range
		w = executeRequest("GET", "/api/hoardings?min_price=600", nil, "")
		var pricey response.PageResponse[hoardingHttp.HoardingResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pricey))
		assert.Equal(t, 1, pricey.Total)
		assert.Equal(t, 1000.0, pricey.Items[0].DailyPrice)
	})

	t.Run("Get: Found, not found, invalid ID", func(t *testing.T) {
		w := executeRequest("GET", fmt.Sprintf("/api/hoardings/%s", hoardingID), nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		w = executeRequest("GET", "/api/hoardings/00000000-0000-0000-0000-000000000000", nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = executeRequest("GET", "/api/hoardings/not-a-uuid", nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	// ==== Availability ====

	t.Run("Availability: Derived from bookings", func(t *testing.T) {
		start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)
		end := start.Add(72 * time.Hour)

		availabilityPath := func(s, e time.Time) string {
			q := url.Values{}
			q.Set("start_date", s.Format(time.RFC3339))
			q.Set("end_date", e.Format(time.RFC3339))
			return fmt.Sprintf("/api/hoardings/%s/availability?%s", hoardingID, q.Encode())
		}

		// Free range
		w := executeRequest("GET", availabilityPath(start, end), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		var resp hoardingHttp.AvailabilityResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Available)

		// Inverted range
		wBad := executeRequest("GET", availabilityPath(end, start), nil, "")
		assert.Equal(t, http.StatusBadRequest, wBad.Code)

		// Book the range, then it reads unavailable
		wBook := executeRequest("POST", "/api/bookings", bookingHttp.CreateBookingBody{
			HoardingID: hoardingID,
			StartDate:  start,
			EndDate:    end,
		}, memberToken)
		require.Equal(t, http.StatusCreated, wBook.Code)

		w = executeRequest("GET", availabilityPath(start.Add(24*time.Hour), end.Add(24*time.Hour)), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Available, "Overlapping pending booking blocks the range")

		// A range starting at the booking's end instant is free: ranges
		// are half-open, sharing the boundary is not an overlap
		w = executeRequest("GET", availabilityPath(end, end.Add(24*time.Hour)), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Available)

		// Disjoint later range is still free
		w = executeRequest("GET", availabilityPath(end.Add(24*time.Hour), end.Add(48*time.Hour)), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Available)
	})

	// ==== Update & Delete ====

	t.Run("Update: Admin edits fields", func(t *testing.T) {
		path := fmt.Sprintf("/api/hoardings/%s", hoardingID)

		w := executeRequest("PUT", path, hoardingHttp.UpdateHoardingBody{DailyPrice: floatPtr(1200)}, memberToken)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = executeRequest("PUT", path, hoardingHttp.UpdateHoardingBody{DailyPrice: floatPtr(1200)}, adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		var resp hoardingHttp.HoardingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1200.0, resp.DailyPrice)

		// Negative price rejected
		w = executeRequest("PUT", path, map[string]any{"daily_price": -1}, adminToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Delete: Admin only, then gone", func(t *testing.T) {
		// Disposable hoarding
		wCreate := executeRequest("POST", "/api/hoardings", hoardingHttp.CreateHoardingBody{
			Location:   "Ring Road",
			Size:       hoardingHttp.SizeBody{Width: 20, Height: 10},
			DailyPrice: floatPtr(300),
		}, adminToken)
		require.Equal(t, http.StatusCreated, wCreate.Code)
		var created hoardingHttp.HoardingResponse
		require.NoError(t, json.Unmarshal(wCreate.Body.Bytes(), &created))

		path := fmt.Sprintf("/api/hoardings/%s", created.ID)

		w := executeRequest("DELETE", path, nil, memberToken)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = executeRequest("DELETE", path, nil, adminToken)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = executeRequest("GET", path, nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
