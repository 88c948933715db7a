package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingHttp "github.com/hoardspace/bms-backend/internal/booking/http"
	hoardingHttp "github.com/hoardspace/bms-backend/internal/hoarding/http"
	"github.com/hoardspace/bms-backend/internal/pkg/response"
	"github.com/hoardspace/bms-backend/internal/user"
)

func createTestHoarding(t *testing.T, token string, location string, dailyPrice float64) string {
	payload := hoardingHttp.CreateHoardingBody{
		Location:   location,
		Size:       hoardingHttp.SizeBody{Width: 40, Height: 20},
		DailyPrice: &dailyPrice,
	}
	w := executeRequest("POST", "/api/hoardings", payload, token)
	require.Equal(t, http.StatusCreated, w.Code, "Failed to create test hoarding")

	var resp hoardingHttp.HoardingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

func TestBookingLifecycle(t *testing.T) {
	clearTables()

	admin := createTestUser(t, "admin@booking.com", "pass", user.RoleAdmin)
	booker := createTestUser(t, "booker@booking.com", "pass", user.RoleUser)
	stranger := createTestUser(t, "stranger@booking.com", "pass", user.RoleUser)

	adminToken := generateToken(admin)
	bookerToken := generateToken(booker)
	strangerToken := generateToken(stranger)

	hoardingID := createTestHoarding(t, adminToken, "MG Road Junction", 1000)

	startDate := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)
	endDate := startDate.Add(72 * time.Hour)

	var bookingID string

	// ==== Create ====

	t.Run("Create: Requires authentication", func(t *testing.T) {
		payload := bookingHttp.CreateBookingBody{
			HoardingID: hoardingID,
			StartDate:  startDate,
			EndDate:    endDate,
		}
		w := executeRequest("POST", "/api/bookings", payload, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Create: Bad request (input format)", func(t *testing.T) {
		// Missing hoarding ID
		w := executeRequest("POST", "/api/bookings", map[string]any{
			"start_date": startDate,
			"end_date":   endDate,
		}, bookerToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		// Invalid UUID
		w = executeRequest("POST", "/api/bookings", map[string]any{
			"hoarding_id": "not-a-uuid",
			"start_date":  startDate,
			"end_date":    endDate,
		}, bookerToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		// Unparseable dates
		w = executeRequest("POST", "/api/bookings", map[string]any{
			"hoarding_id": hoardingID,
			"start_date":  "tomorrow",
			"end_date":    "next week",
		}, bookerToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Create: Bad request (business rules)", func(t *testing.T) {
		// End before start
		w := executeRequest("POST", "/api/bookings", bookingHttp.CreateBookingBody{
			HoardingID: hoardingID,
			StartDate:  endDate,
			EndDate:    startDate,
		}, bookerToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		// Start in the past
		w = executeRequest("POST", "/api/bookings", bookingHttp.CreateBookingBody{
			HoardingID: hoardingID,
			StartDate:  time.Now().UTC().Add(-48 * time.Hour),
			EndDate:    time.Now().UTC().Add(24 * time.Hour),
		}, bookerToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		// Unknown hoarding
		w = executeRequest("POST", "/api/bookings", bookingHttp.CreateBookingBody{
			HoardingID: "00000000-0000-0000-0000-000000000000",
			StartDate:  startDate,
			EndDate:    endDate,
		}, bookerToken)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Create: Success with computed amount", func(t *testing.T) {
		w := executeRequest("POST", "/api/bookings", bookingHttp.CreateBookingBody{
			HoardingID: hoardingID,
			StartDate:  startDate,
			EndDate:    endDate,
		}, bookerToken)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp bookingHttp.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, "pending", resp.Payment.Status)
		assert.Equal(t, hoardingID, resp.Hoarding.ID)
		assert.Equal(t, "MG Road Junction", resp.Hoarding.Location)
		assert.Equal(t, booker.ID, resp.User.ID)
		// 3 days at 1000/day
		assert.Equal(t, 3000.0, resp.TotalAmount)

		bookingID = resp.ID
	})

	t.Run("Create: Overlap rejected", func(t *testing.T) {
		// Exact same range
		w := executeRequest("POST", "/api/bookings", bookingHttp.CreateBookingBody{
			HoardingID: hoardingID,
			StartDate:  startDate,
			EndDate:    endDate,
		}, strangerToken)
		assert.Equal(t, http.StatusBadRequest, w.Code, "Identical range must be rejected")

		// Partial overlap (starts inside existing booking)
		w = executeRequest("POST", "/api/bookings", bookingHttp.CreateBookingBody{
			HoardingID: hoardingID,
			StartDate:  startDate.Add(24 * time.Hour),
			EndDate:    endDate.Add(24 * time.Hour),
		}, strangerToken)
		assert.Equal(t, http.StatusBadRequest, w.Code, "Partial overlap must be rejected")

		// Containing range
		w = executeRequest("POST", "/api/bookings", bookingHttp.CreateBookingBody{
			HoardingID: hoardingID,
			StartDate:  startDate.Add(-12 * time.Hour),
			EndDate:    endDate.Add(12 * time.Hour),
		}, strangerToken)
		assert.Equal(t, http.StatusBadRequest, w.Code, "Containing range must be rejected")
	})

	t.Run("Create: Adjacent range sharing the boundary instant succeeds", func(t *testing.T) {
		// Starts exactly where the pending booking ends; ranges are
		// half-open so the shared instant is not an overlap.
		w := executeRequest("POST", "/api/bookings", bookingHttp.CreateBookingBody{
			HoardingID: hoardingID,
			StartDate:  endDate,
			EndDate:    endDate.Add(48 * time.Hour),
		}, strangerToken)
		require.Equal(t, http.StatusCreated, w.Code, "Back-to-back booking must be admitted")

		var resp bookingHttp.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		// 2 days at 1000/day
		assert.Equal(t, 2000.0, resp.TotalAmount)
	})

	// ==== Read ====

	t.Run("List: Admin sees all, users see their own", func(t *testing.T) {
		// Non-admins are pinned to their own bookings
		w := executeRequest("GET", "/api/bookings", nil, bookerToken)
		require.Equal(t, http.StatusOK, w.Code)
		var own response.PageResponse[bookingHttp.BookingResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &own))
		assert.Equal(t, 1, own.Total)
		assert.Equal(t, bookingID, own.Items[0].ID)

		// The user_id filter is ignored for non-admins
		w = executeRequest("GET", fmt.Sprintf("/api/bookings?user_id=%s", stranger.ID), nil, bookerToken)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &own))
		assert.Equal(t, 1, own.Total)
		assert.Equal(t, booker.ID, own.Items[0].User.ID)

		w = executeRequest("GET", "/api/bookings", nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code)
		var all response.PageResponse[bookingHttp.BookingResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
		assert.Equal(t, 2, all.Total)

		// Admin filters by user
		w = executeRequest("GET", fmt.Sprintf("/api/bookings?user_id=%s", stranger.ID), nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code)
		var filtered response.PageResponse[bookingHttp.BookingResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &filtered))
		assert.Equal(t, 1, filtered.Total)

		// Personal listing shortcut
		w = executeRequest("GET", "/api/bookings/my-bookings", nil, bookerToken)
		require.Equal(t, http.StatusOK, w.Code)
		var mine response.PageResponse[bookingHttp.BookingResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
		assert.Equal(t, 1, mine.Total)
		assert.Equal(t, bookingID, mine.Items[0].ID)
	})

	t.Run("Get: Owner or admin only", func(t *testing.T) {
		path := fmt.Sprintf("/api/bookings/%s", bookingID)

		wOwner := executeRequest("GET", path, nil, bookerToken)
		assert.Equal(t, http.StatusOK, wOwner.Code)

		wAdmin := executeRequest("GET", path, nil, adminToken)
		assert.Equal(t, http.StatusOK, wAdmin.Code)

		wStranger := executeRequest("GET", path, nil, strangerToken)
		assert.Equal(t, http.StatusForbidden, wStranger.Code)
	})

	// ==== Status transitions ====

	t.Run("UpdateStatus: Admin only with valid enum", func(t *testing.T) {
		path := fmt.Sprintf("/api/bookings/%s/status", bookingID)

		w := executeRequest("PUT", path, bookingHttp.UpdateStatusBody{Status: "approved"}, bookerToken)
		assert.Equal(t, http.StatusForbidden, w.Code, "Booker cannot approve their own booking")

		w = executeRequest("PUT", path, map[string]any{"status": "confirmed"}, adminToken)
		assert.Equal(t, http.StatusBadRequest, w.Code, "Unknown status enum")

		w = executeRequest("PUT", path, map[string]any{"status": "pending"}, adminToken)
		assert.Equal(t, http.StatusBadRequest, w.Code, "Cannot transition back to pending")
	})

	t.Run("UpdateStatus: Approval marks hoarding booked", func(t *testing.T) {
		path := fmt.Sprintf("/api/bookings/%s/status", bookingID)

		w := executeRequest("PUT", path, bookingHttp.UpdateStatusBody{Status: "approved"}, adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		var resp bookingHttp.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "approved", resp.Status)

		wH := executeRequest("GET", fmt.Sprintf("/api/hoardings/%s", hoardingID), nil, "")
		require.Equal(t, http.StatusOK, wH.Code)
		var h hoardingHttp.HoardingResponse
		require.NoError(t, json.Unmarshal(wH.Body.Bytes(), &h))
		assert.Equal(t, "booked", h.Status)
	})

	t.Run("Create: Booked hoarding rejects new requests", func(t *testing.T) {
		w := executeRequest("POST", "/api/bookings", bookingHttp.CreateBookingBody{
			HoardingID: hoardingID,
			StartDate:  endDate.Add(30 * 24 * time.Hour),
			EndDate:    endDate.Add(33 * 24 * time.Hour),
		}, strangerToken)
		assert.Equal(t, http.StatusBadRequest, w.Code, "Booked hoarding is no longer admittable")
	})

	t.Run("UpdateStatus: Reject keeps hoarding booked by default", func(t *testing.T) {
		path := fmt.Sprintf("/api/bookings/%s/status", bookingID)

		w := executeRequest("PUT", path, bookingHttp.UpdateStatusBody{Status: "rejected"}, adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		wH := executeRequest("GET", fmt.Sprintf("/api/hoardings/%s", hoardingID), nil, "")
		var h hoardingHttp.HoardingResponse
		require.NoError(t, json.Unmarshal(wH.Body.Bytes(), &h))
		assert.Equal(t, "booked", h.Status, "Rejection does not release the hoarding")
	})

	// ==== Delete ====

	t.Run("Delete: Owner or admin only", func(t *testing.T) {
		path := fmt.Sprintf("/api/bookings/%s", bookingID)

		w := executeRequest("DELETE", path, nil, strangerToken)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = executeRequest("DELETE", path, nil, bookerToken)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = executeRequest("GET", path, nil, adminToken)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	// ==== Edge cases ====

	t.Run("Interact with non-existent booking", func(t *testing.T) {
		fakeID := "00000000-0000-0000-0000-000000000000"

		w := executeRequest("GET", fmt.Sprintf("/api/bookings/%s", fakeID), nil, adminToken)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = executeRequest("PUT", fmt.Sprintf("/api/bookings/%s/status", fakeID),
			bookingHttp.UpdateStatusBody{Status: "approved"}, adminToken)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = executeRequest("DELETE", fmt.Sprintf("/api/bookings/%s", fakeID), nil, adminToken)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Interact with invalid UUID path parameter", func(t *testing.T) {
		w := executeRequest("GET", "/api/bookings/not-a-uuid", nil, adminToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = executeRequest("DELETE", "/api/bookings/not-a-uuid", nil, adminToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestConcurrentBookingAdmission(t *testing.T) {
	clearTables()

	admin := createTestUser(t, "admin@race.com", "pass", user.RoleAdmin)
	adminToken := generateToken(admin)
	hoardingID := createTestHoarding(t, adminToken, "Race Street", 100)

	userA := createTestUser(t, "a@race.com", "pass", user.RoleUser)
	userB := createTestUser(t, "b@race.com", "pass", user.RoleUser)
	tokens := []string{generateToken(userA), generateToken(userB)}

	start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)
	payload := bookingHttp.CreateBookingBody{
		HoardingID: hoardingID,
		StartDate:  start,
		EndDate:    start.Add(48 * time.Hour),
	}

	// Fire identical requests concurrently; exactly one may be admitted.
	results := make(chan int, len(tokens))
	for _, token := range tokens {
		go func(tok string) {
			w := executeRequest("POST", "/api/bookings", payload, tok)
			results <- w.Code
		}(token)
	}

	var created, rejected int
	for range tokens {
		switch code := <-results; code {
		case http.StatusCreated:
			created++
		case http.StatusBadRequest:
			rejected++
		default:
			t.Errorf("unexpected status code %d", code)
		}
	}

	assert.Equal(t, 1, created, "Exactly one concurrent request must win")
	assert.Equal(t, 1, rejected, "The loser must see the conflict")
}
