package booking

import (
	"net/http"
	"time"

	"github.com/hoardspace/bms-backend/internal/pkg/apperror"
)

// Admission and transition failures. Conflicts surface as 400 to match
// the API contract (overlap and unavailability are caller errors here,
// not resource-state races worth a 409).
var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "booking not found")
	ErrHoardingNotFound    = apperror.New(http.StatusNotFound, "hoarding not found")
	ErrHoardingUnavailable = apperror.New(http.StatusBadRequest, "hoarding is not available")
	ErrDateConflict        = apperror.New(http.StatusBadRequest, "hoarding is already booked for the selected dates")
	ErrInvalidDateRange    = apperror.New(http.StatusBadRequest, "end date must be after start date")
	ErrStartDatePast       = apperror.New(http.StatusBadRequest, "start date must be in the future")
	ErrInvalidStatus       = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrAlreadyFinalized    = apperror.New(http.StatusBadRequest, "booking has already been finalized")
	ErrPermissionDenied    = apperror.New(http.StatusForbidden, "not authorized")
)

// Status is the admission status of a booking.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// PaymentStatus tracks payment progress. No workflow transitions it;
// the field is carried for the payment integration that never shipped.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Booking represents a requested reservation of a hoarding for a date range.
// HoardingLocation, HoardingDailyPrice, UserName and UserEmail are resolved
// from the referenced rows when reading.
type Booking struct {
	ID                 string
	HoardingID         string
	HoardingLocation   string
	HoardingDailyPrice float64
	UserID             string
	UserName           string
	UserEmail          string
	StartDate          time.Time
	EndDate            time.Time
	Status             Status
	TotalAmount        float64
	PaymentStatus      PaymentStatus
	PaymentTxnID       *string
	PaymentMethod      *string
	PaymentDate        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Filter defines parameters for listing bookings.
type Filter struct {
	UserID     string
	HoardingID string
	Status     string

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
