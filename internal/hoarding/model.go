package hoarding

import (
	"net/http"
	"time"

	"github.com/hoardspace/bms-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "hoarding not found")
	ErrLocationRequired = apperror.New(http.StatusBadRequest, "location is required")
	ErrInvalidSize      = apperror.New(http.StatusBadRequest, "width and height must be at least 1 meter")
	ErrInvalidPrice     = apperror.New(http.StatusBadRequest, "price cannot be negative")
	ErrInvalidStatus    = apperror.New(http.StatusBadRequest, "invalid hoarding status")
	ErrInvalidDateRange = apperror.New(http.StatusBadRequest, "end date must be after start date")
)

// Status is the stored availability flag of a hoarding.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusBooked      Status = "booked"
	StatusMaintenance Status = "maintenance"
)

// Valid reports whether s is a known hoarding status.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusBooked, StatusMaintenance:
		return true
	}
	return false
}

// Hoarding represents a bookable outdoor advertising space.
// Width and Height are in meters; DailyPrice is the rate per booked day.
type Hoarding struct {
	ID          string // UUID
	Location    string
	Width       float64
	Height      float64
	DailyPrice  float64
	Status      Status
	ImageFileID *string
	Description *string
	CreatedBy   string // admin user ID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter defines parameters for listing hoardings.
type Filter struct {
	Status   string
	Location string // substring match
	MinPrice *float64
	MaxPrice *float64

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
