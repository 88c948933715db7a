package http

import (
	"time"

	"github.com/hoardspace/bms-backend/internal/booking"
	"github.com/hoardspace/bms-backend/internal/pkg/request"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	UserID     string `form:"user_id" binding:"omitempty,uuid"`
	HoardingID string `form:"hoarding_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	SortBy     string `form:"sort_by" binding:"omitempty,oneof=start_date end_date total_amount created_at"`
}

// HoardingTag is the brief hoarding view embedded in booking responses.
type HoardingTag struct {
	ID         string  `json:"id"`
	Location   string  `json:"location"`
	DailyPrice float64 `json:"daily_price"`
}

// UserTag is the brief requester view embedded in booking responses.
type UserTag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type PaymentResponse struct {
	Status        string     `json:"status"`
	TransactionID *string    `json:"transaction_id,omitempty"`
	Method        *string    `json:"method,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
}

type BookingResponse struct {
	ID          string          `json:"id"`
	Hoarding    HoardingTag     `json:"hoarding"`
	User        UserTag         `json:"user"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	Status      string          `json:"status"`
	TotalAmount float64         `json:"total_amount"`
	Payment     PaymentResponse `json:"payment"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func NewResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID: b.ID,
		Hoarding: HoardingTag{
			ID:         b.HoardingID,
			Location:   b.HoardingLocation,
			DailyPrice: b.HoardingDailyPrice,
		},
		User: UserTag{
			ID:    b.UserID,
			Name:  b.UserName,
			Email: b.UserEmail,
		},
		StartDate:   b.StartDate,
		EndDate:     b.EndDate,
		Status:      string(b.Status),
		TotalAmount: b.TotalAmount,
		Payment: PaymentResponse{
			Status:        string(b.PaymentStatus),
			TransactionID: b.PaymentTxnID,
			Method:        b.PaymentMethod,
			PaidAt:        b.PaymentDate,
		},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

type CreateBookingBody struct {
	HoardingID string    `json:"hoarding_id" binding:"required,uuid"`
	StartDate  time.Time `json:"start_date" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	EndDate    time.Time `json:"end_date" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

type UpdateStatusBody struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}
