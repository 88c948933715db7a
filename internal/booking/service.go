package booking

import (
	"context"
	"errors"
	"time"

	"github.com/hoardspace/bms-backend/internal/hoarding"
)

// CreateRequest carries an admission request.
type CreateRequest struct {
	UserID     string
	HoardingID string
	StartDate  time.Time
	EndDate    time.Time
}

// Policy controls the admission behaviors the source system left open.
type Policy struct {
	// ReleaseOnReject flips a booked hoarding back to available when its
	// booking is rejected. Off by default: the hoarding stays booked until
	// an admin resets it manually.
	ReleaseOnReject bool

	// StrictStatusTransitions restricts transitions to pending bookings.
	// Off by default: a terminal booking can be overwritten.
	StrictStatusTransitions bool
}

type Service interface {
	// Create admits a booking request: the hoarding must exist and be
	// flagged available, the dates must be a strictly ordered future range,
	// and no pending or approved booking for the hoarding may overlap.
	// On success the booking is persisted as pending with its total amount
	// computed from the hoarding's daily price.
	Create(ctx context.Context, req CreateRequest) (*Booking, error)

	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// SetStatus transitions a booking to approved or rejected (admin only,
	// enforced at the route level). Approval marks the hoarding booked.
	SetStatus(ctx context.Context, id string, status string) (*Booking, error)

	Delete(ctx context.Context, id string, deleterUserID string, isAdmin bool) error
}

type service struct {
	repo            Repository
	hoardingService hoarding.Service
	policy          Policy
}

func NewService(repo Repository, hoardingService hoarding.Service, policy Policy) Service {
	return &service{
		repo:            repo,
		hoardingService: hoardingService,
		policy:          policy,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	// 1. Hoarding must exist
	h, err := s.hoardingService.GetByID(ctx, req.HoardingID)
	if err != nil {
		if errors.Is(err, hoarding.ErrNotFound) {
			return nil, ErrHoardingNotFound
		}
		return nil, err
	}

	// 2. The stored availability flag gates admission regardless of dates
	if h.Status != hoarding.StatusAvailable {
		return nil, ErrHoardingUnavailable
	}

	// 3. Dates must be strictly ordered
	if !req.EndDate.After(req.StartDate) {
		return nil, ErrInvalidDateRange
	}

	// 4. Start date must be in the future at admission time
	if !req.StartDate.After(time.Now().UTC()) {
		return nil, ErrStartDatePast
	}

	b := &Booking{
		HoardingID:    req.HoardingID,
		UserID:        req.UserID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Status:        StatusPending,
		TotalAmount:   Price(h.DailyPrice, req.StartDate, req.EndDate),
		PaymentStatus: PaymentPending,
	}

	// 5. Overlap scan and insert run under a hoarding row lock so two
	// concurrent requests for the same dates cannot both pass the check.
	if err := s.repo.CreateAdmitted(ctx, b); err != nil {
		return nil, err
	}

	// Re-read to resolve the hoarding and requester references.
	return s.repo.GetByID(ctx, b.ID)
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) SetStatus(ctx context.Context, id string, status string) (*Booking, error) {
	st := Status(status)
	if st != StatusApproved && st != StatusRejected {
		return nil, ErrInvalidStatus
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.policy.StrictStatusTransitions && b.Status != StatusPending {
		return nil, ErrAlreadyFinalized
	}

	update := StatusUpdate{
		BookingID:  id,
		Status:     st,
		HoardingID: b.HoardingID,
	}

	switch st {
	case StatusApproved:
		update.HoardingStatus = string(hoarding.StatusBooked)
	case StatusRejected:
		if s.policy.ReleaseOnReject {
			update.HoardingStatus = string(hoarding.StatusAvailable)
		}
	}

	if err := s.repo.UpdateStatus(ctx, update); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

// Delete removes a booking. Owners and admins may delete regardless of
// status; no hoarding state is cleaned up.
func (s *service) Delete(ctx context.Context, id string, deleterUserID string, isAdmin bool) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !isAdmin && b.UserID != deleterUserID {
		return ErrPermissionDenied
	}

	return s.repo.Delete(ctx, id)
}
