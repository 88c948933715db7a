package hoarding

import (
	"context"
	"strings"
	"time"
)

// AvailabilityChecker answers whether a hoarding has a conflicting booking
// in the given date range. Satisfied by the booking repository.
type AvailabilityChecker interface {
	HasOverlap(ctx context.Context, hoardingID string, start, end time.Time) (bool, error)
}

type CreateRequest struct {
	Location    string
	Width       float64
	Height      float64
	DailyPrice  float64
	Status      *string
	Description *string
	CreatedBy   string
}

// UpdateRequest carries optional field updates; nil means unchanged.
type UpdateRequest struct {
	Location    *string
	Width       *float64
	Height      *float64
	DailyPrice  *float64
	Status      *string
	Description *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Hoarding, error)
	GetByID(ctx context.Context, id string) (*Hoarding, error)
	List(ctx context.Context, filter Filter) ([]*Hoarding, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Hoarding, error)
	Delete(ctx context.Context, id string) error
	SetImage(ctx context.Context, id string, fileID *string) error

	// CheckAvailability reports whether the hoarding is free for [start, end),
	// derived from the booking overlap scan rather than the stored status flag.
	CheckAvailability(ctx context.Context, id string, start, end time.Time) (bool, error)
}

type service struct {
	repo    Repository
	checker AvailabilityChecker
}

func NewService(repo Repository, checker AvailabilityChecker) Service {
	return &service{
		repo:    repo,
		checker: checker,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Hoarding, error) {
	if strings.TrimSpace(req.Location) == "" {
		return nil, ErrLocationRequired
	}
	if req.Width < 1 || req.Height < 1 {
		return nil, ErrInvalidSize
	}
	if req.DailyPrice < 0 {
		return nil, ErrInvalidPrice
	}

	status := StatusAvailable
	if req.Status != nil {
		status = Status(*req.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
	}

	h := &Hoarding{
		Location:    strings.TrimSpace(req.Location),
		Width:       req.Width,
		Height:      req.Height,
		DailyPrice:  req.DailyPrice,
		Status:      status,
		Description: req.Description,
		CreatedBy:   req.CreatedBy,
	}

	if err := s.repo.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Hoarding, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Hoarding, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Hoarding, error) {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Location != nil {
		if strings.TrimSpace(*req.Location) == "" {
			return nil, ErrLocationRequired
		}
		h.Location = strings.TrimSpace(*req.Location)
	}
	if req.Width != nil {
		h.Width = *req.Width
	}
	if req.Height != nil {
		h.Height = *req.Height
	}
	if h.Width < 1 || h.Height < 1 {
		return nil, ErrInvalidSize
	}
	if req.DailyPrice != nil {
		if *req.DailyPrice < 0 {
			return nil, ErrInvalidPrice
		}
		h.DailyPrice = *req.DailyPrice
	}
	if req.Status != nil {
		status := Status(*req.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
		h.Status = status
	}
	if req.Description != nil {
		h.Description = req.Description
	}

	if err := s.repo.Update(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) SetImage(ctx context.Context, id string, fileID *string) error {
	return s.repo.SetImage(ctx, id, fileID)
}

func (s *service) CheckAvailability(ctx context.Context, id string, start, end time.Time) (bool, error) {
	if !end.After(start) {
		return false, ErrInvalidDateRange
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return false, err
	}

	hasOverlap, err := s.checker.HasOverlap(ctx, id, start, end)
	if err != nil {
		return false, err
	}
	return !hasOverlap, nil
}
