package http

import (
	"time"

	"github.com/hoardspace/bms-backend/internal/file"
	"github.com/hoardspace/bms-backend/internal/hoarding"
	"github.com/hoardspace/bms-backend/internal/pkg/request"
)

// ListHoardingsRequest defines query parameters for listing hoardings.
type ListHoardingsRequest struct {
	request.ListParams
	Status   string   `form:"status" binding:"omitempty,oneof=available booked maintenance"`
	Location string   `form:"location"`
	MinPrice *float64 `form:"min_price" binding:"omitempty,min=0"`
	MaxPrice *float64 `form:"max_price" binding:"omitempty,min=0"`
	SortBy   string   `form:"sort_by" binding:"omitempty,oneof=daily_price location created_at"`
}

// SizeResponse mirrors the width/height pair of a hoarding.
type SizeResponse struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type HoardingResponse struct {
	ID           string       `json:"id"`
	Location     string       `json:"location"`
	Size         SizeResponse `json:"size"`
	DailyPrice   float64      `json:"daily_price"`
	Status       string       `json:"status"`
	ImageURL     *string      `json:"image_url,omitempty"`
	ThumbnailURL *string      `json:"thumbnail_url,omitempty"`
	Description  *string      `json:"description,omitempty"`
	CreatedBy    string       `json:"created_by"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func NewResponse(h *hoarding.Hoarding) HoardingResponse {
	resp := HoardingResponse{
		ID:          h.ID,
		Location:    h.Location,
		Size:        SizeResponse{Width: h.Width, Height: h.Height},
		DailyPrice:  h.DailyPrice,
		Status:      string(h.Status),
		Description: h.Description,
		CreatedBy:   h.CreatedBy,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
	if h.ImageFileID != nil {
		u := file.FileURL(*h.ImageFileID)
		t := file.ThumbnailURL(*h.ImageFileID)
		resp.ImageURL = &u
		resp.ThumbnailURL = &t
	}
	return resp
}

type SizeBody struct {
	Width  float64 `json:"width" binding:"required,min=1"`
	Height float64 `json:"height" binding:"required,min=1"`
}

type CreateHoardingBody struct {
	Location    string   `json:"location" binding:"required"`
	Size        SizeBody `json:"size" binding:"required"`
	DailyPrice  *float64 `json:"daily_price" binding:"required,min=0"`
	Status      *string  `json:"status" binding:"omitempty,oneof=available booked maintenance"`
	Description *string  `json:"description"`
}

type UpdateHoardingBody struct {
	Location    *string  `json:"location"`
	Width       *float64 `json:"width" binding:"omitempty,min=1"`
	Height      *float64 `json:"height" binding:"omitempty,min=1"`
	DailyPrice  *float64 `json:"daily_price" binding:"omitempty,min=0"`
	Status      *string  `json:"status" binding:"omitempty,oneof=available booked maintenance"`
	Description *string  `json:"description"`
}

// AvailabilityRequest defines query parameters for the availability check.
type AvailabilityRequest struct {
	StartDate time.Time `form:"start_date" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	EndDate   time.Time `form:"end_date" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

// AvailabilityResponse reports derived availability for a date range.
type AvailabilityResponse struct {
	HoardingID string    `json:"hoarding_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Available  bool      `json:"available"`
}
