package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hoardspace/bms-backend/internal/auth"
	"github.com/hoardspace/bms-backend/internal/booking"
	"github.com/hoardspace/bms-backend/internal/pkg/request"
	"github.com/hoardspace/bms-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// List returns bookings. Admins see everything and may filter by user;
// everyone else is pinned to their own bookings.
func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid query parameters", "details": err.Error()})
		return
	}

	userID := req.UserID
	if !auth.IsAdmin(c) {
		userID = auth.GetUserID(c)
	}

	h.list(c, booking.Filter{
		UserID:     userID,
		HoardingID: req.HoardingID,
		Status:     req.Status,
		Page:       req.Page,
		PageSize:   req.PageSize,
		SortBy:     req.SortBy,
		SortOrder:  strings.ToUpper(req.SortOrder),
	}, req.Page, req.PageSize)
}

// ListMine returns the authenticated user's own bookings.
func (h *Handler) ListMine(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid query parameters", "details": err.Error()})
		return
	}

	h.list(c, booking.Filter{
		UserID:     auth.GetUserID(c),
		HoardingID: req.HoardingID,
		Status:     req.Status,
		Page:       req.Page,
		PageSize:   req.PageSize,
		SortBy:     req.SortBy,
		SortOrder:  strings.ToUpper(req.SortOrder),
	}, req.Page, req.PageSize)
}

func (h *Handler) list(c *gin.Context, filter booking.Filter, page, pageSize int) {
	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

// Get returns one booking. Non-admins may only read their own.
func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request", "details": err.Error()})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !auth.IsAdmin(c) && b.UserID != auth.GetUserID(c) {
		response.Error(c, booking.ErrPermissionDenied)
		return
	}

	c.JSON(http.StatusOK, NewResponse(b))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		UserID:     auth.GetUserID(c),
		HoardingID: body.HoardingID,
		StartDate:  body.StartDate,
		EndDate:    body.EndDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(b))
}

// UpdateStatus approves or rejects a booking (admin only).
func (h *Handler) UpdateStatus(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.SetStatus(c.Request.Context(), uri.ID, body.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(b))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request", "details": err.Error()})
		return
	}

	err := h.service.Delete(c.Request.Context(), req.ID, auth.GetUserID(c), auth.IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
