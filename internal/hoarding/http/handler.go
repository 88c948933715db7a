package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hoardspace/bms-backend/internal/auth"
	"github.com/hoardspace/bms-backend/internal/file"
	"github.com/hoardspace/bms-backend/internal/hoarding"
	"github.com/hoardspace/bms-backend/internal/pkg/request"
	"github.com/hoardspace/bms-backend/internal/pkg/response"
)

const maxImageSizeBytes = 5 << 20 // 5 MiB

type Handler struct {
	service     hoarding.Service
	fileService file.Service
}

func NewHandler(service hoarding.Service, fileService file.Service) *Handler {
	return &Handler{
		service:     service,
		fileService: fileService,
	}
}

func (h *Handler) List(c *gin.Context) {
	var req ListHoardingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := hoarding.Filter{
		Status:    req.Status,
		Location:  req.Location,
		MinPrice:  req.MinPrice,
		MaxPrice:  req.MaxPrice,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: strings.ToUpper(req.SortOrder),
	}

	hoardings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]HoardingResponse, len(hoardings))
	for i, hd := range hoardings {
		items[i] = NewResponse(hd)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request", "details": err.Error()})
		return
	}

	hd, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(hd))
}

// Availability answers whether the hoarding is free for a date range.
// Derived from the booking overlap scan, not the stored status flag.
func (h *Handler) Availability(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request", "details": err.Error()})
		return
	}

	var req AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid query parameters", "details": err.Error()})
		return
	}

	available, err := h.service.CheckAvailability(c.Request.Context(), uri.ID, req.StartDate, req.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, AvailabilityResponse{
		HoardingID: uri.ID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Available:  available,
	})
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateHoardingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body", "details": err.Error()})
		return
	}

	req := hoarding.CreateRequest{
		Location:    body.Location,
		Width:       body.Size.Width,
		Height:      body.Size.Height,
		DailyPrice:  *body.DailyPrice,
		Status:      body.Status,
		Description: body.Description,
		CreatedBy:   auth.GetUserID(c),
	}

	hd, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(hd))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateHoardingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body", "details": err.Error()})
		return
	}

	req := hoarding.UpdateRequest{
		Location:    body.Location,
		Width:       body.Width,
		Height:      body.Height,
		DailyPrice:  body.DailyPrice,
		Status:      body.Status,
		Description: body.Description,
	}

	hd, err := h.service.Update(c.Request.Context(), uri.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(hd))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadImage attaches a photo to a hoarding. The previous photo, if any,
// is removed after the new one is linked.
func (h *Handler) UploadImage(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request", "details": err.Error()})
		return
	}

	hd, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "image is required"})
		return
	}

	f, err := h.fileService.Upload(c.Request.Context(), file.UploadInput{
		FileHeader:   fileHeader,
		UserID:       auth.GetUserID(c),
		MaxSizeBytes: maxImageSizeBytes,
		AllowedTypes: []string{"image/"},
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.SetImage(c.Request.Context(), uri.ID, &f.ID); err != nil {
		// Rollback the orphaned upload
		_ = h.fileService.Delete(c.Request.Context(), f.ID)
		response.Error(c, err)
		return
	}

	if hd.ImageFileID != nil {
		_ = h.fileService.Delete(c.Request.Context(), *hd.ImageFileID)
	}

	u := file.FileURL(f.ID)
	c.JSON(http.StatusOK, gin.H{"message": "image uploaded successfully", "image_url": u})
}
