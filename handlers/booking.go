package handlers

import (
	"net/http"
	"time"

	"worknook/middleware"
	"worknook/models"
	"worknook/services/booking"
	"worknook/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves the booking lifecycle endpoints.
type BookingHandler struct {
	Bookings booking.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bs booking.BookingService) *BookingHandler {
	return &BookingHandler{Bookings: bs}
}

type createBookingRequest struct {
	ServiceID string `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Note      string `json:"note"`
}

func parseBookingDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// CreateBookingHandler books an available service for the calling client.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	p, ok := middleware.ClientFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusForbidden, "Client role required", "")
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking payload", err.Error())
		return
	}
	date, err := parseBookingDate(req.Date)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking date", "use RFC3339 or YYYY-MM-DD")
		return
	}

	b, err := h.Bookings.Create(p, booking.CreateInput{
		ServiceID: req.ServiceID,
		Date:      date,
		Note:      req.Note,
	})
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// ListMyBookingsHandler returns the calling client's bookings, newest date
// first, enriched with service and worker summaries.
func (h *BookingHandler) ListMyBookingsHandler(c *gin.Context) {
	p, ok := middleware.ClientFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusForbidden, "Client role required", "")
		return
	}

	views, err := h.Bookings.ListForClient(p)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// ListAssignedBookingsHandler returns the bookings assigned to the calling
// worker, newest date first, enriched with service and client summaries.
func (h *BookingHandler) ListAssignedBookingsHandler(c *gin.Context) {
	p, ok := middleware.WorkerFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusForbidden, "Worker role required", "")
		return
	}

	views, err := h.Bookings.ListForWorker(p)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateBookingStatusHandler moves a booking along its lifecycle. Only the
// worker the booking is assigned to may do this.
func (h *BookingHandler) UpdateBookingStatusHandler(c *gin.Context) {
	p, ok := middleware.WorkerFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusForbidden, "Worker role required", "")
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid status payload", err.Error())
		return
	}

	b, err := h.Bookings.Transition(c.Param("id"), p, models.BookingStatus(req.Status))
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

type rateBookingRequest struct {
	Score   float64 `json:"score" binding:"required"`
	Comment string  `json:"comment"`
}

// RateBookingHandler attaches a one-time rating to a completed booking owned
// by the calling client.
func (h *BookingHandler) RateBookingHandler(c *gin.Context) {
	p, ok := middleware.ClientFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusForbidden, "Client role required", "")
		return
	}

	var req rateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid rating payload", err.Error())
		return
	}

	b, err := h.Bookings.Rate(c.Param("id"), p, booking.RateInput{
		Score:   req.Score,
		Comment: req.Comment,
	})
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
