package handlers

import (
	"net/http"

	"worknook/middleware"
	"worknook/models"
	"worknook/services/listing"
	"worknook/utils"

	"github.com/gin-gonic/gin"
)

// ServiceHandler serves the service listing catalogue.
type ServiceHandler struct {
	Listings listing.ListingService
}

// NewServiceHandler creates a new ServiceHandler.
func NewServiceHandler(ls listing.ListingService) *ServiceHandler {
	return &ServiceHandler{Listings: ls}
}

// CreateServiceHandler publishes a new listing owned by the caller's worker
// profile. The service type is copied from the profile, never from the body.
func (h *ServiceHandler) CreateServiceHandler(c *gin.Context) {
	p, ok := middleware.WorkerFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusForbidden, "Worker role required", "")
		return
	}

	var input listing.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid listing payload", err.Error())
		return
	}

	svc, err := h.Listings.Create(p, input)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

// ListServicesHandler returns the catalogue, newest first, optionally
// filtered by ?service_type=. Unauthenticated.
func (h *ServiceHandler) ListServicesHandler(c *gin.Context) {
	views, err := h.Listings.List(c.Query("service_type"))
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// GetServiceHandler returns one listing with its worker summary. Unauthenticated.
func (h *ServiceHandler) GetServiceHandler(c *gin.Context) {
	view, err := h.Listings.GetByID(c.Param("id"))
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateServiceHandler applies a partial update to a listing owned by the
// caller. Absent fields are left untouched.
func (h *ServiceHandler) UpdateServiceHandler(c *gin.Context) {
	p, ok := middleware.WorkerFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusForbidden, "Worker role required", "")
		return
	}

	var patch models.ServicePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid update payload", err.Error())
		return
	}

	svc, err := h.Listings.Update(c.Param("id"), p, patch)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// DeleteServiceHandler removes a listing owned by the caller. Deleting a
// listing that is already gone yields 404.
func (h *ServiceHandler) DeleteServiceHandler(c *gin.Context) {
	p, ok := middleware.WorkerFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusForbidden, "Worker role required", "")
		return
	}

	if err := h.Listings.Remove(c.Param("id"), p); err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}
