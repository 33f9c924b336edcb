package handlers

import (
	"net/http"

	"worknook/middleware"
	"worknook/services/identity"
	"worknook/services/worker"
	"worknook/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the authenticated account and the public worker directory.
type UserHandler struct {
	Identity identity.IdentityService
	Workers  worker.WorkerService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(is identity.IdentityService, ws worker.WorkerService) *UserHandler {
	return &UserHandler{Identity: is, Workers: ws}
}

// GetMeHandler returns the caller's profile, with the worker profile attached
// for worker accounts.
func (h *UserHandler) GetMeHandler(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	profile, err := h.Identity.GetProfile(p)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateMeHandler patches the caller's profile. Empty fields are ignored.
func (h *UserHandler) UpdateMeHandler(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	var update identity.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid profile payload", err.Error())
		return
	}

	profile, err := h.Identity.UpdateProfile(p, update)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ListWorkersHandler returns the public worker directory, optionally filtered
// by service type via the ?service_type= query parameter.
func (h *UserHandler) ListWorkersHandler(c *gin.Context) {
	workers, err := h.Workers.ListWorkers(c.Query("service_type"))
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, workers)
}

// GetWorkerHandler returns the public directory view of a single worker.
func (h *UserHandler) GetWorkerHandler(c *gin.Context) {
	summary, err := h.Workers.GetWorkerByID(c.Param("id"))
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
