package handlers

import (
	"worknook/services/identity"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Identity identity.IdentityService

	// Auth endpoints
	RegisterClientHandler gin.HandlerFunc
	RegisterWorkerHandler gin.HandlerFunc
	LoginHandler          gin.HandlerFunc

	// Account and directory endpoints
	GetMeHandler       gin.HandlerFunc
	UpdateMeHandler    gin.HandlerFunc
	ListWorkersHandler gin.HandlerFunc
	GetWorkerHandler   gin.HandlerFunc

	// Service listing endpoints
	CreateServiceHandler gin.HandlerFunc
	ListServicesHandler  gin.HandlerFunc
	GetServiceHandler    gin.HandlerFunc
	UpdateServiceHandler gin.HandlerFunc
	DeleteServiceHandler gin.HandlerFunc

	// Booking endpoints
	CreateBookingHandler        gin.HandlerFunc
	ListMyBookingsHandler       gin.HandlerFunc
	ListAssignedBookingsHandler gin.HandlerFunc
	UpdateBookingStatusHandler  gin.HandlerFunc
	RateBookingHandler          gin.HandlerFunc
}

// NewHandlerBundle wires the endpoint handlers from their services.
func NewHandlerBundle(ah *AuthHandler, uh *UserHandler, sh *ServiceHandler, bh *BookingHandler) *HandlerBundle {
	return &HandlerBundle{
		Identity: ah.Identity,

		RegisterClientHandler: ah.RegisterClientHandler,
		RegisterWorkerHandler: ah.RegisterWorkerHandler,
		LoginHandler:          ah.LoginHandler,

		GetMeHandler:       uh.GetMeHandler,
		UpdateMeHandler:    uh.UpdateMeHandler,
		ListWorkersHandler: uh.ListWorkersHandler,
		GetWorkerHandler:   uh.GetWorkerHandler,

		CreateServiceHandler: sh.CreateServiceHandler,
		ListServicesHandler:  sh.ListServicesHandler,
		GetServiceHandler:    sh.GetServiceHandler,
		UpdateServiceHandler: sh.UpdateServiceHandler,
		DeleteServiceHandler: sh.DeleteServiceHandler,

		CreateBookingHandler:        bh.CreateBookingHandler,
		ListMyBookingsHandler:       bh.ListMyBookingsHandler,
		ListAssignedBookingsHandler: bh.ListAssignedBookingsHandler,
		UpdateBookingStatusHandler:  bh.UpdateBookingStatusHandler,
		RateBookingHandler:          bh.RateBookingHandler,
	}
}
