package booking

import (
	"errors"
	"time"

	bookingRepo "worknook/database/repository/booking"
	serviceRepo "worknook/database/repository/service"
	workerRepo "worknook/database/repository/worker"
	"worknook/models"
	"worknook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingService is the production implementation of BookingService.
type DefaultBookingService struct {
	Repo        bookingRepo.BookingRepository
	ServiceRepo serviceRepo.ServiceRepository
	WorkerRepo  workerRepo.WorkerRepository
}

func (s *DefaultBookingService) Create(p models.ClientPrincipal, input CreateInput) (*models.Booking, error) {
	if input.ServiceID == "" {
		return nil, utils.InvalidInput("Service is required")
	}
	if input.Date.IsZero() {
		return nil, utils.InvalidInput("Date is required")
	}

	svc, err := s.ServiceRepo.GetByID(input.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrNotFound) {
			return nil, utils.NotFound("Service not found")
		}
		return nil, utils.Unexpected("failed to fetch service", err)
	}
	if !svc.IsAvailable {
		return nil, utils.Unavailable("Service is not available")
	}

	b := &models.Booking{
		ID:        uuid.New().String(),
		ServiceID: svc.ID,
		ClientID:  p.ID,
		// Snapshot the owning worker so authorization stays bound to the
		// worker at booking time.
		WorkerID:  svc.WorkerID,
		Status:    models.StatusPending,
		Date:      input.Date,
		Note:      input.Note,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.Create(b); err != nil {
		return nil, utils.Unexpected("failed to create booking", err)
	}

	utils.GetLogger().Info("Booking created",
		zap.String("bookingID", b.ID),
		zap.String("serviceID", svc.ID),
		zap.String("workerID", b.WorkerID))
	return b, nil
}

func (s *DefaultBookingService) ListForClient(p models.ClientPrincipal) ([]models.BookingView, error) {
	views, err := s.Repo.ListByClient(p.ID)
	if err != nil {
		return nil, utils.Unexpected("failed to list bookings", err)
	}
	return views, nil
}

func (s *DefaultBookingService) ListForWorker(p models.WorkerPrincipal) ([]models.BookingView, error) {
	w, err := s.ownerProfile(p)
	if err != nil {
		return nil, err
	}
	views, err := s.Repo.ListByWorker(w.ID)
	if err != nil {
		return nil, utils.Unexpected("failed to list bookings", err)
	}
	return views, nil
}

func (s *DefaultBookingService) ownerProfile(p models.WorkerPrincipal) (*models.Worker, error) {
	w, err := s.WorkerRepo.GetByUserID(p.ID)
	if err != nil {
		if errors.Is(err, workerRepo.ErrNotFound) {
			return nil, utils.NotFound("Worker profile not found")
		}
		return nil, utils.Unexpected("failed to fetch worker profile", err)
	}
	return w, nil
}

func (s *DefaultBookingService) getBooking(id string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, utils.NotFound("Booking not found")
		}
		return nil, utils.Unexpected("failed to fetch booking", err)
	}
	return b, nil
}
