package listing

import (
	"errors"
	"time"

	serviceRepo "worknook/database/repository/service"
	workerRepo "worknook/database/repository/worker"
	"worknook/models"
	"worknook/services/worker"
	"worknook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// DefaultListingService is the production implementation of ListingService.
type DefaultListingService struct {
	Repo       serviceRepo.ServiceRepository
	WorkerRepo workerRepo.WorkerRepository
	Workers    worker.WorkerService
}

func (s *DefaultListingService) Create(p models.WorkerPrincipal, input CreateInput) (*models.Service, error) {
	if input.Title == "" || input.Description == "" {
		return nil, utils.InvalidInput("Title and description are required")
	}
	if input.Price <= 0 {
		return nil, utils.InvalidInput("Price must be positive")
	}

	owner, err := s.ownerProfile(p)
	if err != nil {
		return nil, err
	}

	svc := &models.Service{
		ID:          uuid.New().String(),
		WorkerID:    owner.ID,
		Title:       input.Title,
		Description: input.Description,
		ServiceType: owner.ServiceType,
		Price:       input.Price,
		IsAvailable: true,
		CreatedAt:   time.Now(),
	}
	if err := s.Repo.Create(svc); err != nil {
		return nil, utils.Unexpected("failed to create service", err)
	}

	utils.GetLogger().Info("Service published",
		zap.String("serviceID", svc.ID), zap.String("workerID", owner.ID))
	return svc, nil
}

func (s *DefaultListingService) Update(serviceID string, p models.WorkerPrincipal, patch models.ServicePatch) (*models.Service, error) {
	owner, err := s.ownerProfile(p)
	if err != nil {
		return nil, err
	}
	svc, err := s.get(serviceID)
	if err != nil {
		return nil, err
	}
	if svc.WorkerID != owner.ID {
		return nil, utils.Forbidden("Not authorized to update this service")
	}

	updateFields := bson.M{}
	if patch.Title != nil && *patch.Title != "" {
		updateFields["title"] = *patch.Title
	}
	if patch.Description != nil && *patch.Description != "" {
		updateFields["description"] = *patch.Description
	}
	if patch.Price != nil && *patch.Price > 0 {
		updateFields["price"] = *patch.Price
	}
	// A present availability flag always applies; false is a real value.
	if patch.IsAvailable != nil {
		updateFields["is_available"] = *patch.IsAvailable
	}

	if len(updateFields) > 0 {
		if err := s.Repo.UpdateWithDocument(svc.ID, bson.M{"$set": updateFields}); err != nil {
			if errors.Is(err, serviceRepo.ErrNotFound) {
				return nil, utils.NotFound("Service not found")
			}
			return nil, utils.Unexpected("failed to update service", err)
		}
	}

	return s.get(serviceID)
}

func (s *DefaultListingService) Remove(serviceID string, p models.WorkerPrincipal) error {
	owner, err := s.ownerProfile(p)
	if err != nil {
		return err
	}
	svc, err := s.get(serviceID)
	if err != nil {
		return err
	}
	if svc.WorkerID != owner.ID {
		return utils.Forbidden("Not authorized to delete this service")
	}

	if err := s.Repo.Delete(svc.ID); err != nil {
		if errors.Is(err, serviceRepo.ErrNotFound) {
			return utils.NotFound("Service not found")
		}
		return utils.Unexpected("failed to delete service", err)
	}
	return nil
}

func (s *DefaultListingService) List(serviceType string) ([]models.ServiceView, error) {
	if serviceType != "" && !models.IsValidServiceType(serviceType) {
		return nil, utils.InvalidInput("Unknown service type")
	}
	services, err := s.Repo.List(serviceType)
	if err != nil {
		return nil, utils.Unexpected("failed to list services", err)
	}

	views := make([]models.ServiceView, 0, len(services))
	for i := range services {
		views = append(views, *s.enrich(&services[i]))
	}
	return views, nil
}

func (s *DefaultListingService) GetByID(id string) (*models.ServiceView, error) {
	svc, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return s.enrich(svc), nil
}

func (s *DefaultListingService) ownerProfile(p models.WorkerPrincipal) (*models.Worker, error) {
	owner, err := s.WorkerRepo.GetByUserID(p.ID)
	if err != nil {
		if errors.Is(err, workerRepo.ErrNotFound) {
			return nil, utils.NotFound("Worker profile not found")
		}
		return nil, utils.Unexpected("failed to fetch worker profile", err)
	}
	return owner, nil
}

func (s *DefaultListingService) get(id string) (*models.Service, error) {
	svc, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrNotFound) {
			return nil, utils.NotFound("Service not found")
		}
		return nil, utils.Unexpected("failed to fetch service", err)
	}
	return svc, nil
}

// enrich joins the public worker summary; a missing worker leaves the
// summary empty rather than failing the read.
func (s *DefaultListingService) enrich(svc *models.Service) *models.ServiceView {
	view := &models.ServiceView{Service: *svc}
	if summary, err := s.Workers.GetWorkerByID(svc.WorkerID); err == nil {
		view.Worker = *summary
	}
	return view
}
