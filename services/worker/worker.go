package worker

import (
	"errors"
	"time"

	userRepo "worknook/database/repository/user"
	workerRepo "worknook/database/repository/worker"
	"worknook/models"
	"worknook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultWorkerService is the production implementation of WorkerService.
type DefaultWorkerService struct {
	Repo     workerRepo.WorkerRepository
	UserRepo userRepo.UserRepository
}

func (s *DefaultWorkerService) CreateProfile(p models.WorkerPrincipal, input ProfileInput) (*models.Worker, error) {
	if !models.IsValidServiceType(input.ServiceType) {
		return nil, utils.InvalidInput("Unknown service type")
	}
	if input.Experience == "" || input.Bio == "" {
		return nil, utils.InvalidInput("Experience and bio are required")
	}
	if input.DocumentRef == "" {
		return nil, utils.InvalidInput("ID Document is required")
	}

	if _, err := s.Repo.GetByUserID(p.ID); err == nil {
		return nil, utils.DuplicateProfile("Worker profile already exists")
	} else if !errors.Is(err, workerRepo.ErrNotFound) {
		return nil, utils.Unexpected("failed to check existing profile", err)
	}

	w := &models.Worker{
		ID:          uuid.New().String(),
		UserID:      p.ID,
		ServiceType: input.ServiceType,
		Experience:  input.Experience,
		Bio:         input.Bio,
		IDDocument:  input.DocumentRef,
		CreatedAt:   time.Now(),
	}
	if err := s.Repo.Create(w); err != nil {
		return nil, utils.Unexpected("failed to create worker profile", err)
	}

	utils.GetLogger().Info("Worker profile created",
		zap.String("workerID", w.ID), zap.String("serviceType", w.ServiceType))
	return w, nil
}

func (s *DefaultWorkerService) FindByPrincipal(principalID string) (*models.Worker, error) {
	w, err := s.Repo.GetByUserID(principalID)
	if err != nil {
		if errors.Is(err, workerRepo.ErrNotFound) {
			return nil, utils.NotFound("Worker profile not found")
		}
		return nil, utils.Unexpected("failed to fetch worker profile", err)
	}
	return w, nil
}

func (s *DefaultWorkerService) GetWorkerByID(id string) (*models.WorkerSummary, error) {
	w, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, workerRepo.ErrNotFound) {
			return nil, utils.NotFound("Worker not found")
		}
		return nil, utils.Unexpected("failed to fetch worker", err)
	}
	return s.summarize(w), nil
}

func (s *DefaultWorkerService) ListWorkers(serviceType string) ([]models.WorkerSummary, error) {
	if serviceType != "" && !models.IsValidServiceType(serviceType) {
		return nil, utils.InvalidInput("Unknown service type")
	}
	workers, err := s.Repo.List(serviceType)
	if err != nil {
		return nil, utils.Unexpected("failed to list workers", err)
	}

	summaries := make([]models.WorkerSummary, 0, len(workers))
	for i := range workers {
		summaries = append(summaries, *s.summarize(&workers[i]))
	}
	return summaries, nil
}

// summarize joins the owning account's contact fields into the public view.
// A missing account leaves the contact fields blank rather than failing the
// whole listing.
func (s *DefaultWorkerService) summarize(w *models.Worker) *models.WorkerSummary {
	summary := &models.WorkerSummary{
		ID:           w.ID,
		ServiceType:  w.ServiceType,
		Experience:   w.Experience,
		Bio:          w.Bio,
		IsVerified:   w.IsVerified,
		Rating:       w.Rating,
		TotalRatings: w.TotalRatings,
	}
	usr, err := s.UserRepo.GetByID(w.UserID)
	if err != nil {
		utils.GetLogger().Warn("Worker account missing for summary",
			zap.String("workerID", w.ID), zap.Error(err))
		return summary
	}
	summary.Name = usr.Name
	summary.Phone = usr.Phone
	summary.Address = usr.Address
	return summary
}
