package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	userRepo "worknook/database/repository/user"
	workerRepo "worknook/database/repository/worker"
	"worknook/models"
	"worknook/services/storage"
	"worknook/services/worker"
	"worknook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// idDocumentFolder is where uploaded ID documents land in the file intake.
const idDocumentFolder = "ids"

// DefaultIdentityService is the production implementation of IdentityService.
type DefaultIdentityService struct {
	Repo       userRepo.UserRepository
	WorkerRepo workerRepo.WorkerRepository
	Workers    worker.WorkerService
	Storage    storage.StorageService
}

func (s *DefaultIdentityService) RegisterClient(input RegisterClientInput) (*AuthSession, error) {
	if input.Name == "" || input.Email == "" || input.Phone == "" || input.Location == "" || input.Password == "" {
		return nil, utils.InvalidInput("All fields required")
	}

	usr, err := s.newUser(input.Name, input.Email, input.Phone, input.Password, models.RoleClient)
	if err != nil {
		return nil, err
	}
	usr.Location = input.Location

	if err := s.Repo.Create(usr); err != nil {
		return nil, utils.Unexpected("failed to create user", err)
	}
	return s.session(usr)
}

func (s *DefaultIdentityService) RegisterWorker(input RegisterWorkerInput) (*AuthSession, error) {
	if input.Name == "" || input.Email == "" || input.Phone == "" || input.Password == "" {
		return nil, utils.InvalidInput("All fields required")
	}
	if input.DocumentPath == "" {
		return nil, utils.InvalidInput("ID Document is required")
	}
	if !models.IsValidServiceType(input.ServiceType) {
		return nil, utils.InvalidInput("Unknown service type")
	}

	usr, err := s.newUser(input.Name, input.Email, input.Phone, input.Password, models.RoleWorker)
	if err != nil {
		return nil, err
	}
	usr.Address = input.Address

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	documentRef, err := s.Storage.UploadFile(ctx, input.DocumentPath, idDocumentFolder)
	if err != nil {
		return nil, utils.Unexpected("failed to store ID document", err)
	}

	if err := s.Repo.Create(usr); err != nil {
		s.discardDocument(documentRef)
		return nil, utils.Unexpected("failed to create user", err)
	}

	if _, err := s.Workers.CreateProfile(models.WorkerPrincipal{ID: usr.ID}, worker.ProfileInput{
		ServiceType: input.ServiceType,
		Experience:  input.Experience,
		Bio:         input.Bio,
		DocumentRef: documentRef,
	}); err != nil {
		s.discardDocument(documentRef)
		return nil, err
	}

	return s.session(usr)
}

// discardDocument removes an uploaded ID document after a failed
// registration so the intake holds no orphaned files. Best effort.
func (s *DefaultIdentityService) discardDocument(ref string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Storage.DeleteFile(ctx, ref); err != nil {
		utils.GetLogger().Warn("Failed to discard uploaded ID document",
			zap.String("ref", ref), zap.Error(err))
	}
}

// newUser validates email uniqueness and builds the account record.
func (s *DefaultIdentityService) newUser(name, email, phone, password, role string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.Repo.GetByEmail(email); err == nil {
		return nil, utils.Conflict("User with this email already exists")
	} else if !errors.Is(err, userRepo.ErrNotFound) {
		return nil, utils.Unexpected("failed to check existing user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.Unexpected("failed to hash password", err)
	}

	return &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}, nil
}

func (s *DefaultIdentityService) Authenticate(email, password string) (*AuthSession, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	usr, err := s.Repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, utils.Unauthenticated("Invalid credentials")
		}
		return nil, utils.Unexpected("failed to fetch user", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)) != nil {
		return nil, utils.Unauthenticated("Invalid credentials")
	}
	return s.session(usr)
}

func (s *DefaultIdentityService) session(usr *models.User) (*AuthSession, error) {
	token, err := utils.GenerateToken(usr.ID, usr.Role, utils.SessionTokenTTL)
	if err != nil {
		return nil, utils.Unexpected("failed to issue token", err)
	}
	utils.GetLogger().Info("Session issued",
		zap.String("userID", usr.ID), zap.String("role", usr.Role))
	return &AuthSession{Token: token, User: usr}, nil
}

func (s *DefaultIdentityService) ResolvePrincipal(accountID, role string) (models.Principal, error) {
	usr, err := s.Repo.GetByID(accountID)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, utils.Unauthenticated("Account no longer exists")
		}
		return nil, utils.Unexpected("failed to fetch account", err)
	}
	// The token's role claim must match the stored role; roles never change.
	if usr.Role != role {
		return nil, utils.Unauthenticated("Role mismatch")
	}
	switch usr.Role {
	case models.RoleClient:
		return models.ClientPrincipal{ID: usr.ID}, nil
	case models.RoleWorker:
		return models.WorkerPrincipal{ID: usr.ID}, nil
	default:
		return nil, utils.Unauthenticated("Unknown role")
	}
}

func (s *DefaultIdentityService) GetProfile(p models.Principal) (*ProfileView, error) {
	usr, err := s.Repo.GetByID(p.PrincipalID())
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, utils.NotFound("User not found")
		}
		return nil, utils.Unexpected("failed to fetch user", err)
	}

	view := &ProfileView{User: *usr}
	if _, ok := p.(models.WorkerPrincipal); ok {
		if w, err := s.WorkerRepo.GetByUserID(usr.ID); err == nil {
			view.Worker = w
		}
	}
	return view, nil
}

func (s *DefaultIdentityService) UpdateProfile(p models.Principal, update ProfileUpdate) (*ProfileView, error) {
	usr, err := s.Repo.GetByID(p.PrincipalID())
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, utils.NotFound("User not found")
		}
		return nil, utils.Unexpected("failed to fetch user", err)
	}

	userFields := bson.M{}
	if update.Name != "" {
		userFields["name"] = update.Name
	}
	if update.Phone != "" {
		userFields["phone"] = update.Phone
	}
	if _, ok := p.(models.ClientPrincipal); ok && update.Location != "" {
		userFields["location"] = update.Location
	}
	if _, ok := p.(models.WorkerPrincipal); ok && update.Address != "" {
		userFields["address"] = update.Address
	}
	if len(userFields) > 0 {
		if err := s.Repo.UpdateWithDocument(usr.ID, bson.M{"$set": userFields}); err != nil {
			return nil, utils.Unexpected("failed to update user", err)
		}
	}

	if _, ok := p.(models.WorkerPrincipal); ok {
		workerFields := bson.M{}
		if update.ServiceType != "" {
			if !models.IsValidServiceType(update.ServiceType) {
				return nil, utils.InvalidInput("Unknown service type")
			}
			workerFields["service_type"] = update.ServiceType
		}
		if update.Experience != "" {
			workerFields["experience"] = update.Experience
		}
		if update.Bio != "" {
			workerFields["bio"] = update.Bio
		}
		if len(workerFields) > 0 {
			w, err := s.WorkerRepo.GetByUserID(usr.ID)
			if err != nil {
				if errors.Is(err, workerRepo.ErrNotFound) {
					return nil, utils.NotFound("Worker profile not found")
				}
				return nil, utils.Unexpected("failed to fetch worker profile", err)
			}
			if err := s.WorkerRepo.UpdateWithDocument(w.ID, bson.M{"$set": workerFields}); err != nil {
				return nil, utils.Unexpected("failed to update worker profile", err)
			}
		}
	}

	return s.GetProfile(p)
}
