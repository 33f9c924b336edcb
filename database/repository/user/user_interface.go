package userRepo

import (
	"errors"

	"worknook/models"
)

// ErrNotFound is returned when no account matches the lookup.
var ErrNotFound = errors.New("user not found")

// UserRepository defines methods for account data access.
type UserRepository interface {
	// Create inserts a new user record.
	Create(user *models.User) error
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(email string) (*models.User, error)
	// UpdateWithDocument patches a user document with the specified update document.
	UpdateWithDocument(id string, updateDoc interface{}) error
}
