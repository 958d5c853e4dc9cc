package repositories

import (
	"errors"

	"docspace/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailTaken        = errors.New("email already taken")
	ErrDatabaseOperation = errors.New("database operation failed")
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	// Create creates a new user in the database
	Create(user *models.User) error

	// GetByID retrieves a user by their ID
	GetByID(id uint) (*models.User, error)

	// GetByEmail retrieves a user by their email address
	GetByEmail(email string) (*models.User, error)

	// Update updates an existing user's information
	Update(user *models.User) error

	// UpdateFields applies a partial update to the user row
	UpdateFields(userID uint, fields map[string]interface{}) error

	// IncrementTokenVersion increments the user's token version
	IncrementTokenVersion(userID uint) error

	// UpdatePassword updates the user's password
	UpdatePassword(userID uint, hashedPassword string) error

	// ListByVerificationStatus retrieves users whose verification is in the given state
	ListByVerificationStatus(status string) ([]*models.User, error)

	// SearchCompletedProfiles finds completed profiles whose name matches the query
	SearchCompletedProfiles(query string, limit int) ([]*models.User, error)

	// List retrieves users with pagination
	List(offset, limit int) ([]*models.User, int64, error)
}
