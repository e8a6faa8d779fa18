package users

import (
	"context"

	"gorm.io/gorm"

	"github.com/skillsenselab/customer-api/database"
	apperrors "github.com/skillsenselab/customer-api/errors"
)

// Store is the credential store interface consumed by the auth service.
type Store interface {
	// FindByUsername returns the user with the given username, or nil if
	// none exists.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByEmail returns the user with the given email, or nil if none
	// exists.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Create persists a new identity record. A unique-constraint violation
	// is returned as the matching DUPLICATE_USERNAME or DUPLICATE_EMAIL
	// error.
	Create(ctx context.Context, user *User) error
}

// GormStore implements Store on GORM.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a GORM-backed credential store.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, nil
		}
		return nil, apperrors.DatabaseError(err)
	}
	return &user, nil
}

func (s *GormStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, nil
		}
		return nil, apperrors.DatabaseError(err)
	}
	return &user, nil
}

func (s *GormStore) Create(ctx context.Context, user *User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if err == nil {
		return nil
	}
	if database.IsDuplicate(err) {
		return s.translateDuplicate(ctx, user, err)
	}
	return apperrors.DatabaseError(err)
}

// translateDuplicate maps a unique-constraint violation back to the
// field-specific conflict. The translated error does not name the index that
// fired, so the colliding field is found by re-querying, username first to
// match the service-level check order.
func (s *GormStore) translateDuplicate(ctx context.Context, user *User, cause error) error {
	if existing, err := s.FindByUsername(ctx, user.Username); err == nil && existing != nil {
		return apperrors.DuplicateUsername().WithCause(cause)
	}
	if existing, err := s.FindByEmail(ctx, user.Email); err == nil && existing != nil {
		return apperrors.DuplicateEmail().WithCause(cause)
	}
	// The winning row is already gone; a retry would succeed.
	return apperrors.DatabaseError(cause)
}
