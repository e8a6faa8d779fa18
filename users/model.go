// Package users persists user identity records: the credential store behind
// registration and login.
package users

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a stored identity record. Username and email carry unique indexes;
// the database constraint, not the service-level checks, is what guarantees
// uniqueness under concurrent registrations.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:100;not null;column:password_hash" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// BeforeCreate generates the record identifier if not already set.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// View is the public projection of a user, safe to return to clients. The
// password hash never leaves this package.
type View struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// View returns the public projection of the user.
func (u *User) View() View {
	return View{
		ID:       u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
	}
}
