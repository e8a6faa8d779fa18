package database

import (
	"errors"

	"gorm.io/gorm"
)

// IsNotFound reports whether err is a record-not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate reports whether err is a unique-constraint violation. Requires
// gorm.Config.TranslateError so driver-specific errors arrive normalized.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
