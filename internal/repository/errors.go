package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// IsUniqueViolation reports whether err is a storage-level unique constraint
// violation. The application validates uniqueness before writing, but the
// constraint is the authoritative backstop against concurrent writers, so
// write paths inspect errors with this and translate them instead of leaking
// the raw driver error.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// IsNotFound reports whether err is gorm's record-not-found error
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
