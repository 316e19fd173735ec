package postgres

import (
	"exposure/internal/errors"

	"gorm.io/gorm"
)

// isUniqueConstraintViolation relies on TranslateError being enabled on the connection.
func isUniqueConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
