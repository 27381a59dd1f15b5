package repository

import (
	"connectingbr/internal/domain"
	"errors"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// translate maps gorm errors onto domain errors: a missing row becomes notFound,
// everything else is wrapped in a StorageError.
func translate(op string, err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return domain.NewStorageError(op, err)
}

// isDuplicate reports whether err is a unique constraint violation.
// Requires gorm.Config.TranslateError.
func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// isForeignKey reports whether err is a foreign key violation. The SQLite
// dialect only translates unique violations, so its extended code is checked too.
func isForeignKey(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
}
