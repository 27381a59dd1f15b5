package domain

import (
	"errors" // Sentinel errors
	"fmt"    // Error formatting
)

// Review rule violations
var (
	ErrInvalidRating        = errors.New("rating must be an integer between 1 and 5")
	ErrDuplicateReview      = errors.New("you have already reviewed this professional")
	ErrSelfReview           = errors.New("you cannot review yourself")
	ErrProfessionalNotFound = errors.New("professional not found")
	ErrNotAProfessional     = errors.New("reviewed user is not a professional")
	ErrReviewNotFound       = errors.New("review not found")
	ErrNotOwner             = errors.New("you can only modify your own reviews")
)

// Account, catalog and generic errors
var (
	ErrNotFound           = errors.New("record not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailInUse         = errors.New("email is already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryExists     = errors.New("a category with this name already exists")
	ErrCategoryInUse      = errors.New("category is still referenced by services")
	ErrServiceNotFound    = errors.New("service not found")
	ErrCannotOffer        = errors.New("only professionals can offer services")
)

// ValidationError describes a rejected input field
type ValidationError struct {
	Field   string // Offending field
	Message string // Human readable reason
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// StorageError wraps a persistence failure. It is never retried by the services.
type StorageError struct {
	Op  string // Operation that failed, e.g. "review.create"
	Err error  // Underlying driver or gorm error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err unless it is nil or already a StorageError
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
