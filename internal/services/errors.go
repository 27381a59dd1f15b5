package services

import (
	"connectingbr/internal/domain"
	"errors"
)

var knownErrors = []error{
	domain.ErrInvalidRating,
	domain.ErrDuplicateReview,
	domain.ErrSelfReview,
	domain.ErrProfessionalNotFound,
	domain.ErrNotAProfessional,
	domain.ErrReviewNotFound,
	domain.ErrNotOwner,
	domain.ErrNotFound,
	domain.ErrUserNotFound,
	domain.ErrEmailInUse,
	domain.ErrInvalidCredentials,
	domain.ErrForbidden,
	domain.ErrCategoryNotFound,
	domain.ErrCategoryExists,
	domain.ErrCategoryInUse,
	domain.ErrServiceNotFound,
	domain.ErrCannotOffer,
}

// txError passes domain errors through and wraps anything else (begin or
// commit failures) in a StorageError.
func txError(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, known := range knownErrors {
		if errors.Is(err, known) {
			return err
		}
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return err
	}
	return domain.NewStorageError(op, err)
}

// notFoundAs replaces the generic repository not-found error with a specific one
func notFoundAs(err, specific error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return specific
	}
	return err
}
