package api

import (
	"connectingbr/internal/domain"     // Domain errors
	"connectingbr/internal/middleware" // Authenticated user lookup
	"connectingbr/internal/services"   // Validation error conversion
	"encoding/json"                    // JSON decode errors
	"errors"                           // Error inspection
	"net/http"                         // HTTP status codes
	"strconv"                          // Path parameter parsing

	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/go-playground/validator/v10" // Binding validation errors
	"github.com/sirupsen/logrus"             // Logging library
)

// statusFor maps a service error onto the HTTP status and client message
func statusFor(err error) (int, string) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Error()
	}
	switch {
	case errors.Is(err, domain.ErrInvalidRating):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrDuplicateReview),
		errors.Is(err, domain.ErrSelfReview),
		errors.Is(err, domain.ErrEmailInUse),
		errors.Is(err, domain.ErrCategoryExists),
		errors.Is(err, domain.ErrCategoryInUse):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrProfessionalNotFound),
		errors.Is(err, domain.ErrReviewNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrServiceNotFound),
		errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrNotAProfessional):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrNotOwner),
		errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrCannotOffer):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	default:
		// Storage and unexpected errors never leak details to the client
		return http.StatusInternalServerError, "Internal server error"
	}
}

// respondError logs the failure and writes the mapped status
func respondError(c *gin.Context, op string, err error) {
	status, msg := statusFor(err)
	entry := logrus.WithFields(logrus.Fields{"op": op, "status": status, "error": err})
	if status >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Debug("Request rejected")
	}
	c.JSON(status, gin.H{"error": msg})
}

// bindJSON decodes the body into dest. A rating that is not an integer is
// reported as an invalid rating, like an out of range one.
func bindJSON(c *gin.Context, op string, dest any) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		respondError(c, op, bindError(err))
		return false
	}
	return true
}

func bindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field == "rating" {
			return domain.ErrInvalidRating
		}
		return &domain.ValidationError{Field: typeErr.Field, Message: "has the wrong type"}
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return services.ValidationErrorFrom(err)
	}
	return &domain.ValidationError{Field: "body", Message: "must be valid JSON"}
}

// pathID parses a positive integer path parameter, answering 400 otherwise
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// actor returns the authenticated user, answering 401 when there is none
func actor(c *gin.Context) (*domain.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	return user, true
}
