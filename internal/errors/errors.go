package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrPageNotFound is returned when a page is not found.
	ErrPageNotFound = errors.New("page not found")
	// ErrSectionNotFound is returned when a section is not found.
	ErrSectionNotFound = errors.New("section not found")
	// ErrCardNotFound is returned when a card is not found.
	ErrCardNotFound = errors.New("card not found")
	// ErrAdminNotFound is returned when an admin account is not found.
	ErrAdminNotFound = errors.New("admin not found")
	// ErrForbidden is returned when the caller is neither master nor owner.
	ErrForbidden = errors.New("insufficient permissions")
	// ErrSlugTaken is returned when a page slug is already in use.
	ErrSlugTaken = errors.New("slug already exists")
	// ErrUsernameTaken is returned when an admin username is already in use.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrEmailTaken is returned when an admin email is already in use.
	ErrEmailTaken = errors.New("email already exists")
	// ErrInvalidSlug is returned when a slug fails format validation.
	ErrInvalidSlug = errors.New("invalid slug format")
	// ErrCannotDeleteSelf is returned when a master tries to delete its own account.
	ErrCannotDeleteSelf = errors.New("cannot delete your own account")
	// ErrCannotDeleteMaster is returned when deletion targets a master account.
	ErrCannotDeleteMaster = errors.New("cannot delete master admin accounts")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Services resolve the
// target before authorizing, so a 403 always means the resource exists but
// the caller may not touch it.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrPageNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "PAGE_NOT_FOUND")
	case ErrSectionNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "SECTION_NOT_FOUND")
	case ErrCardNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "CARD_NOT_FOUND")
	case ErrAdminNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "ADMIN_NOT_FOUND")
	case ErrForbidden:
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case ErrSlugTaken:
		return NewHTTPError(http.StatusConflict, err.Error(), "SLUG_TAKEN")
	case ErrUsernameTaken:
		return NewHTTPError(http.StatusConflict, err.Error(), "USERNAME_TAKEN")
	case ErrEmailTaken:
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case ErrInvalidSlug:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_SLUG")
	case ErrCannotDeleteSelf:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CANNOT_DELETE_SELF")
	case ErrCannotDeleteMaster:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CANNOT_DELETE_MASTER")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
