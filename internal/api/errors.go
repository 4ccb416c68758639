package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/devlink-api/internal/api/shared"
	"github.com/phrazzld/devlink-api/internal/domain"
	"github.com/phrazzld/devlink-api/internal/service/auth"
	"github.com/phrazzld/devlink-api/internal/validation"
)

const unexpectedErrorMessage = "An unexpected error occurred"

// codeStatus assigns every taxonomy code its HTTP status.
var codeStatus = map[domain.Code]int{
	domain.CodeUserExists:             http.StatusForbidden,
	domain.CodeUserNotFound:           http.StatusNotFound,
	domain.CodePasswordIncorrect:      http.StatusBadRequest,
	domain.CodeProfileExists:          http.StatusForbidden,
	domain.CodeProfileHandleExists:    http.StatusForbidden,
	domain.CodeProfileNotFound:        http.StatusNotFound,
	domain.CodePostNotFound:           http.StatusNotFound,
	domain.CodeCommentNotFound:        http.StatusNotFound,
	domain.CodePostAlreadyLiked:       http.StatusForbidden,
	domain.CodePostNotLiked:           http.StatusForbidden,
	domain.CodeForbiddenOperation:     http.StatusForbidden,
	domain.CodeNoExperience:           http.StatusNotFound,
	domain.CodeNoEducation:            http.StatusNotFound,
	domain.CodeExperienceLimitReached: http.StatusForbidden,
	domain.CodeEducationLimitReached:  http.StatusForbidden,
}

// MapErrorToStatusCode maps an error returned by a service or a request
// check to its HTTP status code. Anything unrecognized is a 500.
func MapErrorToStatusCode(err error) int {
	if code, ok := domain.CodeOf(err); ok {
		if status, ok := codeStatus[code]; ok {
			return status
		}
		return http.StatusInternalServerError
	}

	switch {
	case validation.IsValidationError(err),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return http.StatusUnauthorized

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the message a client may see for err. Taxonomy
// errors expose their code name and validation errors their rule message;
// everything else collapses to a generic message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return unexpectedErrorMessage
	}
	if code, ok := domain.CodeOf(err); ok {
		if _, known := codeStatus[code]; known {
			return code.String()
		}
		return unexpectedErrorMessage
	}

	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"
	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken):
		return "Invalid token"
	default:
		return unexpectedErrorMessage
	}
}

// HandleAPIError writes the error response for err: its mapped status and
// safe message. The full error is logged redacted.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
