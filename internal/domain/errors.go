// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Code enumerates the business-rule failures the application can report.
// The set is closed: handlers switch on it to choose a status code, and the
// canonical name of each code is what clients see in error bodies.
type Code int

const (
	// CodeUnknown is the zero value and never returned by services.
	CodeUnknown Code = iota
	CodeUserExists
	CodeUserNotFound
	CodePasswordIncorrect
	CodeProfileExists
	CodeProfileHandleExists
	CodeProfileNotFound
	CodePostNotFound
	CodeCommentNotFound
	CodePostAlreadyLiked
	CodePostNotLiked
	CodeForbiddenOperation
	CodeNoExperience
	CodeNoEducation
	CodeExperienceLimitReached
	CodeEducationLimitReached
)

var codeNames = map[Code]string{
	CodeUnknown:                "UNKNOWN",
	CodeUserExists:             "USER_EXISTS",
	CodeUserNotFound:           "USER_NOT_FOUND",
	CodePasswordIncorrect:      "PASSWORD_INCORRECT",
	CodeProfileExists:          "PROFILE_EXISTS",
	CodeProfileHandleExists:    "PROFILE_HANDLE_EXISTS",
	CodeProfileNotFound:        "PROFILE_NOT_FOUND",
	CodePostNotFound:           "POST_NOT_FOUND",
	CodeCommentNotFound:        "COMMENT_NOT_FOUND",
	CodePostAlreadyLiked:       "POST_ALREADY_LIKED",
	CodePostNotLiked:           "POST_NOT_LIKED",
	CodeForbiddenOperation:     "FORBIDDEN_OPERATION",
	CodeNoExperience:           "NO_EXPERIENCE",
	CodeNoEducation:            "NO_EDUCATION",
	CodeExperienceLimitReached: "EXPERIENCE_LIMIT_REACHED",
	CodeEducationLimitReached:  "EDUCATION_LIMIT_REACHED",
}

// String returns the canonical name of the code, e.g. "USER_EXISTS".
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// Error is a taxonomy error. Two Errors match under errors.Is when their
// codes are equal, so wrapped sentinels still classify correctly.
type Error struct {
	Code Code
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Code.String()
}

// Is reports whether target is a taxonomy error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Taxonomy sentinels returned by the service layer.
var (
	ErrUserExists             = &Error{Code: CodeUserExists}
	ErrUserNotFound           = &Error{Code: CodeUserNotFound}
	ErrPasswordIncorrect      = &Error{Code: CodePasswordIncorrect}
	ErrProfileExists          = &Error{Code: CodeProfileExists}
	ErrProfileHandleExists    = &Error{Code: CodeProfileHandleExists}
	ErrProfileNotFound        = &Error{Code: CodeProfileNotFound}
	ErrPostNotFound           = &Error{Code: CodePostNotFound}
	ErrCommentNotFound        = &Error{Code: CodeCommentNotFound}
	ErrPostAlreadyLiked       = &Error{Code: CodePostAlreadyLiked}
	ErrPostNotLiked           = &Error{Code: CodePostNotLiked}
	ErrForbiddenOperation     = &Error{Code: CodeForbiddenOperation}
	ErrNoExperience           = &Error{Code: CodeNoExperience}
	ErrNoEducation            = &Error{Code: CodeNoEducation}
	ErrExperienceLimitReached = &Error{Code: CodeExperienceLimitReached}
	ErrEducationLimitReached  = &Error{Code: CodeEducationLimitReached}
)

// CodeOf extracts the taxonomy code from err, if any error in its chain is
// a *Error.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return CodeUnknown, false
}

// Errors that sit outside the taxonomy.
var (
	// ErrInvalidID is returned when an identifier is not 24 lowercase hex characters.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnauthorized is returned when a request carries no authenticated user.
	ErrUnauthorized = errors.New("unauthorized operation")
)
