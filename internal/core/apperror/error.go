// Package apperror defines the errors services return and the HTTP layer
// renders as {code, message, details}. Driver errors never reach handlers.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeInternal = "INTERNAL_ERROR"

	CodeValidation       = "VALIDATION_ERROR"
	CodeIncompleteRoster = "INCOMPLETE_ROSTER"

	CodeBusinessRule           = "BUSINESS_RULE_VIOLATION"
	CodeEnrollmentClosed       = "ENROLLMENT_CLOSED"
	CodeConcurrentModification = "CONCURRENT_MODIFICATION"

	CodeInvalidCredentials = "INVALID_CREDENTIALS"

	CodeNotFound = "NOT_FOUND"

	CodeConflict            = "CONFLICT"
	CodeConstraintViolation = "CONSTRAINT_VIOLATION"
)

// statusByCode holds the fixed codes. Business rule codes are open-ended
// and carry 422 from NewBusinessRule.
var statusByCode = map[string]int{
	CodeInternal:               http.StatusInternalServerError,
	CodeValidation:             http.StatusBadRequest,
	CodeIncompleteRoster:       http.StatusBadRequest,
	CodeInvalidCredentials:     http.StatusUnauthorized,
	CodeNotFound:               http.StatusNotFound,
	CodeConflict:               http.StatusConflict,
	CodeConcurrentModification: http.StatusConflict,
	CodeConstraintViolation:    http.StatusConflict,
}

// AppError carries a machine-readable code, a message safe to show the
// client, and optional details. Err is logged, never rendered.
type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	HTTPStatus int            `json:"-"`
	Err        error          `json:"-"`
}

func newError(code, message string) *AppError {
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusUnprocessableEntity
	}
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Code + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

// WithDetail sets one detail key and returns e for chaining.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any, 1)
	}
	e.Details[key] = value
	return e
}

func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

func NewValidation(message string) *AppError {
	return newError(CodeValidation, message)
}

func NewNotFound(entity string, id any) *AppError {
	return newError(CodeNotFound, entity+" not found").
		WithDetail("entity", entity).
		WithDetail("id", id)
}

// NewBusinessRule reports a rejected state transition under its own code.
func NewBusinessRule(code, message string) *AppError {
	return newError(code, message)
}

// NewConcurrentModification is returned when a version check fails.
func NewConcurrentModification(entity string, id any) *AppError {
	return newError(CodeConcurrentModification, "record was changed by someone else, reload and try again").
		WithDetail("entity", entity).
		WithDetail("id", id)
}

// NewInternal hides err behind a generic message.
func NewInternal(err error) *AppError {
	return newError(CodeInternal, "internal server error").WithCause(err)
}

// NewInvalidCredentials never says which half of the portal login was wrong.
func NewInvalidCredentials() *AppError {
	return newError(CodeInvalidCredentials, "student code or phone number is incorrect")
}

// NewIncompleteRoster is returned when an attendance submit leaves out
// active enrollments of the class.
func NewIncompleteRoster(missing []string, submitted, expected int) *AppError {
	return newError(CodeIncompleteRoster, "attendance must be submitted for every active enrollment in the class").
		WithDetail("missing_enrollment_ids", missing).
		WithDetail("submitted_count", submitted).
		WithDetail("expected_count", expected)
}

// NewConstraintViolation wraps a unique-index violation, typically two
// allocators racing on the same code.
func NewConstraintViolation(constraint string, cause error) *AppError {
	return newError(CodeConstraintViolation, "record conflicts with an existing one").
		WithDetail("constraint", constraint).
		WithCause(cause)
}

func NewConflict(message string) *AppError {
	return newError(CodeConflict, message)
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// GetHTTPStatus maps any error to a status, 500 for non-AppErrors.
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

func hasCode(err error, code string) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

func IsConstraintViolation(err error) bool { return hasCode(err, CodeConstraintViolation) }
