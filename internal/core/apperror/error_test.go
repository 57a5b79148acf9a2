package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsAppError_ThroughWrapping(t *testing.T) {
	base := NewConstraintViolation("students_code_key", errors.New("duplicate key"))
	wrapped := fmt.Errorf("create student: %w", base)

	appErr, ok := AsAppError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, CodeConstraintViolation, appErr.Code)
	assert.Equal(t, http.StatusConflict, GetHTTPStatus(wrapped))
	assert.True(t, IsConstraintViolation(wrapped))
	assert.False(t, IsNotFound(wrapped))
}

func TestIncompleteRosterDetails(t *testing.T) {
	err := NewIncompleteRoster([]string{"a", "b"}, 1, 3)

	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
	assert.Equal(t, []string{"a", "b"}, err.Details["missing_enrollment_ids"])
	assert.Equal(t, 1, err.Details["submitted_count"])
	assert.Equal(t, 3, err.Details["expected_count"])
}

func TestGetHTTPStatus_PlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(errors.New("boom")))
}

func TestStatusByCode(t *testing.T) {
	tests := []struct {
		err    *AppError
		status int
	}{
		{NewValidation("x"), http.StatusBadRequest},
		{NewNotFound("student", "S1"), http.StatusNotFound},
		{NewConcurrentModification("enrollment", 1), http.StatusConflict},
		{NewBusinessRule(CodeEnrollmentClosed, "closed"), http.StatusUnprocessableEntity},
		{NewInvalidCredentials(), http.StatusUnauthorized},
		{NewInternal(errors.New("db down")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Code, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
		})
	}
}

func TestInternalHidesCause(t *testing.T) {
	err := NewInternal(errors.New("relation missing"))

	assert.Equal(t, "internal server error", err.Message)
	assert.Contains(t, err.Error(), "relation missing")
}
