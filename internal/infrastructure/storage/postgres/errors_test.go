package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"tutorcenter/internal/core/apperror"
)

func TestMapError(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "students_code_key"}
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "enrollments_student_id_fkey"}
	check := &pgconn.PgError{Code: "23514", ConstraintName: "sheet_inventory_quantity_check"}

	tests := []struct {
		name string
		err  error
		code string
	}{
		{"unique", fmt.Errorf("insert: %w", unique), apperror.CodeConstraintViolation},
		{"foreign key", fk, apperror.CodeConflict},
		{"check", check, apperror.CodeValidation},
		{"no rows", pgx.ErrNoRows, apperror.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr, ok := apperror.AsAppError(MapError(tt.err, "students"))
			assert.True(t, ok)
			assert.Equal(t, tt.code, appErr.Code)
		})
	}
}

func TestMapError_ConstraintNameInDetails(t *testing.T) {
	err := MapError(&pgconn.PgError{Code: "23505", ConstraintName: "enrollments_sale_run_no_key"}, "enrollments")

	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, "enrollments_sale_run_no_key", appErr.Details["constraint"])
}

func TestMapError_PassThrough(t *testing.T) {
	plain := errors.New("connection reset")
	assert.Same(t, plain, MapError(plain, "x"))
	assert.NoError(t, MapError(nil, "x"))

	existing := apperror.NewValidation("bad")
	assert.Same(t, existing, MapError(existing, "x"))
}
