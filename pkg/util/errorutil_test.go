package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestTaxonomyCodesAndStatuses(t *testing.T) {
	cases := []struct {
		err    error
		code   string
		status int
	}{
		{NewValidationError("missing field", nil), "VALIDATION_FAILED", http.StatusBadRequest},
		{NewAlreadyExists("email already registered"), "ALREADY_EXISTS", http.StatusConflict},
		{NewInvalidCredentials(), "INVALID_CREDENTIALS", http.StatusUnauthorized},
		{NewUnauthenticated("no token provided"), "UNAUTHORIZED", http.StatusUnauthorized},
		{NewForbidden("insufficient role"), "FORBIDDEN", http.StatusForbidden},
		{NewStorageFailure(errors.New("connection refused")), "STORAGE_FAILURE", http.StatusInternalServerError},
	}

	for _, tc := range cases {
		domainErr := ToDomainError(tc.err)
		assert.Equal(t, tc.code, domainErr.Code)
		assert.Equal(t, tc.status, domainErr.HTTPStatus)
	}
}

func TestInvalidCredentialsNeverDistinguishesCause(t *testing.T) {
	a := ToDomainError(NewInvalidCredentials())
	b := ToDomainError(NewInvalidCredentials())
	assert.Equal(t, a.Message, b.Message)
	assert.Equal(t, a.Code, b.Code)
}

func TestToDomainErrorMapsNoRows(t *testing.T) {
	domainErr := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
}

func TestToDomainErrorWrapsUnknown(t *testing.T) {
	domainErr := ToDomainError(errors.New("boom"))
	assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	assert.NotNil(t, domainErr.Unwrap())
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}
