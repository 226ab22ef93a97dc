package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected int
	}{
		{"not found maps to 404", ErrCodeNotFound, http.StatusNotFound},
		{"already exists maps to 409", ErrCodeAlreadyExists, http.StatusConflict},
		{"concurrency conflict maps to 409", ErrCodeConcurrencyConflict, http.StatusConflict},
		{"overpayment maps to 422", ErrCodeOverPayment, http.StatusUnprocessableEntity},
		{"insufficient funds maps to 422", ErrCodeInsufficientFunds, http.StatusUnprocessableEntity},
		{"insufficient stock maps to 422", ErrCodeInsufficientStock, http.StatusUnprocessableEntity},
		{"quantity exceeded maps to 422", ErrCodeQuantityExceeded, http.StatusUnprocessableEntity},
		{"invalid input maps to 400", ErrCodeInvalidInput, http.StatusBadRequest},
		{"unknown code maps to 500", "ERR_SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected string
	}{
		{"domain not found", "NOT_FOUND", ErrCodeNotFound},
		{"domain overpayment", "OVERPAYMENT", ErrCodeOverPayment},
		{"domain insufficient funds", "INSUFFICIENT_FUNDS", ErrCodeInsufficientFunds},
		{"domain optimistic lock", "OPTIMISTIC_LOCK_ERROR", ErrCodeConcurrencyConflict},
		{"already normalized", ErrCodeNotFound, ErrCodeNotFound},
		{"unknown passes through", "SOMETHING_ELSE", "SOMETHING_ELSE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.code))
		})
	}
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{{Field: "amount", Message: "must be positive"}}
	resp := NewValidationErrorResponse("Request validation failed", "req-123", details)

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 1)
}
