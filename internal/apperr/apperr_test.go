package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("signup: %w", Conflict("User already exists"))
	assert.Equal(t, KindConflict, KindOf(err))
	assert.True(t, Is(err, KindConflict))
	assert.Equal(t, "User already exists", PublicMessage(err))
}

func TestKindOf_PlainErrorIsInternal(t *testing.T) {
	err := errors.New("connection reset")
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, "Internal Server Error", PublicMessage(err))
}

func TestPublicMessage_HidesGatewayCause(t *testing.T) {
	err := Gateway(errors.New("razorpay: 401 bad key"))
	assert.Equal(t, http.StatusInternalServerError, Status(KindOf(err)))
	assert.Equal(t, "Internal Server Error", PublicMessage(err))
	assert.Contains(t, err.Error(), "401 bad key")
}

func TestStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindConflict, http.StatusBadRequest},
		{KindVerificationFailed, http.StatusBadRequest},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindGateway, http.StatusInternalServerError},
		{KindInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Status(tt.kind))
	}
}
