package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/freelance_ledger/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: bad", apperrors.ErrValidation), http.StatusBadRequest},
		{apperrors.ErrNotFound, http.StatusNotFound},
		{apperrors.ErrForbidden, http.StatusForbidden},
		{apperrors.ErrDuplicate, http.StatusConflict},
		{apperrors.ErrLocked, http.StatusLocked},
		{apperrors.ErrInvariantViolation, http.StatusInternalServerError},
		{apperrors.NewAppError(http.StatusBadRequest, "bad id", nil), http.StatusBadRequest},
		{apperrors.NewAppError(http.StatusServiceUnavailable, "db", nil), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusForError(tt.err), tt.err.Error())
	}
}
