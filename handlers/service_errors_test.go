package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carromarket/backend/services"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestHandleServiceError(t *testing.T) {
	logger := zap.NewNop()

	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid credentials", services.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unauthorized", services.ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", services.ErrForbidden, http.StatusForbidden},
		{"conflict", services.ErrEmailTaken, http.StatusConflict},
		{"not found", services.ErrVehicleNotFound, http.StatusNotFound},
		{"validation", services.NewDomainError(services.ErrorTypeValidation, "bad input", nil), http.StatusBadRequest},
		{"unavailable", services.WrapUnavailable("query", errors.New("down")), http.StatusServiceUnavailable},
		{"unknown", errors.New("surprise"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleServiceError(rec, tc.err, logger)
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}

	t.Run("credential and token failures share one body", func(t *testing.T) {
		credRec := httptest.NewRecorder()
		HandleServiceError(credRec, services.ErrInvalidCredentials, logger)

		tokenRec := httptest.NewRecorder()
		HandleServiceError(tokenRec, services.ErrUnauthorized, logger)

		assert.Equal(t, credRec.Body.String(), tokenRec.Body.String())
		assert.Contains(t, credRec.Body.String(), "authentication failed")
	})

	t.Run("unavailable hides the underlying cause", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleServiceError(rec, services.WrapUnavailable("query users", errors.New("pq: connection refused")), logger)

		assert.NotContains(t, rec.Body.String(), "pq:")
		assert.Contains(t, rec.Body.String(), "temporarily unavailable")
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleServiceError(rec, nil, logger)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}
