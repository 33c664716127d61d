package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/budget-keeper/internal/logger"
	"github.com/MKhiriev/budget-keeper/internal/service"
	"github.com/MKhiriev/budget-keeper/internal/store"
	"github.com/MKhiriev/budget-keeper/internal/utils"
	"github.com/MKhiriev/budget-keeper/internal/validators"
)

var errorStatusMap = map[error]int{
	ErrInvalidJSON:                     http.StatusBadRequest,
	service.ErrValidation:              http.StatusBadRequest,
	validators.ErrDocumentTooLarge:     http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrUnauthenticated:         http.StatusUnauthorized,
	service.ErrDocumentNotFound:        http.StatusNotFound,
	store.ErrEmailAlreadyExists:        http.StatusConflict,

	service.ErrTokenCreationFailed:   http.StatusInternalServerError,
	service.ErrVersionIsNotSpecified: http.StatusInternalServerError,
	store.ErrStorageFailure:          http.StatusInternalServerError,
	store.ErrMalformedUserRecord:     http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// errorMessage is the client-facing text for err. Validation errors keep the
// rule that failed; every other error is reduced to its sentinel, and server
// errors carry no detail at all.
func errorMessage(err error, status int) string {
	if status >= http.StatusInternalServerError {
		return http.StatusText(status)
	}
	if status == http.StatusBadRequest {
		return err.Error()
	}
	for target, targetStatus := range errorStatusMap {
		if targetStatus == status && errors.Is(err, target) {
			return target.Error()
		}
	}
	return http.StatusText(status)
}

// writeError logs err and renders it as {"error": ...} with the mapped status.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteError(w, errorMessage(err, status), status)
}
