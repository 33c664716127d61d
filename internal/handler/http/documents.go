package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/budget-keeper/internal/logger"
	"github.com/MKhiriev/budget-keeper/internal/service"
	"github.com/MKhiriev/budget-keeper/internal/utils"
	"github.com/MKhiriev/budget-keeper/internal/validators"
	"github.com/MKhiriev/budget-keeper/models"
)

// documentKey is the logical key captured by the "/docs/*" routes.
func documentKey(r *http.Request) string {
	return chi.URLParam(r, "*")
}

func (h *Handler) listDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := utils.IdentityFromContext(ctx)
	if !ok {
		h.writeError(w, r, service.ErrUnauthenticated)
		return
	}

	keys, err := h.services.DocumentService.ListDocuments(ctx, identity, r.URL.Query().Get("prefix"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if keys == nil {
		keys = []string{}
	}

	utils.WriteJSON(w, models.DocumentKeysResponse{Keys: keys}, http.StatusOK)
}

func (h *Handler) readDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := utils.IdentityFromContext(ctx)
	if !ok {
		h.writeError(w, r, service.ErrUnauthenticated)
		return
	}

	payload, err := h.services.DocumentService.ReadDocument(ctx, identity, documentKey(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteRawJSON(w, payload, http.StatusOK)
}

func (h *Handler) writeDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, ok := utils.IdentityFromContext(ctx)
	if !ok {
		h.writeError(w, r, service.ErrUnauthenticated)
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.writeError(w, r, fmt.Errorf("%w: %w", service.ErrValidation, validators.ErrDocumentTooLarge))
			return
		}
		log.Err(err).Msg("reading document body failed")
		h.writeError(w, r, ErrInvalidJSON)
		return
	}

	if err = h.services.DocumentService.WriteDocument(ctx, identity, documentKey(r), payload); err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.OKResponse{OK: true}, http.StatusOK)
}

func (h *Handler) deleteDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := utils.IdentityFromContext(ctx)
	if !ok {
		h.writeError(w, r, service.ErrUnauthenticated)
		return
	}

	if err := h.services.DocumentService.DeleteDocument(ctx, identity, documentKey(r)); err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.OKResponse{OK: true}, http.StatusOK)
}
