package http

import (
	"net/http"

	"github.com/MKhiriev/budget-keeper/internal/logger"
	"github.com/MKhiriev/budget-keeper/internal/utils"
)

// auth is an HTTP middleware that enforces bearer-token authentication.
//
// It reads the "Authorization" header, extracts the token with
// [utils.ParseBearerToken], verifies it via [service.TokenService.ParseToken]
// and, on success, stores the caller identity in the request context with
// [utils.WithIdentity] before delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized when:
//   - the "Authorization" header is absent ([ErrEmptyAuthorizationHeader]);
//   - the header is not of the form "Bearer <token>" ([ErrInvalidAuthorizationHeader]);
//   - the token is expired, forged or malformed.
//
// The token is never written to the log.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Debug().Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Debug().Err(ErrInvalidAuthorizationHeader).Send()
			utils.WriteError(w, ErrInvalidAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		identity, err := h.services.TokenService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Debug().Err(err).Msg("token rejected")
			h.writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithIdentity(ctx, identity)))
	})
}
