package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/budget-keeper/internal/logger"
	"github.com/MKhiriev/budget-keeper/internal/service"
	"github.com/MKhiriev/budget-keeper/internal/utils"
	"github.com/MKhiriev/budget-keeper/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.writeError(w, r, ErrInvalidJSON)
		return
	}

	registration, err := h.services.AuthService.Register(ctx, request.Email, request.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Info().Str("user_id", registration.User.ID).Msg("user registered")

	utils.SetBearerToken(w, registration.Token.SignedString)
	utils.WriteJSON(w, models.RegisterResponse{
		Token:       registration.Token.SignedString,
		User:        registration.User,
		RecoveryKey: registration.RecoveryKey,
	}, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.writeError(w, r, ErrInvalidJSON)
		return
	}

	session, err := h.services.AuthService.Login(ctx, request.Email, request.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Debug().Str("user_id", session.User.ID).Msg("user successfully logged in")

	utils.SetBearerToken(w, session.Token.SignedString)
	utils.WriteJSON(w, models.AuthResponse{
		Token: session.Token.SignedString,
		User:  session.User,
	}, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.writeError(w, r, ErrInvalidJSON)
		return
	}

	session, err := h.services.AuthService.ChangePassword(ctx, request.Email, request.OldPassword, request.NewPassword)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Info().Str("user_id", session.User.ID).Msg("password changed")

	utils.SetBearerToken(w, session.Token.SignedString)
	utils.WriteJSON(w, models.TokenResponse{Token: session.Token.SignedString}, http.StatusOK)
}

// forgotPassword answers {"ok": true} no matter what was sent, so the
// response never tells whether an account exists.
func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Debug().Err(err).Msg("Invalid JSON was passed")
	} else {
		h.services.AuthService.ForgotPassword(r.Context(), request.Email)
	}

	utils.WriteJSON(w, models.OKResponse{OK: true}, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.writeError(w, r, ErrInvalidJSON)
		return
	}

	if err := h.services.AuthService.ResetPassword(ctx, request.Email, request.RecoveryKey, request.NewPassword); err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Info().Msg("password reset with recovery key")
	utils.WriteJSON(w, models.OKResponse{OK: true}, http.StatusOK)
}

func (h *Handler) rotateRecoveryKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, ok := utils.IdentityFromContext(ctx)
	if !ok {
		h.writeError(w, r, service.ErrUnauthenticated)
		return
	}

	var request models.RotateRecoveryKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.writeError(w, r, ErrInvalidJSON)
		return
	}

	recoveryKey, err := h.services.AuthService.RotateRecoveryKey(ctx, identity.Email, request.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Info().Str("user_id", identity.UserID).Msg("recovery key rotated")
	utils.WriteJSON(w, models.RecoveryKeyResponse{RecoveryKey: recoveryKey}, http.StatusOK)
}
