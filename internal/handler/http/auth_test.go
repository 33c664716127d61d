// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/budget-keeper/internal/service"
	"github.com/MKhiriev/budget-keeper/internal/store"
	"github.com/MKhiriev/budget-keeper/internal/validators"
	"github.com/MKhiriev/budget-keeper/models"
)

func session(token string) models.Session {
	return models.Session{
		Token: models.Token{SignedString: token, ExpiresAt: time.Now().Add(time.Hour)},
		User:  models.PublicUser{ID: alice.UserID, Email: alice.Email},
	}
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		callsSvc   bool
		wantStatus int
		wantBody   string
	}{
		{
			name:       "registered",
			body:       `{"email":"alice@x.com","password":"S3cretPW!"}`,
			callsSvc:   true,
			wantStatus: http.StatusOK,
			wantBody:   `{"token":"tok-1","user":{"id":"` + alice.UserID + `","email":"alice@x.com"},"recoveryKey":"rk-1"}`,
		},
		{
			name:       "malformed JSON",
			body:       `{"email":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"invalid JSON was passed"}`,
		},
		{
			name:       "weak password",
			body:       `{"email":"alice@x.com","password":"weak"}`,
			serviceErr: fmt.Errorf("%w: %w", service.ErrValidation, validators.ErrPasswordTooShort),
			callsSvc:   true,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"validation failed: password must be at least 8 characters long"}`,
		},
		{
			name:       "email taken",
			body:       `{"email":"alice@x.com","password":"S3cretPW!"}`,
			serviceErr: fmt.Errorf("user creation ended with error: %w", store.ErrEmailAlreadyExists),
			callsSvc:   true,
			wantStatus: http.StatusConflict,
			wantBody:   `{"error":"email already exists"}`,
		},
		{
			name:       "storage failure hides internals",
			body:       `{"email":"alice@x.com","password":"S3cretPW!"}`,
			serviceErr: errors.Join(store.ErrStorageFailure, errors.New("dial tcp 10.0.0.7:5432: refused")),
			callsSvc:   true,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Internal Server Error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, router := newMockedRouter(t)
			if tt.callsSvc {
				registration := models.Registration{Session: session("tok-1"), RecoveryKey: "rk-1"}
				if tt.serviceErr != nil {
					registration = models.Registration{}
				}
				m.auth.EXPECT().Register(gomock.Any(), "alice@x.com", gomock.Any()).Return(registration, tt.serviceErr)
			}

			rr := doRequest(t, router, http.MethodPost, "/auth/register", tt.body, nil)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "Bearer tok-1", rr.Header().Get("Authorization"))
			} else {
				assert.Empty(t, rr.Header().Get("Authorization"))
			}
		})
	}
}

func TestLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		m, router := newMockedRouter(t)
		m.auth.EXPECT().Login(gomock.Any(), "alice@x.com", "S3cretPW!").Return(session("tok-2"), nil)

		rr := doRequest(t, router, http.MethodPost, "/auth/login", `{"email":"alice@x.com","password":"S3cretPW!"}`, nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"token":"tok-2","user":{"id":"`+alice.UserID+`","email":"alice@x.com"}}`, rr.Body.String())
		assert.Equal(t, "Bearer tok-2", rr.Header().Get("Authorization"))
	})

	t.Run("invalid credentials", func(t *testing.T) {
		m, router := newMockedRouter(t)
		m.auth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.Session{}, service.ErrInvalidCredentials)

		rr := doRequest(t, router, http.MethodPost, "/auth/login", `{"email":"alice@x.com","password":"nope"}`, nil)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"error":"invalid credentials"}`, rr.Body.String())
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, router := newMockedRouter(t)

		rr := doRequest(t, router, http.MethodPost, "/auth/login", `not json`, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("wrong method is hidden", func(t *testing.T) {
		_, router := newMockedRouter(t)

		rr := doRequest(t, router, http.MethodGet, "/auth/login", "", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestChangePassword(t *testing.T) {
	m, router := newMockedRouter(t)
	m.auth.EXPECT().
		ChangePassword(gomock.Any(), "alice@x.com", "S3cretPW!", "N3wPassWd").
		Return(session("tok-3"), nil)

	rr := doRequest(t, router, http.MethodPost, "/auth/change-password",
		`{"email":"alice@x.com","oldPassword":"S3cretPW!","newPassword":"N3wPassWd"}`, nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"token":"tok-3"}`, rr.Body.String())
	assert.Equal(t, "Bearer tok-3", rr.Header().Get("Authorization"))
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	m, router := newMockedRouter(t)
	m.auth.EXPECT().ChangePassword(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.Session{}, service.ErrInvalidCredentials)

	rr := doRequest(t, router, http.MethodPost, "/auth/change-password",
		`{"email":"alice@x.com","oldPassword":"wrong","newPassword":"N3wPassWd"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

// The answer never depends on the input.
func TestForgotPassword_AlwaysOK(t *testing.T) {
	t.Run("known or unknown email", func(t *testing.T) {
		m, router := newMockedRouter(t)
		m.auth.EXPECT().ForgotPassword(gomock.Any(), "ghost@x.com")

		rr := doRequest(t, router, http.MethodPost, "/auth/forgot-password", `{"email":"ghost@x.com"}`, nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"ok":true}`, rr.Body.String())
	})

	t.Run("malformed email", func(t *testing.T) {
		m, router := newMockedRouter(t)
		m.auth.EXPECT().ForgotPassword(gomock.Any(), "not-an-email")

		rr := doRequest(t, router, http.MethodPost, "/auth/forgot-password", `{"email":"not-an-email"}`, nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"ok":true}`, rr.Body.String())
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, router := newMockedRouter(t)

		rr := doRequest(t, router, http.MethodPost, "/auth/forgot-password", `{{{`, nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"ok":true}`, rr.Body.String())
	})
}

func TestResetPassword(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantBody   string
	}{
		{name: "reset", wantStatus: http.StatusOK, wantBody: `{"ok":true}`},
		{name: "wrong recovery key", serviceErr: service.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized, wantBody: `{"error":"invalid credentials"}`},
		{
			name:       "weak new password",
			serviceErr: fmt.Errorf("%w: %w", service.ErrValidation, validators.ErrPasswordNoDigit),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"validation failed: password must contain a digit"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, router := newMockedRouter(t)
			m.auth.EXPECT().ResetPassword(gomock.Any(), "alice@x.com", "rk-1", "N3wPassWd").Return(tt.serviceErr)

			rr := doRequest(t, router, http.MethodPost, "/auth/reset-password",
				`{"email":"alice@x.com","recoveryKey":"rk-1","newPassword":"N3wPassWd"}`, nil)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestRotateRecoveryKey(t *testing.T) {
	t.Run("rotated", func(t *testing.T) {
		m, router := newMockedRouter(t)
		m.expectAuthenticated()
		m.auth.EXPECT().RotateRecoveryKey(gomock.Any(), alice.Email, "S3cretPW!").Return("rk-2", nil)

		rr := doRequest(t, router, http.MethodPost, "/auth/recovery-key", `{"password":"S3cretPW!"}`, bearer(goodToken))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"recoveryKey":"rk-2"}`, rr.Body.String())
	})

	t.Run("wrong password", func(t *testing.T) {
		m, router := newMockedRouter(t)
		m.expectAuthenticated()
		m.auth.EXPECT().RotateRecoveryKey(gomock.Any(), alice.Email, "nope").Return("", service.ErrInvalidCredentials)

		rr := doRequest(t, router, http.MethodPost, "/auth/recovery-key", `{"password":"nope"}`, bearer(goodToken))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("no token", func(t *testing.T) {
		_, router := newMockedRouter(t)

		rr := doRequest(t, router, http.MethodPost, "/auth/recovery-key", `{"password":"S3cretPW!"}`, nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
