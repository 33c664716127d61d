// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the budget-keeper REST API.
//
// [ServerAdapter] decouples the command-line client from the protocol. The
// package ships an HTTP implementation ([NewHTTPServerAdapter]) built on
// resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] (e.g. [ErrConflict] for
// 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/budget-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter talks to a budget-keeper server on behalf of one user.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or "" if none is set.
	Token() string

	// Register creates an account and stores the returned token.
	Register(ctx context.Context, email, password string) (models.RegisterResponse, error)

	// Login signs in and stores the returned token.
	Login(ctx context.Context, email, password string) (models.AuthResponse, error)

	// ChangePassword replaces the password and stores the new token.
	ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error

	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, recoveryKey, newPassword string) error

	// RotateRecoveryKey requires a token and returns the new Recovery Key.
	RotateRecoveryKey(ctx context.Context, password string) (string, error)

	ListDocuments(ctx context.Context, prefix string) ([]string, error)
	ReadDocument(ctx context.Context, key string) ([]byte, error)
	WriteDocument(ctx context.Context, key string, payload []byte) error
	DeleteDocument(ctx context.Context, key string) error

	// Version returns the server's application version.
	Version(ctx context.Context) (string, error)
}
