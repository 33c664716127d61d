// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/budget-keeper/models"
)

// ---------------------------------------------------------------------------
// ValidateEmail
// ---------------------------------------------------------------------------

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"alice@x.com", true},
		{"Alice@X.com", true},
		{"first.last+tag@sub.example.org", true},
		{"", false},
		{"alice", false},
		{"alice@x", false},
		{"@x.com", false},
		{"al ice@x.com", false},
		{"alice@x.com ", false},
		{"alice@@x.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidEmail)
		})
	}
}

// ---------------------------------------------------------------------------
// ValidatePassword
// ---------------------------------------------------------------------------

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "valid", password: "S3cretPW!"},
		{name: "exactly eight", password: "Abcdefg1"},
		{name: "unicode letters count", password: "Ünïcödé1"},
		{name: "too short", password: "Ab1", wantErr: ErrPasswordTooShort},
		{name: "no upper", password: "lowercase1", wantErr: ErrPasswordNoUpper},
		{name: "no lower", password: "UPPERCASE1", wantErr: ErrPasswordNoLower},
		{name: "no digit", password: "NoDigitsHere", wantErr: ErrPasswordNoDigit},
		{name: "empty", password: "", wantErr: ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// ValidateDocumentKey
// ---------------------------------------------------------------------------

func TestValidateDocumentKey(t *testing.T) {
	valid := []string{
		"weeks",
		"2026/03/budget.json",
		"settings_v2",
		"a-b.c_d",
		strings.Repeat("k", MaxDocumentKeyLength),
	}
	for _, key := range valid {
		assert.NoError(t, ValidateDocumentKey(key), key)
	}

	invalid := []string{
		"",
		strings.Repeat("k", MaxDocumentKeyLength+1),
		"/weeks",
		"weeks/",
		"a//b",
		"..",
		"a/../b",
		"./a",
		"space here",
		"percent%2F",
		"back\\slash",
		"ключ",
	}
	for _, key := range invalid {
		assert.ErrorIs(t, ValidateDocumentKey(key), ErrInvalidDocumentKey, key)
	}
}

func TestValidateDocumentPrefix(t *testing.T) {
	assert.NoError(t, ValidateDocumentPrefix(""))
	assert.NoError(t, ValidateDocumentPrefix("2026/"))
	assert.NoError(t, ValidateDocumentPrefix("2026/03"))
	assert.ErrorIs(t, ValidateDocumentPrefix("../"), ErrInvalidDocumentKey)
	assert.ErrorIs(t, ValidateDocumentPrefix("/"), ErrInvalidDocumentKey)
}

func TestValidateDocumentBody(t *testing.T) {
	assert.NoError(t, ValidateDocumentBody([]byte(`{"weeks":[1,2,3]}`)))
	assert.NoError(t, ValidateDocumentBody([]byte(`[]`)))
	assert.ErrorIs(t, ValidateDocumentBody([]byte(`{"weeks":`)), ErrInvalidDocumentBody)
	assert.ErrorIs(t, ValidateDocumentBody(nil), ErrInvalidDocumentBody)

	big := []byte(`"` + strings.Repeat("a", MaxDocumentSize) + `"`)
	assert.ErrorIs(t, ValidateDocumentBody(big), ErrDocumentTooLarge)
}

// ---------------------------------------------------------------------------
// AuthValidator
// ---------------------------------------------------------------------------

func TestNewAuthValidator(t *testing.T) {
	v := NewAuthValidator()
	require.NotNil(t, v)
	assert.IsType(t, &AuthValidator{}, v)
}

func TestAuthValidator_UnsupportedType(t *testing.T) {
	v := NewAuthValidator()
	assert.ErrorIs(t, v.Validate(context.Background(), 42), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(context.Background(), models.LoginRequest{}), ErrUnsupportedType)
}

func TestAuthValidator_Register(t *testing.T) {
	v := NewAuthValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.RegisterRequest{Email: "alice@x.com", Password: "S3cretPW!"}))
	assert.NoError(t, v.Validate(ctx, &models.RegisterRequest{Email: "alice@x.com", Password: "S3cretPW!"}))

	assert.ErrorIs(t, v.Validate(ctx, models.RegisterRequest{Email: "bad", Password: "S3cretPW!"}), ErrInvalidEmail)
	assert.ErrorIs(t, v.Validate(ctx, models.RegisterRequest{Email: "alice@x.com", Password: "weak"}), ErrPasswordTooShort)

	// Field scoping skips the email rule.
	assert.NoError(t, v.Validate(ctx, models.RegisterRequest{Email: "bad", Password: "S3cretPW!"}, FieldPassword))
	assert.ErrorIs(t, v.Validate(ctx, models.RegisterRequest{}, "nope"), ErrUnknownField)
}

func TestAuthValidator_ChangePassword(t *testing.T) {
	v := NewAuthValidator()
	ctx := context.Background()

	valid := models.ChangePasswordRequest{Email: "alice@x.com", OldPassword: "whatever", NewPassword: "N3wPassWd"}
	assert.NoError(t, v.Validate(ctx, valid))

	noOld := valid
	noOld.OldPassword = ""
	assert.ErrorIs(t, v.Validate(ctx, noOld), ErrEmptyPassword)

	weakNew := valid
	weakNew.NewPassword = "password"
	assert.ErrorIs(t, v.Validate(ctx, &weakNew), ErrPasswordNoUpper)

	assert.NoError(t, v.Validate(ctx, weakNew, FieldEmail, FieldOldPassword))
}

func TestAuthValidator_ResetPassword(t *testing.T) {
	v := NewAuthValidator()
	ctx := context.Background()

	valid := models.ResetPasswordRequest{Email: "alice@x.com", RecoveryKey: "rec-0000", NewPassword: "N3wPassWd"}
	assert.NoError(t, v.Validate(ctx, valid))

	noKey := valid
	noKey.RecoveryKey = ""
	assert.ErrorIs(t, v.Validate(ctx, noKey), ErrEmptyRecoveryKey)

	noDigit := valid
	noDigit.NewPassword = "NewPassword"
	assert.ErrorIs(t, v.Validate(ctx, noDigit), ErrPasswordNoDigit)
	assert.ErrorIs(t, v.Validate(ctx, noDigit, FieldRecoveryKey, "other"), ErrUnknownField)
}
