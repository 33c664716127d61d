package validators

import (
	"context"

	"github.com/MKhiriev/budget-keeper/models"
)

// Field name constants used to restrict validation of auth requests to a
// subset of fields.
const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldOldPassword = "old_password"
	FieldNewPassword = "new_password"
	FieldRecoveryKey = "recovery_key"
)

// AuthValidator validates the request DTOs of the /auth endpoints.
//
// Password fields are checked against the full policy only where a password
// is being set (register, new password). Fields that carry an existing
// credential only need to be present.
type AuthValidator struct{}

func NewAuthValidator() Validator {
	return &AuthValidator{}
}

func (v *AuthValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegister(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegister(*value, fields...)

	case models.ChangePasswordRequest:
		return v.validateChangePassword(value, fields...)
	case *models.ChangePasswordRequest:
		return v.validateChangePassword(*value, fields...)

	case models.ResetPasswordRequest:
		return v.validateResetPassword(value, fields...)
	case *models.ResetPasswordRequest:
		return v.validateResetPassword(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *AuthValidator) validateRegister(request models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if err := ValidateEmail(request.Email); err != nil {
				return err
			}
		case FieldPassword:
			if err := ValidatePassword(request.Password); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AuthValidator) validateChangePassword(request models.ChangePasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldOldPassword, FieldNewPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if err := ValidateEmail(request.Email); err != nil {
				return err
			}
		case FieldOldPassword:
			if request.OldPassword == "" {
				return ErrEmptyPassword
			}
		case FieldNewPassword:
			if err := ValidatePassword(request.NewPassword); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AuthValidator) validateResetPassword(request models.ResetPasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldRecoveryKey, FieldNewPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if err := ValidateEmail(request.Email); err != nil {
				return err
			}
		case FieldRecoveryKey:
			if request.RecoveryKey == "" {
				return ErrEmptyRecoveryKey
			}
		case FieldNewPassword:
			if err := ValidatePassword(request.NewPassword); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
