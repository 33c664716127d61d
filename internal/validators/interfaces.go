// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators holds the input rules of budget-keeper: email syntax,
// the password policy and the syntax of logical document keys.
//
// Request DTOs are checked through the [Validator] interface, which accepts
// optional field names to restrict validation to part of a request. Single
// values can be checked with [ValidateEmail], [ValidatePassword] and
// [ValidateDocumentKey].
package validators

import "context"

// Validator validates a request value, optionally only the named fields.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
