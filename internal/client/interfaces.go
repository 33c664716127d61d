// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run executes the command in args and returns when it is done.
	Run(ctx context.Context, args []string) error
}

// UI is the terminal surface used by the commands.
type UI interface {
	Prompt(ctx context.Context, label string) (string, error)
	PromptPassword(ctx context.Context, label string) (string, error)

	Success(message string)
	Failure(err error)
	RecoveryKey(recoveryKey string)
	Keys(keys []string)
	Document(payload []byte)
	Line(text string)
}

// SessionStore persists the bearer token between invocations.
type SessionStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}
