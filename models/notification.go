package models

import "time"

// NotificationKind names the event a [Notification] reports.
type NotificationKind string

// PasswordResetRequested is emitted by POST /auth/forgot-password for an
// existing account.
const PasswordResetRequested NotificationKind = "password_reset_requested"

// Notification is an out-of-band message to an account owner. It carries no
// secret material.
type Notification struct {
	Kind        NotificationKind `json:"kind"`
	UserID      string           `json:"userId"`
	Email       string           `json:"email"`
	RequestedAt time.Time        `json:"requestedAt"`
}
