// Package queue defines message payloads exchanged over the message broker.
package queue

import "time"

// PasswordResetRequested is published when a user asks for a password reset.
// It carries the raw token so a mailer can build the reset link; the
// database only ever sees its hash.
type PasswordResetRequested struct {
    UserID      uint64    `json:"user_id"`
    Email       string    `json:"email"`
    FirstName   string    `json:"first_name"`
    Token       string    `json:"token"`
    ExpiresAt   time.Time `json:"expires_at"`
    RequestedAt time.Time `json:"requested_at"`
}
