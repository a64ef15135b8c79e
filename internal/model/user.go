package model

import "time"

// User statuses and roles as stored in the `users` table.
const (
    UserStatusActive   = "active"
    UserStatusInactive = "inactive"

    RoleUser  = "user"
    RoleAdmin = "admin"
)

// User represents an account as stored in the `users` table.  The password
// hash lives in `auth_credentials`, so a User never carries it; the stored
// refresh token is excluded from JSON output.
//
// Fields:
//  ID           – primary key identifier of the user.
//  FirstName    – given name.
//  LastName     – family name.
//  Email        – unique, normalized (trimmed, lower-case) email address.
//  Phone        – optional contact number.
//  Status       – active or inactive.
//  Role         – user or admin.
//  ProfileImage – optional reference to an uploaded image.
//  RefreshToken – SHA-256 of the current refresh token, NULL after logout.
//  LastLogin    – time of the last successful login.
type User struct {
    ID           uint64     `json:"id"`
    FirstName    string     `json:"first_name"`
    LastName     string     `json:"last_name"`
    Email        string     `json:"email"`
    Phone        string     `json:"phone,omitempty"`
    Status       string     `json:"status"`
    Role         string     `json:"role"`
    ProfileImage string     `json:"profile_image,omitempty"`
    RefreshToken *string    `json:"-"`
    LastLogin    *time.Time `json:"last_login,omitempty"`
    CreatedAt    time.Time  `json:"created_at"`
    UpdatedAt    time.Time  `json:"updated_at"`
}

// Credential mirrors a row in `auth_credentials`, one per user.  The reset
// token column holds a SHA-256 hash; the raw value only leaves the service
// once, towards the mailer.
type Credential struct {
    ID                uint64
    UserID            uint64
    PasswordHash      string
    ResetToken        *string
    ResetTokenExpires *time.Time
    CreatedAt         time.Time
    UpdatedAt         time.Time
}
