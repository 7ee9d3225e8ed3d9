package models

import "time"

// User represents a registered account.
//
// Users are account-level records; group participation is tracked by
// per-group GroupMember entries that reference the user's ID.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Email is the user's email address (unique). Used for login.
	Email string `json:"email"`

	// DisplayName is the user's default display name.
	DisplayName string `json:"displayName"`

	// Avatar is an optional profile picture URL.
	Avatar string `json:"avatar,omitempty"`

	// PasswordHash is the bcrypt hash of the user's password. Never
	// serialized into API responses.
	PasswordHash string `json:"passwordHash,omitempty"`

	// CreatedAt is when the account was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is bumped on profile changes.
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUser creates a user with the given identity fields and stamps the
// creation time. The ID is assigned by the storage layer if empty.
func NewUser(email, displayName, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
