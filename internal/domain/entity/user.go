// Package entity contains the core business objects of the blog,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an identity record. A local account carries Username and
// PasswordHash; a federated account carries OAuthID. At least one of the two
// is always populated.
type User struct {
	ID           uuid.UUID // Assigned by the store on creation, immutable.
	Name         string    // Display name, 5-30 characters.
	Username     string    // Unique handle; empty for OAuth-only accounts.
	PasswordHash string    // One-way hash; empty for OAuth-only accounts.
	OAuthID      string    // External identifier from Google; empty for local accounts.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLocal reports whether the user can sign in with a username and password.
func (u *User) IsLocal() bool {
	return u.Username != "" && u.PasswordHash != ""
}

// IsFederated reports whether the user originates from an OAuth provider.
func (u *User) IsFederated() bool {
	return u.OAuthID != ""
}

// PublicUser is the minimal identity returned to clients.
type PublicUser struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Public strips everything but id and name.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name}
}
