// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
type PasswordHasher interface {
	// Hash generates a salted adaptive hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash using the scheme's own
	// verify primitive.
	Check(password, hash string) bool
}
