package model

import "time"

// User mirrors a row of the `users` table. The struct is consumed by
// the repository and handler layers; handlers never serialize it
// directly, they build response types that omit PasswordHash.
//
// Fields:
//
//	ID           – primary key, assigned by the database on insert.
//	Username     – unique handle, stored trimmed.
//	Email        – unique address, stored trimmed and lowercased.
//	PasswordHash – bcrypt hash; the plaintext password is never stored.
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
