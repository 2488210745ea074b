// Package models holds the DB-facing data structures of the server.
package models

// User is an account row. PasswordHash is a bcrypt hash and never leaves the
// server.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
}
