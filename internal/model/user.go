package model

import "time"

// RoleBasic is assigned to every registered user. Basic users hold no
// scopes; they act only through ownership checks made by handlers.
const RoleBasic = "basic"

// User mirrors the `users` table. PasswordHash holds the bcrypt digest;
// the plaintext is never persisted. Role is the only input to the
// permission table.
type User struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
