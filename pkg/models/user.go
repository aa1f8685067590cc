// Package models contains domain types for tracklight-engine.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user account. Accounts are global (not project-scoped)
// and are deactivated rather than deleted.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}
