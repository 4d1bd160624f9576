// Copyright (c) 2026 Lorevault. All rights reserved.

/*
Package auth implements the user identity layer for Lorevault.

It defines the core domain entities (User) and logic for registration,
credential verification, and bearer-token issuance.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/lorevault/lorevault/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Lorevault platform.
//
// Accounts are never deleted; the role field is the only mutable attribute,
// and no endpoint currently exposes role changes.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldUser     = "user"
	FieldToken    = "token"
)
