// Copyright (c) 2026 Lorevault. All rights reserved.

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.Conflict on duplicate email, or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		ListAll returns every registered account, newest first.

		Used exclusively by the admin directory listing.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*User: All accounts ordered by creation time descending
		  - error: Retrieval failures
	*/
	ListAll(context context.Context) ([]*User, error)
}

// # Login Throttling

// LoginAttemptRepository tracks failed login attempts per email within a
// fixed TTL window. Implemented on Redis so counters expire on their own.
type LoginAttemptRepository interface {

	// Count returns the number of failed attempts currently recorded for the email.
	Count(context context.Context, email string) (int, error)

	// Increment records one failed attempt, starting the TTL window on first failure.
	Increment(context context.Context, email string, window time.Duration) error

	// Reset clears the counter after a successful login.
	Reset(context context.Context, email string) error
}
