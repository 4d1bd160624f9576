// Copyright (c) 2026 Lorevault. All rights reserved.

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// Fixed at issuance (7 days); there is no refresh or revocation flow,
	// so logout is purely a client-side token discard.
	AccessTokenTTL = 7 * 24 * time.Hour

	// MaxLoginAttempts is the number of failed logins tolerated per email
	// before the throttle rejects further attempts.
	MaxLoginAttempts = 10

	// LoginAttemptWindow is the window in which failed attempts are counted.
	// The Redis counter expires this long after the first failure.
	LoginAttemptWindow = 15 * time.Minute

	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 6
)
