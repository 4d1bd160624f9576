// Copyright (c) 2026 Lorevault. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lorevault/lorevault/internal/platform/apperr"
	"github.com/lorevault/lorevault/internal/platform/ctxutil"
	"github.com/lorevault/lorevault/internal/platform/sec"
	"github.com/lorevault/lorevault/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - username: The username of the account.
	//   - role: The role of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository    UserRepository
	attemptRepository LoginAttemptRepository
	tokenProvider     TokenProvider
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	attemptRepo LoginAttemptRepository,
	tokenProv TokenProvider,
) *Service {
	return &Service{
		userRepository:    userRepo,
		attemptRepository: attemptRepo,
		tokenProvider:     tokenProv,
	}
}

// # Session Result

// Session represents a successfully established authentication session.
//
// The token is self-contained: the server keeps no record of it, and it stays
// valid until it expires regardless of later logouts.
type Session struct {
	User  *User
	Token string
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

/*
Register validates, hashes, and persists a brand new user account, then signs
the caller in immediately.

Description: Enrollment of a new member, handling password hashing and issuing
the first access token so no follow-up login round trip is needed.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *Session: Created user plus a signed access token
  - err: Conflict (if email exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*Session, error) {

	// Verify email uniqueness. Return a client-safe Conflict err.
	// The database UNIQUE constraint remains the authority under races.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("User with this email already exists")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleUser,
	}

	// Persist the user to the database
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	session, err := service.issueSession(user)
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return session, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login validates user credentials and issues a fresh access token.

Description: Verifies identity with constant-time password comparison. Failed
attempts are counted per email in Redis; once the window limit is reached the
account is throttled until the counter expires.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Session: Authenticated user plus a signed access token
  - err: Unauthorized, RateLimited, or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {

	// ── 1. Throttle check ────────────────────────────────────────────────
	// Throttle failures are logged but never block a legitimate login.
	attempts, err := service.attemptRepository.Count(context, input.Email)
	if err != nil {
		ctxutil.GetLogger(context).Error("login throttle lookup failed", slog.Any("error", err))
	} else if attempts >= MaxLoginAttempts {
		return nil, apperr.RateLimited("Too many failed login attempts, please try again later")
	}

	// ── 2. Credential verification ───────────────────────────────────────
	// Generic message on both lookup and password failure to prevent
	// account enumeration.
	user, err := service.userRepository.FindByEmail(context, input.Email)
	if err != nil {
		service.recordFailedAttempt(context, input.Email)
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		service.recordFailedAttempt(context, input.Email)
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	// ── 3. Session issuance ──────────────────────────────────────────────
	if err := service.attemptRepository.Reset(context, input.Email); err != nil {
		ctxutil.GetLogger(context).Error("login throttle reset failed", slog.Any("error", err))
	}

	session, err := service.issueSession(user)
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).Info("user logged in", slog.String("user_id", user.ID))

	return session, nil
}

// # Profile

/*
GetProfile returns the account behind an authenticated token.

Description: Re-reads the account from storage so the response reflects the
current database state rather than the claims frozen inside the token.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *User: Hydrated entity
  - err: NotFound if the account vanished since token issuance
*/
func (service *Service) GetProfile(context context.Context, userID string) (*User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_get_profile_failed: %w", err)
	}

	return user, nil
}

// # Internals

// issueSession signs a fresh access token for the user.
func (service *Service) issueSession(user *User) (*Session, error) {
	token, err := service.tokenProvider.GenerateAccessToken(
		user.ID, user.Username, string(user.Role), AccessTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_failed: %w", err)
	}

	return &Session{User: user, Token: token}, nil
}

// recordFailedAttempt bumps the per-email throttle counter. Best-effort:
// counter errors must not change the caller-visible outcome of a login.
func (service *Service) recordFailedAttempt(context context.Context, email string) {
	if err := service.attemptRepository.Increment(context, email, LoginAttemptWindow); err != nil {
		ctxutil.GetLogger(context).Error("login throttle increment failed", slog.Any("error", err))
	}
}
