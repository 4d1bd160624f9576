// Copyright (c) 2026 Lorevault. All rights reserved.

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorevault/lorevault/internal/platform/sec"
)

const testSecret = "0123456789abcdef0123456789abcdef"

/*
TestNewTokenService_SecretLength rejects secrets that are too short to sign with.
*/
func TestNewTokenService_SecretLength(t *testing.T) {
	_, err := sec.NewTokenService("short", "lorevault.test")
	assert.Error(t, err)

	service, err := sec.NewTokenService(testSecret, "lorevault.test")
	require.NoError(t, err)
	assert.NotNil(t, service)
}

/*
TestTokenService_RoundTrip verifies that issued tokens carry the claims back
through verification.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "lorevault.test")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("user-123", "alice", string(sec.RoleUser), time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, string(sec.RoleUser), claims.Role)
	assert.Equal(t, "lorevault.test", claims.Issuer)
	assert.Equal(t, "user-123", claims.Subject)
}

/*
TestTokenService_Expired checks that an out-of-date token maps to the
dedicated expiry sentinel.
*/
func TestTokenService_Expired(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "lorevault.test")
	require.NoError(t, err)

	// Negative TTL issues an already-expired token.
	token, err := service.GenerateAccessToken("user-123", "alice", string(sec.RoleUser), -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.ErrorIs(t, err, sec.ErrTokenExpired)
}

/*
TestTokenService_WrongSecret checks that a token signed elsewhere is invalid.
*/
func TestTokenService_WrongSecret(t *testing.T) {
	issuer, err := sec.NewTokenService(testSecret, "lorevault.test")
	require.NoError(t, err)

	verifier, err := sec.NewTokenService("ffffffffffffffffffffffffffffffff", "lorevault.test")
	require.NoError(t, err)

	token, err := issuer.GenerateAccessToken("user-123", "alice", string(sec.RoleUser), time.Hour)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.ErrorIs(t, err, sec.ErrTokenInvalid)
}

/*
TestTokenService_Malformed checks that garbage input is invalid, not a panic.
*/
func TestTokenService_Malformed(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "lorevault.test")
	require.NoError(t, err)

	for _, input := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := service.VerifyToken(input)
		assert.ErrorIs(t, err, sec.ErrTokenInvalid)
	}
}

/*
TestUserRole_AtLeast checks the role hierarchy comparisons.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleUser))
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleAdmin))
	assert.True(t, sec.RoleUser.AtLeast(sec.RoleUser))
	assert.False(t, sec.RoleUser.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.UserRole("ghost").AtLeast(sec.RoleUser))
}
