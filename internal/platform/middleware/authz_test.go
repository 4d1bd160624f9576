// Copyright (c) 2026 Lorevault. All rights reserved.

package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorevault/lorevault/internal/platform/middleware"
	"github.com/lorevault/lorevault/internal/platform/sec"
)

// fakeVerifier accepts exactly one token string and returns canned claims.
type fakeVerifier struct {
	validToken string
	claims     *sec.AuthClaims
}

func (verifier *fakeVerifier) VerifyToken(tokenStr string) (*sec.AuthClaims, error) {
	if tokenStr == verifier.validToken {
		return verifier.claims, nil
	}
	return nil, errors.New("bad token")
}

// buildChain wires Authenticate plus the given guards around a probe handler
// that records the claims it saw.
func buildChain(verifier middleware.TokenVerifier, guards ...func(http.Handler) http.Handler) (http.Handler, *[]*sec.AuthClaims) {
	var seen []*sec.AuthClaims

	var handler http.Handler = http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = append(seen, middleware.GetUser(request.Context()))
		writer.WriteHeader(http.StatusOK)
	})

	for i := len(guards) - 1; i >= 0; i-- {
		handler = guards[i](handler)
	}
	handler = middleware.Authenticate(verifier)(handler)

	return handler, &seen
}

func doRequest(t *testing.T, handler http.Handler, authorization string) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authorization != "" {
		request.Header.Set("Authorization", authorization)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) (message, code string) {
	t.Helper()

	var envelope struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
		Code    string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	return envelope.Error, envelope.Code
}

/*
TestAuthenticate_AnonymousPassesThrough: a missing header is not an error at
this stage — the request proceeds with nil claims.
*/
func TestAuthenticate_AnonymousPassesThrough(t *testing.T) {
	handler, seen := buildChain(&fakeVerifier{})

	recorder := doRequest(t, handler, "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.Len(t, *seen, 1)
	assert.Nil(t, (*seen)[0])
}

/*
TestAuthenticate_ValidToken injects the verified claims into context.
*/
func TestAuthenticate_ValidToken(t *testing.T) {
	claims := &sec.AuthClaims{UserID: "user-123", Username: "alice", Role: string(sec.RoleUser)}
	handler, seen := buildChain(&fakeVerifier{validToken: "good", claims: claims})

	recorder := doRequest(t, handler, "Bearer good")

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.Len(t, *seen, 1)
	assert.Equal(t, "user-123", (*seen)[0].UserID)
}

/*
TestAuthenticate_RejectsPresentButBroken: a supplied token that fails
verification is a hard 403, unlike a missing one.
*/
func TestAuthenticate_RejectsPresentButBroken(t *testing.T) {
	handler, seen := buildChain(&fakeVerifier{validToken: "good"})

	tests := []struct {
		name          string
		authorization string
		wantMessage   string
	}{
		{"bad_signature", "Bearer forged", "Invalid or expired token"},
		{"missing_scheme", "just-a-token", "Invalid authorization format"},
		{"wrong_scheme", "Basic dXNlcjpwYXNz", "Invalid authorization format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := doRequest(t, handler, tt.authorization)

			assert.Equal(t, http.StatusForbidden, recorder.Code)
			message, _ := decodeError(t, recorder)
			assert.Equal(t, tt.wantMessage, message)
		})
	}

	assert.Empty(t, *seen)
}

/*
TestRequireAuth blocks anonymous requests with 401.
*/
func TestRequireAuth(t *testing.T) {
	claims := &sec.AuthClaims{UserID: "user-123", Role: string(sec.RoleUser)}
	handler, _ := buildChain(&fakeVerifier{validToken: "good", claims: claims}, middleware.RequireAuth)

	recorder := doRequest(t, handler, "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	message, code := decodeError(t, recorder)
	assert.Equal(t, "Authentication required", message)
	assert.Equal(t, "UNAUTHORIZED", code)

	recorder = doRequest(t, handler, "Bearer good")
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestRequireRole enforces the admin gate on top of authentication.
*/
func TestRequireRole(t *testing.T) {
	adminGuard := middleware.RequireRole(sec.RoleAdmin)

	// Regular user: authenticated but forbidden.
	userClaims := &sec.AuthClaims{UserID: "user-123", Role: string(sec.RoleUser)}
	handler, _ := buildChain(&fakeVerifier{validToken: "good", claims: userClaims}, adminGuard)

	recorder := doRequest(t, handler, "Bearer good")
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	message, _ := decodeError(t, recorder)
	assert.Equal(t, "Admin privileges required", message)

	// Anonymous: 401 before any role logic.
	recorder = doRequest(t, handler, "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// Admin: passes.
	adminClaims := &sec.AuthClaims{UserID: "admin-1", Role: string(sec.RoleAdmin)}
	handler, _ = buildChain(&fakeVerifier{validToken: "good", claims: adminClaims}, adminGuard)

	recorder = doRequest(t, handler, "Bearer good")
	assert.Equal(t, http.StatusOK, recorder.Code)
}
