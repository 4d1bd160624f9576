// Copyright (c) 2026 Lorevault. All rights reserved.

package client

import (
	"context"
	"net/http"
	"sync"
)

// # Auth State

// AuthState is the client-side mirror of the server's view of the session.
//
// It is a cached copy, never authoritative: the token alone decides what the
// server will accept, and CheckAuthState re-derives the rest from it.
type AuthState struct {
	User            *User
	Token           string
	IsAuthenticated bool
	IsLoading       bool
	// Err holds the server-reported message of the last failed operation,
	// or "" after a success.
	Err string
}

// # Session Store

// SessionStore drives the authentication lifecycle and caches its result.
//
// Operations record failures in the state's Err field instead of returning
// them, so a UI loop renders errors the same way it renders data. Individual
// calls are safe for concurrent use; concurrent calls are not serialized
// against each other and the last writer wins, same as two browser tabs.
type SessionStore struct {
	client  *Client
	storage TokenStorage

	mu    sync.RWMutex
	state AuthState
}

// NewSessionStore constructs a SessionStore over the shared transport.
func NewSessionStore(client *Client, storage TokenStorage) *SessionStore {
	return &SessionStore{client: client, storage: storage}
}

// State returns a snapshot of the current auth state.
func (store *SessionStore) State() AuthState {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

// # Wire Payloads

type sessionEnvelope struct {
	Success bool   `json:"success"`
	User    *User  `json:"user"`
	Token   string `json:"token"`
}

type profileEnvelope struct {
	Success bool  `json:"success"`
	User    *User `json:"user"`
}

type credentialsPayload struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// # Lifecycle Operations

/*
Register creates a new account and signs in with the returned token.

Description: POST /api/auth/register. On success the store holds the new
identity and the token is persisted; on failure the previous state survives
with Err set to the server's message.

Parameters:
  - context: context.Context
  - username, email, password: string
*/
func (store *SessionStore) Register(context context.Context, username, email, password string) {
	store.establishSession(context, "/api/auth/register", credentialsPayload{
		Username: username,
		Email:    email,
		Password: password,
	})
}

/*
Login authenticates an existing account.

Description: POST /api/auth/login. Same state transitions as Register.

Parameters:
  - context: context.Context
  - email, password: string
*/
func (store *SessionStore) Login(context context.Context, email, password string) {
	store.establishSession(context, "/api/auth/login", credentialsPayload{
		Email:    email,
		Password: password,
	})
}

/*
Logout discards the session locally.

Description: Purely client-side: the token is removed from the transport,
the persisted copy is cleared, and the state resets to signed-out. The
server keeps no session record, so there is nothing to revoke; an already
issued token stays valid until expiry.
*/
func (store *SessionStore) Logout() {
	store.client.ClearToken()
	_ = store.storage.Clear()

	store.mu.Lock()
	defer store.mu.Unlock()
	store.state = AuthState{}
}

/*
CheckAuthState restores a persisted session, if any.

Description: Loads the stored token and validates it against GET
/api/auth/me. A missing token resolves to a clean signed-out state, not an
error. A rejected token (expired, tampered) is discarded locally so the next
render starts from scratch.

Parameters:
  - context: context.Context
*/
func (store *SessionStore) CheckAuthState(context context.Context) {
	token, err := store.storage.Load()
	if err != nil || token == "" {
		store.mu.Lock()
		defer store.mu.Unlock()
		store.state = AuthState{}
		return
	}

	store.setLoading(true)
	store.client.SetToken(token)

	var envelope profileEnvelope
	requestErr := store.client.do(context, http.MethodGet, "/api/auth/me", nil, &envelope)

	store.mu.Lock()
	defer store.mu.Unlock()
	store.state.IsLoading = false

	if requestErr != nil {
		// The token no longer opens any doors; drop it everywhere.
		store.client.ClearToken()
		_ = store.storage.Clear()
		store.state = AuthState{Err: serverMessage(requestErr)}
		return
	}

	store.state = AuthState{
		User:            envelope.User,
		Token:           token,
		IsAuthenticated: true,
	}
}

// # Internals

// establishSession runs one credential exchange and applies the resulting
// state transition.
func (store *SessionStore) establishSession(context context.Context, path string, payload credentialsPayload) {
	store.setLoading(true)

	var envelope sessionEnvelope
	requestErr := store.client.do(context, http.MethodPost, path, payload, &envelope)

	store.mu.Lock()
	defer store.mu.Unlock()
	store.state.IsLoading = false

	if requestErr != nil {
		// Keep whatever identity was cached before; only surface the message.
		store.state.Err = serverMessage(requestErr)
		return
	}

	store.client.SetToken(envelope.Token)
	_ = store.storage.Save(envelope.Token)

	store.state = AuthState{
		User:            envelope.User,
		Token:           envelope.Token,
		IsAuthenticated: true,
	}
}

// setLoading flips the loading flag and clears the stale error message.
func (store *SessionStore) setLoading(loading bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.state.IsLoading = loading
	store.state.Err = ""
}

// serverMessage extracts a human-readable message from a transport error.
func serverMessage(err error) string {
	if apiError, ok := err.(*APIError); ok && apiError.Message != "" {
		return apiError.Message
	}
	return err.Error()
}
