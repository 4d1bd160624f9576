// Copyright (c) 2026 Lorevault. All rights reserved.

package client_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorevault/lorevault/pkg/client"
)

// # Fake API Server

// fakeServer is an in-memory rendition of the Lorevault API: register/login,
// bearer auth, and owner-scoped character CRUD with the same envelopes and
// error messages as the real server.
type fakeServer struct {
	mu         sync.Mutex
	users      map[string]fakeUser          // keyed by email
	characters map[string]*client.Character // keyed by ID
	nextID     int
}

type fakeUser struct {
	id       string
	username string
	password string
}

func newFakeServer(t *testing.T) (*httptest.Server, *fakeServer) {
	t.Helper()

	state := &fakeServer{
		users:      map[string]fakeUser{},
		characters: map[string]*client.Character{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", state.register)
	mux.HandleFunc("POST /api/auth/login", state.login)
	mux.HandleFunc("GET /api/auth/me", state.me)
	mux.HandleFunc("GET /api/characters", state.listCharacters)
	mux.HandleFunc("POST /api/characters", state.createCharacter)
	mux.HandleFunc("GET /api/characters/{id}", state.getCharacter)
	mux.HandleFunc("PUT /api/characters/{id}", state.updateCharacter)
	mux.HandleFunc("DELETE /api/characters/{id}", state.deleteCharacter)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server, state
}

func (s *fakeServer) allocateID(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

// identify resolves the bearer token to a user ID, or writes a 401.
func (s *fakeServer) identify(w http.ResponseWriter, r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer token-for-") {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"success": false, "error": "Authentication required", "code": "UNAUTHORIZED",
		})
		return "", false
	}
	return strings.TrimPrefix(header, "Bearer token-for-"), true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *fakeServer) register(w http.ResponseWriter, r *http.Request) {
	var body struct{ Username, Email, Password string }
	_ = json.NewDecoder(r.Body).Decode(&body)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[body.Email]; exists {
		writeJSON(w, http.StatusConflict, map[string]any{
			"success": false, "error": "User with this email already exists", "code": "CONFLICT",
		})
		return
	}

	id := s.allocateID("user")
	s.users[body.Email] = fakeUser{id: id, username: body.Username, password: body.Password}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"user":    client.User{ID: id, Username: body.Username, Email: body.Email, Role: "user"},
		"token":   "token-for-" + id,
	})
}

func (s *fakeServer) login(w http.ResponseWriter, r *http.Request) {
	var body struct{ Email, Password string }
	_ = json.NewDecoder(r.Body).Decode(&body)

	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[body.Email]
	if !exists || user.password != body.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"success": false, "error": "Invalid email or password", "code": "UNAUTHORIZED",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    client.User{ID: user.id, Username: user.username, Email: body.Email, Role: "user"},
		"token":   "token-for-" + user.id,
	})
}

func (s *fakeServer) me(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.identify(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for email, user := range s.users {
		if user.id == userID {
			writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"user":    client.User{ID: user.id, Username: user.username, Email: email, Role: "user"},
			})
			return
		}
	}

	writeJSON(w, http.StatusNotFound, map[string]any{
		"success": false, "error": "User not found", "code": "NOT_FOUND",
	})
}

func (s *fakeServer) listCharacters(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.identify(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	owned := []client.Character{}
	for _, c := range s.characters {
		if c.UserID == userID {
			owned = append(owned, *c)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": owned})
}

func (s *fakeServer) createCharacter(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.identify(w, r)
	if !ok {
		return
	}

	var draft client.CharacterDraft
	_ = json.NewDecoder(r.Body).Decode(&draft)

	if draft.Name == "" || draft.Heritage == "" || draft.Calling == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false, "error": "Validation failed", "code": "VALIDATION_ERROR",
		})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	created := &client.Character{
		ID:        s.allocateID("char"),
		UserID:    userID,
		Name:      draft.Name,
		Heritage:  draft.Heritage,
		Calling:   draft.Calling,
		Level:     1,
		Biography: draft.Biography,
		ImageURL:  draft.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.characters[created.ID] = created

	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "data": created})
}

// lookupOwned fetches an owned character or writes the merged 404.
func (s *fakeServer) lookupOwned(w http.ResponseWriter, userID, id string) (*client.Character, bool) {
	c, exists := s.characters[id]
	if !exists || c.UserID != userID {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"success": false, "error": "Character not found or access denied", "code": "NOT_FOUND",
		})
		return nil, false
	}
	return c, true
}

func (s *fakeServer) getCharacter(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.identify(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, found := s.lookupOwned(w, userID, r.PathValue("id"))
	if !found {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": c})
}

func (s *fakeServer) updateCharacter(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.identify(w, r)
	if !ok {
		return
	}

	var patch client.CharacterPatch
	_ = json.NewDecoder(r.Body).Decode(&patch)

	s.mu.Lock()
	defer s.mu.Unlock()

	c, found := s.lookupOwned(w, userID, r.PathValue("id"))
	if !found {
		return
	}

	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Level != nil {
		c.Level = *patch.Level
	}
	if patch.Experience != nil {
		c.Experience = *patch.Experience
	}
	c.UpdatedAt = time.Now()

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": c})
}

func (s *fakeServer) deleteCharacter(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.identify(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, found := s.lookupOwned(w, userID, r.PathValue("id"))
	if !found {
		return
	}

	delete(s.characters, c.ID)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": nil})
}

// # Session Store Tests

/*
TestSessionStore_RegisterAndLogout covers the full local session lifecycle.
*/
func TestSessionStore_RegisterAndLogout(t *testing.T) {
	server, _ := newFakeServer(t)
	api := client.NewClient(server.URL)
	session := client.NewSessionStore(api, client.NewMemoryTokenStorage())

	session.Register(context.Background(), "alice", "a@x.com", "secret1")

	state := session.State()
	require.True(t, state.IsAuthenticated)
	require.NotNil(t, state.User)
	assert.Equal(t, "alice", state.User.Username)
	assert.NotEmpty(t, state.Token)
	assert.Empty(t, state.Err)
	assert.True(t, api.HasToken())

	session.Logout()

	state = session.State()
	assert.False(t, state.IsAuthenticated)
	assert.Nil(t, state.User)
	assert.Empty(t, state.Token)
	assert.False(t, api.HasToken())
}

/*
TestSessionStore_LoginFailure verifies that a rejected login records the
server's message without fabricating a session.
*/
func TestSessionStore_LoginFailure(t *testing.T) {
	server, _ := newFakeServer(t)
	api := client.NewClient(server.URL)
	session := client.NewSessionStore(api, client.NewMemoryTokenStorage())

	session.Login(context.Background(), "nobody@x.com", "nope")

	state := session.State()
	assert.False(t, state.IsAuthenticated)
	assert.Equal(t, "Invalid email or password", state.Err)
	assert.False(t, api.HasToken())
}

/*
TestSessionStore_CheckAuthState verifies session restoration from persisted
token storage.
*/
func TestSessionStore_CheckAuthState(t *testing.T) {
	server, _ := newFakeServer(t)
	storage := client.NewMemoryTokenStorage()

	// First client signs up; the token lands in storage.
	firstAPI := client.NewClient(server.URL)
	firstSession := client.NewSessionStore(firstAPI, storage)
	firstSession.Register(context.Background(), "alice", "a@x.com", "secret1")
	require.True(t, firstSession.State().IsAuthenticated)

	// A fresh client over the same storage restores the session.
	secondAPI := client.NewClient(server.URL)
	secondSession := client.NewSessionStore(secondAPI, storage)
	secondSession.CheckAuthState(context.Background())

	state := secondSession.State()
	require.True(t, state.IsAuthenticated)
	assert.Equal(t, "alice", state.User.Username)

	// A garbage token is discarded locally.
	require.NoError(t, storage.Save("token-bogus"))
	secondSession.CheckAuthState(context.Background())

	state = secondSession.State()
	assert.False(t, state.IsAuthenticated)
	loaded, err := storage.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

// # Character Store Tests

/*
TestCharacterStore_OwnershipScenario walks the canonical two-user flow:
alice creates Thorne and sees it listed; bob cannot fetch it by ID.
*/
func TestCharacterStore_OwnershipScenario(t *testing.T) {
	server, _ := newFakeServer(t)

	// Alice registers and creates Thorne.
	aliceAPI := client.NewClient(server.URL)
	aliceSession := client.NewSessionStore(aliceAPI, client.NewMemoryTokenStorage())
	aliceSession.Register(context.Background(), "alice", "a@x.com", "secret1")
	require.True(t, aliceSession.State().IsAuthenticated)

	aliceVault := client.NewCharacterStore(aliceAPI)
	aliceVault.CreateCharacter(context.Background(), client.CharacterDraft{
		Name: "Thorne", Heritage: "Human", Calling: "Warrior",
	})

	state := aliceVault.State()
	require.Empty(t, state.Err)
	require.NotNil(t, state.Current)
	assert.Equal(t, "Thorne", state.Current.Name)
	assert.Equal(t, 1, state.Current.Level)
	assert.Equal(t, 0, state.Current.Experience)
	thorneID := state.Current.ID

	aliceVault.FetchUserCharacters(context.Background())
	state = aliceVault.State()
	require.Len(t, state.Characters, 1)
	assert.Equal(t, "Thorne", state.Characters[0].Name)

	// Bob registers and probes Thorne's ID.
	bobAPI := client.NewClient(server.URL)
	bobSession := client.NewSessionStore(bobAPI, client.NewMemoryTokenStorage())
	bobSession.Register(context.Background(), "bob", "b@x.com", "secret2")
	require.True(t, bobSession.State().IsAuthenticated)

	bobVault := client.NewCharacterStore(bobAPI)
	bobVault.FetchCharacterByID(context.Background(), thorneID)

	bobState := bobVault.State()
	assert.Nil(t, bobState.Current)
	assert.Equal(t, "Character not found or access denied", bobState.Err)
}

/*
TestCharacterStore_UpdateMergesIntoCache verifies the in-place list patch.
*/
func TestCharacterStore_UpdateMergesIntoCache(t *testing.T) {
	server, _ := newFakeServer(t)
	api := client.NewClient(server.URL)
	session := client.NewSessionStore(api, client.NewMemoryTokenStorage())
	session.Register(context.Background(), "alice", "a@x.com", "secret1")

	vault := client.NewCharacterStore(api)
	vault.CreateCharacter(context.Background(), client.CharacterDraft{
		Name: "Thorne", Heritage: "Human", Calling: "Warrior",
	})
	id := vault.State().Current.ID

	level := 5
	vault.UpdateCharacter(context.Background(), id, client.CharacterPatch{Level: &level})

	state := vault.State()
	require.Empty(t, state.Err)
	require.Len(t, state.Characters, 1)
	assert.Equal(t, 5, state.Characters[0].Level)
	assert.Equal(t, "Thorne", state.Characters[0].Name)
	assert.Equal(t, 5, state.Current.Level)
}

/*
TestCharacterStore_DeleteFiltersCache verifies removal plus Current clearing.
*/
func TestCharacterStore_DeleteFiltersCache(t *testing.T) {
	server, _ := newFakeServer(t)
	api := client.NewClient(server.URL)
	session := client.NewSessionStore(api, client.NewMemoryTokenStorage())
	session.Register(context.Background(), "alice", "a@x.com", "secret1")

	vault := client.NewCharacterStore(api)
	vault.CreateCharacter(context.Background(), client.CharacterDraft{
		Name: "Thorne", Heritage: "Human", Calling: "Warrior",
	})
	vault.CreateCharacter(context.Background(), client.CharacterDraft{
		Name: "Lyra", Heritage: "Elf", Calling: "Mage",
	})

	state := vault.State()
	require.Len(t, state.Characters, 2)
	lyraID := state.Current.ID

	vault.DeleteCharacter(context.Background(), lyraID)

	state = vault.State()
	require.Empty(t, state.Err)
	require.Len(t, state.Characters, 1)
	assert.Equal(t, "Thorne", state.Characters[0].Name)
	assert.Nil(t, state.Current)

	// Deleting again: the server says 404, the cache stays put.
	vault.DeleteCharacter(context.Background(), lyraID)
	state = vault.State()
	assert.Equal(t, "Character not found or access denied", state.Err)
	assert.Len(t, state.Characters, 1)
}

/*
TestCharacterStore_NoTokenNoOp verifies the signed-out guard.
*/
func TestCharacterStore_NoTokenNoOp(t *testing.T) {
	server, _ := newFakeServer(t)
	api := client.NewClient(server.URL)
	vault := client.NewCharacterStore(api)

	vault.FetchUserCharacters(context.Background())
	vault.CreateCharacter(context.Background(), client.CharacterDraft{
		Name: "Thorne", Heritage: "Human", Calling: "Warrior",
	})

	state := vault.State()
	assert.Empty(t, state.Characters)
	assert.Empty(t, state.Err)
	assert.False(t, state.IsLoading)
}

/*
TestCharacterStore_ErrorKeepsStaleCache verifies the stale-but-present rule.
*/
func TestCharacterStore_ErrorKeepsStaleCache(t *testing.T) {
	server, _ := newFakeServer(t)
	api := client.NewClient(server.URL)
	session := client.NewSessionStore(api, client.NewMemoryTokenStorage())
	session.Register(context.Background(), "alice", "a@x.com", "secret1")

	vault := client.NewCharacterStore(api)
	vault.CreateCharacter(context.Background(), client.CharacterDraft{
		Name: "Thorne", Heritage: "Human", Calling: "Warrior",
	})
	vault.FetchUserCharacters(context.Background())
	require.Len(t, vault.State().Characters, 1)

	// A validation failure must leave the cached list untouched.
	vault.CreateCharacter(context.Background(), client.CharacterDraft{Name: "Incomplete"})

	state := vault.State()
	assert.Equal(t, "Validation failed", state.Err)
	assert.Len(t, state.Characters, 1)
	assert.Equal(t, "Thorne", state.Characters[0].Name)
}
