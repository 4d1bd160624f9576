// Copyright (c) 2026 Lorevault. All rights reserved.

package client

import (
	"context"
	"net/http"
	"sync"
)

// # Collection State

// CharacterCollectionState is the client-side cache of the caller's vault.
//
// The list keeps the server's order (most recently updated first). After a
// failed call the previous cache is left intact — stale but present — with
// the server's message in Err; the caller decides when to retry.
type CharacterCollectionState struct {
	Characters []Character
	Current    *Character
	IsLoading  bool
	Err        string
}

// # Character Store

// CharacterStore mirrors the server's character operations 1:1 over a local
// cache.
//
// Every operation is guarded by token presence: with no token installed the
// call is a silent no-op rather than an error, matching a signed-out client
// that simply renders nothing.
type CharacterStore struct {
	client *Client

	mu    sync.RWMutex
	state CharacterCollectionState
}

// NewCharacterStore constructs a CharacterStore over the shared transport.
func NewCharacterStore(client *Client) *CharacterStore {
	return &CharacterStore{client: client}
}

// State returns a snapshot of the current collection state. The characters
// slice is copied so callers can range over it while operations proceed.
func (store *CharacterStore) State() CharacterCollectionState {
	store.mu.RLock()
	defer store.mu.RUnlock()

	snapshot := store.state
	snapshot.Characters = make([]Character, len(store.state.Characters))
	copy(snapshot.Characters, store.state.Characters)

	return snapshot
}

// # Wire Payloads

// CharacterDraft is the payload for creating a character.
type CharacterDraft struct {
	Name      string `json:"name"`
	Heritage  string `json:"heritage"`
	Calling   string `json:"calling"`
	Biography string `json:"biography,omitempty"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

// CharacterPatch is a partial update; nil fields are omitted from the JSON
// body and keep their server-side values.
type CharacterPatch struct {
	Name       *string `json:"name,omitempty"`
	Heritage   *string `json:"heritage,omitempty"`
	Calling    *string `json:"calling,omitempty"`
	Level      *int    `json:"level,omitempty"`
	Experience *int    `json:"experience,omitempty"`
	Biography  *string `json:"biography,omitempty"`
	ImageURL   *string `json:"imageUrl,omitempty"`
}

// # Operations

/*
FetchUserCharacters replaces the cached list with the server's.

Description: GET /api/characters. Wholesale replacement, no incremental
patching: the server's order is the cache's order.

Parameters:
  - context: context.Context
*/
func (store *CharacterStore) FetchUserCharacters(context context.Context) {
	if !store.client.HasToken() {
		return
	}
	store.setLoading(true)

	var characters []Character
	err := store.client.doData(context, http.MethodGet, "/api/characters", nil, &characters)

	store.mu.Lock()
	defer store.mu.Unlock()
	store.state.IsLoading = false

	if err != nil {
		store.state.Err = serverMessage(err)
		return
	}

	store.state.Characters = characters
}

/*
FetchCharacterByID loads one character into Current.

Parameters:
  - context: context.Context
  - id: string
*/
func (store *CharacterStore) FetchCharacterByID(context context.Context, id string) {
	if !store.client.HasToken() {
		return
	}
	store.setLoading(true)

	var fetched Character
	err := store.client.doData(context, http.MethodGet, "/api/characters/"+id, nil, &fetched)

	store.mu.Lock()
	defer store.mu.Unlock()
	store.state.IsLoading = false

	if err != nil {
		store.state.Err = serverMessage(err)
		return
	}

	store.state.Current = &fetched
}

/*
CreateCharacter persists a new character and prepends it to the cache.

Description: POST /api/characters. The server record (with generated ID and
defaults) goes to the front of the list, and Current points at it.

Parameters:
  - context: context.Context
  - draft: CharacterDraft
*/
func (store *CharacterStore) CreateCharacter(context context.Context, draft CharacterDraft) {
	if !store.client.HasToken() {
		return
	}
	store.setLoading(true)

	var created Character
	err := store.client.doData(context, http.MethodPost, "/api/characters", draft, &created)

	store.mu.Lock()
	defer store.mu.Unlock()
	store.state.IsLoading = false

	if err != nil {
		store.state.Err = serverMessage(err)
		return
	}

	store.state.Characters = append([]Character{created}, store.state.Characters...)
	store.state.Current = &created
}

/*
UpdateCharacter applies a partial update and merges the result into the cache.

Description: PUT /api/characters/{id}. The server returns the full
post-update record; it replaces the matching list entry in place and becomes
Current.

Parameters:
  - context: context.Context
  - id: string
  - patch: CharacterPatch
*/
func (store *CharacterStore) UpdateCharacter(context context.Context, id string, patch CharacterPatch) {
	if !store.client.HasToken() {
		return
	}
	store.setLoading(true)

	var updated Character
	err := store.client.doData(context, http.MethodPut, "/api/characters/"+id, patch, &updated)

	store.mu.Lock()
	defer store.mu.Unlock()
	store.state.IsLoading = false

	if err != nil {
		store.state.Err = serverMessage(err)
		return
	}

	for i := range store.state.Characters {
		if store.state.Characters[i].ID == updated.ID {
			store.state.Characters[i] = updated
			break
		}
	}
	store.state.Current = &updated
}

/*
DeleteCharacter removes a character from the server and the cache.

Description: DELETE /api/characters/{id}. The matching list entry is
filtered out; Current is cleared only if it was the deleted record.

Parameters:
  - context: context.Context
  - id: string
*/
func (store *CharacterStore) DeleteCharacter(context context.Context, id string) {
	if !store.client.HasToken() {
		return
	}
	store.setLoading(true)

	err := store.client.doData(context, http.MethodDelete, "/api/characters/"+id, nil, nil)

	store.mu.Lock()
	defer store.mu.Unlock()
	store.state.IsLoading = false

	if err != nil {
		store.state.Err = serverMessage(err)
		return
	}

	kept := store.state.Characters[:0]
	for _, existing := range store.state.Characters {
		if existing.ID != id {
			kept = append(kept, existing)
		}
	}
	store.state.Characters = kept

	if store.state.Current != nil && store.state.Current.ID == id {
		store.state.Current = nil
	}
}

// setLoading flips the loading flag and clears the stale error message.
func (store *CharacterStore) setLoading(loading bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.state.IsLoading = loading
	store.state.Err = ""
}
