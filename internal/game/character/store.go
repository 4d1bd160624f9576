// Copyright (c) 2026 Lorevault. All rights reserved.

package character

import "context"

// notFoundMessage is the merged absence-or-denied response wording the API
// contract fixes for characters.
const notFoundMessage = "Character not found or access denied"

// # Character Data Access

// Repository defines the data access contract for characters.
//
// All owner-scoped methods treat an ownership mismatch exactly like a missing
// row: both surface as apperr.NotFound with the merged not-found-or-denied
// message, so the storage layer never reveals whether a foreign record exists.
type Repository interface {

	/*
		Create persists a new character and hydrates its generated timestamps.

		Parameters:
		  - context: context.Context
		  - character: *Character

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, character *Character) error

	/*
		ListByOwner returns all characters owned by the user, most recently
		updated first.

		Parameters:
		  - context: context.Context
		  - ownerID: string

		Returns:
		  - []*Character: Owner's characters ordered by updatedat descending
		  - error: Retrieval failures
	*/
	ListByOwner(context context.Context, ownerID string) ([]*Character, error)

	/*
		GetByOwner returns the character with the given ID if the user owns it.

		Parameters:
		  - context: context.Context
		  - ownerID: string
		  - id: string

		Returns:
		  - *Character: Hydrated entity
		  - error: apperr.NotFound on absence OR ownership mismatch
	*/
	GetByOwner(context context.Context, ownerID, id string) (*Character, error)

	/*
		UpdateByOwner applies a partial mutation to an owned character.

		Omitted (nil) fields keep their stored values; updatedat is always
		refreshed on success.

		Parameters:
		  - context: context.Context
		  - ownerID: string
		  - id: string
		  - input: UpdateInput

		Returns:
		  - *Character: The full post-update record
		  - error: apperr.NotFound on absence OR ownership mismatch
	*/
	UpdateByOwner(context context.Context, ownerID, id string, input UpdateInput) (*Character, error)

	/*
		DeleteByOwner removes an owned character.

		Parameters:
		  - context: context.Context
		  - ownerID: string
		  - id: string

		Returns:
		  - error: apperr.NotFound on absence OR ownership mismatch
	*/
	DeleteByOwner(context context.Context, ownerID, id string) error

	/*
		ListAllWithOwner returns every character joined with its owner's
		username, most recently updated first.

		Used exclusively by the admin directory listing.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*WithOwner: All characters ordered by updatedat descending
		  - error: Retrieval failures
	*/
	ListAllWithOwner(context context.Context) ([]*WithOwner, error)
}
