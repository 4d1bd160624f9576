// Copyright (c) 2026 Lorevault. All rights reserved.

/*
Package admin exposes the read-only administrative directory.

It aggregates listings across all users: every registered account, and every
character joined with its owner's username. There are no admin mutations in
the current surface; moderation happens directly in the database.
*/
package admin

import (
	"context"
	"fmt"

	"github.com/lorevault/lorevault/internal/game/character"
	"github.com/lorevault/lorevault/internal/users/auth"
)

// # Contracts & Types

// UserDirectory is the slice of the user storage the directory needs.
type UserDirectory interface {
	// ListAll returns every registered account, newest first.
	ListAll(context context.Context) ([]*auth.User, error)
}

// CharacterDirectory is the slice of the character storage the directory needs.
type CharacterDirectory interface {
	// ListAllWithOwner returns every character joined with its owner's
	// username, most recently updated first.
	ListAllWithOwner(context context.Context) ([]*character.WithOwner, error)
}

// Service implements the admin directory use cases.
//
// Role enforcement is NOT done here: the HTTP layer guards the routes with
// the admin role requirement before any of these methods run.
type Service struct {
	users      UserDirectory
	characters CharacterDirectory
}

// NewService constructs a new admin [Service].
func NewService(users UserDirectory, characters CharacterDirectory) *Service {
	return &Service{users: users, characters: characters}
}

// # Listings

/*
ListUsers returns every registered account.

Parameters:
  - context: context.Context

Returns:
  - []*auth.User: Accounts ordered by creation time descending
  - err: Retrieval failures
*/
func (service *Service) ListUsers(context context.Context) ([]*auth.User, error) {
	users, err := service.users.ListAll(context)
	if err != nil {
		return nil, fmt.Errorf("admin_service_list_users_failed: %w", err)
	}

	return users, nil
}

/*
ListCharacters returns every character with its owner's username.

Parameters:
  - context: context.Context

Returns:
  - []*character.WithOwner: All characters ordered by updatedat descending
  - err: Retrieval failures
*/
func (service *Service) ListCharacters(context context.Context) ([]*character.WithOwner, error) {
	characters, err := service.characters.ListAllWithOwner(context)
	if err != nil {
		return nil, fmt.Errorf("admin_service_list_characters_failed: %w", err)
	}

	return characters, nil
}
