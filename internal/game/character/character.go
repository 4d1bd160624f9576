// Copyright (c) 2026 Lorevault. All rights reserved.

/*
Package character implements the character vault: ownership-scoped CRUD for
the game.character table.

# Ownership Model

Every character belongs to exactly one user, fixed at creation. All reads and
mutations are scoped to the owner; a lookup of someone else's character is
reported as absence, so callers cannot probe for existence of foreign records.
The admin directory is the only path that crosses owner boundaries, and it is
read-only.
*/
package character

import "time"

// # Domain Entities

// Character represents a playable character sheet.
//
// UserID is immutable after creation. Level and Experience are server-defaulted
// (1 and 0) and only change through updates by the owner.
type Character struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Name       string    `json:"name"`
	Heritage   string    `json:"heritage"`
	Calling    string    `json:"calling"`
	Level      int       `json:"level"`
	Experience int       `json:"experience"`
	Biography  string    `json:"biography"`
	ImageURL   string    `json:"imageUrl"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// WithOwner decorates a Character with its owner's username for the admin
// directory listing.
type WithOwner struct {
	Character

	OwnerUsername string `json:"username"`
}

// # Operation Inputs

// CreateInput holds the caller-supplied fields for a new character.
// Level and Experience are not accepted at creation; they always start at
// their defaults.
type CreateInput struct {
	Name      string
	Heritage  string
	Calling   string
	Biography string
	ImageURL  string
}

// UpdateInput holds a partial character mutation.
//
// Nil fields are left untouched (merge semantics); non-nil fields replace the
// stored value. The pointer distinction matters: an empty string clears an
// optional field, a nil pointer preserves it.
type UpdateInput struct {
	Name       *string
	Heritage   *string
	Calling    *string
	Level      *int
	Experience *int
	Biography  *string
	ImageURL   *string
}

// # Field Identifiers

// Field names for validation errors in the character domain.
const (
	FieldName       = "name"
	FieldHeritage   = "heritage"
	FieldCalling    = "calling"
	FieldLevel      = "level"
	FieldExperience = "experience"
	FieldImageURL   = "imageUrl"
	FieldCharacter  = "character"
)

// # Defaults

const (
	// DefaultLevel is the starting level for newly created characters.
	DefaultLevel = 1

	// DefaultExperience is the starting experience for newly created characters.
	DefaultExperience = 0
)
