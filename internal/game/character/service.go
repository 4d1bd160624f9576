// Copyright (c) 2026 Lorevault. All rights reserved.

package character

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lorevault/lorevault/internal/platform/apperr"
	"github.com/lorevault/lorevault/internal/platform/ctxutil"
	"github.com/lorevault/lorevault/internal/platform/validate"
	"github.com/lorevault/lorevault/pkg/uuid"
)

// guardID rejects identifiers that cannot possibly name a row. A malformed
// id gets the same merged response as a missing or foreign character, and
// never reaches storage (where a non-UUID parameter would fail to encode).
func guardID(id string) error {
	if !uuid.IsValid(id) {
		return apperr.NotFoundMsg(notFoundMessage)
	}
	return nil
}

// # Definitions & Constructors

// Service implements the character vault use cases.
//
// Ownership scoping lives in the repository WHERE clauses; the service is
// responsible for validation, defaults, and ID generation.
type Service struct {
	repository Repository
}

// NewService constructs a new character [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// # Creation

/*
Create validates and persists a new character for the owner.

Description: Requires name, heritage, and calling; level and experience are
forced to their defaults regardless of input. The owner is taken from the
authenticated identity, never from the payload.

Parameters:
  - context: context.Context
  - ownerID: string
  - input: CreateInput

Returns:
  - *Character: Persisted record including the generated ID
  - err: ValidationError or storage failures
*/
func (service *Service) Create(context context.Context, ownerID string, input CreateInput) (*Character, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		Required(FieldHeritage, input.Heritage).
		Required(FieldCalling, input.Calling)

	if input.ImageURL != "" {
		validator.URL(FieldImageURL, input.ImageURL)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	character := &Character{
		ID:         uuid.New(),
		UserID:     ownerID,
		Name:       input.Name,
		Heritage:   input.Heritage,
		Calling:    input.Calling,
		Level:      DefaultLevel,
		Experience: DefaultExperience,
		Biography:  input.Biography,
		ImageURL:   input.ImageURL,
	}

	if err := service.repository.Create(context, character); err != nil {
		return nil, fmt.Errorf("character_service_create_failed: %w", err)
	}

	ctxutil.GetLogger(context).Info("character created",
		slog.String("character_id", character.ID),
		slog.String("owner_id", ownerID),
	)

	return character, nil
}

// # Reads

/*
ListByOwner returns the owner's characters, most recently updated first.

Parameters:
  - context: context.Context
  - ownerID: string

Returns:
  - []*Character: Owner-scoped list
  - err: Retrieval failures
*/
func (service *Service) ListByOwner(context context.Context, ownerID string) ([]*Character, error) {
	characters, err := service.repository.ListByOwner(context, ownerID)
	if err != nil {
		return nil, fmt.Errorf("character_service_list_failed: %w", err)
	}

	return characters, nil
}

/*
GetByOwner returns a single owned character.

Parameters:
  - context: context.Context
  - ownerID: string
  - id: string

Returns:
  - *Character: Hydrated entity
  - err: NotFound on absence or ownership mismatch
*/
func (service *Service) GetByOwner(context context.Context, ownerID, id string) (*Character, error) {
	if err := guardID(id); err != nil {
		return nil, err
	}

	character, err := service.repository.GetByOwner(context, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("character_service_get_failed: %w", err)
	}

	return character, nil
}

// # Mutation

/*
Update applies a partial mutation to an owned character.

Description: Only supplied fields are validated; omitted fields keep their
stored values. Supplied required fields must stay non-empty, level must stay
at least 1, and experience non-negative.

Parameters:
  - context: context.Context
  - ownerID: string
  - id: string
  - input: UpdateInput

Returns:
  - *Character: The full post-update record
  - err: ValidationError, NotFound, or storage failures
*/
func (service *Service) Update(context context.Context, ownerID, id string, input UpdateInput) (*Character, error) {
	if err := guardID(id); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}

	if input.Name != nil {
		validator.Required(FieldName, *input.Name)
	}
	if input.Heritage != nil {
		validator.Required(FieldHeritage, *input.Heritage)
	}
	if input.Calling != nil {
		validator.Required(FieldCalling, *input.Calling)
	}
	if input.Level != nil {
		validator.Min(FieldLevel, *input.Level, 1)
	}
	if input.Experience != nil {
		validator.Min(FieldExperience, *input.Experience, 0)
	}
	if input.ImageURL != nil && *input.ImageURL != "" {
		validator.URL(FieldImageURL, *input.ImageURL)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	character, err := service.repository.UpdateByOwner(context, ownerID, id, input)
	if err != nil {
		return nil, fmt.Errorf("character_service_update_failed: %w", err)
	}

	ctxutil.GetLogger(context).Info("character updated",
		slog.String("character_id", id),
		slog.String("owner_id", ownerID),
	)

	return character, nil
}

/*
Delete removes an owned character.

Description: Hard delete; repeating the call reports NotFound because the
row no longer exists.

Parameters:
  - context: context.Context
  - ownerID: string
  - id: string

Returns:
  - err: NotFound on absence or ownership mismatch
*/
func (service *Service) Delete(context context.Context, ownerID, id string) error {
	if err := guardID(id); err != nil {
		return err
	}

	if err := service.repository.DeleteByOwner(context, ownerID, id); err != nil {
		return fmt.Errorf("character_service_delete_failed: %w", err)
	}

	ctxutil.GetLogger(context).Info("character deleted",
		slog.String("character_id", id),
		slog.String("owner_id", ownerID),
	)

	return nil
}
