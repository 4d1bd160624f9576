// Copyright (c) 2026 Lorevault. All rights reserved.

// PostgreSQL implementation of the character storage contract.
//
// # Error Mapping
//
// Every owner-scoped statement filters on (id, userid) in the WHERE clause,
// so a missing row and a foreign row are indistinguishable at the SQL level.
// Both map to the same merged NotFound message.
package character

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lorevault/lorevault/internal/platform/apperr"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Create persists a new character record into the game.character table.

Description: Inserts the full sheet and hydrates the generated timestamps
back into the entity.

Parameters:
  - context: context.Context
  - character: *Character (Entity to persist; ID and UserID must be set)

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, character *Character) error {
	const query = `
		INSERT INTO game.character (
			id, userid, name, heritage, calling, level, experience,
			biography, imageurl, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING createdat, updatedat`

	err := repository.pool.QueryRow(context, query,
		character.ID,
		character.UserID,
		character.Name,
		character.Heritage,
		character.Calling,
		character.Level,
		character.Experience,
		character.Biography,
		character.ImageURL,
		time.Now(),
	).Scan(&character.CreatedAt, &character.UpdatedAt)

	if err != nil {
		return fmt.Errorf("postgres_character_repo_create_failed: %w", err)
	}

	return nil
}

/*
ListByOwner retrieves all characters owned by a user, most recently updated first.

Parameters:
  - context: context.Context
  - ownerID: string

Returns:
  - []*Character: Owner's characters ordered by updatedat descending
  - error: Retrieval failures
*/
func (repository *PostgresRepository) ListByOwner(context context.Context, ownerID string) ([]*Character, error) {
	const query = `
		SELECT id, userid, name, heritage, calling, level, experience,
		       biography, imageurl, createdat, updatedat
		FROM game.character
		WHERE userid = $1
		ORDER BY updatedat DESC`

	rows, err := repository.pool.Query(context, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("postgres_character_repo_list_failed: %w", err)
	}
	defer rows.Close()

	characters := make([]*Character, 0)
	for rows.Next() {
		character := &Character{}
		if err := scanCharacter(rows, character); err != nil {
			return nil, fmt.Errorf("postgres_character_repo_list_scan_failed: %w", err)
		}
		characters = append(characters, character)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_character_repo_list_rows_failed: %w", err)
	}

	return characters, nil
}

/*
GetByOwner retrieves a single character if the user owns it.

Description: The WHERE clause filters on both id and userid; absence and
ownership mismatch collapse into the same NotFound outcome.

Parameters:
  - context: context.Context
  - ownerID: string
  - id: string

Returns:
  - *Character: Hydrated entity
  - error: apperr.NotFound (merged message) or execution errors
*/
func (repository *PostgresRepository) GetByOwner(context context.Context, ownerID, id string) (*Character, error) {
	const query = `
		SELECT id, userid, name, heritage, calling, level, experience,
		       biography, imageurl, createdat, updatedat
		FROM game.character
		WHERE id = $1 AND userid = $2`

	character := &Character{}
	err := repository.pool.QueryRow(context, query, id, ownerID).Scan(
		&character.ID,
		&character.UserID,
		&character.Name,
		&character.Heritage,
		&character.Calling,
		&character.Level,
		&character.Experience,
		&character.Biography,
		&character.ImageURL,
		&character.CreatedAt,
		&character.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFoundMsg(notFoundMessage)
		}
		return nil, fmt.Errorf("postgres_character_repo_get_failed: %w", err)
	}

	return character, nil
}

/*
UpdateByOwner applies a partial mutation to an owned character.

Description: COALESCE keeps the stored value wherever the input pointer is
nil, giving merge rather than replace semantics in a single statement.
updatedat is always refreshed.

Parameters:
  - context: context.Context
  - ownerID: string
  - id: string
  - input: UpdateInput (nil fields preserved)

Returns:
  - *Character: The full post-update record
  - error: apperr.NotFound (merged message) or execution errors
*/
func (repository *PostgresRepository) UpdateByOwner(context context.Context, ownerID, id string, input UpdateInput) (*Character, error) {
	const query = `
		UPDATE game.character
		SET name       = COALESCE($3, name),
		    heritage   = COALESCE($4, heritage),
		    calling    = COALESCE($5, calling),
		    level      = COALESCE($6, level),
		    experience = COALESCE($7, experience),
		    biography  = COALESCE($8, biography),
		    imageurl   = COALESCE($9, imageurl),
		    updatedat  = NOW()
		WHERE id = $1 AND userid = $2
		RETURNING id, userid, name, heritage, calling, level, experience,
		          biography, imageurl, createdat, updatedat`

	character := &Character{}
	err := repository.pool.QueryRow(context, query,
		id,
		ownerID,
		input.Name,
		input.Heritage,
		input.Calling,
		input.Level,
		input.Experience,
		input.Biography,
		input.ImageURL,
	).Scan(
		&character.ID,
		&character.UserID,
		&character.Name,
		&character.Heritage,
		&character.Calling,
		&character.Level,
		&character.Experience,
		&character.Biography,
		&character.ImageURL,
		&character.CreatedAt,
		&character.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFoundMsg(notFoundMessage)
		}
		return nil, fmt.Errorf("postgres_character_repo_update_failed: %w", err)
	}

	return character, nil
}

/*
DeleteByOwner removes an owned character.

Description: Hard delete. A second delete of the same id affects zero rows
and reports NotFound, which gives the documented idempotence behavior.

Parameters:
  - context: context.Context
  - ownerID: string
  - id: string

Returns:
  - error: apperr.NotFound (merged message) or execution errors
*/
func (repository *PostgresRepository) DeleteByOwner(context context.Context, ownerID, id string) error {
	const query = `DELETE FROM game.character WHERE id = $1 AND userid = $2`

	commandTag, err := repository.pool.Exec(context, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("postgres_character_repo_delete_failed: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return apperr.NotFoundMsg(notFoundMessage)
	}

	return nil
}

/*
ListAllWithOwner retrieves every character joined with its owner's username.

Description: Admin directory listing across all owners, most recently updated
first.

Parameters:
  - context: context.Context

Returns:
  - []*WithOwner: All characters ordered by updatedat descending
  - error: Retrieval failures
*/
func (repository *PostgresRepository) ListAllWithOwner(context context.Context) ([]*WithOwner, error) {
	const query = `
		SELECT c.id, c.userid, c.name, c.heritage, c.calling, c.level, c.experience,
		       c.biography, c.imageurl, c.createdat, c.updatedat, a.username
		FROM game.character AS c
		JOIN users.account AS a ON a.id = c.userid
		ORDER BY c.updatedat DESC`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_character_repo_list_all_failed: %w", err)
	}
	defer rows.Close()

	characters := make([]*WithOwner, 0)
	for rows.Next() {
		character := &WithOwner{}
		if err := rows.Scan(
			&character.ID,
			&character.UserID,
			&character.Name,
			&character.Heritage,
			&character.Calling,
			&character.Level,
			&character.Experience,
			&character.Biography,
			&character.ImageURL,
			&character.CreatedAt,
			&character.UpdatedAt,
			&character.OwnerUsername,
		); err != nil {
			return nil, fmt.Errorf("postgres_character_repo_list_all_scan_failed: %w", err)
		}
		characters = append(characters, character)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_character_repo_list_all_rows_failed: %w", err)
	}

	return characters, nil
}

// scanCharacter hydrates one character row in SELECT column order.
func scanCharacter(rows pgx.Rows, character *Character) error {
	return rows.Scan(
		&character.ID,
		&character.UserID,
		&character.Name,
		&character.Heritage,
		&character.Calling,
		&character.Level,
		&character.Experience,
		&character.Biography,
		&character.ImageURL,
		&character.CreatedAt,
		&character.UpdatedAt,
	)
}
