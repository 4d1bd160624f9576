// Copyright (c) 2026 Lorevault. All rights reserved.

package character

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lorevault/lorevault/internal/platform/middleware"
	requestutil "github.com/lorevault/lorevault/internal/platform/request"
	"github.com/lorevault/lorevault/internal/platform/respond"
	"github.com/lorevault/lorevault/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the character vault HTTP endpoints.
//
// Every route requires authentication; the owner ID used for scoping always
// comes from the verified token claims, never from the request payload.
type Handler struct {
	characterService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{characterService: service}
}

// Routes returns a [chi.Router] configured with character vault routes.
//
// # Endpoints
//   - GET    /     : Lists the caller's characters.
//   - POST   /     : Creates a new character.
//   - GET    /{id} : Fetches one owned character.
//   - PUT    /{id} : Partially updates one owned character.
//   - DELETE /{id} : Deletes one owned character.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.remove)

	return router
}

// # Request Payloads

type createRequest struct {
	Name      string `json:"name"`
	Heritage  string `json:"heritage"`
	Calling   string `json:"calling"`
	Biography string `json:"biography"`
	ImageURL  string `json:"imageUrl"`
}

// updateRequest mirrors [UpdateInput]: absent JSON fields stay nil and the
// stored values survive the merge.
type updateRequest struct {
	Name       *string `json:"name"`
	Heritage   *string `json:"heritage"`
	Calling    *string `json:"calling"`
	Level      *int    `json:"level"`
	Experience *int    `json:"experience"`
	Biography  *string `json:"biography"`
	ImageURL   *string `json:"imageUrl"`
}

/*
List returns the authenticated user's characters.

GET /api/characters

Response:
  - 200: []Character: Owner-scoped list, most recently updated first
  - 401: ErrUnauthorized: Missing authentication
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	characters, err := handler.characterService.ListByOwner(request.Context(), ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, characters)
}

/*
Create persists a new character for the authenticated user.

POST /api/characters

Request:
  - Body: createRequest (Name, Heritage, Calling required)

Response:
  - 201: Character: Persisted record with defaults applied
  - 400: ErrValidation: Missing required fields
  - 401: ErrUnauthorized: Missing authentication
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	character, err := handler.characterService.Create(request.Context(), ownerID, CreateInput{
		Name:      input.Name,
		Heritage:  input.Heritage,
		Calling:   input.Calling,
		Biography: input.Biography,
		ImageURL:  input.ImageURL,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, character)
}

/*
Get fetches a single owned character.

GET /api/characters/{id}

Response:
  - 200: Character: Hydrated entity
  - 401: ErrUnauthorized: Missing authentication
  - 404: ErrNotFound: Absent or owned by someone else
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	character, err := handler.characterService.GetByOwner(
		request.Context(), ownerID, requestutil.ID(request, "id"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, character)
}

/*
Update partially mutates an owned character.

PUT /api/characters/{id}

Request:
  - Body: updateRequest (any subset of fields)

Response:
  - 200: Character: Full post-update record
  - 400: ErrValidation: Supplied field failed validation
  - 401: ErrUnauthorized: Missing authentication
  - 404: ErrNotFound: Absent or owned by someone else
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	character, err := handler.characterService.Update(
		request.Context(), ownerID, requestutil.ID(request, "id"),
		UpdateInput{
			Name:       input.Name,
			Heritage:   input.Heritage,
			Calling:    input.Calling,
			Level:      input.Level,
			Experience: input.Experience,
			Biography:  input.Biography,
			ImageURL:   input.ImageURL,
		},
	)

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, character)
}

/*
Remove deletes an owned character.

DELETE /api/characters/{id}

Response:
  - 200: null: Deletion confirmed ({"success":true,"data":null})
  - 401: ErrUnauthorized: Missing authentication
  - 404: ErrNotFound: Absent, already deleted, or owned by someone else
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.characterService.Delete(
		request.Context(), ownerID, requestutil.ID(request, "id"),
	); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, nil)
}
