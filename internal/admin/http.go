// Copyright (c) 2026 Lorevault. All rights reserved.

package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lorevault/lorevault/internal/platform/middleware"
	"github.com/lorevault/lorevault/internal/platform/respond"
	"github.com/lorevault/lorevault/internal/platform/sec"
)

// # Definitions & Constructors

// Handler implements the administrative HTTP endpoints.
type Handler struct {
	adminService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{adminService: service}
}

// Routes returns a [chi.Router] configured with admin-only routes.
//
// # Endpoints
//   - GET /users      : Lists every registered account.
//   - GET /characters : Lists every character with its owner's username.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/users", handler.listUsers)
	router.Get("/characters", handler.listCharacters)

	return router
}

/*
ListUsers returns the full account directory.

GET /api/admin/users

Response:
  - 200: []User: Accounts ordered by creation time descending
  - 401: ErrUnauthorized: Missing authentication
  - 403: ErrForbidden: Caller is not an admin
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	users, err := handler.adminService.ListUsers(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, users)
}

/*
ListCharacters returns every character across all owners.

GET /api/admin/characters

Response:
  - 200: []WithOwner: Characters ordered by updatedat descending
  - 401: ErrUnauthorized: Missing authentication
  - 403: ErrForbidden: Caller is not an admin
*/
func (handler *Handler) listCharacters(writer http.ResponseWriter, request *http.Request) {
	characters, err := handler.adminService.ListCharacters(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, characters)
}
