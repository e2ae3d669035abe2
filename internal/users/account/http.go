// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-press/internal/platform/middleware"
	requestutil "github.com/taibuivan/yomira-press/internal/platform/request"
	"github.com/taibuivan/yomira-press/internal/platform/respond"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
	"github.com/taibuivan/yomira-press/internal/platform/validate"
	"github.com/taibuivan/yomira-press/pkg/pagination"
)

// Handler implements the HTTP layer for account administration.
//
// # Security
//
// Every endpoint requires an authenticated admin. The role is the one loaded
// from the store on this request.
type Handler struct {
	accountService *Service
	authenticator  middleware.Authenticator
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service, authenticator middleware.Authenticator) *Handler {
	return &Handler{accountService: service, authenticator: authenticator}
}

// Routes returns a [chi.Router] configured with the admin account endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth(handler.authenticator), middleware.RequireRole(sec.RoleAdmin))

	router.Get("/", handler.listAccounts)
	router.Get("/{id}", handler.getAccount)
	router.Put("/{id}/active", handler.setActive)
	router.Put("/{id}/role", handler.setRole)

	return router
}

type setActiveRequest struct {
	IsActive *bool `json:"is_active"`
}

type setRoleRequest struct {
	Role sec.UserRole `json:"role"`
}

/*
GET /api/v1/users.

Response:
  - 200: []User: Paginated accounts
  - 403: FORBIDDEN: Caller is not an admin
*/
func (handler *Handler) listAccounts(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	users, total, err := handler.accountService.ListAccounts(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, params.Meta(total))
}

// GET /api/v1/users/{id}
func (handler *Handler) getAccount(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.accountService.GetAccount(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

/*
PUT /api/v1/users/{id}/active.

Request:
  - body: {"is_active": bool}

Response:
  - 200: User: The account after the change
  - 404: NOT_FOUND
*/
func (handler *Handler) setActive(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input setActiveRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.IsActive == nil {
		respond.Error(writer, request, validate.RequiredError(FieldIsActive, "This field is required"))
		return
	}

	user, err := handler.accountService.SetActive(request.Context(), actor, requestutil.ID(request, "id"), *input.IsActive)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

// PUT /api/v1/users/{id}/role
func (handler *Handler) setRole(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input setRoleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.SetRole(request.Context(), actor, requestutil.ID(request, "id"), input.Role)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}
