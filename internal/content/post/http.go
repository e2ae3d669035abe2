// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-press/internal/platform/middleware"
	requestutil "github.com/taibuivan/yomira-press/internal/platform/request"
	"github.com/taibuivan/yomira-press/internal/platform/respond"
	"github.com/taibuivan/yomira-press/pkg/pagination"
)

// Handler implements the HTTP layer for posts.
type Handler struct {
	service       *Service
	authenticator middleware.Authenticator
	ownership     middleware.OwnershipGuard
}

// NewHandler constructs a post [Handler].
//
// ownership must be bound to the post resource.
func NewHandler(service *Service, authenticator middleware.Authenticator, ownership middleware.OwnershipGuard) *Handler {
	return &Handler{service: service, authenticator: authenticator, ownership: ownership}
}

// RegisterRoutes mounts the post endpoints on router.
//
// # Routing Strategy
//
//   - Public: list and read active posts.
//   - Authenticated: create.
//   - Owner or admin: update and delete.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listPosts)
	router.Get("/{id}", handler.getPost)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth(handler.authenticator))
		protected.Post("/", handler.createPost)

		protected.Group(func(owned chi.Router) {
			owned.Use(middleware.RequireOwnership(handler.ownership, "id"))
			owned.Put("/{id}", handler.updatePost)
			owned.Patch("/{id}", handler.updatePost)
			owned.Delete("/{id}", handler.deletePost)
		})
	})
}

type createPostRequest struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Status Status   `json:"status"`
	TagIDs []string `json:"tag_ids"`
}

type updatePostRequest struct {
	Title  *string  `json:"title"`
	Body   *string  `json:"body"`
	Status *Status  `json:"status"`
	TagIDs []string `json:"tag_ids"`
}

/*
GET /api/v1/posts.

Request:
  - status: string (draft, published, archived)
  - user_id: string (author filter)
  - page, limit: int

Response:
  - 200: []Post: Paginated list of active posts
*/
func (handler *Handler) listPosts(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := Filter{
		Status: Status(query.Get("status")),
		UserID: query.Get("user_id"),
	}

	posts, total, err := handler.service.List(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, params.Meta(total))
}

// GET /api/v1/posts/{id}
func (handler *Handler) getPost(writer http.ResponseWriter, request *http.Request) {
	post, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, post)
}

/*
POST /api/v1/posts.

Response:
  - 201: Post: Created post owned by the caller
  - 400: VALIDATION_ERROR
*/
func (handler *Handler) createPost(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createPostRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.service.Create(request.Context(), identity, CreateInput{
		Title:  input.Title,
		Body:   input.Body,
		Status: input.Status,
		TagIDs: input.TagIDs,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, post)
}

/*
PUT|PATCH /api/v1/posts/{id}.

Response:
  - 200: Post: Updated post
  - 403: FORBIDDEN: Caller is neither the owner nor an admin
*/
func (handler *Handler) updatePost(writer http.ResponseWriter, request *http.Request) {
	var input updatePostRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), UpdateInput{
		Title:  input.Title,
		Body:   input.Body,
		Status: input.Status,
		TagIDs: input.TagIDs,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

/*
DELETE /api/v1/posts/{id}.

Response:
  - 200: Result: Counts of deactivated dependents
  - 403: FORBIDDEN
  - 404: NOT_FOUND: Already deleted (admin only; owners get 403)
*/
func (handler *Handler) deletePost(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.service.Delete(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}
