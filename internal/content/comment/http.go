// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-press/internal/platform/middleware"
	requestutil "github.com/taibuivan/yomira-press/internal/platform/request"
	"github.com/taibuivan/yomira-press/internal/platform/respond"
	"github.com/taibuivan/yomira-press/pkg/pagination"
)

// Handler implements the HTTP layer for comments.
type Handler struct {
	service       *Service
	authenticator middleware.Authenticator
	ownership     middleware.OwnershipGuard
}

// NewHandler constructs a comment [Handler]. ownership must be bound to the
// comment resource.
func NewHandler(service *Service, authenticator middleware.Authenticator, ownership middleware.OwnershipGuard) *Handler {
	return &Handler{service: service, authenticator: authenticator, ownership: ownership}
}

// RegisterPostRoutes mounts the comment endpoints nested under a post. The
// router must carry an "id" URL parameter naming the post.
//
//   - GET  / : Lists the post's comments.
//   - POST / : Adds a comment (authenticated).
func (handler *Handler) RegisterPostRoutes(router chi.Router) {
	router.Get("/", handler.listComments)
	router.With(middleware.RequireAuth(handler.authenticator)).Post("/", handler.createComment)
}

// RegisterRoutes mounts the top-level comment endpoints.
//
//   - DELETE /{id} : Soft-deletes a comment (owner or admin).
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.With(
		middleware.RequireAuth(handler.authenticator),
		middleware.RequireOwnership(handler.ownership, "id"),
	).Delete("/{id}", handler.deleteComment)
}

type createCommentRequest struct {
	Body string `json:"body"`
}

// GET /api/v1/posts/{id}/comments
func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	comments, total, err := handler.service.List(request.Context(), requestutil.ID(request, "id"), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, params.Meta(total))
}

/*
POST /api/v1/posts/{id}/comments.

Response:
  - 201: Comment
  - 404: NOT_FOUND: Post missing or deleted
*/
func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createCommentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Create(request.Context(), identity, requestutil.ID(request, "id"), input.Body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

// DELETE /api/v1/comments/{id}
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
