// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-press/internal/platform/middleware"
	requestutil "github.com/taibuivan/yomira-press/internal/platform/request"
	"github.com/taibuivan/yomira-press/internal/platform/respond"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
)

type Handler struct {
	service       *Service
	authenticator middleware.Authenticator
}

func NewHandler(service *Service, authenticator middleware.Authenticator) *Handler {
	return &Handler{service: service, authenticator: authenticator}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listTags)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAuth(handler.authenticator), middleware.RequireRole(sec.RoleAdmin))
		admin.Post("/", handler.createTag)
		admin.Delete("/{id}", handler.deleteTag)
	})
}

type createTagRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (handler *Handler) listTags(writer http.ResponseWriter, request *http.Request) {
	tags, err := handler.service.ListTags(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tags)
}

func (handler *Handler) createTag(writer http.ResponseWriter, request *http.Request) {
	var input createTagRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tag, err := handler.service.CreateTag(request.Context(), input.Name, input.Description)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, tag)
}

func (handler *Handler) deleteTag(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteTag(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
