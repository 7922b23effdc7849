// Package http provides http transport for posts
package http

import (
	stdhttp "net/http"
	"strconv"

	"cliptube/internal/modkit/httpkit"
	"cliptube/internal/services/api/posts/domain"
	svc "cliptube/internal/services/api/posts/service"
)

// Register mounts the public post endpoints
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	r.Get("/user/{userID}", httpkit.Call(h.list))
}

// RegisterAuthed mounts the endpoints requiring a caller identity
func RegisterAuthed(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.CreateInput](r, "/", h.create)
	r.Delete("/{id}", httpkit.Call(h.del))
}

type handlers struct{ svc svc.Service }

// @Summary One user's posts, newest first
// @Tags Posts
// @Produce json
// @Success 200 {object} httpkit.Envelope
// @Router /posts/user/{userID} [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	p, err := h.svc.ListByAuthor(r.Context(), httpkit.Param(r, "userID"), domain.ListInput{
		Limit:  limit,
		Cursor: r.URL.Query().Get("cursor"),
	})
	if err != nil {
		return nil, err
	}
	return httpkit.List(p.Items, p.NextCursor, p.HasMore), nil
}

func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	p, err := h.svc.Create(r.Context(), httpkit.MustUser(r), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(p), nil
}

func (h *handlers) del(r *stdhttp.Request) (any, error) {
	if err := h.svc.Delete(r.Context(), httpkit.MustUser(r), httpkit.Param(r, "id")); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
