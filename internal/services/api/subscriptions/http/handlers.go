// Package http provides http transport for subscriptions
package http

import (
	stdhttp "net/http"
	"strconv"

	"cliptube/internal/modkit/httpkit"
	"cliptube/internal/services/api/subscriptions/domain"
	svc "cliptube/internal/services/api/subscriptions/service"
)

// Register mounts the public subscription endpoints
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	r.Get("/channels/{id}/subscribers", httpkit.Call(h.subscribers))
}

// RegisterAuthed mounts the endpoints requiring a caller identity
func RegisterAuthed(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	r.Post("/channels/{id}", httpkit.Call(h.toggle))
	r.Get("/mine", httpkit.Call(h.mine))
}

type handlers struct{ svc svc.Service }

// @Summary Toggle a channel subscription
// @Tags Subscriptions
// @Produce json
// @Success 200 {object} domain.ToggleResult
// @Router /subscriptions/channels/{id} [post]
func (h *handlers) toggle(r *stdhttp.Request) (any, error) {
	return h.svc.Toggle(r.Context(), httpkit.MustUser(r), httpkit.Param(r, "id"))
}

func (h *handlers) subscribers(r *stdhttp.Request) (any, error) {
	p, err := h.svc.Subscribers(r.Context(), httpkit.Param(r, "id"), listInput(r))
	if err != nil {
		return nil, err
	}
	return httpkit.List(p.Items, p.NextCursor, p.HasMore), nil
}

func (h *handlers) mine(r *stdhttp.Request) (any, error) {
	p, err := h.svc.Mine(r.Context(), httpkit.MustUser(r), listInput(r))
	if err != nil {
		return nil, err
	}
	return httpkit.List(p.Items, p.NextCursor, p.HasMore), nil
}

func listInput(r *stdhttp.Request) domain.ListInput {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return domain.ListInput{Limit: limit, Cursor: r.URL.Query().Get("cursor")}
}
