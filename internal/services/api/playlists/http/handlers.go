// Package http provides http transport for playlists
package http

import (
	stdhttp "net/http"
	"strconv"

	"cliptube/internal/modkit/httpkit"
	"cliptube/internal/services/api/playlists/domain"
	svc "cliptube/internal/services/api/playlists/service"
)

// Register mounts the public playlist endpoints
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	r.Get("/{id}", httpkit.Call(h.get))
}

// RegisterOwner mounts the endpoints requiring a caller identity
func RegisterOwner(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.CreateInput](r, "/", h.create)
	r.Get("/", httpkit.Call(h.list))
	httpkit.PatchJSON[domain.UpdateInput](r, "/{id}", h.update)
	r.Delete("/{id}", httpkit.Call(h.del))
	r.Post("/{id}/visibility", httpkit.Call(h.toggleVisibility))
	r.Post("/{id}/videos/{videoID}", httpkit.Call(h.addVideo))
	r.Delete("/{id}/videos/{videoID}", httpkit.Call(h.removeVideo))
}

type handlers struct{ svc svc.Service }

// @Summary Create a playlist
// @Tags Playlists
// @Accept json
// @Produce json
// @Success 201 {object} domain.Playlist
// @Router /playlists [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	p, err := h.svc.Create(r.Context(), httpkit.MustUser(r), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(p), nil
}

func (h *handlers) list(r *stdhttp.Request) (any, error) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	p, err := h.svc.List(r.Context(), httpkit.MustUser(r), domain.ListInput{
		OwnerID: q.Get("owner_id"),
		Limit:   limit,
		Cursor:  q.Get("cursor"),
	})
	if err != nil {
		return nil, err
	}
	return httpkit.List(p.Items, p.NextCursor, p.HasMore), nil
}

func (h *handlers) get(r *stdhttp.Request) (any, error) {
	caller, _ := httpkit.User(r) // anonymous callers see only public playlists
	return h.svc.Get(r.Context(), caller, httpkit.Param(r, "id"))
}

func (h *handlers) update(r *stdhttp.Request, in domain.UpdateInput) (any, error) {
	return h.svc.Update(r.Context(), httpkit.MustUser(r), httpkit.Param(r, "id"), in)
}

func (h *handlers) del(r *stdhttp.Request) (any, error) {
	if err := h.svc.Delete(r.Context(), httpkit.MustUser(r), httpkit.Param(r, "id")); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

func (h *handlers) toggleVisibility(r *stdhttp.Request) (any, error) {
	return h.svc.ToggleVisibility(r.Context(), httpkit.MustUser(r), httpkit.Param(r, "id"))
}

func (h *handlers) addVideo(r *stdhttp.Request) (any, error) {
	return h.svc.AddVideo(r.Context(), httpkit.MustUser(r), httpkit.Param(r, "id"), httpkit.Param(r, "videoID"))
}

func (h *handlers) removeVideo(r *stdhttp.Request) (any, error) {
	return h.svc.RemoveVideo(r.Context(), httpkit.MustUser(r), httpkit.Param(r, "id"), httpkit.Param(r, "videoID"))
}
