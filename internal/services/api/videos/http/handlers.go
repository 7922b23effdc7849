// Package http provides http transport for videos
package http

import (
	stdhttp "net/http"
	"strconv"

	"cliptube/internal/modkit/httpkit"
	"cliptube/internal/services/api/videos/domain"
	svc "cliptube/internal/services/api/videos/service"
)

// Register mounts video endpoints on the given router
// protected routes are grouped by the module
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	r.Get("/", httpkit.Call(h.feed))
	r.Get("/channel/{channelID}", httpkit.Call(h.channel))
	r.Get("/{id}", httpkit.Call(h.get))
}

// RegisterOwner mounts the owner only endpoints, callers wrap with auth
func RegisterOwner(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.CreateInput](r, "/", h.create)
	httpkit.PatchJSON[domain.UpdateInput](r, "/{id}", h.update)
	r.Delete("/{id}", httpkit.Call(h.del))
	r.Post("/{id}/publish", httpkit.Call(h.togglePublish))
}

type handlers struct{ svc svc.Service }

// pageQuery pulls the shared pagination params off the URL
func pageQuery(r *stdhttp.Request) (sortBy, sortDir string, limit int, cur string) {
	q := r.URL.Query()
	limit, _ = strconv.Atoi(q.Get("limit"))
	return q.Get("sort_by"), q.Get("sort_dir"), limit, q.Get("cursor")
}

func pageResponse(p domain.Page) any {
	return httpkit.List(p.Items, p.NextCursor, p.HasMore)
}

// @Summary Published video feed with search, sorting, and keyset paging
// @Tags Videos
// @Produce json
// @Param query query string false "Search text"
// @Param owner_id query string false "Filter by owner"
// @Param sort_by query string false "created_at or views"
// @Param cursor query string false "Opaque resume cursor"
// @Success 200 {object} httpkit.Envelope
// @Router /videos [get]
func (h *handlers) feed(r *stdhttp.Request) (any, error) {
	sortBy, sortDir, limit, cur := pageQuery(r)
	in := domain.FeedInput{
		Query:   r.URL.Query().Get("query"),
		OwnerID: r.URL.Query().Get("owner_id"),
		SortBy:  sortBy,
		SortDir: sortDir,
		Limit:   limit,
		Cursor:  cur,
	}
	p, err := h.svc.Feed(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return pageResponse(p), nil
}

// @Summary One channel's uploads, drafts included for the owner
// @Tags Videos
// @Produce json
// @Success 200 {object} httpkit.Envelope
// @Router /videos/channel/{channelID} [get]
func (h *handlers) channel(r *stdhttp.Request) (any, error) {
	sortBy, sortDir, limit, cur := pageQuery(r)
	caller, _ := httpkit.User(r) // anonymous callers see only published
	in := domain.ChannelVideosInput{
		ChannelID: httpkit.Param(r, "channelID"),
		SortBy:    sortBy,
		SortDir:   sortDir,
		Limit:     limit,
		Cursor:    cur,
	}
	p, err := h.svc.ChannelVideos(r.Context(), caller, in)
	if err != nil {
		return nil, err
	}
	return pageResponse(p), nil
}

func (h *handlers) get(r *stdhttp.Request) (any, error) {
	caller, _ := httpkit.User(r)
	return h.svc.Get(r.Context(), caller, httpkit.Param(r, "id"))
}

func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	v, err := h.svc.Create(r.Context(), httpkit.MustUser(r), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(v), nil
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

func (h *handlers) togglePublish(r *stdhttp.Request) (any, error) {
	return h.svc.TogglePublish(r.Context(), httpkit.MustUser(r), httpkit.Param(r, "id"))
}
