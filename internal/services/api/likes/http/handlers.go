// Package http provides http transport for likes
package http

import (
	stdhttp "net/http"
	"strconv"

	"cliptube/internal/modkit/httpkit"
	"cliptube/internal/services/api/likes/domain"
	svc "cliptube/internal/services/api/likes/service"
)

// Register mounts like endpoints on the given router, all behind auth
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	r.Post("/videos/{id}", httpkit.Call(h.toggle(domain.KindVideo)))
	r.Post("/comments/{id}", httpkit.Call(h.toggle(domain.KindComment)))
	r.Post("/posts/{id}", httpkit.Call(h.toggle(domain.KindPost)))
	r.Get("/videos", httpkit.Call(h.likedVideos))
}

type handlers struct{ svc svc.Service }

// @Summary Toggle a like on a target
// @Tags Likes
// @Produce json
// @Success 200 {object} domain.ToggleResult
// @Router /likes/videos/{id} [post]
func (h *handlers) toggle(kind domain.Kind) func(*stdhttp.Request) (any, error) {
	return func(r *stdhttp.Request) (any, error) {
		return h.svc.Toggle(r.Context(), httpkit.MustUser(r), kind, httpkit.Param(r, "id"))
	}
}

func (h *handlers) likedVideos(r *stdhttp.Request) (any, error) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	p, err := h.svc.LikedVideos(r.Context(), httpkit.MustUser(r), domain.LikedVideosInput{
		Limit:  limit,
		Cursor: r.URL.Query().Get("cursor"),
	})
	if err != nil {
		return nil, err
	}
	return httpkit.List(p.Items, p.NextCursor, p.HasMore), nil
}
