// Package http provides http transport for auth
package http

import (
	stdhttp "net/http"

	"cliptube/internal/modkit/httpkit"
	"cliptube/internal/services/api/auth/domain"
	svc "cliptube/internal/services/api/auth/service"
)

// Register mounts the public auth endpoints
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.RegisterInput](r, "/register", h.register)
	httpkit.PostJSON[domain.LoginInput](r, "/login", h.login)
	httpkit.PostJSON[domain.RefreshInput](r, "/refresh", h.refresh)
	httpkit.PostJSON[domain.RefreshInput](r, "/logout", h.logout)
}

// RegisterAuthed mounts the endpoints requiring a caller identity
func RegisterAuthed(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	r.Get("/me", httpkit.Call(h.me))
}

type handlers struct{ svc svc.Service }

// @Summary Create an account
// @Tags Auth
// @Accept json
// @Produce json
// @Success 201 {object} domain.User
// @Router /auth/register [post]
func (h *handlers) register(r *stdhttp.Request, in domain.RegisterInput) (any, error) {
	u, err := h.svc.Register(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(u), nil
}

func (h *handlers) login(r *stdhttp.Request, in domain.LoginInput) (any, error) {
	return h.svc.Login(r.Context(), in)
}

func (h *handlers) refresh(r *stdhttp.Request, in domain.RefreshInput) (any, error) {
	return h.svc.Refresh(r.Context(), in)
}

func (h *handlers) logout(r *stdhttp.Request, in domain.RefreshInput) (any, error) {
	if err := h.svc.Logout(r.Context(), in); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

func (h *handlers) me(r *stdhttp.Request) (any, error) {
	return h.svc.Me(r.Context(), httpkit.MustUser(r))
}
