// Package module wires posts into the API using modkit
package module

import (
	"net/http"

	modkit "cliptube/internal/modkit"
	"cliptube/internal/modkit/httpkit"
	"cliptube/internal/platform/net/middleware"
	str "cliptube/internal/platform/strings"
	psthttp "cliptube/internal/services/api/posts/http"
	pstrepo "cliptube/internal/services/api/posts/repo"
	pstsvc "cliptube/internal/services/api/posts/service"
)

// Ports carries what the module consumes
type Ports struct {
	Auth middleware.AuthPort
}

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	auth      middleware.AuthPort
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc pstsvc.Service
}

// New constructs a posts module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("posts"), modkit.WithPrefix("/posts")}, opts...)...)

	var in Ports
	if p, ok := b.Ports.(Ports); ok {
		in = p
	}

	repo := pstrepo.NewPG()
	svc := pstsvc.New(deps.PG, repo)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		ports:     in,
		auth:      in.Auth,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		psthttp.Register(r, m.svc)
		httpkit.Protected(r, m.auth, func(pr httpkit.Router) {
			psthttp.RegisterAuthed(pr, m.svc)
		})
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
