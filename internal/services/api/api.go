// Package api provides the HTTP API for the application
package api

import (
	"cliptube/internal/platform/config"
	"cliptube/internal/platform/logger"
	phttp "cliptube/internal/platform/net/http"
	"cliptube/internal/platform/store"

	"cliptube/internal/modkit"
	"cliptube/internal/modkit/httpkit"
	"cliptube/internal/modkit/module"
	"cliptube/internal/modkit/swaggerkit"

	authmod "cliptube/internal/services/api/auth/module"
	commentsmod "cliptube/internal/services/api/comments/module"
	likesmod "cliptube/internal/services/api/likes/module"
	playlistsmod "cliptube/internal/services/api/playlists/module"
	postsmod "cliptube/internal/services/api/posts/module"
	subscriptionsmod "cliptube/internal/services/api/subscriptions/module"
	videosmod "cliptube/internal/services/api/videos/module"
)

// Options are the API options
type Options struct {
	Config        config.Conf
	Store         *store.Store
	Logger        *logger.Logger
	EnableSwagger bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}

	// Auth first: every other module guards its writes with the bearer port
	// it exports
	auth := authmod.New(deps)
	authPort := module.MustPortsOf[authmod.Ports](auth).Auth

	// Videos next: the relation modules borrow its existence check so a like
	// or playlist add never points at a video the feed would not serve
	videos := videosmod.New(deps, modkit.WithPorts(videosmod.Ports{Auth: authPort}))
	videoExists := module.MustPortsOf[videosmod.Ports](videos).Exists

	mods := []module.Module{
		auth,
		videos,
		likesmod.New(deps, modkit.WithPorts(likesmod.Ports{
			Auth:        authPort,
			VideoExists: videoExists,
		})),
		subscriptionsmod.New(deps, modkit.WithPorts(subscriptionsmod.Ports{
			Auth: authPort,
		})),
		playlistsmod.New(deps, modkit.WithPorts(playlistsmod.Ports{
			Auth:        authPort,
			VideoExists: videoExists,
		})),
		commentsmod.New(deps, modkit.WithPorts(commentsmod.Ports{
			Auth:        authPort,
			VideoExists: videoExists,
		})),
		postsmod.New(deps, modkit.WithPorts(postsmod.Ports{
			Auth: authPort,
		})),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
