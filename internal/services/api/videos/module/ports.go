package module

import (
	"context"

	"cliptube/internal/platform/net/middleware"
	videossvc "cliptube/internal/services/api/videos/service"
)

// Ports carries the auth port the module consumes and the existence
// check it exposes to relation modules
type Ports struct {
	Auth   middleware.AuthPort
	Exists func(ctx context.Context, id string) (bool, error)
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

func exportPorts(auth middleware.AuthPort, svc *videossvc.Svc) Ports {
	return Ports{Auth: auth, Exists: svc.Exists}
}
