package modkit

import (
	"net/http"
	"testing"

	"cliptube/internal/modkit/httpkit"
)

func TestBuild_Defaults(t *testing.T) {
	b := Build()
	if b.Subrouter == nil || b.Register == nil {
		t.Fatal("expected default hooks")
	}
	if b.Name != "" || b.Prefix != "" || len(b.Mw) != 0 {
		t.Fatalf("unexpected defaults: %+v", b)
	}
}

func TestBuild_Options(t *testing.T) {
	mw := func(next http.Handler) http.Handler { return next }
	var registered bool

	b := Build(
		WithName("videos"),
		WithPrefix("/videos"),
		WithMiddlewares(mw),
		WithSwagger(true),
		WithRegister(func(httpkit.Router) { registered = true }),
	)

	if b.Name != "videos" || b.Prefix != "/videos" || !b.SwaggerOn {
		t.Fatalf("options not applied: %+v", b)
	}
	if len(b.Mw) != 1 {
		t.Fatalf("expected 1 middleware, got %d", len(b.Mw))
	}
	b.Register(nil)
	if !registered {
		t.Fatal("expected register hook to run")
	}
}

func TestDeps_ZeroOK(t *testing.T) {
	var d Deps
	if !d.ZeroOK() {
		t.Fatal("zero deps should be usable")
	}
}
