package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	perr "cliptube/internal/platform/errors"
	pnet "cliptube/internal/platform/net"
	"cliptube/internal/platform/net/middleware"
)

type fakeAuthPort struct {
	user string
	err  error
}

func (f fakeAuthPort) Parse(r *http.Request) (string, error) {
	return f.user, f.err
}

func writeStub(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)
}

func TestAuth_NilPortPassesThrough(t *testing.T) {
	var nextCalled bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(200)
	})

	mw := middleware.Auth(nil, writeStub)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	mw(next).ServeHTTP(rr, req)

	if !nextCalled {
		t.Fatal("expected next to be called")
	}
	if rr.Code != 200 {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
}

func TestAuth_ErrorFromPortWritesMappedError(t *testing.T) {
	p := fakeAuthPort{err: perr.Unauthorizedf("bad token")}
	mw := middleware.Auth(p, writeStub)

	var nextCalled bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	mw(next).ServeHTTP(rr, req)

	if nextCalled {
		t.Fatal("next should not be called on auth error")
	}
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rr.Code)
	}
}

func TestAuth_SuccessStampsUserOnContext(t *testing.T) {
	p := fakeAuthPort{user: "u-123"}
	mw := middleware.Auth(p, writeStub)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := pnet.UserID(r.Context()); got != "u-123" {
			t.Fatalf("expected user id on context, got %q", got)
		}
		w.WriteHeader(200)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	mw(next).ServeHTTP(rr, req)

	if rr.Code != 200 {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
}
