package httpkit

import (
	"errors"
	"net/http/httptest"
	"testing"

	perrs "cliptube/internal/platform/errors"
)

func TestPort_Parse_MissingHeader(t *testing.T) {
	p := NewPortFunc(func(string) (string, error) { return "u", nil })
	r := httptest.NewRequest("GET", "/", nil)
	if _, err := p.Parse(r); !perrs.IsCode(err, perrs.ErrorCodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestPort_Parse_WrongScheme(t *testing.T) {
	p := NewPortFunc(func(string) (string, error) { return "u", nil })
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Basic abc")
	if _, err := p.Parse(r); !perrs.IsCode(err, perrs.ErrorCodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestPort_Parse_BearerCaseInsensitive(t *testing.T) {
	p := NewPortFunc(func(tok string) (string, error) {
		if tok != "abc" {
			t.Fatalf("unexpected token %q", tok)
		}
		return "u-1", nil
	})
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "bEaRer   abc")
	uid, err := p.Parse(r)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if uid != "u-1" {
		t.Fatalf("got %q", uid)
	}
}

func TestPort_Parse_ParserError(t *testing.T) {
	p := NewPortFunc(func(string) (string, error) { return "", errors.New("bad sig") })
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer abc")
	if _, err := p.Parse(r); !perrs.IsCode(err, perrs.ErrorCodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestJWT_RawToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer tok-123")
	raw, err := JWT(r)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if raw != "tok-123" {
		t.Fatalf("got %q", raw)
	}
}

func TestMustUser_PanicsWithoutAuth(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	r := httptest.NewRequest("GET", "/", nil)
	MustUser(r)
}
