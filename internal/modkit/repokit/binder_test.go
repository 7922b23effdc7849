package repokit

import (
	"context"
	"testing"

	"cliptube/internal/platform/testkit"
)

type nullQuerier struct{}

func (nullQuerier) Exec(context.Context, string, ...any) (CommandTag, error) { return nil, nil }
func (nullQuerier) Query(context.Context, string, ...any) (Rows, error)      { return nil, nil }
func (nullQuerier) QueryRow(context.Context, string, ...any) Row             { return nil }

func TestRequireQueryer_NilPanics(t *testing.T) {
	testkit.MustPanic(t, func() { RequireQueryer(nil) })
}

func TestMustBind_BindsValidQuerier(t *testing.T) {
	b := BindFunc[Queryer](func(q Queryer) Queryer { return q })
	if got := MustBind[Queryer](b, nullQuerier{}); got == nil {
		t.Fatal("expected the bound querier back")
	}
}
