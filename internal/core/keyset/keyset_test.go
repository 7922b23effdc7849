package keyset

import (
	"testing"
	"time"

	"cliptube/internal/core/cursor"
	perr "cliptube/internal/platform/errors"
)

func TestClampLimit(t *testing.T) {
	cases := []struct {
		in, max, want int
	}{
		{0, 10, 1},
		{-3, 10, 1},
		{5, 10, 5},
		{10, 10, 10},
		{11, 10, 10},
		{500, 50, 50},
	}
	for _, tc := range cases {
		if got := ClampLimit(tc.in, tc.max); got != tc.want {
			t.Fatalf("ClampLimit(%d, %d) = %d, want %d", tc.in, tc.max, got, tc.want)
		}
	}
}

func TestParse_Defaults(t *testing.T) {
	q, err := Parse("", "", 0, "", 10)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if q.Field != FieldCreatedAt || q.Dir != Desc || q.Limit != 1 || q.Cursor != nil {
		t.Fatalf("unexpected query: %+v", q)
	}
}

func TestParse_UnknownSortFallsBack(t *testing.T) {
	q, err := Parse("likes", "sideways", 5, "", 10)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if q.Field != FieldCreatedAt || q.Dir != Desc {
		t.Fatalf("expected created_at desc fallback, got %+v", q)
	}
}

func TestParse_ViewsSelectsPopularityCursor(t *testing.T) {
	raw := cursor.Encode(cursor.ModePopularity, cursor.Cursor{Views: 9, ID: "v3"})
	q, err := Parse("views", "desc", 5, raw, 10)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if q.Field != FieldViews || q.Cursor == nil || q.Cursor.Views != 9 || q.Cursor.ID != "v3" {
		t.Fatalf("unexpected query: %+v", q)
	}
}

func TestParse_BadCursorIsError_NotFirstPage(t *testing.T) {
	_, err := Parse("created_at", "desc", 5, "garbage", 10)
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSQL_FirstPageEmpty(t *testing.T) {
	frag, args := SQL(Query{Field: FieldCreatedAt, Dir: Desc}, 1)
	if frag != "" || args != nil {
		t.Fatalf("expected empty predicate, got %q %v", frag, args)
	}
}

func TestSQL_RecencyDesc(t *testing.T) {
	ts := time.Now()
	frag, args := SQL(Query{Field: FieldCreatedAt, Dir: Desc, Cursor: &cursor.Cursor{CreatedAt: ts}}, 3)
	if frag != "created_at < $3" {
		t.Fatalf("got %q", frag)
	}
	if len(args) != 1 || args[0] != ts {
		t.Fatalf("got args %v", args)
	}
}

func TestSQL_RecencyAscMirrors(t *testing.T) {
	frag, _ := SQL(Query{Field: FieldCreatedAt, Dir: Asc, Cursor: &cursor.Cursor{CreatedAt: time.Now()}}, 1)
	if frag != "created_at > $1" {
		t.Fatalf("got %q", frag)
	}
}

func TestSQL_PopularityPairWithTieBreak(t *testing.T) {
	frag, args := SQL(Query{Field: FieldViews, Dir: Desc, Cursor: &cursor.Cursor{Views: 7, ID: "v2"}}, 2)
	want := "(views < $2 OR (views = $2 AND id < $3))"
	if frag != want {
		t.Fatalf("got %q want %q", frag, want)
	}
	if len(args) != 2 || args[0] != int64(7) || args[1] != "v2" {
		t.Fatalf("got args %v", args)
	}
}

func TestOrderBy(t *testing.T) {
	cases := []struct {
		q    Query
		want string
	}{
		{Query{Field: FieldCreatedAt, Dir: Desc}, "created_at DESC"},
		{Query{Field: FieldCreatedAt, Dir: Asc}, "created_at ASC"},
		{Query{Field: FieldViews, Dir: Desc}, "views DESC, id DESC"},
		{Query{Field: FieldViews, Dir: Asc}, "views ASC, id ASC"},
	}
	for _, tc := range cases {
		if got := OrderBy(tc.q); got != tc.want {
			t.Fatalf("OrderBy(%+v) = %q, want %q", tc.q, got, tc.want)
		}
	}
}

func TestHasMore_FullPageConvention(t *testing.T) {
	if !HasMore(10, 10) {
		t.Fatal("full page should report more")
	}
	if HasMore(3, 10) {
		t.Fatal("short page should not report more")
	}
}
