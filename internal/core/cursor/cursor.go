// Package cursor encodes and decodes keyset pagination cursors.
//
// Two wire shapes exist: recency cursors are an RFC3339Nano timestamp,
// popularity cursors are a JSON pair {"last_views":n,"last_id":"..."}.
// A cursor handed to the wrong mode is a validation error, never a silent
// reset to the first page.
package cursor

import (
	"encoding/json"
	"strings"
	"time"

	perr "cliptube/internal/platform/errors"
)

// Mode selects the cursor wire shape
type Mode uint8

const (
	// ModeRecency orders by created_at with a timestamp cursor
	ModeRecency Mode = iota + 1
	// ModePopularity orders by views with an (views, id) pair cursor
	ModePopularity
)

// maxLen bounds cursor input so a hostile query param cannot balloon parsing
const maxLen = 256

// Cursor is the decoded resume point for a keyset page
type Cursor struct {
	// CreatedAt is set for recency cursors
	CreatedAt time.Time

	// Views and ID are set for popularity cursors
	Views int64
	ID    string
}

// pair is the popularity wire shape
type pair struct {
	LastViews int64  `json:"last_views"`
	LastID    string `json:"last_id"`
}

// Encode renders a cursor for the given mode
func Encode(mode Mode, c Cursor) string {
	switch mode {
	case ModeRecency:
		return c.CreatedAt.UTC().Format(time.RFC3339Nano)
	case ModePopularity:
		b, _ := json.Marshal(pair{LastViews: c.Views, LastID: c.ID})
		return string(b)
	}
	return ""
}

// Decode parses a cursor string for the given mode
// empty input yields a nil cursor meaning first page
func Decode(mode Mode, s string) (*Cursor, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if len(s) > maxLen {
		return nil, perr.Validationf("cursor too long")
	}

	switch mode {
	case ModeRecency:
		if strings.HasPrefix(s, "{") {
			return nil, perr.Validationf("cursor does not match sort mode")
		}
		ts, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, perr.Validationf("malformed cursor timestamp")
		}
		return &Cursor{CreatedAt: ts}, nil

	case ModePopularity:
		if !strings.HasPrefix(s, "{") {
			return nil, perr.Validationf("cursor does not match sort mode")
		}
		dec := json.NewDecoder(strings.NewReader(s))
		dec.DisallowUnknownFields()
		var p pair
		if err := dec.Decode(&p); err != nil {
			return nil, perr.Validationf("malformed cursor pair")
		}
		if p.LastID == "" {
			return nil, perr.Validationf("malformed cursor pair")
		}
		if p.LastViews < 0 {
			return nil, perr.Validationf("malformed cursor pair")
		}
		return &Cursor{Views: p.LastViews, ID: p.LastID}, nil
	}

	return nil, perr.Validationf("unknown cursor mode")
}
