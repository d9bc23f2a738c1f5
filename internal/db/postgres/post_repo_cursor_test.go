package postgres

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"Quill/internal/core/posts"
)

func TestListCursorRoundTrip(t *testing.T) {
	post := &posts.Post{
		ID:        42,
		CreatedAt: time.Date(2025, 6, 1, 12, 30, 0, 123456789, time.UTC),
	}

	cursor := buildListCursor(post)

	filter, args, err := parseListCursor(&cursor, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filter != "(p.created_at < $3 OR (p.created_at = $3 AND p.id < $4))" {
		t.Errorf("unexpected filter: %s", filter)
	}
	if len(args) != 2 {
		t.Fatalf("args = %d, want 2", len(args))
	}

	gotTime, ok := args[0].(time.Time)
	if !ok || !gotTime.Equal(post.CreatedAt) {
		t.Errorf("cursor timestamp = %v, want %v", args[0], post.CreatedAt)
	}
	if gotID, ok := args[1].(int64); !ok || gotID != 42 {
		t.Errorf("cursor id = %v, want 42", args[1])
	}
}

func TestParseListCursor(t *testing.T) {
	encode := func(s string) string {
		return base64.URLEncoding.EncodeToString([]byte(s))
	}

	tests := []struct {
		name   string
		cursor *string
	}{
		{name: "nil cursor", cursor: nil},
		{name: "empty cursor", cursor: ptr("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, args, err := parseListCursor(tt.cursor, 1)
			if err != nil || filter != "" || args != nil {
				t.Errorf("expected no-op cursor, got filter=%q args=%v err=%v", filter, args, err)
			}
		})
	}

	invalid := []struct {
		name   string
		cursor string
	}{
		{name: "not base64", cursor: "%%%not-base64%%%"},
		{name: "missing separator", cursor: encode("2025-06-01T12:30:00Z")},
		{name: "too many parts", cursor: encode("2025-06-01T12:30:00Z|1|2")},
		{name: "bad timestamp", cursor: encode("yesterday|42")},
		{name: "bad identifier", cursor: encode("2025-06-01T12:30:00Z|abc")},
		{name: "negative identifier", cursor: encode("2025-06-01T12:30:00Z|-1")},
		{name: "oversized", cursor: strings.Repeat("A", 300)},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseListCursor(&tt.cursor, 1)
			if !errors.Is(err, posts.ErrInvalidCursor) {
				t.Errorf("parseListCursor() error = %v, want ErrInvalidCursor", err)
			}
		})
	}
}

func ptr(s string) *string {
	return &s
}
