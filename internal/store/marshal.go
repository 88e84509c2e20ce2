package store

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/roach88/storefront/internal/model"
)

// timeLayout is used for every TEXT timestamp column. Fixed-width so that
// lexical order matches chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// marshalItems converts an order's line items to JSON TEXT.
// HTML escaping is disabled so product names are stored as typed.
func marshalItems(items []model.LineItem) (string, error) {
	if items == nil {
		items = []model.LineItem{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(items); err != nil {
		return "", fmt.Errorf("marshal items: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSpace(buf.String()), nil
}

// unmarshalItems parses JSON TEXT back into line items.
func unmarshalItems(data string) ([]model.LineItem, error) {
	if data == "" {
		return []model.LineItem{}, nil
	}
	var items []model.LineItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	if items == nil {
		items = []model.LineItem{}
	}
	return items, nil
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
