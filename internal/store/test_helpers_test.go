package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/storefront/internal/model"
	"github.com/roach88/storefront/internal/testutil"
)

// createTestStore creates a new store in a temp dir with deterministic ids and timestamps.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path,
		WithClock(testutil.NewStepClock()),
		WithIDGenerator(testutil.NewSequentialIDGenerator("row")),
	)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestStoreRow inserts a published store for owner with the given slug.
func createTestStoreRow(t *testing.T, s *Store, owner, slug string) *model.Store {
	t.Helper()
	st, err := s.InsertStore(context.Background(), model.Store{
		Name:           "Loja " + owner,
		Slug:           slug,
		WhatsAppNumber: "5511912345678",
		OwnerID:        owner,
		Published:      true,
	})
	if err != nil {
		t.Fatalf("InsertStore() failed: %v", err)
	}
	return st
}
