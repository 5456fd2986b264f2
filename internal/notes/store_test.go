package notes

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestStoreCreateListDelete(t *testing.T) {
	s := newTestStore(t)

	first, err := s.Create("Tese PETR4", "Dividendos sustentáveis até 2026.")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.ID != "1" {
		t.Fatalf("first ID = %q, want 1", first.ID)
	}
	second, err := s.Create("VALE3", "Exposição a minério.")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if second.ID != "2" {
		t.Fatalf("second ID = %q, want 2", second.ID)
	}

	notes, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("List returned %d notes", len(notes))
	}

	if err := s.Delete(first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete = %v, want ErrNotFound", err)
	}

	// IDs are never reused after a delete in the middle of the sequence.
	third, err := s.Create("Nova", "...")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if third.ID != "3" {
		t.Fatalf("third ID = %q, want 3", third.ID)
	}
}

func TestStoreUpdateBumpsTimestamp(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2024, 6, 19, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	note, err := s.Create("Rascunho", "v1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	s.now = func() time.Time { return base.Add(time.Hour) }
	updated, err := s.Update(note.ID, "Rascunho", "v2")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Content != "v2" {
		t.Fatalf("Content = %q", updated.Content)
	}
	if updated.LastUpdated == note.LastUpdated {
		t.Fatal("LastUpdated did not change")
	}

	// Listing orders by recency, so the updated note must come first even
	// after more notes exist.
	s.now = func() time.Time { return base.Add(30 * time.Minute) }
	if _, err := s.Create("Outra", "..."); err != nil {
		t.Fatalf("Create: %v", err)
	}
	notes, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if notes[0].ID != note.ID {
		t.Fatalf("most recent note = %s, want %s", notes[0].ID, note.ID)
	}
}

func TestStoreUpdateMissingNote(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Update("99", "x", "y"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update missing = %v, want ErrNotFound", err)
	}
	if err := s.Delete("99"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete missing = %v, want ErrNotFound", err)
	}
}

func TestStoreRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}
	if _, err := s.List(); err == nil {
		t.Fatal("expected error for corrupt notes file")
	}
}
