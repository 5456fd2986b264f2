// Package notes keeps research notes in a local JSON file. Notes never touch
// the backend; they are personal annotations next to the dashboard data.
package notes

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/painelfin/painelgo/internal/models"
)

// ErrNotFound is returned when a note ID does not exist.
var ErrNotFound = errors.New("nota não encontrada")

// Store reads and writes the notes file. All methods are safe for concurrent
// use within one process; the file itself is rewritten atomically.
type Store struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// NewStore opens a store backed by notes.json inside dir.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("falha ao criar diretório de notas: %w", err)
	}
	return &Store{
		path: filepath.Join(dir, "notes.json"),
		now:  time.Now,
	}, nil
}

// List returns all notes, most recently updated first.
func (s *Store) List() ([]models.ResearchNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	notes, err := s.load()
	if err != nil {
		return nil, err
	}
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].LastUpdated > notes[j].LastUpdated
	})
	return notes, nil
}

// Get returns one note by ID.
func (s *Store) Get(id string) (models.ResearchNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	notes, err := s.load()
	if err != nil {
		return models.ResearchNote{}, err
	}
	for _, n := range notes {
		if n.ID == id {
			return n, nil
		}
	}
	return models.ResearchNote{}, ErrNotFound
}

// Create appends a new note and returns it with its assigned ID.
func (s *Store) Create(title, content string) (models.ResearchNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	notes, err := s.load()
	if err != nil {
		return models.ResearchNote{}, err
	}

	note := models.ResearchNote{
		ID:          nextID(notes),
		Title:       title,
		Content:     content,
		LastUpdated: s.now().Format(time.RFC3339),
	}
	notes = append(notes, note)
	if err := s.save(notes); err != nil {
		return models.ResearchNote{}, err
	}
	return note, nil
}

// Update replaces the title and content of an existing note.
func (s *Store) Update(id, title, content string) (models.ResearchNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	notes, err := s.load()
	if err != nil {
		return models.ResearchNote{}, err
	}
	for i, n := range notes {
		if n.ID != id {
			continue
		}
		notes[i].Title = title
		notes[i].Content = content
		notes[i].LastUpdated = s.now().Format(time.RFC3339)
		if err := s.save(notes); err != nil {
			return models.ResearchNote{}, err
		}
		return notes[i], nil
	}
	return models.ResearchNote{}, ErrNotFound
}

// Delete removes a note by ID.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	notes, err := s.load()
	if err != nil {
		return err
	}
	for i, n := range notes {
		if n.ID != id {
			continue
		}
		notes = append(notes[:i], notes[i+1:]...)
		return s.save(notes)
	}
	return ErrNotFound
}

func (s *Store) load() ([]models.ResearchNote, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("falha ao ler arquivo de notas: %w", err)
	}
	var notes []models.ResearchNote
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("arquivo de notas corrompido: %w", err)
	}
	return notes, nil
}

// save rewrites the file through a temp name so a crash mid-write cannot
// leave a half-written notes file behind.
func (s *Store) save(notes []models.ResearchNote) error {
	data, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("falha ao gravar notas: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("falha ao gravar notas: %w", err)
	}
	return nil
}

func nextID(notes []models.ResearchNote) string {
	max := 0
	for _, n := range notes {
		if v, err := strconv.Atoi(n.ID); err == nil && v > max {
			max = v
		}
	}
	return strconv.Itoa(max + 1)
}
