package tracker

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"openshelf/internal/core/domain/ports"
)

// FileStateStore implements ports.StateStore using a local JSON file.
// Ensure FileStateStore implements StateStore
var _ ports.StateStore = (*FileStateStore)(nil)

type FileStateStore struct {
	filepath string
	mu       sync.RWMutex
	state    stateData
}

type stateData struct {
	ProcessedISBNs map[string]bool `json:"processed_isbns"`
}

// NewFileStateStore initializes a state store from a file path.
func NewFileStateStore(path string) (*FileStateStore, error) {
	store := &FileStateStore{
		filepath: path,
		state: stateData{
			ProcessedISBNs: make(map[string]bool),
		},
	}

	if err := store.load(); err != nil {
		return nil, fmt.Errorf("failed to load state file: %w", err)
	}

	return store, nil
}

func (s *FileStateStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(s.filepath), 0755); err != nil {
		return err
	}

	f, err := os.Open(s.filepath)
	if os.IsNotExist(err) {
		// File doesn't exist, start fresh
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	decoder := json.NewDecoder(f)
	if err := decoder.Decode(&s.state); err != nil {
		if err == io.EOF {
			return nil // Empty file is fine
		}
		return err
	}

	if s.state.ProcessedISBNs == nil {
		s.state.ProcessedISBNs = make(map[string]bool)
	}

	return nil
}

// IsProcessed checks if an ISBN was already handled by a previous run.
func (s *FileStateStore) IsProcessed(isbn string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ProcessedISBNs[isbn]
}

// MarkProcessed records an ISBN as handled in memory.
func (s *FileStateStore) MarkProcessed(isbn string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ProcessedISBNs[isbn] = true
	return nil
}

// Save persists the current state to storage.
func (s *FileStateStore) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Atomic write: write to temp file then rename
	tmpFile := s.filepath + ".tmp"
	f, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(s.state); err != nil {
		f.Close()
		return err
	}
	f.Close()

	if err := os.Rename(tmpFile, s.filepath); err != nil {
		return err
	}

	return nil
}
