package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"SigPull/internal/domain/models"
	"SigPull/internal/domain/repository"
)

// FileHistory appends one JSON-encoded ScanResult per line. Meant for local
// runs and debugging, not durability.
type FileHistory struct {
	path string

	mu sync.Mutex
	f  *os.File
}

// NewFileHistory creates a file-backed history sink.
func NewFileHistory(path string) *FileHistory {
	return &FileHistory{path: path}
}

func (s *FileHistory) Init(ctx context.Context) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("history dir: %w", err)
		}
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open history file: %w", err)
	}
	s.f = f
	return nil
}

func (s *FileHistory) Store(ctx context.Context, r *models.ScanResult) error {
	if r == nil {
		return nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	b = append(b, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return fmt.Errorf("history file not initialized")
	}
	if _, err := s.f.Write(b); err != nil {
		return fmt.Errorf("append result: %w", err)
	}
	return nil
}

func (s *FileHistory) Health(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return fmt.Errorf("history file not initialized")
	}
	return nil
}

func (s *FileHistory) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f != nil {
		err := s.f.Close()
		s.f = nil
		return err
	}
	return nil
}

var _ repository.HistorySink = (*FileHistory)(nil)
