package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"byteme-canteen/canteen-svc/internal/domain"
)

// FileStore keeps the snapshot in a single file, replaced atomically.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Save(_ context.Context, payload []byte, _ time.Time) error {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.Path)
}

func (s *FileStore) Load(_ context.Context) ([]byte, error) {
	payload, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoSnapshot, s.Path)
	}
	return payload, err
}

// TranscriptFiles rewrites one plain-text history file per customer.
type TranscriptFiles struct {
	Dir string
}

func NewTranscriptFiles(dir string) *TranscriptFiles {
	return &TranscriptFiles{Dir: dir}
}

func (t *TranscriptFiles) Path(loginID string) string {
	return filepath.Join(t.Dir, url.PathEscape(loginID)+".txt")
}

func (t *TranscriptFiles) WriteTranscript(_ context.Context, loginID string, orders []*domain.Order) error {
	if t.Dir != "" {
		if err := os.MkdirAll(t.Dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(t.Path(loginID), []byte(domain.FormatHistory(orders)), 0o644)
}
