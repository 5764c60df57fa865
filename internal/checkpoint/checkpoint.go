package checkpoint

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/quaketrack/rbfetch/internal/domain"
)

// FileStore persists the scheduler cursor as a single line of text: the end
// timestamp of the last successfully archived window. Loaded once at startup,
// overwritten after every committed window.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string { return s.path }

// Load reads the cursor. A missing file returns domain.ErrCheckpointMissing
// and unreadable content returns domain.ErrCheckpointCorrupt; both are
// recoverable, the caller falls back to a fresh start.
func (s *FileStore) Load() (time.Time, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, domain.ErrCheckpointMissing
		}
		return time.Time{}, fmt.Errorf("%w: %v", domain.ErrCheckpointCorrupt, err)
	}

	t, err := domain.ParseTime(string(data))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", domain.ErrCheckpointCorrupt, err)
	}
	return t, nil
}

// Save writes the cursor via a temp file and rename, so a crash mid-write
// never leaves a truncated cursor behind.
func (s *FileStore) Save(t time.Time) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create checkpoint directory: %w", err)
	}

	tmp := s.path + ".tmp"
	line := t.UTC().Format(time.RFC3339) + "\n"
	if err := os.WriteFile(tmp, []byte(line), 0644); err != nil {
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to commit checkpoint: %w", err)
	}
	return nil
}
