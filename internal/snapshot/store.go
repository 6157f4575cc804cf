package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"go-content-cache/internal/interfaces"
	"go-content-cache/internal/models"
)

// DefaultTTL is how long a snapshot counts as valid.
const DefaultTTL = 24 * time.Hour

// Ensure Store implements interfaces.SnapshotStore
var _ interfaces.SnapshotStore = (*Store)(nil)

// Store owns the single-file whole-dataset snapshot. Writes replace the file
// atomically (temp path + rename) so readers never observe a partial write.
// The last successful read is memoized for the process lifetime.
type Store struct {
	path   string
	logger *zap.Logger

	mu     sync.RWMutex
	cached *models.Snapshot
}

// NewStore creates a snapshot store backed by the given file path.
func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Write serializes the snapshot to the backing file, creating missing parent
// directories. The document is indented for human diffing. Failures
// propagate: a failed warm-up must not look like a success.
func (s *Store) Write(snap *models.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp snapshot file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace snapshot file: %w", err)
	}

	s.mu.Lock()
	s.cached = snap
	s.mu.Unlock()

	s.logger.Info("Snapshot written",
		zap.String("path", s.path),
		zap.Int("posts", len(snap.Posts)),
		zap.Int("categories", len(snap.Categories)),
		zap.Int("tags", len(snap.Tags)),
		zap.Int("authors", len(snap.Authors)))
	return nil
}

// Read returns the last successfully written snapshot, or nil when the file
// is missing, unreadable or corrupt. A corrupt file is treated as absent.
func (s *Store) Read() *models.Snapshot {
	s.mu.RLock()
	cached := s.cached
	s.mu.RUnlock()
	if cached != nil {
		return cached
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Failed to read snapshot file", zap.String("path", s.path), zap.Error(err))
		}
		return nil
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Warn("Snapshot file is corrupt, treating as absent",
			zap.String("path", s.path), zap.Error(err))
		return nil
	}

	s.mu.Lock()
	s.cached = &snap
	s.mu.Unlock()
	return &snap
}

// IsValid reports whether a snapshot exists and is younger than ttl.
// The boundary is strict: a snapshot exactly ttl old is invalid.
func (s *Store) IsValid(ttl time.Duration) bool {
	snap := s.Read()
	if snap == nil {
		return false
	}
	return time.Now().UnixMilli()-snap.Timestamp < ttl.Milliseconds()
}
