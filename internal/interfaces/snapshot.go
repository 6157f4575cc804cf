package interfaces

import (
	"time"

	"go-content-cache/internal/models"
)

// SnapshotStore owns the single-file whole-dataset snapshot. Read degrades
// to nil on a missing or corrupt file; Write failures propagate so a failed
// warm-up is operator-visible.
type SnapshotStore interface {
	Write(snap *models.Snapshot) error
	Read() *models.Snapshot
	IsValid(ttl time.Duration) bool
}
