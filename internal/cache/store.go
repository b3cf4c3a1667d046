package cache

import (
	"sync"
	"time"

	"github.com/yourusername/lvm-browser/internal/model"
	"go.uber.org/zap"
)

// SnapshotStore holds the single current-topology reference. Snapshots are
// immutable once built, so readers only ever observe a complete graph: a
// refresh builds the whole new topology off to the side and Swap replaces
// the reference under the lock. There is no in-place mutation path.
type SnapshotStore struct {
	mu        sync.RWMutex
	current   *model.Topology
	swappedAt time.Time
	logger    *zap.Logger
}

// NewSnapshotStore creates an empty store.
func NewSnapshotStore(logger *zap.Logger) *SnapshotStore {
	return &SnapshotStore{logger: logger}
}

// Get returns the current snapshot, or false before the first refresh.
func (s *SnapshotStore) Get() (*model.Topology, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, false
	}
	return s.current, true
}

// Swap installs a new snapshot as the current one.
func (s *SnapshotStore) Swap(t *model.Topology) {
	s.mu.Lock()
	s.current = t
	s.swappedAt = time.Now()
	s.mu.Unlock()

	s.logger.Debug("topology snapshot swapped",
		zap.Int("devices", len(t.Devices)),
		zap.Int("vgs", len(t.VolumeGroups)),
		zap.Int("lvs", len(t.LVs)),
	)
}

// Age reports how long ago the current snapshot was installed; zero before
// the first swap.
func (s *SnapshotStore) Age() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.swappedAt.IsZero() {
		return 0
	}
	return time.Since(s.swappedAt)
}

// IsStale reports whether the snapshot is older than the given threshold.
// The header shows a staleness marker when refreshes keep failing.
func (s *SnapshotStore) IsStale(threshold time.Duration) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current == nil || time.Since(s.swappedAt) > threshold
}
