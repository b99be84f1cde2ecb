package fingerprint

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Anima18/gradle/common/stats"
	"github.com/Anima18/gradle/hashing"
	"github.com/Anima18/gradle/snapshot"
)

// Entry is what a task's last fingerprint leaves behind for the next build.
// Entries are never modified once saved, and the nodes in Inputs are the
// exact instances the Snapshotter returned.
type Entry struct {
	BuildID string
	Key     hashing.HashCode
	Inputs  map[string]snapshot.Node
	Saved   time.Time
}

// Store holds the previous build's snapshots per task.
type Store interface {
	// Load returns the last entry saved for taskID, or nil if there is none.
	Load(taskID string) (*Entry, error)

	// Save replaces the entry for taskID.
	Save(taskID string, entry *Entry) error
}

// MemoryStore is a Store that keeps entries in process memory. It is safe for
// concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	tasks   stats.Gauge
}

// NewMemoryStore creates an empty store reporting its size to stat.
func NewMemoryStore(stat stats.StatsReceiver) *MemoryStore {
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	return &MemoryStore{
		entries: make(map[string]*Entry),
		tasks:   stat.Gauge(stats.HistoryTasksGauge),
	}
}

func (m *MemoryStore) Load(taskID string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.entries[taskID], nil
}

func (m *MemoryStore) Save(taskID string, entry *Entry) error {
	if entry == nil {
		return fmt.Errorf("Nil entry for task %s", taskID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[taskID] = entry
	m.tasks.Update(int64(len(m.entries)))
	return nil
}

// Remove forgets taskID, so its next fingerprint starts from scratch.
func (m *MemoryStore) Remove(taskID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, taskID)
	m.tasks.Update(int64(len(m.entries)))
}

// Tasks returns the ids of all tasks with a saved entry, sorted.
func (m *MemoryStore) Tasks() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.entries))
	for id := range m.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
