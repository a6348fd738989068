package sources

import (
	"sync"
	"time"

	"gumcheck/internal"
)

// Slot names one logical table input.
type Slot string

const (
	SlotActivity  Slot = "activity"
	SlotContact   Slot = "contact"
	SlotDirectory Slot = "directory"
)

// Slots lists every slot in display order.
var Slots = []Slot{SlotActivity, SlotContact, SlotDirectory}

// Store is the injected session cache: the automatic TableSource per slot
// plus the scheduler's last-fired bookkeeping. Implementations must replace
// a TableSource atomically — readers see the old value or the new one,
// never a mix.
type Store interface {
	GetSource(slot Slot) (*internal.TableSource, error)
	PutSource(slot Slot, src internal.TableSource) error
	GetLastFired() (*time.Time, error)
	SetLastFired(ts time.Time) error
}

// MemoryStore keeps sources in process memory. Used by tests and by
// single-invocation runs that do not need persistence.
type MemoryStore struct {
	mu        sync.RWMutex
	sources   map[Slot]*internal.TableSource
	lastFired *time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sources: map[Slot]*internal.TableSource{}}
}

func (s *MemoryStore) GetSource(slot Slot) (*internal.TableSource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sources[slot], nil
}

func (s *MemoryStore) PutSource(slot Slot, src internal.TableSource) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources[slot] = &src
	return nil
}

func (s *MemoryStore) GetLastFired() (*time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastFired, nil
}

func (s *MemoryStore) SetLastFired(ts time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFired = &ts
	return nil
}
