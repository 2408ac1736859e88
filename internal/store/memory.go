package store

import (
	"errors"
	"sync"

	"github.com/i474232898/weather-card/internal/weather"
)

var (
	// ErrNotFound is returned before the first successful fetch has been saved.
	ErrNotFound = errors.New("no weather data yet")
)

// Entry pairs a snapshot with the bucket classified when it arrived.
type Entry struct {
	Snapshot  weather.Snapshot
	TimeOfDay weather.TimeOfDay
}

// MemoryStore is a concurrency-safe single cell holding the current entry.
// Each Save replaces the previous entry entirely; no history is kept.
type MemoryStore struct {
	mu      sync.RWMutex
	current *Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save replaces the current entry.
func (s *MemoryStore) Save(snapshot weather.Snapshot, tod weather.TimeOfDay) {
	e := &Entry{Snapshot: snapshot, TimeOfDay: tod}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = e
}

// Latest returns the current entry.
func (s *MemoryStore) Latest() (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return Entry{}, ErrNotFound
	}
	return *s.current, nil
}
