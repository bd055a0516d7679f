package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/openbp/openbp/pkg/reading"
)

// ErrDuplicateID is returned by Replace when two readings share an id.
var ErrDuplicateID = errors.New("duplicate reading id")

// Store is a thread-safe, read-mostly set of readings. Content is swapped as
// a whole by Replace; readers always see one consistent generation.
type Store struct {
	mu       sync.RWMutex
	readings []reading.Reading // newest first
	byID     map[int64]int     // id -> index into readings
	loadedAt time.Time
	now      reading.Clock
}

// New creates an empty Store. A nil clock means reading.SystemClock.
func New(clock reading.Clock) *Store {
	if clock == nil {
		clock = reading.SystemClock
	}
	return &Store{
		byID: make(map[int64]int),
		now:  clock,
	}
}

// Replace swaps the store content for rs. It returns an error wrapping
// ErrDuplicateID, leaving the previous content in place, if two persisted
// readings share an id. rs is copied; callers may reuse it.
func (s *Store) Replace(rs []reading.Reading) error {
	sorted := make([]reading.Reading, len(rs))
	copy(sorted, rs)
	sort.SliceStable(sorted, func(i, j int) bool { return newer(sorted[i], sorted[j]) })

	byID := make(map[int64]int, len(sorted))
	for i, r := range sorted {
		id, ok := r.ID()
		if !ok {
			continue
		}
		if _, dup := byID[id]; dup {
			return fmt.Errorf("store: id %d: %w", id, ErrDuplicateID)
		}
		byID[id] = i
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.readings = sorted
	s.byID = byID
	s.loadedAt = s.now()
	return nil
}

// newer orders by recorded time descending, then persisted readings by id
// ascending, then unpersisted readings.
func newer(a, b reading.Reading) bool {
	if !a.RecordedTime().Equal(b.RecordedTime()) {
		return a.RecordedTime().After(b.RecordedTime())
	}
	aID, aOK := a.ID()
	bID, bOK := b.ID()
	switch {
	case aOK && bOK:
		return aID < bID
	default:
		return aOK && !bOK
	}
}

// List returns all readings, newest first. The slice is a copy.
func (s *Store) List() []reading.Reading {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]reading.Reading, len(s.readings))
	copy(out, s.readings)
	return out
}

// Get returns the reading with the given id and whether it was found.
func (s *Store) Get(id int64) (reading.Reading, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return reading.Reading{}, false
	}
	return s.readings[i], true
}

// Latest returns the most recently recorded reading, or false if the store is empty.
func (s *Store) Latest() (reading.Reading, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.readings) == 0 {
		return reading.Reading{}, false
	}
	return s.readings[0], true
}

// Count returns the number of readings held.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.readings)
}

// LoadedAt returns when Replace last succeeded, or the zero time.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Now returns the current instant from the store's clock. Components that
// render the store share it so they agree on what "now" is.
func (s *Store) Now() time.Time { return s.now() }
