package mcp

import (
	"sort"
	"sync"
	"time"

	"github.com/ivikasavnish/scriptgen/pkg/browser"
)

// Store holds recordings by ID. Implementations hand out copies, so callers
// never share event slices with the store.
type Store interface {
	Create(*Recording) error
	Get(string) (*Recording, error)
	Replace(string, []browser.RecordedEvent) (*Recording, error)
	Append(string, []browser.RecordedEvent) (*Recording, error)
	Delete(string) error
	List() []*Recording
}

// MemoryStore keeps recordings in a map guarded by a RWMutex
type MemoryStore struct {
	recordings map[string]*Recording
	mu         sync.RWMutex
}

func NewMemoryStore() Store {
	return &MemoryStore{
		recordings: make(map[string]*Recording),
	}
}

func (s *MemoryStore) Create(rec *Recording) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.recordings[rec.ID]; exists {
		return ErrRecordingExists
	}
	s.recordings[rec.ID] = rec.Clone()
	return nil
}

func (s *MemoryStore) Get(id string) (*Recording, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, exists := s.recordings[id]
	if !exists {
		return nil, ErrRecordingNotFound
	}
	return rec.Clone(), nil
}

// Replace swaps the events of a stored recording. Nil events are rejected,
// an empty slice clears the recording.
func (s *MemoryStore) Replace(id string, events []browser.RecordedEvent) (*Recording, error) {
	if events == nil {
		return nil, ErrInvalidEvents
	}
	return s.modify(id, func(rec *Recording) {
		rec.Events = cloneEvents(events)
	})
}

// Append adds events to the end of a stored recording
func (s *MemoryStore) Append(id string, events []browser.RecordedEvent) (*Recording, error) {
	return s.modify(id, func(rec *Recording) {
		rec.Events = append(rec.Events, cloneEvents(events)...)
	})
}

// modify applies fn to the stored recording under the write lock, stamps it
// and returns a copy of the result
func (s *MemoryStore) modify(id string, fn func(*Recording)) (*Recording, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, exists := s.recordings[id]
	if !exists {
		return nil, ErrRecordingNotFound
	}
	fn(rec)
	rec.UpdatedAt = time.Now()
	return rec.Clone(), nil
}

func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.recordings[id]; !exists {
		return ErrRecordingNotFound
	}
	delete(s.recordings, id)
	return nil
}

// List returns all recordings ordered by ID
func (s *MemoryStore) List() []*Recording {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recordings := make([]*Recording, 0, len(s.recordings))
	for _, rec := range s.recordings {
		recordings = append(recordings, rec.Clone())
	}
	sort.Slice(recordings, func(i, j int) bool {
		return recordings[i].ID < recordings[j].ID
	})
	return recordings
}
