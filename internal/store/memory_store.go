package store

import (
	"context"
	"sync"
)

// InMemory is a Store keeping the blob in memory only. It hands out
// deep copies, so callers can never mutate stored state without going
// through Save - the same contract the file store enforces naturally.
type InMemory struct {
	mutex sync.RWMutex
	blob  *Blob
}

func NewInMemory() *InMemory {
	return &InMemory{
		blob: NewBlob(),
	}
}

// Seed replaces the stored state, for preloading fixtures.
func (s *InMemory) Seed(blob *Blob) error {
	clone, err := blob.Clone()
	if err != nil {
		return err
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.blob = clone
	return nil
}

func (s *InMemory) Load(_ context.Context) (*Blob, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.blob.Clone()
}

func (s *InMemory) Save(_ context.Context, blob *Blob) error {
	clone, err := blob.Clone()
	if err != nil {
		return err
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.blob = clone
	return nil
}
