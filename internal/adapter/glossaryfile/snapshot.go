package glossaryfile

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/heartmarshall/concept-clarity/internal/domain"
)

type loader interface {
	Load(ctx context.Context) (*domain.Glossary, error)
}

// SnapshotStore serves an immutable glossary snapshot and replaces it
// atomically on Reload. In-flight readers keep the snapshot they got.
type SnapshotStore struct {
	src     loader
	current atomic.Pointer[domain.Glossary]
	mu      sync.Mutex // serializes loads that publish a snapshot
}

// NewSnapshotStore wraps src. Nothing is loaded until the first Load or Reload.
func NewSnapshotStore(src loader) *SnapshotStore {
	return &SnapshotStore{src: src}
}

// Load returns the current snapshot, loading it on first use.
func (s *SnapshotStore) Load(ctx context.Context) (*domain.Glossary, error) {
	if g := s.current.Load(); g != nil {
		return g, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if g := s.current.Load(); g != nil {
		return g, nil
	}
	return s.publish(ctx)
}

// Reload loads the source again and publishes the result. On failure the
// previous snapshot stays in place.
func (s *SnapshotStore) Reload(ctx context.Context) (*domain.Glossary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.publish(ctx)
}

func (s *SnapshotStore) publish(ctx context.Context) (*domain.Glossary, error) {
	g, err := s.src.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.current.Store(g)
	return g, nil
}
