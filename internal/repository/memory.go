package repository

import (
	"context"
	"sync"

	"github.com/rohbot/rohbot/internal/model"
)

// MemorySessionRepository implements SessionRepository in process memory.
// It is the default store for interactive sessions running without a
// database; history lives for the lifetime of the process.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string][]model.Content
}

// NewMemorySessionRepository creates an empty in-memory repository.
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string][]model.Content),
	}
}

func (r *MemorySessionRepository) Save(ctx context.Context, sessionID string, history []model.Content) error {
	stored := make([]model.Content, len(history))
	copy(stored, history)

	r.mu.Lock()
	r.sessions[sessionID] = stored
	r.mu.Unlock()

	return nil
}

func (r *MemorySessionRepository) Load(ctx context.Context, sessionID string) ([]model.Content, error) {
	r.mu.RLock()
	stored, ok := r.sessions[sessionID]
	r.mu.RUnlock()

	if !ok {
		return nil, nil
	}

	history := make([]model.Content, len(stored))
	copy(history, stored)
	return history, nil
}

func (r *MemorySessionRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	delete(r.sessions, sessionID)
	r.mu.Unlock()

	return nil
}
