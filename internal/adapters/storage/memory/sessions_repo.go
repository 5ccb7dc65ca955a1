package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"pet-health-assessment/internal/domain/wizard"
)

type sessionRepo struct {
	mu   sync.RWMutex
	byID map[string]wizard.Session
}

func NewSessionRepo() wizard.Repository {
	return &sessionRepo{
		byID: make(map[string]wizard.Session),
	}
}

// Save hace upsert; guarda una copia para que el caller no comparta slices.
func (r *sessionRepo) Save(ctx context.Context, s wizard.Session) error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("session id required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.byID[s.ID]; ok && !prev.CreatedAt.IsZero() {
		s.CreatedAt = prev.CreatedAt
	}
	r.byID[s.ID] = s.Clone()
	return nil
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (wizard.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return wizard.Session{}, wizard.ErrNotFound
	}
	return s.Clone(), nil
}

func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return wizard.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *sessionRepo) DeleteIdle(ctx context.Context, before time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, s := range r.byID {
		if s.UpdatedAt.Before(before) {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}
