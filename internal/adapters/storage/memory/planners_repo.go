package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-health-assessment/internal/domain/nutrition"
)

type plannerRepo struct {
	mu   sync.RWMutex
	byID map[string]nutrition.Planner
}

func NewPlannerRepo() nutrition.Repository {
	return &plannerRepo{
		byID: make(map[string]nutrition.Planner),
	}
}

func (r *plannerRepo) Save(ctx context.Context, p nutrition.Planner) error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("planner id required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p.Marked = append([]string(nil), p.Marked...)
	r.byID[p.ID] = p
	return nil
}

func (r *plannerRepo) GetByID(ctx context.Context, id string) (nutrition.Planner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nutrition.Planner{}, nutrition.ErrNotFound
	}
	p.Marked = append([]string(nil), p.Marked...)
	return p, nil
}

func (r *plannerRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return nutrition.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
