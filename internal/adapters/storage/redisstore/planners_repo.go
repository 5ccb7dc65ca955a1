package redisstore

import (
	"context"
	"time"

	"pet-health-assessment/internal/domain/nutrition"

	"github.com/redis/go-redis/v9"
)

const plannerPrefix = "nutrition:planner:"

type PlannersRepo struct {
	store jsonStore[nutrition.Planner]
}

func NewPlannersRepo(rdb redis.Cmdable, ttl time.Duration) *PlannersRepo {
	return &PlannersRepo{store: jsonStore[nutrition.Planner]{
		rdb:      rdb,
		prefix:   plannerPrefix,
		ttl:      ttl,
		notFound: nutrition.ErrNotFound,
	}}
}

func (r *PlannersRepo) Save(ctx context.Context, p nutrition.Planner) error {
	return r.store.save(ctx, p.ID, p)
}

func (r *PlannersRepo) GetByID(ctx context.Context, id string) (nutrition.Planner, error) {
	return r.store.get(ctx, id)
}

func (r *PlannersRepo) Delete(ctx context.Context, id string) error {
	return r.store.delete(ctx, id)
}
