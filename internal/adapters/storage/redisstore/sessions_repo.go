package redisstore

import (
	"context"
	"time"

	"pet-health-assessment/internal/domain/wizard"

	"github.com/redis/go-redis/v9"
)

const sessionPrefix = "wizard:session:"

type SessionsRepo struct {
	store jsonStore[wizard.Session]
}

// NewSessionsRepo: ttl 0 = sin expiración.
func NewSessionsRepo(rdb redis.Cmdable, ttl time.Duration) *SessionsRepo {
	return &SessionsRepo{store: jsonStore[wizard.Session]{
		rdb:      rdb,
		prefix:   sessionPrefix,
		ttl:      ttl,
		notFound: wizard.ErrNotFound,
	}}
}

func (r *SessionsRepo) Save(ctx context.Context, s wizard.Session) error {
	return r.store.save(ctx, s.ID, s)
}

func (r *SessionsRepo) GetByID(ctx context.Context, id string) (wizard.Session, error) {
	return r.store.get(ctx, id)
}

func (r *SessionsRepo) Delete(ctx context.Context, id string) error {
	return r.store.delete(ctx, id)
}

// DeleteIdle no hace nada: las claves expiran solas con el TTL de Save.
func (r *SessionsRepo) DeleteIdle(context.Context, time.Time) (int, error) {
	return 0, nil
}
