package wizard

import (
	"context"
	"time"
)

type Repository interface {
	// Save hace upsert del snapshot.
	Save(ctx context.Context, s Session) error
	GetByID(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
	// DeleteIdle borra los snapshots con UpdatedAt anterior a before y devuelve cuántos.
	DeleteIdle(ctx context.Context, before time.Time) (int, error)
}
