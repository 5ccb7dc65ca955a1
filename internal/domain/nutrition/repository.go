package nutrition

import "context"

type Repository interface {
	Save(ctx context.Context, p Planner) error
	GetByID(ctx context.Context, id string) (Planner, error)
	Delete(ctx context.Context, id string) error
}
