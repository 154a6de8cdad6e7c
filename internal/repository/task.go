package repository

import (
	"context"

	"todo-server/internal/domain"
)

// TaskRepository exposes persistence operations for Task entities. Every
// owner-scoped method filters by task id AND owner id in a single query;
// callers never get to observe rows they do not own.
type TaskRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, task *domain.Task) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error)
	ListAll(ctx context.Context) ([]domain.Task, error)
	Update(ctx context.Context, id, ownerID string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id, ownerID string) error
}
