package service

import (
	"context"
	"errors"
	"strings"

	"todo-server/internal/domain"
	"todo-server/internal/repository"
)

// TaskService coordinates task operations. Owner ids always come from the
// verified token claims attached by the auth middleware, never from request
// payloads.
type TaskService interface {
	Create(ctx context.Context, ownerID, text string) (*domain.Task, error)
	ListMine(ctx context.Context, ownerID string) ([]domain.Task, error)
	ListPublic(ctx context.Context) ([]domain.Task, error)
	Update(ctx context.Context, id, ownerID string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id, ownerID string) error
}

type taskService struct {
	tasks repository.TaskRepository
}

func NewTaskService(tasks repository.TaskRepository) TaskService {
	return &taskService{tasks: tasks}
}

func (s *taskService) Create(ctx context.Context, ownerID, text string) (*domain.Task, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("task text is required")
	}

	task := &domain.Task{
		UserID: ownerID,
		Text:   text,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) ListMine(ctx context.Context, ownerID string) ([]domain.Task, error) {
	return s.tasks.ListByOwner(ctx, ownerID)
}

// ListPublic returns every user's tasks without any ownership filter. This
// is intended behavior, not a missing check; see the public-tasks route.
func (s *taskService) ListPublic(ctx context.Context) ([]domain.Task, error) {
	return s.tasks.ListAll(ctx)
}

func (s *taskService) Update(ctx context.Context, id, ownerID string, patch domain.TaskPatch) (*domain.Task, error) {
	return s.tasks.Update(ctx, id, ownerID, patch)
}

func (s *taskService) Delete(ctx context.Context, id, ownerID string) error {
	return s.tasks.Delete(ctx, id, ownerID)
}
