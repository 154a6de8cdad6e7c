package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"todo-server/internal/domain"
	"todo-server/internal/repository"
)

const createTasksTable = `
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users(id),
	text TEXT NOT NULL,
	completed INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks(user_id);
`

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) repository.TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTasksTable); err != nil {
		return fmt.Errorf("create tasks table: %w", err)
	}
	return nil
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO tasks (id, user_id, text, completed, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		task.ID,
		task.UserID,
		task.Text,
		task.Completed,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, text, completed, created_at, updated_at
FROM tasks
WHERE user_id = ?
ORDER BY created_at ASC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	return collectTasks(rows)
}

// ListAll returns every task regardless of owner, newest first. It backs the
// public listing endpoint and is the single deliberate exception to
// owner-scoped access.
func (r *TaskRepository) ListAll(ctx context.Context) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, text, completed, created_at, updated_at
FROM tasks
ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query all tasks: %w", err)
	}
	defer rows.Close()

	return collectTasks(rows)
}

// Update applies the patch in a single conditional write scoped by both the
// task id and the owner id. Zero affected rows means the task does not exist
// or belongs to someone else; the two cases are indistinguishable on purpose.
func (r *TaskRepository) Update(ctx context.Context, id, ownerID string, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.Text == nil && patch.Completed == nil {
		return r.getOwned(ctx, id, ownerID)
	}

	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE tasks
SET text = COALESCE(?, text), completed = COALESCE(?, completed), updated_at = ?
WHERE id = ? AND user_id = ?`,
		nullString(patch.Text),
		nullBool(patch.Completed),
		now,
		id,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("task update rows affected: %w", err)
	}
	if aff == 0 {
		return nil, domain.ErrTaskNotFound
	}

	return r.getOwned(ctx, id, ownerID)
}

// Delete removes the task with the same dual id+owner filter and the same
// conflated not-found error as Update.
func (r *TaskRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM tasks
WHERE id = ? AND user_id = ?`,
		id,
		ownerID,
	)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("task delete rows affected: %w", err)
	}
	if aff == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) getOwned(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, text, completed, created_at, updated_at
FROM tasks
WHERE id = ? AND user_id = ?`,
		id,
		ownerID,
	)

	var task domain.Task
	if err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Text,
		&task.Completed,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return &task, nil
}

func collectTasks(rows *sql.Rows) ([]domain.Task, error) {
	var tasks []domain.Task
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(
			&task.ID,
			&task.UserID,
			&task.Text,
			&task.Completed,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullBool(b *bool) any {
	if b == nil {
		return nil
	}
	return *b
}
