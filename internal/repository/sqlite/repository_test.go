package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"todo-server/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, NewUserRepository(db).Init(ctx))
	require.NoError(t, NewTaskRepository(db).Init(ctx))
	return db
}

func createTestUser(t *testing.T, db *sql.DB, email string) *domain.User {
	t.Helper()

	user := &domain.User{
		Email:        email,
		Name:         "Test User",
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func TestUserRepository_UniqueEmail(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := &domain.User{Email: "dup@example.com", Name: "First", PasswordHash: "h1"}
	require.NoError(t, repo.Create(ctx, first))

	// Same email straight at the store, bypassing any service pre-check:
	// the constraint is the final arbiter and must report a duplicate.
	second := &domain.User{Email: "dup@example.com", Name: "Second", PasswordHash: "h2"}
	err := repo.Create(ctx, second)
	require.ErrorIs(t, err, domain.ErrUserExists)

	got, err := repo.GetByEmail(ctx, "dup@example.com")
	require.NoError(t, err)
	require.Equal(t, first.ID, got.ID)
	require.Equal(t, "First", got.Name)
}

func TestUserRepository_EmailCaseSensitive(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "Case@example.com")

	_, err := repo.GetByEmail(ctx, "case@example.com")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_GetMiss(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = repo.GetByID(ctx, "no-such-id")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestTaskRepository_OwnershipScoping(t *testing.T) {
	db := openTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	task := &domain.Task{UserID: alice.ID, Text: "alice's task"}
	require.NoError(t, repo.Create(ctx, task))

	mine, err := repo.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	theirs, err := repo.ListByOwner(ctx, bob.ID)
	require.NoError(t, err)
	require.Empty(t, theirs)

	// Bob holds a valid task id but the dual id+owner filter must not let
	// him touch it, and must not reveal that the task exists.
	done := true
	_, err = repo.Update(ctx, task.ID, bob.ID, domain.TaskPatch{Completed: &done})
	require.ErrorIs(t, err, domain.ErrTaskNotFound)

	err = repo.Delete(ctx, task.ID, bob.ID)
	require.ErrorIs(t, err, domain.ErrTaskNotFound)

	mine, err = repo.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.False(t, mine[0].Completed, "task must be unchanged after denied update")
}

func TestTaskRepository_UpdatePatch(t *testing.T) {
	db := openTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	task := &domain.Task{UserID: owner.ID, Text: "original"}
	require.NoError(t, repo.Create(ctx, task))

	done := true
	updated, err := repo.Update(ctx, task.ID, owner.ID, domain.TaskPatch{Completed: &done})
	require.NoError(t, err)
	require.True(t, updated.Completed)
	require.Equal(t, "original", updated.Text, "nil patch field must be left alone")

	text := "rewritten"
	updated, err = repo.Update(ctx, task.ID, owner.ID, domain.TaskPatch{Text: &text})
	require.NoError(t, err)
	require.Equal(t, "rewritten", updated.Text)
	require.True(t, updated.Completed)

	// Empty patch against an owned task is a no-op read.
	updated, err = repo.Update(ctx, task.ID, owner.ID, domain.TaskPatch{})
	require.NoError(t, err)
	require.Equal(t, "rewritten", updated.Text)

	// Empty patch against someone else's task still comes back not found.
	_, err = repo.Update(ctx, task.ID, "other-user", domain.TaskPatch{})
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskRepository_Ordering(t *testing.T) {
	db := openTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")

	var ids []string
	for _, text := range []string{"first", "second", "third"} {
		task := &domain.Task{UserID: owner.ID, Text: text}
		require.NoError(t, repo.Create(ctx, task))
		ids = append(ids, task.ID)
		time.Sleep(5 * time.Millisecond)
	}

	mine, err := repo.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	require.Equal(t, ids[0], mine[0].ID, "listByOwner is oldest first")
	require.Equal(t, ids[2], mine[2].ID)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, ids[2], all[0].ID, "listAll is newest first")
	require.Equal(t, ids[0], all[2].ID)
}

func TestTaskRepository_Delete(t *testing.T) {
	db := openTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	task := &domain.Task{UserID: owner.ID, Text: "to delete"}
	require.NoError(t, repo.Create(ctx, task))

	require.NoError(t, repo.Delete(ctx, task.ID, owner.ID))

	err := repo.Delete(ctx, task.ID, owner.ID)
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}
