package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openhouse-crm/openhouse/internal/domain/audit"
	"github.com/openhouse-crm/openhouse/internal/domain/task"
	"github.com/openhouse-crm/openhouse/internal/repository"
)

func TestTaskRepository_RoundTrip(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	tk := &task.Task{
		ID:        "t1",
		Title:     "call Jane",
		DueDate:   "2026-08-22",
		Priority:  task.PriorityHigh,
		Status:    task.StatusPending,
		ContactID: "c1",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, tk))

	retrieved, err := repo.Get(ctx, "t1")
	require.NoError(t, err)
	require.Equal(t, "2026-08-22", retrieved.DueDate)
	require.Equal(t, task.PriorityHigh, retrieved.Priority)
	require.Equal(t, "c1", retrieved.ContactID)
	require.Empty(t, retrieved.ListingID)

	retrieved.Status = task.StatusCompleted
	require.NoError(t, repo.Update(ctx, retrieved))
	again, err := repo.Get(ctx, "t1")
	require.NoError(t, err)
	require.Equal(t, task.StatusCompleted, again.Status)

	require.NoError(t, repo.Delete(ctx, "t1"))
	_, err = repo.Get(ctx, "t1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskRepository_ListOrdersByDueDate(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	for _, tk := range []task.Task{
		{ID: "t1", Title: "later", DueDate: "2026-09-01", Priority: task.PriorityMedium, Status: task.StatusPending, ContactID: "c1"},
		{ID: "t2", Title: "sooner", DueDate: "2026-08-22", Priority: task.PriorityMedium, Status: task.StatusPending, ContactID: "c1"},
	} {
		tk.CreatedAt = now
		tk.UpdatedAt = now
		require.NoError(t, repo.Create(ctx, &tk))
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "t2", all[0].ID)
}

func TestAuditRepository_DefaultsTimestamp(t *testing.T) {
	db := NewTestDB(t)
	repo := NewAuditRepository(db)
	ctx := context.Background()

	entry := &audit.Entry{
		ID:      "e1",
		Command: "update John Smith email",
		Action:  "update_contact",
		Outcome: "success",
	}
	require.NoError(t, repo.Log(ctx, entry))
	require.False(t, entry.CreatedAt.IsZero())

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM audit_log").Scan(&count))
	require.Equal(t, 1, count)
}
