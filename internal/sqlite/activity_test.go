package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openhouse-crm/openhouse/internal/domain/activity"
	"github.com/openhouse-crm/openhouse/internal/repository"
)

func TestActivityRepository_CreateAndPatch(t *testing.T) {
	db := NewTestDB(t)
	repo := NewActivityRepository(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	act := &activity.Activity{
		ID:          "a1",
		ContactID:   "c1",
		Type:        activity.TypeShowing,
		Description: "toured the unit",
		Date:        now,
		CreatedAt:   now,
	}
	require.NoError(t, repo.Create(ctx, act))

	// Patch in the listing attachment after the fact.
	act.ListingID = "l1"
	act.ListingName = "Oak House"
	require.NoError(t, repo.Update(ctx, act))

	retrieved, err := repo.Get(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, "l1", retrieved.ListingID)
	require.Equal(t, "Oak House", retrieved.ListingName)
}

func TestActivityRepository_ListFilters(t *testing.T) {
	db := NewTestDB(t)
	repo := NewActivityRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i, a := range []activity.Activity{
		{ID: "a1", ContactID: "c1", Type: activity.TypeCall},
		{ID: "a2", ContactID: "c1", Type: activity.TypeEmail, ListingID: "l1"},
		{ID: "a3", ContactID: "c2", Type: activity.TypeText},
	} {
		a.Date = base.Add(time.Duration(i) * time.Hour)
		a.CreatedAt = a.Date
		require.NoError(t, repo.Create(ctx, &a))
	}

	byContact, err := repo.List(ctx, repository.ListActivitiesOptions{ContactID: "c1"})
	require.NoError(t, err)
	require.Len(t, byContact, 2)
	// Newest first.
	require.Equal(t, "a2", byContact[0].ID)

	byListing, err := repo.List(ctx, repository.ListActivitiesOptions{ListingID: "l1"})
	require.NoError(t, err)
	require.Len(t, byListing, 1)

	limited, err := repo.List(ctx, repository.ListActivitiesOptions{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	require.Equal(t, "a3", limited[0].ID)
}
