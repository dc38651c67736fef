package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openhouse-crm/openhouse/internal/domain/contact"
	"github.com/openhouse-crm/openhouse/internal/repository"
)

func seedContact(t *testing.T, repo *ContactRepository, c contact.Contact) {
	t.Helper()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}
	require.NoError(t, repo.Create(context.Background(), &c))
}

func TestContactRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	c := &contact.Contact{
		ID:             "c1",
		FirstName:      "Jane",
		LastName:       "Doe",
		Email:          "jane@acme.com",
		Company:        "Acme",
		BusinessSector: "tech",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, repo.Create(ctx, c))

	retrieved, err := repo.Get(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, "Jane", retrieved.FirstName)
	require.Equal(t, "jane@acme.com", retrieved.Email)

	_, err = repo.Get(ctx, "nonexistent")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestContactRepository_UpdateField(t *testing.T) {
	db := NewTestDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()

	seedContact(t, repo, contact.Contact{ID: "c1", FirstName: "Jane"})

	require.NoError(t, repo.UpdateField(ctx, "c1", "email", "jane@new.com"))
	retrieved, err := repo.Get(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, "jane@new.com", retrieved.Email)

	// Unknown field names never reach the SQL layer.
	err = repo.UpdateField(ctx, "c1", "favoriteColor", "blue")
	require.ErrorIs(t, err, contact.ErrUnknownField)

	err = repo.UpdateField(ctx, "nonexistent", "email", "x@y.com")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestContactRepository_FindersPickOldest(t *testing.T) {
	db := NewTestDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()

	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	seedContact(t, repo, contact.Contact{ID: "c2", FirstName: "Jo", Company: "Acme", CreatedAt: newer})
	seedContact(t, repo, contact.Contact{ID: "c1", FirstName: "Jo", Company: "Acme", CreatedAt: older})

	// Ambiguous matches resolve to the first in creation order.
	found, err := repo.FindByCompany(ctx, "Acme")
	require.NoError(t, err)
	require.Equal(t, "c1", found.ID)

	found, err = repo.FindByFirstName(ctx, "Jo")
	require.NoError(t, err)
	require.Equal(t, "c1", found.ID)
}

func TestContactRepository_FindByName(t *testing.T) {
	db := NewTestDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()

	seedContact(t, repo, contact.Contact{ID: "c1", FirstName: "John", LastName: "Smith"})

	found, err := repo.FindByName(ctx, "John", "Smith")
	require.NoError(t, err)
	require.Equal(t, "c1", found.ID)

	// Exact match only, no case folding.
	_, err = repo.FindByName(ctx, "john", "smith")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestContactRepository_ListByExact(t *testing.T) {
	db := NewTestDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()

	seedContact(t, repo, contact.Contact{ID: "c1", BusinessSector: "tech", Company: "Acme"})
	seedContact(t, repo, contact.Contact{ID: "c2", BusinessSector: "tech", Company: "Initech"})
	seedContact(t, repo, contact.Contact{ID: "c3", BusinessSector: "finance", Company: "Acme"})

	all, err := repo.ListByExact(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, all, 3)

	tech, err := repo.ListByExact(ctx, "tech", "")
	require.NoError(t, err)
	require.Len(t, tech, 2)

	both, err := repo.ListByExact(ctx, "tech", "Acme")
	require.NoError(t, err)
	require.Len(t, both, 1)
	require.Equal(t, "c1", both[0].ID)
}

func TestContactRepository_Delete(t *testing.T) {
	db := NewTestDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()

	seedContact(t, repo, contact.Contact{ID: "c1", FirstName: "Jane"})

	require.NoError(t, repo.Delete(ctx, "c1"))
	_, err := repo.Get(ctx, "c1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.ErrorIs(t, repo.Delete(ctx, "c1"), repository.ErrNotFound)
}
