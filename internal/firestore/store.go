// Package firestore implements the repository interfaces against Google
// Cloud Firestore, the production document store. Collections mirror the
// SQLite tables one-to-one; array membership changes are plain
// read-modify-write, matching the SQLite implementation (ArrayUnion would
// close the concurrent-append race but is deliberately not used so both
// stores behave identically).
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/openhouse-crm/openhouse/internal/repository"
)

const (
	collectionContacts     = "contacts"
	collectionListings     = "listings"
	collectionActivities   = "activities"
	collectionContactLists = "contactLists"
	collectionTasks        = "tasks"
	collectionAuditLog     = "auditLog"
	collectionProspects    = "prospectSearches"
)

// Store wraps a Firestore client.
type Store struct {
	client *firestore.Client
}

// New connects to Firestore for the given project.
func New(ctx context.Context, projectID string) (*Store, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return &Store{client: client}, nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

func mapNotFound(err error) error {
	if status.Code(err) == codes.NotFound {
		return repository.ErrNotFound
	}
	return err
}
