package firestore

import (
	"context"
	"fmt"
	"time"

	"github.com/openhouse-crm/openhouse/internal/domain/audit"
)

// AuditRepository implements repository.AuditRepository for Firestore
type AuditRepository struct {
	store *Store
}

// NewAuditRepository creates a new AuditRepository
func NewAuditRepository(store *Store) *AuditRepository {
	return &AuditRepository{store: store}
}

type auditDoc struct {
	Command    string    `firestore:"command"`
	Action     string    `firestore:"action"`
	TargetID   string    `firestore:"targetId"`
	TargetName string    `firestore:"targetName"`
	Outcome    string    `firestore:"outcome"`
	Detail     string    `firestore:"detail"`
	CreatedAt  time.Time `firestore:"createdAt"`
}

// Log appends an audit entry. Entries are never updated or deleted.
func (r *AuditRepository) Log(ctx context.Context, entry *audit.Entry) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.store.client.Collection(collectionAuditLog).Doc(entry.ID).Set(ctx, auditDoc{
		Command:    entry.Command,
		Action:     entry.Action,
		TargetID:   entry.TargetID,
		TargetName: entry.TargetName,
		Outcome:    entry.Outcome,
		Detail:     entry.Detail,
		CreatedAt:  createdAt,
	})
	if err != nil {
		return fmt.Errorf("failed to log audit entry: %w", err)
	}

	entry.CreatedAt = createdAt

	return nil
}
