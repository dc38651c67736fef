package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/openhouse-crm/openhouse/internal/domain/audit"
)

// AuditRepository implements repository.AuditRepository for SQLite
type AuditRepository struct {
	db *DB
}

// NewAuditRepository creates a new AuditRepository
func NewAuditRepository(db *DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Log appends an audit entry. Entries are never updated or deleted.
func (r *AuditRepository) Log(ctx context.Context, entry *audit.Entry) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO audit_log (id, command, action, target_id, target_name, outcome, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.Command,
		entry.Action,
		entry.TargetID,
		entry.TargetName,
		entry.Outcome,
		entry.Detail,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to log audit entry: %w", err)
	}

	entry.CreatedAt = createdAt

	return nil
}
