package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openhouse-crm/openhouse/internal/domain/prospect"
)

// ProspectRepository implements repository.ProspectRepository for SQLite
type ProspectRepository struct {
	db *DB
}

// NewProspectRepository creates a new ProspectRepository
func NewProspectRepository(db *DB) *ProspectRepository {
	return &ProspectRepository{db: db}
}

// SaveSearch archives a prospecting run and its results
func (r *ProspectRepository) SaveSearch(ctx context.Context, s *prospect.Search) error {
	results, err := json.Marshal(s.Results)
	if err != nil {
		return fmt.Errorf("failed to marshal search results: %w", err)
	}

	query := `
		INSERT INTO prospect_searches (id, category, location, results, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		s.ID,
		s.Category,
		s.Location,
		string(results),
		s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save prospect search: %w", err)
	}

	return nil
}
