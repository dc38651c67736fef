package firestore

import (
	"context"
	"fmt"
	"time"

	"github.com/openhouse-crm/openhouse/internal/domain/prospect"
)

// ProspectRepository implements repository.ProspectRepository for Firestore
type ProspectRepository struct {
	store *Store
}

// NewProspectRepository creates a new ProspectRepository
func NewProspectRepository(store *Store) *ProspectRepository {
	return &ProspectRepository{store: store}
}

type prospectSearchDoc struct {
	Category  string              `firestore:"category"`
	Location  string              `firestore:"location"`
	Results   []prospect.Business `firestore:"results"`
	CreatedAt time.Time           `firestore:"createdAt"`
}

// SaveSearch archives a prospecting run and its results
func (r *ProspectRepository) SaveSearch(ctx context.Context, s *prospect.Search) error {
	_, err := r.store.client.Collection(collectionProspects).Doc(s.ID).Set(ctx, prospectSearchDoc{
		Category:  s.Category,
		Location:  s.Location,
		Results:   s.Results,
		CreatedAt: s.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to save prospect search: %w", err)
	}
	return nil
}
