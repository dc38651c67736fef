package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/openhouse-crm/openhouse/internal/domain/listing"
	"github.com/openhouse-crm/openhouse/internal/repository"
)

// ListingRepository implements repository.ListingRepository for SQLite
type ListingRepository struct {
	db *DB
}

// NewListingRepository creates a new ListingRepository
func NewListingRepository(db *DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// Create inserts a new listing
func (r *ListingRepository) Create(ctx context.Context, l *listing.Listing) error {
	contactListIDs, err := marshalIDs(l.ContactListIDs)
	if err != nil {
		return err
	}
	activityIDs, err := marshalIDs(l.ActivityIDs)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO listings (
			id, name, address, street_address, title,
			contact_list_ids, activity_ids, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		l.ID,
		l.Name,
		l.Address,
		l.StreetAddress,
		l.Title,
		contactListIDs,
		activityIDs,
		l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}

	return nil
}

// Get retrieves a listing by ID
func (r *ListingRepository) Get(ctx context.Context, id string) (*listing.Listing, error) {
	query := `
		SELECT id, name, address, street_address, title,
			contact_list_ids, activity_ids, created_at
		FROM listings
		WHERE id = ?
	`

	var l listing.Listing
	var contactListIDs, activityIDs string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&l.ID,
		&l.Name,
		&l.Address,
		&l.StreetAddress,
		&l.Title,
		&contactListIDs,
		&activityIDs,
		&l.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	if l.ContactListIDs, err = unmarshalIDs(contactListIDs); err != nil {
		return nil, err
	}
	if l.ActivityIDs, err = unmarshalIDs(activityIDs); err != nil {
		return nil, err
	}

	return &l, nil
}

// Update overwrites a listing. Array appends go through here as a
// read-modify-write; concurrent updates can lose an append.
func (r *ListingRepository) Update(ctx context.Context, l *listing.Listing) error {
	contactListIDs, err := marshalIDs(l.ContactListIDs)
	if err != nil {
		return err
	}
	activityIDs, err := marshalIDs(l.ActivityIDs)
	if err != nil {
		return err
	}

	query := `
		UPDATE listings
		SET name = ?, address = ?, street_address = ?, title = ?,
			contact_list_ids = ?, activity_ids = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		l.Name,
		l.Address,
		l.StreetAddress,
		l.Title,
		contactListIDs,
		activityIDs,
		l.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// List returns all listings in creation order
func (r *ListingRepository) List(ctx context.Context) ([]listing.Listing, error) {
	query := `
		SELECT id, name, address, street_address, title,
			contact_list_ids, activity_ids, created_at
		FROM listings
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	defer rows.Close()

	var listings []listing.Listing
	for rows.Next() {
		var l listing.Listing
		var contactListIDs, activityIDs string
		if err := rows.Scan(
			&l.ID,
			&l.Name,
			&l.Address,
			&l.StreetAddress,
			&l.Title,
			&contactListIDs,
			&activityIDs,
			&l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		if l.ContactListIDs, err = unmarshalIDs(contactListIDs); err != nil {
			return nil, err
		}
		if l.ActivityIDs, err = unmarshalIDs(activityIDs); err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating listing rows: %w", err)
	}

	return listings, nil
}

func marshalIDs(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("failed to marshal id array: %w", err)
	}
	return string(data), nil
}

func unmarshalIDs(data string) ([]string, error) {
	if data == "" {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(data), &ids); err != nil {
		return nil, fmt.Errorf("failed to unmarshal id array: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return ids, nil
}
