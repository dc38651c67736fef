package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/openhouse-crm/openhouse/internal/domain/activity"
	"github.com/openhouse-crm/openhouse/internal/repository"
)

// ActivityRepository implements repository.ActivityRepository for SQLite
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create inserts a new activity
func (r *ActivityRepository) Create(ctx context.Context, a *activity.Activity) error {
	query := `
		INSERT INTO activities (
			id, contact_id, type, description, date,
			listing_id, listing_name, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.ContactID,
		a.Type,
		a.Description,
		a.Date,
		a.ListingID,
		a.ListingName,
		a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}

	return nil
}

// Get retrieves an activity by ID
func (r *ActivityRepository) Get(ctx context.Context, id string) (*activity.Activity, error) {
	query := `
		SELECT id, contact_id, type, description, date,
			listing_id, listing_name, created_at
		FROM activities
		WHERE id = ?
	`

	var a activity.Activity
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID,
		&a.ContactID,
		&a.Type,
		&a.Description,
		&a.Date,
		&a.ListingID,
		&a.ListingName,
		&a.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	return &a, nil
}

// Update overwrites an activity (used to patch in the listing attachment)
func (r *ActivityRepository) Update(ctx context.Context, a *activity.Activity) error {
	query := `
		UPDATE activities
		SET contact_id = ?, type = ?, description = ?, date = ?,
			listing_id = ?, listing_name = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		a.ContactID,
		a.Type,
		a.Description,
		a.Date,
		a.ListingID,
		a.ListingName,
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
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

// List returns activities matching the given filters, newest first
func (r *ActivityRepository) List(ctx context.Context, opts repository.ListActivitiesOptions) ([]activity.Activity, error) {
	query := `
		SELECT id, contact_id, type, description, date,
			listing_id, listing_name, created_at
		FROM activities
	`

	var conditions []string
	var args []interface{}

	if opts.ContactID != "" {
		conditions = append(conditions, "contact_id = ?")
		args = append(args, opts.ContactID)
	}
	if opts.ListingID != "" {
		conditions = append(conditions, "listing_id = ?")
		args = append(args, opts.ListingID)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY date DESC"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []activity.Activity
	for rows.Next() {
		var a activity.Activity
		if err := rows.Scan(
			&a.ID,
			&a.ContactID,
			&a.Type,
			&a.Description,
			&a.Date,
			&a.ListingID,
			&a.ListingName,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}

	return activities, nil
}
