package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/openhouse-crm/openhouse/internal/domain/contactlist"
	"github.com/openhouse-crm/openhouse/internal/repository"
)

// ContactListRepository implements repository.ContactListRepository for SQLite
type ContactListRepository struct {
	db *DB
}

// NewContactListRepository creates a new ContactListRepository
func NewContactListRepository(db *DB) *ContactListRepository {
	return &ContactListRepository{db: db}
}

// Create inserts a new contact list with its snapshot membership
func (r *ContactListRepository) Create(ctx context.Context, l *contactlist.ContactList) error {
	contactIDs, err := marshalIDs(l.ContactIDs)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO contact_lists (id, name, contact_ids, description, criteria, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		l.ID,
		l.Name,
		contactIDs,
		l.Description,
		l.Criteria,
		l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create contact list: %w", err)
	}

	return nil
}

// Get retrieves a contact list by ID
func (r *ContactListRepository) Get(ctx context.Context, id string) (*contactlist.ContactList, error) {
	query := `
		SELECT id, name, contact_ids, description, criteria, created_at
		FROM contact_lists
		WHERE id = ?
	`

	var l contactlist.ContactList
	var contactIDs string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&l.ID,
		&l.Name,
		&contactIDs,
		&l.Description,
		&l.Criteria,
		&l.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact list: %w", err)
	}

	if l.ContactIDs, err = unmarshalIDs(contactIDs); err != nil {
		return nil, err
	}

	return &l, nil
}

// List returns all contact lists in creation order
func (r *ContactListRepository) List(ctx context.Context) ([]contactlist.ContactList, error) {
	query := `
		SELECT id, name, contact_ids, description, criteria, created_at
		FROM contact_lists
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact lists: %w", err)
	}
	defer rows.Close()

	var lists []contactlist.ContactList
	for rows.Next() {
		var l contactlist.ContactList
		var contactIDs string
		if err := rows.Scan(
			&l.ID,
			&l.Name,
			&contactIDs,
			&l.Description,
			&l.Criteria,
			&l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan contact list: %w", err)
		}
		if l.ContactIDs, err = unmarshalIDs(contactIDs); err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contact list rows: %w", err)
	}

	return lists, nil
}
