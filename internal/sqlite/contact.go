package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/openhouse-crm/openhouse/internal/domain/contact"
	"github.com/openhouse-crm/openhouse/internal/repository"
)

// ContactRepository implements repository.ContactRepository for SQLite
type ContactRepository struct {
	db *DB
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(db *DB) *ContactRepository {
	return &ContactRepository{db: db}
}

const contactColumns = `
	id, first_name, last_name, email, phone, company,
	address, business_sector, linkedin, notes, created_at, updated_at
`

// fieldColumns maps updatable field names to their columns. Field names are
// validated against this map before being interpolated into SQL.
var fieldColumns = map[string]string{
	contact.FieldFirstName:      "first_name",
	contact.FieldLastName:       "last_name",
	contact.FieldEmail:          "email",
	contact.FieldPhone:          "phone",
	contact.FieldCompany:        "company",
	contact.FieldAddress:        "address",
	contact.FieldBusinessSector: "business_sector",
	contact.FieldLinkedIn:       "linkedin",
	contact.FieldNotes:          "notes",
}

// Create inserts a new contact
func (r *ContactRepository) Create(ctx context.Context, c *contact.Contact) error {
	query := `
		INSERT INTO contacts (` + contactColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.FirstName,
		c.LastName,
		c.Email,
		c.Phone,
		c.Company,
		c.Address,
		c.BusinessSector,
		c.LinkedIn,
		c.Notes,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}

	return nil
}

// Get retrieves a contact by ID
func (r *ContactRepository) Get(ctx context.Context, id string) (*contact.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// UpdateField overwrites a single field. Last write wins; there is no
// optimistic concurrency check on contacts.
func (r *ContactRepository) UpdateField(ctx context.Context, id, field, value string) error {
	column, ok := fieldColumns[field]
	if !ok {
		return contact.ErrUnknownField
	}

	query := fmt.Sprintf(`UPDATE contacts SET %s = ?, updated_at = ? WHERE id = ?`, column)
	result, err := r.db.ExecContext(ctx, query, value, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update contact field: %w", err)
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

// Delete removes a contact
func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
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

// List returns all contacts in creation order
func (r *ContactRepository) List(ctx context.Context) ([]contact.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts ORDER BY created_at ASC`
	return r.scanMany(ctx, query)
}

// ListByExact applies the store-native equality filters
func (r *ContactRepository) ListByExact(ctx context.Context, businessSector, company string) ([]contact.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts`

	var conditions []string
	var args []interface{}

	if businessSector != "" {
		conditions = append(conditions, "business_sector = ?")
		args = append(args, businessSector)
	}
	if company != "" {
		conditions = append(conditions, "company = ?")
		args = append(args, company)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at ASC"

	return r.scanMany(ctx, query, args...)
}

// FindByEmail returns the first contact with an exactly equal email. No
// normalization is performed: a stored value with a trailing space will not
// match its trimmed form.
func (r *ContactRepository) FindByEmail(ctx context.Context, email string) (*contact.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE email = ? ORDER BY created_at ASC LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

// FindByName returns the first contact matching both name fields exactly
func (r *ContactRepository) FindByName(ctx context.Context, firstName, lastName string) (*contact.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE first_name = ? AND last_name = ? ORDER BY created_at ASC LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, firstName, lastName))
}

// FindByCompany returns the first contact with an exactly equal company
func (r *ContactRepository) FindByCompany(ctx context.Context, company string) (*contact.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE company = ? ORDER BY created_at ASC LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, company))
}

// FindByFirstName returns the first contact with an exactly equal first name
func (r *ContactRepository) FindByFirstName(ctx context.Context, firstName string) (*contact.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE first_name = ? ORDER BY created_at ASC LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, firstName))
}

func (r *ContactRepository) scanOne(row *sql.Row) (*contact.Contact, error) {
	var c contact.Contact
	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.Company,
		&c.Address,
		&c.BusinessSector,
		&c.LinkedIn,
		&c.Notes,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return &c, nil
}

func (r *ContactRepository) scanMany(ctx context.Context, query string, args ...interface{}) ([]contact.Contact, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []contact.Contact
	for rows.Next() {
		var c contact.Contact
		if err := rows.Scan(
			&c.ID,
			&c.FirstName,
			&c.LastName,
			&c.Email,
			&c.Phone,
			&c.Company,
			&c.Address,
			&c.BusinessSector,
			&c.LinkedIn,
			&c.Notes,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contact rows: %w", err)
	}

	return contacts, nil
}
