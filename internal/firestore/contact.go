package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/openhouse-crm/openhouse/internal/domain/contact"
	"github.com/openhouse-crm/openhouse/internal/repository"
)

// ContactRepository implements repository.ContactRepository for Firestore
type ContactRepository struct {
	store *Store
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(store *Store) *ContactRepository {
	return &ContactRepository{store: store}
}

type contactDoc struct {
	FirstName      string    `firestore:"firstName"`
	LastName       string    `firestore:"lastName"`
	Email          string    `firestore:"email"`
	Phone          string    `firestore:"phone"`
	Company        string    `firestore:"company"`
	Address        string    `firestore:"address"`
	BusinessSector string    `firestore:"businessSector"`
	LinkedIn       string    `firestore:"linkedin"`
	Notes          string    `firestore:"notes"`
	CreatedAt      time.Time `firestore:"createdAt"`
	UpdatedAt      time.Time `firestore:"updatedAt"`
}

// fieldPaths maps updatable field names to Firestore field paths. The field
// name is validated against this map before any write.
var fieldPaths = map[string]string{
	contact.FieldFirstName:      "firstName",
	contact.FieldLastName:       "lastName",
	contact.FieldEmail:          "email",
	contact.FieldPhone:          "phone",
	contact.FieldCompany:        "company",
	contact.FieldAddress:        "address",
	contact.FieldBusinessSector: "businessSector",
	contact.FieldLinkedIn:       "linkedin",
	contact.FieldNotes:          "notes",
}

func toContactDoc(c *contact.Contact) contactDoc {
	return contactDoc{
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Email:          c.Email,
		Phone:          c.Phone,
		Company:        c.Company,
		Address:        c.Address,
		BusinessSector: c.BusinessSector,
		LinkedIn:       c.LinkedIn,
		Notes:          c.Notes,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func (d contactDoc) toContact(id string) contact.Contact {
	return contact.Contact{
		ID:             id,
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		Email:          d.Email,
		Phone:          d.Phone,
		Company:        d.Company,
		Address:        d.Address,
		BusinessSector: d.BusinessSector,
		LinkedIn:       d.LinkedIn,
		Notes:          d.Notes,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// Create writes a new contact document
func (r *ContactRepository) Create(ctx context.Context, c *contact.Contact) error {
	_, err := r.store.client.Collection(collectionContacts).Doc(c.ID).Set(ctx, toContactDoc(c))
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

// Get retrieves a contact by ID
func (r *ContactRepository) Get(ctx context.Context, id string) (*contact.Contact, error) {
	snap, err := r.store.client.Collection(collectionContacts).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapNotFound(err)
	}

	var doc contactDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode contact: %w", err)
	}
	c := doc.toContact(snap.Ref.ID)
	return &c, nil
}

// UpdateField overwrites a single field, last write wins
func (r *ContactRepository) UpdateField(ctx context.Context, id, field, value string) error {
	path, ok := fieldPaths[field]
	if !ok {
		return contact.ErrUnknownField
	}

	_, err := r.store.client.Collection(collectionContacts).Doc(id).Update(ctx, []firestore.Update{
		{Path: path, Value: value},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return mapNotFound(err)
	}
	return nil
}

// Delete removes a contact document
func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	doc := r.store.client.Collection(collectionContacts).Doc(id)
	if _, err := doc.Get(ctx); err != nil {
		return mapNotFound(err)
	}
	if _, err := doc.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return nil
}

// List returns all contacts in creation order
func (r *ContactRepository) List(ctx context.Context) ([]contact.Contact, error) {
	return r.collect(r.store.client.Collection(collectionContacts).OrderBy("createdAt", firestore.Asc).Documents(ctx))
}

// ListByExact applies native equality filters
func (r *ContactRepository) ListByExact(ctx context.Context, businessSector, company string) ([]contact.Contact, error) {
	query := r.store.client.Collection(collectionContacts).Query
	if businessSector != "" {
		query = query.Where("businessSector", "==", businessSector)
	}
	if company != "" {
		query = query.Where("company", "==", company)
	}
	return r.collect(query.Documents(ctx))
}

// FindByEmail returns the first contact with an exactly equal email. No
// normalization is performed.
func (r *ContactRepository) FindByEmail(ctx context.Context, email string) (*contact.Contact, error) {
	return r.findOne(ctx, r.store.client.Collection(collectionContacts).Where("email", "==", email))
}

// FindByName returns the first contact matching both name fields exactly
func (r *ContactRepository) FindByName(ctx context.Context, firstName, lastName string) (*contact.Contact, error) {
	return r.findOne(ctx, r.store.client.Collection(collectionContacts).
		Where("firstName", "==", firstName).
		Where("lastName", "==", lastName))
}

// FindByCompany returns the first contact with an exactly equal company
func (r *ContactRepository) FindByCompany(ctx context.Context, company string) (*contact.Contact, error) {
	return r.findOne(ctx, r.store.client.Collection(collectionContacts).Where("company", "==", company))
}

// FindByFirstName returns the first contact with an exactly equal first name
func (r *ContactRepository) FindByFirstName(ctx context.Context, firstName string) (*contact.Contact, error) {
	return r.findOne(ctx, r.store.client.Collection(collectionContacts).Where("firstName", "==", firstName))
}

// findOne orders by createdAt so ambiguous matches resolve to the oldest
// contact, same as the SQLite finders. Each finder's filter field needs a
// composite index with createdAt.
func (r *ContactRepository) findOne(ctx context.Context, query firestore.Query) (*contact.Contact, error) {
	iter := query.OrderBy("createdAt", firestore.Asc).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}

	var doc contactDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode contact: %w", err)
	}
	c := doc.toContact(snap.Ref.ID)
	return &c, nil
}

func (r *ContactRepository) collect(iter *firestore.DocumentIterator) ([]contact.Contact, error) {
	defer iter.Stop()

	var contacts []contact.Contact
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate contacts: %w", err)
		}
		var doc contactDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode contact: %w", err)
		}
		contacts = append(contacts, doc.toContact(snap.Ref.ID))
	}
	return contacts, nil
}
