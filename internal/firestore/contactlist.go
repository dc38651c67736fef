package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/openhouse-crm/openhouse/internal/domain/contactlist"
)

// ContactListRepository implements repository.ContactListRepository for Firestore
type ContactListRepository struct {
	store *Store
}

// NewContactListRepository creates a new ContactListRepository
func NewContactListRepository(store *Store) *ContactListRepository {
	return &ContactListRepository{store: store}
}

type contactListDoc struct {
	Name        string    `firestore:"name"`
	ContactIDs  []string  `firestore:"contactIds"`
	Description string    `firestore:"description"`
	Criteria    string    `firestore:"criteria"`
	CreatedAt   time.Time `firestore:"createdAt"`
}

// Create writes a new contact list document
func (r *ContactListRepository) Create(ctx context.Context, l *contactlist.ContactList) error {
	_, err := r.store.client.Collection(collectionContactLists).Doc(l.ID).Set(ctx, contactListDoc{
		Name:        l.Name,
		ContactIDs:  l.ContactIDs,
		Description: l.Description,
		Criteria:    l.Criteria,
		CreatedAt:   l.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to create contact list: %w", err)
	}
	return nil
}

// Get retrieves a contact list by ID
func (r *ContactListRepository) Get(ctx context.Context, id string) (*contactlist.ContactList, error) {
	snap, err := r.store.client.Collection(collectionContactLists).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapNotFound(err)
	}

	var doc contactListDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode contact list: %w", err)
	}
	return &contactlist.ContactList{
		ID:          snap.Ref.ID,
		Name:        doc.Name,
		ContactIDs:  doc.ContactIDs,
		Description: doc.Description,
		Criteria:    doc.Criteria,
		CreatedAt:   doc.CreatedAt,
	}, nil
}

// List returns all contact lists in creation order
func (r *ContactListRepository) List(ctx context.Context) ([]contactlist.ContactList, error) {
	iter := r.store.client.Collection(collectionContactLists).OrderBy("createdAt", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var lists []contactlist.ContactList
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate contact lists: %w", err)
		}
		var doc contactListDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode contact list: %w", err)
		}
		lists = append(lists, contactlist.ContactList{
			ID:          snap.Ref.ID,
			Name:        doc.Name,
			ContactIDs:  doc.ContactIDs,
			Description: doc.Description,
			Criteria:    doc.Criteria,
			CreatedAt:   doc.CreatedAt,
		})
	}
	return lists, nil
}
