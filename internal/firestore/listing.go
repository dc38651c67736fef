package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/openhouse-crm/openhouse/internal/domain/listing"
)

// ListingRepository implements repository.ListingRepository for Firestore
type ListingRepository struct {
	store *Store
}

// NewListingRepository creates a new ListingRepository
func NewListingRepository(store *Store) *ListingRepository {
	return &ListingRepository{store: store}
}

type listingDoc struct {
	Name           string    `firestore:"name"`
	Address        string    `firestore:"address"`
	StreetAddress  string    `firestore:"streetAddress"`
	Title          string    `firestore:"title"`
	ContactListIDs []string  `firestore:"contactListIds"`
	ActivityIDs    []string  `firestore:"activityIds"`
	CreatedAt      time.Time `firestore:"createdAt"`
}

func toListingDoc(l *listing.Listing) listingDoc {
	return listingDoc{
		Name:           l.Name,
		Address:        l.Address,
		StreetAddress:  l.StreetAddress,
		Title:          l.Title,
		ContactListIDs: l.ContactListIDs,
		ActivityIDs:    l.ActivityIDs,
		CreatedAt:      l.CreatedAt,
	}
}

func (d listingDoc) toListing(id string) listing.Listing {
	return listing.Listing{
		ID:             id,
		Name:           d.Name,
		Address:        d.Address,
		StreetAddress:  d.StreetAddress,
		Title:          d.Title,
		ContactListIDs: d.ContactListIDs,
		ActivityIDs:    d.ActivityIDs,
		CreatedAt:      d.CreatedAt,
	}
}

// Create writes a new listing document
func (r *ListingRepository) Create(ctx context.Context, l *listing.Listing) error {
	_, err := r.store.client.Collection(collectionListings).Doc(l.ID).Set(ctx, toListingDoc(l))
	if err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

// Get retrieves a listing by ID
func (r *ListingRepository) Get(ctx context.Context, id string) (*listing.Listing, error) {
	snap, err := r.store.client.Collection(collectionListings).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapNotFound(err)
	}

	var doc listingDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode listing: %w", err)
	}
	l := doc.toListing(snap.Ref.ID)
	return &l, nil
}

// Update overwrites a listing. Array appends are read-modify-write, not
// ArrayUnion, to keep parity with the SQLite store.
func (r *ListingRepository) Update(ctx context.Context, l *listing.Listing) error {
	doc := r.store.client.Collection(collectionListings).Doc(l.ID)
	if _, err := doc.Get(ctx); err != nil {
		return mapNotFound(err)
	}
	if _, err := doc.Set(ctx, toListingDoc(l)); err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}
	return nil
}

// List returns all listings in creation order
func (r *ListingRepository) List(ctx context.Context) ([]listing.Listing, error) {
	iter := r.store.client.Collection(collectionListings).OrderBy("createdAt", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var listings []listing.Listing
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate listings: %w", err)
		}
		var doc listingDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode listing: %w", err)
		}
		listings = append(listings, doc.toListing(snap.Ref.ID))
	}
	return listings, nil
}
