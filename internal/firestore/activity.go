package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/openhouse-crm/openhouse/internal/domain/activity"
	"github.com/openhouse-crm/openhouse/internal/repository"
)

// ActivityRepository implements repository.ActivityRepository for Firestore
type ActivityRepository struct {
	store *Store
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(store *Store) *ActivityRepository {
	return &ActivityRepository{store: store}
}

type activityDoc struct {
	ContactID   string    `firestore:"contactId"`
	Type        string    `firestore:"type"`
	Description string    `firestore:"description"`
	Date        time.Time `firestore:"date"`
	ListingID   string    `firestore:"listingId"`
	ListingName string    `firestore:"listingName"`
	CreatedAt   time.Time `firestore:"createdAt"`
}

func toActivityDoc(a *activity.Activity) activityDoc {
	return activityDoc{
		ContactID:   a.ContactID,
		Type:        string(a.Type),
		Description: a.Description,
		Date:        a.Date,
		ListingID:   a.ListingID,
		ListingName: a.ListingName,
		CreatedAt:   a.CreatedAt,
	}
}

func (d activityDoc) toActivity(id string) activity.Activity {
	return activity.Activity{
		ID:          id,
		ContactID:   d.ContactID,
		Type:        activity.Type(d.Type),
		Description: d.Description,
		Date:        d.Date,
		ListingID:   d.ListingID,
		ListingName: d.ListingName,
		CreatedAt:   d.CreatedAt,
	}
}

// Create writes a new activity document
func (r *ActivityRepository) Create(ctx context.Context, a *activity.Activity) error {
	_, err := r.store.client.Collection(collectionActivities).Doc(a.ID).Set(ctx, toActivityDoc(a))
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

// Get retrieves an activity by ID
func (r *ActivityRepository) Get(ctx context.Context, id string) (*activity.Activity, error) {
	snap, err := r.store.client.Collection(collectionActivities).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapNotFound(err)
	}

	var doc activityDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode activity: %w", err)
	}
	a := doc.toActivity(snap.Ref.ID)
	return &a, nil
}

// Update overwrites an activity (used to patch in the listing attachment)
func (r *ActivityRepository) Update(ctx context.Context, a *activity.Activity) error {
	doc := r.store.client.Collection(collectionActivities).Doc(a.ID)
	if _, err := doc.Get(ctx); err != nil {
		return mapNotFound(err)
	}
	if _, err := doc.Set(ctx, toActivityDoc(a)); err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}
	return nil
}

// List returns activities matching the given filters, newest first
func (r *ActivityRepository) List(ctx context.Context, opts repository.ListActivitiesOptions) ([]activity.Activity, error) {
	query := r.store.client.Collection(collectionActivities).Query
	if opts.ContactID != "" {
		query = query.Where("contactId", "==", opts.ContactID)
	}
	if opts.ListingID != "" {
		query = query.Where("listingId", "==", opts.ListingID)
	}
	query = query.OrderBy("date", firestore.Desc)
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var activities []activity.Activity
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate activities: %w", err)
		}
		var doc activityDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode activity: %w", err)
		}
		activities = append(activities, doc.toActivity(snap.Ref.ID))
	}
	return activities, nil
}
