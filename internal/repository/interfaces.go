package repository

import (
	"context"

	"github.com/openhouse-crm/openhouse/internal/domain/activity"
	"github.com/openhouse-crm/openhouse/internal/domain/audit"
	"github.com/openhouse-crm/openhouse/internal/domain/contact"
	"github.com/openhouse-crm/openhouse/internal/domain/contactlist"
	"github.com/openhouse-crm/openhouse/internal/domain/listing"
	"github.com/openhouse-crm/openhouse/internal/domain/prospect"
	"github.com/openhouse-crm/openhouse/internal/domain/task"
)

// ContactRepository manages contact persistence.
type ContactRepository interface {
	Create(ctx context.Context, c *contact.Contact) error
	Get(ctx context.Context, id string) (*contact.Contact, error)
	// UpdateField overwrites a single field, last write wins. The caller is
	// responsible for validating the field name.
	UpdateField(ctx context.Context, id, field, value string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]contact.Contact, error)
	// ListByExact applies the store-native equality filters. Empty arguments
	// mean no filter on that field.
	ListByExact(ctx context.Context, businessSector, company string) ([]contact.Contact, error)
	FindByEmail(ctx context.Context, email string) (*contact.Contact, error)
	FindByName(ctx context.Context, firstName, lastName string) (*contact.Contact, error)
	FindByCompany(ctx context.Context, company string) (*contact.Contact, error)
	FindByFirstName(ctx context.Context, firstName string) (*contact.Contact, error)
}

// ListingRepository manages listing persistence. Array membership changes go
// through Update as a read-modify-write; the store offers no compare-and-swap
// here, so concurrent attachments can race (known limitation).
type ListingRepository interface {
	Create(ctx context.Context, l *listing.Listing) error
	Get(ctx context.Context, id string) (*listing.Listing, error)
	Update(ctx context.Context, l *listing.Listing) error
	List(ctx context.Context) ([]listing.Listing, error)
}

// ActivityRepository manages CRM activity persistence.
type ActivityRepository interface {
	Create(ctx context.Context, a *activity.Activity) error
	Get(ctx context.Context, id string) (*activity.Activity, error)
	Update(ctx context.Context, a *activity.Activity) error
	List(ctx context.Context, opts ListActivitiesOptions) ([]activity.Activity, error)
}

// ListActivitiesOptions filters activity listings.
type ListActivitiesOptions struct {
	ContactID string
	ListingID string
	Limit     int
}

// ContactListRepository manages contact list persistence. Lists are
// immutable after creation apart from being referenced by listings.
type ContactListRepository interface {
	Create(ctx context.Context, l *contactlist.ContactList) error
	Get(ctx context.Context, id string) (*contactlist.ContactList, error)
	List(ctx context.Context) ([]contactlist.ContactList, error)
}

// TaskRepository manages task persistence.
type TaskRepository interface {
	Create(ctx context.Context, t *task.Task) error
	Get(ctx context.Context, id string) (*task.Task, error)
	Update(ctx context.Context, t *task.Task) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]task.Task, error)
}

// AuditRepository is the append-only command audit log.
type AuditRepository interface {
	Log(ctx context.Context, entry *audit.Entry) error
}

// ProspectRepository archives prospecting searches.
type ProspectRepository interface {
	SaveSearch(ctx context.Context, s *prospect.Search) error
}
