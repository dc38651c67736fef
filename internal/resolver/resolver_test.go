package resolver

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/openhouse-crm/openhouse/internal/domain/contact"
	"github.com/openhouse-crm/openhouse/internal/domain/contactlist"
	"github.com/openhouse-crm/openhouse/internal/domain/listing"
	"github.com/openhouse-crm/openhouse/internal/repository"
	"github.com/openhouse-crm/openhouse/internal/repository/mocks"
)

func newTestResolver(contacts *mocks.ContactRepository, listings *mocks.ListingRepository, lists *mocks.ContactListRepository) *Resolver {
	return New(contacts, listings, lists, slog.New(slog.DiscardHandler))
}

func TestFindContactByEmail(t *testing.T) {
	contacts := new(mocks.ContactRepository)
	want := &contact.Contact{ID: "c1", Email: "jane@acme.com"}
	contacts.On("FindByEmail", mock.Anything, "jane@acme.com").Return(want, nil)

	r := newTestResolver(contacts, nil, nil)
	got, err := r.FindContact(context.Background(), "jane@acme.com")
	require.NoError(t, err)
	require.Equal(t, want, got)
	contacts.AssertExpectations(t)
}

func TestFindContactEmailNotNormalized(t *testing.T) {
	// A trailing space is passed through as-is and misses the stored email.
	contacts := new(mocks.ContactRepository)
	contacts.On("FindByEmail", mock.Anything, "jane@acme.com ").Return(nil, repository.ErrNotFound)

	r := newTestResolver(contacts, nil, nil)
	_, err := r.FindContact(context.Background(), "jane@acme.com ")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFindContactByFullName(t *testing.T) {
	contacts := new(mocks.ContactRepository)
	want := &contact.Contact{ID: "c2", FirstName: "John", LastName: "Smith"}
	contacts.On("FindByName", mock.Anything, "John", "Smith").Return(want, nil)

	r := newTestResolver(contacts, nil, nil)
	got, err := r.FindContact(context.Background(), "John Smith")
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestFindContactMultiWordSurname(t *testing.T) {
	contacts := new(mocks.ContactRepository)
	want := &contact.Contact{ID: "c3", FirstName: "Ana", LastName: "de la Cruz"}
	contacts.On("FindByName", mock.Anything, "Ana", "de la Cruz").Return(want, nil)

	r := newTestResolver(contacts, nil, nil)
	got, err := r.FindContact(context.Background(), "Ana de la Cruz")
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestFindContactSingleWordCompanyBeforeFirstName(t *testing.T) {
	contacts := new(mocks.ContactRepository)
	want := &contact.Contact{ID: "c4", Company: "Initech"}
	contacts.On("FindByCompany", mock.Anything, "Initech").Return(want, nil)

	r := newTestResolver(contacts, nil, nil)
	got, err := r.FindContact(context.Background(), "Initech")
	require.NoError(t, err)
	require.Equal(t, want, got)
	contacts.AssertNotCalled(t, "FindByFirstName", mock.Anything, mock.Anything)
}

func TestFindContactSingleWordFallsBackToFirstName(t *testing.T) {
	contacts := new(mocks.ContactRepository)
	want := &contact.Contact{ID: "c5", FirstName: "Sarah"}
	contacts.On("FindByCompany", mock.Anything, "Sarah").Return(nil, repository.ErrNotFound)
	contacts.On("FindByFirstName", mock.Anything, "Sarah").Return(want, nil)

	r := newTestResolver(contacts, nil, nil)
	got, err := r.FindContact(context.Background(), "Sarah")
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestFindListingBidirectionalSubstring(t *testing.T) {
	listings := new(mocks.ListingRepository)
	all := []listing.Listing{
		{ID: "l1", StreetAddress: "420 Main Street"},
		{ID: "l2", Name: "Main"},
	}
	listings.On("List", mock.Anything).Return(all, nil)

	r := newTestResolver(nil, listings, nil)

	// The identifier is a substring of the stored address.
	got, err := r.FindListing(context.Background(), "420 Main")
	require.NoError(t, err)
	require.Equal(t, "l1", got.ID)

	// The stored name "Main" is a substring of the identifier, and l1 also
	// contains "main"; first in iteration order wins.
	got, err = r.FindListing(context.Background(), "Main")
	require.NoError(t, err)
	require.Equal(t, "l1", got.ID)
}

func TestFindListingNotFound(t *testing.T) {
	listings := new(mocks.ListingRepository)
	listings.On("List", mock.Anything).Return([]listing.Listing{{ID: "l1", Name: "Oak House"}}, nil)

	r := newTestResolver(nil, listings, nil)
	_, err := r.FindListing(context.Background(), "elm")
	require.ErrorIs(t, err, listing.ErrNotFound)
}

func TestFindContactList(t *testing.T) {
	lists := new(mocks.ContactListRepository)
	lists.On("List", mock.Anything).Return([]contactlist.ContactList{
		{ID: "cl1", Name: "Tech Companies"},
	}, nil)

	r := newTestResolver(nil, nil, lists)
	got, err := r.FindContactList(context.Background(), "tech companies")
	require.NoError(t, err)
	require.Equal(t, "cl1", got.ID)

	_, err = r.FindContactList(context.Background(), "investors")
	require.ErrorIs(t, err, contactlist.ErrNotFound)
}

func TestQueryContacts(t *testing.T) {
	contacts := new(mocks.ContactRepository)
	hasLinkedIn := true
	candidates := []contact.Contact{
		{ID: "c1", FirstName: "Jane", BusinessSector: "tech", LinkedIn: "in/jane"},
		{ID: "c2", FirstName: "Bob", BusinessSector: "tech"},
		{ID: "c3", FirstName: "Ann", BusinessSector: "tech", LinkedIn: "in/ann", Notes: "met at TechCrunch"},
	}
	contacts.On("ListByExact", mock.Anything, "tech", "").Return(candidates, nil)

	r := newTestResolver(contacts, nil, nil)
	got, err := r.QueryContacts(context.Background(), contact.Criteria{
		BusinessSector: "tech",
		HasLinkedIn:    &hasLinkedIn,
		SearchTerms:    "ann",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "c3", got[0].ID)
}
