package command

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/openhouse-crm/openhouse/internal/classifier"
	"github.com/openhouse-crm/openhouse/internal/domain/contact"
	"github.com/openhouse-crm/openhouse/internal/domain/contactlist"
	"github.com/openhouse-crm/openhouse/internal/domain/listing"
	"github.com/openhouse-crm/openhouse/internal/domain/prospect"
	"github.com/openhouse-crm/openhouse/internal/repository"
	"github.com/openhouse-crm/openhouse/internal/repository/mocks"
	"github.com/openhouse-crm/openhouse/internal/resolver"
)

type fixture struct {
	contacts  *mocks.ContactRepository
	listings  *mocks.ListingRepository
	lists     *mocks.ContactListRepository
	activity  *mocks.ActivityRepository
	tasks     *mocks.TaskRepository
	audits    *mocks.AuditRepository
	prospects *mocks.ProspectRepository
	d         *Dispatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		contacts:  new(mocks.ContactRepository),
		listings:  new(mocks.ListingRepository),
		lists:     new(mocks.ContactListRepository),
		activity:  new(mocks.ActivityRepository),
		tasks:     new(mocks.TaskRepository),
		audits:    new(mocks.AuditRepository),
		prospects: new(mocks.ProspectRepository),
	}
	logger := slog.New(slog.DiscardHandler)
	f.d = NewDispatcher(Deps{
		Contacts:  f.contacts,
		Listings:  f.listings,
		Lists:     f.lists,
		Activity:  f.activity,
		Tasks:     f.tasks,
		Audits:    f.audits,
		Prospects: f.prospects,
		Resolver:  resolver.New(f.contacts, f.listings, f.lists, logger),
		Logger:    logger,
	})
	f.d.now = func() time.Time {
		return time.Date(2026, time.August, 21, 12, 0, 0, 0, time.UTC)
	}
	counter := 0
	f.d.newID = func() string {
		counter++
		return fmt.Sprintf("id-%d", counter)
	}
	return f
}

func (f *fixture) expectAudit() {
	f.audits.On("Log", mock.Anything, mock.Anything).Return(nil)
}

func TestUpdateContactSuccessMessage(t *testing.T) {
	f := newFixture(t)
	found := &contact.Contact{ID: "c1", FirstName: "John", LastName: "Smith"}
	f.contacts.On("FindByName", mock.Anything, "John", "Smith").Return(found, nil)
	f.contacts.On("UpdateField", mock.Anything, "c1", "email", "john@new.com").Return(nil)
	f.expectAudit()

	result, err := f.d.Dispatch(context.Background(), classifier.UpdateContact{
		ContactIdentifier: "John Smith",
		Field:             "email",
		Value:             "john@new.com",
	}, "update John Smith email to john@new.com")
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, `✅ Updated email for John Smith to "john@new.com"`, result.Message)
	require.Equal(t, "c1", result.ContactID)
}

func TestUpdateContactUnknownFieldNoStoreAccess(t *testing.T) {
	f := newFixture(t)

	result, err := f.d.Dispatch(context.Background(), classifier.UpdateContact{
		ContactIdentifier: "John Smith",
		Field:             "favoriteColor",
		Value:             "blue",
	}, "")
	require.NoError(t, err)
	require.False(t, result.Success)
	require.Contains(t, result.Error, "favoriteColor")
	f.contacts.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything, mock.Anything)
	f.contacts.AssertNotCalled(t, "UpdateField", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateContactNotFoundSuggestion(t *testing.T) {
	f := newFixture(t)
	f.contacts.On("FindByName", mock.Anything, "Jane", "Doe").Return(nil, repository.ErrNotFound)

	result, err := f.d.Dispatch(context.Background(), classifier.UpdateContact{
		ContactIdentifier: "Jane Doe",
		Field:             "phone",
		Value:             "555",
	}, "")
	require.NoError(t, err)
	require.False(t, result.Success)
	require.Equal(t, contactSuggestion, result.Suggestion)
}

func TestAddNoteAppendsToExisting(t *testing.T) {
	f := newFixture(t)
	found := &contact.Contact{ID: "c1", FirstName: "Jane", Notes: "first note"}
	f.contacts.On("FindByCompany", mock.Anything, "Jane").Return(nil, repository.ErrNotFound)
	f.contacts.On("FindByFirstName", mock.Anything, "Jane").Return(found, nil)
	f.contacts.On("UpdateField", mock.Anything, "c1", "notes", "first note\nsecond note").Return(nil)
	f.expectAudit()

	result, err := f.d.Dispatch(context.Background(), classifier.AddNote{
		ContactIdentifier: "Jane",
		Value:             "second note",
	}, "")
	require.NoError(t, err)
	require.True(t, result.Success)
	f.contacts.AssertExpectations(t)
}

func TestAddNoteFirstNoteVerbatim(t *testing.T) {
	f := newFixture(t)
	found := &contact.Contact{ID: "c1", FirstName: "Jane"}
	f.contacts.On("FindByCompany", mock.Anything, "Jane").Return(nil, repository.ErrNotFound)
	f.contacts.On("FindByFirstName", mock.Anything, "Jane").Return(found, nil)
	f.contacts.On("UpdateField", mock.Anything, "c1", "notes", "only note").Return(nil)
	f.expectAudit()

	_, err := f.d.Dispatch(context.Background(), classifier.AddNote{
		ContactIdentifier: "Jane",
		Value:             "only note",
	}, "")
	require.NoError(t, err)
	f.contacts.AssertExpectations(t)
}

func TestCreateListZeroMatchesCreatesNothing(t *testing.T) {
	f := newFixture(t)
	f.contacts.On("ListByExact", mock.Anything, "", "").Return([]contact.Contact{}, nil)

	result, err := f.d.Dispatch(context.Background(), classifier.CreateList{
		ListName:     "Empty",
		ListCriteria: "everyone in aerospace",
	}, "")
	require.NoError(t, err)
	require.False(t, result.Success)
	f.lists.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateListSnapshotsMatches(t *testing.T) {
	f := newFixture(t)
	f.contacts.On("ListByExact", mock.Anything, "", "").Return([]contact.Contact{
		{ID: "c1", BusinessSector: "tech"},
		{ID: "c2", Company: "TechCorp"},
		{ID: "c3", BusinessSector: "finance"},
	}, nil)
	f.lists.On("Create", mock.Anything, mock.MatchedBy(func(l *contactlist.ContactList) bool {
		return l.Name == "Tech People" && len(l.ContactIDs) == 2
	})).Return(nil)
	f.expectAudit()

	result, err := f.d.Dispatch(context.Background(), classifier.CreateList{
		ListName:     "Tech People",
		ListCriteria: "everyone in tech",
	}, "")
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, 2, result.Count)
}

func TestCombinedListCreationPartialFailure(t *testing.T) {
	f := newFixture(t)
	f.contacts.On("ListByExact", mock.Anything, "", "").Return([]contact.Contact{
		{ID: "c1", BusinessSector: "tech"},
	}, nil)
	f.lists.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.listings.On("List", mock.Anything).Return([]listing.Listing{}, nil)
	f.expectAudit()

	result, err := f.d.Dispatch(context.Background(), classifier.CombinedListCreation{
		ListName:          "Tech People",
		ListCriteria:      "everyone in tech",
		ListingIdentifier: "99 Nowhere Lane",
	}, "")
	require.NoError(t, err)
	require.False(t, result.Success)
	// The list stays created even though the attachment failed.
	require.NotEmpty(t, result.ListID)
	require.Contains(t, result.Details, "not attached")
	f.lists.AssertCalled(t, "Create", mock.Anything, mock.Anything)
	f.listings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAttachListAlreadyAttached(t *testing.T) {
	f := newFixture(t)
	f.lists.On("List", mock.Anything).Return([]contactlist.ContactList{
		{ID: "cl1", Name: "Tech Companies"},
	}, nil)
	f.listings.On("List", mock.Anything).Return([]listing.Listing{
		{ID: "l1", StreetAddress: "420 Main Street", ContactListIDs: []string{"cl1"}},
	}, nil)

	result, err := f.d.Dispatch(context.Background(), classifier.AttachListToListing{
		ListIdentifier:    "Tech Companies",
		ListingIdentifier: "420 Main Street",
	}, "")
	require.NoError(t, err)
	require.False(t, result.Success)
	require.Contains(t, result.Error, "already attached")
	f.listings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAttachListAppendsOnce(t *testing.T) {
	f := newFixture(t)
	f.lists.On("List", mock.Anything).Return([]contactlist.ContactList{
		{ID: "cl1", Name: "Tech Companies"},
	}, nil)
	f.listings.On("List", mock.Anything).Return([]listing.Listing{
		{ID: "l1", StreetAddress: "420 Main Street"},
	}, nil)
	f.listings.On("Update", mock.Anything, mock.MatchedBy(func(l *listing.Listing) bool {
		return len(l.ContactListIDs) == 1 && l.ContactListIDs[0] == "cl1"
	})).Return(nil)
	f.expectAudit()

	result, err := f.d.Dispatch(context.Background(), classifier.AttachListToListing{
		ListIdentifier:    "Tech Companies",
		ListingIdentifier: "420 Main Street",
	}, "attach the Tech Companies list to 420 Main Street")
	require.NoError(t, err)
	require.True(t, result.Success)
	f.listings.AssertExpectations(t)
}

func TestCombinedActivityPartialFailureKeepsActivity(t *testing.T) {
	f := newFixture(t)
	found := &contact.Contact{ID: "c1", FirstName: "Sarah", LastName: "Lee"}
	f.contacts.On("FindByName", mock.Anything, "Sarah", "Lee").Return(found, nil)
	f.activity.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.listings.On("List", mock.Anything).Return([]listing.Listing{}, nil)
	f.expectAudit()

	result, err := f.d.Dispatch(context.Background(), classifier.CombinedActivityCreation{
		ContactIdentifier: "Sarah Lee",
		ActivityType:      "showing",
		Description:       "toured the unit",
		ListingIdentifier: "missing place",
	}, "")
	require.NoError(t, err)
	require.False(t, result.Success)
	require.NotEmpty(t, result.ActivityID)
	f.activity.AssertCalled(t, "Create", mock.Anything, mock.Anything)
	f.activity.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCombinedActivityAttaches(t *testing.T) {
	f := newFixture(t)
	found := &contact.Contact{ID: "c1", FirstName: "Sarah", LastName: "Lee"}
	f.contacts.On("FindByName", mock.Anything, "Sarah", "Lee").Return(found, nil)
	f.activity.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.listings.On("List", mock.Anything).Return([]listing.Listing{
		{ID: "l1", Name: "Oak House"},
	}, nil)
	f.activity.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.listings.On("Update", mock.Anything, mock.MatchedBy(func(l *listing.Listing) bool {
		return len(l.ActivityIDs) == 1
	})).Return(nil)
	f.expectAudit()

	result, err := f.d.Dispatch(context.Background(), classifier.CombinedActivityCreation{
		ContactIdentifier: "Sarah Lee",
		ActivityType:      "showing",
		Description:       "toured the unit",
		ListingIdentifier: "Oak House",
	}, "")
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, "l1", result.ListingID)
}

func TestCreateActivityInvalidType(t *testing.T) {
	f := newFixture(t)
	found := &contact.Contact{ID: "c1", FirstName: "Sarah", LastName: "Lee"}
	f.contacts.On("FindByName", mock.Anything, "Sarah", "Lee").Return(found, nil)

	result, err := f.d.Dispatch(context.Background(), classifier.CreateActivity{
		ContactIdentifier: "Sarah Lee",
		ActivityType:      "carrier-pigeon",
	}, "")
	require.NoError(t, err)
	require.False(t, result.Success)
	f.activity.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateTaskForContact(t *testing.T) {
	f := newFixture(t)
	found := &contact.Contact{ID: "c1", FirstName: "Jane", LastName: "Doe"}
	f.contacts.On("FindByName", mock.Anything, "Jane", "Doe").Return(found, nil)
	f.tasks.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.expectAudit()

	result, err := f.d.Dispatch(context.Background(), classifier.CreateTask{
		Title:             "call Jane Doe",
		DueDate:           "2026-08-22",
		TaskType:          "contact",
		ContactIdentifier: "Jane Doe",
	}, "remind me to call Jane Doe tomorrow")
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, "c1", result.Task.ContactID)
	require.Empty(t, result.Task.ListingID)
}

func TestCreateTaskBadDueDate(t *testing.T) {
	f := newFixture(t)
	found := &contact.Contact{ID: "c1", FirstName: "Jane", LastName: "Doe"}
	f.contacts.On("FindByName", mock.Anything, "Jane", "Doe").Return(found, nil)

	result, err := f.d.Dispatch(context.Background(), classifier.CreateTask{
		Title:             "call Jane Doe",
		DueDate:           "next week",
		TaskType:          "contact",
		ContactIdentifier: "Jane Doe",
	}, "")
	require.NoError(t, err)
	require.False(t, result.Success)
	f.tasks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFilterContactsInfersField(t *testing.T) {
	f := newFixture(t)
	f.contacts.On("List", mock.Anything).Return([]contact.Contact{
		{ID: "c1", BusinessSector: "Technology"},
		{ID: "c2", BusinessSector: "Finance"},
	}, nil)

	result, err := f.d.Dispatch(context.Background(), classifier.FilterContacts{
		FilterCriteria: "tech",
	}, "")
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Len(t, result.Contacts, 1)
	require.Equal(t, "c1", result.Contacts[0].ID)
}

type fakeSearcher struct {
	businesses []prospect.Business
}

func (s *fakeSearcher) Search(_ context.Context, _, _ string) ([]prospect.Business, error) {
	return s.businesses, nil
}

func TestProspectArchivalIsBestEffort(t *testing.T) {
	f := newFixture(t)
	f.d.searcher = &fakeSearcher{businesses: []prospect.Business{{PlaceID: "p1", Name: "Luigi's"}}}
	f.prospects.On("SaveSearch", mock.Anything, mock.Anything).Return(fmt.Errorf("store down"))
	f.expectAudit()

	result, err := f.d.Dispatch(context.Background(), classifier.ProspectBusinesses{
		BusinessCategory: "restaurants",
		Location:         "chinatown",
	}, "")
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Len(t, result.Businesses, 1)
}
