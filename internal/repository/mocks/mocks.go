// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/openhouse-crm/openhouse/internal/domain/activity"
	"github.com/openhouse-crm/openhouse/internal/domain/audit"
	"github.com/openhouse-crm/openhouse/internal/domain/contact"
	"github.com/openhouse-crm/openhouse/internal/domain/contactlist"
	"github.com/openhouse-crm/openhouse/internal/domain/listing"
	"github.com/openhouse-crm/openhouse/internal/domain/prospect"
	"github.com/openhouse-crm/openhouse/internal/domain/task"
	"github.com/openhouse-crm/openhouse/internal/repository"
)

// ContactRepository is a mock for repository.ContactRepository.
type ContactRepository struct {
	mock.Mock
}

func (m *ContactRepository) Create(ctx context.Context, c *contact.Contact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *ContactRepository) Get(ctx context.Context, id string) (*contact.Contact, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*contact.Contact); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContactRepository) UpdateField(ctx context.Context, id, field, value string) error {
	args := m.Called(ctx, id, field, value)
	return args.Error(0)
}

func (m *ContactRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ContactRepository) List(ctx context.Context) ([]contact.Contact, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]contact.Contact); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContactRepository) ListByExact(ctx context.Context, businessSector, company string) ([]contact.Contact, error) {
	args := m.Called(ctx, businessSector, company)
	if list, ok := args.Get(0).([]contact.Contact); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContactRepository) FindByEmail(ctx context.Context, email string) (*contact.Contact, error) {
	args := m.Called(ctx, email)
	if c, ok := args.Get(0).(*contact.Contact); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContactRepository) FindByName(ctx context.Context, firstName, lastName string) (*contact.Contact, error) {
	args := m.Called(ctx, firstName, lastName)
	if c, ok := args.Get(0).(*contact.Contact); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContactRepository) FindByCompany(ctx context.Context, company string) (*contact.Contact, error) {
	args := m.Called(ctx, company)
	if c, ok := args.Get(0).(*contact.Contact); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContactRepository) FindByFirstName(ctx context.Context, firstName string) (*contact.Contact, error) {
	args := m.Called(ctx, firstName)
	if c, ok := args.Get(0).(*contact.Contact); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListingRepository is a mock for repository.ListingRepository.
type ListingRepository struct {
	mock.Mock
}

func (m *ListingRepository) Create(ctx context.Context, l *listing.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *ListingRepository) Get(ctx context.Context, id string) (*listing.Listing, error) {
	args := m.Called(ctx, id)
	if l, ok := args.Get(0).(*listing.Listing); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ListingRepository) Update(ctx context.Context, l *listing.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *ListingRepository) List(ctx context.Context) ([]listing.Listing, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]listing.Listing); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityRepository is a mock for repository.ActivityRepository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Create(ctx context.Context, a *activity.Activity) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *ActivityRepository) Get(ctx context.Context, id string) (*activity.Activity, error) {
	args := m.Called(ctx, id)
	if a, ok := args.Get(0).(*activity.Activity); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ActivityRepository) Update(ctx context.Context, a *activity.Activity) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts repository.ListActivitiesOptions) ([]activity.Activity, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.Activity); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ContactListRepository is a mock for repository.ContactListRepository.
type ContactListRepository struct {
	mock.Mock
}

func (m *ContactListRepository) Create(ctx context.Context, l *contactlist.ContactList) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *ContactListRepository) Get(ctx context.Context, id string) (*contactlist.ContactList, error) {
	args := m.Called(ctx, id)
	if l, ok := args.Get(0).(*contactlist.ContactList); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContactListRepository) List(ctx context.Context) ([]contactlist.ContactList, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]contactlist.ContactList); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// TaskRepository is a mock for repository.TaskRepository.
type TaskRepository struct {
	mock.Mock
}

func (m *TaskRepository) Create(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TaskRepository) Get(ctx context.Context, id string) (*task.Task, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*task.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TaskRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *TaskRepository) List(ctx context.Context) ([]task.Task, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]task.Task); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// AuditRepository is a mock for repository.AuditRepository.
type AuditRepository struct {
	mock.Mock
}

func (m *AuditRepository) Log(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// ProspectRepository is a mock for repository.ProspectRepository.
type ProspectRepository struct {
	mock.Mock
}

func (m *ProspectRepository) SaveSearch(ctx context.Context, s *prospect.Search) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
