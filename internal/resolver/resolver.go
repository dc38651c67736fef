// Package resolver maps free-text identifiers to store entities and runs
// criteria queries over contacts.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openhouse-crm/openhouse/internal/domain/contact"
	"github.com/openhouse-crm/openhouse/internal/domain/contactlist"
	"github.com/openhouse-crm/openhouse/internal/domain/listing"
	"github.com/openhouse-crm/openhouse/internal/repository"
)

// Resolver looks up entities by the loose identifiers users type.
type Resolver struct {
	contacts repository.ContactRepository
	listings repository.ListingRepository
	lists    repository.ContactListRepository
	logger   *slog.Logger
}

// New creates a Resolver over the given repositories.
func New(
	contacts repository.ContactRepository,
	listings repository.ListingRepository,
	lists repository.ContactListRepository,
	logger *slog.Logger,
) *Resolver {
	return &Resolver{contacts: contacts, listings: listings, lists: lists, logger: logger}
}

// FindContact resolves an identifier to at most one contact. Tiers, first
// match wins:
//
//  1. contains "@": exact email match, no normalization of the input
//  2. contains a space: first token as firstName, remainder as lastName
//  3. single word: company match, then firstName match
//
// Single words match company before firstName because single-word commands
// name companies more often than people. Single-word last names are a known
// miss.
func (r *Resolver) FindContact(ctx context.Context, identifier string) (*contact.Contact, error) {
	if strings.Contains(identifier, "@") {
		return r.contacts.FindByEmail(ctx, identifier)
	}

	if first, last, ok := splitName(identifier); ok {
		return r.contacts.FindByName(ctx, first, last)
	}

	c, err := r.contacts.FindByCompany(ctx, identifier)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return r.contacts.FindByFirstName(ctx, identifier)
}

// FindListing resolves an identifier to at most one listing. Listings have no
// single reliable identifying field, so this loads the full set and returns
// the first listing where any of streetAddress, address, name, or title
// matches the identifier as a case-insensitive substring in either direction.
// O(n), acceptable at expected listing volumes.
func (r *Resolver) FindListing(ctx context.Context, identifier string) (*listing.Listing, error) {
	all, err := r.listings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(identifier))
	if needle == "" {
		return nil, listing.ErrNotFound
	}

	for i := range all {
		for _, field := range all[i].MatchFields() {
			if substringMatch(field, needle) {
				return &all[i], nil
			}
		}
	}

	r.logger.Debug("listing not resolved", "identifier", identifier)
	return nil, listing.ErrNotFound
}

// FindContactList resolves a list identifier by the same bidirectional
// substring test as listings, over the list name.
func (r *Resolver) FindContactList(ctx context.Context, identifier string) (*contactlist.ContactList, error) {
	all, err := r.lists.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contact lists: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(identifier))
	if needle == "" {
		return nil, contactlist.ErrNotFound
	}

	for i := range all {
		if substringMatch(all[i].Name, needle) {
			return &all[i], nil
		}
	}
	return nil, contactlist.ErrNotFound
}

// QueryContacts runs a sparse criteria query. Equality criteria are pushed
// down to the store; presence flags and the search term are applied in memory
// over the narrowed set.
func (r *Resolver) QueryContacts(ctx context.Context, cr contact.Criteria) ([]contact.Contact, error) {
	candidates, err := r.contacts.ListByExact(ctx, cr.BusinessSector, cr.Company)
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}

	matched := make([]contact.Contact, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		if !c.MatchesPresence(cr) {
			continue
		}
		if !c.MatchesSearch(cr.SearchTerms) {
			continue
		}
		matched = append(matched, *c)
	}
	return matched, nil
}

// splitName splits "First Rest Of Surname" into ("First", "Rest Of Surname").
func splitName(identifier string) (first, last string, ok bool) {
	trimmed := strings.TrimSpace(identifier)
	idx := strings.IndexByte(trimmed, ' ')
	if idx < 0 {
		return "", "", false
	}
	return trimmed[:idx], strings.TrimSpace(trimmed[idx+1:]), true
}

func substringMatch(candidate, needle string) bool {
	candidate = strings.ToLower(strings.TrimSpace(candidate))
	if candidate == "" {
		return false
	}
	return strings.Contains(candidate, needle) || strings.Contains(needle, candidate)
}
