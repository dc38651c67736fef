package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/openhouse-crm/openhouse/internal/classifier"
	"github.com/openhouse-crm/openhouse/internal/domain/contact"
	"github.com/openhouse-crm/openhouse/internal/domain/contactlist"
	"github.com/openhouse-crm/openhouse/internal/domain/listing"
	"github.com/openhouse-crm/openhouse/internal/keywords"
)

// createList materializes a list from free-text criteria. Returns a nil list
// with a failure Result when zero contacts match; an empty list is never
// created.
func (d *Dispatcher) createList(ctx context.Context, name, criteria, description, rawCommand string) (*contactlist.ContactList, Result, error) {
	term := keywords.DeriveSearchTerm(criteria)
	matched, err := d.resolver.QueryContacts(ctx, contact.Criteria{SearchTerms: term})
	if err != nil {
		return nil, Result{}, fmt.Errorf("query contacts for list: %w", err)
	}
	if len(matched) == 0 {
		return nil, failure(
			fmt.Sprintf("No contacts matched %q; the list was not created", criteria),
			"Try broader criteria, like a business sector or company name.",
		), nil
	}

	ids := make([]string, len(matched))
	for i := range matched {
		ids[i] = matched[i].ID
	}

	list := &contactlist.ContactList{
		ID:          d.newID(),
		Name:        name,
		ContactIDs:  ids,
		Description: description,
		Criteria:    criteria,
		CreatedAt:   d.now(),
	}
	if err := d.lists.Create(ctx, list); err != nil {
		return nil, Result{}, fmt.Errorf("create contact list: %w", err)
	}

	d.recordAudit(ctx, rawCommand, "create_list", list.ID, list.Name, "success",
		fmt.Sprintf("%d contacts, term %q", len(ids), term))
	return list, Result{}, nil
}

func (d *Dispatcher) handleCreateList(ctx context.Context, cmd classifier.CreateList, rawCommand string) (Result, error) {
	list, fail, err := d.createList(ctx, cmd.ListName, cmd.ListCriteria, cmd.Description, rawCommand)
	if err != nil {
		return Result{}, err
	}
	if list == nil {
		return fail, nil
	}

	return Result{
		Success: true,
		Message: fmt.Sprintf("✅ Created list %q with %d contacts", list.Name, len(list.ContactIDs)),
		ListID:  list.ID,
		List:    list,
		Count:   len(list.ContactIDs),
	}, nil
}

func (d *Dispatcher) handleCombinedListCreation(ctx context.Context, cmd classifier.CombinedListCreation, rawCommand string) (Result, error) {
	list, fail, err := d.createList(ctx, cmd.ListName, cmd.ListCriteria, "", rawCommand)
	if err != nil {
		return Result{}, err
	}
	if list == nil {
		return fail, nil
	}

	target, err := d.resolver.FindListing(ctx, cmd.ListingIdentifier)
	if err != nil {
		if errors.Is(err, listing.ErrNotFound) {
			// Partial failure: the list exists but could not be attached. It
			// is not deleted.
			return Result{
				Success:    false,
				Error:      fmt.Sprintf("No listing found matching %q", cmd.ListingIdentifier),
				Suggestion: listingSuggestion,
				Details:    fmt.Sprintf("List %q was created with %d contacts but is not attached to any listing.", list.Name, len(list.ContactIDs)),
				ListID:     list.ID,
				List:       list,
			}, nil
		}
		return Result{}, fmt.Errorf("resolve listing: %w", err)
	}

	attached, err := d.attachList(ctx, target, list.ID)
	if err != nil {
		return Result{}, err
	}
	if !attached {
		return Result{
			Success: false,
			Error:   fmt.Sprintf("List %q is already attached to %s", list.Name, target.DisplayName()),
			ListID:  list.ID,
		}, nil
	}

	d.recordAudit(ctx, rawCommand, "attach_list", target.ID, target.DisplayName(), "success", list.Name)
	return Result{
		Success:   true,
		Message:   fmt.Sprintf("✅ Created list %q with %d contacts and attached it to %s", list.Name, len(list.ContactIDs), target.DisplayName()),
		ListID:    list.ID,
		List:      list,
		ListingID: target.ID,
		Count:     len(list.ContactIDs),
	}, nil
}

func (d *Dispatcher) handleAttachListToListing(ctx context.Context, cmd classifier.AttachListToListing, rawCommand string) (Result, error) {
	list, err := d.resolver.FindContactList(ctx, cmd.ListIdentifier)
	if err != nil {
		if errors.Is(err, contactlist.ErrNotFound) {
			return failure(
				fmt.Sprintf("No contact list found matching %q", cmd.ListIdentifier),
				listSuggestion,
			), nil
		}
		return Result{}, fmt.Errorf("resolve contact list: %w", err)
	}

	target, err := d.resolver.FindListing(ctx, cmd.ListingIdentifier)
	if err != nil {
		if errors.Is(err, listing.ErrNotFound) {
			return failure(
				fmt.Sprintf("No listing found matching %q", cmd.ListingIdentifier),
				listingSuggestion,
			), nil
		}
		return Result{}, fmt.Errorf("resolve listing: %w", err)
	}

	attached, err := d.attachList(ctx, target, list.ID)
	if err != nil {
		return Result{}, err
	}
	if !attached {
		return Result{
			Success:   false,
			Error:     fmt.Sprintf("List %q is already attached to %s", list.Name, target.DisplayName()),
			ListID:    list.ID,
			ListingID: target.ID,
		}, nil
	}

	d.recordAudit(ctx, rawCommand, "attach_list", target.ID, target.DisplayName(), "success", list.Name)
	return Result{
		Success:   true,
		Message:   fmt.Sprintf("✅ Attached list %q to %s", list.Name, target.DisplayName()),
		ListID:    list.ID,
		ListingID: target.ID,
	}, nil
}

// attachList appends the list id to the listing's contactListIds unless it is
// already present. Read-modify-write with no compare-and-swap; concurrent
// attachments to the same listing can lose an update.
func (d *Dispatcher) attachList(ctx context.Context, target *listing.Listing, listID string) (bool, error) {
	if target.HasContactList(listID) {
		return false, nil
	}
	target.ContactListIDs = append(target.ContactListIDs, listID)
	if err := d.listings.Update(ctx, target); err != nil {
		return false, fmt.Errorf("update listing %s: %w", target.ID, err)
	}
	return true, nil
}
