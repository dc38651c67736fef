package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openhouse-crm/openhouse/internal/classifier"
	"github.com/openhouse-crm/openhouse/internal/domain/contact"
	"github.com/openhouse-crm/openhouse/internal/repository"
)

func (d *Dispatcher) handleUpdateContact(ctx context.Context, cmd classifier.UpdateContact, rawCommand string) (Result, error) {
	if !contact.IsUpdatableField(cmd.Field) {
		return failure(
			fmt.Sprintf("%q is not an updatable contact field", cmd.Field),
			"Known fields: "+strings.Join(contact.UpdatableFields(), ", ")+".",
		), nil
	}

	found, err := d.resolver.FindContact(ctx, cmd.ContactIdentifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return failure(
				fmt.Sprintf("No contact found matching %q", cmd.ContactIdentifier),
				contactSuggestion,
			), nil
		}
		return Result{}, fmt.Errorf("resolve contact: %w", err)
	}

	if err := d.contacts.UpdateField(ctx, found.ID, cmd.Field, cmd.Value); err != nil {
		return Result{}, fmt.Errorf("update contact %s: %w", found.ID, err)
	}

	name := found.DisplayName()
	d.recordAudit(ctx, rawCommand, "update_contact", found.ID, name, "success",
		fmt.Sprintf("set %s to %q", cmd.Field, cmd.Value))

	return Result{
		Success:   true,
		Message:   fmt.Sprintf("✅ Updated %s for %s to %q", cmd.Field, name, cmd.Value),
		ContactID: found.ID,
	}, nil
}

func (d *Dispatcher) handleAddNote(ctx context.Context, cmd classifier.AddNote, rawCommand string) (Result, error) {
	found, err := d.resolver.FindContact(ctx, cmd.ContactIdentifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return failure(
				fmt.Sprintf("No contact found matching %q", cmd.ContactIdentifier),
				contactSuggestion,
			), nil
		}
		return Result{}, fmt.Errorf("resolve contact: %w", err)
	}

	// Append-only: prior notes are never overwritten.
	notes := cmd.Value
	if found.Notes != "" {
		notes = found.Notes + "\n" + cmd.Value
	}
	if err := d.contacts.UpdateField(ctx, found.ID, contact.FieldNotes, notes); err != nil {
		return Result{}, fmt.Errorf("update notes for %s: %w", found.ID, err)
	}

	name := found.DisplayName()
	d.recordAudit(ctx, rawCommand, "add_note", found.ID, name, "success", cmd.Value)

	return Result{
		Success:   true,
		Message:   fmt.Sprintf("✅ Added note to %s", name),
		ContactID: found.ID,
	}, nil
}

func (d *Dispatcher) handleCreateContact(ctx context.Context, cmd classifier.CreateContact, rawCommand string) (Result, error) {
	now := d.now()
	c := &contact.Contact{
		ID:             d.newID(),
		FirstName:      cmd.FirstName,
		LastName:       cmd.LastName,
		Email:          cmd.Email,
		Phone:          cmd.Phone,
		Company:        cmd.Company,
		Address:        cmd.Address,
		BusinessSector: cmd.BusinessSector,
		LinkedIn:       cmd.LinkedIn,
		Notes:          cmd.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := d.contacts.Create(ctx, c); err != nil {
		return Result{}, fmt.Errorf("create contact: %w", err)
	}

	name := c.DisplayName()
	d.recordAudit(ctx, rawCommand, "create_contact", c.ID, name, "success", "")

	return Result{
		Success:   true,
		Message:   fmt.Sprintf("✅ Created contact %s", name),
		ContactID: c.ID,
		Contact:   c,
	}, nil
}

func (d *Dispatcher) handleDeleteContact(ctx context.Context, cmd classifier.DeleteContact, rawCommand string) (Result, error) {
	found, err := d.resolver.FindContact(ctx, cmd.ContactIdentifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return failure(
				fmt.Sprintf("No contact found matching %q", cmd.ContactIdentifier),
				contactSuggestion,
			), nil
		}
		return Result{}, fmt.Errorf("resolve contact: %w", err)
	}
	name := found.DisplayName()

	// A named field means "clear that field", not "delete the contact".
	if cmd.Field != "" {
		if !contact.IsUpdatableField(cmd.Field) {
			return failure(
				fmt.Sprintf("%q is not a contact field", cmd.Field),
				"Known fields: "+strings.Join(contact.UpdatableFields(), ", ")+".",
			), nil
		}
		if err := d.contacts.UpdateField(ctx, found.ID, cmd.Field, ""); err != nil {
			return Result{}, fmt.Errorf("clear field for %s: %w", found.ID, err)
		}
		d.recordAudit(ctx, rawCommand, "clear_contact_field", found.ID, name, "success", cmd.Field)
		return Result{
			Success:   true,
			Message:   fmt.Sprintf("✅ Cleared %s for %s", cmd.Field, name),
			ContactID: found.ID,
		}, nil
	}

	if err := d.contacts.Delete(ctx, found.ID); err != nil {
		return Result{}, fmt.Errorf("delete contact %s: %w", found.ID, err)
	}
	d.recordAudit(ctx, rawCommand, "delete_contact", found.ID, name, "success", "")

	return Result{
		Success:   true,
		Message:   fmt.Sprintf("✅ Deleted contact %s", name),
		ContactID: found.ID,
	}, nil
}

func (d *Dispatcher) handleSearchContact(ctx context.Context, cmd classifier.SearchContact) (Result, error) {
	found, err := d.resolver.FindContact(ctx, cmd.ContactIdentifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return failure(
				fmt.Sprintf("No contact found matching %q", cmd.ContactIdentifier),
				contactSuggestion,
			), nil
		}
		return Result{}, fmt.Errorf("resolve contact: %w", err)
	}

	return Result{
		Success:   true,
		Message:   fmt.Sprintf("Found %s", found.DisplayName()),
		ContactID: found.ID,
		Contact:   found,
	}, nil
}

func (d *Dispatcher) handleListContacts(ctx context.Context) (Result, error) {
	all, err := d.contacts.List(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list contacts: %w", err)
	}

	return Result{
		Success:  true,
		Message:  fmt.Sprintf("Found %d contacts", len(all)),
		Contacts: all,
		Count:    len(all),
	}, nil
}
