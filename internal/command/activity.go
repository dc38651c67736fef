package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/openhouse-crm/openhouse/internal/classifier"
	"github.com/openhouse-crm/openhouse/internal/domain/activity"
	"github.com/openhouse-crm/openhouse/internal/domain/contact"
	"github.com/openhouse-crm/openhouse/internal/domain/listing"
	"github.com/openhouse-crm/openhouse/internal/repository"
)

// createActivity writes an activity for an already-resolved contact. The
// activity date is server time, never a date parsed from the command.
func (d *Dispatcher) createActivity(ctx context.Context, c *contact.Contact, rawType, description, rawCommand string) (*activity.Activity, Result, error) {
	actType, err := activity.ParseType(rawType)
	if err != nil {
		return nil, failure(
			fmt.Sprintf("%q is not a known activity type", rawType),
			"Known types: call, email, text, meeting, showing, follow_up, other.",
		), nil
	}

	now := d.now()
	act := &activity.Activity{
		ID:          d.newID(),
		ContactID:   c.ID,
		Type:        actType,
		Description: description,
		Date:        now,
		CreatedAt:   now,
	}
	if err := d.activity.Create(ctx, act); err != nil {
		return nil, Result{}, fmt.Errorf("create activity: %w", err)
	}

	d.recordAudit(ctx, rawCommand, "create_activity", c.ID, c.DisplayName(), "success",
		fmt.Sprintf("%s: %s", actType, description))
	return act, Result{}, nil
}

func (d *Dispatcher) handleCreateActivity(ctx context.Context, cmd classifier.CreateActivity, rawCommand string) (Result, error) {
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

	act, fail, err := d.createActivity(ctx, found, cmd.ActivityType, cmd.Description, rawCommand)
	if err != nil {
		return Result{}, err
	}
	if act == nil {
		return fail, nil
	}

	return Result{
		Success:    true,
		Message:    fmt.Sprintf("✅ Logged %s with %s", act.Type, found.DisplayName()),
		ActivityID: act.ID,
		ContactID:  found.ID,
	}, nil
}

func (d *Dispatcher) handleCombinedActivityCreation(ctx context.Context, cmd classifier.CombinedActivityCreation, rawCommand string) (Result, error) {
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

	act, fail, err := d.createActivity(ctx, found, cmd.ActivityType, cmd.Description, rawCommand)
	if err != nil {
		return Result{}, err
	}
	if act == nil {
		return fail, nil
	}

	target, err := d.resolver.FindListing(ctx, cmd.ListingIdentifier)
	if err != nil {
		if errors.Is(err, listing.ErrNotFound) {
			// Partial failure: the activity exists and stays; it is just not
			// attached to any listing.
			return Result{
				Success:    false,
				Error:      fmt.Sprintf("No listing found matching %q", cmd.ListingIdentifier),
				Suggestion: listingSuggestion,
				Details:    fmt.Sprintf("The %s activity with %s was logged but is not attached to any listing.", act.Type, found.DisplayName()),
				ActivityID: act.ID,
				ContactID:  found.ID,
			}, nil
		}
		return Result{}, fmt.Errorf("resolve listing: %w", err)
	}

	act.ListingID = target.ID
	act.ListingName = target.DisplayName()
	if err := d.activity.Update(ctx, act); err != nil {
		return Result{}, fmt.Errorf("attach activity %s to listing: %w", act.ID, err)
	}

	// Guard against duplicate attachment only; duplicate activity creation is
	// not guarded.
	if !target.HasActivity(act.ID) {
		target.ActivityIDs = append(target.ActivityIDs, act.ID)
		if err := d.listings.Update(ctx, target); err != nil {
			return Result{}, fmt.Errorf("update listing %s: %w", target.ID, err)
		}
	}

	d.recordAudit(ctx, rawCommand, "attach_activity", target.ID, target.DisplayName(), "success", string(act.Type))
	return Result{
		Success:    true,
		Message:    fmt.Sprintf("✅ Logged %s with %s and attached it to %s", act.Type, found.DisplayName(), target.DisplayName()),
		ActivityID: act.ID,
		ContactID:  found.ID,
		ListingID:  target.ID,
	}, nil
}
