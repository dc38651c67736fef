package command

import (
	"context"
	"fmt"

	"github.com/openhouse-crm/openhouse/internal/classifier"
	"github.com/openhouse-crm/openhouse/internal/domain/prospect"
)

func (d *Dispatcher) handleProspectBusinesses(ctx context.Context, cmd classifier.ProspectBusinesses, rawCommand string) (Result, error) {
	if d.searcher == nil {
		return failure("Business prospecting is not configured", ""), nil
	}

	businesses, err := d.searcher.Search(ctx, cmd.BusinessCategory, cmd.Location)
	if err != nil {
		return Result{}, fmt.Errorf("prospect businesses: %w", err)
	}

	search := &prospect.Search{
		ID:        d.newID(),
		Category:  cmd.BusinessCategory,
		Location:  cmd.Location,
		Results:   businesses,
		CreatedAt: d.now(),
	}
	// Archival is best-effort; the user still gets their results.
	if err := d.prospects.SaveSearch(ctx, search); err != nil {
		d.logger.Warn("prospect search archival failed", "error", err)
	}

	d.recordAudit(ctx, rawCommand, "prospect_businesses", search.ID, cmd.Location, "success",
		fmt.Sprintf("%d businesses for %q", len(businesses), cmd.BusinessCategory))

	return Result{
		Success:    true,
		Message:    fmt.Sprintf("Found %d %s near %s", len(businesses), cmd.BusinessCategory, cmd.Location),
		Businesses: businesses,
		Count:      len(businesses),
	}, nil
}
