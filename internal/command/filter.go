package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/openhouse-crm/openhouse/internal/classifier"
	"github.com/openhouse-crm/openhouse/internal/domain/contact"
	"github.com/openhouse-crm/openhouse/internal/keywords"
)

func (d *Dispatcher) handleFilterContacts(ctx context.Context, cmd classifier.FilterContacts) (Result, error) {
	field := cmd.FilterField
	if field == "" {
		field = keywords.InferFilterField(cmd.FilterCriteria)
	}
	switch field {
	case contact.FieldBusinessSector, contact.FieldAddress, contact.FieldCompany:
	default:
		return failure(
			fmt.Sprintf("Cannot filter on %q", field),
			"Filterable fields: businessSector, address, company.",
		), nil
	}

	// The field is dynamic, so no store pushdown: full scan and substring
	// match in memory.
	all, err := d.contacts.List(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list contacts: %w", err)
	}

	needle := strings.ToLower(cmd.FilterCriteria)
	var matched []contact.Contact
	for i := range all {
		if strings.Contains(strings.ToLower(all[i].FieldValue(field)), needle) {
			matched = append(matched, all[i])
		}
	}

	return Result{
		Success:  true,
		Message:  fmt.Sprintf("Found %d contacts matching %q on %s", len(matched), cmd.FilterCriteria, field),
		Contacts: matched,
		Count:    len(matched),
	}, nil
}
