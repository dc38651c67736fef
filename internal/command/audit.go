package command

import (
	"context"

	"github.com/openhouse-crm/openhouse/internal/domain/audit"
)

// recordAudit appends an audit entry. Audit writes are best-effort: a failure
// is logged and never fails the command that succeeded.
func (d *Dispatcher) recordAudit(ctx context.Context, command, action, targetID, targetName, outcome, detail string) {
	entry := &audit.Entry{
		ID:         d.newID(),
		Command:    command,
		Action:     action,
		TargetID:   targetID,
		TargetName: targetName,
		Outcome:    outcome,
		Detail:     detail,
		CreatedAt:  d.now(),
	}
	if err := d.audits.Log(ctx, entry); err != nil {
		d.logger.Warn("audit log write failed", "action", action, "error", err)
	}
}
