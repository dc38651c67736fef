package audit

import "time"

// Entry is an append-only record of an executed command: the originating
// command text, the resolved action, the target entity, and the outcome.
// Entries are write-only from the core's perspective; nothing reads them
// back.
type Entry struct {
	ID         string    `json:"id"`
	Command    string    `json:"command"`
	Action     string    `json:"action"`
	TargetID   string    `json:"targetId,omitempty"`
	TargetName string    `json:"targetName,omitempty"`
	Outcome    string    `json:"outcome"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
