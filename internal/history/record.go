// Package history keeps a local trail of changes made to metrics and groups.
package history

import "time"

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Actions recorded in the history.
const (
	ActionCreate   = "create"
	ActionAppend   = "append"
	ActionRename   = "rename"
	ActionUnits    = "units"
	ActionCorrect  = "correct"
	ActionRemember = "remember"
	ActionForget   = "forget"
)

// Record is one persisted history event.
type Record struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Metric    string    `json:"metric,omitempty"`
	Mode      string    `json:"mode,omitempty"`
	Outcome   string    `json:"outcome"`
	Detail    string    `json:"detail,omitempty"`
}
