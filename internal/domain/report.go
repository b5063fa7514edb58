package domain

import "time"

// Status classifies the outcome of one reconciliation unit
type Status string

const (
	StatusApplied   Status = "applied"
	StatusSimulated Status = "simulated"
	StatusSkipped   Status = "skipped"
	StatusWarned    Status = "warned"
	StatusFailed    Status = "failed"
)

// UnitKind distinguishes library results from task results in the report
type UnitKind string

const (
	UnitLibrary UnitKind = "library"
	UnitTask    UnitKind = "task"
)

// OperationResult is the outcome of reconciling one library or one task
type OperationResult struct {
	Kind     UnitKind `json:"kind"`
	Unit     string   `json:"unit"` // library name or task key
	Status   Status   `json:"status"`
	Detail   string   `json:"detail,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Warn appends a warning. Applied and skipped results are promoted to
// warned; simulated and failed results keep their status.
func (r *OperationResult) Warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
	if r.Status == StatusApplied || r.Status == StatusSkipped {
		r.Status = StatusWarned
	}
}

// RunReport collects one OperationResult per configured library and task,
// in document order.
type RunReport struct {
	Started time.Time         `json:"started"`
	DryRun  bool              `json:"dry_run"`
	Results []OperationResult `json:"results"`
}

// Failed reports whether any unit failed. Warnings never count.
func (r *RunReport) Failed() bool {
	for _, res := range r.Results {
		if res.Status == StatusFailed {
			return true
		}
	}
	return false
}

// Counts returns the number of results per status
func (r *RunReport) Counts() map[Status]int {
	counts := make(map[Status]int, len(r.Results))
	for _, res := range r.Results {
		counts[res.Status]++
	}
	return counts
}
