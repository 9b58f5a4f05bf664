package discovery

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/pyneda/wsdlwizard/db"
)

const (
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Report summarizes a discovery run. Listings are sorted.
type Report struct {
	ID              uuid.UUID `json:"id" yaml:"id"`
	Target          string    `json:"target" yaml:"target"`
	Strategy        string    `json:"strategy" yaml:"strategy"`
	Status          string    `json:"status" yaml:"status"`
	Found           []string  `json:"found" yaml:"found"`
	Confirmed       []string  `json:"confirmed" yaml:"confirmed"`
	CandidatesCount int       `json:"candidates_count" yaml:"candidates_count"`
	ProbedCount     int       `json:"probed_count" yaml:"probed_count"`
	FailedCount     int       `json:"failed_count" yaml:"failed_count"`
	Errors          []string  `json:"errors" yaml:"errors"`
	StartedAt       time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt      time.Time `json:"finished_at" yaml:"finished_at"`
}

// Report snapshots the current state of the run
func (r *DiscoveryRun) Report() *Report {
	confirmed := r.Confirmed()

	r.mu.Lock()
	defer r.mu.Unlock()
	status := StatusCompleted
	if r.cancelled {
		status = StatusCancelled
	}
	errs := make([]string, len(r.errors))
	copy(errs, r.errors)
	return &Report{
		ID:              r.ID,
		Target:          r.Target.Origin(),
		Strategy:        string(r.Options.Strategy),
		Status:          status,
		Found:           r.Found.Sorted(),
		Confirmed:       confirmed,
		CandidatesCount: r.Candidates.Len(),
		ProbedCount:     r.probedCount,
		FailedCount:     r.failedCount,
		Errors:          errs,
		StartedAt:       r.startedAt,
		FinishedAt:      r.finishedAt,
	}
}

// Discovered reports whether any wsdl was found or confirmed
func (r Report) Discovered() bool {
	return len(r.Found) > 0 || len(r.Confirmed) > 0
}

func (r Report) String() string {
	return fmt.Sprintf("Target: %s, Status: %s, Found: %d, Confirmed: %d, Candidates: %d, Probed: %d, Failed: %d",
		r.Target, r.Status, len(r.Found), len(r.Confirmed), r.CandidatesCount, r.ProbedCount, r.FailedCount)
}

func (r Report) Pretty() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", color.CyanString("WSDL discovery for"), r.Target)
	if r.Status == StatusCancelled {
		fmt.Fprintf(&b, "%s\n", color.YellowString("Discovery was cancelled, results are partial."))
	}

	b.WriteString("\n")
	if len(r.Found) == 0 {
		b.WriteString("No wsdl files found.\n")
	} else {
		fmt.Fprintf(&b, "%d wsdl file(s) found.\n", len(r.Found))
		for _, u := range r.Found {
			fmt.Fprintf(&b, "  %s\n", u)
		}
	}

	b.WriteString("\n")
	if len(r.Confirmed) == 0 {
		b.WriteString("No wsdl files fuzzed.\n")
	} else {
		fmt.Fprintf(&b, "%d wsdl file(s) fuzzed.\n", len(r.Confirmed))
		for _, u := range r.Confirmed {
			fmt.Fprintf(&b, "  %s\n", color.GreenString(u))
		}
	}

	fmt.Fprintf(&b, "\n%d candidate(s), %d probed, %d failed\n", r.CandidatesCount, r.ProbedCount, r.FailedCount)
	for _, e := range r.Errors {
		fmt.Fprintf(&b, "%s %s\n", color.RedString("error:"), e)
	}
	return b.String()
}

func (r Report) TableHeaders() []string {
	return []string{"Target", "Status", "Found", "Confirmed", "Candidates", "Probed", "Failed"}
}

func (r Report) TableRow() []string {
	return []string{
		r.Target,
		r.Status,
		strings.Join(r.Found, "\n"),
		strings.Join(r.Confirmed, "\n"),
		fmt.Sprintf("%d", r.CandidatesCount),
		fmt.Sprintf("%d", r.ProbedCount),
		fmt.Sprintf("%d", r.FailedCount),
	}
}

// Record converts the report into a storable discovery record
func (r Report) Record(workspaceID uint) *db.WsdlDiscovery {
	record := &db.WsdlDiscovery{
		Target:          r.Target,
		Status:          r.Status,
		Strategy:        r.Strategy,
		CandidatesCount: r.CandidatesCount,
		ProbedCount:     r.ProbedCount,
		FailedCount:     r.FailedCount,
		StartedAt:       r.StartedAt,
		FinishedAt:      r.FinishedAt,
	}
	record.ID = r.ID
	if workspaceID > 0 {
		record.WorkspaceID = &workspaceID
	}
	record.SetFound(r.Found)
	record.SetConfirmed(r.Confirmed)
	record.SetErrors(r.Errors)
	return record
}
