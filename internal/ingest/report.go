package ingest

import (
	"fmt"
	"sort"
	"strings"
)

// Report tallies one ingestion pass: rows stored, rows skipped, and a count
// per skip reason.
type Report struct {
	Stored  int
	Skipped int
	Reasons map[string]int
}

func NewReport() *Report {
	return &Report{Reasons: make(map[string]int)}
}

// Store records n stored rows.
func (r *Report) Store(n int) {
	r.Stored += n
}

// Skip records one skipped row under the given reason.
func (r *Report) Skip(reason string) {
	r.Skipped++
	r.Reasons[reason]++
}

// SkipN records n skipped rows under the given reason.
func (r *Report) SkipN(reason string, n int) {
	if n <= 0 {
		return
	}
	r.Skipped += n
	r.Reasons[reason] += n
}

// Merge folds another report into this one.
func (r *Report) Merge(other *Report) {
	r.Stored += other.Stored
	r.Skipped += other.Skipped
	for reason, n := range other.Reasons {
		r.Reasons[reason] += n
	}
}

// Summary renders a one-line report, listing skip reasons alphabetically.
func (r *Report) Summary() string {
	if r.Skipped == 0 {
		return fmt.Sprintf("%d stored", r.Stored)
	}
	reasons := make([]string, 0, len(r.Reasons))
	for reason := range r.Reasons {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	parts := make([]string, 0, len(reasons))
	for _, reason := range reasons {
		parts = append(parts, fmt.Sprintf("%s: %d", reason, r.Reasons[reason]))
	}
	return fmt.Sprintf("%d stored, %d skipped (%s)", r.Stored, r.Skipped, strings.Join(parts, ", "))
}
