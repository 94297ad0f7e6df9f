package progress

import (
	"fmt"
	"strings"

	"github.com/abhisek/stacks/internal/course"
)

// HasUngradedWork reports whether any submission is waiting on a grade.
func HasUngradedWork(rec course.ProgressRecord) bool {
	return rec.Submissions != nil && rec.Submissions.Ungraded > 0
}

// HasMissingSubmissions reports whether any assignment is still unsubmitted.
func HasMissingSubmissions(rec course.ProgressRecord) bool {
	return rec.Submissions != nil && rec.Submissions.NotSubmitted > 0
}

// SubmissionSummary renders submission statistics as a short phrase, e.g.
// "2 graded, 1 pending, 2 missing".
func SubmissionSummary(rec course.ProgressRecord) string {
	stats := rec.Submissions
	if stats == nil {
		return "No submission data"
	}
	if stats.Total() == 0 {
		return "No assignments"
	}

	var parts []string
	if stats.Graded > 0 {
		parts = append(parts, fmt.Sprintf("%d graded", stats.Graded))
	}
	if stats.Ungraded > 0 {
		parts = append(parts, fmt.Sprintf("%d pending", stats.Ungraded))
	}
	if stats.NotSubmitted > 0 {
		parts = append(parts, fmt.Sprintf("%d missing", stats.NotSubmitted))
	}
	return strings.Join(parts, ", ")
}
