// Package progress derives display and access facts from raw module records.
// Every function here is pure: the same record (and clock) always yields the
// same answer.
package progress

import (
	"fmt"
	"time"

	"github.com/abhisek/stacks/internal/course"
)

// UnlockDateLayout is the date format used in "Unlocks <date>" status text.
const UnlockDateLayout = "Jan 2, 2006"

// Category groups module states for colouring and filtering.
type Category int

const (
	CategoryNotStarted Category = iota
	CategoryInProgress
	CategoryCompleted
	CategoryLocked
)

// String returns a human-readable name for the category.
func (c Category) String() string {
	switch c {
	case CategoryInProgress:
		return "in progress"
	case CategoryCompleted:
		return "completed"
	case CategoryLocked:
		return "locked"
	default:
		return "not started"
	}
}

// Derived bundles everything computed from one record. It is never stored.
type Derived struct {
	Accessible           bool
	CompletionPercentage int
	CompletedItemCount   int
	TotalItemCount       int
	StatusText           string
	Category             Category
}

// Derive computes all derived facts for rec at time now.
func Derive(rec course.ProgressRecord, now time.Time) Derived {
	return Derived{
		Accessible:           Accessible(rec, now),
		CompletionPercentage: CompletionPercentage(rec),
		CompletedItemCount:   CompletedItemCount(rec),
		TotalItemCount:       TotalItemCount(rec),
		StatusText:           StatusText(rec, now),
		Category:             CategoryOf(rec),
	}
}

// Accessible reports whether the module may be entered at now. Locked
// modules are never accessible; otherwise a future unlock date blocks entry.
func Accessible(rec course.ProgressRecord, now time.Time) bool {
	if rec.State == course.StateLocked {
		return false
	}
	if rec.UnlockAt != nil && now.Before(*rec.UnlockAt) {
		return false
	}
	return true
}

// TotalItemCount counts items that carry a completion requirement.
func TotalItemCount(rec course.ProgressRecord) int {
	n := 0
	for _, item := range rec.Items {
		if item.CompletionRequirement != nil {
			n++
		}
	}
	return n
}

// CompletedItemCount counts requirement-bearing items that are completed.
func CompletedItemCount(rec course.ProgressRecord) int {
	n := 0
	for _, item := range rec.Items {
		if item.CompletionRequirement != nil && item.CompletionRequirement.Completed {
			n++
		}
	}
	return n
}

// CompletionPercentage returns the rounded (half-up) share of completed
// requirement-bearing items, 0..100. Modules without requirements are 0%.
func CompletionPercentage(rec course.ProgressRecord) int {
	total := TotalItemCount(rec)
	if total == 0 {
		return 0
	}
	done := CompletedItemCount(rec)
	return (200*done + total) / (2 * total)
}

// StatusText returns the status line shown for a module.
func StatusText(rec course.ProgressRecord, now time.Time) string {
	switch rec.State {
	case course.StateCompleted:
		return "Completed"
	case course.StateLocked:
		if rec.UnlockAt != nil {
			return "Unlocks " + rec.UnlockAt.In(now.Location()).Format(UnlockDateLayout)
		}
		return "Locked"
	case course.StateStarted:
		return fmt.Sprintf("In Progress (%d%%)", CompletionPercentage(rec))
	default:
		return "Not Started"
	}
}

// CategoryOf maps the record state to its status category.
func CategoryOf(rec course.ProgressRecord) Category {
	switch rec.State {
	case course.StateCompleted:
		return CategoryCompleted
	case course.StateStarted:
		return CategoryInProgress
	case course.StateLocked:
		return CategoryLocked
	default:
		return CategoryNotStarted
	}
}
