// Package source provides the record fetchers a library session can read
// from: the built-in demo course, a JSON export on disk, or the course store.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/stacks/internal/course"
)

// ErrRecordNotFound is returned by FetchRecord when no record has the id.
var ErrRecordNotFound = errors.New("record not found")

// Fetcher loads the progress records of a course.
type Fetcher interface {
	// FetchRecords returns every valid record of the course.
	FetchRecords(ctx context.Context, courseID string) ([]course.ProgressRecord, error)

	// FetchRecord returns the record with the given id, or
	// ErrRecordNotFound.
	FetchRecord(ctx context.Context, courseID, id string) (course.ProgressRecord, error)
}

// ErrFetch wraps a failure to load a course. A session cannot continue
// after one.
type ErrFetch struct {
	CourseID string
	Err      error
}

func (e *ErrFetch) Error() string {
	return fmt.Sprintf("fetch course %q: %v", e.CourseID, e.Err)
}

func (e *ErrFetch) Unwrap() error { return e.Err }

// Find returns the record with id from records.
func Find(records []course.ProgressRecord, id string) (course.ProgressRecord, error) {
	for _, rec := range records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return course.ProgressRecord{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
}
