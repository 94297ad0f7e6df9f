package source

import (
	"context"
	"time"

	"github.com/abhisek/stacks/internal/course"
)

// Demo serves a built-in five-module computer science course. Unlock dates
// are placed relative to the clock so the last two modules are always in
// the future.
type Demo struct {
	Latency time.Duration
	Now     func() time.Time
}

var _ Fetcher = (*Demo)(nil)

// NewDemo returns a Demo fetcher that waits latency before answering.
func NewDemo(latency time.Duration) *Demo {
	return &Demo{Latency: latency, Now: time.Now}
}

func (d *Demo) FetchRecords(ctx context.Context, courseID string) ([]course.ProgressRecord, error) {
	if d.Latency > 0 {
		timer := time.NewTimer(d.Latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	return DemoRecords(now()), nil
}

func (d *Demo) FetchRecord(ctx context.Context, courseID, id string) (course.ProgressRecord, error) {
	records, err := d.FetchRecords(ctx, courseID)
	if err != nil {
		return course.ProgressRecord{}, err
	}
	return Find(records, id)
}

// DemoRecords builds the demo course as of now.
func DemoRecords(now time.Time) []course.ProgressRecord {
	day := 24 * time.Hour
	webUnlock := now.Add(14 * day).Truncate(time.Hour)
	finalUnlock := now.Add(28 * day).Truncate(time.Hour)

	return []course.ProgressRecord{
		{
			ID:       "module_1",
			Name:     "Introduction to Computer Science",
			Position: 1,
			State:    course.StateCompleted,
			Items: []course.Item{
				required("1001", "Welcome and Course Overview", "Page", "must_view", true),
				required("1002", "Introduction Quiz", "Quiz", "min_score", true),
				required("1003", "Hello World Assignment", "Assignment", "must_submit", true),
			},
			Submissions: &course.SubmissionCounts{Graded: 3},
		},
		{
			ID:              "module_2",
			Name:            "Data Structures and Algorithms",
			Position:        2,
			State:           course.StateStarted,
			PrerequisiteIDs: []string{"module_1"},
			Items: []course.Item{
				required("2001", "Arrays and Lists", "Page", "must_view", true),
				required("2002", "Implement Stack", "Assignment", "must_submit", true),
				required("2003", "Big O Notation Quiz", "Quiz", "min_score", false),
				required("2004", "Sorting Algorithms Project", "Assignment", "must_submit", false),
				required("2005", "Data Structures Discussion", "Discussion", "must_contribute", false),
			},
			Submissions: &course.SubmissionCounts{Graded: 2, Ungraded: 1, NotSubmitted: 2},
		},
		{
			ID:              "module_3",
			Name:            "Object-Oriented Programming",
			Position:        3,
			State:           course.StateUnlocked,
			PrerequisiteIDs: []string{"module_2"},
			Items: []course.Item{
				required("3001", "Classes and Objects", "Page", "must_view", false),
				required("3002", "Inheritance Lab", "Assignment", "must_submit", false),
				required("3003", "Polymorphism Examples", "Page", "must_view", false),
				required("3004", "Design Patterns Assignment", "Assignment", "must_submit", false),
			},
			Submissions: &course.SubmissionCounts{NotSubmitted: 4},
		},
		{
			ID:              "module_4",
			Name:            "Web Development Fundamentals",
			Position:        4,
			State:           course.StateLocked,
			UnlockAt:        &webUnlock,
			PrerequisiteIDs: []string{"module_3"},
			Items: []course.Item{
				{ID: "4001", Title: "HTML Basics", Type: "Page"},
				{ID: "4002", Title: "CSS Styling Project", Type: "Assignment"},
				{ID: "4003", Title: "JavaScript Fundamentals", Type: "Quiz"},
			},
		},
		{
			ID:              "module_5",
			Name:            "Final Project",
			Position:        5,
			State:           course.StateLocked,
			UnlockAt:        &finalUnlock,
			PrerequisiteIDs: []string{"module_4"},
			Items: []course.Item{
				{ID: "5001", Title: "Project Requirements", Type: "Page"},
				{ID: "5002", Title: "Final Project Submission", Type: "Assignment"},
				{ID: "5003", Title: "Peer Review Discussion", Type: "Discussion"},
			},
		},
	}
}

func required(id, title, typ, kind string, done bool) course.Item {
	return course.Item{
		ID:    id,
		Title: title,
		Type:  typ,
		CompletionRequirement: &course.CompletionRequirement{
			Type:      kind,
			Completed: done,
		},
	}
}
