package course

import (
	"time"
)

// State is the progress state of a course module.
type State string

const (
	StateLocked    State = "locked"
	StateUnlocked  State = "unlocked"
	StateStarted   State = "started"
	StateCompleted State = "completed"
)

// Valid reports whether s is one of the known module states.
func (s State) Valid() bool {
	switch s {
	case StateLocked, StateUnlocked, StateStarted, StateCompleted:
		return true
	}
	return false
}

// CompletionRequirement marks an item that counts toward module completion.
type CompletionRequirement struct {
	Type      string `json:"type,omitempty"`
	Completed bool   `json:"completed"`
}

// Item is a single entry inside a module (page, quiz, assignment...).
type Item struct {
	ID                    string                 `json:"id"`
	Title                 string                 `json:"title"`
	Type                  string                 `json:"type"`
	CompletionRequirement *CompletionRequirement `json:"completionRequirement,omitempty"`
}

// SubmissionCounts summarizes assignment submissions for a module.
type SubmissionCounts struct {
	Graded       int `json:"graded"`
	Ungraded     int `json:"ungraded"`
	NotSubmitted int `json:"notSubmitted"`
}

// Total returns the number of submissions across all buckets.
func (c SubmissionCounts) Total() int {
	return c.Graded + c.Ungraded + c.NotSubmitted
}

// ProgressRecord is one module of a course as reported by the data source.
// Records are read-only snapshots; nothing in this module mutates them.
type ProgressRecord struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Position        int               `json:"position"`
	State           State             `json:"state"`
	UnlockAt        *time.Time        `json:"unlockAt,omitempty"`
	PrerequisiteIDs []string          `json:"prerequisiteModuleIds,omitempty"`
	Items           []Item            `json:"moduleItems,omitempty"`
	Submissions     *SubmissionCounts `json:"submissionStatistics,omitempty"`
}

// Validate checks the fields every record must carry.
func (r ProgressRecord) Validate() error {
	switch {
	case r.ID == "":
		return errMissing("id")
	case r.Name == "":
		return errMissing("name")
	case r.State == "":
		return errMissing("state")
	case !r.State.Valid():
		return errUnknownState(r.State)
	}
	return nil
}
