package library

import (
	lib "github.com/abhisek/stacks/internal/library"
)

// recordsLoadedMsg carries the result of an activation's fetch.
type recordsLoadedMsg lib.LoadResult

// fadeFrameMsg advances the fade with the matching id by one frame.
type fadeFrameMsg struct {
	id uint64
}

// sourceChangedMsg reports that the course records changed on disk.
type sourceChangedMsg struct{}
