package progress

import "github.com/abhisek/stacks/internal/course"

// PrerequisiteInfo describes a module's prerequisites within a course.
type PrerequisiteInfo struct {
	HasPrerequisites bool
	Names            []string
	Met              bool
}

// PrerequisitesSatisfied reports whether every referenced prerequisite in
// all is completed. Ids that match no record are ignored.
//
// This does not feed Accessible: a record's own state is assumed to already
// reflect prerequisite gating upstream.
func PrerequisitesSatisfied(rec course.ProgressRecord, all []course.ProgressRecord) bool {
	return Prerequisites(rec, all).Met
}

// Prerequisites resolves rec's prerequisite ids against all. Names follow
// the order of all.
func Prerequisites(rec course.ProgressRecord, all []course.ProgressRecord) PrerequisiteInfo {
	if len(rec.PrerequisiteIDs) == 0 {
		return PrerequisiteInfo{Met: true}
	}

	wanted := make(map[string]bool, len(rec.PrerequisiteIDs))
	for _, id := range rec.PrerequisiteIDs {
		wanted[id] = true
	}

	info := PrerequisiteInfo{HasPrerequisites: true, Met: true}
	for _, other := range all {
		if !wanted[other.ID] {
			continue
		}
		info.Names = append(info.Names, other.Name)
		if other.State != course.StateCompleted {
			info.Met = false
		}
	}
	return info
}
