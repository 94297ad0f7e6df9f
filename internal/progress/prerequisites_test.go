package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/stacks/internal/course"
)

func TestPrerequisites(t *testing.T) {
	all := []course.ProgressRecord{
		{ID: "a", Name: "Alpha", State: course.StateCompleted},
		{ID: "b", Name: "Beta", State: course.StateStarted},
		{ID: "c", Name: "Gamma", State: course.StateCompleted},
	}

	tests := []struct {
		name   string
		prereq []string
		want   PrerequisiteInfo
	}{
		{"none", nil, PrerequisiteInfo{Met: true}},
		{"all completed", []string{"c", "a"}, PrerequisiteInfo{HasPrerequisites: true, Names: []string{"Alpha", "Gamma"}, Met: true}},
		{"one started", []string{"a", "b"}, PrerequisiteInfo{HasPrerequisites: true, Names: []string{"Alpha", "Beta"}, Met: false}},
		{"unknown ids ignored", []string{"zzz", "a"}, PrerequisiteInfo{HasPrerequisites: true, Names: []string{"Alpha"}, Met: true}},
		{"only unknown ids", []string{"zzz"}, PrerequisiteInfo{HasPrerequisites: true, Met: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := course.ProgressRecord{ID: "x", PrerequisiteIDs: tt.prereq}
			assert.Equal(t, tt.want, Prerequisites(rec, all))
			assert.Equal(t, tt.want.Met, PrerequisitesSatisfied(rec, all))
		})
	}
}

func TestPrerequisitesDoNotGateAccess(t *testing.T) {
	all := []course.ProgressRecord{{ID: "a", Name: "Alpha", State: course.StateStarted}}
	rec := course.ProgressRecord{ID: "b", State: course.StateUnlocked, PrerequisiteIDs: []string{"a"}}

	assert.False(t, PrerequisitesSatisfied(rec, all))
	assert.True(t, Accessible(rec, now))
}
