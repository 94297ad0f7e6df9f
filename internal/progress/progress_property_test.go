package progress

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/abhisek/stacks/internal/course"
)

func generated(required, done, plain int) course.ProgressRecord {
	rec := course.ProgressRecord{ID: "m", Name: "M", Position: 1, State: course.StateStarted}
	for i := 0; i < required; i++ {
		rec.Items = append(rec.Items, course.Item{
			CompletionRequirement: &course.CompletionRequirement{Type: "must_view", Completed: i < done},
		})
	}
	for i := 0; i < plain; i++ {
		rec.Items = append(rec.Items, course.Item{})
	}
	return rec
}

// Property: percentage == round(100 * completed / total) whenever total > 0.
func TestCompletionPercentageRounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("percentage matches rounded ratio", prop.ForAll(
		func(total, done, plain int) bool {
			done %= total + 1
			rec := generated(total, done, plain)
			want := int(math.Round(100 * float64(done) / float64(total)))
			got := CompletionPercentage(rec)
			return got == want && got >= 0 && got <= 100
		},
		gen.IntRange(1, 60),
		gen.IntRange(0, 60),
		gen.IntRange(0, 5),
	))

	properties.Property("no requirements means zero", prop.ForAll(
		func(plain int) bool {
			return CompletionPercentage(generated(0, 0, plain)) == 0
		},
		gen.IntRange(0, 20),
	))

	properties.TestingRun(t)
}

// Property: locked is never accessible; otherwise only a future unlock blocks.
func TestAccessibleRule(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	states := []course.State{course.StateLocked, course.StateUnlocked, course.StateStarted, course.StateCompleted}

	properties.Property("accessibility follows state and unlock date", prop.ForAll(
		func(stateIdx int, hasUnlock bool, offsetHours int) bool {
			rec := course.ProgressRecord{State: states[stateIdx]}
			if hasUnlock {
				at := now.Add(time.Duration(offsetHours) * time.Hour)
				rec.UnlockAt = &at
			}
			got := Accessible(rec, now)
			if rec.State == course.StateLocked {
				return !got
			}
			future := hasUnlock && offsetHours > 0
			return got == !future
		},
		gen.IntRange(0, len(states)-1),
		gen.Bool(),
		gen.IntRange(-500, 500),
	))

	properties.TestingRun(t)
}
