package selector

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: navigation is strictly cyclic for every catalog size.
func TestNavigateWrapsCyclically(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("k steps land on (start+k) mod n", prop.ForAll(
		func(n, start, steps int, up bool) bool {
			start %= n
			s := New(&stubSource{floors: accessibleFloors(n), current: start}, nil)
			if !s.Open() {
				return false
			}
			delta := 1
			if up {
				delta = -1
			}
			for i := 0; i < steps; i++ {
				s.Navigate(delta)
			}
			want := ((start+delta*steps)%n + n) % n
			return s.View().SelectedIndex == want
		},
		gen.IntRange(1, 30),
		gen.IntRange(0, 29),
		gen.IntRange(0, 100),
		gen.Bool(),
	))

	properties.Property("one step past either end wraps", prop.ForAll(
		func(n int) bool {
			s := New(&stubSource{floors: accessibleFloors(n), current: n - 1}, nil)
			s.Open()
			s.Navigate(1)
			if s.View().SelectedIndex != 0 {
				return false
			}
			s.Navigate(-1)
			return s.View().SelectedIndex == n-1
		},
		gen.IntRange(1, 30),
	))

	properties.TestingRun(t)
}
