// Package floors maps a snapshot of course records onto the numbered floors
// of the library building.
package floors

import (
	"cmp"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/stacks/internal/course"
	"github.com/abhisek/stacks/internal/progress"
)

// Catalog holds the ordered floor list for the current record snapshot and
// the current-floor pointer.
//
// Floor numbers are always contiguous 0..N with the lobby at 0, and the
// pointer always indexes a valid floor.
type Catalog struct {
	floors  []Floor
	records []course.ProgressRecord
	current int
	log     *zap.Logger
}

// NewCatalog returns a catalog containing only the lobby.
func NewCatalog(log *zap.Logger) *Catalog {
	if log == nil {
		log = zap.NewNop()
	}
	return &Catalog{
		floors: []Floor{lobby()},
		log:    log,
	}
}

// Build replaces the floor list with one derived from records. Records are
// ordered by ascending Position; ties keep their input order. Malformed
// records are skipped with a warning. If the current floor no longer exists
// the pointer falls back to the lobby.
//
// The returned slice is a copy and may be retained by the caller.
func (c *Catalog) Build(records []course.ProgressRecord, now time.Time) []Floor {
	valid := make([]course.ProgressRecord, 0, len(records))
	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			c.log.Warn("skipping malformed record",
				zap.Int("index", i),
				zap.String("id", rec.ID),
				zap.Error(&course.ErrInvalidRecord{Index: i, ID: rec.ID, Reason: err}),
			)
			continue
		}
		valid = append(valid, rec)
	}

	slices.SortStableFunc(valid, func(a, b course.ProgressRecord) int {
		return cmp.Compare(a.Position, b.Position)
	})

	built := make([]Floor, 0, len(valid)+1)
	built = append(built, lobby())
	for i := range valid {
		rec := &valid[i]
		derived := progress.Derive(*rec, now)
		built = append(built, Floor{
			Number:     i + 1,
			Kind:       KindModule,
			Name:       rec.Name,
			Record:     rec,
			Accessible: derived.Accessible,
			StatusText: derived.StatusText,
			Progress:   derived,
		})
	}

	c.floors = built
	c.records = valid
	if c.current >= len(c.floors) {
		c.current = 0
	}

	c.log.Debug("floor catalog built",
		zap.Int("records", len(records)),
		zap.Int("floors", len(built)),
		zap.Int("current", c.current),
	)

	return c.Floors()
}

// Floors returns a copy of the ordered floor list.
func (c *Catalog) Floors() []Floor {
	return slices.Clone(c.floors)
}

// Records returns the valid records of the last build in floor order.
func (c *Catalog) Records() []course.ProgressRecord {
	return slices.Clone(c.records)
}

// Len returns the number of floors, lobby included.
func (c *Catalog) Len() int {
	return len(c.floors)
}

// Floor returns floor n and whether it exists.
func (c *Catalog) Floor(n int) (Floor, bool) {
	if n < 0 || n >= len(c.floors) {
		return Floor{}, false
	}
	return c.floors[n], true
}

// CurrentFloor returns the floor under the current pointer.
func (c *Catalog) CurrentFloor() Floor {
	return c.floors[c.current]
}

// CurrentNumber returns the current floor number.
func (c *Catalog) CurrentNumber() int {
	return c.current
}

// SetCurrentFloor moves the pointer to floor n. Out-of-range numbers leave
// the pointer untouched and return *ErrFloorOutOfRange; callers that want the
// lenient behaviour may ignore the error.
func (c *Catalog) SetCurrentFloor(n int) error {
	if n < 0 || n >= len(c.floors) {
		return &ErrFloorOutOfRange{Floor: n, Count: len(c.floors)}
	}
	c.current = n
	return nil
}
