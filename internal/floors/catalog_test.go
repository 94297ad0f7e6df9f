package floors

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/stacks/internal/course"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func rec(id string, position int, state course.State) course.ProgressRecord {
	return course.ProgressRecord{ID: id, Name: "Module " + id, Position: position, State: state}
}

func TestNewCatalogHasOnlyLobby(t *testing.T) {
	c := NewCatalog(nil)
	require.Equal(t, 1, c.Len())

	lobby := c.CurrentFloor()
	assert.Equal(t, 0, lobby.Number)
	assert.Equal(t, KindLobby, lobby.Kind)
	assert.True(t, lobby.Accessible)
	assert.Equal(t, LobbyName, lobby.Name)
}

func TestBuildOrdersByPositionAndNumbersContiguously(t *testing.T) {
	c := NewCatalog(zap.NewNop())
	floors := c.Build([]course.ProgressRecord{
		rec("c", 30, course.StateUnlocked),
		rec("a", 10, course.StateCompleted),
		rec("b", 20, course.StateStarted),
	}, now)

	require.Len(t, floors, 4)
	for i, f := range floors {
		assert.Equal(t, i, f.Number)
	}
	assert.True(t, floors[0].IsLobby())
	assert.Equal(t, "a", floors[1].Record.ID)
	assert.Equal(t, "b", floors[2].Record.ID)
	assert.Equal(t, "c", floors[3].Record.ID)
	assert.Equal(t, KindModule, floors[3].Kind)
}

func TestBuildKeepsInputOrderForEqualPositions(t *testing.T) {
	c := NewCatalog(nil)
	floors := c.Build([]course.ProgressRecord{
		rec("second-by-input", 5, course.StateUnlocked),
		rec("first", 1, course.StateUnlocked),
		rec("third-by-input", 5, course.StateUnlocked),
	}, now)

	require.Len(t, floors, 4)
	assert.Equal(t, "first", floors[1].Record.ID)
	assert.Equal(t, "second-by-input", floors[2].Record.ID)
	assert.Equal(t, "third-by-input", floors[3].Record.ID)
}

func TestBuildDerivesAccessAndStatus(t *testing.T) {
	future := now.Add(48 * time.Hour)
	locked := rec("4", 4, course.StateLocked)
	locked.UnlockAt = &future

	c := NewCatalog(nil)
	floors := c.Build([]course.ProgressRecord{
		rec("1", 1, course.StateCompleted),
		rec("2", 2, course.StateStarted),
		rec("3", 3, course.StateUnlocked),
		locked,
		rec("5", 5, course.StateUnlocked),
	}, now)

	require.Len(t, floors, 6)
	assert.False(t, floors[4].Accessible)
	assert.Equal(t, "Unlocks Mar 12, 2026", floors[4].StatusText)
	for _, n := range []int{0, 1, 2, 3, 5} {
		assert.True(t, floors[n].Accessible, "floor %d", n)
	}
	assert.Equal(t, "Completed", floors[1].StatusText)
	assert.Equal(t, "In Progress (0%)", floors[2].StatusText)
}

func TestBuildSkipsMalformedRecordsWithWarning(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	c := NewCatalog(zap.New(core))

	floors := c.Build([]course.ProgressRecord{
		rec("ok", 1, course.StateUnlocked),
		{ID: "", Name: "No id", State: course.StateUnlocked},
		{ID: "bad", Name: "Bad", State: "archived"},
		rec("ok2", 2, course.StateUnlocked),
	}, now)

	require.Len(t, floors, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{floors[0].Number, floors[1].Number, floors[2].Number})
	assert.Equal(t, 2, logs.FilterMessage("skipping malformed record").Len())
}

func TestBuildWithNoRecordsStillHasLobby(t *testing.T) {
	c := NewCatalog(nil)
	floors := c.Build(nil, now)
	require.Len(t, floors, 1)
	assert.True(t, floors[0].IsLobby())
}

func TestRebuildResetsCurrentFloorWhenOutOfRange(t *testing.T) {
	c := NewCatalog(nil)
	c.Build([]course.ProgressRecord{
		rec("a", 1, course.StateUnlocked),
		rec("b", 2, course.StateUnlocked),
		rec("c", 3, course.StateUnlocked),
	}, now)
	require.NoError(t, c.SetCurrentFloor(3))

	c.Build([]course.ProgressRecord{rec("a", 1, course.StateUnlocked)}, now)
	assert.Equal(t, 0, c.CurrentNumber())
	assert.True(t, c.CurrentFloor().IsLobby())
}

func TestRebuildKeepsCurrentFloorWhenInRange(t *testing.T) {
	c := NewCatalog(nil)
	records := []course.ProgressRecord{
		rec("a", 1, course.StateUnlocked),
		rec("b", 2, course.StateUnlocked),
	}
	c.Build(records, now)
	require.NoError(t, c.SetCurrentFloor(2))

	c.Build(records, now)
	assert.Equal(t, 2, c.CurrentNumber())
	assert.Equal(t, "b", c.CurrentFloor().Record.ID)
}

func TestSetCurrentFloorOutOfRangeIsNoop(t *testing.T) {
	c := NewCatalog(nil)
	c.Build([]course.ProgressRecord{rec("a", 1, course.StateUnlocked)}, now)
	require.NoError(t, c.SetCurrentFloor(1))

	for _, n := range []int{-1, 2, 99} {
		err := c.SetCurrentFloor(n)
		var oor *ErrFloorOutOfRange
		require.True(t, errors.As(err, &oor), "floor %d", n)
		assert.Equal(t, n, oor.Floor)
		assert.Equal(t, 2, oor.Count)
		assert.Equal(t, 1, c.CurrentNumber())
	}
}

func TestFloorsReturnsCopy(t *testing.T) {
	c := NewCatalog(nil)
	c.Build([]course.ProgressRecord{rec("a", 1, course.StateUnlocked)}, now)

	view := c.Floors()
	view[1].Name = "mutated"
	view[0].Accessible = false

	fresh := c.Floors()
	assert.Equal(t, "Module a", fresh[1].Name)
	assert.True(t, fresh[0].Accessible)
}

func TestFloorLookup(t *testing.T) {
	c := NewCatalog(nil)
	c.Build([]course.ProgressRecord{rec("a", 1, course.StateUnlocked)}, now)

	f, ok := c.Floor(1)
	require.True(t, ok)
	assert.Equal(t, "Module a", f.Name)

	_, ok = c.Floor(2)
	assert.False(t, ok)
	_, ok = c.Floor(-1)
	assert.False(t, ok)
}

func TestRecordsFollowFloorOrder(t *testing.T) {
	c := NewCatalog(nil)
	c.Build([]course.ProgressRecord{
		rec("b", 2, course.StateUnlocked),
		rec("a", 1, course.StateUnlocked),
	}, now)

	records := c.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, "b", records[1].ID)
}

func TestFloorLabel(t *testing.T) {
	c := NewCatalog(nil)
	built := c.Build([]course.ProgressRecord{
		{ID: "a", Name: "Alpha", Position: 1, State: course.StateUnlocked},
	}, now)

	assert.Equal(t, "L", built[0].Label())
	assert.Equal(t, "1", built[1].Label())
}
