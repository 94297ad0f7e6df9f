package floors

import (
	"strconv"

	"github.com/abhisek/stacks/internal/course"
	"github.com/abhisek/stacks/internal/progress"
)

// LobbyName is the display name of floor 0.
const LobbyName = "Lobby"

// Kind distinguishes the lobby from module floors.
type Kind int

const (
	KindLobby Kind = iota
	KindModule
)

func (k Kind) String() string {
	if k == KindLobby {
		return "lobby"
	}
	return "module"
}

// Floor is one navigable level of the building. Floors are values produced
// by Catalog.Build and are only meaningful for the snapshot that built them.
type Floor struct {
	Number     int
	Kind       Kind
	Name       string
	Record     *course.ProgressRecord
	Accessible bool
	StatusText string
	Progress   progress.Derived
}

// IsLobby reports whether f is the ground floor.
func (f Floor) IsLobby() bool {
	return f.Kind == KindLobby
}

// Label is the button caption of f on the elevator panel.
func (f Floor) Label() string {
	if f.IsLobby() {
		return "L"
	}
	return strconv.Itoa(f.Number)
}

func lobby() Floor {
	return Floor{
		Number:     0,
		Kind:       KindLobby,
		Name:       LobbyName,
		Accessible: true,
	}
}
