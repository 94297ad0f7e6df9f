package floors

import "fmt"

// ErrFloorOutOfRange is reported when a floor number does not exist in the
// current catalog. The catalog is left unchanged.
type ErrFloorOutOfRange struct {
	Floor int
	Count int
}

func (e *ErrFloorOutOfRange) Error() string {
	return fmt.Sprintf("floor %d out of range (catalog has %d floors)", e.Floor, e.Count)
}
