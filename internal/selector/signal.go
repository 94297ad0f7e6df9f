package selector

// Signal is a discrete, edge-triggered selector input.
type Signal int

const (
	SignalOpen Signal = iota
	SignalNavigateUp
	SignalNavigateDown
	SignalConfirm
	SignalCancel
)

func (s Signal) String() string {
	switch s {
	case SignalOpen:
		return "OPEN"
	case SignalNavigateUp:
		return "NAVIGATE_UP"
	case SignalNavigateDown:
		return "NAVIGATE_DOWN"
	case SignalConfirm:
		return "CONFIRM"
	case SignalCancel:
		return "CANCEL"
	default:
		return "UNKNOWN"
	}
}

// ConfirmResult describes what a CONFIRM event did.
type ConfirmResult int

const (
	// ConfirmIgnored means the selector was closed.
	ConfirmIgnored ConfirmResult = iota
	// ConfirmRejected means the highlighted floor is not accessible; the
	// selector stays open.
	ConfirmRejected
	// ConfirmStayed means the highlighted floor is the current one; the
	// selector closed without a transition.
	ConfirmStayed
	// ConfirmSelected means the selector closed and the select callback ran.
	ConfirmSelected
)

func (r ConfirmResult) String() string {
	switch r {
	case ConfirmRejected:
		return "rejected"
	case ConfirmStayed:
		return "stayed"
	case ConfirmSelected:
		return "selected"
	default:
		return "ignored"
	}
}
