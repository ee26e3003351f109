package modal

// TransitionKind describes how the slot changed.
type TransitionKind uint8

const (
	// Opened: the slot went from empty to occupied.
	Opened TransitionKind = iota + 1
	// Replaced: a new modal was opened over an occupied slot.
	Replaced
	// Closed: the slot was emptied.
	Closed
)

func (k TransitionKind) String() string {
	switch k {
	case Opened:
		return "opened"
	case Replaced:
		return "replaced"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// CloseReason records what emptied the slot. It is empty for Opened and
// Replaced transitions.
type CloseReason string

const (
	ReasonCallback     CloseReason = "callback"
	ReasonHandle       CloseReason = "handle"
	ReasonEscape       CloseReason = "escape"
	ReasonUnmount      CloseReason = "unmount"
	ReasonProgrammatic CloseReason = "programmatic"
)

// Transition is delivered to slot observers after every state change.
type Transition struct {
	Kind   TransitionKind
	Reason CloseReason
	// Generation of the modal that was opened or closed.
	Generation uint64
}
