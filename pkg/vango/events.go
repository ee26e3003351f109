package vango

// Document event names.
const (
	EventKeyUp   = "keyup"
	EventKeyDown = "keydown"
)

// KeyboardEvent represents a keyboard event with key and modifiers.
//
//	OnKeyUp(func(e vango.KeyboardEvent) {
//	    if e.Key == vango.KeyEscape {
//	        dismiss()
//	    }
//	})
type KeyboardEvent struct {
	// The key value (e.g., "Enter", "a", "Escape")
	Key string `json:"key"`

	// The physical key code (e.g., "Enter", "KeyA", "Escape")
	Code string `json:"code,omitempty"`

	// Modifier keys
	CtrlKey  bool `json:"ctrlKey,omitempty"`
	ShiftKey bool `json:"shiftKey,omitempty"`
	AltKey   bool `json:"altKey,omitempty"`
	MetaKey  bool `json:"metaKey,omitempty"`

	// True if key is being held down (auto-repeat)
	Repeat bool `json:"repeat,omitempty"`
}

// HasModifier reports whether any modifier key was held.
func (e KeyboardEvent) HasModifier() bool {
	return e.CtrlKey || e.ShiftKey || e.AltKey || e.MetaKey
}

// MouseEvent represents a mouse event with position and modifiers.
type MouseEvent struct {
	// Position relative to viewport
	ClientX int `json:"clientX,omitempty"`
	ClientY int `json:"clientY,omitempty"`

	// Button that triggered the event (0=left, 1=middle, 2=right)
	Button int `json:"button,omitempty"`

	CtrlKey  bool `json:"ctrlKey,omitempty"`
	ShiftKey bool `json:"shiftKey,omitempty"`
	AltKey   bool `json:"altKey,omitempty"`
	MetaKey  bool `json:"metaKey,omitempty"`
}
