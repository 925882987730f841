package camera

// EventKind identifies what happened in an Event.
type EventKind uint8

const (
	PointerDown EventKind = iota + 1
	PointerUp
	PointerMove
	PointerDoubleClick
	Wheel
	KeyDown
	KeyUp
	// Activate reports the host window gaining (Active) or losing focus.
	Activate
	// CaptureLost reports that the host stopped delivering pointer input to
	// us mid-drag, e.g. because the window lost mouse capture.
	CaptureLost
)

func (k EventKind) String() string {
	switch k {
	case PointerDown:
		return "pointer-down"
	case PointerUp:
		return "pointer-up"
	case PointerMove:
		return "pointer-move"
	case PointerDoubleClick:
		return "pointer-double-click"
	case Wheel:
		return "wheel"
	case KeyDown:
		return "key-down"
	case KeyUp:
		return "key-up"
	case Activate:
		return "activate"
	case CaptureLost:
		return "capture-lost"
	default:
		return "unknown"
	}
}

// Button is a bit mask of pointer buttons. ButtonWheel only appears in
// masks that choose the wheel as a zoom control.
type Button uint8

const (
	ButtonLeft Button = 1 << iota
	ButtonMiddle
	ButtonRight
	ButtonWheel

	buttonsPointer = ButtonLeft | ButtonMiddle | ButtonRight
)

// WheelDelta is the wheel rotation reported for one notch.
const WheelDelta = 120

// Event is a platform-neutral input event. Adapters translate host events
// into this form; cameras never see host types.
type Event struct {
	Kind EventKind

	// X and Y are pointer coordinates in pixels for pointer events.
	X, Y int

	// Button is the single button that changed for PointerDown, PointerUp
	// and PointerDoubleClick.
	Button Button

	// Wheel is the signed wheel rotation, WheelDelta per notch away from
	// the user.
	Wheel int

	Key Key

	// Active is the new focus state for Activate.
	Active bool
}
