package camera

// Key is a platform-neutral key code. Only keys that can drive a camera
// action are named; adapters map everything else to KeyUnknown.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyA
	KeyD
	KeyE
	KeyQ
	KeyS
	KeyW
	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyControl
	KeyNumpad2
	KeyNumpad3
	KeyNumpad4
	KeyNumpad6
	KeyNumpad8
	KeyNumpad9
)

// Action is a camera command bound to one or more keys.
type Action uint8

const (
	ActionStrafeLeft Action = iota
	ActionStrafeRight
	ActionMoveForward
	ActionMoveBackward
	ActionMoveUp
	ActionMoveDown
	ActionReset
	ActionControlDown

	numActions
)

func (a Action) String() string {
	switch a {
	case ActionStrafeLeft:
		return "strafe-left"
	case ActionStrafeRight:
		return "strafe-right"
	case ActionMoveForward:
		return "move-forward"
	case ActionMoveBackward:
		return "move-backward"
	case ActionMoveUp:
		return "move-up"
	case ActionMoveDown:
		return "move-down"
	case ActionReset:
		return "reset"
	case ActionControlDown:
		return "control-down"
	default:
		return "unknown"
	}
}

// Keymap binds keys to actions.
type Keymap map[Key]Action

// DefaultKeymap returns the arrow/WASD/numpad layout.
func DefaultKeymap() Keymap {
	return Keymap{
		KeyControl: ActionControlDown,

		KeyArrowLeft: ActionStrafeLeft,
		KeyA:         ActionStrafeLeft,
		KeyNumpad4:   ActionStrafeLeft,

		KeyArrowRight: ActionStrafeRight,
		KeyD:          ActionStrafeRight,
		KeyNumpad6:    ActionStrafeRight,

		KeyArrowUp: ActionMoveForward,
		KeyW:       ActionMoveForward,
		KeyNumpad8: ActionMoveForward,

		KeyArrowDown: ActionMoveBackward,
		KeyS:         ActionMoveBackward,
		KeyNumpad2:   ActionMoveBackward,

		KeyPageUp:  ActionMoveUp,
		KeyE:       ActionMoveUp,
		KeyNumpad9: ActionMoveUp,

		KeyPageDown: ActionMoveDown,
		KeyQ:        ActionMoveDown,
		KeyNumpad3:  ActionMoveDown,

		KeyHome: ActionReset,
	}
}

// KeyState records whether an action's key is held now and whether it has
// been pressed since the bit was last cleared.
type KeyState struct {
	WasDown bool
	IsDown  bool
}

// Keyboard tracks key state per action.
type Keyboard struct {
	keymap Keymap
	states [numActions]KeyState
	down   int
}

// NewKeyboard creates a keyboard using keymap, or DefaultKeymap if nil.
func NewKeyboard(keymap Keymap) Keyboard {
	if keymap == nil {
		keymap = DefaultKeymap()
	}
	return Keyboard{keymap: keymap}
}

// Press records a key-down. It reports whether the key is mapped.
// Auto-repeat presses of a key already down do not change the count.
func (k *Keyboard) Press(key Key) bool {
	a, ok := k.keymap[key]
	if !ok {
		return false
	}
	if !k.states[a].IsDown {
		k.states[a] = KeyState{WasDown: true, IsDown: true}
		k.down++
	}
	return true
}

// Release records a key-up. It reports whether the key is mapped.
func (k *Keyboard) Release(key Key) bool {
	a, ok := k.keymap[key]
	if !ok {
		return false
	}
	if k.states[a].IsDown {
		k.states[a].IsDown = false
		k.down--
	}
	return true
}

// IsDown reports whether a is held.
func (k *Keyboard) IsDown(a Action) bool {
	return k.states[a].IsDown
}

// WasDown reports whether a was pressed since ClearWasDown.
func (k *Keyboard) WasDown(a Action) bool {
	return k.states[a].WasDown
}

// ClearWasDown clears the was-down bit of a.
func (k *Keyboard) ClearWasDown(a Action) {
	k.states[a].WasDown = false
}

// State returns the state of a.
func (k *Keyboard) State(a Action) KeyState {
	return k.states[a]
}

// Down returns the number of mapped keys held.
func (k *Keyboard) Down() int {
	return k.down
}
