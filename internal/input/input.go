package input

import (
	"fmt"
	"strings"
)

// Action is a gameplay input independent of the physical key bound to it.
type Action int

const (
	Interact Action = iota
	ToggleFlashlight
	ChargeFlashlight
	CycleHand
	UseItem
	ExitHide
	actionCount
)

var actionNames = [actionCount]string{
	Interact:         "interact",
	ToggleFlashlight: "toggle_flashlight",
	ChargeFlashlight: "charge_flashlight",
	CycleHand:        "cycle_hand",
	UseItem:          "use_item",
	ExitHide:         "exit_hide",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction resolves a config name such as "toggle_flashlight".
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range actionNames {
		if n == name {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("unknown input action %q", name)
}

// Actions lists every action in declaration order.
func Actions() []Action {
	out := make([]Action, 0, actionCount)
	for a := Action(0); a < actionCount; a++ {
		out = append(out, a)
	}
	return out
}

// Reader is the polling surface behaviours read from.
type Reader interface {
	Pressed(a Action) bool  // went down this frame
	Held(a Action) bool     // down this frame
	Released(a Action) bool // went up this frame
}

// State holds current and previous action states. A poller calls Set for
// each action and Advance once per frame before behaviours run.
type State struct {
	next    [actionCount]bool
	current [actionCount]bool
	prev    [actionCount]bool
}

func NewState() *State {
	return &State{}
}

// Set records the raw state of an action for the upcoming frame.
func (s *State) Set(a Action, down bool) {
	if a < 0 || a >= actionCount {
		return
	}
	s.next[a] = down
}

// Advance makes the recorded states current.
func (s *State) Advance() {
	s.prev = s.current
	s.current = s.next
}

func (s *State) Pressed(a Action) bool {
	if a < 0 || a >= actionCount {
		return false
	}
	return s.current[a] && !s.prev[a]
}

func (s *State) Held(a Action) bool {
	if a < 0 || a >= actionCount {
		return false
	}
	return s.current[a]
}

func (s *State) Released(a Action) bool {
	if a < 0 || a >= actionCount {
		return false
	}
	return !s.current[a] && s.prev[a]
}

// Press is a test and scripting helper: the action is held for the next frame.
func (s *State) Press(a Action) {
	s.Set(a, true)
	s.Advance()
}

// Release lets go of the action on the next frame.
func (s *State) Release(a Action) {
	s.Set(a, false)
	s.Advance()
}
