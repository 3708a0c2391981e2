package input

import (
	"fmt"
	"strings"
)

// Action is a logical input the player can trigger.
type Action int

const (
	ActionMove Action = iota
	ActionJump
	ActionKick
	ActionUppercut
	ActionDodgeRoll

	actionCount
)

var actionNames = [actionCount]string{
	ActionMove:      "Move",
	ActionJump:      "Jump",
	ActionKick:      "Kick",
	ActionUppercut:  "Uppercut",
	ActionDodgeRoll: "DodgeRoll",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction resolves an action name, ignoring case.
func ParseAction(name string) (Action, error) {
	for a, n := range actionNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Action(a), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// Buttons lists the press/release actions in dispatch order.
func Buttons() []Action {
	return []Action{ActionJump, ActionKick, ActionUppercut, ActionDodgeRoll}
}
