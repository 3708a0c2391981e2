package player

// Action names a combat trigger.
type Action int

const (
	ActionKick Action = iota + 1
	ActionUppercut
	ActionDodgeRoll
)

func (a Action) String() string {
	switch a {
	case ActionKick:
		return "kick"
	case ActionUppercut:
		return "uppercut"
	case ActionDodgeRoll:
		return "dodge_roll"
	default:
		return "unknown"
	}
}

// Message is the diagnostic line emitted when the action is triggered.
func (a Action) Message() string {
	switch a {
	case ActionKick:
		return "PERFORM KICK!"
	case ActionUppercut:
		return "PERFORM HEAVY UPPERCUT!"
	case ActionDodgeRoll:
		return "PERFORM DODGE-ROLL!"
	default:
		return ""
	}
}

// CombatHandler is notified on the press edge of a combat action. Handlers
// observe the state; they do not own any combat mechanics.
type CombatHandler interface {
	HandleCombat(action Action, state BodyState)
}

type CombatHandlerFunc func(action Action, state BodyState)

func (f CombatHandlerFunc) HandleCombat(action Action, state BodyState) {
	f(action, state)
}
