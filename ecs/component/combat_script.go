package component

// CombatScript names a tengo script under prefabs/scripts that observes
// combat actions.
type CombatScript struct {
	Path string
}

var CombatScriptComponent = NewComponent[CombatScript]()
