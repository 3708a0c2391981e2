package script

import (
	"fmt"
	"log/slog"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/brawler/player"
	"github.com/milk9111/brawler/prefabs"
)

// Hook runs a tengo script on every combat trigger. The script sees the
// action and a copy of the body state, may keep counters in the `state` map
// across runs and reports through the `message` variable. It cannot touch
// the body.
type Hook struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
	logger   *slog.Logger
}

var _ player.CombatHandler = (*Hook)(nil)

// Load compiles a script from prefabs/scripts.
func Load(name string, logger *slog.Logger) (*Hook, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	return New(name, src, logger)
}

func New(name string, src []byte, logger *slog.Logger) (*Hook, error) {
	s := tengo.NewScript(src)
	for k, v := range map[string]any{
		"action":       "",
		"grounded":     false,
		"facing_right": true,
		"velocity_x":   0.0,
		"velocity_y":   0.0,
		"message":      "",
		"state":        map[string]any{},
	} {
		if err := s.Add(k, v); err != nil {
			return nil, fmt.Errorf("script: bind %s in %s: %w", k, name, err)
		}
	}
	s.SetImports(stdlib.GetModuleMap("fmt", "math", "text"))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Hook{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
		logger:   logger.With("system", "script", "script", name),
	}, nil
}

// Run executes the script once and returns its message.
func (h *Hook) Run(action player.Action, st player.BodyState) (string, error) {
	vars := []struct {
		name  string
		value any
	}{
		{"action", action.String()},
		{"grounded", st.Grounded},
		{"facing_right", st.FacingRight},
		{"velocity_x", st.Velocity.X},
		{"velocity_y", st.Velocity.Y},
		{"message", ""},
		{"state", h.state},
	}
	for _, v := range vars {
		if err := h.compiled.Set(v.name, v.value); err != nil {
			return "", fmt.Errorf("script: set %s: %w", v.name, err)
		}
	}
	if err := h.compiled.Run(); err != nil {
		return "", fmt.Errorf("script: run %s: %w", h.name, err)
	}
	return h.compiled.Get("message").String(), nil
}

// HandleCombat logs the script message. Script failures are logged and
// dropped so movement keeps working.
func (h *Hook) HandleCombat(action player.Action, st player.BodyState) {
	msg, err := h.Run(action, st)
	if err != nil {
		h.logger.Warn("combat script failed", "action", action.String(), "err", err)
		return
	}
	if msg != "" {
		h.logger.Info(msg, "action", action.String())
	}
}
