package player

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"
)

var (
	ErrMissingBody        = errors.New("player: body handle is nil")
	ErrMissingProbe       = errors.New("player: ground probe is nil")
	ErrMissingGroundCheck = errors.New("player: ground check anchor is nil")
	ErrMissingSprite      = errors.New("player: sprite transform is nil")
)

// Controller translates input events into velocity, jump and facing changes
// on a physics body. The host calls Initialize once, delivers input events,
// then calls OnFixedTick once per simulation step.
type Controller struct {
	cfg      MovementConfig
	deps     Deps
	handlers []CombatHandler
	logger   *slog.Logger

	horizontalMove float64
	grounded       bool
	facingRight    bool
}

type Option func(*Controller)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithCombatHandlers registers extension points for the combat actions.
func WithCombatHandlers(handlers ...CombatHandler) Option {
	return func(c *Controller) {
		for _, h := range handlers {
			if h != nil {
				c.handlers = append(c.handlers, h)
			}
		}
	}
}

func New(cfg MovementConfig, deps Deps, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch {
	case deps.Body == nil:
		return nil, ErrMissingBody
	case deps.Probe == nil:
		return nil, ErrMissingProbe
	case deps.GroundCheck == nil:
		return nil, ErrMissingGroundCheck
	case deps.Sprite == nil:
		return nil, ErrMissingSprite
	}

	c := &Controller{
		cfg:         cfg,
		deps:        deps,
		logger:      slog.Default(),
		facingRight: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("system", "player")
	return c, nil
}

// Initialize locks the body's rotation and resets the controller to its
// spawn state.
func (c *Controller) Initialize() {
	c.deps.Body.LockRotation()
	c.horizontalMove = 0
	c.grounded = false
	c.facingRight = true
	c.logger.Debug("controller initialized",
		"move_speed", c.cfg.MoveSpeed,
		"jump_force", c.cfg.JumpForce,
		"ground_check_radius", c.cfg.GroundCheckRadius,
	)
}

// OnMove stores the horizontal component of the move axis as is.
func (c *Controller) OnMove(axis cp.Vector) {
	c.horizontalMove = axis.X
}

// OnJump launches the body when pressed while grounded. Presses in the air
// are dropped.
func (c *Controller) OnJump(pressed bool) {
	if !pressed || !c.grounded {
		return
	}
	v := c.deps.Body.Velocity()
	c.deps.Body.SetVelocity(cp.Vector{X: v.X, Y: c.cfg.JumpForce})
}

func (c *Controller) OnKick(pressed bool) {
	c.perform(ActionKick, pressed)
}

func (c *Controller) OnUppercut(pressed bool) {
	c.perform(ActionUppercut, pressed)
}

func (c *Controller) OnDodgeRoll(pressed bool) {
	c.perform(ActionDodgeRoll, pressed)
}

// OnFixedTick refreshes the ground check, drives horizontal velocity and
// updates the facing, in that order.
func (c *Controller) OnFixedTick() {
	c.grounded = c.deps.Probe.Overlap(c.deps.GroundCheck.Position(), c.cfg.GroundCheckRadius, c.deps.GroundLayer)

	v := c.deps.Body.Velocity()
	c.deps.Body.SetVelocity(cp.Vector{X: c.horizontalMove * c.cfg.MoveSpeed, Y: v.Y})

	c.flipSprite()
}

func (c *Controller) flipSprite() {
	next, changed := NextFacing(c.horizontalMove, c.facingRight)
	if !changed {
		return
	}
	c.facingRight = next
	c.deps.Sprite.SetScale(MirrorScale(c.deps.Sprite.Scale(), next))
}

func (c *Controller) perform(action Action, pressed bool) {
	if !pressed {
		return
	}
	c.logger.Info(action.Message(), "action", action.String())
	// TODO: replace with real attack resolution once hit/hurt boxes exist.
	state := c.State()
	for _, h := range c.handlers {
		h.HandleCombat(action, state)
	}
}

// DrawGizmos outlines the ground probe.
func (c *Controller) DrawGizmos(g Gizmos) {
	if g == nil {
		return
	}
	g.WireCircle(c.deps.GroundCheck.Position(), c.cfg.GroundCheckRadius, colornames.Lime)
}

func (c *Controller) State() BodyState {
	return BodyState{
		HorizontalInput: c.horizontalMove,
		Grounded:        c.grounded,
		FacingRight:     c.facingRight,
		Velocity:        c.deps.Body.Velocity(),
	}
}

func (c *Controller) Config() MovementConfig {
	return c.cfg
}

func (c *Controller) String() string {
	s := c.State()
	return fmt.Sprintf("input=%.2f grounded=%v facing_right=%v vel=(%.2f, %.2f)",
		s.HorizontalInput, s.Grounded, s.FacingRight, s.Velocity.X, s.Velocity.Y)
}
