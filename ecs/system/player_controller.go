package system

import (
	"log/slog"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/player"
	"github.com/milk9111/brawler/script"
)

// PlayerControllerSystem builds a player.Controller for each player entity
// once its physics body exists, then runs its fixed tick.
type PlayerControllerSystem struct {
	probe    player.GroundProbe
	handlers []player.CombatHandler
	logger   *slog.Logger
	failed   map[ecs.Entity]bool
}

// NewPlayerControllerSystem wires every controller to probe. handlers are
// registered on each controller in addition to the entity's combat script.
func NewPlayerControllerSystem(probe player.GroundProbe, logger *slog.Logger, handlers ...player.CombatHandler) *PlayerControllerSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlayerControllerSystem{
		probe:    probe,
		handlers: handlers,
		logger:   logger,
		failed:   make(map[ecs.Entity]bool),
	}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if p == nil || w == nil {
		return
	}
	p.buildPending(w)

	for _, e := range p.players(w) {
		if pc, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok && pc.Controller != nil {
			pc.Controller.OnFixedTick()
		}
	}
}

// Builder returns a system that only builds pending controllers. Scheduled
// ahead of the InputSystem it lets a fresh controller receive the events of
// the tick it was built on.
func (p *PlayerControllerSystem) Builder() ecs.System {
	return controllerBuilder{p: p}
}

type controllerBuilder struct {
	p *PlayerControllerSystem
}

func (b controllerBuilder) Update(w *ecs.World) {
	if b.p == nil || w == nil {
		return
	}
	b.p.buildPending(w)
}

func (p *PlayerControllerSystem) players(w *ecs.World) []ecs.Entity {
	return w.Query(
		component.PlayerComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		component.TransformComponent.Kind(),
	)
}

func (p *PlayerControllerSystem) buildPending(w *ecs.World) {
	for _, e := range p.players(w) {
		pc, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
		if !ok || pc.Controller != nil || p.failed[e] {
			continue
		}
		ctrl, err := p.build(w, e, pc.Movement)
		if err != nil {
			p.failed[e] = true
			p.logger.Error("player controller build failed", "entity", e.String(), "err", err)
			continue
		}
		if ctrl == nil {
			continue
		}
		pc.Controller = ctrl
	}

	for e := range p.failed {
		if !w.IsAlive(e) {
			delete(p.failed, e)
		}
	}
}

// build returns nil without error while the body is not created yet.
func (p *PlayerControllerSystem) build(w *ecs.World, e ecs.Entity, cfg player.MovementConfig) (*player.Controller, error) {
	bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || bodyComp.Body == nil {
		return nil, nil
	}

	deps := player.Deps{
		Body:  bodyHandle{body: bodyComp.Body},
		Probe: p.probe,
		GroundCheck: footAnchor{
			body:   bodyComp.Body,
			offset: cp.Vector{X: 0, Y: -bodyComp.Height / 2},
		},
		GroundLayer: player.LayerMask(component.LayerGround),
		Sprite:      transformScale{w: w, e: e},
	}
	if gc, ok := ecs.Get(w, e, component.GroundCheckComponent.Kind()); ok {
		deps.GroundCheck = footAnchor{body: bodyComp.Body, offset: cp.Vector{X: gc.OffsetX, Y: gc.OffsetY}}
		if gc.Mask != 0 {
			deps.GroundLayer = player.LayerMask(gc.Mask)
		}
	}

	handlers := append([]player.CombatHandler(nil), p.handlers...)
	if cs, ok := ecs.Get(w, e, component.CombatScriptComponent.Kind()); ok && cs.Path != "" {
		hook, err := script.Load(cs.Path, p.logger)
		if err != nil {
			// Movement does not depend on the script.
			p.logger.Warn("combat script unavailable", "entity", e.String(), "err", err)
		} else {
			handlers = append(handlers, hook)
		}
	}

	ctrl, err := player.New(cfg, deps,
		player.WithLogger(p.logger.With("entity", e.String())),
		player.WithCombatHandlers(handlers...),
	)
	if err != nil {
		return nil, err
	}
	ctrl.Initialize()
	return ctrl, nil
}
