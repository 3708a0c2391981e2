package main

import (
	"image/color"
	"log/slog"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/brawler/config"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/entity"
	"github.com/milk9111/brawler/ecs/system"
	"github.com/milk9111/brawler/input"
	"github.com/milk9111/brawler/levels"
	"github.com/milk9111/brawler/prefabs"
)

var backgroundColor = color.NRGBA{R: 0x14, G: 0x16, B: 0x1c, A: 0xff}

type Game struct {
	cfg    *config.Config
	logger *slog.Logger

	world   *ecs.World
	sched   *ecs.Scheduler
	physics *system.PhysicsSystem
	render  *system.RenderSystem
	feed    *system.CombatFeed

	scene *entity.Scene

	gizmos  bool
	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
	watcher *prefabs.Watcher
}

func NewGame(cfg *config.Config, levelName string, debug bool, logger *slog.Logger) (*Game, error) {
	lvl, err := levels.Load(levelName)
	if err != nil {
		return nil, err
	}
	bindings, err := cfg.Bindings()
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:     cfg,
		logger:  logger.With("system", "game"),
		world:   ecs.NewWorld(),
		physics: system.NewPhysicsSystem(cfg.Simulation.Gravity, cfg.Simulation.Iterations, cfg.Simulation.Dt()),
		render:  system.NewRenderSystem(),
		feed:    system.NewCombatFeed(cfg.Simulation.TickRate),
		gizmos:  cfg.Debug.Gizmos,
	}
	g.scene = entity.NewScene(g.world, g.physics, lvl)
	controllers := system.NewPlayerControllerSystem(g.physics, logger, g.feed)
	g.sched = ecs.NewScheduler(
		controllers.Builder(),
		system.NewInputSystem(input.NewEbitenDevice(logger), bindings, cfg.Input.DeadZone),
		controllers,
		g.physics,
		g.feed,
	)

	if err := g.scene.LoadLevel(); err != nil {
		return nil, err
	}
	if err := g.scene.SpawnPlayer(); err != nil {
		return nil, err
	}
	g.logger.Info("player spawned", "entity", g.scene.Player.String())

	g.pauseUI = NewPauseUI(g)

	if debug || cfg.Debug.HotReload {
		w, err := prefabs.NewWatcher(prefabs.Dir, prefabs.Dir+"/scripts")
		if err != nil {
			g.logger.Warn("prefab hot reload disabled", "err", err)
		} else {
			g.watcher = w
			g.logger.Info("watching prefabs", "dir", prefabs.Dir)
		}
	}
	return g, nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.gizmos = !g.gizmos
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.drainReloads()
	g.sched.Update(g.world)
	return nil
}

// drainReloads applies pending prefab changes without blocking the tick.
func (g *Game) drainReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(name)
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.logger.Warn("prefab watcher", "err", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reload(name string) {
	changed, err := g.scene.Reload(name)
	if err != nil {
		g.logger.Error("hot reload failed", "file", name, "err", err)
		return
	}
	if !changed {
		g.logger.Debug("hot reload skipped, file unchanged", "file", name)
		return
	}
	g.logger.Info("hot reloaded", "file", name, "player", g.scene.Player.String())
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.render.Draw(g.world, screen)
	g.feed.Draw(screen)

	if g.gizmos {
		system.DrawPhysicsDebug(g.physics.Space(), screen)
		system.DrawGizmos(g.world, screen)
		system.DrawPlayerStateDebug(g.world, screen)
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}
