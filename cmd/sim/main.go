// Command sim runs the player controller headless against a scripted input
// timeline and prints the body state for every tick.
package main

import (
	_ "embed"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/milk9111/brawler/config"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/ecs/entity"
	"github.com/milk9111/brawler/ecs/system"
	"github.com/milk9111/brawler/input"
	"github.com/milk9111/brawler/levels"
	"github.com/milk9111/brawler/logger"
	"github.com/milk9111/brawler/player"
)

//go:embed timeline.yaml
var defaultTimeline []byte

func main() {
	ticks := flag.Int("ticks", 150, "number of fixed ticks to simulate")
	timelinePath := flag.String("timeline", "", "input timeline YAML (defaults to the built-in demo)")
	levelName := flag.String("level", "", "level name in levels/")
	configPath := flag.String("config", "", "YAML config file layered over the built-in defaults")
	flag.Parse()

	if err := run(os.Stdout, *ticks, *timelinePath, *levelName, *configPath); err != nil {
		logger.L().Error("sim failed", "err", err)
		os.Exit(1)
	}
}

func run(out io.Writer, ticks int, timelinePath, levelName, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	// Logs go to stderr so stdout stays a clean table.
	lcfg := cfg.LoggerConfig()
	lcfg.Output = os.Stderr
	log := logger.Init(lcfg)

	data := defaultTimeline
	if timelinePath != "" {
		if data, err = os.ReadFile(timelinePath); err != nil {
			return fmt.Errorf("sim: read timeline: %w", err)
		}
	}
	steps, err := input.ParseTimeline(data)
	if err != nil {
		return err
	}
	dev, err := input.NewScriptedDevice(steps)
	if err != nil {
		return err
	}
	bindings, err := cfg.Bindings()
	if err != nil {
		return err
	}
	lvl, err := levels.Load(levelName)
	if err != nil {
		return err
	}

	w := ecs.NewWorld()
	physics := system.NewPhysicsSystem(cfg.Simulation.Gravity, cfg.Simulation.Iterations, cfg.Simulation.Dt())
	var events []string
	record := player.CombatHandlerFunc(func(a player.Action, _ player.BodyState) {
		events = append(events, a.String())
	})
	controllers := system.NewPlayerControllerSystem(physics, log, record)
	sched := ecs.NewScheduler(
		controllers.Builder(),
		system.NewInputSystem(dev, bindings, cfg.Input.DeadZone),
		controllers,
		physics,
	)

	scene := entity.NewScene(w, physics, lvl)
	if err := scene.LoadLevel(); err != nil {
		return err
	}
	if err := scene.SpawnPlayer(); err != nil {
		return err
	}
	p := scene.Player

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "tick\tinput\tgrounded\tfacing\tvx\tvy\tx\ty\tevents\t")
	for tick := 0; tick < ticks; tick++ {
		events = events[:0]
		sched.Update(w)

		pc, _ := ecs.Get(w, p, component.PlayerComponent.Kind())
		tr, _ := ecs.Get(w, p, component.TransformComponent.Kind())
		if pc == nil || pc.Controller == nil || tr == nil {
			continue
		}
		st := pc.Controller.State()
		facing := "right"
		if !st.FacingRight {
			facing = "left"
		}
		ev := "-"
		if len(events) > 0 {
			ev = strings.Join(events, ",")
		}
		fmt.Fprintf(tw, "%d\t%+.2f\t%v\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t%s\t\n",
			tick, st.HorizontalInput, st.Grounded, facing, st.Velocity.X, st.Velocity.Y, tr.X, tr.Y, ev)
	}
	return tw.Flush()
}
