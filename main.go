package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/brawler/config"
	"github.com/milk9111/brawler/logger"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode (gizmos, prefab hot reload)")
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional)")
	configPath := flag.String("config", "", "YAML config file layered over the built-in defaults")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.L().Error("load config", "err", err)
		os.Exit(1)
	}
	if *debug {
		cfg.Debug.Gizmos = true
		cfg.Logging.Level = "debug"
	}
	log := logger.Init(cfg.LoggerConfig())

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Simulation.TickRate)

	game, err := NewGame(cfg, *levelName, *debug, log)
	if err != nil {
		log.Error("start game", "err", err)
		os.Exit(1)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Error("run game", "err", err)
		game.Close()
		os.Exit(1)
	}
}
