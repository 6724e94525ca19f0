package main

import (
	"embed"
	"flag"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/younwookim/parkour/internal/application/game"
	"github.com/younwookim/parkour/internal/application/replay"
	"github.com/younwookim/parkour/internal/application/scene/sandbox"
	"github.com/younwookim/parkour/internal/application/system"
	"github.com/younwookim/parkour/internal/infrastructure/config"
)

//go:embed configs
var configFS embed.FS

const stageName = "sandbox"

// newLoader reads configs from dir, or from the embedded configs when dir
// is empty
func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, err
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

func main() {
	// Parse command line flags
	configDir := flag.String("config", "", "Config directory (default: embedded configs)")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play back a recorded input file")
	watchFlag := flag.Bool("watch", false, "Reload tuning when it changes (requires -config)")
	verbose := flag.Bool("v", false, "Log mode transitions")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	loader, err := newLoader(*configDir)
	if err != nil {
		log.WithError(err).Fatal("failed to open configs")
	}
	cfg, err := loader.LoadAll()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	if err := config.CheckCrouchFits(cfg.Tuning, cfg.Sandbox.Character); err != nil {
		log.WithError(err).Fatal("invalid config")
	}

	opts := sandbox.Options{
		StageName:  stageName,
		RecordPath: *recordFlag,
		Logger:     log,
	}

	if *replayFlag != "" {
		data, err := replay.LoadReplay(*replayFlag)
		if err != nil {
			log.WithError(err).Fatal("failed to load replay")
		}
		opts.Replay = data
		opts.RecordPath = ""
	}

	if *watchFlag {
		if *configDir == "" {
			log.Warn("-watch needs -config; embedded configs cannot change")
		} else {
			watcher, err := config.NewWatcher(loader, log)
			if err != nil {
				log.WithError(err).Fatal("failed to watch configs")
			}
			defer func() { _ = watcher.Close() }()
			opts.TuningUpdates = watcher.Updates
			log.WithField("dir", loader.BasePath()).Info("watching tuning")
		}
	}

	terrain := system.LoadTerrain(&cfg.Sandbox.Terrain)
	display := cfg.Sandbox.Display
	g := game.New(sandbox.New(cfg, terrain, opts), display.ScreenWidth, display.ScreenHeight, display.Framerate)

	// Set up ebiten
	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("Parkour Sandbox")
	ebiten.SetTPS(display.Framerate)

	// Run game
	err = ebiten.RunGame(g)
	g.Close()
	if err != nil {
		log.WithError(err).Fatal("run loop failed")
	}
}
