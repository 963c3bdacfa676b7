package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tuxgo/tuxgo/internal/config"
	"github.com/tuxgo/tuxgo/internal/core/event"
	coresys "github.com/tuxgo/tuxgo/internal/core/system"
	"github.com/tuxgo/tuxgo/internal/hostapi"
	"github.com/tuxgo/tuxgo/internal/persist"
	"github.com/tuxgo/tuxgo/internal/savegame"
	"github.com/tuxgo/tuxgo/internal/scripting"
	"github.com/tuxgo/tuxgo/internal/system"
	"github.com/tuxgo/tuxgo/internal/video"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the window and run the game",
	RunE:  runGame,
}

func runGame(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	// 1. Save store
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	store, err := persist.OpenSaveStore(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("save store: %w", err)
	}
	defer store.Close()
	saves := savegame.NewManager(store, log)

	// 2. Window
	plat, err := openPlatform(cfg.Video.Backend)
	if err != nil {
		return fmt.Errorf("video backend: %w", err)
	}
	defer plat.close()

	videoMgr := video.NewManager(plat.backend, &cfg.Video, log)
	if err := videoMgr.CreateWindow(video.FlagOpenGL); err != nil {
		return err
	}
	defer videoMgr.Close()
	videoMgr.ApplyVideoMode()
	if err := videoMgr.SetGamma(cfg.Video.Gamma); err != nil {
		log.Warn("couldn't set gamma", zap.Float32("gamma", cfg.Video.Gamma), zap.Error(err))
	}

	// 3. Scripts
	engine, err := scripting.New(cfg.Scripting, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer engine.Close()

	root := engine.Root()
	hostapi.RegisterVideo(engine)
	if err := hostapi.ExposeVideo(root, videoMgr, &cfg.Video); err != nil {
		return fmt.Errorf("expose video: %w", err)
	}
	if err := root.GetOrCreateTableEntry("config"); err != nil {
		return err
	}
	hostapi.StoreVideoConfig(root, &cfg.Video)
	root.EndTable("config")

	if cfg.Autosave.Enabled {
		if err := saves.Load(ctx, cfg.Autosave.Slot, root, cfg.Autosave.Table); err != nil {
			log.Info("no autosave restored", zap.String("slot", cfg.Autosave.Slot), zap.Error(err))
		}
	}
	if err := engine.LoadScripts(); err != nil {
		return fmt.Errorf("load scripts: %w", err)
	}

	// 4. Systems
	bus := event.NewBus()
	event.Subscribe(bus, videoMgr.HandleResize)

	runner := coresys.NewRunner()
	input := system.NewInputSystem(plat.events, bus, log)
	runner.Register(input)
	runner.Register(system.NewEventSystem(bus))
	runner.Register(system.NewScriptSystem(engine))
	var autosave *system.AutosaveSystem
	if cfg.Autosave.Enabled {
		autosave = system.NewAutosaveSystem(saves, root, cfg.Autosave.Slot, cfg.Autosave.Table, cfg.Autosave.Interval, log)
		runner.Register(autosave)
	}

	// 5. Frame loop
	log.Info("frame loop started", zap.String("backend", plat.backend.Name()), zap.Int("fps", frameRate))
	last := time.Now()
	err = plat.run(func() error {
		now := time.Now()
		runner.Frame(now.Sub(last))
		last = now
		if input.Quit() {
			return errQuit
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("frame loop: %w", err)
	}

	// 6. Shutdown
	if autosave != nil {
		autosave.SaveNow()
	}
	syncConfig(root, cfg, log)
	if err := config.Save(configPath(), cfg); err != nil {
		log.Warn("couldn't save config", zap.Error(err))
	}
	log.Info("stopped")
	return nil
}

// syncConfig folds script edits of config.video back into cfg. A broken table
// keeps the host's values.
func syncConfig(root *scripting.Scope, cfg *config.Config, log *zap.Logger) {
	if err := root.GetTableEntry("config"); err != nil {
		log.Warn("config table missing", zap.Error(err))
		return
	}
	defer root.EndTable("config")
	if err := hostapi.ReadVideoConfig(root, &cfg.Video); err != nil {
		log.Warn("ignoring script video config", zap.Error(err))
	}
}
