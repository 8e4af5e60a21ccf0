package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"Hollowmere/internal/audio"
	"Hollowmere/internal/behaviour"
	"Hollowmere/internal/config"
	"Hollowmere/internal/content"
	"Hollowmere/internal/engine"
	"Hollowmere/internal/input"
	"Hollowmere/internal/logger"
	"Hollowmere/internal/scene"
	"Hollowmere/internal/services"
	_ "Hollowmere/scripts"

	"go.uber.org/zap"
)

type options struct {
	configPath     string
	scenePath      string
	contentPath    string
	headlessFrames int
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "game.json", "path to game.json")
	flag.StringVar(&opts.scenePath, "scene", "", "scene file, overrides scene_path")
	flag.StringVar(&opts.contentPath, "content", "", "content table, overrides content_path")
	flag.IntVar(&opts.headlessFrames, "headless-frames", 0, "run N fixed frames without a window, then exit")
	flag.Parse()

	if err := run(opts); err != nil {
		logger.Log.Error("Hollowmere stopped", zap.Error(err))
		logger.Sync()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Sync()
}

func run(opts options) error {
	cfg, err := config.Load(findAsset(opts.configPath))
	if err != nil {
		return err
	}
	if opts.scenePath != "" {
		cfg.ScenePath = opts.scenePath
	}
	if opts.contentPath != "" {
		cfg.ContentPath = opts.contentPath
	}
	headless := opts.headlessFrames > 0

	if err := logger.InitWithConfig(cfg.LogLevel, cfg.Development); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	logger.Log.Info("Hollowmere starting",
		zap.String("scene", cfg.ScenePath),
		zap.String("content", cfg.ContentPath),
		zap.Bool("headless", headless))

	table, err := content.Load(findAsset(cfg.ContentPath))
	if err != nil {
		return err
	}

	var loader audio.VoiceLoader = audio.SilentLoader{}
	if !headless {
		loader = audio.NewEbitenLoader(cfg.SampleRate, findAsset(cfg.AssetRoot))
	}
	mixer := audio.NewMixer(loader)
	mixer.SetMasterVolume(cfg.MasterVolume)

	state := input.NewState()
	services.Set(services.Services{Audio: mixer, Content: table, Input: state})

	manager := behaviour.GlobalBehaviourManager
	eng, err := engine.New(cfg, manager, state, mixer)
	if err != nil {
		return err
	}
	defer eng.Close()

	if cfg.WatchContent && !headless {
		watchContent(eng, manager, table)
	}

	if _, err := scene.Load(findAsset(cfg.ScenePath), manager.Components()); err != nil {
		return err
	}

	if headless {
		eng.RunHeadless(opts.headlessFrames)
		return nil
	}
	return eng.Run()
}

// watchContent hot-reloads the content table; failure only costs reloading.
func watchContent(eng *engine.Engine, manager *behaviour.BehaviourManager, table *content.Table) {
	watcher, err := content.NewWatcher(filepath.Dir(table.Path()))
	if err != nil {
		logger.Log.Warn("Content hot reload disabled", zap.Error(err))
		return
	}
	hook := content.NewReloadHook(table, watcher)
	manager.Add(hook)
	eng.OnClose(hook)
}

// findAsset looks for name next to the executable first, then relative to
// the working directory. It returns name unchanged when nothing exists so
// loaders report the path the user gave.
func findAsset(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	exePath, _ := os.Executable()
	exeDir := filepath.Dir(exePath)

	paths := []string{
		filepath.Join(exeDir, name),
		name,
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return name
}
