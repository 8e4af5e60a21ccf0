package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"Hollowmere/internal/input"
)

type WindowConfig struct {
	Width  int32  `json:"width"`
	Height int32  `json:"height"`
	Title  string `json:"title"`
}

// GameConfig is the runtime's game.json.
type GameConfig struct {
	Window WindowConfig `json:"window"`

	FixedTimestep float32    `json:"fixed_timestep"`
	MaxFrameTime  float32    `json:"max_frame_time"`
	ClearColor    [3]float32 `json:"clear_color"`

	ContentPath  string `json:"content_path"`
	ScenePath    string `json:"scene_path"`
	AssetRoot    string `json:"asset_root"`
	WatchContent bool   `json:"watch_content"`

	LogLevel    string `json:"log_level"`
	Development bool   `json:"development"`

	SampleRate   int     `json:"sample_rate"`
	MasterVolume float32 `json:"master_volume"`

	// Bindings maps action names to key names, e.g. "interact": "E".
	Bindings map[string]string `json:"bindings"`
}

func Default() GameConfig {
	return GameConfig{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Hollowmere",
		},
		FixedTimestep: 1.0 / 60.0,
		MaxFrameTime:  0.25,
		ClearColor:    [3]float32{0.02, 0.02, 0.03},
		ContentPath:   "assets/content.yaml",
		ScenePath:     "assets/scene.json",
		AssetRoot:     "assets",
		WatchContent:  true,
		LogLevel:      "info",
		SampleRate:    44100,
		MasterVolume:  1,
		Bindings: map[string]string{
			input.Interact.String():         "E",
			input.ToggleFlashlight.String(): "F",
			input.ChargeFlashlight.String(): "R",
			input.CycleHand.String():        "TAB",
			input.UseItem.String():          "MOUSE_LEFT",
			input.ExitHide.String():         "SPACE",
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (GameConfig, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	// Bindings in the file replace the default set rather than merge into it
	cfg.Bindings = nil
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.Bindings == nil {
		cfg.Bindings = Default().Bindings
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as indented JSON.
func Save(path string, cfg GameConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func (c GameConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.FixedTimestep <= 0 {
		return fmt.Errorf("fixed_timestep must be positive, got %v", c.FixedTimestep)
	}
	if c.MaxFrameTime < c.FixedTimestep {
		return fmt.Errorf("max_frame_time %v is below fixed_timestep %v", c.MaxFrameTime, c.FixedTimestep)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive, got %d", c.SampleRate)
	}
	if c.MasterVolume < 0 || c.MasterVolume > 1 {
		return fmt.Errorf("master_volume must be within [0, 1], got %v", c.MasterVolume)
	}
	for name, key := range c.Bindings {
		if _, err := input.ParseAction(name); err != nil {
			return err
		}
		if key == "" {
			return fmt.Errorf("binding %q has no key", name)
		}
	}
	return nil
}

// ActionBindings resolves Bindings to typed actions.
func (c GameConfig) ActionBindings() (map[input.Action]string, error) {
	out := make(map[input.Action]string, len(c.Bindings))
	for name, key := range c.Bindings {
		a, err := input.ParseAction(name)
		if err != nil {
			return nil, err
		}
		out[a] = key
	}
	return out, nil
}
