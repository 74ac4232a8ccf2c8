// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Terrain TerrainConfig `yaml:"terrain"`
	Logging LoggingConfig `yaml:"logging"`
}

// DisplayConfig holds window and rendering settings.
type DisplayConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// TerrainConfig holds heightmap and mesh generation settings.
type TerrainConfig struct {
	// Heightmap is the path to the BMP heightmap loaded at startup.
	Heightmap string `yaml:"heightmap"`
	// Divisor compresses each pixel's summed RGB bytes into a height
	// sample. Source heightmaps were authored against values of 8 or 50.
	Divisor int32 `yaml:"divisor"`
	// ColorMode selects vertex coloring: "flat", "bands" or "lit".
	ColorMode string `yaml:"color_mode"`
	// FlatColor is the RGBA color used by the flat mode.
	FlatColor []float32 `yaml:"flat_color"`
	// ScreenshotDir receives F12 captures.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Terrain: TerrainConfig{
			Heightmap:     "heightmap.bmp",
			Divisor:       8,
			ColorMode:     "bands",
			FlatColor:     []float32{0.35, 0.65, 0.30, 1.0},
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
