package config

import (
	"os"
	"path"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds renderer settings shared by every surface the framework creates.
type Config struct {
	// CellWidth and CellHeight are the logical pixel block collapsed into one
	// terminal cell by the character quantization modes.
	CellWidth  int `toml:"cell_width"`
	CellHeight int `toml:"cell_height"`

	// CharAspectRatio is the height/width ratio of a terminal character cell.
	CharAspectRatio float64 `toml:"char_aspect_ratio"`

	// Scale multiplies the logical pixel resolution of every surface.
	Scale float64 `toml:"scale"`

	// Mode is the requested graphics mode; "hires" auto-selects the best
	// pixel protocol the terminal supports.
	Mode string `toml:"mode"`

	// ShaderFPS is the default frame rate for shader surfaces.
	ShaderFPS int `toml:"shader_fps"`

	// ShaderTimeLimit bounds shader run time in seconds; zero means unlimited.
	ShaderTimeLimit float64 `toml:"shader_time_limit"`

	// FetchCacheSize bounds the image URL cache entry count.
	FetchCacheSize int `toml:"fetch_cache_size"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		CellWidth:       2,
		CellHeight:      3,
		CharAspectRatio: 2.0,
		Scale:           1.0,
		Mode:            "hires",
		ShaderFPS:       30,
		FetchCacheSize:  50,
	}
}

// Load reads the user configuration, merged over the defaults. A missing file
// is not an error; a malformed one is.
func Load() (*Config, error) {
	c := Default()
	p := getConfigFilePath()
	if p == "" {
		return c, nil
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, err
	}
	if err := c.LoadData(string(data)); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadData merges TOML data over the current values.
func (c *Config) LoadData(data string) error {
	_, err := toml.Decode(data, c)
	return err
}

func getConfigFilePath() string {
	var configDirs []string

	// useful during development or other non-standard setups.
	if dir := os.Getenv("TUIKIT_CONFIG_DIR"); dir != "" {
		if s, err := os.Stat(dir); err == nil && s.IsDir() {
			return filepath.Join(dir, "gfx.toml")
		}
	}

	// os.UserConfigDir() already does this for linux leaving darwin to handle
	if runtime.GOOS == "darwin" {
		configDirs = append(configDirs, path.Join(os.Getenv("HOME"), ".config"))
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			configDirs = append(configDirs, xdg)
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		configDirs = append(configDirs, configDir)
	}

	for _, dir := range configDirs {
		configPath := filepath.Join(dir, "tuikit", "gfx.toml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
	}
	return ""
}
