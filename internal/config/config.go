package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const appName = "framesmith"

// Config represents the application configuration
type Config struct {
	DefaultStyle   string      `toml:"default_style"`
	FrameSet       string      `toml:"frame_set"`
	APIDelayMS     int         `toml:"api_delay_ms"`
	Workers        int         `toml:"workers"`
	LogLevel       string      `toml:"log_level"`
	PlacementsFile string      `toml:"placements_file"`
	ImageServer    ImageServer `toml:"image_server"`
	Assets         Assets      `toml:"assets"`
	Upscaler       Upscaler    `toml:"upscaler"`
}

// ImageServer configures where hosted art is stored and served from
type ImageServer struct {
	BaseURL    string `toml:"base_url"`
	PathPrefix string `toml:"path_prefix"`
	Listen     string `toml:"listen"`
	Root       string `toml:"root"`
}

// Assets points at the renderer host that serves set symbols and watermarks
type Assets struct {
	BaseURL string `toml:"base_url"`
}

// Upscaler configures art upscaling
type Upscaler struct {
	Factor int    `toml:"factor"`
	Model  string `toml:"model"`
}

// Default returns the configuration written on first run
func Default() *Config {
	return &Config{
		DefaultStyle: "m15",
		FrameSet:     "regular",
		APIDelayMS:   100,
		Workers:      4,
		LogLevel:     "info",
		ImageServer: ImageServer{
			BaseURL:    "http://localhost:4242",
			PathPrefix: "images",
			Listen:     ":4242",
			Root:       filepath.Join(GetXDGDataHome(), appName, "art"),
		},
		Assets: Assets{
			BaseURL: "http://localhost:4242",
		},
		Upscaler: Upscaler{
			Factor: 4,
			Model:  "lanczos",
		},
	}
}

// APIDelay returns the minimum spacing between catalog requests
func (c *Config) APIDelay() time.Duration {
	return time.Duration(c.APIDelayMS) * time.Millisecond
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetXDGCacheHome returns XDG_CACHE_HOME or default path
func GetXDGCacheHome() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return xdgCache
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".cache")
}

// GetStyleLibraryPath returns the directory holding user frame styles
func GetStyleLibraryPath() string {
	return filepath.Join(GetXDGDataHome(), appName, "styles")
}

// GetCacheDir returns the framesmith cache directory
func GetCacheDir() string {
	return filepath.Join(GetXDGCacheHome(), appName)
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), appName, "config.toml")
}

// LoadConfig loads the config file, creating it with defaults on first use.
// Keys missing from an existing file keep their default values.
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := Default()
		if err := save(config); err != nil {
			return nil, err
		}
		return config, nil
	}

	config := Default()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %v", err)
	}

	return config, nil
}

func save(config *Config) error {
	configPath := GetConfigFilePath()
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %v", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %v", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %v", err)
	}
	return nil
}

// GetDefaultStyle returns the default style name from config
func GetDefaultStyle() (string, error) {
	config, err := LoadConfig()
	if err != nil {
		return "", err
	}

	return config.DefaultStyle, nil
}

// SetDefaultStyle sets the default style in the config
func SetDefaultStyle(styleName string) error {
	config, err := LoadConfig()
	if err != nil {
		return err
	}

	config.DefaultStyle = styleName
	return save(config)
}
