package store

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Config locates the registry on disk.
type Config interface {
	BasePath() string
}

// Settings is the launcher configuration.
type Settings struct {
	Path      string        `json:"path"`
	Grace     time.Duration `json:"grace"`
	Tick      time.Duration `json:"tick"`
	LogLimit  int           `json:"logLimit"`
	Templates string        `json:"templates"`
	Git       bool          `json:"git"`
	LogFile   string        `json:"logFile"`
	LogLevel  string        `json:"logLevel"`
	LogFormat string        `json:"logFormat"`
}

// BasePath implements Config.
func (s *Settings) BasePath() string {
	return s.Path
}

// LoadConfig reads .launcher.yaml from $LAUNCHER_CONFIG_PATH, the home
// directory or the working directory, with LAUNCHER_* environment
// overrides. A missing file is not an error.
func LoadConfig() (*Settings, error) {
	v := viper.New()
	v.SetDefault("path", "~/.launcher.db")
	v.SetDefault("grace", "5s")
	v.SetDefault("tick", "100ms")
	v.SetDefault("log_limit", 0)
	v.SetDefault("templates", "")
	v.SetDefault("git", true)
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	v.SetConfigName(".launcher") // .yaml is implicit
	v.SetEnvPrefix("LAUNCHER")
	v.AutomaticEnv()

	if override := os.Getenv("LAUNCHER_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}
	return settingsFrom(v)
}

func settingsFrom(v *viper.Viper) (*Settings, error) {
	path, err := homedir.Expand(strings.TrimSpace(v.GetString("path")))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	grace, err := cast.ToDurationE(v.Get("grace"))
	if err != nil {
		return nil, fmt.Errorf("store: grace: %w", err)
	}
	tick, err := cast.ToDurationE(v.Get("tick"))
	if err != nil {
		return nil, fmt.Errorf("store: tick: %w", err)
	}
	if tick <= 0 {
		return nil, fmt.Errorf("store: tick must be positive, got %s", tick)
	}
	limit, err := cast.ToIntE(v.Get("log_limit"))
	if err != nil {
		return nil, fmt.Errorf("store: log_limit: %w", err)
	}
	templates, err := homedir.Expand(strings.TrimSpace(v.GetString("templates")))
	if err != nil {
		return nil, fmt.Errorf("store: expand templates: %w", err)
	}
	logFile, err := homedir.Expand(strings.TrimSpace(v.GetString("log_file")))
	if err != nil {
		return nil, fmt.Errorf("store: expand log_file: %w", err)
	}

	return &Settings{
		Path:      path,
		Grace:     grace,
		Tick:      tick,
		LogLimit:  limit,
		Templates: templates,
		Git:       v.GetBool("git"),
		LogFile:   logFile,
		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
	}, nil
}
