package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "todo.db"
	DefaultLogName        = "today.log"
	DefaultDateLayout     = "Monday, January 2, 2006"

	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "TODAY_CONFIG"
)

type Keymap struct {
	Quit            string `toml:"quit" validate:"required"`
	Add             string `toml:"add" validate:"required"`
	Up              string `toml:"up" validate:"required"`
	Down            string `toml:"down" validate:"required"`
	Toggle          string `toml:"toggle" validate:"required"`
	Delete          string `toml:"delete" validate:"required"`
	Confirm         string `toml:"confirm" validate:"required"`
	Submit          string `toml:"submit" validate:"required"`
	Cancel          string `toml:"cancel" validate:"required"`
	ClearCompleted  string `toml:"clear_completed" validate:"required"`
	FilterAll       string `toml:"filter_all" validate:"required"`
	FilterActive    string `toml:"filter_active" validate:"required"`
	FilterCompleted string `toml:"filter_completed" validate:"required"`
	NextFilter      string `toml:"next_filter" validate:"required"`
}

type Config struct {
	Backend       string `toml:"backend" validate:"oneof=sqlite bolt"`
	DBPath        string `toml:"db_path" validate:"required"`
	LogPath       string `toml:"log_path"`
	ConfirmDelete bool   `toml:"confirm_delete"`
	DateLayout    string `toml:"date_layout" validate:"required"`
	Keys          Keymap `toml:"keys"`
}

// ResolveConfigPath returns $TODAY_CONFIG when set, otherwise config.toml
// under the user's config directory. It falls back to the working directory
// when no config directory is known.
func ResolveConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, "today", DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing the defaults there first if
// the file does not exist. Relative db and log paths are resolved against the
// config file's directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return resolvePaths(path, cfg), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if cfg.Backend == "" {
		cfg.Backend = "sqlite"
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return resolvePaths(path, cfg), nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func resolvePaths(configPath string, cfg Config) Config {
	base := filepath.Dir(configPath)
	if !filepath.IsAbs(cfg.DBPath) {
		cfg.DBPath = filepath.Join(base, cfg.DBPath)
	}
	if cfg.LogPath != "" && !filepath.IsAbs(cfg.LogPath) {
		cfg.LogPath = filepath.Join(base, cfg.LogPath)
	}
	return cfg
}

func defaultConfig() Config {
	return Config{
		Backend:       "sqlite",
		DBPath:        DefaultDBName,
		LogPath:       DefaultLogName,
		ConfirmDelete: true,
		DateLayout:    DefaultDateLayout,
		Keys: Keymap{
			Quit:            "q",
			Add:             "a",
			Up:              "k",
			Down:            "j",
			Toggle:          " ",
			Delete:          "d",
			Confirm:         "enter",
			Submit:          "ctrl+s",
			Cancel:          "esc",
			ClearCompleted:  "c",
			FilterAll:       "1",
			FilterActive:    "2",
			FilterCompleted: "3",
			NextFilter:      "tab",
		},
	}
}
