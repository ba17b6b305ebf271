// Package config provides Viper-based configuration loading for the game.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/forgottenship/game/internal/game/world"
)

// GameConfig holds the world content and player settings.
type GameConfig struct {
	// DeckPath is the YAML file describing the ship's rooms and doors.
	DeckPath string `mapstructure:"deck_path"`
	// ItemsPath is the YAML file describing the item catalog.
	ItemsPath string `mapstructure:"items_path"`
	// PlayerName is the explorer's display name; empty uses the default.
	PlayerName string `mapstructure:"player_name"`
	// Spawn is the starting coordinate for a fresh game, e.g. "I5".
	Spawn string `mapstructure:"spawn"`
	// Capacity is the pack's carry capacity.
	Capacity int `mapstructure:"capacity"`
}

// SpawnCoordinate parses the configured spawn.
//
// Precondition: the config has been validated.
func (g GameConfig) SpawnCoordinate() (world.Coordinate, error) {
	return world.ParseCoordinate(g.Spawn)
}

// SaveConfig holds the persistence document paths.
type SaveConfig struct {
	// SavePath is the player save document.
	SavePath string `mapstructure:"save_path"`
	// SettingsPath is the world settings document.
	SettingsPath string `mapstructure:"settings_path"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Path is the log file; empty logs to stderr.
	Path string `mapstructure:"path"`
}

// Config is the top-level application configuration.
type Config struct {
	Game    GameConfig    `mapstructure:"game"`
	Save    SaveConfig    `mapstructure:"save"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateSave(c.Save); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.DeckPath == "" {
		errs = append(errs, "game.deck_path must not be empty")
	}
	if g.ItemsPath == "" {
		errs = append(errs, "game.items_path must not be empty")
	}
	if _, err := world.ParseCoordinate(g.Spawn); err != nil {
		errs = append(errs, fmt.Sprintf("game.spawn: %v", err))
	}
	if g.Capacity < 1 {
		errs = append(errs, fmt.Sprintf("game.capacity must be >= 1, got %d", g.Capacity))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateSave(s SaveConfig) error {
	var errs []string
	if s.SavePath == "" {
		errs = append(errs, "save.save_path must not be empty")
	}
	if s.SettingsPath == "" {
		errs = append(errs, "save.settings_path must not be empty")
	}
	if s.SavePath != "" && s.SavePath == s.SettingsPath {
		errs = append(errs, "save.save_path and save.settings_path must differ")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with SHIP_ prefix
	v.SetEnvPrefix("SHIP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the built-in configuration, used when no config file is
// given.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("building default config: %v", err))
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.deck_path", "content/ship.yaml")
	v.SetDefault("game.items_path", "content/items.yaml")
	v.SetDefault("game.player_name", "")
	v.SetDefault("game.spawn", "I5")
	v.SetDefault("game.capacity", 5)

	v.SetDefault("save.save_path", "savegame.json")
	v.SetDefault("save.settings_path", "settings.json")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.path", "")
}
