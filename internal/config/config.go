// Package config provides Viper-based configuration loading for the game.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ContentConfig holds the content directory layout.
type ContentConfig struct {
	// RegionsDir holds region YAML files.
	RegionsDir string `mapstructure:"regions_dir"`
	// NPCsDir holds NPC definition YAML files.
	NPCsDir string `mapstructure:"npcs_dir"`
	// MonstersDir holds monster template YAML files.
	MonstersDir string `mapstructure:"monsters_dir"`
	// ItemsDir holds item definition YAML files.
	ItemsDir string `mapstructure:"items_dir"`
}

// SaveConfig holds persistence settings.
type SaveConfig struct {
	// Dir is the directory save files are written to.
	Dir string `mapstructure:"dir"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// File, when set, redirects log output to a file so the console stays
	// clean for gameplay.
	File string `mapstructure:"file"`
}

// GameConfig holds gameplay tuning.
type GameConfig struct {
	// MOTD is the message shown at session start.
	MOTD string `mapstructure:"motd"`
	// DirtyWords is the denylist checked before command dispatch.
	DirtyWords []string `mapstructure:"dirty_words"`
	// ScriptInstructionLimit caps Lua opcodes per condition evaluation.
	ScriptInstructionLimit int `mapstructure:"script_instruction_limit"`
}

// Config is the top-level application configuration.
type Config struct {
	Content ContentConfig `mapstructure:"content"`
	Save    SaveConfig    `mapstructure:"save"`
	Logging LoggingConfig `mapstructure:"logging"`
	Game    GameConfig    `mapstructure:"game"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Save.Dir == "" {
		errs = append(errs, "save.dir must not be empty")
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Game.ScriptInstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("game.script_instruction_limit must be >= 0, got %d", c.Game.ScriptInstructionLimit))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	if c.RegionsDir == "" {
		errs = append(errs, "content.regions_dir must not be empty")
	}
	if c.NPCsDir == "" {
		errs = append(errs, "content.npcs_dir must not be empty")
	}
	if c.MonstersDir == "" {
		errs = append(errs, "content.monsters_dir must not be empty")
	}
	if c.ItemsDir == "" {
		errs = append(errs, "content.items_dir must not be empty")
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

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result. A missing config file is not
// an error: defaults and environment overrides alone make a valid config.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	}

	// Environment variable overrides with LOCALMUD_ prefix
	v.SetEnvPrefix("LOCALMUD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil.
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

func setDefaults(v *viper.Viper) {
	v.SetDefault("content.regions_dir", "content/regions")
	v.SetDefault("content.npcs_dir", "content/npcs")
	v.SetDefault("content.monsters_dir", "content/monsters")
	v.SetDefault("content.items_dir", "content/items")

	v.SetDefault("save.dir", "saves")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "localmud.log")

	v.SetDefault("game.motd", "The chapel door closes behind you.")
	v.SetDefault("game.dirty_words", []string{"damn", "hell", "crap", "bastard"})
	v.SetDefault("game.script_instruction_limit", 50_000)
}
