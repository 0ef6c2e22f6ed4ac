// Package file persists game state as whole YAML documents on disk. Saves
// are atomic: a document is written to a temp file in the target directory
// and renamed into place, so a crash mid-write never leaves a torn save.
package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/localmud/localmud/internal/game/player"
)

const (
	playerFile   = "player.yaml"
	settingsFile = "settings.yaml"
)

// Settings are the account-level options persisted alongside the character.
type Settings struct {
	// MaxHPBonus grants extra maximum hit points at character creation.
	MaxHPBonus bool `yaml:"max_hp_bonus"`
	// VerboseTravel repeats full room descriptions on revisit.
	VerboseTravel bool `yaml:"verbose_travel"`
	// DebugMode unlocks the debug verbs.
	DebugMode bool `yaml:"debug_mode"`
}

// Store reads and writes save files under a single directory.
type Store struct {
	dir    string
	logger *zap.Logger
}

// NewStore creates a Store rooted at dir, creating the directory if needed.
//
// Precondition: logger must be non-nil.
func NewStore(dir string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating save dir %s: %w", dir, err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// SavePlayer writes the full player document.
//
// Postcondition: the previous save is intact if the write fails.
func (s *Store) SavePlayer(p *player.Player) error {
	if err := s.writeYAML(playerFile, p); err != nil {
		return fmt.Errorf("saving player: %w", err)
	}
	s.logger.Debug("player saved",
		zap.String("name", p.Name),
		zap.String("location", p.Location))
	return nil
}

// LoadPlayer reads the player document. A missing save file is not an
// error: it returns (nil, nil) and the caller starts a fresh character.
func (s *Store) LoadPlayer() (*player.Player, error) {
	var p player.Player
	found, err := s.readYAML(playerFile, &p)
	if err != nil {
		return nil, fmt.Errorf("loading player: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &p, nil
}

// SaveSettings writes the settings document.
func (s *Store) SaveSettings(settings Settings) error {
	if err := s.writeYAML(settingsFile, settings); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}

// LoadSettings reads the settings document. A missing file returns zero-value
// settings and no error.
func (s *Store) LoadSettings() (Settings, error) {
	var settings Settings
	if _, err := s.readYAML(settingsFile, &settings); err != nil {
		return Settings{}, fmt.Errorf("loading settings: %w", err)
	}
	return settings, nil
}

// writeYAML marshals v and atomically replaces name under the store dir.
func (s *Store) writeYAML(name string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", name, err)
	}
	return nil
}

// readYAML unmarshals name into v. Returns false when the file does not
// exist.
func (s *Store) readYAML(name string, v any) (bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", name, err)
	}
	return true, nil
}
