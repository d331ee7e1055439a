// Package settings persists the user-tunable game options as a
// validated JSON file. Unknown or out-of-range values fall back to
// their defaults field by field, so a hand-edited file never takes the
// whole configuration down with it.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Settings covers difficulty, rewards, unlock pacing, animation and
// accessibility options.
type Settings struct {
	// Difficulty
	BasePoints             int     `json:"base_points"`
	PenaltyHealthReduction float64 `json:"penalty_health_reduction"`
	PenaltyCurrencyLoss    int     `json:"penalty_currency_loss"`

	// Rewards
	StreakMultiplier5       float64 `json:"streak_multiplier_5"`
	StreakMultiplier10      float64 `json:"streak_multiplier_10"`
	StreakMultiplier20      float64 `json:"streak_multiplier_20"`
	AccuracyBonusThreshold  float64 `json:"accuracy_bonus_threshold"`
	AccuracyBonusMultiplier float64 `json:"accuracy_bonus_multiplier"`

	// Unlocks
	CardsPerLevel   int `json:"cards_per_level"`
	CardsPerPowerUp int `json:"cards_per_powerup"`

	// Animation
	AnimationSpeed    float64 `json:"animation_speed"`
	AnimationsEnabled bool    `json:"animations_enabled"`

	// Accessibility
	ColorblindMode *string `json:"colorblind_mode"`
	SoundEnabled   bool    `json:"sound_enabled"`
	SoundVolume    float64 `json:"sound_volume"`
}

func Defaults() Settings {
	return Settings{
		BasePoints:              10,
		PenaltyHealthReduction:  0.1,
		PenaltyCurrencyLoss:     1,
		StreakMultiplier5:       1.5,
		StreakMultiplier10:      2.0,
		StreakMultiplier20:      3.0,
		AccuracyBonusThreshold:  0.9,
		AccuracyBonusMultiplier: 1.25,
		CardsPerLevel:           50,
		CardsPerPowerUp:         100,
		AnimationSpeed:          1.0,
		AnimationsEnabled:       true,
		ColorblindMode:          nil,
		SoundEnabled:            true,
		SoundVolume:             0.7,
	}
}

var colorblindModes = map[string]bool{
	"protanopia":   true,
	"deuteranopia": true,
	"tritanopia":   true,
}

// sanitize replaces invalid values with defaults, field by field.
func sanitize(s Settings) Settings {
	d := Defaults()

	if s.BasePoints <= 0 {
		s.BasePoints = d.BasePoints
	}
	if s.PenaltyHealthReduction < 0 || s.PenaltyHealthReduction > 1 {
		s.PenaltyHealthReduction = d.PenaltyHealthReduction
	}
	if s.PenaltyCurrencyLoss < 0 {
		s.PenaltyCurrencyLoss = d.PenaltyCurrencyLoss
	}
	if s.StreakMultiplier5 <= 0 {
		s.StreakMultiplier5 = d.StreakMultiplier5
	}
	if s.StreakMultiplier10 <= 0 {
		s.StreakMultiplier10 = d.StreakMultiplier10
	}
	if s.StreakMultiplier20 <= 0 {
		s.StreakMultiplier20 = d.StreakMultiplier20
	}
	if s.AccuracyBonusThreshold < 0 || s.AccuracyBonusThreshold > 1 {
		s.AccuracyBonusThreshold = d.AccuracyBonusThreshold
	}
	if s.AccuracyBonusMultiplier <= 0 {
		s.AccuracyBonusMultiplier = d.AccuracyBonusMultiplier
	}
	if s.CardsPerLevel <= 0 {
		s.CardsPerLevel = d.CardsPerLevel
	}
	if s.CardsPerPowerUp <= 0 {
		s.CardsPerPowerUp = d.CardsPerPowerUp
	}
	if s.AnimationSpeed <= 0 {
		s.AnimationSpeed = d.AnimationSpeed
	}
	if s.ColorblindMode != nil && !colorblindModes[*s.ColorblindMode] {
		s.ColorblindMode = nil
	}
	if s.SoundVolume < 0 || s.SoundVolume > 1 {
		s.SoundVolume = d.SoundVolume
	}

	return s
}

// Manager owns the settings file. Safe for concurrent use.
type Manager struct {
	mu      sync.RWMutex
	path    string
	current Settings
}

// Load reads the settings file at path. A missing file yields defaults;
// a corrupted file is moved aside to a timestamped backup and replaced
// with defaults.
func Load(path string) (*Manager, error) {
	m := &Manager{path: path, current: Defaults()}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		backup := fmt.Sprintf("%s.corrupt-%s", path, time.Now().Format("20060102-150405"))
		if renameErr := os.Rename(path, backup); renameErr != nil {
			return nil, fmt.Errorf("failed to back up corrupted settings file: %w", renameErr)
		}
		if saveErr := m.save(); saveErr != nil {
			return nil, saveErr
		}
		return m, nil
	}

	m.current = sanitize(s)
	return m, nil
}

// Get returns a copy of the current settings.
func (m *Manager) Get() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Update validates, applies and persists new settings, returning the
// values actually stored after sanitization.
func (m *Manager) Update(s Settings) (Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = sanitize(s)
	if err := m.save(); err != nil {
		return Settings{}, err
	}
	return m.current, nil
}

// Reset restores defaults and persists them.
func (m *Manager) Reset() (Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = Defaults()
	if err := m.save(); err != nil {
		return Settings{}, err
	}
	return m.current, nil
}

// save writes the file atomically: temp file in the same directory,
// then rename over the target.
func (m *Manager) save() error {
	data, err := json.MarshalIndent(m.current, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := os.Rename(tmp, m.path); err != nil {
		return fmt.Errorf("failed to replace settings file: %w", err)
	}

	return nil
}
