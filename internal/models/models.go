package models

import (
	"strings"
	"time"
)

// Theme is a selectable visual skin. The active theme decides which
// power-up types the player can earn.
type Theme string

const (
	ThemeMario Theme = "mario"
	ThemeZelda Theme = "zelda"
	ThemeDKC   Theme = "dkc"
)

func (t Theme) Valid() bool {
	switch t {
	case ThemeMario, ThemeZelda, ThemeDKC:
		return true
	}
	return false
}

// PowerUpType identifies a kind of power-up. Types are either tied to one
// theme or universal.
type PowerUpType string

const (
	// Mario
	TypeMushroom      PowerUpType = "mushroom"
	TypeFireFlower    PowerUpType = "fire_flower"
	TypeStar          PowerUpType = "star"
	TypeLeaf          PowerUpType = "leaf"
	TypeOneUpMushroom PowerUpType = "1up_mushroom"

	// Zelda
	TypeHeartContainer PowerUpType = "heart_container"
	TypeFairy          PowerUpType = "fairy"
	TypePotion         PowerUpType = "potion"
	TypeShield         PowerUpType = "shield"
	TypeBomb           PowerUpType = "bomb"

	// Donkey Kong Country
	TypeBanana       PowerUpType = "banana"
	TypeBarrel       PowerUpType = "barrel"
	TypeAnimalBuddy  PowerUpType = "animal_buddy"
	TypeGoldenBanana PowerUpType = "golden_banana"
	TypeDKCoin       PowerUpType = "dk_coin"

	// Universal
	TypeDoublePoints   PowerUpType = "double_points"
	TypeInvincibility  PowerUpType = "invincibility"
	TypeHealthRecovery PowerUpType = "health_recovery"
	TypeTimeFreeze     PowerUpType = "time_freeze"
	TypeMultiplier     PowerUpType = "multiplier"
)

// Humanize turns a type identifier into a display name, e.g.
// "golden_banana" -> "Golden Banana".
func (p PowerUpType) Humanize() string {
	words := strings.Split(string(p), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// PowerUpMetadata is the static display record for a power-up type.
// DurationSeconds == 0 means the effect is instant or permanent;
// anything greater is a timed effect.
type PowerUpMetadata struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Icon            string `json:"icon"`
	DurationSeconds int    `json:"duration_seconds"`
}

// PowerUp is a stack of not-yet-activated power-ups of one type+theme
// combination. Theme is nil for universal types. At most one PowerUp
// exists per (type, theme) pair; repeat grants bump Quantity.
type PowerUp struct {
	ID              string      `json:"id" db:"id"`
	Type            PowerUpType `json:"type" db:"type"`
	Theme           *Theme      `json:"theme,omitempty" db:"theme"`
	Name            string      `json:"name" db:"name"`
	Description     string      `json:"description" db:"description"`
	Icon            string      `json:"icon" db:"icon"`
	Quantity        int         `json:"quantity" db:"quantity"`
	DurationSeconds int         `json:"duration_seconds" db:"duration_seconds"`
	AcquiredAt      time.Time   `json:"acquired_at" db:"acquired_at"`
}

// SameKind reports whether two power-ups are the same (type, theme) pair.
func (p PowerUp) SameKind(t PowerUpType, theme *Theme) bool {
	if p.Type != t {
		return false
	}
	if p.Theme == nil || theme == nil {
		return p.Theme == nil && theme == nil
	}
	return *p.Theme == *theme
}

// ActivePowerUp is one in-progress timed effect. PowerUp is a snapshot of
// the originating inventory entry taken at activation, not a live link:
// the source stack may be fully consumed while the effect still runs.
type ActivePowerUp struct {
	ID               string    `json:"id" db:"id"`
	PowerUpID        string    `json:"powerup_id" db:"powerup_id"`
	PowerUp          PowerUp   `json:"powerup"`
	ActivatedAt      time.Time `json:"activated_at" db:"activated_at"`
	DurationSeconds  int       `json:"duration_seconds" db:"duration_seconds"`
	RemainingSeconds float64   `json:"remaining_seconds" db:"remaining_seconds"`
}

// Progression is the player's long-lived progress counters. A single row
// in the database; session fields reset when a review session starts.
type Progression struct {
	TotalReviews   int       `json:"total_reviews" db:"total_reviews"`
	CorrectAnswers int       `json:"correct_answers" db:"correct_answers"`
	CurrentStreak  int       `json:"current_streak" db:"current_streak"`
	BestStreak     int       `json:"best_streak" db:"best_streak"`
	Points         int       `json:"points" db:"points"`
	Currency       int       `json:"currency" db:"currency"`
	LevelsUnlocked int       `json:"levels_unlocked" db:"levels_unlocked"`
	SessionHealth  float64   `json:"session_health" db:"session_health"`
	Theme          Theme     `json:"theme" db:"theme"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
