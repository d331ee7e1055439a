// Package progression tracks the player's long-lived counters (reviews,
// streaks, points, currency, unlocked levels, session health) and decides
// when a review milestone earns an automatic power-up grant.
package progression

import (
	"database/sql"
	"fmt"
	"sync"

	"cardquest/internal/catalog"
	"cardquest/internal/database"
	"cardquest/internal/models"
	"cardquest/internal/settings"
)

// Currency awarded each time a new level unlocks.
const levelUnlockReward = 50

// Outcome describes what a single processed review changed.
type Outcome struct {
	Correct       bool                `json:"correct"`
	PointsEarned  int                 `json:"points_earned"`
	CurrentStreak int                 `json:"current_streak"`
	SessionHealth float64             `json:"session_health"`
	GrantType     *models.PowerUpType `json:"grant_type,omitempty"`
	GrantTheme    *models.Theme       `json:"grant_theme,omitempty"`
}

// Tracker is safe for concurrent use. It writes the progression row
// through after every processed review.
type Tracker struct {
	mu       sync.Mutex
	db       *sql.DB
	settings *settings.Manager
	catalog  *catalog.Catalog

	state models.Progression

	sessionCorrect int
	sessionTotal   int

	// Highest correct-answer threshold a power-up was already granted
	// for, so restarts do not re-grant past milestones.
	lastGrantThreshold int
}

func NewTracker(db *sql.DB, sm *settings.Manager, cat *catalog.Catalog) (*Tracker, error) {
	state, err := database.GetProgression(db)
	if err != nil {
		return nil, fmt.Errorf("failed to load progression: %w", err)
	}

	per := sm.Get().CardsPerPowerUp
	return &Tracker{
		db:                 db,
		settings:           sm,
		catalog:            cat,
		state:              *state,
		lastGrantThreshold: (state.CorrectAnswers / per) * per,
	}, nil
}

// ProcessReview applies one review result: scoring with streak and
// accuracy multipliers on a correct answer, streak reset and a health
// penalty on a wrong one. When the correct-answer count crosses a
// cards-per-powerup threshold the outcome names the type to grant,
// cycling through the current theme's eligible list.
func (t *Tracker) ProcessReview(correct bool) (*Outcome, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cfg := t.settings.Get()

	// The bonus is judged on the session accuracy as it stood at the end
	// of the previous review, before this answer is counted.
	accuracy := t.sessionAccuracy()

	t.state.TotalReviews++
	t.sessionTotal++

	out := &Outcome{Correct: correct}

	if correct {
		t.state.CorrectAnswers++
		t.sessionCorrect++
		t.state.CurrentStreak++
		if t.state.CurrentStreak > t.state.BestStreak {
			t.state.BestStreak = t.state.CurrentStreak
		}

		// The combo multiplier counts the answer just scored: the fifth
		// consecutive correct answer already earns the first tier.
		points := float64(cfg.BasePoints) * t.streakMultiplier(cfg)
		if accuracy >= cfg.AccuracyBonusThreshold {
			points *= cfg.AccuracyBonusMultiplier
		}
		out.PointsEarned = int(points)
		t.state.Points += out.PointsEarned

		if unlocked := t.state.CorrectAnswers / cfg.CardsPerLevel; unlocked > t.state.LevelsUnlocked {
			t.state.Currency += (unlocked - t.state.LevelsUnlocked) * levelUnlockReward
			t.state.LevelsUnlocked = unlocked
		}

		if grantType, theme, ok := t.checkPowerUpGrant(cfg); ok {
			out.GrantType = &grantType
			out.GrantTheme = theme
		}
	} else {
		t.state.CurrentStreak = 0
		t.state.SessionHealth -= cfg.PenaltyHealthReduction * 100
		if t.state.SessionHealth < 0 {
			t.state.SessionHealth = 0
		}
		t.state.Currency -= cfg.PenaltyCurrencyLoss
		if t.state.Currency < 0 {
			t.state.Currency = 0
		}
	}

	out.CurrentStreak = t.state.CurrentStreak
	out.SessionHealth = t.state.SessionHealth

	if err := database.SaveProgression(t.db, t.state); err != nil {
		return nil, err
	}

	return out, nil
}

// streakMultiplier reads the streak with the current answer already
// counted.
func (t *Tracker) streakMultiplier(cfg settings.Settings) float64 {
	switch streak := t.state.CurrentStreak; {
	case streak >= 20:
		return cfg.StreakMultiplier20
	case streak >= 10:
		return cfg.StreakMultiplier10
	case streak >= 5:
		return cfg.StreakMultiplier5
	}
	return 1.0
}

func (t *Tracker) sessionAccuracy() float64 {
	if t.sessionTotal == 0 {
		return 1.0
	}
	return float64(t.sessionCorrect) / float64(t.sessionTotal)
}

func (t *Tracker) checkPowerUpGrant(cfg settings.Settings) (models.PowerUpType, *models.Theme, bool) {
	per := cfg.CardsPerPowerUp
	threshold := (t.state.CorrectAnswers / per) * per
	if threshold <= t.lastGrantThreshold {
		return "", nil, false
	}
	t.lastGrantThreshold = threshold

	eligible := t.catalog.EligibleTypes(t.state.Theme)
	if len(eligible) == 0 {
		return "", nil, false
	}

	count := t.state.CorrectAnswers / per
	grantType := eligible[(count-1)%len(eligible)]
	theme := t.state.Theme
	return grantType, &theme, true
}

// Snapshot returns a copy of the current progression state.
func (t *Tracker) Snapshot() models.Progression {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Theme returns the active theme.
func (t *Tracker) Theme() models.Theme {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Theme
}

// SetTheme switches the active theme for future grants and persists it.
func (t *Tracker) SetTheme(theme models.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("unknown theme %q", theme)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.Theme = theme
	return database.SaveProgression(t.db, t.state)
}

// ResetSession restores session health and accuracy tracking. Streaks
// deliberately survive across sessions.
func (t *Tracker) ResetSession() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.SessionHealth = 100
	t.sessionCorrect = 0
	t.sessionTotal = 0
	return database.SaveProgression(t.db, t.state)
}
