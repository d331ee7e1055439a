package database

import (
	"database/sql"
	"fmt"
	"time"

	"cardquest/internal/models"
)

// GetProgression loads the single progression row, creating it with
// defaults on first run.
func GetProgression(db *sql.DB) (*models.Progression, error) {
	query := `
		SELECT total_reviews, correct_answers, current_streak, best_streak,
		       points, currency, levels_unlocked, session_health, theme, updated_at
		FROM progression WHERE id = 1
	`

	var p models.Progression
	var theme string
	err := db.QueryRow(query).Scan(
		&p.TotalReviews,
		&p.CorrectAnswers,
		&p.CurrentStreak,
		&p.BestStreak,
		&p.Points,
		&p.Currency,
		&p.LevelsUnlocked,
		&p.SessionHealth,
		&theme,
		&p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		if _, err := db.Exec(`INSERT INTO progression (id) VALUES (1)`); err != nil {
			return nil, fmt.Errorf("failed to create progression row: %w", err)
		}
		return &models.Progression{
			SessionHealth: 100,
			Theme:         models.ThemeMario,
			UpdatedAt:     time.Now(),
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query progression: %w", err)
	}

	p.Theme = models.Theme(theme)
	return &p, nil
}

func SaveProgression(db *sql.DB, p models.Progression) error {
	query := `
		INSERT OR REPLACE INTO progression
			(id, total_reviews, correct_answers, current_streak, best_streak,
			 points, currency, levels_unlocked, session_health, theme, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`

	_, err := db.Exec(query, p.TotalReviews, p.CorrectAnswers, p.CurrentStreak,
		p.BestStreak, p.Points, p.Currency, p.LevelsUnlocked, p.SessionHealth, string(p.Theme))
	if err != nil {
		return fmt.Errorf("failed to save progression: %w", err)
	}

	return nil
}
