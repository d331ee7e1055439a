package database

import (
	"database/sql"
	"fmt"

	"cardquest/internal/models"
)

func UpsertPowerUp(db *sql.DB, p models.PowerUp) error {
	query := `
		INSERT OR REPLACE INTO powerups
			(id, type, theme, name, description, icon, quantity, duration_seconds, acquired_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var theme sql.NullString
	if p.Theme != nil {
		theme = sql.NullString{String: string(*p.Theme), Valid: true}
	}

	_, err := db.Exec(query, p.ID, string(p.Type), theme, p.Name, p.Description,
		p.Icon, p.Quantity, p.DurationSeconds, p.AcquiredAt)
	if err != nil {
		return fmt.Errorf("failed to upsert powerup: %w", err)
	}

	return nil
}

func DeletePowerUp(db *sql.DB, id string) error {
	if _, err := db.Exec(`DELETE FROM powerups WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete powerup: %w", err)
	}
	return nil
}

func ListPowerUps(db *sql.DB) ([]models.PowerUp, error) {
	query := `
		SELECT id, type, theme, name, description, icon, quantity, duration_seconds, acquired_at
		FROM powerups
	`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query powerups: %w", err)
	}
	defer rows.Close()

	var powerups []models.PowerUp
	for rows.Next() {
		p, err := scanPowerUp(rows)
		if err != nil {
			return nil, err
		}
		powerups = append(powerups, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating powerups: %w", err)
	}

	return powerups, nil
}

func scanPowerUp(rows *sql.Rows) (models.PowerUp, error) {
	var p models.PowerUp
	var typ string
	var theme sql.NullString

	err := rows.Scan(
		&p.ID,
		&typ,
		&theme,
		&p.Name,
		&p.Description,
		&p.Icon,
		&p.Quantity,
		&p.DurationSeconds,
		&p.AcquiredAt,
	)
	if err != nil {
		return p, fmt.Errorf("failed to scan powerup: %w", err)
	}

	p.Type = models.PowerUpType(typ)
	if theme.Valid {
		t := models.Theme(theme.String)
		p.Theme = &t
	}

	return p, nil
}

func UpsertActivePowerUp(db *sql.DB, a models.ActivePowerUp) error {
	query := `
		INSERT OR REPLACE INTO active_powerups
			(id, powerup_id, activated_at, duration_seconds, remaining_seconds)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, a.ID, a.PowerUpID, a.ActivatedAt, a.DurationSeconds, a.RemainingSeconds)
	if err != nil {
		return fmt.Errorf("failed to upsert active powerup: %w", err)
	}

	return nil
}

func DeleteActivePowerUp(db *sql.DB, id string) error {
	if _, err := db.Exec(`DELETE FROM active_powerups WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete active powerup: %w", err)
	}
	return nil
}

// ListActivePowerUps reloads active effects joined with the owning
// powerup row, so the returned records carry a full metadata snapshot
// even when the source stack has been consumed down to quantity zero.
func ListActivePowerUps(db *sql.DB) ([]models.ActivePowerUp, error) {
	query := `
		SELECT ap.id, ap.powerup_id, ap.activated_at, ap.duration_seconds, ap.remaining_seconds,
		       p.type, p.theme, p.name, p.description, p.icon, p.quantity,
		       p.duration_seconds, p.acquired_at
		FROM active_powerups ap
		JOIN powerups p ON ap.powerup_id = p.id
	`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active powerups: %w", err)
	}
	defer rows.Close()

	var actives []models.ActivePowerUp
	for rows.Next() {
		var a models.ActivePowerUp
		var typ string
		var theme sql.NullString

		err := rows.Scan(
			&a.ID,
			&a.PowerUpID,
			&a.ActivatedAt,
			&a.DurationSeconds,
			&a.RemainingSeconds,
			&typ,
			&theme,
			&a.PowerUp.Name,
			&a.PowerUp.Description,
			&a.PowerUp.Icon,
			&a.PowerUp.Quantity,
			&a.PowerUp.DurationSeconds,
			&a.PowerUp.AcquiredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan active powerup: %w", err)
		}

		a.PowerUp.ID = a.PowerUpID
		a.PowerUp.Type = models.PowerUpType(typ)
		if theme.Valid {
			t := models.Theme(theme.String)
			a.PowerUp.Theme = &t
		}

		actives = append(actives, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating active powerups: %w", err)
	}

	return actives, nil
}

func ClearActivePowerUps(db *sql.DB) error {
	if _, err := db.Exec(`DELETE FROM active_powerups`); err != nil {
		return fmt.Errorf("failed to clear active powerups: %w", err)
	}
	return nil
}

// SweepOrphanedPowerUps deletes exhausted stacks whose rows were only
// kept alive for the active-effect join and no longer have a referencing
// effect. Returns the number of rows removed.
func SweepOrphanedPowerUps(db *sql.DB) (int64, error) {
	result, err := db.Exec(`
		DELETE FROM powerups
		WHERE quantity <= 0
		  AND id NOT IN (SELECT powerup_id FROM active_powerups)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep orphaned powerups: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return removed, nil
}

// Store adapts the package functions to the narrow interface the ledger
// consumes, keeping the database handle in one place.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListPowerUps() ([]models.PowerUp, error) { return ListPowerUps(s.db) }

func (s *Store) ListActivePowerUps() ([]models.ActivePowerUp, error) {
	return ListActivePowerUps(s.db)
}

func (s *Store) UpsertPowerUp(p models.PowerUp) error { return UpsertPowerUp(s.db, p) }

func (s *Store) DeletePowerUp(id string) error { return DeletePowerUp(s.db, id) }

func (s *Store) UpsertActivePowerUp(a models.ActivePowerUp) error {
	return UpsertActivePowerUp(s.db, a)
}

func (s *Store) DeleteActivePowerUp(id string) error { return DeleteActivePowerUp(s.db, id) }

func (s *Store) ClearActivePowerUps() error { return ClearActivePowerUps(s.db) }
