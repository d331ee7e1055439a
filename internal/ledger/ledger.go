// Package ledger owns the player's power-up state: the inventory of
// not-yet-activated stacks and the set of running timed effects. Every
// mutation is written through to the store synchronously, so a ledger
// rebuilt over the same database reproduces the same state.
package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"cardquest/internal/catalog"
	"cardquest/internal/models"
)

// Store is the persistence surface the ledger writes through to. All
// operations are idempotent point writes committed immediately.
type Store interface {
	ListPowerUps() ([]models.PowerUp, error)
	ListActivePowerUps() ([]models.ActivePowerUp, error)
	UpsertPowerUp(p models.PowerUp) error
	DeletePowerUp(id string) error
	UpsertActivePowerUp(a models.ActivePowerUp) error
	DeleteActivePowerUp(id string) error
	ClearActivePowerUps() error
}

// Ledger is safe for concurrent use; the HTTP handlers and the tick
// loop share one instance.
type Ledger struct {
	mu      sync.Mutex
	store   Store
	catalog *catalog.Catalog

	inventory map[string]models.PowerUp
	active    map[string]models.ActivePowerUp
}

// New builds a ledger over the given store, loading every persisted
// stack and reconstructing active effects from their joined rows.
func New(store Store, cat *catalog.Catalog) (*Ledger, error) {
	l := &Ledger{
		store:     store,
		catalog:   cat,
		inventory: make(map[string]models.PowerUp),
		active:    make(map[string]models.ActivePowerUp),
	}

	powerups, err := store.ListPowerUps()
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	for _, p := range powerups {
		// Quantity-zero rows only exist to back the active-effect join;
		// they are not part of the live inventory.
		if p.Quantity > 0 {
			l.inventory[p.ID] = p
		}
	}

	actives, err := store.ListActivePowerUps()
	if err != nil {
		return nil, fmt.Errorf("failed to load active powerups: %w", err)
	}
	for _, a := range actives {
		l.active[a.ID] = a
	}

	return l, nil
}

// Grant adds one power-up of the given type and theme to the inventory.
// A stack for the same (type, theme) pair is incremented instead of
// duplicated. Pass a nil theme for universal types. Grant never fails
// over an unknown type; the catalog synthesizes metadata for it.
func (l *Ledger) Grant(t models.PowerUpType, theme *models.Theme) (*models.PowerUp, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for id, p := range l.inventory {
		if p.SameKind(t, theme) {
			p.Quantity++
			l.inventory[id] = p
			if err := l.store.UpsertPowerUp(p); err != nil {
				return nil, err
			}
			return &p, nil
		}
	}

	meta := l.catalog.MetadataFor(t)
	p := models.PowerUp{
		ID:              uuid.New().String(),
		Type:            t,
		Theme:           theme,
		Name:            meta.Name,
		Description:     meta.Description,
		Icon:            meta.Icon,
		Quantity:        1,
		DurationSeconds: meta.DurationSeconds,
		AcquiredAt:      time.Now(),
	}

	l.inventory[p.ID] = p
	if err := l.store.UpsertPowerUp(p); err != nil {
		return nil, err
	}

	return &p, nil
}

// Activate consumes one unit of the given stack. It returns false when
// the id is unknown or the stack is exhausted; that is an expected
// outcome (stale UI state), not a fault. Timed power-ups spawn an
// independent countdown; instant ones only record the consumption, the
// caller applies the effect itself.
func (l *Ledger) Activate(id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.inventory[id]
	if !ok || p.Quantity <= 0 {
		return false, nil
	}

	p.Quantity--

	if p.DurationSeconds > 0 {
		a := models.ActivePowerUp{
			ID:               uuid.New().String(),
			PowerUpID:        p.ID,
			PowerUp:          p,
			ActivatedAt:      time.Now(),
			DurationSeconds:  p.DurationSeconds,
			RemainingSeconds: float64(p.DurationSeconds),
		}
		l.active[a.ID] = a
		if err := l.store.UpsertActivePowerUp(a); err != nil {
			return false, err
		}
	}

	if p.Quantity <= 0 {
		delete(l.inventory, id)
		if p.DurationSeconds > 0 {
			// A running effect may still reference this row; keep it at
			// quantity zero so the reload join stays valid.
			if err := l.store.UpsertPowerUp(p); err != nil {
				return false, err
			}
		} else {
			if err := l.store.DeletePowerUp(id); err != nil {
				return false, err
			}
		}
	} else {
		l.inventory[id] = p
		if err := l.store.UpsertPowerUp(p); err != nil {
			return false, err
		}
	}

	return true, nil
}

// Tick advances every active effect by delta seconds. Effects whose
// remaining time reaches zero are removed and their source power-ups
// returned, each exactly once on the tick where it expires. A zero
// delta changes nothing.
func (l *Ledger) Tick(delta float64) ([]models.PowerUp, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if delta == 0 {
		return nil, nil
	}

	var expired []models.PowerUp
	var expiredIDs []string

	for id, a := range l.active {
		a.RemainingSeconds -= delta
		if a.RemainingSeconds <= 0 {
			expired = append(expired, a.PowerUp)
			expiredIDs = append(expiredIDs, id)
			continue
		}
		l.active[id] = a
		if err := l.store.UpsertActivePowerUp(a); err != nil {
			return expired, err
		}
	}

	for _, id := range expiredIDs {
		delete(l.active, id)
		if err := l.store.DeleteActivePowerUp(id); err != nil {
			return expired, err
		}
	}

	return expired, nil
}

// Inventory returns a snapshot of the current stacks, in no particular
// order.
func (l *Ledger) Inventory() []models.PowerUp {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.PowerUp, 0, len(l.inventory))
	for _, p := range l.inventory {
		out = append(out, p)
	}
	return out
}

// ActiveEffects returns a snapshot of the running timed effects.
func (l *Ledger) ActiveEffects() []models.ActivePowerUp {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.ActivePowerUp, 0, len(l.active))
	for _, a := range l.active {
		out = append(out, a)
	}
	return out
}

// HasActiveEffectOfType reports whether some running effect originated
// from the given power-up type.
func (l *Ledger) HasActiveEffectOfType(t models.PowerUpType) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, a := range l.active {
		if a.PowerUp.Type == t {
			return true
		}
	}
	return false
}

// Count sums the held quantity of a type across matching stacks. A nil
// theme filter counts every theme.
func (l *Ledger) Count(t models.PowerUpType, theme *models.Theme) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := 0
	for _, p := range l.inventory {
		if p.Type != t {
			continue
		}
		if theme == nil || (p.Theme != nil && *p.Theme == *theme) {
			total += p.Quantity
		}
	}
	return total
}

// ClearAllActive drops every running effect from memory and from the
// store. Inventory is untouched.
func (l *Ledger) ClearAllActive() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.ClearActivePowerUps(); err != nil {
		return err
	}
	l.active = make(map[string]models.ActivePowerUp)
	return nil
}
