package progression

import (
	"database/sql"
	"path/filepath"
	"testing"

	"cardquest/internal/catalog"
	"cardquest/internal/database"
	"cardquest/internal/models"
	"cardquest/internal/settings"

	_ "github.com/mattn/go-sqlite3"
)

func setupTracker(t *testing.T) (*Tracker, *sql.DB, *settings.Manager) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal("Failed to open test database:", err)
	}
	db.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatal("Failed to run migrations:", err)
	}

	sm, err := settings.Load(filepath.Join(t.TempDir(), "settings.json"))
	if err != nil {
		t.Fatal("Failed to load settings:", err)
	}

	tracker, err := NewTracker(db, sm, catalog.Default())
	if err != nil {
		t.Fatal("Failed to build tracker:", err)
	}

	return tracker, db, sm
}

func TestCorrectAnswerScoring(t *testing.T) {
	tracker, db, _ := setupTracker(t)
	defer db.Close()

	out, err := tracker.ProcessReview(true)
	if err != nil {
		t.Fatal("Failed to process review:", err)
	}

	// Base 10, no streak multiplier yet, perfect accuracy bonus 1.25
	if out.PointsEarned != 12 {
		t.Errorf("Expected 12 points, got %d", out.PointsEarned)
	}
	if out.CurrentStreak != 1 {
		t.Errorf("Expected streak 1, got %d", out.CurrentStreak)
	}

	state := tracker.Snapshot()
	if state.TotalReviews != 1 || state.CorrectAnswers != 1 || state.Points != 12 {
		t.Errorf("Unexpected state: %+v", state)
	}
}

func TestStreakMultiplier(t *testing.T) {
	tracker, db, _ := setupTracker(t)
	defer db.Close()

	for i := 0; i < 4; i++ {
		out, err := tracker.ProcessReview(true)
		if err != nil {
			t.Fatal("Failed to process review:", err)
		}
		// Below streak 5: 10 * 1.0 * 1.25
		if out.PointsEarned != 12 {
			t.Errorf("Expected 12 points at streak %d, got %d", out.CurrentStreak, out.PointsEarned)
		}
	}

	// The fifth consecutive correct answer reaches streak 5 and earns the
	// first combo tier: 10 * 1.5 * 1.25 = 18.75
	out, err := tracker.ProcessReview(true)
	if err != nil {
		t.Fatal("Failed to process review:", err)
	}
	if out.CurrentStreak != 5 {
		t.Errorf("Expected streak 5, got %d", out.CurrentStreak)
	}
	if out.PointsEarned != 18 {
		t.Errorf("Expected 18 points at streak 5, got %d", out.PointsEarned)
	}
}

func TestAccuracyBonusUsesPriorReviews(t *testing.T) {
	tracker, db, _ := setupTracker(t)
	defer db.Close()

	for i := 0; i < 8; i++ {
		if _, err := tracker.ProcessReview(true); err != nil {
			t.Fatal("Failed to process review:", err)
		}
	}
	if _, err := tracker.ProcessReview(false); err != nil {
		t.Fatal("Failed to process review:", err)
	}

	// Accuracy going into this answer is 8/9, below the 0.9 threshold; the
	// answer itself must not count toward its own bonus.
	out, err := tracker.ProcessReview(true)
	if err != nil {
		t.Fatal("Failed to process review:", err)
	}
	if out.PointsEarned != 10 {
		t.Errorf("Expected 10 points without accuracy bonus, got %d", out.PointsEarned)
	}
}

func TestWrongAnswerResetsStreakAndHurts(t *testing.T) {
	tracker, db, _ := setupTracker(t)
	defer db.Close()

	for i := 0; i < 3; i++ {
		if _, err := tracker.ProcessReview(true); err != nil {
			t.Fatal("Failed to process review:", err)
		}
	}

	out, err := tracker.ProcessReview(false)
	if err != nil {
		t.Fatal("Failed to process review:", err)
	}
	if out.PointsEarned != 0 {
		t.Errorf("Wrong answers earn nothing, got %d", out.PointsEarned)
	}
	if out.CurrentStreak != 0 {
		t.Errorf("Expected streak reset, got %d", out.CurrentStreak)
	}
	if out.SessionHealth != 90 {
		t.Errorf("Expected health 90 after penalty, got %f", out.SessionHealth)
	}

	state := tracker.Snapshot()
	if state.BestStreak != 3 {
		t.Errorf("Best streak should survive the miss, got %d", state.BestStreak)
	}
}

func TestMilestoneGrantsCycleThroughTheme(t *testing.T) {
	tracker, db, sm := setupTracker(t)
	defer db.Close()

	s := sm.Get()
	s.CardsPerPowerUp = 2
	if _, err := sm.Update(s); err != nil {
		t.Fatal("Failed to update settings:", err)
	}

	out, err := tracker.ProcessReview(true)
	if err != nil {
		t.Fatal("Failed to process review:", err)
	}
	if out.GrantType != nil {
		t.Error("First correct answer should not cross the milestone")
	}

	out, err = tracker.ProcessReview(true)
	if err != nil {
		t.Fatal("Failed to process review:", err)
	}
	if out.GrantType == nil {
		t.Fatal("Second correct answer should grant a powerup")
	}
	if *out.GrantType != models.TypeMushroom {
		t.Errorf("Expected first mario powerup, got %s", *out.GrantType)
	}
	if out.GrantTheme == nil || *out.GrantTheme != models.ThemeMario {
		t.Errorf("Expected mario theme, got %v", out.GrantTheme)
	}

	// Next milestone moves to the next type in the theme's list
	if _, err := tracker.ProcessReview(true); err != nil {
		t.Fatal("Failed to process review:", err)
	}
	out, err = tracker.ProcessReview(true)
	if err != nil {
		t.Fatal("Failed to process review:", err)
	}
	if out.GrantType == nil || *out.GrantType != models.TypeFireFlower {
		t.Errorf("Expected fire flower on second milestone, got %v", out.GrantType)
	}
}

func TestMilestoneNotRegrantedAfterRestart(t *testing.T) {
	tracker, db, sm := setupTracker(t)
	defer db.Close()

	s := sm.Get()
	s.CardsPerPowerUp = 2
	if _, err := sm.Update(s); err != nil {
		t.Fatal("Failed to update settings:", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := tracker.ProcessReview(true); err != nil {
			t.Fatal("Failed to process review:", err)
		}
	}

	// A new tracker over the same database remembers the crossed milestone
	restarted, err := NewTracker(db, sm, catalog.Default())
	if err != nil {
		t.Fatal("Failed to rebuild tracker:", err)
	}

	out, err := restarted.ProcessReview(true)
	if err != nil {
		t.Fatal("Failed to process review:", err)
	}
	if out.GrantType != nil {
		t.Error("Restart must not re-grant a past milestone")
	}

	state := restarted.Snapshot()
	if state.CorrectAnswers != 3 || state.TotalReviews != 3 {
		t.Errorf("State did not survive restart: %+v", state)
	}
}

func TestLevelUnlockAwardsCurrency(t *testing.T) {
	tracker, db, sm := setupTracker(t)
	defer db.Close()

	s := sm.Get()
	s.CardsPerLevel = 2
	if _, err := sm.Update(s); err != nil {
		t.Fatal("Failed to update settings:", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := tracker.ProcessReview(true); err != nil {
			t.Fatal("Failed to process review:", err)
		}
	}

	state := tracker.Snapshot()
	if state.LevelsUnlocked != 1 {
		t.Errorf("Expected 1 level unlocked, got %d", state.LevelsUnlocked)
	}
	if state.Currency != 50 {
		t.Errorf("Expected 50 currency from the unlock, got %d", state.Currency)
	}

	// A wrong answer costs the configured currency penalty
	if _, err := tracker.ProcessReview(false); err != nil {
		t.Fatal("Failed to process review:", err)
	}
	if got := tracker.Snapshot().Currency; got != 49 {
		t.Errorf("Expected 49 currency after penalty, got %d", got)
	}
}

func TestCurrencyNeverGoesNegative(t *testing.T) {
	tracker, db, _ := setupTracker(t)
	defer db.Close()

	if _, err := tracker.ProcessReview(false); err != nil {
		t.Fatal("Failed to process review:", err)
	}
	if got := tracker.Snapshot().Currency; got != 0 {
		t.Errorf("Expected currency clamped at 0, got %d", got)
	}
}

func TestSetTheme(t *testing.T) {
	tracker, db, _ := setupTracker(t)
	defer db.Close()

	if err := tracker.SetTheme(models.ThemeZelda); err != nil {
		t.Fatal("Failed to set theme:", err)
	}
	if tracker.Theme() != models.ThemeZelda {
		t.Errorf("Expected zelda theme, got %s", tracker.Theme())
	}

	if err := tracker.SetTheme(models.Theme("metroid")); err == nil {
		t.Error("Expected unknown theme to be rejected")
	}
}

func TestResetSession(t *testing.T) {
	tracker, db, _ := setupTracker(t)
	defer db.Close()

	if _, err := tracker.ProcessReview(true); err != nil {
		t.Fatal("Failed to process review:", err)
	}
	if _, err := tracker.ProcessReview(false); err != nil {
		t.Fatal("Failed to process review:", err)
	}

	if err := tracker.ResetSession(); err != nil {
		t.Fatal("Failed to reset session:", err)
	}

	state := tracker.Snapshot()
	if state.SessionHealth != 100 {
		t.Errorf("Expected health restored, got %f", state.SessionHealth)
	}
	// Long-lived counters survive a session reset
	if state.TotalReviews != 2 || state.CorrectAnswers != 1 {
		t.Errorf("Reset must not clear lifetime counters: %+v", state)
	}
}
