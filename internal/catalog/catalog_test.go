package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"cardquest/internal/models"
)

func TestEligibleTypesPerTheme(t *testing.T) {
	c := Default()

	mario := c.EligibleTypes(models.ThemeMario)
	if len(mario) != 5 {
		t.Fatalf("Expected 5 mario types, got %d", len(mario))
	}
	if mario[0] != models.TypeMushroom || mario[1] != models.TypeFireFlower {
		t.Errorf("Mario list order not preserved: %v", mario)
	}

	zelda := c.EligibleTypes(models.ThemeZelda)
	if len(zelda) != 5 || zelda[0] != models.TypeHeartContainer {
		t.Errorf("Unexpected zelda list: %v", zelda)
	}

	dkc := c.EligibleTypes(models.ThemeDKC)
	if len(dkc) != 5 || dkc[4] != models.TypeDKCoin {
		t.Errorf("Unexpected dkc list: %v", dkc)
	}
}

func TestEligibleTypesUnknownTheme(t *testing.T) {
	c := Default()

	if got := c.EligibleTypes(models.Theme("metroid")); len(got) != 0 {
		t.Errorf("Expected empty list for unknown theme, got %v", got)
	}
}

func TestMetadataForKnownTypes(t *testing.T) {
	c := Default()

	tests := []struct {
		typ      models.PowerUpType
		name     string
		duration int
	}{
		{models.TypeMushroom, "Super Mushroom", 0},
		{models.TypeFireFlower, "Fire Flower", 60},
		{models.TypeStar, "Super Star", 30},
		{models.TypeAnimalBuddy, "Animal Buddy", 45},
		{models.TypeGoldenBanana, "Golden Banana", 30},
		{models.TypeDoublePoints, "Double Points", 60},
		{models.TypeHealthRecovery, "Health Recovery", 0},
	}

	for _, tt := range tests {
		meta := c.MetadataFor(tt.typ)
		if meta.Name != tt.name {
			t.Errorf("%s: expected name %q, got %q", tt.typ, tt.name, meta.Name)
		}
		if meta.DurationSeconds != tt.duration {
			t.Errorf("%s: expected duration %d, got %d", tt.typ, tt.duration, meta.DurationSeconds)
		}
	}
}

func TestMetadataForUnknownTypeFallback(t *testing.T) {
	c := Default()

	meta := c.MetadataFor(models.PowerUpType("master_sword"))
	if meta.Name != "Master Sword" {
		t.Errorf("Expected humanized name, got %q", meta.Name)
	}
	if meta.Description != "A master_sword power-up." {
		t.Errorf("Unexpected fallback description: %q", meta.Description)
	}
	if meta.Icon != "master_sword.png" {
		t.Errorf("Unexpected fallback icon: %q", meta.Icon)
	}
	if meta.DurationSeconds != 0 {
		t.Errorf("Fallback metadata must be instant, got %d", meta.DurationSeconds)
	}
}

func TestLoadOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	content := `{
		"themes": {
			"mario": ["mushroom", "star"]
		},
		"powerups": {
			"mushroom": {
				"name": "Mega Mushroom",
				"description": "Bigger than before.",
				"icon": "mega.png",
				"duration_seconds": 15
			}
		}
	}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal("Failed to write catalog file:", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatal("Failed to load catalog:", err)
	}

	mario := c.EligibleTypes(models.ThemeMario)
	if len(mario) != 2 || mario[0] != models.TypeMushroom || mario[1] != models.TypeStar {
		t.Errorf("Override theme list not applied: %v", mario)
	}

	meta := c.MetadataFor(models.TypeMushroom)
	if meta.Name != "Mega Mushroom" || meta.DurationSeconds != 15 {
		t.Errorf("Override metadata not applied: %+v", meta)
	}

	// Untouched entries keep their defaults
	if c.MetadataFor(models.TypeFireFlower).Name != "Fire Flower" {
		t.Error("Override clobbered unrelated metadata")
	}
	if len(c.EligibleTypes(models.ThemeZelda)) != 5 {
		t.Error("Override clobbered unrelated theme list")
	}
}

func TestLoadRejectsBadOverrides(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"malformed json", `{"themes": [`},
		{"unknown theme", `{"themes": {"metroid": ["missile"]}}`},
		{"negative duration", `{"powerups": {"mushroom": {"name": "X", "duration_seconds": -5}}}`},
	}

	for _, tt := range tests {
		path := filepath.Join(dir, tt.name+".json")
		if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
			t.Fatal("Failed to write catalog file:", err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected load to fail", tt.name)
		}
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatal("Failed to load defaults:", err)
	}
	if len(c.EligibleTypes(models.ThemeMario)) != 5 {
		t.Error("Empty path should yield the built-in catalog")
	}
}
