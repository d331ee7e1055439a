package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"cardquest/internal/models"
)

// Catalog maps themes to their obtainable power-up types and power-up
// types to display metadata. It is read-only after construction.
type Catalog struct {
	themeTypes map[models.Theme][]models.PowerUpType
	metadata   map[models.PowerUpType]models.PowerUpMetadata
}

var defaultThemeTypes = map[models.Theme][]models.PowerUpType{
	models.ThemeMario: {
		models.TypeMushroom,
		models.TypeFireFlower,
		models.TypeStar,
		models.TypeLeaf,
		models.TypeOneUpMushroom,
	},
	models.ThemeZelda: {
		models.TypeHeartContainer,
		models.TypeFairy,
		models.TypePotion,
		models.TypeShield,
		models.TypeBomb,
	},
	models.ThemeDKC: {
		models.TypeBanana,
		models.TypeBarrel,
		models.TypeAnimalBuddy,
		models.TypeGoldenBanana,
		models.TypeDKCoin,
	},
}

var defaultMetadata = map[models.PowerUpType]models.PowerUpMetadata{
	// Mario
	models.TypeMushroom: {
		Name:        "Super Mushroom",
		Description: "Grants extra health protection for your next wrong answer.",
		Icon:        "mushroom.png",
	},
	models.TypeFireFlower: {
		Name:            "Fire Flower",
		Description:     "Doubles points earned for the next 60 seconds.",
		Icon:            "fire_flower.png",
		DurationSeconds: 60,
	},
	models.TypeStar: {
		Name:            "Super Star",
		Description:     "Invincibility! No penalties for wrong answers for 30 seconds.",
		Icon:            "star.png",
		DurationSeconds: 30,
	},
	models.TypeLeaf: {
		Name:        "Super Leaf",
		Description: "Grants a second chance on your next wrong answer.",
		Icon:        "leaf.png",
	},
	models.TypeOneUpMushroom: {
		Name:        "1-Up Mushroom",
		Description: "Restores full session health.",
		Icon:        "1up_mushroom.png",
	},

	// Zelda
	models.TypeHeartContainer: {
		Name:        "Heart Container",
		Description: "Permanently increases maximum health.",
		Icon:        "heart_container.png",
	},
	models.TypeFairy: {
		Name:        "Fairy",
		Description: "Automatically revives you when health reaches zero.",
		Icon:        "fairy.png",
	},
	models.TypePotion: {
		Name:        "Red Potion",
		Description: "Restores half of your session health.",
		Icon:        "potion.png",
	},
	models.TypeShield: {
		Name:        "Hylian Shield",
		Description: "Blocks the next penalty from a wrong answer.",
		Icon:        "shield.png",
	},
	models.TypeBomb: {
		Name:        "Bomb",
		Description: "Reveals a hint for the next difficult card.",
		Icon:        "bomb.png",
	},

	// Donkey Kong Country
	models.TypeBanana: {
		Name:        "Banana Bunch",
		Description: "Grants bonus points immediately.",
		Icon:        "banana.png",
	},
	models.TypeBarrel: {
		Name:        "DK Barrel",
		Description: "Protects your streak from the next wrong answer.",
		Icon:        "barrel.png",
	},
	models.TypeAnimalBuddy: {
		Name:            "Animal Buddy",
		Description:     "Increases combo multiplier by 0.5x for 45 seconds.",
		Icon:            "animal_buddy.png",
		DurationSeconds: 45,
	},
	models.TypeGoldenBanana: {
		Name:            "Golden Banana",
		Description:     "Triples points earned for the next 30 seconds.",
		Icon:            "golden_banana.png",
		DurationSeconds: 30,
	},
	models.TypeDKCoin: {
		Name:        "DK Coin",
		Description: "Grants a large currency bonus.",
		Icon:        "dk_coin.png",
	},

	// Universal
	models.TypeDoublePoints: {
		Name:            "Double Points",
		Description:     "Doubles all points earned for 60 seconds.",
		Icon:            "double_points.png",
		DurationSeconds: 60,
	},
	models.TypeInvincibility: {
		Name:            "Invincibility",
		Description:     "No penalties for wrong answers for 30 seconds.",
		Icon:            "invincibility.png",
		DurationSeconds: 30,
	},
	models.TypeHealthRecovery: {
		Name:        "Health Recovery",
		Description: "Restores session health to full.",
		Icon:        "health_recovery.png",
	},
	models.TypeTimeFreeze: {
		Name:            "Time Freeze",
		Description:     "Pauses any active timers for 30 seconds.",
		Icon:            "time_freeze.png",
		DurationSeconds: 30,
	},
	models.TypeMultiplier: {
		Name:            "Score Multiplier",
		Description:     "Increases score multiplier by 1.5x for 45 seconds.",
		Icon:            "multiplier.png",
		DurationSeconds: 45,
	},
}

// Default returns a catalog populated with the built-in tables.
func Default() *Catalog {
	c := &Catalog{
		themeTypes: make(map[models.Theme][]models.PowerUpType, len(defaultThemeTypes)),
		metadata:   make(map[models.PowerUpType]models.PowerUpMetadata, len(defaultMetadata)),
	}
	for theme, types := range defaultThemeTypes {
		c.themeTypes[theme] = append([]models.PowerUpType(nil), types...)
	}
	for t, meta := range defaultMetadata {
		c.metadata[t] = meta
	}
	return c
}

// overrideFile is the shape of an optional catalog override on disk.
// Entries merge over the built-in tables, so a theme pack only has to
// list what it changes.
type overrideFile struct {
	Themes   map[models.Theme][]models.PowerUpType         `json:"themes"`
	PowerUps map[models.PowerUpType]models.PowerUpMetadata `json:"powerups"`
}

// Load builds the default catalog and merges an override file on top of
// it. An empty path returns the defaults; a missing or malformed file is
// an error.
func Load(path string) (*Catalog, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var override overrideFile
	if err := json.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	for theme, types := range override.Themes {
		if !theme.Valid() {
			return nil, fmt.Errorf("catalog file references unknown theme %q", theme)
		}
		c.themeTypes[theme] = append([]models.PowerUpType(nil), types...)
	}
	for t, meta := range override.PowerUps {
		if meta.DurationSeconds < 0 {
			return nil, fmt.Errorf("catalog entry %q has negative duration", t)
		}
		c.metadata[t] = meta
	}

	return c, nil
}

// EligibleTypes returns the ordered power-up types obtainable under a
// theme. Unknown themes get an empty list.
func (c *Catalog) EligibleTypes(theme models.Theme) []models.PowerUpType {
	types := c.themeTypes[theme]
	out := make([]models.PowerUpType, len(types))
	copy(out, types)
	return out
}

// MetadataFor returns the metadata for a power-up type. Types absent
// from the table get synthesized metadata with duration 0, so granting
// never fails over a missing catalog entry.
func (c *Catalog) MetadataFor(t models.PowerUpType) models.PowerUpMetadata {
	if meta, ok := c.metadata[t]; ok {
		return meta
	}
	return models.PowerUpMetadata{
		Name:        t.Humanize(),
		Description: fmt.Sprintf("A %s power-up.", t),
		Icon:        fmt.Sprintf("%s.png", t),
	}
}
