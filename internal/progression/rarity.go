package progression

// Rarity is the difficulty tier of an achievement.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// AllRarities returns all rarities in order from lowest to highest.
func AllRarities() []Rarity {
	return []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}
}

// DisplayName returns a human-readable label for the rarity.
func (r Rarity) DisplayName() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	default:
		return string(r)
	}
}

// Icon returns the display icon for the rarity.
func (r Rarity) Icon() string {
	switch r {
	case RarityCommon:
		return "🥉"
	case RarityRare:
		return "🥈"
	case RarityEpic:
		return "🥇"
	case RarityLegendary:
		return "🏆"
	default:
		return "✦"
	}
}
