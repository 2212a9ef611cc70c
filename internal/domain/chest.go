package domain

// ChestRarity names a loot-chest tier.
type ChestRarity string

const (
	ChestCommon ChestRarity = "COMMON"
	ChestRare   ChestRarity = "RARE"
	ChestEpic   ChestRarity = "EPIC"
)

// Valid reports whether r is a known rarity.
func (r ChestRarity) Valid() bool {
	switch r {
	case ChestCommon, ChestRare, ChestEpic:
		return true
	}
	return false
}

// Chest is one unopened loot container. Chests carry an opaque
// identity so a claim can never hit the wrong slot after the inventory
// mutates between roll and claim.
type Chest struct {
	ID     string      `json:"id"`
	Rarity ChestRarity `json:"rarity"`
}

// ChestOdds describes the reward table for one rarity. Percentages are
// evaluated against a single uniform draw in [0,100): buff first, then
// freeze, otherwise coins.
type ChestOdds struct {
	BuffPct   float64
	FreezePct float64
	CoinMin   int64
	CoinMax   int64
}

// OddsFor returns the reward table for a rarity. Unknown rarities fall
// back to the common table.
func OddsFor(r ChestRarity) ChestOdds {
	switch r {
	case ChestEpic:
		return ChestOdds{BuffPct: 1, FreezePct: 4, CoinMin: 140, CoinMax: 500}
	case ChestRare:
		return ChestOdds{BuffPct: 0.5, FreezePct: 2, CoinMin: 60, CoinMax: 120}
	default:
		return ChestOdds{BuffPct: 0.2, FreezePct: 1, CoinMin: 10, CoinMax: 50}
	}
}

// Daily-XP chest award thresholds, checked highest first at rollover.
const (
	EpicChestDailyXP   = 600
	RareChestDailyXP   = 300
	CommonChestDailyXP = 100
)

// ChestForDailyXP returns the rarity earned for a day's XP, or "" if
// the day fell short of every threshold.
func ChestForDailyXP(dailyXP int64) ChestRarity {
	switch {
	case dailyXP >= EpicChestDailyXP:
		return ChestEpic
	case dailyXP >= RareChestDailyXP:
		return ChestRare
	case dailyXP >= CommonChestDailyXP:
		return ChestCommon
	}
	return ""
}
