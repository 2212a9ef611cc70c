package domain

// RewardKind tags the variants of a chest reward.
type RewardKind string

const (
	RewardCoins      RewardKind = "COINS"
	RewardFreeze     RewardKind = "FREEZE"
	RewardGoldenBuff RewardKind = "GOLDEN_BUFF"
)

// Reward is a tagged union: Coins carries an amount, the other two
// variants are pure markers. Construct through the helpers so the
// amount can never be set on a non-coin reward.
type Reward struct {
	Kind  RewardKind `json:"kind"`
	Coins int64      `json:"coins,omitempty"`
}

// CoinReward returns a coin reward of the given amount.
func CoinReward(amount int64) Reward {
	return Reward{Kind: RewardCoins, Coins: amount}
}

// FreezeReward returns the streak-freeze reward.
func FreezeReward() Reward {
	return Reward{Kind: RewardFreeze}
}

// GoldenBuffReward returns the XP-doubling buff reward.
func GoldenBuffReward() Reward {
	return Reward{Kind: RewardGoldenBuff}
}
