// Package chest rolls and claims loot-chest rewards.
//
// Open and Claim are split on purpose: Open is a pure randomized draw
// the UI can animate, Claim is the mutation that removes the chest and
// applies whatever Open produced.
package chest

import (
	"math"
	"math/rand"
	"sync"

	"github.com/questforge/questforge/internal/app/profile"
	"github.com/questforge/questforge/internal/domain"
	"github.com/questforge/questforge/internal/infra/metrics"
)

// Resolver draws rewards and commits claims.
type Resolver struct {
	profiles *profile.Store
	clock    domain.Clock

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a resolver. Tests pass a seeded source for
// reproducibility.
func New(profiles *profile.Store, clock domain.Clock, rng *rand.Rand) *Resolver {
	return &Resolver{profiles: profiles, clock: clock, rng: rng}
}

// Open draws a reward for the given rarity. A single uniform roll in
// [0,100) decides the variant — buff first, then freeze, otherwise
// coins from a truncated Gaussian. No state is mutated.
func (r *Resolver) Open(rarity domain.ChestRarity) (domain.Reward, error) {
	if !rarity.Valid() {
		return domain.Reward{}, domain.ErrUnknownRarity
	}
	odds := domain.OddsFor(rarity)

	r.mu.Lock()
	roll := r.rng.Float64() * 100
	var amount int64
	if roll >= odds.BuffPct+odds.FreezePct {
		amount = r.gaussianAmount(odds.CoinMin, odds.CoinMax)
	}
	r.mu.Unlock()

	switch {
	case roll < odds.BuffPct:
		return domain.GoldenBuffReward(), nil
	case roll < odds.BuffPct+odds.FreezePct:
		return domain.FreezeReward(), nil
	default:
		return domain.CoinReward(amount), nil
	}
}

// gaussianAmount samples a bell-shaped coin amount via the Box-Muller
// transform: mean at the range midpoint, one sixth of the range as
// standard deviation, floored and clamped into [min, max]. Caller
// holds r.mu.
func (r *Resolver) gaussianAmount(min, max int64) int64 {
	var u, v float64
	for u == 0 {
		u = r.rng.Float64()
	}
	for v == 0 {
		v = r.rng.Float64()
	}
	n := math.Sqrt(-2*math.Log(u)) * math.Cos(2*math.Pi*v)

	mean := float64(min+max) / 2
	stdDev := float64(max-min) / 6
	amount := int64(math.Floor(mean + n*stdDev))
	if amount < min {
		amount = min
	}
	if amount > max {
		amount = max
	}
	return amount
}

// Claim removes the chest with the given identity from the inventory
// and applies the reward. Claiming an unknown chest is rejected with
// no mutation — that is a caller bug, not a user error.
func (r *Resolver) Claim(chestID string, reward domain.Reward) error {
	now := r.clock.Now()

	var rarity domain.ChestRarity
	missing := false
	err := r.profiles.Update(func(p *domain.UserProfile) {
		idx := p.ChestByID(chestID)
		if idx < 0 {
			missing = true
			return
		}
		rarity = p.Chests[idx].Rarity
		p.Chests = append(p.Chests[:idx], p.Chests[idx+1:]...)

		switch reward.Kind {
		case domain.RewardCoins:
			p.Coins += reward.Coins
			metrics.CoinsBalance.Set(float64(p.Coins))
		case domain.RewardFreeze:
			// Idempotent: a held freeze does not stack.
			p.HasFreeze = true
		case domain.RewardGoldenBuff:
			p.ExtendGoldenBuff(now)
		}
	})
	if missing {
		return domain.ErrUnknownChest
	}
	if err != nil {
		return err
	}

	metrics.ChestsClaimed.WithLabelValues(string(rarity), string(reward.Kind)).Inc()
	return nil
}
