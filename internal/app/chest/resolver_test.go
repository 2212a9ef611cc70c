package chest

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/questforge/questforge/internal/app/profile"
	"github.com/questforge/questforge/internal/domain"
)

type memRepo struct {
	p     domain.UserProfile
	found bool
}

func (m *memRepo) LoadProfile() (domain.UserProfile, bool, error) { return m.p, m.found, nil }
func (m *memRepo) SaveProfile(p domain.UserProfile) error         { m.p = p; m.found = true; return nil }

func newResolver(t *testing.T, seed domain.UserProfile, clock domain.Clock, rngSeed int64) (*Resolver, *profile.Store) {
	t.Helper()
	store, err := profile.NewStore(&memRepo{p: seed, found: true})
	if err != nil {
		t.Fatal(err)
	}
	return New(store, clock, rand.New(rand.NewSource(rngSeed))), store
}

func testClock() *domain.FakeClock {
	return domain.NewFakeClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local))
}

func TestOpenUnknownRarity(t *testing.T) {
	r, _ := newResolver(t, domain.UserProfile{}, testClock(), 1)
	if _, err := r.Open(domain.ChestRarity("LEGENDARY")); !errors.Is(err, domain.ErrUnknownRarity) {
		t.Errorf("err = %v, want ErrUnknownRarity", err)
	}
}

func TestOpenDoesNotMutate(t *testing.T) {
	seed := domain.UserProfile{Coins: 100, Chests: []domain.Chest{{ID: "c1", Rarity: domain.ChestEpic}}}
	r, store := newResolver(t, seed, testClock(), 1)

	if _, err := r.Open(domain.ChestEpic); err != nil {
		t.Fatal(err)
	}
	p := store.Snapshot()
	if p.Coins != 100 || len(p.Chests) != 1 {
		t.Errorf("Open mutated profile: %+v", p)
	}
}

func TestOpenDistribution(t *testing.T) {
	// 100k epic opens with a fixed seed: expect roughly 1% buffs, 4%
	// freezes, 95% coins. Wide tolerances keep this stable across
	// seeds.
	r, _ := newResolver(t, domain.UserProfile{}, testClock(), 42)

	const n = 100000
	var buffs, freezes, coins int
	for i := 0; i < n; i++ {
		reward, err := r.Open(domain.ChestEpic)
		if err != nil {
			t.Fatal(err)
		}
		switch reward.Kind {
		case domain.RewardGoldenBuff:
			buffs++
		case domain.RewardFreeze:
			freezes++
		case domain.RewardCoins:
			coins++
			if reward.Coins < 140 || reward.Coins > 500 {
				t.Fatalf("epic coin amount %d out of [140,500]", reward.Coins)
			}
		}
	}

	buffPct := float64(buffs) / n * 100
	freezePct := float64(freezes) / n * 100
	if buffPct < 0.7 || buffPct > 1.3 {
		t.Errorf("buff rate %.2f%%, want ≈1%%", buffPct)
	}
	if freezePct < 3.4 || freezePct > 4.6 {
		t.Errorf("freeze rate %.2f%%, want ≈4%%", freezePct)
	}
	if coins+buffs+freezes != n {
		t.Error("drew an unknown reward kind")
	}
}

func TestCoinAmountsClusterAroundMidpoint(t *testing.T) {
	r, _ := newResolver(t, domain.UserProfile{}, testClock(), 7)

	const n = 50000
	var sum, count int64
	for i := 0; i < n; i++ {
		reward, err := r.Open(domain.ChestCommon)
		if err != nil {
			t.Fatal(err)
		}
		if reward.Kind != domain.RewardCoins {
			continue
		}
		if reward.Coins < 10 || reward.Coins > 50 {
			t.Fatalf("common coin amount %d out of [10,50]", reward.Coins)
		}
		sum += reward.Coins
		count++
	}
	mean := float64(sum) / float64(count)
	// Midpoint is 30; flooring drags the mean slightly low.
	if mean < 27 || mean > 32 {
		t.Errorf("mean coin amount %.1f, want near 30", mean)
	}
}

func TestClaimCoins(t *testing.T) {
	seed := domain.UserProfile{Coins: 50, Chests: []domain.Chest{{ID: "c1", Rarity: domain.ChestCommon}}}
	r, store := newResolver(t, seed, testClock(), 1)

	if err := r.Claim("c1", domain.CoinReward(40)); err != nil {
		t.Fatal(err)
	}
	p := store.Snapshot()
	if p.Coins != 90 {
		t.Errorf("Coins = %d, want 90", p.Coins)
	}
	if len(p.Chests) != 0 {
		t.Error("claimed chest should leave the inventory")
	}
}

func TestClaimUnknownChest(t *testing.T) {
	seed := domain.UserProfile{Coins: 50, Chests: []domain.Chest{{ID: "c1", Rarity: domain.ChestCommon}}}
	r, store := newResolver(t, seed, testClock(), 1)

	err := r.Claim("nope", domain.CoinReward(40))
	if !errors.Is(err, domain.ErrUnknownChest) {
		t.Fatalf("err = %v, want ErrUnknownChest", err)
	}
	p := store.Snapshot()
	if p.Coins != 50 || len(p.Chests) != 1 {
		t.Errorf("failed claim mutated profile: %+v", p)
	}
}

func TestClaimFreezeIsIdempotent(t *testing.T) {
	seed := domain.UserProfile{HasFreeze: true, Chests: []domain.Chest{{ID: "c1", Rarity: domain.ChestRare}}}
	r, store := newResolver(t, seed, testClock(), 1)

	if err := r.Claim("c1", domain.FreezeReward()); err != nil {
		t.Fatal(err)
	}
	p := store.Snapshot()
	if !p.HasFreeze {
		t.Error("freeze flag should stay set")
	}
	if len(p.Chests) != 0 {
		t.Error("chest should still be consumed")
	}
}

func TestClaimGoldenBuffStacks(t *testing.T) {
	clock := testClock()
	now := clock.Now()
	seed := domain.UserProfile{
		GoldenBuffExpires: now.Add(time.Hour).Unix(),
		Chests: []domain.Chest{
			{ID: "c1", Rarity: domain.ChestEpic},
		},
	}
	r, store := newResolver(t, seed, clock, 1)

	if err := r.Claim("c1", domain.GoldenBuffReward()); err != nil {
		t.Fatal(err)
	}
	p := store.Snapshot()
	want := now.Add(time.Hour).Unix() + int64((24 * time.Hour).Seconds())
	if p.GoldenBuffExpires != want {
		t.Errorf("GoldenBuffExpires = %d, want %d (stacked on remaining time)", p.GoldenBuffExpires, want)
	}
}
