package progression

import (
	"testing"
	"time"

	"github.com/questforge/questforge/internal/app/profile"
	"github.com/questforge/questforge/internal/domain"
)

// memRepo keeps the profile in memory; persistence is exercised by the
// sqlite package's own tests.
type memRepo struct {
	p     domain.UserProfile
	found bool
}

func (m *memRepo) LoadProfile() (domain.UserProfile, bool, error) { return m.p, m.found, nil }
func (m *memRepo) SaveProfile(p domain.UserProfile) error         { m.p = p; m.found = true; return nil }

func newEngine(t *testing.T, seed domain.UserProfile, clock domain.Clock) (*Engine, *profile.Store) {
	t.Helper()
	store, err := profile.NewStore(&memRepo{p: seed, found: true})
	if err != nil {
		t.Fatal(err)
	}
	return New(store, clock), store
}

func TestRankForXP(t *testing.T) {
	tests := []struct {
		xp   int64
		want string
	}{
		{0, "Wood I"},
		{499, "Wood I"},
		{500, "Wood II"},
		{1500, "Iron I"},
		{24999, "Silver"},
		{25000, "Gold"},
		{250000, "Global Elite"},
		{9999999, "Global Elite"},
	}
	for _, tt := range tests {
		idx := RankForXP(tt.xp)
		if got := domain.Ranks[idx].Title; got != tt.want {
			t.Errorf("RankForXP(%d) = %q, want %q", tt.xp, got, tt.want)
		}
	}
}

func TestApplyXPDelta(t *testing.T) {
	clock := domain.NewFakeClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local))
	e, store := newEngine(t, domain.UserProfile{XP: 100, DailyXP: 20}, clock)

	got, err := e.ApplyXPDelta(15)
	if err != nil {
		t.Fatal(err)
	}
	if got != 15 {
		t.Errorf("effective = %d, want 15", got)
	}
	p := store.Snapshot()
	if p.XP != 115 || p.DailyXP != 35 {
		t.Errorf("XP/DailyXP = %d/%d, want 115/35", p.XP, p.DailyXP)
	}
}

func TestApplyXPDeltaClampsAtZero(t *testing.T) {
	clock := domain.NewFakeClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local))
	e, store := newEngine(t, domain.UserProfile{XP: 10, DailyXP: 5}, clock)

	if _, err := e.ApplyXPDelta(-50); err != nil {
		t.Fatal(err)
	}
	p := store.Snapshot()
	if p.XP != 0 || p.DailyXP != 0 {
		t.Errorf("XP/DailyXP = %d/%d, want 0/0", p.XP, p.DailyXP)
	}
}

func TestGoldenBuffDoublesBothDirections(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	clock := domain.NewFakeClock(now)
	seed := domain.UserProfile{XP: 1000, GoldenBuffExpires: now.Add(time.Hour).Unix()}
	e, store := newEngine(t, seed, clock)

	got, err := e.ApplyXPDelta(15)
	if err != nil {
		t.Fatal(err)
	}
	if got != 30 {
		t.Errorf("buffed award = %d, want 30", got)
	}

	// Penalties double too while the buff runs.
	got, err = e.ApplyXPDelta(-10)
	if err != nil {
		t.Fatal(err)
	}
	if got != -20 {
		t.Errorf("buffed penalty = %d, want -20", got)
	}
	if p := store.Snapshot(); p.XP != 1010 {
		t.Errorf("XP = %d, want 1010", p.XP)
	}

	// Expired buff returns to face value.
	clock.Advance(2 * time.Hour)
	got, err = e.ApplyXPDelta(15)
	if err != nil {
		t.Fatal(err)
	}
	if got != 15 {
		t.Errorf("post-buff award = %d, want 15", got)
	}
}

func TestRankUpSignalUntilAcknowledged(t *testing.T) {
	clock := domain.NewFakeClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local))
	e, _ := newEngine(t, domain.UserProfile{XP: 499}, clock)

	if _, pending := e.CheckRankUp(); pending {
		t.Fatal("no rank-up expected below the threshold")
	}

	if _, err := e.ApplyXPDelta(1); err != nil {
		t.Fatal(err)
	}
	idx, pending := e.CheckRankUp()
	if !pending || idx != 1 {
		t.Fatalf("CheckRankUp = (%d, %v), want (1, true)", idx, pending)
	}

	// Keeps signaling until acknowledged.
	if _, pending := e.CheckRankUp(); !pending {
		t.Fatal("signal should persist before acknowledgment")
	}

	if err := e.AcknowledgeRankUp(idx); err != nil {
		t.Fatal(err)
	}
	if _, pending := e.CheckRankUp(); pending {
		t.Fatal("signal should clear after acknowledgment")
	}
}

func TestAcknowledgeNeverLowersWatermark(t *testing.T) {
	clock := domain.NewFakeClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local))
	e, store := newEngine(t, domain.UserProfile{XP: 3000, LastSeenRankIndex: 3}, clock)

	if err := e.AcknowledgeRankUp(1); err != nil {
		t.Fatal(err)
	}
	if p := store.Snapshot(); p.LastSeenRankIndex != 3 {
		t.Errorf("watermark lowered to %d", p.LastSeenRankIndex)
	}
}
