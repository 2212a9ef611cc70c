package streak

import (
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

func newTracker(t *testing.T, seed domain.UserProfile, clock domain.Clock) (*Tracker, *profile.Store) {
	t.Helper()
	store, err := profile.NewStore(&memRepo{p: seed, found: true})
	if err != nil {
		t.Fatal(err)
	}
	return New(store, clock), store
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
}

func TestFirstTickStartsStreak(t *testing.T) {
	clock := domain.NewFakeClock(date(2026, 3, 10))
	tr, store := newTracker(t, domain.UserProfile{}, clock)

	if err := tr.Tick(); err != nil {
		t.Fatal(err)
	}
	p := store.Snapshot()
	if p.Streak != 1 {
		t.Errorf("Streak = %d, want 1", p.Streak)
	}
	if p.LastActiveDate != "2026-03-10" {
		t.Errorf("LastActiveDate = %q", p.LastActiveDate)
	}
}

func TestConsecutiveDaysExtend(t *testing.T) {
	clock := domain.NewFakeClock(date(2026, 3, 10))
	tr, store := newTracker(t, domain.UserProfile{Streak: 4, LastActiveDate: "2026-03-09"}, clock)

	if err := tr.Tick(); err != nil {
		t.Fatal(err)
	}
	if p := store.Snapshot(); p.Streak != 5 {
		t.Errorf("Streak = %d, want 5", p.Streak)
	}
}

func TestSameDayTickIsNoop(t *testing.T) {
	clock := domain.NewFakeClock(date(2026, 3, 10))
	tr, store := newTracker(t, domain.UserProfile{Streak: 4, LastActiveDate: "2026-03-10"}, clock)

	if err := tr.Tick(); err != nil {
		t.Fatal(err)
	}
	if p := store.Snapshot(); p.Streak != 4 {
		t.Errorf("Streak = %d, want unchanged 4", p.Streak)
	}
}

func TestFreezeForgivesGap(t *testing.T) {
	// Last active four days ago: without a freeze this is a hard
	// reset, with one the streak survives and grows.
	clock := domain.NewFakeClock(date(2026, 3, 10))
	tr, store := newTracker(t, domain.UserProfile{
		Streak: 9, HasFreeze: true, LastActiveDate: "2026-03-06",
	}, clock)

	if err := tr.Tick(); err != nil {
		t.Fatal(err)
	}
	p := store.Snapshot()
	if p.Streak != 10 {
		t.Errorf("Streak = %d, want 10", p.Streak)
	}
	if p.HasFreeze {
		t.Error("freeze should be consumed")
	}
}

func TestGapWithoutFreezeResets(t *testing.T) {
	clock := domain.NewFakeClock(date(2026, 3, 10))
	tr, store := newTracker(t, domain.UserProfile{Streak: 9, LastActiveDate: "2026-03-08"}, clock)

	if err := tr.Tick(); err != nil {
		t.Fatal(err)
	}
	if p := store.Snapshot(); p.Streak != 1 {
		t.Errorf("Streak = %d, want reset to 1", p.Streak)
	}
}

func TestFreezeConsumedOnlyOnce(t *testing.T) {
	clock := domain.NewFakeClock(date(2026, 3, 10))
	tr, store := newTracker(t, domain.UserProfile{
		Streak: 9, HasFreeze: true, LastActiveDate: "2026-03-06",
	}, clock)

	if err := tr.Tick(); err != nil {
		t.Fatal(err)
	}
	// Miss another day: no freeze left, streak resets.
	clock.Set(date(2026, 3, 12))
	if err := tr.Tick(); err != nil {
		t.Fatal(err)
	}
	if p := store.Snapshot(); p.Streak != 1 {
		t.Errorf("Streak = %d, want 1 after second gap", p.Streak)
	}
}

func TestBackwardClockJumpIsNoop(t *testing.T) {
	clock := domain.NewFakeClock(date(2026, 3, 10))
	tr, store := newTracker(t, domain.UserProfile{Streak: 7, LastActiveDate: "2026-03-15"}, clock)

	if err := tr.Tick(); err != nil {
		t.Fatal(err)
	}
	p := store.Snapshot()
	if p.Streak != 7 || p.LastActiveDate != "2026-03-15" {
		t.Errorf("profile mutated on backward jump: %+v", p)
	}
}
