package snapshot

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/questforge/questforge/internal/app/profile"
	"github.com/questforge/questforge/internal/domain"
	"github.com/questforge/questforge/internal/infra/sqlite"
)

func newManager(t *testing.T) (*Manager, *profile.Store, *sqlite.DB) {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	profiles, err := profile.NewStore(db)
	if err != nil {
		t.Fatal(err)
	}
	return New(profiles, db), profiles, db
}

func seedState(t *testing.T, profiles *profile.Store, db *sqlite.DB) {
	t.Helper()
	err := profiles.Replace(domain.UserProfile{
		XP: 12000, Coins: 340, Streak: 12, HasFreeze: true,
		LastActiveDate: "2026-03-10", LastDailyReset: "2026-03-10",
		Chests: []domain.Chest{{ID: "c1", Rarity: domain.ChestRare}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.UnlockAchievement("monk_mode", "2026-03-01"); err != nil {
		t.Fatal(err)
	}
	if err := db.InsertPurchase(domain.PurchaseEntry{
		ID: "p1", Date: "2026-03-09", ItemName: "Chocolate Bar",
		Cost: 100, Category: domain.CategoryFood,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := db.InsertTask(domain.Task{Title: "Run", Enabled: true, DaysMask: 127}); err != nil {
		t.Fatal(err)
	}
	if err := db.SetWater("2026-03-10", 2500); err != nil {
		t.Fatal(err)
	}
	if err := db.AddHabit("2026-03-10", "Reading"); err != nil {
		t.Fatal(err)
	}
	if err := db.LogWeight("2026-03-10", 82.0); err != nil {
		t.Fatal(err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	m, profiles, db := newManager(t)
	seedState(t, profiles, db)

	data, err := m.Export()
	if err != nil {
		t.Fatal(err)
	}

	// Import into a fresh store and database.
	m2, profiles2, db2 := newManager(t)
	if err := m2.Import(data); err != nil {
		t.Fatal(err)
	}

	p := profiles2.Snapshot()
	if p.XP != 12000 || p.Coins != 340 || p.Streak != 12 || !p.HasFreeze {
		t.Errorf("profile = %+v", p)
	}
	if len(p.Chests) != 1 || p.Chests[0].ID != "c1" {
		t.Errorf("chests = %+v", p.Chests)
	}

	unlocks, err := db2.AchievementUnlocks()
	if err != nil {
		t.Fatal(err)
	}
	if unlocks["monk_mode"] != "2026-03-01" {
		t.Errorf("unlocks = %v", unlocks)
	}

	purchases, err := db2.ListPurchases(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(purchases) != 1 || purchases[0].ID != "p1" {
		t.Errorf("purchases = %+v", purchases)
	}

	tasks, err := db2.ListTasks()
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Run" {
		t.Errorf("tasks = %+v", tasks)
	}

	if ml, _ := db2.Water("2026-03-10"); ml != 2500 {
		t.Errorf("water = %d, want 2500", ml)
	}
	if n, _ := db2.HabitCount("2026-03-10"); n != 1 {
		t.Errorf("habit marks = %d, want 1", n)
	}
	weights, _ := db2.WeightHistory()
	if len(weights) != 1 || weights[0].Kg != 82.0 {
		t.Errorf("weights = %+v", weights)
	}
}

func TestImportReplacesExistingState(t *testing.T) {
	m, profiles, db := newManager(t)
	seedState(t, profiles, db)
	data, err := m.Export()
	if err != nil {
		t.Fatal(err)
	}

	m2, profiles2, db2 := newManager(t)
	if err := profiles2.Replace(domain.UserProfile{XP: 1, Coins: 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := db2.InsertTask(domain.Task{Title: "Stale", Enabled: true}); err != nil {
		t.Fatal(err)
	}

	if err := m2.Import(data); err != nil {
		t.Fatal(err)
	}
	if got := profiles2.Snapshot().XP; got != 12000 {
		t.Errorf("XP = %d, want 12000", got)
	}
	tasks, _ := db2.ListTasks()
	if len(tasks) != 1 || tasks[0].Title != "Run" {
		t.Errorf("stale task survived import: %+v", tasks)
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	m, _, _ := newManager(t)
	if err := m.Import([]byte("not json")); !errors.Is(err, domain.ErrInvalidSnapshot) {
		t.Errorf("err = %v, want ErrInvalidSnapshot", err)
	}
}

func TestImportValidation(t *testing.T) {
	valid := func() Snapshot {
		return Snapshot{Version: Version}
	}

	tests := []struct {
		name   string
		mutate func(*Snapshot)
	}{
		{"wrong version", func(s *Snapshot) { s.Version = 99 }},
		{"negative xp", func(s *Snapshot) { s.Profile.XP = -5 }},
		{"negative coins", func(s *Snapshot) { s.Profile.Coins = -1 }},
		{"rank index out of range", func(s *Snapshot) { s.Profile.LastSeenRankIndex = 50 }},
		{"chest without id", func(s *Snapshot) {
			s.Profile.Chests = []domain.Chest{{Rarity: domain.ChestRare}}
		}},
		{"chest bad rarity", func(s *Snapshot) {
			s.Profile.Chests = []domain.Chest{{ID: "x", Rarity: "MYTHIC"}}
		}},
		{"purchase bad category", func(s *Snapshot) {
			s.Purchases = []domain.PurchaseEntry{{ID: "p", Category: "loot"}}
		}},
		{"unknown achievement code", func(s *Snapshot) {
			s.Achievements = map[string]string{"made_up": "2026-03-10"}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, profiles, _ := newManager(t)
			doc := valid()
			tt.mutate(&doc)
			data, err := json.Marshal(doc)
			if err != nil {
				t.Fatal(err)
			}
			if err := m.Import(data); !errors.Is(err, domain.ErrInvalidSnapshot) {
				t.Fatalf("err = %v, want ErrInvalidSnapshot", err)
			}
			// A rejected import leaves the current state untouched.
			if got := profiles.Snapshot(); got.XP != 0 {
				t.Errorf("state mutated by rejected import: %+v", got)
			}
		})
	}
}
