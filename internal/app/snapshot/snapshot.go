// Package snapshot serializes the full engine state to a portable JSON
// document and restores it, for backup and device migration.
package snapshot

import (
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/questforge/questforge/internal/app/profile"
	"github.com/questforge/questforge/internal/domain"
)

// Version is bumped when the document layout changes incompatibly.
const Version = 1

// Snapshot is the export document.
type Snapshot struct {
	Version      int                    `json:"version"`
	Profile      domain.UserProfile     `json:"profile"`
	Achievements map[string]string      `json:"achievements"` // code -> unlock date
	Purchases    []domain.PurchaseEntry `json:"purchases"`    // newest first
	Tasks        []domain.Task          `json:"tasks"`
	Food         []domain.FoodEntry     `json:"food"`
	Sport        []domain.SportEntry    `json:"sport"`
	Water        map[string]int         `json:"water"`  // date -> ml
	Habits       map[string][]string    `json:"habits"` // date -> names
	Weights      []domain.WeightPoint   `json:"weights"`
}

// Repo is the storage surface snapshots read and rewrite.
type Repo interface {
	AchievementUnlocks() (map[string]string, error)
	ReplaceAchievements(unlocks map[string]string) error
	ListPurchases(limit int) ([]domain.PurchaseEntry, error)
	ReplacePurchases(entries []domain.PurchaseEntry) error
	ListTasks() ([]domain.Task, error)
	DumpFood() ([]domain.FoodEntry, error)
	DumpSport() ([]domain.SportEntry, error)
	DumpWater() (map[string]int, error)
	DumpHabits() (map[string][]string, error)
	WeightHistory() ([]domain.WeightPoint, error)
	RestoreTrackers(tasks []domain.Task, food []domain.FoodEntry,
		sport []domain.SportEntry, water map[string]int,
		habits map[string][]string, weights []domain.WeightPoint) error
}

// Manager exports and imports snapshots.
type Manager struct {
	profiles *profile.Store
	repo     Repo
}

func New(profiles *profile.Store, repo Repo) *Manager {
	return &Manager{profiles: profiles, repo: repo}
}

// Export assembles the current state into a JSON document.
func (m *Manager) Export() ([]byte, error) {
	unlocks, err := m.repo.AchievementUnlocks()
	if err != nil {
		return nil, fmt.Errorf("export achievements: %w", err)
	}
	purchases, err := m.repo.ListPurchases(domain.PurchaseLogCap)
	if err != nil {
		return nil, fmt.Errorf("export purchases: %w", err)
	}
	tasks, err := m.repo.ListTasks()
	if err != nil {
		return nil, fmt.Errorf("export tasks: %w", err)
	}
	food, err := m.repo.DumpFood()
	if err != nil {
		return nil, fmt.Errorf("export food: %w", err)
	}
	sport, err := m.repo.DumpSport()
	if err != nil {
		return nil, fmt.Errorf("export sport: %w", err)
	}
	water, err := m.repo.DumpWater()
	if err != nil {
		return nil, fmt.Errorf("export water: %w", err)
	}
	habits, err := m.repo.DumpHabits()
	if err != nil {
		return nil, fmt.Errorf("export habits: %w", err)
	}
	weights, err := m.repo.WeightHistory()
	if err != nil {
		return nil, fmt.Errorf("export weights: %w", err)
	}

	doc := Snapshot{
		Version:      Version,
		Profile:      m.profiles.Snapshot(),
		Achievements: unlocks,
		Purchases:    purchases,
		Tasks:        tasks,
		Food:         food,
		Sport:        sport,
		Water:        water,
		Habits:       habits,
		Weights:      weights,
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Import validates and applies a snapshot document, replacing all
// current state. Validation happens before any write; a document that
// fails it changes nothing.
func (m *Manager) Import(data []byte) error {
	var doc Snapshot
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidSnapshot, err)
	}
	if err := validate(&doc); err != nil {
		return err
	}

	if err := m.repo.ReplaceAchievements(doc.Achievements); err != nil {
		return fmt.Errorf("import achievements: %w", err)
	}
	if err := m.repo.ReplacePurchases(doc.Purchases); err != nil {
		return fmt.Errorf("import purchases: %w", err)
	}
	if err := m.repo.RestoreTrackers(doc.Tasks, doc.Food, doc.Sport,
		doc.Water, doc.Habits, doc.Weights); err != nil {
		return fmt.Errorf("import trackers: %w", err)
	}
	if err := m.profiles.Replace(doc.Profile); err != nil {
		return fmt.Errorf("import profile: %w", err)
	}

	log.WithFields(log.Fields{
		"xp":     doc.Profile.XP,
		"chests": len(doc.Profile.Chests),
		"tasks":  len(doc.Tasks),
	}).Info("snapshot imported")
	return nil
}

func validate(doc *Snapshot) error {
	if doc.Version != Version {
		return fmt.Errorf("%w: unsupported version %d", domain.ErrInvalidSnapshot, doc.Version)
	}
	p := &doc.Profile
	if p.XP < 0 || p.Coins < 0 || p.DailyXP < 0 || p.Streak < 0 {
		return fmt.Errorf("%w: negative progression values", domain.ErrInvalidSnapshot)
	}
	if p.LastSeenRankIndex < 0 || p.LastSeenRankIndex >= len(domain.Ranks) {
		return fmt.Errorf("%w: rank index out of range", domain.ErrInvalidSnapshot)
	}
	for _, c := range p.Chests {
		if c.ID == "" || !c.Rarity.Valid() {
			return fmt.Errorf("%w: malformed chest", domain.ErrInvalidSnapshot)
		}
	}
	for _, e := range doc.Purchases {
		if e.ID == "" || e.Cost < 0 || !e.Category.Valid() {
			return fmt.Errorf("%w: malformed purchase entry", domain.ErrInvalidSnapshot)
		}
	}
	catalog := make(map[string]bool)
	for _, def := range domain.Achievements() {
		catalog[def.Code] = true
	}
	for code := range doc.Achievements {
		if !catalog[code] {
			return fmt.Errorf("%w: unknown achievement %q", domain.ErrInvalidSnapshot, code)
		}
	}
	return nil
}
