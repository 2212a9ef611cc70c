// Package reset detects logical-day rollover and settles the finished
// day: retroactive XP penalties, the daily chest award, and the daily
// XP counter reset.
package reset

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/questforge/questforge/internal/app/profile"
	"github.com/questforge/questforge/internal/domain"
	"github.com/questforge/questforge/internal/infra/metrics"
)

// Balance constants for end-of-day settlement.
const (
	habitXPValue    = 10 // a missed habit costs half its award
	taskPenaltyXP   = 15
	waterGoalML     = 3000
	waterMaxPenalty = 30
	kcalGoal        = 4000
	kcalMaxPenalty  = 50
)

// DayStats answers aggregate queries about a finished day. The daily
// trackers implement it; the scheduler never owns tracker data.
type DayStats interface {
	CompletedHabitCount(date string) (int, error)
	TotalHabitCount() int
	WaterAmount(date string) (int, error)
	TotalKcal(date string) (int, error)
	MissedTaskCount(date string) (int, error)
}

// Scheduler performs the once-per-day rollover. Tick is idempotent
// within a logical day and safe to invoke on every poll.
type Scheduler struct {
	profiles *profile.Store
	stats    DayStats
	clock    domain.Clock
}

// New creates a daily reset scheduler.
func New(profiles *profile.Store, stats DayStats, clock domain.Clock) *Scheduler {
	return &Scheduler{profiles: profiles, stats: stats, clock: clock}
}

// Tick checks for a logical-day rollover and, on the first call of a
// new day, settles the previous one. Redundant calls within the same
// day are no-ops, as is a backward clock jump.
func (s *Scheduler) Tick() error {
	now := s.clock.Now()
	today := domain.LogicalDate(now)

	p := s.profiles.Snapshot()
	switch {
	case p.LastDailyReset == "":
		// First run: establish the baseline, no penalty for the past.
		return s.profiles.Update(func(p *domain.UserProfile) {
			if p.LastDailyReset == "" {
				p.LastDailyReset = today
			}
		})
	case p.LastDailyReset == today:
		return nil
	case p.LastDailyReset > today:
		// Wall clock jumped backward; never settle a "negative" day.
		return nil
	}

	prev := p.LastDailyReset
	penalties, err := s.settlementFor(prev)
	if err != nil {
		return fmt.Errorf("settle %s: %w", prev, err)
	}

	var awarded domain.ChestRarity
	err = s.profiles.Update(func(p *domain.UserProfile) {
		if p.LastDailyReset != prev {
			return // another caller settled first
		}

		for _, pen := range penalties {
			p.XP -= int64(pen.amount)
			if p.XP < 0 {
				p.XP = 0
			}
			metrics.XPPenalties.WithLabelValues(pen.source).Add(float64(pen.amount))
		}

		// Chest award uses the daily XP accumulated during prev,
		// evaluated before the counter resets. At most one chest.
		if rarity := domain.ChestForDailyXP(p.DailyXP); rarity != "" {
			p.Chests = append(p.Chests, domain.Chest{
				ID:     uuid.NewString(),
				Rarity: rarity,
			})
			awarded = rarity
			metrics.ChestsAwarded.WithLabelValues(string(rarity)).Inc()
		}

		p.DailyXP = 0
		p.LastDailyReset = today
		metrics.XPTotal.Set(float64(p.XP))
		metrics.DailyResets.Inc()
	})
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"day":       prev,
		"penalties": len(penalties),
		"chest":     string(awarded),
	}).Info("daily settlement complete")
	return nil
}

type penalty struct {
	source string
	amount int
}

// settlementFor computes the penalty list for a finished day. Order is
// fixed for reproducibility even though the deductions are
// independent.
func (s *Scheduler) settlementFor(prev string) ([]penalty, error) {
	var penalties []penalty

	done, err := s.stats.CompletedHabitCount(prev)
	if err != nil {
		return nil, fmt.Errorf("habit count: %w", err)
	}
	if missed := s.stats.TotalHabitCount() - done; missed > 0 {
		penalties = append(penalties, penalty{"habits", missed * habitXPValue / 2})
	}

	missedTasks, err := s.stats.MissedTaskCount(prev)
	if err != nil {
		return nil, fmt.Errorf("missed tasks: %w", err)
	}
	if missedTasks > 0 {
		penalties = append(penalties, penalty{"tasks", missedTasks * taskPenaltyXP})
	}

	water, err := s.stats.WaterAmount(prev)
	if err != nil {
		return nil, fmt.Errorf("water: %w", err)
	}
	if water < waterGoalML {
		amount := (waterGoalML - water) * waterMaxPenalty / waterGoalML
		penalties = append(penalties, penalty{"water", amount})
	}

	kcal, err := s.stats.TotalKcal(prev)
	if err != nil {
		return nil, fmt.Errorf("kcal: %w", err)
	}
	if kcal < kcalGoal {
		amount := (kcalGoal - kcal) * kcalMaxPenalty / kcalGoal
		penalties = append(penalties, penalty{"calories", amount})
	}

	return penalties, nil
}
