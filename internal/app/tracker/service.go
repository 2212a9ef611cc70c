// Package tracker manages the daily activity logs (tasks, food, water,
// sport, habits, weight) and wires each mutation to its XP award,
// streak credit, and achievement check.
package tracker

import (
	log "github.com/sirupsen/logrus"

	"github.com/questforge/questforge/internal/app/achievement"
	"github.com/questforge/questforge/internal/app/profile"
	"github.com/questforge/questforge/internal/app/progression"
	"github.com/questforge/questforge/internal/app/streak"
	"github.com/questforge/questforge/internal/domain"
)

// XP values per action. Deletions refund what the addition granted,
// except workouts which always cost a flat amount regardless of
// intensity.
const (
	xpTaskComplete   int64 = 15
	xpTaskAdd        int64 = 10
	xpTaskDelete     int64 = -10
	xpFoodAdd        int64 = 5
	xpFoodDelete     int64 = -5
	xpSportDelete    int64 = -15
	xpHabit          int64 = 10
	xpPerWaterStep   int64 = 2
	waterStepML            = 250
)

// xpForIntensity maps workout intensity to its award.
func xpForIntensity(i domain.Intensity) int64 {
	switch i {
	case domain.IntensityHeavy:
		return 25
	case domain.IntensityMedium:
		return 15
	default:
		return 10
	}
}

// Repo is the persistence surface the tracker needs.
type Repo interface {
	InsertTask(t domain.Task) (int64, error)
	UpdateTask(t domain.Task) error
	DeleteTask(id int64) error
	GetTask(id int64) (*domain.Task, error)
	ListTasks() ([]domain.Task, error)
	MissedTaskCount(date string) (int, error)
	TasksCompletedOn(date string) (int, error)
	EnabledTaskCount() (int, error)

	InsertFood(e domain.FoodEntry) (int64, error)
	DeleteFood(id int64) error
	ListFood(date string) ([]domain.FoodEntry, error)
	TotalKcal(date string) (int, error)

	InsertSport(e domain.SportEntry) (int64, error)
	DeleteSport(id int64) error
	ListSport(date string) ([]domain.SportEntry, error)
	SportCount(date string) (int, error)

	SetWater(date string, ml int) error
	Water(date string) (int, error)

	AddHabit(date, name string) error
	RemoveHabit(date, name string) (bool, error)
	HabitsOn(date string) ([]string, error)
	HabitCount(date string) (int, error)

	LogWeight(date string, kg float64) error
	WeightHistory() ([]domain.WeightPoint, error)
}

// Service is the tracker facade. Every mutating method persists first,
// then applies the XP delta and runs the follow-on checks.
type Service struct {
	repo         Repo
	profiles     *profile.Store
	xp           *progression.Engine
	streaks      *streak.Tracker
	achievements *achievement.Evaluator
	clock        domain.Clock
}

func New(repo Repo, profiles *profile.Store, xp *progression.Engine,
	streaks *streak.Tracker, achievements *achievement.Evaluator, clock domain.Clock) *Service {
	return &Service{
		repo:         repo,
		profiles:     profiles,
		xp:           xp,
		streaks:      streaks,
		achievements: achievements,
		clock:        clock,
	}
}

func (s *Service) today() string {
	return domain.LogicalDate(s.clock.Now())
}

// reward applies a positive XP delta, credits the streak, and runs the
// achievement catalog. Failures past the XP apply are logged, not
// returned: the user action itself already succeeded.
func (s *Service) reward(amount int64, taskHour, foodHour int) {
	if _, err := s.xp.ApplyXPDelta(amount); err != nil {
		log.WithError(err).Warn("xp award not persisted")
	}
	if err := s.streaks.Tick(); err != nil {
		log.WithError(err).Warn("streak tick not persisted")
	}
	stats, err := s.Stats(taskHour, foodHour)
	if err != nil {
		log.WithError(err).Warn("achievement stats unavailable")
		return
	}
	if _, err := s.achievements.CheckAndUnlock(stats); err != nil {
		log.WithError(err).Warn("achievement check failed")
	}
}

// penalize applies a negative XP delta with none of the follow-ons.
func (s *Service) penalize(amount int64) {
	if _, err := s.xp.ApplyXPDelta(amount); err != nil {
		log.WithError(err).Warn("xp deduction not persisted")
	}
}

// Stats assembles the achievement snapshot for the current logical day.
// taskHour and foodHour carry the hour-of-day of the action that
// triggered the check, -1 when not applicable.
func (s *Service) Stats(taskHour, foodHour int) (domain.UserStats, error) {
	date := s.today()
	p := s.profiles.Snapshot()

	kcal, err := s.repo.TotalKcal(date)
	if err != nil {
		return domain.UserStats{}, err
	}
	water, err := s.repo.Water(date)
	if err != nil {
		return domain.UserStats{}, err
	}
	sport, err := s.repo.SportCount(date)
	if err != nil {
		return domain.UserStats{}, err
	}
	habitsDone, err := s.repo.HabitCount(date)
	if err != nil {
		return domain.UserStats{}, err
	}
	tasksDone, err := s.repo.TasksCompletedOn(date)
	if err != nil {
		return domain.UserStats{}, err
	}
	tasksScheduled, err := s.repo.EnabledTaskCount()
	if err != nil {
		return domain.UserStats{}, err
	}

	return domain.UserStats{
		XP:              p.XP,
		Streak:          p.Streak,
		DayKcal:         kcal,
		DayWaterML:      water,
		DaySportEntries: sport,
		HabitsDone:      habitsDone,
		HabitsTotal:     len(domain.DefaultHabits),
		TasksDone:       tasksDone,
		TasksScheduled:  tasksScheduled,
		LastTaskHour:    taskHour,
		LastFoodHour:    foodHour,
	}, nil
}

// ─── Tasks ──────────────────────────────────────────────────────────────────

// AddTask creates a scheduled task and awards the planning XP.
func (s *Service) AddTask(t domain.Task) (domain.Task, error) {
	t.LastNotified = ""
	t.LastCompleted = ""
	id, err := s.repo.InsertTask(t)
	if err != nil {
		return domain.Task{}, err
	}
	t.ID = id
	s.reward(xpTaskAdd, -1, -1)
	return t, nil
}

// UpdateTask rewrites a task's schedule fields. No XP moves.
func (s *Service) UpdateTask(t domain.Task) error {
	current, err := s.repo.GetTask(t.ID)
	if err != nil {
		return err
	}
	t.LastNotified = current.LastNotified
	t.LastCompleted = current.LastCompleted
	return s.repo.UpdateTask(t)
}

// DeleteTask removes a task and charges back the planning XP.
func (s *Service) DeleteTask(id int64) error {
	if err := s.repo.DeleteTask(id); err != nil {
		return err
	}
	s.penalize(xpTaskDelete)
	return nil
}

// CompleteTask marks a task done for the current logical day and awards
// its XP. Completing the same task twice in one day is a no-op.
func (s *Service) CompleteTask(id int64) error {
	t, err := s.repo.GetTask(id)
	if err != nil {
		return err
	}
	date := s.today()
	if t.LastCompleted == date {
		return nil
	}
	t.LastCompleted = date
	if err := s.repo.UpdateTask(*t); err != nil {
		return err
	}
	s.reward(xpTaskComplete, s.clock.Now().Hour(), -1)
	return nil
}

// MarkTaskNotified records that a reminder fired for the current
// logical day. Unanswered reminders feed the nightly penalty.
func (s *Service) MarkTaskNotified(id int64) error {
	t, err := s.repo.GetTask(id)
	if err != nil {
		return err
	}
	date := s.today()
	if t.LastNotified == date {
		return nil
	}
	t.LastNotified = date
	return s.repo.UpdateTask(*t)
}

// Tasks lists all scheduled tasks.
func (s *Service) Tasks() ([]domain.Task, error) {
	return s.repo.ListTasks()
}

// ─── Food ───────────────────────────────────────────────────────────────────

// AddFood logs a food entry for the current logical day and awards the
// diary XP.
func (s *Service) AddFood(e domain.FoodEntry) (domain.FoodEntry, error) {
	e.Date = s.today()
	id, err := s.repo.InsertFood(e)
	if err != nil {
		return domain.FoodEntry{}, err
	}
	e.ID = id
	s.reward(xpFoodAdd, -1, s.clock.Now().Hour())
	return e, nil
}

// DeleteFood removes a food entry and charges back its XP.
func (s *Service) DeleteFood(id int64) error {
	if err := s.repo.DeleteFood(id); err != nil {
		return err
	}
	s.penalize(xpFoodDelete)
	return nil
}

// Food lists the current logical day's food entries.
func (s *Service) Food() ([]domain.FoodEntry, error) {
	return s.repo.ListFood(s.today())
}

// ─── Water ──────────────────────────────────────────────────────────────────

// SetWater records the day's running water total. XP moves with the
// change: two points per full 250 ml step, in either direction.
func (s *Service) SetWater(ml int) error {
	if ml < 0 {
		ml = 0
	}
	date := s.today()
	prev, err := s.repo.Water(date)
	if err != nil {
		return err
	}
	if err := s.repo.SetWater(date, ml); err != nil {
		return err
	}
	delta := int64((ml-prev)/waterStepML) * xpPerWaterStep
	if delta > 0 {
		s.reward(delta, -1, -1)
	} else if delta < 0 {
		s.penalize(delta)
	}
	return nil
}

// WaterToday returns the day's running total in milliliters.
func (s *Service) WaterToday() (int, error) {
	return s.repo.Water(s.today())
}

// ─── Sport ──────────────────────────────────────────────────────────────────

// AddSport logs a workout for the current logical day. The award scales
// with intensity.
func (s *Service) AddSport(e domain.SportEntry) (domain.SportEntry, error) {
	if e.Intensity != domain.IntensityLight &&
		e.Intensity != domain.IntensityMedium &&
		e.Intensity != domain.IntensityHeavy {
		e.Intensity = domain.IntensityLight
	}
	e.Date = s.today()
	id, err := s.repo.InsertSport(e)
	if err != nil {
		return domain.SportEntry{}, err
	}
	e.ID = id
	s.reward(xpForIntensity(e.Intensity), -1, -1)
	return e, nil
}

// DeleteSport removes a workout and applies the flat chargeback.
func (s *Service) DeleteSport(id int64) error {
	if err := s.repo.DeleteSport(id); err != nil {
		return err
	}
	s.penalize(xpSportDelete)
	return nil
}

// Sport lists the current logical day's workouts.
func (s *Service) Sport() ([]domain.SportEntry, error) {
	return s.repo.ListSport(s.today())
}

// ─── Habits ─────────────────────────────────────────────────────────────────

// ToggleHabit flips a habit's done mark for the current logical day and
// moves the habit XP accordingly. Returns the new done state.
func (s *Service) ToggleHabit(name string) (bool, error) {
	date := s.today()
	done, err := s.repo.HabitsOn(date)
	if err != nil {
		return false, err
	}
	marked := false
	for _, h := range done {
		if h == name {
			marked = true
			break
		}
	}
	if marked {
		existed, err := s.repo.RemoveHabit(date, name)
		if err != nil {
			return true, err
		}
		if existed {
			s.penalize(-xpHabit)
		}
		return false, nil
	}
	if err := s.repo.AddHabit(date, name); err != nil {
		return false, err
	}
	s.reward(xpHabit, -1, -1)
	return true, nil
}

// Habits pairs every habit with its done mark for the current logical
// day.
func (s *Service) Habits() (map[string]bool, error) {
	done, err := s.repo.HabitsOn(s.today())
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(domain.DefaultHabits))
	for _, h := range domain.DefaultHabits {
		out[h] = false
	}
	for _, h := range done {
		out[h] = true
	}
	return out, nil
}

// ─── Weight ─────────────────────────────────────────────────────────────────

// LogWeight records a body-weight measurement for the current logical
// day and mirrors it onto the profile. No XP moves.
func (s *Service) LogWeight(kg float64) error {
	if err := s.repo.LogWeight(s.today(), kg); err != nil {
		return err
	}
	return s.profiles.Update(func(p *domain.UserProfile) {
		p.WeightKg = kg
	})
}

// WeightHistory returns all measurements, oldest first.
func (s *Service) WeightHistory() ([]domain.WeightPoint, error) {
	return s.repo.WeightHistory()
}

// ─── Reset feed ─────────────────────────────────────────────────────────────

// CompletedHabitCount reports how many habits were marked done on date.
func (s *Service) CompletedHabitCount(date string) (int, error) {
	return s.repo.HabitCount(date)
}

// TotalHabitCount reports the habit catalog size.
func (s *Service) TotalHabitCount() int {
	return len(domain.DefaultHabits)
}

// WaterAmount reports the water total recorded for date.
func (s *Service) WaterAmount(date string) (int, error) {
	return s.repo.Water(date)
}

// TotalKcal reports the calories logged on date.
func (s *Service) TotalKcal(date string) (int, error) {
	return s.repo.TotalKcal(date)
}

// MissedTaskCount reports tasks reminded but not completed on date.
func (s *Service) MissedTaskCount(date string) (int, error) {
	return s.repo.MissedTaskCount(date)
}
