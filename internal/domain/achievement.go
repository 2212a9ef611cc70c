package domain

// UserStats is a snapshot of user state fed to achievement predicates.
// It is assembled after each mutating action from the profile and the
// day's tracker aggregates; predicates never query storage themselves.
type UserStats struct {
	XP              int64
	Streak          int
	DayKcal         int
	DayWaterML      int
	DaySportEntries int
	HabitsDone      int
	HabitsTotal     int
	TasksDone       int
	TasksScheduled  int

	// Hour-of-day of the most recent task completion and food entry,
	// -1 when the triggering action was neither.
	LastTaskHour int
	LastFoodHour int
}

// AchievementDef defines one achievement and its unlock condition.
type AchievementDef struct {
	Code      string               `json:"code"`
	Name      string               `json:"name"`
	Desc      string               `json:"desc"`
	Predicate func(UserStats) bool `json:"-"`
}

// Achievements returns the full catalog. Unlock state lives in
// storage; presence of a code there means unlocked.
func Achievements() []AchievementDef {
	return []AchievementDef{
		{
			Code: "monk_mode", Name: "Monk Mode", Desc: "Hold a 30-day streak",
			Predicate: func(s UserStats) bool { return s.Streak >= 30 },
		},
		{
			Code: "giga_chad", Name: "Giga Chad", Desc: "Reach 50,000 lifetime XP",
			Predicate: func(s UserStats) bool { return s.XP >= 50000 },
		},
		{
			Code: "burnout", Name: "The Furnace", Desc: "Eat 4000+ kcal in one day",
			Predicate: func(s UserStats) bool { return s.DayKcal >= 4000 },
		},
		{
			Code: "hydro_homie", Name: "Hydro Homie", Desc: "Drink 4 liters of water in one day",
			Predicate: func(s UserStats) bool { return s.DayWaterML >= 4000 },
		},
		{
			Code: "iron_temple", Name: "Iron Temple", Desc: "Log 5 workouts in one day",
			Predicate: func(s UserStats) bool { return s.DaySportEntries >= 5 },
		},
		{
			Code: "habit_god", Name: "Habit God", Desc: "Complete every habit in one day",
			Predicate: func(s UserStats) bool {
				return s.HabitsTotal > 0 && s.HabitsDone >= s.HabitsTotal
			},
		},
		{
			Code: "early_riser", Name: "5 AM Club", Desc: "Finish a task before 6:00",
			Predicate: func(s UserStats) bool { return s.LastTaskHour >= 0 && s.LastTaskHour < 6 },
		},
		{
			Code: "night_watch", Name: "Night Watch", Desc: "Log food after 23:00",
			Predicate: func(s UserStats) bool { return s.LastFoodHour >= 23 },
		},
		{
			Code: "marathon", Name: "Marathoner", Desc: "Hold a 100-day streak",
			Predicate: func(s UserStats) bool { return s.Streak >= 100 },
		},
		{
			Code: "completionist", Name: "Completionist", Desc: "Complete every task scheduled for a day",
			Predicate: func(s UserStats) bool {
				return s.TasksScheduled > 0 && s.TasksDone >= s.TasksScheduled
			},
		},
	}
}
