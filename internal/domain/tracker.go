package domain

import "errors"

// Task is a scheduled daily task with reminder bookkeeping. The engine
// only reads LastNotified/LastCompleted for penalty accounting; the
// tracker owns the CRUD.
type Task struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	AtHHMM        string `json:"at_hhmm"`
	DaysMask      int    `json:"days_mask"` // bit 0 = Monday
	Enabled       bool   `json:"enabled"`
	Notes         string `json:"notes"`
	LastNotified  string `json:"last_notified,omitempty"`  // logical date
	LastCompleted string `json:"last_completed,omitempty"` // logical date
}

// FoodEntry is one food diary row.
type FoodEntry struct {
	ID      int64   `json:"id"`
	Date    string  `json:"date"`
	Phase   string  `json:"phase"` // morning | day | evening
	Name    string  `json:"name"`
	Kcal    int     `json:"kcal"`
	Protein float64 `json:"protein"`
	Fat     float64 `json:"fat"`
	Carbs   float64 `json:"carbs"`
}

// Intensity grades a workout; it decides the XP award.
type Intensity string

const (
	IntensityLight  Intensity = "light"
	IntensityMedium Intensity = "medium"
	IntensityHeavy  Intensity = "heavy"
)

// SportEntry is one workout log row.
type SportEntry struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	Name      string    `json:"name"`
	Details   string    `json:"details"`
	Intensity Intensity `json:"intensity"`
}

// WeightPoint is one body-weight measurement.
type WeightPoint struct {
	Date string  `json:"date"`
	Kg   float64 `json:"kg"`
}

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrEntryNotFound = errors.New("entry not found")
)
