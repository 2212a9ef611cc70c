package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/questforge/questforge/internal/domain"
)

// ─── Tasks ──────────────────────────────────────────────────────────────────

// InsertTask stores a new scheduled task and returns its ID.
func (d *DB) InsertTask(t domain.Task) (int64, error) {
	res, err := d.db.Exec(
		`INSERT INTO tasks (title, at_hhmm, days_mask, enabled, notes, last_notified, last_completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.Title, t.AtHHMM, t.DaysMask, t.Enabled, t.Notes,
		nullStr(t.LastNotified), nullStr(t.LastCompleted),
	)
	if err != nil {
		return 0, fmt.Errorf("insert task: %w", err)
	}
	return res.LastInsertId()
}

// UpdateTask rewrites every mutable task field.
func (d *DB) UpdateTask(t domain.Task) error {
	res, err := d.db.Exec(
		`UPDATE tasks SET title=?, at_hhmm=?, days_mask=?, enabled=?, notes=?,
		 last_notified=?, last_completed=? WHERE id=?`,
		t.Title, t.AtHHMM, t.DaysMask, t.Enabled, t.Notes,
		nullStr(t.LastNotified), nullStr(t.LastCompleted), t.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// DeleteTask removes a task.
func (d *DB) DeleteTask(id int64) error {
	res, err := d.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// GetTask retrieves a single task.
func (d *DB) GetTask(id int64) (*domain.Task, error) {
	row := d.db.QueryRow(
		`SELECT id, title, at_hhmm, days_mask, enabled, notes, last_notified, last_completed
		 FROM tasks WHERE id = ?`, id,
	)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTasks returns all tasks ordered by scheduled time.
func (d *DB) ListTasks() ([]domain.Task, error) {
	rows, err := d.db.Query(
		`SELECT id, title, at_hhmm, days_mask, enabled, notes, last_notified, last_completed
		 FROM tasks ORDER BY at_hhmm, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// MissedTaskCount counts tasks that fired a reminder on the given date
// but were never completed that date.
func (d *DB) MissedTaskCount(date string) (int, error) {
	var n int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM tasks
		 WHERE last_notified = ? AND (last_completed IS NULL OR last_completed != ?)`,
		date, date,
	).Scan(&n)
	return n, err
}

// TasksCompletedOn counts tasks whose last completion falls on date.
func (d *DB) TasksCompletedOn(date string) (int, error) {
	var n int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM tasks WHERE last_completed = ?`, date,
	).Scan(&n)
	return n, err
}

// EnabledTaskCount counts active tasks.
func (d *DB) EnabledTaskCount() (int, error) {
	var n int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM tasks WHERE enabled = 1`).Scan(&n)
	return n, err
}

func scanTask(s scanner) (*domain.Task, error) {
	var t domain.Task
	var notified, completed sql.NullString
	err := s.Scan(&t.ID, &t.Title, &t.AtHHMM, &t.DaysMask, &t.Enabled,
		&t.Notes, &notified, &completed)
	if err != nil {
		return nil, err
	}
	t.LastNotified = notified.String
	t.LastCompleted = completed.String
	return &t, nil
}

// ─── Food ───────────────────────────────────────────────────────────────────

// InsertFood stores a food diary entry and returns its ID.
func (d *DB) InsertFood(e domain.FoodEntry) (int64, error) {
	res, err := d.db.Exec(
		`INSERT INTO food_entries (date, phase, name, kcal, protein, fat, carbs)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Date, e.Phase, e.Name, e.Kcal, e.Protein, e.Fat, e.Carbs,
	)
	if err != nil {
		return 0, fmt.Errorf("insert food: %w", err)
	}
	return res.LastInsertId()
}

// DeleteFood removes a food entry.
func (d *DB) DeleteFood(id int64) error {
	res, err := d.db.Exec(`DELETE FROM food_entries WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

// ListFood returns a day's food entries in insertion order.
func (d *DB) ListFood(date string) ([]domain.FoodEntry, error) {
	rows, err := d.db.Query(
		`SELECT id, date, phase, name, kcal, protein, fat, carbs
		 FROM food_entries WHERE date = ? ORDER BY id`, date,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.FoodEntry
	for rows.Next() {
		var e domain.FoodEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.Phase, &e.Name,
			&e.Kcal, &e.Protein, &e.Fat, &e.Carbs); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// TotalKcal sums a day's calories.
func (d *DB) TotalKcal(date string) (int, error) {
	var kcal int
	err := d.db.QueryRow(
		`SELECT COALESCE(SUM(kcal), 0) FROM food_entries WHERE date = ?`, date,
	).Scan(&kcal)
	return kcal, err
}

// ─── Sport ──────────────────────────────────────────────────────────────────

// InsertSport stores a workout entry and returns its ID.
func (d *DB) InsertSport(e domain.SportEntry) (int64, error) {
	res, err := d.db.Exec(
		`INSERT INTO sport_entries (date, name, details, intensity)
		 VALUES (?, ?, ?, ?)`,
		e.Date, e.Name, e.Details, string(e.Intensity),
	)
	if err != nil {
		return 0, fmt.Errorf("insert sport: %w", err)
	}
	return res.LastInsertId()
}

// DeleteSport removes a workout entry.
func (d *DB) DeleteSport(id int64) error {
	res, err := d.db.Exec(`DELETE FROM sport_entries WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

// ListSport returns a day's workouts in insertion order.
func (d *DB) ListSport(date string) ([]domain.SportEntry, error) {
	rows, err := d.db.Query(
		`SELECT id, date, name, details, intensity
		 FROM sport_entries WHERE date = ? ORDER BY id`, date,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.SportEntry
	for rows.Next() {
		var e domain.SportEntry
		var intensity string
		if err := rows.Scan(&e.ID, &e.Date, &e.Name, &e.Details, &intensity); err != nil {
			return nil, err
		}
		e.Intensity = domain.Intensity(intensity)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SportCount counts a day's workouts.
func (d *DB) SportCount(date string) (int, error) {
	var n int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM sport_entries WHERE date = ?`, date,
	).Scan(&n)
	return n, err
}

// ─── Water ──────────────────────────────────────────────────────────────────

// SetWater stores a day's running water total in milliliters.
func (d *DB) SetWater(date string, ml int) error {
	_, err := d.db.Exec(
		`INSERT INTO water_entries (date, ml) VALUES (?, ?)
		 ON CONFLICT(date) DO UPDATE SET ml=excluded.ml`,
		date, ml,
	)
	return err
}

// Water returns a day's water total, 0 if unrecorded.
func (d *DB) Water(date string) (int, error) {
	var ml int
	err := d.db.QueryRow(`SELECT ml FROM water_entries WHERE date = ?`, date).Scan(&ml)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return ml, err
}

// ─── Habits ─────────────────────────────────────────────────────────────────

// AddHabit marks a habit done on a date. Duplicate adds are no-ops.
func (d *DB) AddHabit(date, name string) error {
	_, err := d.db.Exec(
		`INSERT OR IGNORE INTO habit_entries (date, name) VALUES (?, ?)`,
		date, name,
	)
	return err
}

// RemoveHabit clears a habit mark. Returns whether a mark existed.
func (d *DB) RemoveHabit(date, name string) (bool, error) {
	res, err := d.db.Exec(
		`DELETE FROM habit_entries WHERE date = ? AND name = ?`, date, name,
	)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// HabitsOn lists habit names marked done on a date.
func (d *DB) HabitsOn(date string) ([]string, error) {
	rows, err := d.db.Query(
		`SELECT name FROM habit_entries WHERE date = ? ORDER BY name`, date,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// HabitCount counts habits marked done on a date.
func (d *DB) HabitCount(date string) (int, error) {
	var n int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM habit_entries WHERE date = ?`, date,
	).Scan(&n)
	return n, err
}

// ─── Weight ─────────────────────────────────────────────────────────────────

// LogWeight records a body-weight measurement for a date.
func (d *DB) LogWeight(date string, kg float64) error {
	_, err := d.db.Exec(
		`INSERT INTO weight_log (date, kg) VALUES (?, ?)
		 ON CONFLICT(date) DO UPDATE SET kg=excluded.kg`,
		date, kg,
	)
	return err
}

// WeightHistory returns all measurements, oldest first.
func (d *DB) WeightHistory() ([]domain.WeightPoint, error) {
	rows, err := d.db.Query(`SELECT date, kg FROM weight_log ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []domain.WeightPoint
	for rows.Next() {
		var p domain.WeightPoint
		if err := rows.Scan(&p.Date, &p.Kg); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func nullStr(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
