package sqlite

import (
	"fmt"

	"github.com/questforge/questforge/internal/domain"
)

// Full-table dump and restore used by snapshot export/import. Restores
// replace wholesale inside one transaction; a failed import leaves the
// previous contents intact.

// DumpFood returns every food entry, oldest first.
func (d *DB) DumpFood() ([]domain.FoodEntry, error) {
	rows, err := d.db.Query(
		`SELECT id, date, phase, name, kcal, protein, fat, carbs
		 FROM food_entries ORDER BY id`,
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

// DumpSport returns every workout entry, oldest first.
func (d *DB) DumpSport() ([]domain.SportEntry, error) {
	rows, err := d.db.Query(
		`SELECT id, date, name, details, intensity FROM sport_entries ORDER BY id`,
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

// DumpWater returns every day's water total keyed by date.
func (d *DB) DumpWater() (map[string]int, error) {
	rows, err := d.db.Query(`SELECT date, ml FROM water_entries`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var date string
		var ml int
		if err := rows.Scan(&date, &ml); err != nil {
			return nil, err
		}
		out[date] = ml
	}
	return out, rows.Err()
}

// DumpHabits returns every habit mark as date-to-names.
func (d *DB) DumpHabits() (map[string][]string, error) {
	rows, err := d.db.Query(`SELECT date, name FROM habit_entries ORDER BY date, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var date, name string
		if err := rows.Scan(&date, &name); err != nil {
			return nil, err
		}
		out[date] = append(out[date], name)
	}
	return out, rows.Err()
}

// RestoreTrackers replaces all tracker tables with the given contents.
func (d *DB) RestoreTrackers(
	tasks []domain.Task,
	food []domain.FoodEntry,
	sport []domain.SportEntry,
	water map[string]int,
	habits map[string][]string,
	weights []domain.WeightPoint,
) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{
		"tasks", "food_entries", "sport_entries",
		"water_entries", "habit_entries", "weight_log",
	} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, t := range tasks {
		if _, err := tx.Exec(
			`INSERT INTO tasks (id, title, at_hhmm, days_mask, enabled, notes, last_notified, last_completed)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.Title, t.AtHHMM, t.DaysMask, t.Enabled, t.Notes,
			nullStr(t.LastNotified), nullStr(t.LastCompleted),
		); err != nil {
			return fmt.Errorf("restore task: %w", err)
		}
	}
	for _, e := range food {
		if _, err := tx.Exec(
			`INSERT INTO food_entries (id, date, phase, name, kcal, protein, fat, carbs)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.Date, e.Phase, e.Name, e.Kcal, e.Protein, e.Fat, e.Carbs,
		); err != nil {
			return fmt.Errorf("restore food: %w", err)
		}
	}
	for _, e := range sport {
		if _, err := tx.Exec(
			`INSERT INTO sport_entries (id, date, name, details, intensity)
			 VALUES (?, ?, ?, ?, ?)`,
			e.ID, e.Date, e.Name, e.Details, string(e.Intensity),
		); err != nil {
			return fmt.Errorf("restore sport: %w", err)
		}
	}
	for date, ml := range water {
		if _, err := tx.Exec(
			`INSERT INTO water_entries (date, ml) VALUES (?, ?)`, date, ml,
		); err != nil {
			return fmt.Errorf("restore water: %w", err)
		}
	}
	for date, names := range habits {
		for _, name := range names {
			if _, err := tx.Exec(
				`INSERT INTO habit_entries (date, name) VALUES (?, ?)`, date, name,
			); err != nil {
				return fmt.Errorf("restore habit: %w", err)
			}
		}
	}
	for _, p := range weights {
		if _, err := tx.Exec(
			`INSERT INTO weight_log (date, kg) VALUES (?, ?)`, p.Date, p.Kg,
		); err != nil {
			return fmt.Errorf("restore weight: %w", err)
		}
	}

	return tx.Commit()
}
