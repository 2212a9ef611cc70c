package sqlite

import (
	"fmt"
	"strconv"

	"github.com/questforge/questforge/internal/domain"
)

// ─── Profile Key-Value ──────────────────────────────────────────────────────

// profileKeys maps every persisted profile field. Kept explicit so an
// export/import round-trip is field-for-field lossless.
const (
	keyXP                = "xp"
	keyCoins             = "coins"
	keyStreak            = "streak"
	keyHasFreeze         = "has_freeze"
	keyGoldenBuffExpires = "golden_buff_expires"
	keyLastActiveDate    = "last_active_date"
	keyLastSeenRank      = "last_seen_rank_index"
	keyDailyXP           = "daily_xp"
	keyLastDailyReset    = "last_daily_reset"
	keyWeightKg          = "weight_kg"
	keyBodyFatPct        = "body_fat_pct"
)

// LoadProfile reads the stored profile. The second return is false on
// first run, when nothing has been persisted yet.
func (d *DB) LoadProfile() (domain.UserProfile, bool, error) {
	var p domain.UserProfile

	rows, err := d.db.Query(`SELECT key, value FROM profile`)
	if err != nil {
		return p, false, fmt.Errorf("read profile: %w", err)
	}
	defer rows.Close()

	found := false
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return p, false, err
		}
		found = true
		switch key {
		case keyXP:
			p.XP, _ = strconv.ParseInt(value, 10, 64)
		case keyCoins:
			p.Coins, _ = strconv.ParseInt(value, 10, 64)
		case keyStreak:
			p.Streak, _ = strconv.Atoi(value)
		case keyHasFreeze:
			p.HasFreeze = value == "1"
		case keyGoldenBuffExpires:
			p.GoldenBuffExpires, _ = strconv.ParseInt(value, 10, 64)
		case keyLastActiveDate:
			p.LastActiveDate = value
		case keyLastSeenRank:
			p.LastSeenRankIndex, _ = strconv.Atoi(value)
		case keyDailyXP:
			p.DailyXP, _ = strconv.ParseInt(value, 10, 64)
		case keyLastDailyReset:
			p.LastDailyReset = value
		case keyWeightKg:
			p.WeightKg, _ = strconv.ParseFloat(value, 64)
		case keyBodyFatPct:
			p.BodyFatPct, _ = strconv.ParseFloat(value, 64)
		}
	}
	if err := rows.Err(); err != nil {
		return p, false, err
	}
	if !found {
		return p, false, nil
	}

	chests, err := d.loadChests()
	if err != nil {
		return p, false, err
	}
	p.Chests = chests
	return p, true, nil
}

// SaveProfile persists the whole profile, chest inventory included, in
// one transaction.
func (d *DB) SaveProfile(p domain.UserProfile) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	pairs := map[string]string{
		keyXP:                strconv.FormatInt(p.XP, 10),
		keyCoins:             strconv.FormatInt(p.Coins, 10),
		keyStreak:            strconv.Itoa(p.Streak),
		keyHasFreeze:         boolStr(p.HasFreeze),
		keyGoldenBuffExpires: strconv.FormatInt(p.GoldenBuffExpires, 10),
		keyLastActiveDate:    p.LastActiveDate,
		keyLastSeenRank:      strconv.Itoa(p.LastSeenRankIndex),
		keyDailyXP:           strconv.FormatInt(p.DailyXP, 10),
		keyLastDailyReset:    p.LastDailyReset,
		keyWeightKg:          strconv.FormatFloat(p.WeightKg, 'f', -1, 64),
		keyBodyFatPct:        strconv.FormatFloat(p.BodyFatPct, 'f', -1, 64),
	}
	for k, v := range pairs {
		if _, err := tx.Exec(
			`INSERT INTO profile (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
			k, v,
		); err != nil {
			return fmt.Errorf("save %s: %w", k, err)
		}
	}

	// Rewrite the inventory so removals compact positions.
	if _, err := tx.Exec(`DELETE FROM chests`); err != nil {
		return fmt.Errorf("clear chests: %w", err)
	}
	for i, c := range p.Chests {
		if _, err := tx.Exec(
			`INSERT INTO chests (id, rarity, pos) VALUES (?, ?, ?)`,
			c.ID, string(c.Rarity), i,
		); err != nil {
			return fmt.Errorf("save chest %s: %w", c.ID, err)
		}
	}

	return tx.Commit()
}

func (d *DB) loadChests() ([]domain.Chest, error) {
	rows, err := d.db.Query(`SELECT id, rarity FROM chests ORDER BY pos`)
	if err != nil {
		return nil, fmt.Errorf("read chests: %w", err)
	}
	defer rows.Close()

	var chests []domain.Chest
	for rows.Next() {
		var c domain.Chest
		var rarity string
		if err := rows.Scan(&c.ID, &rarity); err != nil {
			return nil, err
		}
		c.Rarity = domain.ChestRarity(rarity)
		chests = append(chests, c)
	}
	return chests, rows.Err()
}

// ─── Achievements ───────────────────────────────────────────────────────────

// UnlockAchievement records an achievement as unlocked on the given
// date. Returns false if already unlocked (idempotent).
func (d *DB) UnlockAchievement(code, date string) (bool, error) {
	result, err := d.db.Exec(
		`INSERT OR IGNORE INTO achievements (code, unlocked_on) VALUES (?, ?)`,
		code, date,
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil // true = newly unlocked
}

// AchievementUnlocks returns the full code → unlock-date mapping.
func (d *DB) AchievementUnlocks() (map[string]string, error) {
	rows, err := d.db.Query(`SELECT code, unlocked_on FROM achievements`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	unlocks := make(map[string]string)
	for rows.Next() {
		var code, date string
		if err := rows.Scan(&code, &date); err != nil {
			return nil, err
		}
		unlocks[code] = date
	}
	return unlocks, rows.Err()
}

// ReplaceAchievements overwrites the unlock table. Used by snapshot
// import and the dev reset; normal flow never re-locks.
func (d *DB) ReplaceAchievements(unlocks map[string]string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM achievements`); err != nil {
		return err
	}
	for code, date := range unlocks {
		if _, err := tx.Exec(
			`INSERT INTO achievements (code, unlocked_on) VALUES (?, ?)`,
			code, date,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ─── Purchase Log ───────────────────────────────────────────────────────────

// InsertPurchase appends an audit-log entry and evicts the oldest rows
// beyond the retention cap, atomically.
func (d *DB) InsertPurchase(e domain.PurchaseEntry) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO purchases (id, date, item_name, cost, category)
		 VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Date, e.ItemName, e.Cost, string(e.Category),
	); err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}

	if _, err := tx.Exec(
		`DELETE FROM purchases WHERE seq NOT IN (
			SELECT seq FROM purchases ORDER BY seq DESC LIMIT ?
		)`, domain.PurchaseLogCap,
	); err != nil {
		return fmt.Errorf("trim purchases: %w", err)
	}

	return tx.Commit()
}

// ListPurchases returns audit-log entries, newest first. limit <= 0
// returns everything retained.
func (d *DB) ListPurchases(limit int) ([]domain.PurchaseEntry, error) {
	if limit <= 0 {
		limit = domain.PurchaseLogCap
	}
	rows, err := d.db.Query(
		`SELECT id, date, item_name, cost, category FROM purchases
		 ORDER BY seq DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.PurchaseEntry
	for rows.Next() {
		e, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ReplacePurchases overwrites the audit log. Used by snapshot import.
func (d *DB) ReplacePurchases(entries []domain.PurchaseEntry) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM purchases`); err != nil {
		return err
	}
	// Entries arrive newest first; insert oldest first so seq order
	// matches age again.
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if _, err := tx.Exec(
			`INSERT INTO purchases (id, date, item_name, cost, category)
			 VALUES (?, ?, ?, ?, ?)`,
			e.ID, e.Date, e.ItemName, e.Cost, string(e.Category),
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func scanPurchase(s scanner) (domain.PurchaseEntry, error) {
	var e domain.PurchaseEntry
	var category string
	if err := s.Scan(&e.ID, &e.Date, &e.ItemName, &e.Cost, &category); err != nil {
		return e, err
	}
	e.Category = domain.PurchaseCategory(category)
	return e, nil
}

func boolStr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
