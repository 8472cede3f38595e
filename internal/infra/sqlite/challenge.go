package sqlite

import (
	"github.com/credify-app/credify/internal/domain"
)

// UpsertChallenge inserts a daily challenge or, if the ID already
// exists, leaves the stored row authoritative except for the completed
// flag. Generation for a date that already has rows is therefore a
// no-op on the stored titles/rewards, and completion sticks.
func (d *DB) UpsertChallenge(c domain.DailyChallenge) error {
	_, err := d.db.Exec(
		`INSERT INTO daily_challenges (id, template_id, title, description, reward_xp, category, completed, date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET completed = completed OR excluded.completed`,
		c.ID, c.TemplateID, c.Title, c.Description, c.RewardXP,
		string(c.Category), c.Completed, string(c.Date),
	)
	return err
}

// CompleteChallenge marks a challenge completed. Returns true when this
// call flipped the flag, false when it was already completed (or the ID
// is unknown), which is the idempotence guard for XP grants.
func (d *DB) CompleteChallenge(id string) (bool, error) {
	res, err := d.db.Exec(
		`UPDATE daily_challenges SET completed = 1 WHERE id = ? AND completed = 0`, id,
	)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// ListChallenges returns challenges for a specific date.
func (d *DB) ListChallenges(date domain.Date) ([]domain.DailyChallenge, error) {
	return d.queryChallenges(
		`SELECT id, template_id, title, description, reward_xp, category, completed, date
		 FROM daily_challenges WHERE date = ? ORDER BY category`, string(date),
	)
}

// ListAllChallenges returns every retained challenge, newest date first.
func (d *DB) ListAllChallenges() ([]domain.DailyChallenge, error) {
	return d.queryChallenges(
		`SELECT id, template_id, title, description, reward_xp, category, completed, date
		 FROM daily_challenges ORDER BY date DESC, category`,
	)
}

// PurgeChallengesBefore deletes challenges dated strictly before the
// cutoff. Pure retention bookkeeping, unrelated to evaluation.
func (d *DB) PurgeChallengesBefore(cutoff domain.Date) (int64, error) {
	res, err := d.db.Exec(`DELETE FROM daily_challenges WHERE date < ?`, string(cutoff))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (d *DB) queryChallenges(query string, args ...any) ([]domain.DailyChallenge, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DailyChallenge
	for rows.Next() {
		var c domain.DailyChallenge
		var category, date string
		if err := rows.Scan(&c.ID, &c.TemplateID, &c.Title, &c.Description, &c.RewardXP, &category, &c.Completed, &date); err != nil {
			return nil, err
		}
		c.Category = domain.Category(category)
		c.Date = domain.Date(date)
		out = append(out, c)
	}
	return out, rows.Err()
}
