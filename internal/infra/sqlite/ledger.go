package sqlite

import (
	"database/sql"
	"time"

	"github.com/credify-app/credify/internal/domain"
)

// InsertXPGrant appends a grant to the XP ledger.
func (d *DB) InsertXPGrant(g domain.XPGrant) (int64, error) {
	res, err := d.db.Exec(
		`INSERT INTO xp_ledger (timestamp, source, ref, amount, balance)
		 VALUES (?, ?, ?, ?, ?)`,
		g.Timestamp.Unix(), string(g.Source), nullableString(g.Ref), g.Amount, g.Balance,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListXPGrants returns the most recent ledger entries, newest first.
func (d *DB) ListXPGrants(limit int) ([]domain.XPGrant, error) {
	rows, err := d.db.Query(
		`SELECT id, timestamp, source, ref, amount, balance
		 FROM xp_ledger ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.XPGrant
	for rows.Next() {
		var g domain.XPGrant
		var ts int64
		var source string
		var ref sql.NullString
		if err := rows.Scan(&g.ID, &ts, &source, &ref, &g.Amount, &g.Balance); err != nil {
			return nil, err
		}
		g.Timestamp = time.Unix(ts, 0)
		g.Source = domain.XPSource(source)
		g.Ref = ref.String
		out = append(out, g)
	}
	return out, rows.Err()
}

// XPLedgerTotal sums all granted XP. Matches the user's TotalXP unless
// the ledger predates the user row (fresh import).
func (d *DB) XPLedgerTotal() (int64, error) {
	var total sql.NullInt64
	err := d.db.QueryRow(`SELECT SUM(amount) FROM xp_ledger`).Scan(&total)
	return total.Int64, err
}
