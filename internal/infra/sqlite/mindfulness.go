package sqlite

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/credify-app/credify/internal/domain"
)

// InsertMeditation appends a meditation session.
func (d *DB) InsertMeditation(m domain.Meditation) error {
	_, err := d.db.Exec(
		`INSERT INTO meditations (id, duration, type, notes, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.Duration, string(m.Type), nullableString(m.Notes),
		string(m.Date), m.CreatedAt.Unix(),
	)
	return err
}

// ListMeditations returns all meditation sessions, newest first.
func (d *DB) ListMeditations() ([]domain.Meditation, error) {
	rows, err := d.db.Query(
		`SELECT id, duration, type, notes, date, created_at
		 FROM meditations ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Meditation
	for rows.Next() {
		var m domain.Meditation
		var medType string
		var notes sql.NullString
		var date string
		var createdAt int64
		if err := rows.Scan(&m.ID, &m.Duration, &medType, &notes, &date, &createdAt); err != nil {
			return nil, err
		}
		m.Type = domain.MeditationType(medType)
		m.Notes = notes.String
		m.Date = domain.Date(date)
		m.CreatedAt = time.Unix(createdAt, 0)
		out = append(out, m)
	}
	return out, rows.Err()
}

// InsertJournal appends a journal entry.
func (d *DB) InsertJournal(j domain.Journal) error {
	_, err := d.db.Exec(
		`INSERT INTO journals (id, content, mood, date, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		j.ID, j.Content, nullableString(j.Mood), string(j.Date), j.CreatedAt.Unix(),
	)
	return err
}

// ListJournals returns all journal entries, newest first.
func (d *DB) ListJournals() ([]domain.Journal, error) {
	rows, err := d.db.Query(
		`SELECT id, content, mood, date, created_at
		 FROM journals ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Journal
	for rows.Next() {
		var j domain.Journal
		var mood sql.NullString
		var date string
		var createdAt int64
		if err := rows.Scan(&j.ID, &j.Content, &mood, &date, &createdAt); err != nil {
			return nil, err
		}
		j.Mood = mood.String
		j.Date = domain.Date(date)
		j.CreatedAt = time.Unix(createdAt, 0)
		out = append(out, j)
	}
	return out, rows.Err()
}

// InsertGratitude appends a gratitude log. Items are stored as JSON.
func (d *DB) InsertGratitude(g domain.GratitudeLog) error {
	items, err := json.Marshal(g.Items)
	if err != nil {
		return err
	}
	_, err = d.db.Exec(
		`INSERT INTO gratitude_logs (id, items, date, created_at)
		 VALUES (?, ?, ?, ?)`,
		g.ID, string(items), string(g.Date), g.CreatedAt.Unix(),
	)
	return err
}

// ListGratitude returns all gratitude logs, newest first.
func (d *DB) ListGratitude() ([]domain.GratitudeLog, error) {
	rows, err := d.db.Query(
		`SELECT id, items, date, created_at
		 FROM gratitude_logs ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.GratitudeLog
	for rows.Next() {
		var g domain.GratitudeLog
		var items, date string
		var createdAt int64
		if err := rows.Scan(&g.ID, &items, &date, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(items), &g.Items); err != nil {
			g.Items = nil
		}
		g.Date = domain.Date(date)
		g.CreatedAt = time.Unix(createdAt, 0)
		out = append(out, g)
	}
	return out, rows.Err()
}

// InsertMood appends a mood check-in.
func (d *DB) InsertMood(m domain.MoodEntry) error {
	_, err := d.db.Exec(
		`INSERT INTO moods (id, mood, notes, date, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.Mood, nullableString(m.Notes), string(m.Date), m.CreatedAt.Unix(),
	)
	return err
}

// ListMoods returns all mood check-ins, newest first.
func (d *DB) ListMoods() ([]domain.MoodEntry, error) {
	rows, err := d.db.Query(
		`SELECT id, mood, notes, date, created_at
		 FROM moods ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.MoodEntry
	for rows.Next() {
		var m domain.MoodEntry
		var notes sql.NullString
		var date string
		var createdAt int64
		if err := rows.Scan(&m.ID, &m.Mood, &notes, &date, &createdAt); err != nil {
			return nil, err
		}
		m.Notes = notes.String
		m.Date = domain.Date(date)
		m.CreatedAt = time.Unix(createdAt, 0)
		out = append(out, m)
	}
	return out, rows.Err()
}
