package app

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/credify-app/credify/internal/domain"
)

// exportVersion is bumped when the document format changes
// incompatibly. Import rejects versions it does not know.
const exportVersion = 1

const exportApp = "credify"

// ExportDocument is the versioned envelope for a full-state backup.
type ExportDocument struct {
	Version    int          `json:"version"`
	App        string       `json:"app"`
	ExportedAt time.Time    `json:"exported_at"`
	State      domain.State `json:"state"`
}

// Export serializes the full state as an indented JSON document
// suitable for backup and later Import.
func (e *Engine) Export() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	doc := ExportDocument{
		Version:    exportVersion,
		App:        exportApp,
		ExportedAt: e.now(),
		State:      e.state,
	}

	// Marshal while holding the lock. The state copy above shares slice
	// backing arrays with live state, so serializing after unlocking
	// could observe a concurrent write mid-document.
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	return data, nil
}

// Import replaces all state with the document's contents. The document
// is fully validated before anything is destroyed; a malformed backup
// leaves the current state untouched.
func (e *Engine) Import(data []byte) error {
	var doc ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidImport, err)
	}
	if err := validateImport(&doc); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	state := doc.State
	state.Settings = state.Settings.Normalize()
	if state.User.CreatedAt.IsZero() {
		state.User.CreatedAt = now
	}

	if e.db != nil {
		if err := e.db.ResetAll(); err != nil {
			return fmt.Errorf("reset before import: %w", err)
		}
		if err := e.writeImported(&state, now); err != nil {
			return err
		}
	}

	e.state = state
	e.purgeChallenges(now)
	e.react(now)
	return nil
}

// validateImport checks the envelope and every record before the
// destructive reset.
func validateImport(doc *ExportDocument) error {
	if doc.Version != exportVersion {
		return fmt.Errorf("%w: unsupported version %d", domain.ErrInvalidImport, doc.Version)
	}
	if doc.App != exportApp {
		return fmt.Errorf("%w: not a %s backup", domain.ErrInvalidImport, exportApp)
	}
	if doc.State.User.ID == "" {
		return fmt.Errorf("%w: missing user", domain.ErrInvalidImport)
	}
	if doc.State.User.TotalXP < 0 {
		return fmt.Errorf("%w: negative total xp", domain.ErrInvalidImport)
	}

	s := &doc.State
	for _, exp := range s.Financial.Expenses {
		if exp.ID == "" || !exp.Date.Valid() || exp.Amount <= 0 {
			return fmt.Errorf("%w: bad expense record", domain.ErrInvalidImport)
		}
	}
	for _, w := range s.Health.Workouts {
		if w.ID == "" || !w.Date.Valid() {
			return fmt.Errorf("%w: bad workout record", domain.ErrInvalidImport)
		}
	}
	seen := make(map[domain.Date]bool)
	for _, wl := range s.Health.WaterLogs {
		if !wl.Date.Valid() || wl.Glasses < 0 {
			return fmt.Errorf("%w: bad water record", domain.ErrInvalidImport)
		}
		if seen[wl.Date] {
			return fmt.Errorf("%w: duplicate water record for %s", domain.ErrInvalidImport, wl.Date)
		}
		seen[wl.Date] = true
	}
	for _, m := range s.Health.Meals {
		if m.ID == "" || !m.Date.Valid() {
			return fmt.Errorf("%w: bad meal record", domain.ErrInvalidImport)
		}
	}
	for _, m := range s.Mindfulness.Meditations {
		if m.ID == "" || !m.Date.Valid() {
			return fmt.Errorf("%w: bad meditation record", domain.ErrInvalidImport)
		}
	}
	for _, j := range s.Mindfulness.Journals {
		if j.ID == "" || !j.Date.Valid() {
			return fmt.Errorf("%w: bad journal record", domain.ErrInvalidImport)
		}
	}
	for _, g := range s.Mindfulness.GratitudeLogs {
		if g.ID == "" || !g.Date.Valid() {
			return fmt.Errorf("%w: bad gratitude record", domain.ErrInvalidImport)
		}
	}
	for _, m := range s.Mindfulness.Moods {
		if m.ID == "" || !m.Date.Valid() {
			return fmt.Errorf("%w: bad mood record", domain.ErrInvalidImport)
		}
	}
	for _, c := range s.Challenges {
		if c.ID == "" || !c.Date.Valid() {
			return fmt.Errorf("%w: bad challenge record", domain.ErrInvalidImport)
		}
	}
	return nil
}

// writeImported persists every record of the validated state. The XP
// ledger cannot be reconstructed from a backup, so it restarts with a
// single import grant carrying the full balance.
func (e *Engine) writeImported(state *domain.State, now time.Time) error {
	if err := e.db.SaveUser(state.User); err != nil {
		return fmt.Errorf("import user: %w", err)
	}
	if err := e.db.SaveSettings(state); err != nil {
		return fmt.Errorf("import settings: %w", err)
	}

	for _, exp := range state.Financial.Expenses {
		if err := e.db.InsertExpense(exp); err != nil {
			return fmt.Errorf("import expense: %w", err)
		}
	}
	for _, b := range state.Financial.Budgets {
		if err := e.db.UpsertBudget(b); err != nil {
			return fmt.Errorf("import budget: %w", err)
		}
	}
	for _, g := range state.Financial.Goals {
		if err := e.db.UpsertGoal(g); err != nil {
			return fmt.Errorf("import goal: %w", err)
		}
	}
	for _, w := range state.Health.Workouts {
		if err := e.db.InsertWorkout(w); err != nil {
			return fmt.Errorf("import workout: %w", err)
		}
	}
	for _, wl := range state.Health.WaterLogs {
		if _, err := e.db.AccumulateWater(wl); err != nil {
			return fmt.Errorf("import water: %w", err)
		}
	}
	for _, m := range state.Health.Meals {
		if err := e.db.InsertMeal(m); err != nil {
			return fmt.Errorf("import meal: %w", err)
		}
	}
	for _, m := range state.Mindfulness.Meditations {
		if err := e.db.InsertMeditation(m); err != nil {
			return fmt.Errorf("import meditation: %w", err)
		}
	}
	for _, j := range state.Mindfulness.Journals {
		if err := e.db.InsertJournal(j); err != nil {
			return fmt.Errorf("import journal: %w", err)
		}
	}
	for _, g := range state.Mindfulness.GratitudeLogs {
		if err := e.db.InsertGratitude(g); err != nil {
			return fmt.Errorf("import gratitude: %w", err)
		}
	}
	for _, m := range state.Mindfulness.Moods {
		if err := e.db.InsertMood(m); err != nil {
			return fmt.Errorf("import mood: %w", err)
		}
	}
	for _, c := range state.Challenges {
		if err := e.db.UpsertChallenge(c); err != nil {
			return fmt.Errorf("import challenge: %w", err)
		}
	}

	if state.User.TotalXP > 0 {
		_, err := e.db.InsertXPGrant(domain.XPGrant{
			Timestamp: now,
			Source:    domain.XPImport,
			Ref:       "import",
			Amount:    state.User.TotalXP,
			Balance:   state.User.TotalXP,
		})
		if err != nil {
			log.Printf("[engine] record import grant: %v", err)
		}
	}
	return nil
}
