package app_test

import (
	"encoding/json"
	"testing"

	"github.com/credify-app/credify/internal/app"
)

func TestExportImport_RoundTrip(t *testing.T) {
	src := newTestEngine(t, testDB(t), noon)

	if _, err := src.LogExpense(25, "food", "groceries", ""); err != nil {
		t.Fatalf("log expense: %v", err)
	}
	if _, err := src.LogWorkout("running", 30, 250, "", ""); err != nil {
		t.Fatalf("log workout: %v", err)
	}
	if _, err := src.LogGratitude([]string{"a", "b", "c"}, ""); err != nil {
		t.Fatalf("log gratitude: %v", err)
	}
	want := src.Profile()

	data, err := src.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	dst := newTestEngine(t, testDB(t), noon)
	if err := dst.Import(data); err != nil {
		t.Fatalf("import: %v", err)
	}

	got := dst.Profile()
	if got.User.ID != want.User.ID {
		t.Errorf("user ID %s, want %s", got.User.ID, want.User.ID)
	}
	if got.User.TotalXP != want.User.TotalXP {
		t.Errorf("total XP %d, want %d", got.User.TotalXP, want.User.TotalXP)
	}
	if len(got.User.Achievements) != len(want.User.Achievements) {
		t.Errorf("achievements %v, want %v", got.User.Achievements, want.User.Achievements)
	}

	state := dst.State()
	if len(state.Financial.Expenses) != 1 {
		t.Errorf("imported %d expenses, want 1", len(state.Financial.Expenses))
	}
	if len(state.Health.Workouts) != 1 {
		t.Errorf("imported %d workouts, want 1", len(state.Health.Workouts))
	}
	if len(state.Mindfulness.GratitudeLogs) != 1 {
		t.Errorf("imported %d gratitude logs, want 1", len(state.Mindfulness.GratitudeLogs))
	}
}

func TestExport_Envelope(t *testing.T) {
	e := newTestEngine(t, testDB(t), noon)

	data, err := e.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	var doc app.ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if doc.Version != 1 {
		t.Errorf("version = %d, want 1", doc.Version)
	}
	if doc.App != "credify" {
		t.Errorf("app = %q, want credify", doc.App)
	}
	if doc.State.User.ID == "" {
		t.Error("exported state missing user")
	}
}

func TestImport_RejectsMalformedWithoutDestroying(t *testing.T) {
	e := newTestEngine(t, testDB(t), noon)
	if _, err := e.LogExpense(10, "food", "", ""); err != nil {
		t.Fatalf("log expense: %v", err)
	}
	before := e.Profile().User.TotalXP

	cases := map[string][]byte{
		"not json":      []byte("{nope"),
		"wrong app":     []byte(`{"version":1,"app":"other","state":{"user":{"id":"x"}}}`),
		"wrong version": []byte(`{"version":99,"app":"credify","state":{"user":{"id":"x"}}}`),
		"no user":       []byte(`{"version":1,"app":"credify","state":{"user":{"id":""}}}`),
		"bad record": []byte(`{"version":1,"app":"credify","state":{` +
			`"user":{"id":"x"},` +
			`"financial":{"expenses":[{"id":"e1","amount":-4,"date":"nope"}]}}}`),
	}
	for name, data := range cases {
		if err := e.Import(data); err == nil {
			t.Errorf("%s: import accepted", name)
		}
	}

	// Nothing was reset by the failed imports.
	if got := e.Profile().User.TotalXP; got != before {
		t.Errorf("XP changed from %d to %d after rejected imports", before, got)
	}
	if n := len(e.State().Financial.Expenses); n != 1 {
		t.Errorf("expenses after rejected imports = %d, want 1", n)
	}
}
