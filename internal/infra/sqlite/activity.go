package sqlite

import (
	"database/sql"
	"time"

	"github.com/credify-app/credify/internal/domain"
)

// ─── Expenses ───────────────────────────────────────────────────────────────

// InsertExpense appends an expense record.
func (d *DB) InsertExpense(e domain.Expense) error {
	_, err := d.db.Exec(
		`INSERT INTO expenses (id, amount, category, description, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Amount, e.Category, e.Description, string(e.Date), e.CreatedAt.Unix(),
	)
	return err
}

// DeleteExpense removes an expense by ID.
func (d *DB) DeleteExpense(id string) error {
	res, err := d.db.Exec(`DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListExpenses returns all expenses, newest first.
func (d *DB) ListExpenses() ([]domain.Expense, error) {
	rows, err := d.db.Query(
		`SELECT id, amount, category, description, date, created_at
		 FROM expenses ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Expense
	for rows.Next() {
		var e domain.Expense
		var date string
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.Amount, &e.Category, &e.Description, &date, &createdAt); err != nil {
			return nil, err
		}
		e.Date = domain.Date(date)
		e.CreatedAt = time.Unix(createdAt, 0)
		out = append(out, e)
	}
	return out, rows.Err()
}

// ─── Budgets ────────────────────────────────────────────────────────────────

// UpsertBudget inserts or replaces a category budget.
func (d *DB) UpsertBudget(b domain.Budget) error {
	_, err := d.db.Exec(
		`INSERT INTO budgets (id, category, amount, spent, period)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			category=excluded.category,
			amount=excluded.amount,
			spent=excluded.spent,
			period=excluded.period`,
		b.ID, b.Category, b.Amount, b.Spent, string(b.Period),
	)
	return err
}

// ListBudgets returns all category budgets.
func (d *DB) ListBudgets() ([]domain.Budget, error) {
	rows, err := d.db.Query(`SELECT id, category, amount, spent, period FROM budgets`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Budget
	for rows.Next() {
		var b domain.Budget
		var period string
		if err := rows.Scan(&b.ID, &b.Category, &b.Amount, &b.Spent, &period); err != nil {
			return nil, err
		}
		b.Period = domain.BudgetPeriod(period)
		out = append(out, b)
	}
	return out, rows.Err()
}

// ─── Financial goals ────────────────────────────────────────────────────────

// UpsertGoal inserts or replaces a financial goal.
func (d *DB) UpsertGoal(g domain.FinancialGoal) error {
	_, err := d.db.Exec(
		`INSERT INTO financial_goals (id, title, target_amount, current_amount, deadline, created_at, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title,
			target_amount=excluded.target_amount,
			current_amount=excluded.current_amount,
			deadline=excluded.deadline,
			completed_at=excluded.completed_at`,
		g.ID, g.Title, g.TargetAmount, g.CurrentAmount,
		nullableString(string(g.Deadline)), g.CreatedAt.Unix(), nullableUnix(g.CompletedAt),
	)
	return err
}

// ListGoals returns all financial goals, newest first.
func (d *DB) ListGoals() ([]domain.FinancialGoal, error) {
	rows, err := d.db.Query(
		`SELECT id, title, target_amount, current_amount, deadline, created_at, completed_at
		 FROM financial_goals ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.FinancialGoal
	for rows.Next() {
		var g domain.FinancialGoal
		var deadline sql.NullString
		var createdAt int64
		var completedAt sql.NullInt64
		if err := rows.Scan(&g.ID, &g.Title, &g.TargetAmount, &g.CurrentAmount, &deadline, &createdAt, &completedAt); err != nil {
			return nil, err
		}
		if deadline.Valid {
			g.Deadline = domain.Date(deadline.String)
		}
		g.CreatedAt = time.Unix(createdAt, 0)
		if completedAt.Valid {
			g.CompletedAt = time.Unix(completedAt.Int64, 0)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// ─── Workouts ───────────────────────────────────────────────────────────────

// InsertWorkout appends a workout record.
func (d *DB) InsertWorkout(w domain.Workout) error {
	_, err := d.db.Exec(
		`INSERT INTO workouts (id, type, duration, calories, notes, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.Type, w.Duration, nullableInt(w.Calories), nullableString(w.Notes),
		string(w.Date), w.CreatedAt.Unix(),
	)
	return err
}

// ListWorkouts returns all workouts, newest first.
func (d *DB) ListWorkouts() ([]domain.Workout, error) {
	rows, err := d.db.Query(
		`SELECT id, type, duration, calories, notes, date, created_at
		 FROM workouts ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Workout
	for rows.Next() {
		var w domain.Workout
		var calories sql.NullInt64
		var notes sql.NullString
		var date string
		var createdAt int64
		if err := rows.Scan(&w.ID, &w.Type, &w.Duration, &calories, &notes, &date, &createdAt); err != nil {
			return nil, err
		}
		w.Calories = int(calories.Int64)
		w.Notes = notes.String
		w.Date = domain.Date(date)
		w.CreatedAt = time.Unix(createdAt, 0)
		out = append(out, w)
	}
	return out, rows.Err()
}

// ─── Water logs ─────────────────────────────────────────────────────────────

// AccumulateWater adds glasses to the date's water row, inserting it if
// the date has none. Returns the resulting row. The UNIQUE(date)
// constraint keeps this to exactly one record per day.
func (d *DB) AccumulateWater(log domain.WaterLog) (domain.WaterLog, error) {
	_, err := d.db.Exec(
		`INSERT INTO water_logs (id, glasses, date) VALUES (?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET glasses = glasses + excluded.glasses`,
		log.ID, log.Glasses, string(log.Date),
	)
	if err != nil {
		return domain.WaterLog{}, err
	}

	var out domain.WaterLog
	var date string
	err = d.db.QueryRow(
		`SELECT id, glasses, date FROM water_logs WHERE date = ?`, string(log.Date),
	).Scan(&out.ID, &out.Glasses, &date)
	out.Date = domain.Date(date)
	return out, err
}

// ListWaterLogs returns all water logs, newest date first.
func (d *DB) ListWaterLogs() ([]domain.WaterLog, error) {
	rows, err := d.db.Query(`SELECT id, glasses, date FROM water_logs ORDER BY date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.WaterLog
	for rows.Next() {
		var w domain.WaterLog
		var date string
		if err := rows.Scan(&w.ID, &w.Glasses, &date); err != nil {
			return nil, err
		}
		w.Date = domain.Date(date)
		out = append(out, w)
	}
	return out, rows.Err()
}

// ─── Meals ──────────────────────────────────────────────────────────────────

// InsertMeal appends a meal record.
func (d *DB) InsertMeal(m domain.Meal) error {
	_, err := d.db.Exec(
		`INSERT INTO meals (id, type, description, calories, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, string(m.Type), m.Description, nullableInt(m.Calories),
		string(m.Date), m.CreatedAt.Unix(),
	)
	return err
}

// ListMeals returns all meals, newest first.
func (d *DB) ListMeals() ([]domain.Meal, error) {
	rows, err := d.db.Query(
		`SELECT id, type, description, calories, date, created_at
		 FROM meals ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Meal
	for rows.Next() {
		var m domain.Meal
		var mealType string
		var calories sql.NullInt64
		var date string
		var createdAt int64
		if err := rows.Scan(&m.ID, &mealType, &m.Description, &calories, &date, &createdAt); err != nil {
			return nil, err
		}
		m.Type = domain.MealType(mealType)
		m.Calories = int(calories.Int64)
		m.Date = domain.Date(date)
		m.CreatedAt = time.Unix(createdAt, 0)
		out = append(out, m)
	}
	return out, rows.Err()
}
