package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/credify-app/credify/internal/daemon"
	"github.com/credify-app/credify/internal/domain"
)

func init() {
	logCmd.PersistentFlags().StringVar(&logDate, "date", "", "Date to log for (YYYY-MM-DD, default today)")

	expenseCmd.Flags().StringVar(&expenseCategory, "category", "other", "Expense category")
	expenseCmd.Flags().StringVar(&expenseNote, "note", "", "Description")

	workoutCmd.Flags().StringVar(&workoutType, "type", "other", "Workout type")
	workoutCmd.Flags().IntVar(&workoutCalories, "calories", 0, "Calories burned")
	workoutCmd.Flags().StringVar(&workoutNote, "note", "", "Notes")

	mealCmd.Flags().StringVar(&mealType, "type", "snack", "Meal type (breakfast|lunch|dinner|snack)")
	mealCmd.Flags().IntVar(&mealCalories, "calories", 0, "Calories")

	meditationCmd.Flags().StringVar(&meditationType, "type", "timer", "Session type (guided|timer|breathing)")
	meditationCmd.Flags().StringVar(&meditationNote, "note", "", "Notes")

	journalCmd.Flags().StringVar(&journalMood, "mood", "", "Mood while writing")

	moodCmd.Flags().StringVar(&moodNote, "note", "", "Notes")

	logCmd.AddCommand(expenseCmd, workoutCmd, waterCmd, mealCmd,
		meditationCmd, journalCmd, gratitudeCmd, moodCmd)
	rootCmd.AddCommand(logCmd)
}

var (
	logDate string

	expenseCategory string
	expenseNote     string
	workoutType     string
	workoutCalories int
	workoutNote     string
	mealType        string
	mealCalories    int
	meditationType  string
	meditationNote  string
	journalMood     string
	moodNote        string
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log an activity and earn XP",
}

var expenseCmd = &cobra.Command{
	Use:   "expense AMOUNT",
	Short: "Log an expense",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseAmount(args[0])
		if err != nil {
			return err
		}
		return withEngine(func(d *daemon.Daemon) error {
			exp, err := d.Engine.LogExpense(amount, expenseCategory, expenseNote, domain.Date(logDate))
			if err != nil {
				return err
			}
			fmt.Printf("Logged %.2f (%s) on %s  +%d XP\n", exp.Amount, exp.Category, exp.Date, domain.XPLogExpense)
			printLevelLine(d)
			return nil
		})
	},
}

var workoutCmd = &cobra.Command{
	Use:   "workout MINUTES",
	Short: "Log a completed workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		minutes, err := parseMinutes(args[0])
		if err != nil {
			return err
		}
		return withEngine(func(d *daemon.Daemon) error {
			w, err := d.Engine.LogWorkout(workoutType, minutes, workoutCalories, workoutNote, domain.Date(logDate))
			if err != nil {
				return err
			}
			fmt.Printf("Logged %d min %s workout on %s  +%d XP\n", w.Duration, w.Type, w.Date, domain.XPCompleteWorkout)
			printLevelLine(d)
			return nil
		})
	},
}

var waterCmd = &cobra.Command{
	Use:   "water GLASSES",
	Short: "Log glasses of water (adds to today's count)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		glasses, err := parseMinutes(args[0])
		if err != nil {
			return err
		}
		return withEngine(func(d *daemon.Daemon) error {
			w, err := d.Engine.LogWater(glasses, domain.Date(logDate))
			if err != nil {
				return err
			}
			fmt.Printf("Water on %s: %d glasses  +%d XP\n", w.Date, w.Glasses, domain.XPLogWater)
			printLevelLine(d)
			return nil
		})
	},
}

var mealCmd = &cobra.Command{
	Use:   "meal DESCRIPTION",
	Short: "Log a meal",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(d *daemon.Daemon) error {
			m, err := d.Engine.LogMeal(domain.MealType(mealType), strings.Join(args, " "), mealCalories, domain.Date(logDate))
			if err != nil {
				return err
			}
			fmt.Printf("Logged %s on %s  +%d XP\n", m.Type, m.Date, domain.XPLogMeal)
			printLevelLine(d)
			return nil
		})
	},
}

var meditationCmd = &cobra.Command{
	Use:   "meditation MINUTES",
	Short: "Log a meditation session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		minutes, err := parseMinutes(args[0])
		if err != nil {
			return err
		}
		return withEngine(func(d *daemon.Daemon) error {
			m, err := d.Engine.LogMeditation(minutes, domain.MeditationType(meditationType), meditationNote, domain.Date(logDate))
			if err != nil {
				return err
			}
			fmt.Printf("Logged %d min meditation on %s  +%d XP\n", m.Duration, m.Date, domain.XPCompleteMeditation)
			printLevelLine(d)
			return nil
		})
	},
}

var journalCmd = &cobra.Command{
	Use:   "journal TEXT",
	Short: "Write a journal entry",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(d *daemon.Daemon) error {
			j, err := d.Engine.LogJournal(strings.Join(args, " "), journalMood, domain.Date(logDate))
			if err != nil {
				return err
			}
			fmt.Printf("Journal entry saved for %s  +%d XP\n", j.Date, domain.XPJournalEntry)
			printLevelLine(d)
			return nil
		})
	},
}

var gratitudeCmd = &cobra.Command{
	Use:   "gratitude ITEM [ITEM...]",
	Short: "Log things you are grateful for",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(d *daemon.Daemon) error {
			g, err := d.Engine.LogGratitude(args, domain.Date(logDate))
			if err != nil {
				return err
			}
			fmt.Printf("Logged %d gratitude items for %s  +%d XP\n", len(g.Items), g.Date, domain.XPGratitudeLog)
			printLevelLine(d)
			return nil
		})
	},
}

var moodCmd = &cobra.Command{
	Use:   "mood MOOD",
	Short: "Check in with your mood",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(d *daemon.Daemon) error {
			m, err := d.Engine.LogMood(args[0], moodNote, domain.Date(logDate))
			if err != nil {
				return err
			}
			fmt.Printf("Mood %q logged for %s  +%d XP\n", m.Mood, m.Date, domain.XPMoodCheckIn)
			printLevelLine(d)
			return nil
		})
	},
}
