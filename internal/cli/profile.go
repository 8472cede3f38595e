package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/credify-app/credify/internal/daemon"
	"github.com/credify-app/credify/internal/domain"
)

func init() {
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(challengesCmd)
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringVar(&summaryDate, "date", "", "Date to show (YYYY-MM-DD, default today)")
}

var summaryDate string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your level, XP and streaks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(d *daemon.Daemon) error {
			p := d.Engine.Profile()
			info := p.LevelInfo

			fmt.Printf("%s\n", p.User.Name)
			fmt.Printf("Level %d — %s\n", info.Level, info.Title)
			fmt.Printf("Total XP: %d", p.User.TotalXP)
			if !info.MaxLevel() {
				fmt.Printf("  (%d to next level, %.0f%% through this one)", info.XPToNext, info.Progress*100)
			}
			fmt.Println()

			s := p.User.Streaks
			fmt.Printf("Streak: %d day(s) overall (financial %d, health %d, mindfulness %d)\n",
				s.Overall, s.Financial, s.Health, s.Mindfulness)
			fmt.Printf("Achievements unlocked: %d/%d\n", len(p.User.Achievements), achievementCount(d))

			if len(p.RecentGrants) > 0 {
				fmt.Println("\nRecent XP:")
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				for _, g := range p.RecentGrants {
					fmt.Fprintf(w, "  +%d\t%s\t%s\n", g.Amount, g.Source, g.Timestamp.Format("2006-01-02 15:04"))
				}
				w.Flush()
			}
			return nil
		})
	},
}

func achievementCount(d *daemon.Daemon) int {
	return len(d.Engine.Achievements())
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show streak details",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(d *daemon.Daemon) error {
			stats := d.Engine.StreakStats()
			streaks := d.Engine.Streaks()

			fmt.Printf("Current streak: %d day(s)\n", stats.Current)
			fmt.Printf("Longest streak: %d day(s)\n", stats.Longest)
			fmt.Printf("Total active days: %d\n", stats.TotalActiveDays)
			fmt.Printf("\nPer category:\n")
			fmt.Printf("  Financial:   %d\n", streaks.Financial)
			fmt.Printf("  Health:      %d\n", streaks.Health)
			fmt.Printf("  Mindfulness: %d\n", streaks.Mindfulness)
			if !streaks.LastActivityDate.IsZero() {
				fmt.Printf("\nLast activity: %s\n", streaks.LastActivityDate)
			}
			return nil
		})
	},
}

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List achievements and unlock status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(d *daemon.Daemon) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "  \tACHIEVEMENT\tXP\tDESCRIPTION")
			for _, a := range d.Engine.Achievements() {
				mark := " "
				if a.Unlocked {
					mark = "✓"
				}
				fmt.Fprintf(w, "%s %s\t%s\t%d\t%s\n", mark, a.Icon, a.Title, a.RewardXP, a.Description)
			}
			return w.Flush()
		})
	},
}

var challengesCmd = &cobra.Command{
	Use:   "challenges",
	Short: "Show today's daily challenges",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(d *daemon.Daemon) error {
			challenges := d.Engine.Challenges("")
			if len(challenges) == 0 {
				fmt.Println("No challenges for today yet.")
				return nil
			}
			for _, c := range challenges {
				mark := "[ ]"
				if c.Completed {
					mark = "[✓]"
				}
				fmt.Printf("%s %s (+%d XP) — %s\n", mark, c.Title, c.RewardXP, c.Description)
			}
			return nil
		})
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a day's activity summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(d *daemon.Daemon) error {
			date := domain.Date(summaryDate)
			if date.IsZero() {
				date = domain.Today()
			} else if !date.Valid() {
				return domain.ErrInvalidDate
			}

			s := d.Engine.Summary(date)
			fmt.Printf("Summary for %s\n", date)
			fmt.Printf("  Expenses:    %d\n", s.Expenses)
			fmt.Printf("  Workouts:    %d\n", s.Workouts)
			fmt.Printf("  Water:       %d glasses\n", s.WaterGlasses)
			fmt.Printf("  Meditations: %d\n", s.Meditations)
			fmt.Printf("  Journals:    %d\n", s.Journals)
			fmt.Printf("  Gratitude:   %d (%d items)\n", s.Gratitude, s.GratitudeItems)
			if s.Count == 0 {
				fmt.Println("  No activity recorded.")
			}
			return nil
		})
	},
}
