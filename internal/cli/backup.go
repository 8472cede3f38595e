package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/credify-app/credify/internal/daemon"
)

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Write to file instead of stdout")
	importCmd.Flags().BoolVar(&importForce, "force", false, "Skip confirmation")
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "Skip confirmation")
	rootCmd.AddCommand(exportCmd, importCmd, resetCmd)
}

var (
	exportOut   string
	importForce bool
	resetForce  bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all data as a JSON backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(d *daemon.Daemon) error {
			data, err := d.Engine.Export()
			if err != nil {
				return err
			}
			if exportOut == "" {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(exportOut, data, 0600); err != nil {
				return err
			}
			fmt.Printf("Exported backup to %s\n", exportOut)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace all data with a JSON backup",
	Long: `Replace all local data with the contents of a backup file.
The backup is validated first; nothing is destroyed if it is malformed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !importForce && !confirm("This replaces ALL current data. Continue?") {
			fmt.Println("Aborted.")
			return nil
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		return withEngine(func(d *daemon.Daemon) error {
			if err := d.Engine.Import(data); err != nil {
				return err
			}
			fmt.Println("Import complete.")
			return nil
		})
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all data and start over",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetForce && !confirm("This permanently deletes ALL data. Continue?") {
			fmt.Println("Aborted.")
			return nil
		}
		return withEngine(func(d *daemon.Daemon) error {
			if err := d.Engine.Reset(); err != nil {
				return err
			}
			fmt.Println("All data deleted. Fresh profile created.")
			return nil
		})
	},
}

// confirm prompts for a yes/no answer on stdin.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
