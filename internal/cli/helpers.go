package cli

import (
	"fmt"
	"strconv"

	"github.com/credify-app/credify/internal/daemon"
)

// withEngine opens the daemon, runs fn, and always closes cleanly so
// the debounced state write flushes.
func withEngine(fn func(*daemon.Daemon) error) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()
	return fn(d)
}

func parseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return v, nil
}

func parseMinutes(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}

// printLevelLine prints the one-line XP status shown after every log.
func printLevelLine(d *daemon.Daemon) {
	p := d.Engine.Profile()
	info := p.LevelInfo
	if info.MaxLevel() {
		fmt.Printf("Level %d %s — %d XP (max level)\n", info.Level, info.Title, p.User.TotalXP)
		return
	}
	fmt.Printf("Level %d %s — %d XP, %d to next level\n",
		info.Level, info.Title, p.User.TotalXP, info.XPToNext)
}
