// Command gerda is the local-first command line for the Gerda health tracker.
// It keeps everything in a SQLite file that the API server can also serve
// with STORE_DRIVER=sqlite.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

const defaultUser = "me"

// cli carries the persistent flags down to every subcommand.
type cli struct {
	dbPath   string
	username string
	now      func() time.Time
}

func main() {
	if err := newRootCmd(time.Now).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(now func() time.Time) *cobra.Command {
	app := &cli{now: now}

	cmd := &cobra.Command{
		Use:   "gerda",
		Short: "Gerda tracks calories, workouts and your on-track streak",
		Long: `Gerda is a local calorie and exercise tracker with a rule-based coach.

Log food and workouts per day, see how the day balances against your
calorie goal, and keep a streak of on-track days.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&app.dbPath, "db", "", "Path to SQLite database (default: <user config dir>/gerda/gerda.db)")
	cmd.PersistentFlags().StringVar(&app.username, "user", defaultUser, "Account to act as")

	cmd.AddCommand(
		app.userCmd(),
		app.profileCmd(),
		app.foodCmd(),
		app.exerciseCmd(),
		app.weightCmd(),
		app.waterCmd(),
		app.todayCmd(),
		app.streakCmd(),
		app.catalogCmd(),
	)
	return cmd
}

func (a *cli) resolveDBPath() (string, error) {
	if a.dbPath != "" {
		return a.dbPath, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "gerda", "gerda.db"), nil
}
