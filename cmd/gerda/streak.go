package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/AndreKrottje-Dev/Gerda2/internal/health"
	"github.com/AndreKrottje-Dev/Gerda2/internal/store"
	"github.com/spf13/cobra"
)

func (a *cli) streakCmd() *cobra.Command {
	var (
		evaluate  bool
		date      string
		tolerance float64
	)
	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Show the on-track streak, or score a day with --evaluate",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := a.dateOrToday(date)
			if err != nil {
				return err
			}
			if tolerance < 0 || tolerance > 1 {
				return fmt.Errorf("--tolerance must be between 0 and 1")
			}
			return a.withUser(func(ctx context.Context, st *store.SQLite, userID int) error {
				out := cmd.OutOrStdout()
				if !evaluate {
					s, err := st.ReadStreak(ctx, userID)
					if err != nil {
						return err
					}
					printStreak(cmd, s)
					return nil
				}

				ev, err := store.EvaluateDay(ctx, st, userID, day, health.DateKey(a.now()), tolerance)
				if errors.Is(err, store.ErrNotFound) {
					return errNoProfile
				}
				if err != nil {
					return err
				}
				switch {
				case !ev.Changed:
					fmt.Fprintf(out, "%s was already evaluated; streak unchanged.\n", day)
				case ev.OnTrack:
					fmt.Fprintf(out, "%s on track.\n", day)
				default:
					fmt.Fprintf(out, "%s off track; streak reset.\n", day)
				}
				printStreak(cmd, ev.Streak)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&evaluate, "evaluate", false, "Score the day against the goal and update the streak")
	cmd.Flags().StringVar(&date, "date", "", "Day to evaluate (YYYY-MM-DD, default today)")
	cmd.Flags().Float64Var(&tolerance, "tolerance", health.DefaultStreakTolerance, "On-track band as a fraction of the goal")
	return cmd
}

func printStreak(cmd *cobra.Command, s health.StreakData) {
	last := s.LastLogDate
	if last == "" {
		last = "never"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Current streak: %d day(s)\nLongest streak: %d day(s)\nLast evaluated: %s\n",
		s.Current, s.Longest, last)
}
