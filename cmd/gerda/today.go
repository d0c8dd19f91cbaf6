package main

import (
	"context"
	"fmt"

	"github.com/AndreKrottje-Dev/Gerda2/internal/health"
	"github.com/AndreKrottje-Dev/Gerda2/internal/store"
	"github.com/spf13/cobra"
)

func (a *cli) todayCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show a day's entries, its energy balance and the coach's feedback",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := a.dateOrToday(date)
			if err != nil {
				return err
			}
			return a.withUser(func(ctx context.Context, st *store.SQLite, userID int) error {
				p, err := readProfile(ctx, st, userID)
				if err != nil {
					return err
				}
				dayLog, err := st.ReadDailyLog(ctx, userID, day)
				if err != nil {
					return err
				}
				printDay(cmd, dayLog, p)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Day to show (YYYY-MM-DD, default today)")
	return cmd
}

func printDay(cmd *cobra.Command, dayLog health.DailyLog, p health.UserProfile) {
	out := cmd.OutOrStdout()
	b := health.Aggregate(dayLog, health.CalculateDailyCalorieGoal(p))

	fmt.Fprintf(out, "%s\n", dayLog.Date)
	fmt.Fprintln(out, "ID\tFOOD\tKCAL\tP\tC\tF\tSCORE")
	for _, f := range dayLog.Foods {
		fmt.Fprintf(out, "%s\t%s\t%d\t%.1f\t%.1f\t%.1f\t%d\n",
			f.ID, f.Name, f.Calories, f.ProteinG, f.CarbsG, f.FatG, f.HealthScore)
	}
	fmt.Fprintln(out, "ID\tEXERCISE\tMIN\tKCAL")
	for _, e := range dayLog.Exercises {
		fmt.Fprintf(out, "%s\t%s\t%d\t%d\n", e.ID, e.Name, e.DurationMin, e.CaloriesBurned)
	}
	if dayLog.WeightKG != nil {
		fmt.Fprintf(out, "Weight\t%.1f kg\n", *dayLog.WeightKG)
	}
	fmt.Fprintf(out, "Water\t%d glasses\n", dayLog.WaterGlasses)

	fmt.Fprintf(out, "\nConsumed %d - burned %d = net %d of %d kcal (%+d)\n",
		b.CaloriesConsumed, b.CaloriesBurned, b.NetCalories, b.CalorieGoal, b.Deviation)

	fb := health.Coach(dayLog, p)
	fmt.Fprintf(out, "Coach [%s]: %s\n", fb.Category, fb.Message)
}
