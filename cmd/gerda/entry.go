package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/AndreKrottje-Dev/Gerda2/internal/catalog"
	"github.com/AndreKrottje-Dev/Gerda2/internal/health"
	"github.com/AndreKrottje-Dev/Gerda2/internal/store"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func (a *cli) foodCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "food",
		Short: "Log or remove food entries",
	}

	var (
		date      string
		catalogID string
		servings  float64
		entry     health.FoodEntry
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Log a food, from the catalog (--id) or by hand (--name, --kcal, ...)",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := a.dateOrToday(date)
			if err != nil {
				return err
			}
			e := entry
			e.Name = strings.TrimSpace(e.Name)
			if catalogID != "" {
				cat, err := catalog.Load()
				if err != nil {
					return err
				}
				item, ok := cat.Food(catalogID)
				if !ok {
					return fmt.Errorf("unknown catalog food %q (see `gerda catalog foods`)", catalogID)
				}
				if servings <= 0 {
					return fmt.Errorf("--servings must be > 0")
				}
				e = item.Entry(servings)
			}
			e.ID = uuid.NewString()
			e.Timestamp = a.now().UTC()
			if err := health.ValidateFoodEntry(e); err != nil {
				return err
			}
			return a.withUser(func(ctx context.Context, st *store.SQLite, userID int) error {
				if err := st.AppendFoodEntry(ctx, userID, day, e); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Logged %s (%d kcal) on %s [%s]\n", e.Name, e.Calories, day, e.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&date, "date", "", "Day to log on (YYYY-MM-DD, default today)")
	add.Flags().StringVar(&catalogID, "id", "", "Catalog food id")
	add.Flags().Float64Var(&servings, "servings", 1, "Servings of the catalog food")
	add.Flags().StringVar(&entry.Name, "name", "", "Food name")
	add.Flags().IntVar(&entry.Calories, "kcal", 0, "Calories")
	add.Flags().Float64Var(&entry.ProteinG, "protein", 0, "Protein (g)")
	add.Flags().Float64Var(&entry.CarbsG, "carbs", 0, "Carbs (g)")
	add.Flags().Float64Var(&entry.FatG, "fat", 0, "Fat (g)")
	add.Flags().IntVar(&entry.HealthScore, "score", 5, "Health score 1-10")
	add.MarkFlagsMutuallyExclusive("id", "name")

	var rmDate string
	rm := &cobra.Command{
		Use:   "rm <entry-id>",
		Short: "Remove a food entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := a.dateOrToday(rmDate)
			if err != nil {
				return err
			}
			return a.withUser(func(ctx context.Context, st *store.SQLite, userID int) error {
				if err := st.RemoveFoodEntry(ctx, userID, day, args[0]); err != nil {
					return fmt.Errorf("remove %s on %s: %w", args[0], day, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed food entry %s\n", args[0])
				return nil
			})
		},
	}
	rm.Flags().StringVar(&rmDate, "date", "", "Day the entry was logged on (default today)")

	cmd.AddCommand(add, rm)
	return cmd
}

func (a *cli) exerciseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exercise",
		Short: "Log or remove workouts",
	}

	var (
		date      string
		catalogID string
		name      string
		met       float64
		minutes   int
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Log a workout; calories come from MET, duration and your current weight",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := a.dateOrToday(date)
			if err != nil {
				return err
			}
			e := health.ExerciseEntry{
				ID:          uuid.NewString(),
				Name:        strings.TrimSpace(name),
				DurationMin: minutes,
				Timestamp:   a.now().UTC(),
			}
			m := met
			if catalogID != "" {
				cat, err := catalog.Load()
				if err != nil {
					return err
				}
				act, ok := cat.Exercise(catalogID)
				if !ok {
					return fmt.Errorf("unknown catalog exercise %q (see `gerda catalog exercises`)", catalogID)
				}
				e.Name, m = act.Name, act.MET
			}

			return a.withUser(func(ctx context.Context, st *store.SQLite, userID int) error {
				if err := health.ValidateMET(m); err != nil {
					return err
				}
				p, err := readProfile(ctx, st, userID)
				if err != nil {
					return err
				}
				e.CaloriesBurned = health.CalculateCaloriesBurned(m, p.CurrentWeightKG, e.DurationMin)
				if err := health.ValidateExerciseEntry(e); err != nil {
					return err
				}
				if err := st.AppendExerciseEntry(ctx, userID, day, e); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Logged %s, %d min, %d kcal on %s [%s]\n",
					e.Name, e.DurationMin, e.CaloriesBurned, day, e.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&date, "date", "", "Day to log on (YYYY-MM-DD, default today)")
	add.Flags().StringVar(&catalogID, "id", "", "Catalog exercise id")
	add.Flags().StringVar(&name, "name", "", "Workout name")
	add.Flags().Float64Var(&met, "met", 0, "MET value for a custom workout")
	add.Flags().IntVar(&minutes, "minutes", 0, "Duration in minutes")
	add.MarkFlagsMutuallyExclusive("id", "name")
	_ = add.MarkFlagRequired("minutes")

	var rmDate string
	rm := &cobra.Command{
		Use:   "rm <entry-id>",
		Short: "Remove a workout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := a.dateOrToday(rmDate)
			if err != nil {
				return err
			}
			return a.withUser(func(ctx context.Context, st *store.SQLite, userID int) error {
				if err := st.RemoveExerciseEntry(ctx, userID, day, args[0]); err != nil {
					return fmt.Errorf("remove %s on %s: %w", args[0], day, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed exercise entry %s\n", args[0])
				return nil
			})
		},
	}
	rm.Flags().StringVar(&rmDate, "date", "", "Day the entry was logged on (default today)")

	cmd.AddCommand(add, rm)
	return cmd
}
