package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AndreKrottje-Dev/Gerda2/internal/health"
	"github.com/AndreKrottje-Dev/Gerda2/internal/store"
	"github.com/spf13/cobra"
)

func (a *cli) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Set or show your body profile and derived metrics",
	}

	var p health.UserProfile
	var gender, activity string
	set := &cobra.Command{
		Use:   "set",
		Short: "Replace the profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			p.Name = strings.TrimSpace(p.Name)
			p.Gender = health.Gender(gender)
			p.ActivityLevel = health.ActivityLevel(activity)
			p.CreatedAt = a.now().UTC()
			if err := health.ValidateProfile(p); err != nil {
				return err
			}
			return a.withUser(func(ctx context.Context, st *store.SQLite, userID int) error {
				existing, err := st.ReadProfile(ctx, userID)
				switch {
				case err == nil:
					p.CreatedAt = existing.CreatedAt
				case !errors.Is(err, store.ErrNotFound):
					return err
				}
				if err := st.WriteProfile(ctx, userID, p); err != nil {
					return err
				}
				printMetrics(cmd, p)
				return nil
			})
		},
	}
	set.Flags().StringVar(&p.Name, "name", "", "Display name")
	set.Flags().IntVar(&p.Age, "age", 0, "Age in years")
	set.Flags().StringVar(&gender, "gender", "", "male or female")
	set.Flags().Float64Var(&p.HeightCM, "height", 0, "Height in cm")
	set.Flags().Float64Var(&p.CurrentWeightKG, "weight", 0, "Current weight in kg")
	set.Flags().Float64Var(&p.TargetWeightKG, "target", 0, "Target weight in kg")
	set.Flags().StringVar(&activity, "activity", string(health.Moderate), "sedentary, light, moderate, active or very_active")
	for _, f := range []string{"name", "age", "gender", "height", "weight", "target"} {
		_ = set.MarkFlagRequired(f)
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the profile and its metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withUser(func(ctx context.Context, st *store.SQLite, userID int) error {
				p, err := readProfile(ctx, st, userID)
				if err != nil {
					return err
				}
				printMetrics(cmd, p)
				return nil
			})
		},
	}

	cmd.AddCommand(set, show)
	return cmd
}

func printMetrics(cmd *cobra.Command, p health.UserProfile) {
	m := health.ComputeMetrics(p)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s, %d, %s, %.0f cm, %.1f kg (target %.1f kg)\n",
		p.Name, p.Age, p.Gender, p.HeightCM, p.CurrentWeightKG, p.TargetWeightKG)
	fmt.Fprintf(out, "BMI\t%.1f (%s)\n", m.BMI, m.BMICategory)
	fmt.Fprintf(out, "BMR\t%d kcal\n", m.BMR)
	fmt.Fprintf(out, "TDEE\t%d kcal (%s)\n", m.TDEE, m.ActivityLabel)
	fmt.Fprintf(out, "Goal\t%d kcal/day\n", m.CalorieGoal)
	fmt.Fprintf(out, "To go\t%.1f kg\n", m.WeightToGoKG)
}
