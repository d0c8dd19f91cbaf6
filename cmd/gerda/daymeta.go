package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/AndreKrottje-Dev/Gerda2/internal/health"
	"github.com/AndreKrottje-Dev/Gerda2/internal/store"
	"github.com/spf13/cobra"
)

func (a *cli) weightCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "weight <kg>",
		Short: "Record a weigh-in for the day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kg, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid weight %q", args[0])
			}
			if err := health.ValidateWeighIn(kg); err != nil {
				return err
			}
			day, err := a.dateOrToday(date)
			if err != nil {
				return err
			}
			return a.withUser(func(ctx context.Context, st *store.SQLite, userID int) error {
				if err := st.SetDailyWeight(ctx, userID, day, kg); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Weight on %s: %.1f kg\n", day, kg)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD, default today)")
	return cmd
}

func (a *cli) waterCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "water <glasses>",
		Short: "Set the day's glasses of water",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			glasses, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid glasses %q", args[0])
			}
			if err := health.ValidateWaterGlasses(glasses); err != nil {
				return err
			}
			day, err := a.dateOrToday(date)
			if err != nil {
				return err
			}
			return a.withUser(func(ctx context.Context, st *store.SQLite, userID int) error {
				if err := st.SetWaterIntake(ctx, userID, day, glasses); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Water on %s: %d glasses\n", day, glasses)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD, default today)")
	return cmd
}
