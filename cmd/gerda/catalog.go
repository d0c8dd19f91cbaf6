package main

import (
	"fmt"

	"github.com/AndreKrottje-Dev/Gerda2/internal/catalog"
	"github.com/spf13/cobra"
)

func (a *cli) catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Search the reference foods and exercises",
	}

	var category, query string
	foods := &cobra.Command{
		Use:   "foods",
		Short: "List catalog foods",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ID\tNAME\tSERVING\tKCAL\tSCORE")
			for _, f := range cat.Foods(category, query) {
				fmt.Fprintf(out, "%s\t%s\t%s\t%d\t%d (%s)\n",
					f.ID, f.Name, f.Serving, f.Calories, f.HealthScore, catalog.HealthLabel(f.HealthScore))
			}
			return nil
		},
	}
	exercises := &cobra.Command{
		Use:   "exercises",
		Short: "List catalog exercises",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ID\tNAME\tCATEGORY\tMET")
			for _, e := range cat.Exercises(category, query) {
				fmt.Fprintf(out, "%s\t%s\t%s\t%.1f\n", e.ID, e.Name, e.Category, e.MET)
			}
			return nil
		},
	}
	for _, c := range []*cobra.Command{foods, exercises} {
		c.Flags().StringVar(&category, "category", "", "Only this category")
		c.Flags().StringVarP(&query, "query", "q", "", "Case-insensitive name search")
	}

	cmd.AddCommand(foods, exercises)
	return cmd
}
