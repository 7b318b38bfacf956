// ABOUTME: CLI commands for the daily dashboard and period summaries.
// ABOUTME: Prints intake, burn, body metrics and goal progress.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var summaryDate string

var dashboardCmd = &cobra.Command{
	Use:     "dashboard [date]",
	Aliases: []string{"dash", "today"},
	Short:   "Show the daily dashboard",
	Long: `Show one day at a glance: calories in and out against your target, BMI,
BMR and TDEE from your latest weight, progress toward your target weight,
and the badges earned that day.

EXAMPLES:

  fitdiary dashboard
  fitdiary dashboard yesterday
  fitdiary dash 2025-03-09`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arg := ""
		if len(args) == 1 {
			arg = args[0]
		}
		date, err := resolveDay(arg, time.Now())
		if err != nil {
			return err
		}

		d, err := trk.Dashboard(cmd.Context(), currentUser(), date)
		if err != nil {
			return fmt.Errorf("failed to build dashboard: %w", err)
		}

		bold := color.New(color.Bold)
		s := d.Snapshot
		bold.Printf("%s\n", d.Date)
		fmt.Printf("  Eaten:      %.0f / %.0f kcal\n", d.Diet.TotalCalories, s.TargetCalories)
		fmt.Printf("  Burned:     %.0f kcal in %d min\n", d.Exercise.TotalCaloriesBurned, d.Exercise.TotalDuration)
		remaining := fmt.Sprintf("%d kcal", s.RemainingCalories)
		if s.RemainingCalories < 0 {
			remaining = color.RedString(remaining)
		}
		fmt.Printf("  Remaining:  %s\n", remaining)
		fmt.Printf("  Balance:    %+d kcal\n", s.CalorieBalance)

		if d.Derived != nil {
			bold.Println("Body")
			fmt.Printf("  Weight:     %.1f kg\n", d.Derived.WeightKg)
			if d.Derived.BMI > 0 {
				fmt.Printf("  BMI:        %.1f (%s)\n", d.Derived.BMI, d.Derived.BMIStatus)
			}
			if d.Derived.BMR > 0 {
				fmt.Printf("  BMR/TDEE:   %d / %d kcal\n", d.Derived.BMR, d.Derived.TDEE)
			}
		}

		if s.WeightProgressPercent > 0 || s.RemainingDays >= 0 {
			bold.Println("Goal")
			fmt.Printf("  Progress:   %.0f%%\n", s.WeightProgressPercent)
			if s.RemainingDays >= 0 {
				fmt.Printf("  Days left:  %d\n", s.RemainingDays)
			}
		}
		printBadges(s.Badges)
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:       "summary [week|month]",
	Short:     "Summarize a week or month",
	ValidArgs: []string{"week", "month"},
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	Long: `Summarize the week (7 days) or month (30 days) ending on --date.

EXAMPLES:

  fitdiary summary
  fitdiary summary month
  fitdiary summary week --date 2025-03-02`,
	RunE: func(cmd *cobra.Command, args []string) error {
		period := "week"
		if len(args) == 1 {
			period = args[0]
		}
		date, err := resolveDay(summaryDate, time.Now())
		if err != nil {
			return err
		}

		sum, err := trk.Summary(cmd.Context(), currentUser(), period, date)
		if err != nil {
			return fmt.Errorf("failed to summarize: %w", err)
		}

		bold := color.New(color.Bold)
		bold.Printf("%s to %s\n", sum.From, sum.To)
		ds := sum.Diet
		fmt.Printf("  Diet:      %d days, %d meals, avg %.0f kcal  P %.1f  C %.1f  F %.1f\n",
			ds.Days, ds.Meals, ds.AverageCalories, ds.AverageProtein, ds.AverageCarbs, ds.AverageFat)
		es := sum.Exercise
		fmt.Printf("  Exercise:  %d days, %d workouts, %d min, %.0f kcal\n",
			es.Days, es.Workouts, es.TotalDuration, es.TotalCalories)
		if es.FavoriteType != "" {
			fmt.Printf("  Favorite:  %s\n", es.FavoriteType)
		}
		return nil
	},
}

func init() {
	summaryCmd.Flags().StringVarP(&summaryDate, "date", "d", "", "last day of the period")
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(summaryCmd)
}
