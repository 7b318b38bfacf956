// ABOUTME: CLI commands for the diet log.
// ABOUTME: Adds and removes meals and shows diet days.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fitdiary/internal/tracker"
	"github.com/spf13/cobra"
)

var (
	mealDate     string
	mealAt       string
	mealName     string
	mealCalories float64
	mealProtein  float64
	mealCarbs    float64
	mealFat      float64
	mealFiber    float64
	mealSugar    float64
	mealSodium   float64
	mealFoods    []string
	mealNotes    string

	mealListFrom  string
	mealListTo    string
	mealListLimit int
)

var mealCmd = &cobra.Command{
	Use:     "meal",
	Aliases: []string{"m", "diet"},
	Short:   "Log and review meals",
	Long: `Log meals and review your diet days.

Meals are grouped per day. Day totals are recomputed from the meal list
after every change, and each new meal is scored with a 0-100 health score
and up to three recommendations.

MEAL TYPES:

  breakfast, lunch, dinner, snack

COMMANDS:

  add     Log a meal from macros or from foods (name:grams)
  rm      Remove a meal by ID prefix
  show    Show one day
  list    List recent days`,
}

var mealAddCmd = &cobra.Command{
	Use:   "add <meal-type>",
	Short: "Log a meal",
	Long: `Log a meal. Give either macros directly or one or more foods as name:grams.
Foods are looked up in the local food cache, the built-in table and then
Open Food Facts.

EXAMPLES:

  fitdiary meal add breakfast --food "oats:60" --food "banana:120"
  fitdiary meal add lunch --name "Burrito bowl" --calories 650 --protein 35 --carbs 70 --fat 20
  fitdiary meal add snack --food "apple:150" --date yesterday
  fitdiary meal add dinner --food "salmon:180" --at "2025-03-10 19:30"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := resolveDay(mealDate, time.Now())
		if err != nil {
			return err
		}

		in := tracker.MealInput{
			MealType: args[0],
			MealName: mealName,
			Calories: mealCalories,
			Protein:  mealProtein,
			Carbs:    mealCarbs,
			Fat:      mealFat,
			Fiber:    mealFiber,
			Sugar:    mealSugar,
			Sodium:   mealSodium,
			Notes:    mealNotes,
		}
		for _, f := range mealFoods {
			ref, err := parseFoodRef(f)
			if err != nil {
				return err
			}
			in.FoodRefs = append(in.FoodRefs, ref)
		}
		if mealAt != "" {
			ts, err := parseTime(mealAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", mealAt)
			}
			in.Timestamp = ts
		}

		res, err := trk.AppendMeal(cmd.Context(), currentUser(), date, &in)
		if err != nil {
			return fmt.Errorf("failed to log meal: %w", err)
		}

		a := res.Analysis
		color.Green("✓ Logged %s", in.MealType)
		fmt.Printf("  %s %.0f kcal  protein %d%%  carbs %d%%  fat %d%%  score %d\n",
			faint.Sprint(shortID(res.EntryID)),
			a.TotalCalories, a.ProteinPct, a.CarbsPct, a.FatPct, a.HealthScore)
		for _, r := range a.Recommendations {
			fmt.Printf("  → %s\n", r)
		}
		fmt.Printf("  Day total: %.0f kcal\n", res.Day.TotalCalories)
		printBadges(res.Badges)
		return nil
	},
}

var mealRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete", "del"},
	Short:   "Remove a meal",
	Long: `Remove a meal by its ID or a unique ID prefix (as shown by 'fitdiary meal show').

EXAMPLES:

  fitdiary meal rm 3f2a9c1b
  fitdiary meal rm 3f2a --date 2025-03-09`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := resolveDay(mealDate, time.Now())
		if err != nil {
			return err
		}
		day, err := trk.RemoveMeal(cmd.Context(), currentUser(), date, args[0])
		if err != nil {
			return fmt.Errorf("failed to remove meal: %w", err)
		}
		color.Green("✓ Removed meal %s", args[0])
		fmt.Printf("  Day total: %.0f kcal\n", day.TotalCalories)
		return nil
	},
}

var mealShowCmd = &cobra.Command{
	Use:   "show [date]",
	Short: "Show a diet day",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arg := ""
		if len(args) == 1 {
			arg = args[0]
		}
		date, err := resolveDay(arg, time.Now())
		if err != nil {
			return err
		}
		day, err := trk.DietDay(cmd.Context(), currentUser(), date)
		if err != nil {
			return fmt.Errorf("failed to load diet day: %w", err)
		}
		printDietDay(day)
		return nil
	},
}

var mealListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List diet days",
	Long: `List diet days, newest first.

EXAMPLES:

  fitdiary meal list                         # last 7 days with meals
  fitdiary meal list --from 2025-03-01 -n 31 # March so far`,
	RunE: func(cmd *cobra.Command, args []string) error {
		days, err := trk.ListDietDays(cmd.Context(), currentUser(), mealListFrom, mealListTo, mealListLimit)
		if err != nil {
			return fmt.Errorf("failed to list diet days: %w", err)
		}
		if len(days) == 0 {
			fmt.Println("No meals found.")
			return nil
		}
		for _, d := range days {
			fmt.Printf("%s  %s %6.0f kcal  P %5.1f  C %5.1f  F %5.1f\n",
				d.Date,
				padRight(fmt.Sprintf("%d meals", len(d.Meals)), 9),
				d.TotalCalories, d.TotalProtein, d.TotalCarbs, d.TotalFat)
		}
		return nil
	},
}

func init() {
	mealCmd.PersistentFlags().StringVarP(&mealDate, "date", "d", "", "day (YYYY-MM-DD, today, yesterday)")

	f := mealAddCmd.Flags()
	f.StringVar(&mealName, "name", "", "meal name")
	f.Float64Var(&mealCalories, "calories", 0, "calories (kcal)")
	f.Float64Var(&mealProtein, "protein", 0, "protein (g)")
	f.Float64Var(&mealCarbs, "carbs", 0, "carbohydrates (g)")
	f.Float64Var(&mealFat, "fat", 0, "fat (g)")
	f.Float64Var(&mealFiber, "fiber", 0, "fiber (g)")
	f.Float64Var(&mealSugar, "sugar", 0, "sugar (g)")
	f.Float64Var(&mealSodium, "sodium", 0, "sodium (mg)")
	f.StringArrayVarP(&mealFoods, "food", "f", nil, "food as name:grams (repeatable)")
	f.StringVar(&mealAt, "at", "", "meal time (YYYY-MM-DD HH:MM)")
	f.StringVar(&mealNotes, "notes", "", "notes")

	mealListCmd.Flags().StringVar(&mealListFrom, "from", "", "first day (inclusive)")
	mealListCmd.Flags().StringVar(&mealListTo, "to", "", "last day (inclusive)")
	mealListCmd.Flags().IntVarP(&mealListLimit, "limit", "n", 7, "maximum days")

	mealCmd.AddCommand(mealAddCmd)
	mealCmd.AddCommand(mealRmCmd)
	mealCmd.AddCommand(mealShowCmd)
	mealCmd.AddCommand(mealListCmd)
	rootCmd.AddCommand(mealCmd)
}
