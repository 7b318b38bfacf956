// ABOUTME: CLI commands for food lookup and search.
// ABOUTME: Shows per-portion nutrition and searches the food cache and Open Food Facts.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	foodGrams       float64
	foodSearchLimit int
)

var errNoFoods = errors.New("food lookup is unavailable (food cache could not be opened)")

var foodCmd = &cobra.Command{
	Use:     "food",
	Aliases: []string{"f"},
	Short:   "Look up and search foods",
	Long: `Look up nutrition facts. Names are resolved from the local food cache, then
the built-in table, then Open Food Facts. Remote hits are cached locally.

Set food_api_url to "off" in the config file to stay offline.`,
}

var foodLookupCmd = &cobra.Command{
	Use:   "lookup <name...>",
	Short: "Show nutrition for a portion",
	Long: `Show nutrition for a portion of a food.

EXAMPLES:

  fitdiary food lookup banana
  fitdiary food lookup chicken breast --grams 150`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if foods == nil {
			return errNoFoods
		}
		res, err := foods.Portion(cmd.Context(), strings.Join(args, " "), foodGrams)
		if err != nil {
			return err
		}

		p := res.Portion
		color.New(color.Bold).Printf("%s, %.0f g\n", p.Name, p.QuantityGrams)
		fmt.Printf("  Calories: %.0f kcal\n", p.Calories)
		fmt.Printf("  Protein:  %.1f g\n", p.Protein)
		fmt.Printf("  Carbs:    %.1f g\n", p.Carbs)
		fmt.Printf("  Fat:      %.1f g\n", p.Fat)
		fmt.Printf("  Fiber:    %.1f g\n", p.Fiber)
		fmt.Printf("  Sugar:    %.1f g\n", p.Sugar)
		fmt.Printf("  Sodium:   %.0f mg\n", p.Sodium)
		for _, r := range res.Recommendations {
			fmt.Printf("  → %s\n", r)
		}
		return nil
	},
}

var foodSearchCmd = &cobra.Command{
	Use:   "search <keyword...>",
	Short: "Search foods",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if foods == nil {
			return errNoFoods
		}
		facts, err := foods.Search(cmd.Context(), strings.Join(args, " "), foodSearchLimit)
		if err != nil {
			return err
		}
		if len(facts) == 0 {
			fmt.Println("No foods found.")
			return nil
		}
		for _, f := range facts {
			fmt.Printf("%s %5.0f kcal/100g  P %4.1f  C %4.1f  F %4.1f  %s\n",
				padRight(truncate(f.Name, 30), 30),
				f.Calories, f.Protein, f.Carbs, f.Fat,
				faint.Sprint(f.Source))
		}
		return nil
	},
}

func init() {
	foodLookupCmd.Flags().Float64VarP(&foodGrams, "grams", "g", 100, "portion size in grams")
	foodSearchCmd.Flags().IntVarP(&foodSearchLimit, "limit", "n", 10, "maximum results")

	foodCmd.AddCommand(foodLookupCmd)
	foodCmd.AddCommand(foodSearchCmd)
	rootCmd.AddCommand(foodCmd)
}
