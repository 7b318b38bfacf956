// ABOUTME: CLI commands for body measurements.
// ABOUTME: Records weight samples and lists the history.
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fitdiary/internal/tracker"
	"github.com/spf13/cobra"
)

var (
	weightDate       string
	weightBodyFat    float64
	weightMuscleMass float64
	weightListLimit  int
)

var weightCmd = &cobra.Command{
	Use:     "weight",
	Aliases: []string{"w"},
	Short:   "Record and list body weight",
}

var weightAddCmd = &cobra.Command{
	Use:   "add <kg>",
	Short: "Record a weight sample",
	Long: `Record a weight sample. BMI is computed from your profile height.

EXAMPLES:

  fitdiary weight add 71.4
  fitdiary weight add 71.2 --body-fat 24.5 --date yesterday`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kg, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid weight: %s", args[0])
		}
		date, err := resolveDay(weightDate, time.Now())
		if err != nil {
			return err
		}

		in := tracker.HealthInput{Date: date, WeightKg: kg}
		if cmd.Flags().Changed("body-fat") {
			in.BodyFat = &weightBodyFat
		}
		if cmd.Flags().Changed("muscle") {
			in.MuscleMass = &weightMuscleMass
		}

		s, err := trk.RecordHealthSample(cmd.Context(), currentUser(), &in)
		if err != nil {
			return fmt.Errorf("failed to record weight: %w", err)
		}
		color.Green("✓ Recorded %.1f kg", s.WeightKg)
		if s.BMI > 0 {
			fmt.Printf("  %s BMI %.1f\n", faint.Sprint(shortID(s.ID)), s.BMI)
		}
		return nil
	},
}

var weightListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List weight samples, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		samples, err := trk.HealthHistory(cmd.Context(), currentUser(), weightListLimit)
		if err != nil {
			return fmt.Errorf("failed to list weight: %w", err)
		}
		if len(samples) == 0 {
			fmt.Println("No weight recorded.")
			return nil
		}
		for _, s := range samples {
			extra := ""
			if s.BodyFat != nil {
				extra += fmt.Sprintf("  fat %.1f%%", *s.BodyFat)
			}
			if s.MuscleMass != nil {
				extra += fmt.Sprintf("  muscle %.1f kg", *s.MuscleMass)
			}
			fmt.Printf("%s %s %6.1f kg  BMI %4.1f%s\n",
				faint.Sprint(shortID(s.ID)), s.Date, s.WeightKg, s.BMI, extra)
		}
		return nil
	},
}

func init() {
	weightCmd.PersistentFlags().StringVarP(&weightDate, "date", "d", "", "day (YYYY-MM-DD, today, yesterday)")
	weightAddCmd.Flags().Float64Var(&weightBodyFat, "body-fat", 0, "body fat percentage")
	weightAddCmd.Flags().Float64Var(&weightMuscleMass, "muscle", 0, "muscle mass in kg")
	weightListCmd.Flags().IntVarP(&weightListLimit, "limit", "n", 20, "maximum samples")

	weightCmd.AddCommand(weightAddCmd)
	weightCmd.AddCommand(weightListCmd)
	rootCmd.AddCommand(weightCmd)
}
