// ABOUTME: CLI commands for the exercise log.
// ABOUTME: Adds and removes sessions and shows exercise days.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fitdiary/internal/models"
	"github.com/harperreed/fitdiary/internal/tracker"
	"github.com/spf13/cobra"
)

var (
	exerciseDate      string
	exerciseName      string
	exerciseDuration  int
	exerciseStart     string
	exerciseEnd       string
	exerciseIntensity string
	exerciseCalories  float64
	exerciseDistance  float64
	exerciseSteps     int
	exerciseNotes     string

	exerciseListFrom  string
	exerciseListTo    string
	exerciseListLimit int
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex", "workout"},
	Short:   "Log and review exercise",
	Long: `Log exercise sessions and review your exercise days.

When --calories is omitted the burn is estimated from the exercise type's
MET value, the duration and your latest weight (70 kg when none is known).

COMMANDS:

  add     Log a session
  rm      Remove a session by ID prefix
  show    Show one day
  list    List recent days`,
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <type>",
	Short: "Log an exercise session",
	Long: `Log an exercise session. The duration comes from --duration, or from
--start and --end when both are given.

EXAMPLES:

  fitdiary exercise add running --duration 30
  fitdiary exercise add cycling --start "2025-03-10 07:00" --end "2025-03-10 07:45" --distance 18
  fitdiary exercise add walking -m 40 --steps 5200 --intensity low
  fitdiary exercise add strength -m 50 --calories 320 --name "Leg day"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := resolveDay(exerciseDate, time.Now())
		if err != nil {
			return err
		}

		in := tracker.ExerciseInput{
			ExerciseType:   args[0],
			ExerciseName:   exerciseName,
			Duration:       exerciseDuration,
			Intensity:      exerciseIntensity,
			CaloriesBurned: exerciseCalories,
			Notes:          exerciseNotes,
		}
		if exerciseStart != "" {
			t, err := parseTime(exerciseStart)
			if err != nil {
				return fmt.Errorf("invalid start time: %s", exerciseStart)
			}
			in.StartTime = &t
		}
		if exerciseEnd != "" {
			t, err := parseTime(exerciseEnd)
			if err != nil {
				return fmt.Errorf("invalid end time: %s", exerciseEnd)
			}
			in.EndTime = &t
		}
		if cmd.Flags().Changed("distance") {
			d := exerciseDistance
			in.Distance = &d
		}
		if cmd.Flags().Changed("steps") {
			s := exerciseSteps
			in.Steps = &s
		}

		res, err := trk.AppendExercise(cmd.Context(), currentUser(), date, &in)
		if err != nil {
			return fmt.Errorf("failed to log exercise: %w", err)
		}

		var e models.ExerciseEntry
		for _, x := range res.Day.Exercises {
			if x.ID == res.EntryID {
				e = x
			}
		}
		estimated := ""
		if res.CaloriesEstimated {
			estimated = faint.Sprint(" (estimated)")
		}
		color.Green("✓ Logged %s", e.ExerciseType)
		fmt.Printf("  %s %d min  %.0f kcal%s\n",
			faint.Sprint(shortID(res.EntryID)), e.Duration, e.CaloriesBurned, estimated)
		fmt.Printf("  Day total: %d min, %.0f kcal\n", res.Day.TotalDuration, res.Day.TotalCaloriesBurned)
		printBadges(res.Achievements)
		return nil
	},
}

var exerciseRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete", "del"},
	Short:   "Remove an exercise session",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := resolveDay(exerciseDate, time.Now())
		if err != nil {
			return err
		}
		day, err := trk.RemoveExercise(cmd.Context(), currentUser(), date, args[0])
		if err != nil {
			return fmt.Errorf("failed to remove exercise: %w", err)
		}
		color.Green("✓ Removed exercise %s", args[0])
		fmt.Printf("  Day total: %d min, %.0f kcal\n", day.TotalDuration, day.TotalCaloriesBurned)
		return nil
	},
}

var exerciseShowCmd = &cobra.Command{
	Use:   "show [date]",
	Short: "Show an exercise day",
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
		day, err := trk.ExerciseDay(cmd.Context(), currentUser(), date)
		if err != nil {
			return fmt.Errorf("failed to load exercise day: %w", err)
		}
		printExerciseDay(day)
		return nil
	},
}

var exerciseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List exercise days",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, err := trk.ListExerciseDays(cmd.Context(), currentUser(), exerciseListFrom, exerciseListTo, exerciseListLimit)
		if err != nil {
			return fmt.Errorf("failed to list exercise days: %w", err)
		}
		if len(days) == 0 {
			fmt.Println("No exercise found.")
			return nil
		}
		for _, d := range days {
			fmt.Printf("%s  %s %4d min %6.0f kcal  %d steps\n",
				d.Date,
				padRight(fmt.Sprintf("%d sessions", len(d.Exercises)), 11),
				d.TotalDuration, d.TotalCaloriesBurned, d.TotalSteps)
		}
		return nil
	},
}

func init() {
	exerciseCmd.PersistentFlags().StringVarP(&exerciseDate, "date", "d", "", "day (YYYY-MM-DD, today, yesterday)")

	f := exerciseAddCmd.Flags()
	f.StringVar(&exerciseName, "name", "", "session name")
	f.IntVarP(&exerciseDuration, "duration", "m", 0, "duration in minutes")
	f.StringVar(&exerciseStart, "start", "", "start time (YYYY-MM-DD HH:MM)")
	f.StringVar(&exerciseEnd, "end", "", "end time (YYYY-MM-DD HH:MM)")
	f.StringVar(&exerciseIntensity, "intensity", "", "low, medium or high (default medium)")
	f.Float64Var(&exerciseCalories, "calories", 0, "calories burned (estimated when omitted)")
	f.Float64Var(&exerciseDistance, "distance", 0, "distance in km")
	f.IntVar(&exerciseSteps, "steps", 0, "step count")
	f.StringVar(&exerciseNotes, "notes", "", "notes")

	exerciseListCmd.Flags().StringVar(&exerciseListFrom, "from", "", "first day (inclusive)")
	exerciseListCmd.Flags().StringVar(&exerciseListTo, "to", "", "last day (inclusive)")
	exerciseListCmd.Flags().IntVarP(&exerciseListLimit, "limit", "n", 7, "maximum days")

	exerciseCmd.AddCommand(exerciseAddCmd)
	exerciseCmd.AddCommand(exerciseRmCmd)
	exerciseCmd.AddCommand(exerciseShowCmd)
	exerciseCmd.AddCommand(exerciseListCmd)
	rootCmd.AddCommand(exerciseCmd)
}
